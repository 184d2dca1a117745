// opcode_interpreter.go - fetch/decode/execute loop and the 32 low-opcode handlers (§4.8)

package main

// exitReversalTable maps a direction to its reverse for the exit opcode's
// retry pass (§4.8).
var exitReversalTable = [16]byte{
	0x00, 0x04, 0x06, 0x07, 0x01, 0x08, 0x02, 0x03,
	0x05, 0x0a, 0x09, 0x0c, 0x0b, 0xff, 0xff, 0x0f,
}

// function opcode (low5 6) sub-codes, read from the following byte.
const (
	fnCallDriver   = 0x00
	fnRandom       = 0x01
	fnSave         = 0x02
	fnRestore      = 0x03
	fnClearWS      = 0x04
	fnClearStack   = 0x05
	fnPrintString  = 0x06
)

// Tokenizer parses one input line into the list9 parsed-word buffer,
// returning true once a full line has been consumed (§4.5).
type Tokenizer interface {
	Parse(list9 []byte) bool
	SetScript(r ScriptReader)
}

// Interpreter is the A-machine core: one fetch/decode/execute step at a
// time, driven by the caller through RunOneOpcode (§4.8, §5).
type Interpreter struct {
	mem    *StoryMemory
	ws     *Workspace
	header *StoryHeader

	printer   *TextPrinter
	msgV34    *MessageDecoderV34
	msgV2     *MessageDecoderV2
	objSearch *ObjectSearch
	driver    *DriverGateway
	list      *ListHandler
	tokenizer Tokenizer
	host      HostAdapter

	acodePtr uint16
	filename string
	running  bool
}

// NewInterpreter wires the full component graph for one loaded story.
func NewInterpreter(mem *StoryMemory, header *StoryHeader, host HostAdapter, filename string) *Interpreter {
	ws := &Workspace{}
	printer := NewTextPrinter(host)
	ip := &Interpreter{
		mem:       mem,
		ws:        ws,
		header:    header,
		printer:   printer,
		msgV34:    NewMessageDecoderV34(mem, header, printer),
		msgV2:     NewMessageDecoderV2(mem, header, printer),
		objSearch: NewObjectSearch(),
		driver:    NewDriverGateway(ws, host, printer),
		list:      NewListHandler(mem, ws, header),
		host:      host,
		acodePtr:  header.ACodePtr(),
		filename:  filename,
	}
	ws.CodePtr = ip.acodePtr
	if header.Version == GameV2 {
		ip.tokenizer = NewTokenizerV2(mem, header, ws, host, ip)
	} else {
		ip.tokenizer = NewTokenizerV34(mem, header, ws, host, ip)
	}
	return ip
}

// Stop requests that the next tick halt the run loop.
func (ip *Interpreter) Stop() { ip.running = false }

// Run drives RunOneOpcode until it reports the machine has stopped.
func (ip *Interpreter) Run() {
	ip.running = true
	for ip.running {
		if !ip.RunOneOpcode() {
			return
		}
	}
}

func (ip *Interpreter) fetch() byte {
	c := ip.mem.ReadByte(ip.ws.CodePtr)
	ip.ws.CodePtr++
	return c
}

// addr implements the `addr()` addressing helper: a short signed-delta
// form when code&0x20 is set, else a two-byte absolute offset from
// acode_ptr.
func (ip *Interpreter) addr(code byte) uint16 {
	if code&0x20 != 0 {
		delta := int8(ip.fetch())
		return ip.ws.CodePtr + uint16(int16(delta)) - 1
	}
	w := ip.mem.ReadWord(ip.ws.CodePtr)
	ip.ws.CodePtr += 2
	return ip.acodePtr + w
}

// con implements `con()`: a one-byte constant when code&0x40 is set,
// else a two-byte little-endian constant.
func (ip *Interpreter) con(code byte) uint16 {
	if code&0x40 != 0 {
		return uint16(ip.fetch())
	}
	v := ip.mem.ReadWord(ip.ws.CodePtr)
	ip.ws.CodePtr += 2
	return v
}

// varRef implements `var()`: consume one index byte, return a pointer
// into var_table.
func (ip *Interpreter) varRef() *uint16 {
	idx := ip.fetch()
	return &ip.ws.VarTable[idx]
}

func (ip *Interpreter) varVal() uint16 { return *ip.varRef() }

// RunOneOpcode fetches, decodes, and executes exactly one instruction,
// returning false once the machine should stop (illegal opcode, a
// fatal host error, or an explicit stop request).
func (ip *Interpreter) RunOneOpcode() bool {
	if !ip.running {
		ip.running = true
	}

	code := ip.fetch()

	if code&0x80 != 0 {
		ip.execListOp(code)
		return ip.running
	}

	switch code & 0x1f {
	case 0: // goto
		ip.ws.CodePtr = ip.addr(code)
	case 1: // gosub
		target := ip.addr(code)
		if err := ip.ws.PushStack(ip.ws.CodePtr); err != nil {
			ip.fatal(err)
			return false
		}
		ip.ws.CodePtr = target
	case 2: // return
		ret, err := ip.ws.PopStack()
		if err != nil {
			ip.fatal(err)
			return false
		}
		ip.ws.CodePtr = ret
	case 3: // print_number
		ip.printer.PrintDecimal(ip.varVal())
	case 4: // message_v
		n := ip.varVal()
		ip.printMessage(n)
	case 5: // message_c
		n := ip.con(code)
		ip.printMessage(n)
	case 6: // function
		ip.execFunction()
	case 7: // input
		ip.ws.CodePtr--
		list9 := ip.ws.ListArea[ip.header.List9Base():]
		if ip.tokenizer.Parse(list9) {
			ip.ws.CodePtr += 5
		}
	case 8: // var_con
		ref := ip.varRef()
		*ref = ip.con(code)
	case 9: // var_var
		ref := ip.varRef()
		*ref = ip.varVal()
	case 10: // add
		ref := ip.varRef()
		*ref += ip.varVal()
	case 11: // sub
		ref := ip.varRef()
		*ref -= ip.varVal()
	case 14: // jump
		table := ip.mem.ReadWord(ip.ws.CodePtr)
		ip.ws.CodePtr += 2
		idx := ip.varVal()
		slot := ip.acodePtr + table + 2*idx
		ip.ws.CodePtr = ip.acodePtr + ip.mem.ReadWord(slot)
	case 15: // exit
		ip.execExit()
	case 16:
		ip.branchVT(code, func(a, b uint16) bool { return a == b })
	case 17:
		ip.branchVT(code, func(a, b uint16) bool { return a != b })
	case 18:
		ip.branchVT(code, func(a, b uint16) bool { return a < b })
	case 19:
		ip.branchVT(code, func(a, b uint16) bool { return a > b })
	case 20: // screen
		on := ip.con(code) != 0
		ip.host.Graphics(on)
		if on {
			ip.fetch()
		}
	case 21: // clear_tg
		if ip.con(code) != 0 {
			ip.host.ClearGraphics()
		}
	case 22: // picture
		ip.host.ShowBitmap(ip.varVal())
	case 23: // get_next_object
		ip.execGetNextObject()
	case 24:
		ip.branchCT(code, func(a, b uint16) bool { return a == b })
	case 25:
		ip.branchCT(code, func(a, b uint16) bool { return a != b })
	case 26:
		ip.branchCT(code, func(a, b uint16) bool { return a < b })
	case 27:
		ip.branchCT(code, func(a, b uint16) bool { return a > b })
	case 28: // print_input
		ip.printInput()
	default: // 12, 13, 29, 30, 31 - illegal
		ip.fatal(&RuntimeError{Opcode: code, CodePtr: ip.ws.CodePtr - 1, Message: "illegal opcode"})
		return false
	}

	return ip.running
}

func (ip *Interpreter) execListOp(code byte) {
	var offset uint16
	if code&0x20 != 0 {
		offset = uint16(ip.fetch())
	} else {
		offset = ip.varVal()
	}
	ref := ip.varRef()
	ip.list.Execute(code, offset, ref)
}

func (ip *Interpreter) printMessage(n uint16) {
	if ip.header.Version == GameV2 {
		ip.msgV2.PrintMessage(n)
	} else {
		ip.msgV34.PrintMessage(n)
	}
}

func (ip *Interpreter) branchVT(code byte, op func(a, b uint16) bool) {
	a := ip.varVal()
	b := ip.varVal()
	target := ip.addr(code)
	if op(a, b) {
		ip.ws.CodePtr = target
	}
}

func (ip *Interpreter) branchCT(code byte, op func(a, b uint16) bool) {
	a := ip.varVal()
	b := ip.con(code)
	target := ip.addr(code)
	if op(a, b) {
		ip.ws.CodePtr = target
	}
}

func (ip *Interpreter) execFunction() {
	sub := ip.fetch()
	switch sub {
	case fnCallDriver:
		list9 := ip.ws.ListArea[ip.header.List9Base():]
		req := ip.driver.CallDriver(list9, ip.filename)
		if req.Requested {
			ip.loadNextPart(req.Filename)
		}
	case fnRandom:
		ref := ip.varRef()
		*ref = uint16(ip.driver.Random())
	case fnSave:
		ip.saveGame()
	case fnRestore:
		ip.restoreGame(true)
	case fnClearWS:
		ip.ws.ClearVariables()
		ip.ws.ClearLists()
	case fnClearStack:
		ip.ws.ClearStack()
	case fnPrintString:
		ip.printStringLiteral()
	}
}

// Save, Restore, Quit, SeedRandom, ShowBitmap, and OpenScript implement
// MetaActions for the `#save`/`#restore`/`#quit`/`#seed`/`#picture`/
// `#play` input meta-commands (§4.5 step 2).
func (ip *Interpreter) Save()                    { ip.saveGame() }
func (ip *Interpreter) Restore()                 { ip.restoreGame(true) }
func (ip *Interpreter) Quit()                    { ip.Stop() }
func (ip *Interpreter) SeedRandom(seed uint16)   { ip.driver.SeedRandom(seed) }
func (ip *Interpreter) ShowBitmap(n uint16)      { ip.host.ShowBitmap(n) }
func (ip *Interpreter) OpenScript(name string) {
	if r, ok := ip.host.OpenScriptFile(name); ok {
		ip.tokenizer.SetScript(r)
	}
}

func (ip *Interpreter) printStringLiteral() {
	for {
		c := ip.fetch()
		if c == 0 {
			return
		}
		ip.printer.PrintChar(c)
	}
}

func (ip *Interpreter) execExit() {
	room := ip.varVal() // d7: fetched first
	dir := ip.varVal()  // d6: fetched second

	flags, target := ip.findExit(byte(room), byte(dir))

	refFlags := ip.varRef()
	refTarget := ip.varRef()
	*refFlags = uint16((flags & 0x70) >> 4)
	*refTarget = uint16(target)
}

// findExit mirrors do_exit: skip to room's own exit group in the
// abs-data-block table and scan it for a record matching dir. A group
// with no match falls through to findExitReversed.
func (ip *Interpreter) findExit(room, dir byte) (flags, target byte) {
	ptr := ip.header.AbsDataBlock()

	skip := room
	skip--
	for skip != 0 {
		d0 := ip.mem.ReadByte(ptr)
		if ip.header.Version == GameV4 && d0 == 0 && ip.mem.ReadByte(ptr+1) == 0 {
			return ip.findExitReversed(dir, room)
		}
		ptr += 2
		if d0&0x80 != 0 {
			skip--
		}
	}

	for {
		flags = ip.mem.ReadByte(ptr)
		ptr++
		if flags&0x0f == dir {
			return flags, ip.mem.ReadByte(ptr)
		}
		ptr++
		if flags&0x80 != 0 {
			return ip.findExitReversed(dir, room)
		}
	}
}

// findExitReversed implements notfn4: rescan the whole exit table from
// its start for a record whose reversed direction leads back to room,
// returning the owning group's 1-based index as the resolved target.
func (ip *Interpreter) findExitReversed(dir, room byte) (flags, target byte) {
	dir = exitReversalTable[dir&0x0f]
	ptr := ip.header.AbsDataBlock()
	group := byte(1)

	for {
		flags = ip.mem.ReadByte(ptr)
		ptr++
		if flags == 0 {
			return 0, 0
		}
		t := ip.mem.ReadByte(ptr)
		ptr++
		if flags&0x10 != 0 && flags&0x0f == dir && t == room {
			return flags, group
		}
		if flags&0x80 != 0 {
			group++
		}
	}
}

func (ip *Interpreter) execGetNextObject() {
	list2 := ip.ws.ListArea[ip.header.List2Base():]
	list3 := ip.ws.ListArea[ip.header.List3Base():]

	maxObject := ip.varVal()
	hiRef := ip.varRef()
	posRef := ip.varRef()

	res := ip.objSearch.GetNextObject(maxObject, *hiRef, *posRef, list2, list3)

	*hiRef = res.HiSearchPos
	*posRef = res.SearchPos
	objRef := ip.varRef()
	*objRef = res.Object
}

func (ip *Interpreter) printInput() {
	list9 := ip.ws.ListArea[ip.header.List9Base():]
	for i := 0; i < len(list9) && list9[i] != 0; i++ {
		ip.printer.PrintChar(list9[i])
	}
}

func (ip *Interpreter) fatal(err error) {
	ip.running = false
	ip.host.FatalError("%v", err)
}

func (ip *Interpreter) loadNextPart(newFilename string) {
	data, ok := ip.host.LoadStory(newFilename)
	if !ok {
		ip.printer.PrintString("\rFailed to load game.\r")
		return
	}

	ip.mem.Replace(data)
	header, err := ParseStoryHeader(ip.mem, ip.header.Version)
	if err != nil {
		ip.fatal(err)
		return
	}

	ip.header = header
	ip.list = NewListHandler(ip.mem, ip.ws, header)
	ip.msgV34 = NewMessageDecoderV34(ip.mem, header, ip.printer)
	ip.msgV2 = NewMessageDecoderV2(ip.mem, header, ip.printer)
	ip.acodePtr = header.ACodePtr()
	ip.ws.CodePtr = ip.acodePtr
	ip.filename = newFilename
}
