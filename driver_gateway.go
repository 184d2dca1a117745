// driver_gateway.go - call_driver dispatch: RNG, RAM slots, bitmap, next-part

package main

// Driver sub-function codes (§4.7).
const (
	driverReadChar   = 0x03
	driverRandom     = 0x0c
	driverAck        = 0x0e
	driverRAMSave    = 0x16
	driverRAMLoad    = 0x17
	driverLenslok    = 0x19
	driverShowBitmap = 0x20
	driverDiscCheck  = 0x22
	driverNextPart   = 0x0b
)

const randomSeedBump = 0x0a

// DriverGateway dispatches the numeric driver sub-function codes found
// in list9+0 to host services (§4.7). Unknown sub-functions are no-ops.
type DriverGateway struct {
	ws         *Workspace
	host       HostAdapter
	printer    *TextPrinter
	randomSeed uint16
}

// NewDriverGateway wires the gateway to the workspace (for RAM slots),
// the host adapter, and the shared print sink.
func NewDriverGateway(ws *Workspace, host HostAdapter, printer *TextPrinter) *DriverGateway {
	return &DriverGateway{ws: ws, host: host, printer: printer}
}

// SeedRandom sets the RNG seed, as `#seed N` does.
func (g *DriverGateway) SeedRandom(seed uint16) { g.randomSeed = seed }

// bumpSeed advances the RNG recurrence (§8 scenario S2).
func (g *DriverGateway) bumpSeed() uint16 {
	s := uint32(g.randomSeed)
	s = (((s << 8) + randomSeedBump - s) << 2) + s + 1
	g.randomSeed = uint16(s)
	return g.randomSeed
}

// Random implements the `random` function opcode: bump the seed and
// return its low byte, the value the function opcode writes to its
// target variable.
func (g *DriverGateway) Random() byte {
	return byte(g.bumpSeed() & 0xff)
}

// NextPartRequest is returned by CallDriver when the driver call
// requested loading a new game part; the interpreter performs the
// actual reload since it owns StoryMemory, not the gateway.
type NextPartRequest struct {
	Requested bool
	Filename  string
}

// CallDriver dispatches on list9[0]. list9 is the 32-byte parsed-input
// area (also reused as the driver's argument/result block). filename is
// the currently loaded story's recorded name, used by the next-part
// loader's prompt path.
func (g *DriverGateway) CallDriver(list9 []byte, filename string) NextPartRequest {
	d0 := list9[0]

	switch d0 {
	case driverRAMSave, driverRAMLoad:
		g.ramSlotCall(d0, list9)
	case driverNextPart:
		return g.nextPartCall(list9, filename)
	default:
		g.simpleCall(d0, list9)
	}

	return NextPartRequest{}
}

func (g *DriverGateway) ramSlotCall(d0 byte, list9 []byte) {
	d1 := list9[1]
	var status byte

	switch {
	case d1 > 0xfa:
		status = 1
	case int(d1)+1 >= ramSaveSlots:
		status = 0xff
	default:
		status = 0
		if d0 == driverRAMSave {
			_ = g.ws.RAMSave(int(d1) + 1)
		} else {
			_ = g.ws.RAMLoad(int(d1) + 1)
		}
	}

	list9[0] = status
}

func (g *DriverGateway) nextPartCall(list9 []byte, filename string) NextPartRequest {
	if list9[1] == 0 {
		g.printer.PrintString("\rSearching for next game part.\r")
		newName, ok := g.host.GetNextGameFile(filename)
		if !ok {
			g.printer.PrintString("\rFailed to load game.\r")
			return NextPartRequest{}
		}
		return NextPartRequest{Requested: true, Filename: newName}
	}
	return NextPartRequest{Requested: true, Filename: g.host.SetFileNumber(filename, list9[1])}
}

func (g *DriverGateway) simpleCall(d0 byte, list9 []byte) {
	switch d0 {
	case driverReadChar:
		list9[1] = g.host.ReadChar(20)
	case driverRandom:
		v := g.bumpSeed()
		list9[1] = byte(v)
		list9[2] = byte(v >> 8)
	case driverAck:
		list9[1] = 0
	case driverLenslok:
		g.printer.PrintString("\rLenslok code is ")
		g.printer.PrintChar(list9[1])
		g.printer.PrintChar(list9[2])
		g.printer.PrintChar('\r')
	case driverShowBitmap:
		g.host.ShowBitmap(uint16(list9[1]))
	case driverDiscCheck:
		list9[1] = 0
		list9[2] = 0
	}
}
