// list_handler.go - list-mode addressing for opcodes with the top bit set (§4.8)

package main

// ListHandler resolves the top-bit-set opcode form, which treats the low
// 5 bits as a list selector (one of the header's 12 pointers) and the
// next two bits as a read/write x constant/variable offset mode.
type ListHandler struct {
	mem    *StoryMemory
	ws     *Workspace
	header *StoryHeader
}

// NewListHandler builds a list handler bound to the story and workspace
// the opcode interpreter shares.
func NewListHandler(mem *StoryMemory, ws *Workspace, header *StoryHeader) *ListHandler {
	return &ListHandler{mem: mem, ws: ws, header: header}
}

// listBase returns the base address of list (code+1)&0x1f, the running
// size of that list's backing store, and whether it lives in the
// workspace's own list area rather than story memory.
func (h *ListHandler) listBase(code byte) (base uint16, size uint16, inWS bool) {
	idx := (code + 1) & 0x1f
	if int(idx) >= len(h.header.Pointers.Values) {
		return 0, 0, false
	}
	inWS = h.header.Pointers.InWorkspace[idx]
	base = h.header.Pointers.Values[idx]
	if inWS {
		size = listAreaSize
	} else {
		size = uint16(h.mem.Size())
	}
	return base, size, inWS
}

func (h *ListHandler) readAt(base, size uint16, inWS bool, index uint16) uint16 {
	addr := base + index
	if addr >= size {
		return 0
	}
	if inWS {
		return uint16(h.ws.ListArea[addr])
	}
	return uint16(h.mem.ReadByte(addr))
}

func (h *ListHandler) writeAt(base, size uint16, inWS bool, index uint16, value byte) {
	addr := base + index
	if addr >= size {
		return
	}
	if inWS {
		h.ws.ListArea[addr] = value
	} else {
		h.mem.WriteByte(addr, value)
	}
}

// Execute performs one list-mode instruction. code is the full opcode
// byte (top bit set); offset is either a constant byte or a variable
// value depending on code&0x20; target is the var_table index the
// instruction reads from or writes to depending on code&0x40.
func (h *ListHandler) Execute(code byte, offset uint16, varRef *uint16) {
	base, size, inWS := h.listBase(code)

	switch {
	case code&0xe0 == 0xe0:
		*varRef = h.readAt(base, size, inWS, offset)
	case code&0xc0 == 0xc0:
		*varRef = h.readAt(base, size, inWS, offset)
	case code&0xa0 == 0xa0:
		h.writeAt(base, size, inWS, offset, byte(*varRef))
	default:
		h.writeAt(base, size, inWS, offset, byte(*varRef))
	}
}
