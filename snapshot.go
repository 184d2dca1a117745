// snapshot.go - save/restore record layout and checksum (§4.9, §6.3)

package main

import "encoding/binary"

const (
	snapshotSize     = 2848
	snapshotVarTable = 16
	snapshotListArea = 528
	snapshotStack    = 2576
	snapshotFilename = 2832
	snapshotFnameLen = 16
)

// encodeSnapshot lays out the workspace exactly as §6.3 describes:
// header fields, var_table, list_area, stack, filename, with the
// checksum computed over the whole record with the checksum field
// zeroed.
func encodeSnapshot(ws *Workspace, filename string) []byte {
	buf := make([]byte, snapshotSize)

	binary.LittleEndian.PutUint32(buf[0:], workspaceID)
	binary.LittleEndian.PutUint16(buf[4:], ws.CodePtr)
	binary.LittleEndian.PutUint16(buf[6:], ws.StackPtr)
	binary.LittleEndian.PutUint16(buf[8:], listAreaSize)
	binary.LittleEndian.PutUint16(buf[10:], stackSize)

	name := []byte(filename)
	if len(name) > snapshotFnameLen {
		name = name[:snapshotFnameLen]
	}
	binary.LittleEndian.PutUint16(buf[12:], uint16(len(name)))
	binary.LittleEndian.PutUint16(buf[14:], 0) // checksum, filled below

	for i, v := range ws.VarTable {
		binary.LittleEndian.PutUint16(buf[snapshotVarTable+2*i:], v)
	}
	copy(buf[snapshotListArea:], ws.ListArea[:])
	for i, v := range ws.Stack {
		binary.LittleEndian.PutUint16(buf[snapshotStack+2*i:], v)
	}
	copy(buf[snapshotFilename:], name)

	var sum uint16
	for _, b := range buf {
		sum += uint16(b)
	}
	binary.LittleEndian.PutUint16(buf[14:], sum)

	return buf
}

// decodeSnapshot validates a record's id and checksum and, on success,
// returns a freshly parsed copy of it. It does not mutate ws.
func decodeSnapshot(buf []byte) (*decodedSnapshot, error) {
	if len(buf) != snapshotSize {
		return nil, &SnapshotError{Operation: "restore", Details: "wrong record size"}
	}
	if binary.LittleEndian.Uint32(buf[0:]) != workspaceID {
		return nil, &SnapshotError{Operation: "restore", Details: "bad id"}
	}

	storedChecksum := binary.LittleEndian.Uint16(buf[14:])
	check := make([]byte, len(buf))
	copy(check, buf)
	binary.LittleEndian.PutUint16(check[14:], 0)
	var sum uint16
	for _, b := range check {
		sum += uint16(b)
	}
	if sum != storedChecksum {
		return nil, &SnapshotError{Operation: "restore", Details: "checksum mismatch"}
	}

	d := &decodedSnapshot{
		codePtr:  binary.LittleEndian.Uint16(buf[4:]),
		stackPtr: binary.LittleEndian.Uint16(buf[6:]),
	}
	fnameLen := binary.LittleEndian.Uint16(buf[12:])
	if fnameLen > snapshotFnameLen {
		fnameLen = snapshotFnameLen
	}
	d.filename = string(buf[snapshotFilename : snapshotFilename+fnameLen])

	for i := range d.varTable {
		d.varTable[i] = binary.LittleEndian.Uint16(buf[snapshotVarTable+2*i:])
	}
	copy(d.listArea[:], buf[snapshotListArea:snapshotListArea+listAreaSize])
	for i := range d.stack {
		d.stack[i] = binary.LittleEndian.Uint16(buf[snapshotStack+2*i:])
	}

	return d, nil
}

type decodedSnapshot struct {
	codePtr  uint16
	stackPtr uint16
	varTable [varTableSize]uint16
	listArea [listAreaSize]byte
	stack    [stackSize]uint16
	filename string
}

// saveGame encodes the current workspace and hands it to the host.
func (ip *Interpreter) saveGame() {
	buf := encodeSnapshot(ip.ws, ip.filename)
	if !ip.host.SaveFile(buf) {
		ip.printer.PrintString("\rSave failed.\r")
	}
}

// restoreGame loads a snapshot from the host. full selects whether
// code_ptr is taken from the snapshot ("full restore") or left as-is
// ("normal restore", which only replaces var_table and list_area).
// On any failure the workspace is rolled back to its pre-restore state.
func (ip *Interpreter) restoreGame(full bool) {
	buf := make([]byte, snapshotSize)
	n, ok := ip.host.LoadFile(buf)
	if !ok || n != snapshotSize {
		ip.printer.PrintString("\rRestore failed.\r")
		return
	}

	snap, err := decodeSnapshot(buf)
	if err != nil {
		ip.printer.PrintString("\rRestore failed.\r")
		return
	}

	if !strEqualFold(snap.filename, ip.filename) {
		ip.printer.PrintString("\rThat save is from a different game. Restore anyway (Y/N)? ")
		c := ip.host.ReadChar(0)
		if c != 'y' && c != 'Y' {
			return
		}
	}

	ip.ws.VarTable = snap.varTable
	ip.ws.ListArea = snap.listArea
	if full {
		ip.ws.CodePtr = snap.codePtr
		ip.ws.StackPtr = snap.stackPtr
		ip.ws.Stack = snap.stack
	}
}

func strEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
