// header.go - game version and header-pointer parsing

package main

import "fmt"

// GameVersion identifies the A-machine dialect a story was compiled for.
type GameVersion int

const (
	GameV1 GameVersion = iota + 1 // rejected after parsing; unsupported
	GameV2
	GameV3
	GameV4
)

// ParseGameVersion converts the side-car descriptor's single ASCII digit
// ('1'..'4') into a GameVersion. '1' parses successfully but callers must
// reject it as unsupported (see §1 non-goals).
func ParseGameVersion(digit byte) (GameVersion, error) {
	switch digit {
	case '1':
		return GameV1, nil
	case '2':
		return GameV2, nil
	case '3':
		return GameV3, nil
	case '4':
		return GameV4, nil
	default:
		return 0, fmt.Errorf("invalid game version digit %q", digit)
	}
}

const (
	workspaceRangeLo = 0x8000
	workspaceRangeHi = 0x9000
)

// headerPointerCount is the number of 16-bit pointers parsed from the
// fixed header offset.
const headerPointerCount = 12

// Indices into HeaderPointers.Values / InWorkspace, named per their role.
const (
	hpAbsDataBlock = 0
	hpDictData     = 1
	hpList2        = 3
	hpList3        = 4
	hpList9        = 10
	hpACode        = 11
)

// HeaderPointers holds the 12 pointer values parsed from the story
// header, along with a per-entry flag recording whether the raw value
// fell in the workspace range [0x8000, 0x9000] and was rebased.
type HeaderPointers struct {
	Values     [headerPointerCount]uint16
	InWorkspace [headerPointerCount]bool
}

// parseHeaderPointers reads the 12 header pointers starting at hdOffset.
// Index 11 (the code base) is never treated as workspace-relative even
// if its raw value falls in the workspace range.
func parseHeaderPointers(mem *StoryMemory, hdOffset uint16) HeaderPointers {
	var hp HeaderPointers
	for i := 0; i < headerPointerCount; i++ {
		raw := mem.ReadWord(hdOffset + uint16(i*2))
		inWS := i != hpACode && raw >= workspaceRangeLo && raw <= workspaceRangeHi
		if inWS {
			hp.Values[i] = raw - workspaceRangeLo
		} else {
			hp.Values[i] = raw
		}
		hp.InWorkspace[i] = inWS
	}
	return hp
}

// StoryHeader bundles the parsed header pointers with the derived
// addresses specific to each game version's message/dictionary layout.
type StoryHeader struct {
	Version GameVersion
	Pointers HeaderPointers

	// V2 only.
	StartMD   uint16
	StartMDV2 uint16

	// V3/V4 only.
	EndMD       uint16
	DefDict     uint16
	EndWDP5     uint16
	DictData    uint16
	DictDataLen uint16
	WordTable   uint16
}

// ParseStoryHeader reads the header offset appropriate to the game
// version (0x04 for V2, 0x12 for V3/V4) and derives the message/
// dictionary addresses documented in §6.2.
func ParseStoryHeader(mem *StoryMemory, version GameVersion) (*StoryHeader, error) {
	if version == GameV1 {
		return nil, &LoadError{Operation: "parse header", Details: "V1 games are not supported"}
	}

	hdOffset := uint16(0x12)
	if version == GameV2 {
		hdOffset = 0x04
	}

	h := &StoryHeader{Version: version, Pointers: parseHeaderPointers(mem, hdOffset)}

	switch version {
	case GameV2:
		h.StartMD = mem.ReadWord(0x0)
		h.StartMDV2 = mem.ReadWord(0x2)
	case GameV3, GameV4:
		h.StartMD = mem.ReadWord(0x2)
		h.EndMD = h.StartMD + mem.ReadWord(0x4)
		h.DefDict = mem.ReadWord(0x6)
		h.EndWDP5 = h.DefDict + 5 + mem.ReadWord(0x8)
		h.DictData = mem.ReadWord(0xa)
		h.DictDataLen = mem.ReadWord(0xc)
		h.WordTable = mem.ReadWord(0xe)
	}

	return h, nil
}

// AbsDataBlock returns the (possibly workspace-relative) exit/object
// table base, header pointer index 0.
func (h *StoryHeader) AbsDataBlock() uint16 { return h.Pointers.Values[hpAbsDataBlock] }

// DictDataV34 returns dict_data: the derived DictData field for V3/V4,
// header pointer index 1 for other versions (level9.c sets
// dict_data twice: once generically from pointer 1, once again from the
// header word at 0x0a for V3/V4 — the V3/V4 value wins for those games).
func (h *StoryHeader) DictDataV34() uint16 {
	if h.Version == GameV3 || h.Version == GameV4 {
		return h.DictData
	}
	return h.Pointers.Values[hpDictData]
}

// List2Base, List3Base, List9Base return the workspace list-area offsets
// for the object parent array, object attribute array, and parsed-input
// area respectively. All three header pointers are always workspace-
// relative in practice, but ParseStoryHeader does not assume that.
func (h *StoryHeader) List2Base() uint16 { return h.Pointers.Values[hpList2] }
func (h *StoryHeader) List3Base() uint16 { return h.Pointers.Values[hpList3] }
func (h *StoryHeader) List9Base() uint16 { return h.Pointers.Values[hpList9] }

// ACodePtr returns the bytecode base address (header pointer index 11).
func (h *StoryHeader) ACodePtr() uint16 { return h.Pointers.Values[hpACode] }
