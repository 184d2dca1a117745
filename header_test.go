package main

import "testing"

func putWord(buf []byte, offset uint16, v uint16) {
	buf[offset] = byte(v)
	buf[offset+1] = byte(v >> 8)
}

func TestParseGameVersionDigits(t *testing.T) {
	cases := []struct {
		digit byte
		want  GameVersion
	}{
		{'1', GameV1},
		{'2', GameV2},
		{'3', GameV3},
		{'4', GameV4},
	}
	for _, c := range cases {
		v, err := ParseGameVersion(c.digit)
		if err != nil {
			t.Fatalf("ParseGameVersion(%q): %v", c.digit, err)
		}
		if v != c.want {
			t.Fatalf("ParseGameVersion(%q) = %v, want %v", c.digit, v, c.want)
		}
	}
}

func TestParseGameVersionRejectsInvalidDigit(t *testing.T) {
	if _, err := ParseGameVersion('9'); err == nil {
		t.Fatalf("ParseGameVersion('9') succeeded, want error")
	}
}

func TestParseStoryHeaderRejectsV1(t *testing.T) {
	mem := NewStoryMemory(make([]byte, 64))
	if _, err := ParseStoryHeader(mem, GameV1); err == nil {
		t.Fatalf("ParseStoryHeader(GameV1) succeeded, want error")
	}
}

func TestParseStoryHeaderV2Layout(t *testing.T) {
	buf := make([]byte, 64)
	putWord(buf, 0x0, 0x100) // StartMD
	putWord(buf, 0x2, 0x200) // StartMDV2
	putWord(buf, 0x04+2*10, 0x300) // pointer index 10 -> List9Base
	mem := NewStoryMemory(buf)

	h, err := ParseStoryHeader(mem, GameV2)
	if err != nil {
		t.Fatalf("ParseStoryHeader(GameV2): %v", err)
	}
	if h.StartMD != 0x100 {
		t.Fatalf("StartMD = %#x, want 0x100", h.StartMD)
	}
	if h.StartMDV2 != 0x200 {
		t.Fatalf("StartMDV2 = %#x, want 0x200", h.StartMDV2)
	}
	if h.List9Base() != 0x300 {
		t.Fatalf("List9Base() = %#x, want 0x300", h.List9Base())
	}
}

func TestParseStoryHeaderV34Layout(t *testing.T) {
	buf := make([]byte, 64)
	putWord(buf, 0x2, 0x40)  // StartMD
	putWord(buf, 0x4, 0x10)  // message block length
	putWord(buf, 0x6, 0x80)  // DefDict
	putWord(buf, 0x8, 0x20)  // word beyond DefDict+5
	putWord(buf, 0xa, 0x90)  // DictData
	putWord(buf, 0xc, 0x50)  // DictDataLen
	putWord(buf, 0xe, 0xa0)  // WordTable
	mem := NewStoryMemory(buf)

	h, err := ParseStoryHeader(mem, GameV3)
	if err != nil {
		t.Fatalf("ParseStoryHeader(GameV3): %v", err)
	}
	if h.StartMD != 0x40 {
		t.Fatalf("StartMD = %#x, want 0x40", h.StartMD)
	}
	if h.EndMD != 0x50 {
		t.Fatalf("EndMD = %#x, want 0x50 (StartMD + length)", h.EndMD)
	}
	if h.EndWDP5 != 0x80+5+0x20 {
		t.Fatalf("EndWDP5 = %#x, want %#x", h.EndWDP5, 0x80+5+0x20)
	}
	if h.DictDataV34() != 0x90 {
		t.Fatalf("DictDataV34() = %#x, want 0x90", h.DictDataV34())
	}
	if h.WordTable != 0xa0 {
		t.Fatalf("WordTable = %#x, want 0xa0", h.WordTable)
	}
}

func TestParseHeaderPointersRebasesWorkspaceRange(t *testing.T) {
	buf := make([]byte, 64)
	putWord(buf, 0x12, 0x8010) // pointer 0: inside workspace range
	mem := NewStoryMemory(buf)

	hp := parseHeaderPointers(mem, 0x12)
	if !hp.InWorkspace[0] {
		t.Fatalf("InWorkspace[0] = false, want true for raw value 0x8010")
	}
	if hp.Values[0] != 0x10 {
		t.Fatalf("Values[0] = %#x, want 0x10 (rebased)", hp.Values[0])
	}
}

func TestParseHeaderPointersNeverRebasesCodePointer(t *testing.T) {
	buf := make([]byte, 64)
	putWord(buf, 0x12+2*hpACode, 0x8010)
	mem := NewStoryMemory(buf)

	hp := parseHeaderPointers(mem, 0x12)
	if hp.InWorkspace[hpACode] {
		t.Fatalf("InWorkspace[hpACode] = true, want false (code pointer is never workspace-relative)")
	}
	if hp.Values[hpACode] != 0x8010 {
		t.Fatalf("Values[hpACode] = %#x, want 0x8010 (unrebased)", hp.Values[hpACode])
	}
}
