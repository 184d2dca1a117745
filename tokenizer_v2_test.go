package main

import "testing"

// newTestTokenizerV2WithDict builds a tokenizer over an embedded V2
// dictionary containing two flat tokens: "go" and "north", each
// terminated by setting the high bit on its final byte.
func newTestTokenizerV2WithDict(host HostAdapter) (*TokenizerV2, *Workspace) {
	buf := make([]byte, 64)
	dictBase := 20
	copy(buf[dictBase:], "go")
	buf[dictBase+1] |= 0x80
	copy(buf[dictBase+2:], "north")
	buf[dictBase+6] |= 0x80
	// Pad the rest of the dictionary region with single-byte terminated
	// (empty) tokens so a failed scan runs to the end of story memory
	// instead of reading an unterminated token past the last real word.
	for i := dictBase + 7; i < len(buf); i++ {
		buf[i] = 0x80
	}

	mem := NewStoryMemory(buf)
	header := &StoryHeader{Version: GameV2}
	header.Pointers.Values[hpDictData] = uint16(dictBase)
	ws := &Workspace{}
	tok := NewTokenizerV2(mem, header, ws, host, &fakeMetaActions{})
	return tok, ws
}

func TestTokenizerV2MatchWordExact(t *testing.T) {
	tok, _ := newTestTokenizerV2WithDict(&recordingHost{})
	if !tok.matchWord(20, []byte("go")) {
		t.Fatalf("matchWord did not match \"go\" against its own token")
	}
}

func TestTokenizerV2MatchWordRejectsPartial(t *testing.T) {
	tok, _ := newTestTokenizerV2WithDict(&recordingHost{})
	if tok.matchWord(20, []byte("g")) {
		t.Fatalf("matchWord matched a strict prefix as exact")
	}
}

func TestTokenizerV2MatchWordCaseInsensitive(t *testing.T) {
	tok, _ := newTestTokenizerV2WithDict(&recordingHost{})
	if !tok.matchWord(22, []byte("NORTH")) {
		t.Fatalf("matchWord did not match an uppercase-typed \"NORTH\"")
	}
}

func TestTokenizerV2TokenLengthStopsAtHighBit(t *testing.T) {
	tok, _ := newTestTokenizerV2WithDict(&recordingHost{})
	if n := tok.tokenLength(20); n != 2 {
		t.Fatalf("tokenLength(\"go\") = %d, want 2", n)
	}
	if n := tok.tokenLength(22); n != 5 {
		t.Fatalf("tokenLength(\"north\") = %d, want 5", n)
	}
}

func TestTokenizerV2LookupFindsSecondToken(t *testing.T) {
	tok, _ := newTestTokenizerV2WithDict(&recordingHost{})
	idx, found := tok.lookup([]byte("north"))
	if !found {
		t.Fatalf("lookup did not find \"north\"")
	}
	if idx != 1 {
		t.Fatalf("lookup index = %d, want 1", idx)
	}
}

func TestTokenizerV2LookupMissingWordFails(t *testing.T) {
	tok, _ := newTestTokenizerV2WithDict(&recordingHost{})
	if _, found := tok.lookup([]byte("xyzzy")); found {
		t.Fatalf("lookup found a word that is not in the dictionary")
	}
}

func TestTokenizerV2ParseFillsFirstWordAndCount(t *testing.T) {
	host := &lineHostV2{}
	tok, ws := newTestTokenizerV2WithDict(host)
	host.inputLine = "go north"

	list9 := make([]byte, 8)
	if !tok.Parse(list9) {
		t.Fatalf("Parse returned false")
	}
	if ws.VarTable[0] != 'g' || ws.VarTable[1] != 'o' || ws.VarTable[2] != 0 {
		t.Fatalf("first word vars = %v, want g/o/0", ws.VarTable[:3])
	}
	if ws.VarTable[3] != 2 {
		t.Fatalf("word count = %d, want 2", ws.VarTable[3])
	}
}

func TestTokenizerV2ParseMetaCommandReturnsFalse(t *testing.T) {
	host := &lineHostV2{}
	tok, _ := newTestTokenizerV2WithDict(host)
	host.inputLine = "#save"

	list9 := make([]byte, 8)
	if tok.Parse(list9) {
		t.Fatalf("Parse returned true for a meta-command line, want false")
	}
}

// lineHostV2 mirrors lineHost for the V2 tokenizer's tests (kept separate
// so each tokenizer's test file is self-contained).
type lineHostV2 struct {
	recordingHost
	inputLine string
	delivered bool
}

func (h *lineHostV2) InputLine(buf []byte) (int, bool) {
	if h.delivered {
		return 0, false
	}
	h.delivered = true
	n := copy(buf, h.inputLine)
	return n, true
}
