// tokenizer_v2.go - input_v2: V2 embedded-dictionary line tokenizer (§4.5)

package main

// TokenizerV2 walks a flat dictionary of null-free tokens embedded
// directly in story memory (high bit set on each token's final
// character), matching against the typed line case-insensitively and
// backtracking on a failed partial match.
type TokenizerV2 struct {
	mem     *StoryMemory
	header  *StoryHeader
	ws      *Workspace
	host    HostAdapter
	actions MetaActions
	script  ScriptReader
}

// NewTokenizerV2 builds a tokenizer bound to the running V2 story.
func NewTokenizerV2(mem *StoryMemory, header *StoryHeader, ws *Workspace, host HostAdapter, actions MetaActions) *TokenizerV2 {
	return &TokenizerV2{mem: mem, header: header, ws: ws, host: host, actions: actions}
}

// SetScript redirects subsequent input reads to a `#play` transcript.
func (t *TokenizerV2) SetScript(r ScriptReader) { t.script = r }

func (t *TokenizerV2) readLine() (string, bool) {
	if t.script != nil {
		var buf []byte
		for {
			b, ok := t.script.ReadByte()
			if !ok {
				t.script.Close()
				t.script = nil
				break
			}
			if b == '\n' {
				break
			}
			buf = append(buf, b)
		}
		if len(buf) > 0 || t.script == nil {
			return string(buf), true
		}
	}
	buf := make([]byte, inputLineMax)
	n, ok := t.host.InputLine(buf)
	if !ok {
		return "", false
	}
	return string(buf[:n]), true
}

// dictCharEqual compares a typed character to a dictionary character
// case-insensitively, ignoring the dictionary byte's high bit.
func dictCharEqual(typed, dict byte) bool {
	return toLowerASCII(typed) == toLowerASCII(dict&0x7f)
}

// matchWord attempts to match word (lowercased ASCII, no separators)
// against the dictionary token at ptr, returning true on an exact match
// and false otherwise; the caller's loop moves on to the next token. The
// final character of a token has its high bit set.
func (t *TokenizerV2) matchWord(ptr uint16, word []byte) bool {
	i := 0
	for {
		c := t.mem.ReadByte(ptr)
		last := c&0x80 != 0
		ch := c & 0x7f

		if !isLetterDigit(ch) {
			if i == len(word) {
				return true
			}
			return false
		}

		if i >= len(word) || !dictCharEqual(word[i], ch) {
			return false
		}
		i++
		ptr++
		if last {
			return i == len(word)
		}
	}
}

func (t *TokenizerV2) tokenLength(ptr uint16) uint16 {
	var n uint16
	for {
		c := t.mem.ReadByte(ptr + n)
		n++
		if c&0x80 != 0 {
			return n
		}
	}
}

// lookup scans the embedded dictionary sequentially for a word matching
// word, returning its index and true on success. V2 stories carry no
// explicit dictionary end pointer, so the scan is bounded by story size
// and a generous word-count cap instead.
func (t *TokenizerV2) lookup(word []byte) (uint16, bool) {
	ptr := t.header.DictDataV34()
	end := uint16(t.mem.Size())
	var idx uint16

	const maxWords = 8192
	for i := 0; ptr < end && i < maxWords; i++ {
		if t.matchWord(ptr, word) {
			return idx, true
		}
		ptr += t.tokenLength(ptr)
		idx++
	}
	return 0, false
}

// Parse fills the first four variables with up to three characters of
// the first word (whether or not the dictionary holds it) plus the word
// count, matching
// input_v2's simplified V2 output contract (§4.5).
func (t *TokenizerV2) Parse(list9 []byte) bool {
	line, ok := t.readLine()
	if !ok {
		return false
	}
	if checkHash(line, t.actions) {
		return false
	}

	folded := foldLine(line)
	pos := 0
	wordCount := uint16(0)
	firstWord := [3]byte{}
	haveFirst := false

	for pos < len(folded) {
		for pos < len(folded) && folded[pos] == ' ' {
			pos++
		}
		if pos >= len(folded) {
			break
		}
		if !isLetterDigit(folded[pos]) {
			pos++
			continue
		}

		var word [wordMax]byte
		n := 0
		for pos < len(folded) && isLetterDigit(folded[pos]) && n < wordMax {
			word[n] = toLowerASCII(folded[pos])
			n++
			pos++
		}
		for pos < len(folded) && isLetterDigit(folded[pos]) {
			pos++
		}

		if !haveFirst {
			copy(firstWord[:], word[:n])
			haveFirst = true
		}
		wordCount++
		_, _ = t.lookup(word[:n])
	}

	t.ws.VarTable[0] = uint16(firstWord[0])
	t.ws.VarTable[1] = uint16(firstWord[1])
	t.ws.VarTable[2] = uint16(firstWord[2])
	t.ws.VarTable[3] = wordCount
	return true
}
