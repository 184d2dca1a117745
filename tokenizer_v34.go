// tokenizer_v34.go - corrupting_input: V3/V4 line tokenizer + dictionary matcher (§4.5)

package main

const (
	inputLineMax = 500
	wordMax      = 31
)

// TokenizerV34 implements the V3/V4 input path: a meta-command
// preprocessor, punctuation folding, word extraction, and a
// packed-dictionary scan for exact/abbreviation matches.
type TokenizerV34 struct {
	mem     *StoryMemory
	header  *StoryHeader
	ws      *Workspace
	host    HostAdapter
	actions MetaActions
	msg     *MessageDecoderV34
	dict    *DictUnpacker
	script  ScriptReader
}

// NewTokenizerV34 builds a tokenizer bound to the running story.
func NewTokenizerV34(mem *StoryMemory, header *StoryHeader, ws *Workspace, host HostAdapter, actions MetaActions) *TokenizerV34 {
	return &TokenizerV34{
		mem:     mem,
		header:  header,
		ws:      ws,
		host:    host,
		actions: actions,
		msg:     NewMessageDecoderV34(mem, header, NewTextPrinter(host)),
		dict:    NewDictUnpacker(mem),
	}
}

// SetScript redirects subsequent input reads to a `#play` transcript.
func (t *TokenizerV34) SetScript(r ScriptReader) { t.script = r }

func (t *TokenizerV34) readLine() (string, bool) {
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

func isLetterDigit(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isWordSeparator(c byte) bool {
	return c == '-' || c == '\'' || c == '.' || c == ','
}

// foldLine replaces any character that is not alphanumeric and not a
// recognized separator with a space (§4.5 step 3).
func foldLine(line string) []byte {
	out := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		if isLetterDigit(c) || isWordSeparator(c) {
			out[i] = c
		} else {
			out[i] = ' '
		}
	}
	return out
}

// Parse reads one input line (or the next line of an open script) and
// fills list9 with the recognized-word records of §6.4. Returns true
// once a full line has been delivered.
func (t *TokenizerV34) Parse(list9 []byte) bool {
	line, ok := t.readLine()
	if !ok {
		return false
	}
	if checkHash(line, t.actions) {
		return false
	}

	folded := foldLine(line)
	pos := 0
	out := 0

	for pos < len(folded) && out+4 <= len(list9) {
		for pos < len(folded) && folded[pos] == ' ' {
			pos++
		}
		if pos >= len(folded) {
			break
		}

		if !isLetterDigit(folded[pos]) {
			list9[out], list9[out+1], list9[out+2], list9[out+3] = 0, folded[pos], 0, 0
			out += 4
			pos++
			continue
		}

		start := pos
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

		if idx, found := t.lookup(word[:n]); found {
			refs := t.msg.FindMsgEquiv(idx, 8)
			for _, ref := range refs {
				if out+4 > len(list9) {
					break
				}
				list9[out] = byte(ref >> 8)
				list9[out+1] = byte(ref)
				list9[out+2] = 0
				list9[out+3] = 0
				out += 4
			}
			if len(refs) == 0 {
				list9[out] = 0x80
				out += 4
			}
		} else if n > 0 && word[0] >= '0' && word[0] <= '9' {
			value := parseDigits(line[start:pos])
			if t.header.Version == GameV4 {
				list9[out] = 0x01
				list9[out+1] = byte(value)
				list9[out+2] = byte(value >> 8)
				list9[out+3] = 0
			} else {
				list9[out] = byte(value)
				list9[out+1] = byte(value >> 8)
				list9[out+2] = 0
				list9[out+3] = 0
			}
			out += 4
		} else {
			list9[out] = 0x80
			out += 4
		}
	}

	if out+2 <= len(list9) {
		list9[out] = 0
		list9[out+1] = 0
	}
	return true
}

func parseDigits(s string) uint16 {
	var v uint16
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		v = v*10 + uint16(s[i]-'0')
	}
	return v
}

// lookup scans the dictionary group selected by the word's first two
// letters for an exact match, falling back to the best abbreviation
// (input of 3 chars or fewer that is a strict prefix of a candidate).
func (t *TokenizerV34) lookup(word []byte) (uint16, bool) {
	if len(word) == 0 {
		return 0, false
	}

	groupIdx := uint16(word[0]-'a') * 4
	if len(word) > 1 {
		groupIdx += uint16(word[1]-'a') & 3
	}
	groupPtr := t.header.DefDict + groupIdx*2
	dictAddr := t.mem.ReadWord(groupPtr)

	t.dict.Init(dictAddr)

	var abbrevIdx uint16
	haveAbbrev := false
	var wordIdx uint16

	const maxGroupWords = 4096
	for i := 0; i < maxGroupWords; i++ {
		letters, boundary := t.readDictWord()
		if boundary < 0 {
			break
		}

		if matchExact(word, letters) {
			return wordIdx, true
		}
		if len(word) <= 3 && isPrefix(word, letters) {
			abbrevIdx = wordIdx
			haveAbbrev = true
		}
		wordIdx++
	}

	if haveAbbrev {
		return abbrevIdx, true
	}
	return 0, false
}

// readDictWord reads one packed-dictionary entry's letters until a
// boundary marker, returning the letters and the boundary code, or -1
// when more than 64 letters are read without reaching a boundary.
func (t *TokenizerV34) readDictWord() ([]byte, int) {
	var letters []byte
	for {
		code := t.dict.NextCode()
		if code >= 0x1c {
			return letters, int(code)
		}
		var ch byte
		if code >= 0x1a {
			ch = t.dict.LongCode()
		} else {
			ch = code + 0x61
		}
		letters = append(letters, ch)
		if len(letters) > 64 {
			return letters, -1
		}
	}
}

func matchExact(input, candidate []byte) bool {
	if len(input) != len(candidate) {
		return false
	}
	for i := range input {
		if input[i] != candidate[i] {
			return false
		}
	}
	return true
}

func isPrefix(input, candidate []byte) bool {
	if len(input) > len(candidate) {
		return false
	}
	for i := range input {
		if input[i] != candidate[i] {
			return false
		}
	}
	return true
}
