// message_v34.go - V3/V4 message block decoder + packed-dictionary word expansion

package main

// msgTerminatorRef is the word ref that ends a V3/V4 message body.
const msgTerminatorRef = 0x8f80

// MessageDecoderV34 decodes message numbers for V3/V4 stories (§4.3).
// d5 (the active case-bits group) and mdtMode are file-scope state in
// the original and deliberately carried across calls here: the casing
// of one word can depend on the previous word's case bits (§9 open
// question).
type MessageDecoderV34 struct {
	mem     *StoryMemory
	header  *StoryHeader
	printer *TextPrinter
	dict    *DictUnpacker

	d5          uint8
	mdtMode     int
	threeChars  [34]byte
}

// NewMessageDecoderV34 builds a decoder bound to a story, its parsed
// header, and the print sink words expand into.
func NewMessageDecoderV34(mem *StoryMemory, header *StoryHeader, printer *TextPrinter) *MessageDecoderV34 {
	return &MessageDecoderV34{
		mem:     mem,
		header:  header,
		printer: printer,
		dict:    NewDictUnpacker(mem),
	}
}

// getMDLength reads a variable-length count encoded as a chain of 6-bit
// groups, each contributing (byte-1)&0x3f, continuing while a group
// equals 0x3f. Returns the total and the advanced pointer.
func (d *MessageDecoderV34) getMDLength(ptr uint16) (uint16, uint16) {
	var total uint16
	for {
		b := d.mem.ReadByte(ptr)
		ptr++
		length := uint16(b-1) & 0x3f
		total += length
		if length != 0x3f {
			break
		}
	}
	return total, ptr
}

// PrintMessage decodes message number msg starting from start_md,
// skipping skip-records and walking to the msg-th body, then expands
// every word ref in that body (§4.3 step 1-3).
func (d *MessageDecoderV34) PrintMessage(msg uint16) {
	msgPtr := d.header.StartMD

	for msg > 0 && msg < 0x8000 && msgPtr <= d.header.EndMD {
		data := d.mem.ReadByte(msgPtr)
		if data&0x80 != 0 {
			msgPtr++
			msg -= uint16(data & 0x7f)
		} else {
			var length uint16
			length, msgPtr = d.getMDLength(msgPtr)
			msgPtr += length
		}
		msg--
	}

	if msg&0x8000 != 0 || d.mem.ReadByte(msgPtr)&0x80 != 0 {
		return
	}

	length, msgPtr := d.getMDLength(msgPtr)

	for length > 0 {
		data := d.mem.ReadByte(msgPtr)
		msgPtr++
		length--

		var ref uint16
		if data&0x80 != 0 {
			ref = (uint16(data) << 8) | uint16(d.mem.ReadByte(msgPtr))
			msgPtr++
			length--
		} else {
			idx := uint16(data) * 2
			hi := d.mem.ReadByte(d.header.WordTable + idx)
			lo := d.mem.ReadByte(d.header.WordTable + idx + 1)
			ref = (uint16(hi) << 8) | uint16(lo)
		}

		if ref == msgTerminatorRef {
			break
		}
		d.displayWordRef(ref)
	}
}

// displayWordRef expands a single 16-bit word ref: either a dictionary
// word (off < 0xf80) or a literal control character (§4.3 step 4, "Word
// expansion").
func (d *MessageDecoderV34) displayWordRef(ref uint16) {
	d.dict.WordCase = false
	d.d5 = uint8((ref >> 12) & 7)
	off := ref & 0xfff

	if off < 0xf80 {
		if d.mdtMode == 1 {
			d.printer.PrintChar(0x20)
		}
		d.mdtMode = 1

		a0 := d.header.DictDataV34()
		groupCount := d.header.DictDataLen
		a0Org := a0

		for groupCount > 0 && off >= d.mem.ReadWord(a0+2) {
			a0 += 4
			groupCount--
		}

		var dictAddr uint16
		if a0 == a0Org {
			dictAddr = d.header.DefDict
		} else {
			a0 -= 4
			off -= d.mem.ReadWord(a0 + 2)
			dictAddr = d.mem.ReadWord(a0)
		}

		off++
		d.dict.Init(dictAddr)

		var n int
		for {
			code := d.dict.NextCode()
			if code < 0x1c {
				var ch byte
				if code >= 0x1a {
					ch = d.dict.LongCode()
				} else {
					ch = code + 0x61
				}
				if n < len(d.threeChars) {
					d.threeChars[n] = ch
					n++
				}
			} else {
				n = int(code & 3)
				off--
				if off == 0 {
					break
				}
			}
		}

		for i := 0; i < n; i++ {
			d.PrintAutoCase(d.threeChars[i])
		}

		for {
			code := d.dict.NextCode()
			if code >= 0x1b {
				return
			}
			d.PrintAutoCase(d.dict.Letter(code))
		}
	}

	d.mdtMode = 2
	if d.d5&2 != 0 {
		d.printer.PrintChar(0x20)
	}
	lit := off & 0x7f
	if lit != 0x7e {
		d.printer.PrintChar(byte(lit))
	}
	if d.d5&1 != 0 {
		d.printer.PrintChar(0x20)
	}
}

// PrintAutoCase applies the casing policy described in §4.3: literal
// control bytes print as-is; otherwise an escaped uppercase-next flag
// wins, then the case-bits group from the most recent word ref, else
// uppercase with the flag consumed.
func (d *MessageDecoderV34) PrintAutoCase(c byte) {
	if c&0x80 != 0 {
		d.printer.PrintChar(c)
		return
	}
	if d.dict.WordCase {
		d.printer.PrintChar(toUpperASCII(c))
		return
	}
	if d.d5 < 6 {
		d.printer.PrintChar(c)
		return
	}
	d.dict.WordCase = false
	d.printer.PrintChar(toUpperASCII(c))
}

// FindMsgEquiv walks the message block looking for long-form word refs
// whose low 12 bits equal wordIndex, packing ((ref<<1)&0xe000)|msgIndex
// for each match. Implemented per the plain-English description in
// spec.md §4.5 step 7 rather than the original's dual-path
// skip-optimization for scan-only bodies (see DESIGN.md).
func (d *MessageDecoderV34) FindMsgEquiv(wordIndex uint16, maxEntries int) []uint16 {
	var out []uint16
	msgIndex := uint16(0xffff)
	a2 := d.header.StartMD

	for {
		if a2 > d.header.EndMD {
			return out
		}
		msgIndex++
		data := d.mem.ReadByte(a2)

		if data&0x80 != 0 {
			a2++
			msgIndex += uint16(data & 0x7f)
			continue
		}

		length, next := d.getMDLength(a2)
		a2 = next
		remaining := int(length)

		for remaining > 0 {
			b := d.mem.ReadByte(a2)
			a2++
			remaining--
			if b&0x80 == 0 {
				continue
			}
			if b < 0x90 {
				a2++
				remaining--
				continue
			}
			ref := (uint16(b) << 8) | uint16(d.mem.ReadByte(a2))
			a2++
			remaining--
			if wordIndex == ref&0xfff {
				packed := ((ref << 1) & 0xe000) | msgIndex
				out = append(out, packed)
				if len(out) >= maxEntries {
					return out
				}
			}
		}
	}
}
