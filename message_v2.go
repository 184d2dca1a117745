// message_v2.go - V2 recursive message decoder

package main

// MessageDecoderV2 decodes V2 messages, a flat recursive structure with
// no packed dictionary: a message is a chain of bytes where small values
// terminate or recurse into another message and everything else maps
// directly to a printable character (§4.4).
type MessageDecoderV2 struct {
	mem     *StoryMemory
	header  *StoryHeader
	printer *TextPrinter
}

// NewMessageDecoderV2 builds a V2 decoder over a story and its header.
func NewMessageDecoderV2(mem *StoryMemory, header *StoryHeader, printer *TextPrinter) *MessageDecoderV2 {
	return &MessageDecoderV2{mem: mem, header: header, printer: printer}
}

// msgLenV2 returns the length of the message at *ptr, advancing ptr past
// any number of 0 "continuation" bytes (each worth +255), per the
// preserved-foible note in §9: a byte value of 0 means "add 255 and
// continue"; overrunning memory_size returns 0, silently printing
// nothing.
func (d *MessageDecoderV2) msgLenV2(ptr uint16) (uint16, uint16) {
	if int(ptr) >= d.mem.Size() {
		return 0, ptr
	}

	var total uint16
	for {
		b := d.mem.ReadByte(ptr)
		if b != 0 {
			total += uint16(b)
			return total, ptr
		}
		ptr++
		if int(ptr) >= d.mem.Size() {
			return 0, ptr
		}
		total += 255
	}
}

// printCharV2 maps the two V2 control codes (CR, space) before applying
// the shared auto-case filter.
func (d *MessageDecoderV2) printCharV2(c byte, wordCase bool) {
	switch c {
	case 0x25:
		c = 0x0d
	case 0x5f:
		c = 0x20
	}
	d.printAutoCaseV2(c, wordCase)
}

// printAutoCaseV2 mirrors MessageDecoderV34.PrintAutoCase but V2 has no
// packed-dictionary case-bits group, so only the uppercase-next style
// escape (never set in V2 — there is no packed dictionary) would apply;
// V2 prints the character as supplied, matching print_char_v2's direct
// call into print_auto_case with d5 always 0 for this dialect.
func (d *MessageDecoderV2) printAutoCaseV2(c byte, wordCase bool) {
	if c&0x80 != 0 {
		d.printer.PrintChar(c)
		return
	}
	if wordCase {
		d.printer.PrintChar(toUpperASCII(c))
		return
	}
	d.printer.PrintChar(c)
}

// displayWordV2 recursively expands message number msg starting at ptr:
// values < 3 terminate, values >= 0x5e recurse into start_md_v2-1, all
// other values print value+0x1d (§4.4).
func (d *MessageDecoderV2) displayWordV2(ptr uint16, msg uint16) {
	if msg == 0 {
		return
	}

	for msg > 1 {
		msg--
		var length uint16
		length, ptr = d.msgLenV2(ptr)
		ptr += length
	}

	n, ptr := d.msgLenV2(ptr)
	if n == 0 {
		return
	}

	for n > 1 {
		n--
		ptr++
		a := d.mem.ReadByte(ptr)
		if a < 3 {
			return
		} else if a >= 0x5e {
			d.displayWordV2(d.header.StartMDV2-1, uint16(a)-0x5d)
		} else {
			d.printCharV2(a+0x1d, false)
		}
	}
}

// PrintMessage decodes message number msg from start_md.
func (d *MessageDecoderV2) PrintMessage(msg uint16) {
	d.displayWordV2(d.header.StartMD, msg)
}
