// memory.go - paged game-memory abstraction

package main

// StoryMemory is the byte-addressable virtual address space the VM reads
// and writes its story data through. The original interpreter ran on a
// host whose CPU could not map all of a large story file at once and paged
// it in a window at a time; a portable implementation keeps the whole
// story as one flat slice but must preserve the same observable
// semantics (unaligned little-endian word reads, writes visible to
// subsequent reads, silent degradation past the end of the story).
type StoryMemory struct {
	bytes []byte
}

// NewStoryMemory wraps a story file's bytes. The length must already be
// validated by the caller to be within [256, 65535].
func NewStoryMemory(data []byte) *StoryMemory {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &StoryMemory{bytes: buf}
}

// Size returns the number of addressable bytes.
func (m *StoryMemory) Size() int { return len(m.bytes) }

// ReadByte returns the byte at virtual address p, or 0 if p is out of
// range.
func (m *StoryMemory) ReadByte(p uint16) byte {
	if int(p) >= len(m.bytes) {
		return 0
	}
	return m.bytes[p]
}

// WriteByte stores v at virtual address p. Writes past the end of the
// story are silently dropped.
func (m *StoryMemory) WriteByte(p uint16, v byte) {
	if int(p) >= len(m.bytes) {
		return
	}
	m.bytes[p] = v
}

// ReadWord returns the unaligned little-endian 16-bit word at p: the low
// byte at p, the high byte at p+1.
func (m *StoryMemory) ReadWord(p uint16) uint16 {
	lo := uint16(m.ReadByte(p))
	hi := uint16(m.ReadByte(p + 1))
	return lo | (hi << 8)
}

// WriteWord stores v as an unaligned little-endian word at p.
func (m *StoryMemory) WriteWord(p uint16, v uint16) {
	m.WriteByte(p, byte(v))
	m.WriteByte(p+1, byte(v>>8))
}

// Slice returns a view of length n starting at p, clamped to the story's
// bounds, for callers that need a contiguous run. The view shares the
// backing array, so writing to it writes to story memory.
func (m *StoryMemory) Slice(p uint16, n int) []byte {
	start := int(p)
	if start >= len(m.bytes) {
		return nil
	}
	end := start + n
	if end > len(m.bytes) {
		end = len(m.bytes)
	}
	return m.bytes[start:end]
}

// Raw exposes the backing slice for bulk operations. Nothing in the
// interpreter calls it; the next-part loader swaps stories via Replace.
func (m *StoryMemory) Raw() []byte { return m.bytes }

// Replace swaps in a new story image wholesale, used when a multi-part
// game loads its next part over the running interpreter.
func (m *StoryMemory) Replace(data []byte) {
	m.bytes = make([]byte, len(data))
	copy(m.bytes, data)
}
