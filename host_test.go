package main

// recordingHost is a minimal HostAdapter used across tests: it records
// every character sent to PrintChar and otherwise no-ops.
type recordingHost struct {
	printed     []byte
	fatalCalled bool
	fatalMsg    string
}

func (h *recordingHost) PrintChar(c byte)                  { h.printed = append(h.printed, c) }
func (h *recordingHost) Flush()                             {}
func (h *recordingHost) InputLine(buf []byte) (int, bool)   { return 0, false }
func (h *recordingHost) ReadChar(millis int) byte           { return 0 }
func (h *recordingHost) SaveFile(data []byte) bool          { return true }
func (h *recordingHost) LoadFile(buf []byte) (int, bool)    { return 0, false }
func (h *recordingHost) GetNextGameFile(name string) (string, bool) { return "", false }
func (h *recordingHost) SetFileNumber(name string, part byte) string { return name }
func (h *recordingHost) LoadStory(name string) ([]byte, bool) { return nil, false }
func (h *recordingHost) Graphics(on bool)                   {}
func (h *recordingHost) ClearGraphics()                     {}
func (h *recordingHost) ShowBitmap(n uint16)                {}
func (h *recordingHost) OpenScriptFile(name string) (ScriptReader, bool) { return nil, false }
func (h *recordingHost) FatalError(format string, args ...any) {
	h.fatalCalled = true
	h.fatalMsg = format
}

// fakeDriverHost extends recordingHost with configurable responses for
// the driver gateway's host calls.
type fakeDriverHost struct {
	recordingHost
	readCharResp    byte
	nextGameFile    string
	nextGameFileOK  bool
	setFileNumberFn func(name string, part byte) string
	shownBitmap     uint16
	bitmapShown     bool
}

func (h *fakeDriverHost) ReadChar(millis int) byte { return h.readCharResp }

func (h *fakeDriverHost) GetNextGameFile(name string) (string, bool) {
	return h.nextGameFile, h.nextGameFileOK
}

func (h *fakeDriverHost) SetFileNumber(name string, part byte) string {
	if h.setFileNumberFn != nil {
		return h.setFileNumberFn(name, part)
	}
	return name
}

func (h *fakeDriverHost) ShowBitmap(n uint16) {
	h.shownBitmap = n
	h.bitmapShown = true
}
