//go:build !headless

// host_live.go - interactive HostAdapter: terminal + graphics + file store

package main

import (
	"fmt"
	"os"
)

// defaultSaveName is the single save slot a live session writes to; the
// driver gateway's RAM-save slots (§4.6) are separate and held entirely
// in memory.
const defaultSaveName = "game.sav"

// LiveHost wires a terminal for character I/O, an ebiten window for
// picture display, and a sandboxed file store for save/script/story
// access into one HostAdapter.
type LiveHost struct {
	term  *TerminalHost
	gfx   *GraphicsHost
	store *FileStore
}

// NewLiveHost starts the terminal and graphics surfaces and returns a
// ready HostAdapter.
func NewLiveHost(store *FileStore, assetsDir string) *LiveHost {
	term := NewTerminalHost()
	term.Start()

	gfx := NewGraphicsHost(NewPictureLoader(assetsDir))
	gfx.Start()

	return &LiveHost{term: term, gfx: gfx, store: store}
}

// Close stops the terminal, restoring the caller's shell.
func (h *LiveHost) Close() {
	h.term.Stop()
}

func (h *LiveHost) PrintChar(c byte)               { h.term.PrintChar(c) }
func (h *LiveHost) Flush()                         { h.term.Flush() }
func (h *LiveHost) InputLine(buf []byte) (int, bool) { return h.term.InputLine(buf) }
func (h *LiveHost) ReadChar(millis int) byte       { return h.term.ReadChar(millis) }

func (h *LiveHost) SaveFile(data []byte) bool {
	return h.store.WriteSave(defaultSaveName, data)
}

func (h *LiveHost) LoadFile(buf []byte) (int, bool) {
	return h.store.ReadSave(defaultSaveName, buf)
}

// GetNextGameFile probes for currentName with its trailing part number
// incremented, used when the driver gateway requests the next part of a
// multi-part game and the player has not pre-specified a file number.
func (h *LiveHost) GetNextGameFile(currentName string) (string, bool) {
	part := trailingDigit(currentName)
	candidate := NextPartName(currentName, part+1)
	if _, ok := h.store.LoadStoryFile(candidate); ok {
		return candidate, true
	}
	return "", false
}

func (h *LiveHost) SetFileNumber(currentName string, part byte) string {
	return NextPartName(currentName, part)
}

func (h *LiveHost) LoadStory(name string) ([]byte, bool) {
	return h.store.LoadStoryFile(name)
}

func (h *LiveHost) Graphics(on bool)    { h.gfx.Graphics(on) }
func (h *LiveHost) ClearGraphics()      { h.gfx.ClearGraphics() }
func (h *LiveHost) ShowBitmap(n uint16) { h.gfx.ShowBitmap(n) }

func (h *LiveHost) OpenScriptFile(name string) (ScriptReader, bool) {
	return h.store.OpenScript(name)
}

func (h *LiveHost) FatalError(format string, args ...any) {
	h.term.Stop()
	fmt.Fprintf(os.Stderr, "amachine: "+format+"\n", args...)
	os.Exit(1)
}
