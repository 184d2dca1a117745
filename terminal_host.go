//go:build !windows

// terminal_host.go - raw-stdin terminal I/O backing the interactive host adapter

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalHost reads raw stdin a byte at a time and buffers it for the
// interpreter's line-input and key-poll requests. Only instantiated for
// interactive use, never in tests.
type TerminalHost struct {
	keys chan byte

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once

	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewTerminalHost creates a terminal host ready to Start().
func NewTerminalHost() *TerminalHost {
	return &TerminalHost{
		keys:   make(chan byte, 256),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw, non-blocking mode and begins reading in a
// goroutine. Call Stop() to restore stdin before the process exits.
func (h *TerminalHost) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal_host: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "terminal_host: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				b := buf[0]
				if b == '\r' {
					b = '\n'
				}
				if b == 0x7f {
					b = 0x08
				}
				select {
				case h.keys <- b:
				default:
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

// Stop terminates the stdin reading goroutine and restores stdin.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// InputLine blocks, echoing typed characters, until Enter or backspace-
// edited input is confirmed, filling buf and returning the byte count.
func (h *TerminalHost) InputLine(buf []byte) (int, bool) {
	n := 0
	for {
		select {
		case b := <-h.keys:
			switch {
			case b == '\n':
				fmt.Print("\r\n")
				return n, true
			case b == 0x08:
				if n > 0 {
					n--
					fmt.Print("\b \b")
				}
			case n < len(buf):
				buf[n] = b
				n++
				fmt.Printf("%c", b)
			}
		case <-h.stopCh:
			return n, false
		}
	}
}

// ReadChar waits up to millis milliseconds for one keypress, returning 0
// on timeout.
func (h *TerminalHost) ReadChar(millis int) byte {
	timer := time.NewTimer(time.Duration(millis) * time.Millisecond)
	defer timer.Stop()
	select {
	case b := <-h.keys:
		return b
	case <-timer.C:
		return 0
	case <-h.stopCh:
		return 0
	}
}

// PrintChar writes one character directly to stdout.
func (h *TerminalHost) PrintChar(c byte) {
	if c == 0x0d {
		fmt.Print("\r\n")
		return
	}
	fmt.Printf("%c", c)
}

// Flush is a no-op: stdout is unbuffered character output here.
func (h *TerminalHost) Flush() {}
