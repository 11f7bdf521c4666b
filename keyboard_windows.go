//go:build windows

// keyboard_windows.go - digit-key reader for Windows; the raw-mode
// terminal path (golang.org/x/term) behaves the same on Windows as on
// unix, so this is a copy of keyboard_unix.go's implementation on the
// other side of the build tag split.

package main

import (
	"os"

	"golang.org/x/term"
)

type DigitKeyReader struct {
	fd       int
	oldState *term.State
	Digits   chan rune
	done     chan struct{}
}

func NewDigitKeyReader() (*DigitKeyReader, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return &DigitKeyReader{Digits: make(chan rune), done: make(chan struct{})}, nil
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, NewEngineError(ErrDeviceUnavailable, err)
	}
	r := &DigitKeyReader{fd: fd, oldState: oldState, Digits: make(chan rune, 1), done: make(chan struct{})}
	go r.loop()
	return r, nil
}

func (r *DigitKeyReader) loop() {
	buf := make([]byte, 1)
	for {
		select {
		case <-r.done:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		if buf[0] >= '1' && buf[0] <= '9' {
			select {
			case r.Digits <- rune(buf[0]):
			default:
			}
		}
	}
}

func (r *DigitKeyReader) Close() error {
	close(r.done)
	if r.oldState != nil {
		return term.Restore(r.fd, r.oldState)
	}
	return nil
}
