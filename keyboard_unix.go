//go:build !windows

// keyboard_unix.go - raw-mode digit-key (1-9) reader for selecting an
// alternate config file at runtime.

package main

import (
	"os"

	"golang.org/x/term"
)

// DigitKeyReader puts stdin into raw mode and reports each digit key
// (1-9) pressed on Digits, restoring the terminal on Close.
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
