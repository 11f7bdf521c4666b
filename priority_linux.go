//go:build linux

// priority_linux.go - promotes the process to a high scheduling
// priority during steady-state playback to avoid starvation under load.

package main

import "golang.org/x/sys/unix"

func raiseProcessPriority() error {
	pid := unix.Getpid()
	if err := unix.Setpriority(unix.PRIO_PROCESS, pid, -10); err != nil {
		return NewEngineError(ErrDeviceUnavailable, err)
	}
	return nil
}
