//go:build !linux

// priority_other.go - non-Linux fallback; raising scheduling class is
// platform-specific and out of scope beyond the Linux path.

package main

func raiseProcessPriority() error { return nil }
