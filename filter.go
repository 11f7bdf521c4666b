// filter.go - the common Filter capability every DSP node implements.

package main

// Filter is a per-sample transform with state. Reset must return the
// filter to the state it had before any input was ever processed: after
// Reset, Process(0) called any number of times returns exactly 0.
type Filter interface {
	Process(x float64) float64
	Reset()
	String() string
}
