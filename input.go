// input.go - one capture channel: its routes fan a single sample out
// to every output channel it feeds.

package main

import "sync/atomic"

// Input represents one channel of the capture device. It owns the
// ordered list of Routes that originate from it and tracks whether it
// produced any non-zero sample since the last reset, which the
// supervisor uses to refresh the ConditionRegistry.
type Input struct {
	Channel Channel
	Routes  []*Route

	isPlaying atomic.Bool
}

func NewInput(channel Channel, routes []*Route) *Input {
	return &Input{Channel: channel, Routes: routes}
}

// Route fans sample out through every owned Route, accumulating each
// route's contribution into renderBlock at its destination channel.
func (in *Input) Route(sample float64, renderBlock []float64) {
	if sample != 0 {
		in.isPlaying.Store(true)
	}
	for _, r := range in.Routes {
		renderBlock[r.Destination] += r.Process(sample)
	}
}

// EvalConditions refreshes every owned route's cached condition state.
// Called by the supervisor on its slow tick, never from the hot path.
func (in *Input) EvalConditions() {
	for _, r := range in.Routes {
		r.EvalConditions()
	}
}

func (in *Input) Reset() {
	for _, r := range in.Routes {
		r.Reset()
	}
	in.isPlaying.Store(false)
}

// ResetIsPlaying reports whether this channel produced a non-zero
// sample since the last call and clears the flag for the next window.
func (in *Input) ResetIsPlaying() bool {
	return in.isPlaying.Swap(false)
}
