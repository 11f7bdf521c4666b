// output.go - one render-device channel: a post-summing filter chain
// plus clamping and peak-clip accounting.

package main

import "sync/atomic"

// Output represents one channel of the render device. Every Route
// targeting this channel has already summed its contribution into the
// pipeline's render block by the time Process runs; Process applies
// this channel's own filter chain, clamps to the device's valid range,
// and records whether any sample was clamped. Only that yes/no flag is
// kept; the peak level of the clipped samples is not tracked.
type Output struct {
	Channel Channel
	Mute    bool

	filters []Filter

	clipped atomic.Bool
}

func NewOutput(channel Channel, filters []Filter) *Output {
	return &Output{Channel: channel, filters: filters}
}

// Process applies the output's filter chain to sample, then clamps the
// result to [-1, 1]. A muted output short-circuits before the filter
// chain runs: no state update, just silence.
func (o *Output) Process(sample float64) float64 {
	if o.Mute {
		return 0
	}
	for _, f := range o.filters {
		sample = f.Process(sample)
	}
	if sample > 1 {
		o.clipped.Store(true)
		return 1
	}
	if sample < -1 {
		o.clipped.Store(true)
		return -1
	}
	return sample
}

func (o *Output) Reset() {
	for _, f := range o.filters {
		f.Reset()
	}
	o.clipped.Store(false)
}

// ResetClipping reports whether any sample clipped since the last call
// and clears the flag for the next window.
func (o *Output) ResetClipping() bool {
	return o.clipped.Swap(false)
}
