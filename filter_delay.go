// filter_delay.go - ring-buffer delay line used for acoustic alignment
// and as the basis of the Cancellation filter.

package main

import (
	"fmt"
	"math"
)

// SpeedOfSoundMPerS is used to convert a meter-denominated delay into
// milliseconds. Whether this should vary with altitude/temperature is
// left unresolved; we keep it a fixed constant.
const SpeedOfSoundMPerS = 343.0

// SampleDelay computes the ring-buffer size in samples for a delay
// given in milliseconds (or meters, converted via SpeedOfSoundMPerS).
func SampleDelay(sampleRate uint32, value float64, useMeters bool) uint32 {
	ms := value
	if useMeters {
		ms = 1000.0 * value / SpeedOfSoundMPerS
	}
	return uint32(math.Round(float64(sampleRate) * ms / 1000.0))
}

// DelayFilter is a ring-buffer delay of fixed size, in samples.
type DelayFilter struct {
	buf       []float64
	index     uint32
	size      uint32
	delay     float64
	useMeters bool
}

// NewDelayFilter builds a delay line. Callers must reject size==0
// before constructing one: the route and output compilers drop a
// zero-sample delay at configuration time with a warning; it is not
// silently built here.
func NewDelayFilter(sampleRate uint32, value float64, useMeters bool) *DelayFilter {
	size := SampleDelay(sampleRate, value, useMeters)
	return &DelayFilter{
		buf:       make([]float64, size),
		size:      size,
		delay:     value,
		useMeters: useMeters,
	}
}

func (d *DelayFilter) Process(x float64) float64 {
	if d.index == d.size {
		d.index = 0
	}
	out := d.buf[d.index]
	d.buf[d.index] = x
	d.index++
	return out
}

func (d *DelayFilter) Reset() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.index = 0
}

func (d *DelayFilter) String() string {
	unit := "ms"
	if d.useMeters {
		unit = "m"
	}
	return fmt.Sprintf("Delay: %.1f%s (%d samples)", d.delay, unit, d.size)
}
