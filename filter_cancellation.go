// filter_cancellation.go - standing-wave cancellation: a delay tuned to
// the target frequency's period, combined with a negated gain.

package main

import "fmt"

// CancellationFilter delays by one period of the target frequency and
// negates (optionally attenuates) the result. Summing this with the
// unprocessed signal cancels energy at that frequency.
type CancellationFilter struct {
	delay *DelayFilter
	gain  *GainFilter
	freq  float64
}

// NewCancellationFilter builds the filter. gainDB is applied in
// addition to the mandatory inversion (-1), so process(x) =
// -10^(gainDB/20) * delayed(x).
func NewCancellationFilter(sampleRate uint32, freq, gainDB float64) *CancellationFilter {
	periodMs := 1000.0 / freq
	return &CancellationFilter{
		delay: NewDelayFilter(sampleRate, periodMs, false),
		gain:  NewGainFilter(gainDB, true),
		freq:  freq,
	}
}

func (c *CancellationFilter) Process(x float64) float64 {
	return c.gain.Process(c.delay.Process(x))
}

func (c *CancellationFilter) Reset() {
	c.delay.Reset()
}

func (c *CancellationFilter) String() string {
	return fmt.Sprintf("Cancellation: %gHz, gain %gdB", c.freq, c.gain.gainDB)
}
