// filter_cancellation_test.go - standing-wave cancellation delay+gain.

package main

import "testing"

func TestCancellationFilterDelaysAndInverts(t *testing.T) {
	c := NewCancellationFilter(48000, 100, 0)
	periodSamples := SampleDelay(48000, 1000.0/100, false)

	c.Process(1)
	for i := uint32(1); i < periodSamples; i++ {
		c.Process(0)
	}
	got := c.Process(0)
	requireFloatNear(t, "cancellation output one period later", got, -1, 1e-9)
}

func TestCancellationFilterResetClearsDelayState(t *testing.T) {
	c := NewCancellationFilter(48000, 100, 0)
	c.Process(1)
	c.Reset()
	periodSamples := SampleDelay(48000, 1000.0/100, false)
	var got float64
	for i := uint32(0); i < periodSamples; i++ {
		got = c.Process(0)
	}
	requireFloatNear(t, "post-reset cancellation output", got, 0, 0)
}
