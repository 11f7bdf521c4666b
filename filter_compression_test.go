// filter_compression_test.go - downward compression thresholding and
// the windowed/non-windowed domain asymmetry.

package main

import "testing"

func TestCompressionFilterBelowThresholdIsUnity(t *testing.T) {
	c := NewCompressionFilter(48000, 0, 0.5, 5, 50, 0)
	got := c.Process(0.01)
	requireFloatNear(t, "below-threshold sample", got, 0.01, 1e-9)
}

func TestCompressionFilterZeroInputAlwaysZeroRegardlessOfEnvelope(t *testing.T) {
	c := NewCompressionFilter(48000, -20, 0.25, 5, 50, 10)
	for i := 0; i < 2000; i++ {
		c.Process(1) // drive the envelope hard over several ms
	}
	got := c.Process(0)
	requireFloatNear(t, "zero input with driven envelope", got, 0, 0)
}

func TestCompressionFilterResetClearsState(t *testing.T) {
	c := NewCompressionFilter(48000, -20, 0.25, 5, 50, 10)
	for i := 0; i < 500; i++ {
		c.Process(1)
	}
	c.Reset()
	if c.envelope != 0 || c.squaredSum != 0 {
		t.Fatalf("Reset should clear envelope and window state, got envelope %v, squaredSum %v", c.envelope, c.squaredSum)
	}
}

func TestCompressionFilterWindowedVsNonWindowedDiffer(t *testing.T) {
	windowed := NewCompressionFilter(48000, -10, 0.5, 5, 50, 10)
	plain := NewCompressionFilter(48000, -10, 0.5, 5, 50, 0)

	var wOut, pOut float64
	for i := 0; i < 200; i++ {
		wOut = windowed.Process(0.9)
		pOut = plain.Process(0.9)
	}
	if wOut == pOut {
		t.Fatalf("windowed and non-windowed branches should differ for a 0.9 input over a -10dB threshold, both gave %v", wOut)
	}
}
