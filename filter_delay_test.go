// filter_delay_test.go - ring-buffer delay sizing and wraparound.

package main

import "testing"

func TestSampleDelayMilliseconds(t *testing.T) {
	got := SampleDelay(48000, 10, false)
	if got != 480 {
		t.Fatalf("SampleDelay(48000, 10ms) = %d, want 480", got)
	}
}

func TestSampleDelayMeters(t *testing.T) {
	got := SampleDelay(48000, SpeedOfSoundMPerS, true) // 1 second of travel
	if got != 48000 {
		t.Fatalf("SampleDelay(343m) = %d, want 48000", got)
	}
}

func TestDelayFilterOutputsInputAfterSizeSamples(t *testing.T) {
	d := NewDelayFilter(48000, 1000.0/48000*4, false) // 4 samples
	for i := 1; i <= 4; i++ {
		d.Process(float64(i))
	}
	got := d.Process(0)
	requireFloatNear(t, "delayed sample", got, 1, 0)
}

func TestDelayFilterResetClearsBuffer(t *testing.T) {
	d := NewDelayFilter(48000, 1000.0/48000*4, false)
	for i := 1; i <= 4; i++ {
		d.Process(float64(i))
	}
	d.Reset()
	got := d.Process(0)
	requireFloatNear(t, "post-reset delayed sample", got, 0, 0)
}
