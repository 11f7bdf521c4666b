// filter_gain_test.go - gain/invert multiplier and no-op detection.

package main

import "testing"

func TestGainFilterUnityAtZeroDB(t *testing.T) {
	g := NewGainFilter(0, false)
	requireFloatNear(t, "0dB gain", g.Process(1), 1, 1e-12)
	if !g.IsNoop() {
		t.Fatal("0dB, no invert should be a no-op")
	}
}

func TestGainFilterSixDBDoublesAmplitude(t *testing.T) {
	g := NewGainFilter(6.0206, false)
	requireFloatNear(t, "6dB gain", g.Process(1), 2, 1e-4)
}

func TestGainFilterInvertFlipsSign(t *testing.T) {
	g := NewGainFilter(0, true)
	requireFloatNear(t, "inverted unity gain", g.Process(1), -1, 1e-12)
	if g.IsNoop() {
		t.Fatal("inverted gain is never a no-op even at 0dB")
	}
}
