// input_test.go - input channel fan-out and playing-state tracking.

package main

import "testing"

func TestInputRouteFansOutToMultipleDestinations(t *testing.T) {
	routeL := NewRoute(ChannelL, ChannelL, nil, nil)
	routeSW := NewRoute(ChannelL, ChannelSW, []Filter{NewGainFilter(-6.0206, false)}, nil)
	in := NewInput(ChannelL, []*Route{routeL, routeSW})

	block := make([]float64, NumChannels)
	in.Route(1, block)

	requireFloatNear(t, "direct route", block[ChannelL], 1, 0)
	requireFloatNear(t, "attenuated route", block[ChannelSW], 0.5, 1e-3)
}

func TestInputTracksIsPlayingOnNonZeroSample(t *testing.T) {
	in := NewInput(ChannelL, nil)
	block := make([]float64, NumChannels)

	if in.ResetIsPlaying() {
		t.Fatal("fresh input should not report playing")
	}
	in.Route(0, block)
	if in.ResetIsPlaying() {
		t.Fatal("a zero sample should not mark the channel as playing")
	}
	in.Route(0.1, block)
	if !in.ResetIsPlaying() {
		t.Fatal("a non-zero sample should mark the channel as playing")
	}
	if in.ResetIsPlaying() {
		t.Fatal("ResetIsPlaying should clear the flag after reading it")
	}
}

func TestInputResetClearsRoutesAndPlayingFlag(t *testing.T) {
	route := NewRoute(ChannelL, ChannelR, nil, nil)
	in := NewInput(ChannelL, []*Route{route})
	block := make([]float64, NumChannels)

	in.Route(1, block)
	in.Reset()
	if in.ResetIsPlaying() {
		t.Fatal("Reset should clear the playing flag")
	}
}
