// output_test.go - output filter chain, clamping, and mute semantics.

package main

import "testing"

func TestOutputClampsToUnitRange(t *testing.T) {
	out := NewOutput(ChannelL, nil)
	if got := out.Process(1.5); got != 1 {
		t.Fatalf("Process(1.5) = %v, want clamped to 1", got)
	}
	if !out.ResetClipping() {
		t.Fatal("clamping above 1 should set the clip flag")
	}
	if got := out.Process(-1.5); got != -1 {
		t.Fatalf("Process(-1.5) = %v, want clamped to -1", got)
	}
	if !out.ResetClipping() {
		t.Fatal("clamping below -1 should set the clip flag")
	}
}

func TestOutputNoClipWithinRange(t *testing.T) {
	out := NewOutput(ChannelL, nil)
	out.Process(0.5)
	if out.ResetClipping() {
		t.Fatal("a sample within [-1,1] should never set the clip flag")
	}
}

func TestOutputMuteShortCircuitsBeforeFilters(t *testing.T) {
	delay := NewDelayFilter(48000, 10, false)
	out := NewOutput(ChannelL, []Filter{delay})
	out.Mute = true

	for i := uint32(0); i < delay.size; i++ {
		got := out.Process(1)
		requireFloatNear(t, "muted output", got, 0, 0)
	}

	out.Mute = false
	for i := uint32(0); i < delay.size; i++ {
		got := out.Process(0)
		requireFloatNear(t, "delay line never saw samples fed while muted", got, 0, 0)
	}
}

func TestOutputResetClearsClipFlagAndFilters(t *testing.T) {
	out := NewOutput(ChannelL, nil)
	out.Process(2)
	out.Reset()
	if out.ResetClipping() {
		t.Fatal("Reset should clear the clip flag")
	}
}
