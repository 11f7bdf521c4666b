// biquad_test.go - biquad section construction and state behavior.

package main

import (
	"math"
	"testing"
)

func requireFloatNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

func TestBiquadLowPassDCGainIsUnity(t *testing.T) {
	bq := NewLowPass(48000, 1000, 0.7071067811865476)
	var y float64
	for i := 0; i < 10000; i++ {
		y = bq.Process(1)
	}
	requireFloatNear(t, "low-pass DC settle", y, 1, 1e-9)
}

func TestBiquadHighPassBlocksDC(t *testing.T) {
	bq := NewHighPass(48000, 1000, 0.7071067811865476)
	var y float64
	for i := 0; i < 10000; i++ {
		y = bq.Process(1)
	}
	requireFloatNear(t, "high-pass DC settle", y, 0, 1e-9)
}

func TestBiquadResetZeroesState(t *testing.T) {
	bq := NewLowPass(48000, 500, 0.7071067811865476)
	bq.Process(1)
	bq.Process(1)
	bq.Reset()
	got := bq.Process(0)
	requireFloatNear(t, "post-reset output", got, 0, 0)
}

func TestBiquadRawNormalizesByA0(t *testing.T) {
	raw := NewBiquadRaw(2, 0, 0, 2, 0, 0)
	got := raw.Process(1)
	requireFloatNear(t, "normalized b0", got, 1, 1e-12)
}

func TestBiquadLowPass1FirstOrderSettlesToUnity(t *testing.T) {
	bq := NewLowPass1(48000, 200)
	var y float64
	for i := 0; i < 20000; i++ {
		y = bq.Process(1)
	}
	requireFloatNear(t, "first-order low-pass DC settle", y, 1, 1e-6)
}

func TestBiquadPEQFrequencyResponseFlatFarFromCenter(t *testing.T) {
	bq := NewPEQ(48000, 1000, 1, 6)
	resp := bq.FrequencyResponse(48000, 20)
	requireFloatNear(t, "PEQ response far below center", resp, 0, 0.5)
}
