// config_filters_test.go - JSON filters[] compilation, including the
// crossover family dispatch and BiquadCascade constructor argument
// order (PEQ/band-pass/notch map JSON fields onto the right parameter
// positions).

package main

import "testing"

func TestCompileFilterLowPassButterworth(t *testing.T) {
	n := mustParseJSON(t, `{"type": "LOW_PASS", "freq": 80, "order": 2, "crossoverType": "Butterworth"}`)
	f, err := compileFilter(n, 48000)
	if err != nil {
		t.Fatalf("compileFilter: %v", err)
	}
	cascade, ok := f.(*BiquadCascade)
	if !ok || cascade.Size() != 1 {
		t.Fatalf("order-2 butterworth low-pass should be one biquad section, got %+v", f)
	}
}

func TestCompileFilterPEQArgumentOrder(t *testing.T) {
	n := mustParseJSON(t, `{"type": "PEQ", "freq": 1000, "q": 2, "gain": 6}`)
	f, err := compileFilter(n, 48000)
	if err != nil {
		t.Fatalf("compileFilter: %v", err)
	}
	cascade := f.(*BiquadCascade)
	resp := cascade.FrequencyResponse(1000)
	requireFloatNear(t, "PEQ response at its own center frequency", resp, 6, 0.5)
}

func TestCompileFilterBandPassAndNotch(t *testing.T) {
	bp := mustParseJSON(t, `{"type": "BAND_PASS", "freq": 500, "q": 1, "bandwidth": 1, "gain": 0}`)
	if _, err := compileFilter(bp, 48000); err != nil {
		t.Fatalf("compileFilter band-pass: %v", err)
	}
	notch := mustParseJSON(t, `{"type": "NOTCH", "freq": 500, "q": 1, "bandwidth": 1, "gain": 0}`)
	if _, err := compileFilter(notch, 48000); err != nil {
		t.Fatalf("compileFilter notch: %v", err)
	}
}

func TestCompileFilterLinkwitzTransform(t *testing.T) {
	n := mustParseJSON(t, `{"type": "LINKWITZ_TRANSFORM", "fz": 40, "qz": 0.7, "fp": 80, "qp": 0.5}`)
	f, err := compileFilter(n, 48000)
	if err != nil {
		t.Fatalf("compileFilter: %v", err)
	}
	cascade := f.(*BiquadCascade)
	if cascade.Size() != 1 {
		t.Fatalf("linkwitz transform should be a single section, got %d", cascade.Size())
	}
}

func TestCompileFilterUnknownTypeErrors(t *testing.T) {
	n := mustParseJSON(t, `{"type": "NOT_A_FILTER"}`)
	if _, err := compileFilter(n, 48000); err == nil {
		t.Fatal("expected unknown filter type to error")
	}
}

func TestCompileFilterRawBiquad(t *testing.T) {
	n := mustParseJSON(t, `{"type": "BIQUAD", "values": [{"b0": 1, "a0": 1}]}`)
	f, err := compileFilter(n, 48000)
	if err != nil {
		t.Fatalf("compileFilter: %v", err)
	}
	got := f.Process(1)
	requireFloatNear(t, "raw biquad passthrough", got, 1, 1e-9)
}
