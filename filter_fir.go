// filter_fir.go - direct-form FIR convolution filter loaded from a tap
// file (see fir_file.go for the .txt/.wav loaders).

package main

import "fmt"

// FIRFilter holds taps and a matching delay line of the same length.
// Process is the naive direct form; no partitioned convolution is
// needed at the tap counts room-correction filters use.
type FIRFilter struct {
	taps  []float64
	delay []float64
}

func NewFIRFilter(taps []float64) *FIRFilter {
	f := &FIRFilter{
		taps:  taps,
		delay: make([]float64, len(taps)),
	}
	return f
}

func (f *FIRFilter) Process(x float64) float64 {
	result := x * f.taps[0]
	for i := len(f.delay) - 1; i > 0; i-- {
		f.delay[i] = f.delay[i-1]
		result += f.delay[i] * f.taps[i]
	}
	f.delay[0] = x
	return result
}

func (f *FIRFilter) Reset() {
	for i := range f.delay {
		f.delay[i] = 0
	}
}

func (f *FIRFilter) String() string {
	return fmt.Sprintf("FIR: %d taps", len(f.taps))
}
