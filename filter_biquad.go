// filter_biquad.go - biquad cascade: the EQ/crossover/shelf/notch filter.
// Holds an ordered list of Biquad sections and folds a sample through
// all of them in series.

package main

import (
	"fmt"
	"strings"
)

// BiquadCascade is a multi-section filter: Butterworth/LR/Bessel
// crossovers, shelves, PEQ, band-pass, notch and Linkwitz-Transform
// sections all reduce to one or more Biquad sections appended here.
type BiquadCascade struct {
	sampleRate uint32
	sections   []Biquad
	labels     []string
}

func NewBiquadCascade(sampleRate uint32) *BiquadCascade {
	return &BiquadCascade{sampleRate: sampleRate}
}

func (c *BiquadCascade) Size() int     { return len(c.sections) }
func (c *BiquadCascade) IsEmpty() bool { return len(c.sections) == 0 }

// Process folds the sample through every section in series.
func (c *BiquadCascade) Process(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].Process(x)
	}
	return x
}

func (c *BiquadCascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

func (c *BiquadCascade) String() string {
	return strings.Join(c.labels, "; ")
}

// AddRaw appends a section built directly from six cookbook-form
// coefficients (a0 normalized if not 1).
func (c *BiquadCascade) AddRaw(b0, b1, b2, a0, a1, a2 float64) {
	c.sections = append(c.sections, NewBiquadRaw(b0, b1, b2, a0, a1, a2))
	c.labels = append(c.labels, fmt.Sprintf("Biquad: b0 %g, b1 %g, b2 %g, a0 %g, a1 %g, a2 %g", b0, b1, b2, a0, a1, a2))
}

// AddLowPass appends one section per Q value: a first-order section for
// a negative Q, a second-order section otherwise.
func (c *BiquadCascade) AddLowPass(frequency float64, qValues []float64) {
	order := 0
	for _, q := range qValues {
		if q < 0 {
			c.sections = append(c.sections, NewLowPass1(c.sampleRate, frequency))
			order++
		} else {
			c.sections = append(c.sections, NewLowPass(c.sampleRate, frequency, q))
			order += 2
		}
	}
	c.labels = append(c.labels, fmt.Sprintf("Lowpass: %gHz, %ddB/oct", frequency, order*6))
}

// AddLowPassFamily resolves a named crossover family/order into its Q
// table before delegating to AddLowPass.
func (c *BiquadCascade) AddLowPassFamily(frequency float64, t CrossoverType, order int, qOffset float64) error {
	q, err := QValues(t, order, qOffset)
	if err != nil {
		return err
	}
	c.AddLowPass(frequency, q)
	return nil
}

// AddHighPass appends one section per Q value, same first/second-order
// rule as AddLowPass.
func (c *BiquadCascade) AddHighPass(frequency float64, qValues []float64) {
	order := 0
	for _, q := range qValues {
		if q < 0 {
			c.sections = append(c.sections, NewHighPass1(c.sampleRate, frequency))
			order++
		} else {
			c.sections = append(c.sections, NewHighPass(c.sampleRate, frequency, q))
			order += 2
		}
	}
	c.labels = append(c.labels, fmt.Sprintf("Highpass: %gHz, %ddB/oct", frequency, order*6))
}

func (c *BiquadCascade) AddHighPassFamily(frequency float64, t CrossoverType, order int, qOffset float64) error {
	q, err := QValues(t, order, qOffset)
	if err != nil {
		return err
	}
	c.AddHighPass(frequency, q)
	return nil
}

func (c *BiquadCascade) AddLowShelf(frequency, gain, q float64) {
	c.sections = append(c.sections, NewLowShelf(c.sampleRate, frequency, gain, q))
	c.labels = append(c.labels, fmt.Sprintf("Lowshelf: freq %gHz, gain %gdB, Q %g", frequency, gain, q))
}

func (c *BiquadCascade) AddHighShelf(frequency, gain, q float64) {
	c.sections = append(c.sections, NewHighShelf(c.sampleRate, frequency, gain, q))
	c.labels = append(c.labels, fmt.Sprintf("Highshelf: freq %gHz, gain %gdB, Q %g", frequency, gain, q))
}

func (c *BiquadCascade) AddPEQ(frequency, q, gain float64) {
	c.sections = append(c.sections, NewPEQ(c.sampleRate, frequency, q, gain))
	c.labels = append(c.labels, fmt.Sprintf("PEQ: freq %gHz, gain %gdB, Q %g", frequency, gain, q))
}

func (c *BiquadCascade) AddBandPass(frequency, bandwidth, gain float64) {
	c.sections = append(c.sections, NewBandPass(c.sampleRate, frequency, bandwidth, gain))
	c.labels = append(c.labels, fmt.Sprintf("Bandpass: freq %gHz, gain %gdB, bandwidth %g", frequency, gain, bandwidth))
}

func (c *BiquadCascade) AddNotch(frequency, bandwidth, gain float64) {
	c.sections = append(c.sections, NewNotch(c.sampleRate, frequency, bandwidth, gain))
	c.labels = append(c.labels, fmt.Sprintf("Notch: freq %gHz, gain %gdB, bandwidth %g", frequency, gain, bandwidth))
}

func (c *BiquadCascade) AddLinkwitzTransform(f0, q0, fp, qp float64) {
	c.sections = append(c.sections, NewLinkwitzTransform(c.sampleRate, f0, q0, fp, qp))
	c.labels = append(c.labels, fmt.Sprintf("Linkwitz Transform: f0 %gHz, Q0 %g, fp %gHz, Qp %g", f0, q0, fp, qp))
}

// FrequencyResponse sums each section's dB response at f — diagnostics
// only.
func (c *BiquadCascade) FrequencyResponse(frequency float64) float64 {
	var total float64
	for i := range c.sections {
		total += c.sections[i].FrequencyResponse(c.sampleRate, frequency)
	}
	return total
}

// DumpCoefficients writes each section's coefficients, one line per
// section, in the miniDSP sign convention when requested (a1/a2
// negated). Diagnostics only.
func (c *BiquadCascade) DumpCoefficients(miniDSPFormat bool) []string {
	lines := make([]string, 0, len(c.sections))
	for i, s := range c.sections {
		a1, a2 := s.a1, s.a2
		if miniDSPFormat {
			a1, a2 = -a1, -a2
		}
		lines = append(lines, fmt.Sprintf("biquad%d: b0=%.15g, b1=%.15g, b2=%.15g, a1=%.15g, a2=%.15g", i+1, s.b0, s.b1, s.b2, a1, a2))
	}
	return lines
}
