// filter_gain.go - plain gain/polarity-invert filter.

package main

import (
	"fmt"
	"math"
)

// GainFilter multiplies every sample by a fixed linear factor derived
// from a dB value and an optional polarity invert.
type GainFilter struct {
	multiplier float64
	gainDB     float64
	invert     bool
}

// NewGainFilter computes multiplier = 10^(gainDB/20) * (invert ? -1 : 1).
func NewGainFilter(gainDB float64, invert bool) *GainFilter {
	m := math.Pow(10, gainDB/20)
	if invert {
		m = -m
	}
	return &GainFilter{multiplier: m, gainDB: gainDB, invert: invert}
}

// IsNoop reports whether this filter would be dropped at build time:
// zero gain and not inverting.
func (g *GainFilter) IsNoop() bool {
	return g.gainDB == 0 && !g.invert
}

func (g *GainFilter) Process(x float64) float64 { return x * g.multiplier }
func (g *GainFilter) Reset()                    {}

func (g *GainFilter) String() string {
	return fmt.Sprintf("Gain: %gdB, invert %t", g.gainDB, g.invert)
}
