// filter_compression.go - downward dynamic range compressor.

package main

import (
	"fmt"
	"math"
)

// CompressionFilter implements downward compression with independent
// attack/release time constants and an optional RMS window. The
// squared-vs-linear domain mismatch between the windowed and
// non-windowed branches is intentionally preserved, not "fixed" — kept
// as current behavior rather than silently normalized.
type CompressionFilter struct {
	threshold   float64 // linear level, not dB
	ratio       float64 // (ratio - 1), already offset for the process() exponent
	attackCoef  float64
	releaseCoef float64
	windowCoef  float64
	useWindow   bool
	envelope    float64
	squaredSum  float64

	thresholdDB, ratioRaw, attackMs, releaseMs, windowMs float64
}

// dbToLevel converts dBFS to a linear amplitude level.
func dbToLevel(db float64) float64 {
	return math.Pow(10, db/20)
}

// NewCompressionFilter builds a compressor. ratio is in [0,1]: 0 means
// infinity:1, 1 means 1:1 (no compression). windowMs of 0 disables the
// RMS window in favor of per-sample squared level.
func NewCompressionFilter(sampleRate uint32, thresholdDB, ratio, attackMs, releaseMs, windowMs float64) *CompressionFilter {
	c := &CompressionFilter{
		threshold:   dbToLevel(thresholdDB),
		ratio:       ratio - 1,
		attackCoef:  math.Exp(-1000.0 / (attackMs * float64(sampleRate))),
		releaseCoef: math.Exp(-1000.0 / (releaseMs * float64(sampleRate))),
		thresholdDB: thresholdDB,
		ratioRaw:    ratio,
		attackMs:    attackMs,
		releaseMs:   releaseMs,
		windowMs:    windowMs,
	}
	if windowMs > 0 {
		c.useWindow = true
		c.windowCoef = math.Exp(-1000.0 / (windowMs * float64(sampleRate)))
	}
	return c
}

func run(in, coef float64, state *float64) {
	*state = in + coef*(*state-in)
}

func (c *CompressionFilter) Process(x float64) float64 {
	var over float64
	if c.useWindow {
		run(x*x, c.windowCoef, &c.squaredSum)
		over = math.Sqrt(c.squaredSum) / c.threshold
	} else {
		over = x * x / c.threshold
	}
	if over < 1 {
		over = 1
	}
	if over > c.envelope {
		run(over, c.attackCoef, &c.envelope)
	} else {
		run(over, c.releaseCoef, &c.envelope)
	}
	return x * math.Pow(over, c.ratio)
}

// Reset clears the envelope and RMS-window state, returning the filter
// to the state it had before any input.
func (c *CompressionFilter) Reset() {
	c.envelope = 0
	c.squaredSum = 0
}

func (c *CompressionFilter) String() string {
	return fmt.Sprintf("Compression: threshold %gdB, ratio %g, attack %gms, release %gms, window %gms",
		c.thresholdDB, c.ratioRaw, c.attackMs, c.releaseMs, c.windowMs)
}
