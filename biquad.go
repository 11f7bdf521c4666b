// biquad.go - single biquad section: coefficient families and the
// transposed direct-form II state update that is the hot inner loop of
// every EQ, crossover, shelf and notch in the engine.

package main

import "math"

// Biquad is a transposed direct-form II second-order IIR section.
// Coefficients are always stored normalized (a0 == 1 after init).
type Biquad struct {
	b0, b1, b2, a1, a2 float64
	z1, z2             float64
}

// Process runs one sample through the section. Hot path: no allocation,
// no branches beyond the arithmetic itself.
func (bq *Biquad) Process(x float64) float64 {
	y := x*bq.b0 + bq.z1
	bq.z1 = x*bq.b1 - y*bq.a1 + bq.z2
	bq.z2 = x*bq.b2 - y*bq.a2
	return y
}

// Reset zeros the section's state. After Reset, Process(0) returns
// exactly 0 for as many calls as the caller likes.
func (bq *Biquad) Reset() {
	bq.z1, bq.z2 = 0, 0
}

// initRaw stores six raw coefficients, normalizing by a0 so that a0
// becomes 1 and clearing state.
func (bq *Biquad) initRaw(b0, b1, b2, a0, a1, a2 float64) {
	bq.b0 = b0 / a0
	bq.b1 = b1 / a0
	bq.b2 = b2 / a0
	bq.a1 = a1 / a0
	bq.a2 = a2 / a0
	bq.Reset()
}

func omega(sampleRate uint32, frequency float64) float64 {
	return 2 * math.Pi * frequency / float64(sampleRate)
}

func alphaFromQ(w0, q float64) float64 {
	return math.Sin(w0) / (2 * q)
}

// NewBiquadRaw builds a section directly from cookbook-form coefficients,
// normalizing by a0 (the BIQUAD config entry passes a0 = 1 when it
// omits the field).
func NewBiquadRaw(b0, b1, b2, a0, a1, a2 float64) Biquad {
	var bq Biquad
	bq.initRaw(b0, b1, b2, a0, a1, a2)
	return bq
}

// NewLowPass builds a second-order Butterworth-cookbook low-pass at the
// given Q.
func NewLowPass(sampleRate uint32, frequency, q float64) Biquad {
	w0 := omega(sampleRate, frequency)
	alpha := alphaFromQ(w0, q)
	cs := math.Cos(w0)
	var bq Biquad
	bq.initRaw(
		(1-cs)/2, 1-cs, (1-cs)/2,
		1+alpha, -2*cs, 1-alpha,
	)
	return bq
}

// NewLowPass1 builds the first-order low-pass used for odd cascade
// orders (no Q parameter; the z2 terms are zero).
func NewLowPass1(sampleRate uint32, frequency float64) Biquad {
	w0 := omega(sampleRate, frequency)
	sn, cs := math.Sin(w0), math.Cos(w0)
	var bq Biquad
	bq.initRaw(
		sn, sn, 0,
		cs+sn+1, sn-cs-1, 0,
	)
	return bq
}

// NewHighPass builds a second-order cookbook high-pass at the given Q.
func NewHighPass(sampleRate uint32, frequency, q float64) Biquad {
	w0 := omega(sampleRate, frequency)
	alpha := alphaFromQ(w0, q)
	cs := math.Cos(w0)
	var bq Biquad
	bq.initRaw(
		(1+cs)/2, -(1 + cs), (1+cs)/2,
		1+alpha, -2*cs, 1-alpha,
	)
	return bq
}

// NewHighPass1 builds the first-order high-pass used for odd cascade
// orders.
func NewHighPass1(sampleRate uint32, frequency float64) Biquad {
	w0 := omega(sampleRate, frequency)
	sn, cs := math.Sin(w0), math.Cos(w0)
	var bq Biquad
	bq.initRaw(
		cs+1, -(cs + 1), 0,
		cs+sn+1, sn-cs-1, 0,
	)
	return bq
}

// NewLowShelf builds a cookbook low-shelf with the given gain (dB) and Q.
func NewLowShelf(sampleRate uint32, frequency, gain, q float64) Biquad {
	w0 := omega(sampleRate, frequency)
	A := math.Pow(10, gain/40)
	alpha := alphaFromQ(w0, q)
	sqa := math.Sqrt(A) * alpha
	cs := math.Cos(w0)
	var bq Biquad
	bq.initRaw(
		A*((A+1)-(A-1)*cs+2*sqa),
		2*A*((A-1)-(A+1)*cs),
		A*((A+1)-(A-1)*cs-2*sqa),
		(A+1)+(A-1)*cs+2*sqa,
		-2*((A-1)+(A+1)*cs),
		(A+1)+(A-1)*cs-2*sqa,
	)
	return bq
}

// NewHighShelf builds a cookbook high-shelf with the given gain (dB) and Q.
func NewHighShelf(sampleRate uint32, frequency, gain, q float64) Biquad {
	w0 := omega(sampleRate, frequency)
	A := math.Pow(10, gain/40)
	alpha := alphaFromQ(w0, q)
	sqa := math.Sqrt(A) * alpha
	cs := math.Cos(w0)
	var bq Biquad
	bq.initRaw(
		A*((A+1)+(A-1)*cs+2*sqa),
		-2*A*((A-1)+(A+1)*cs),
		A*((A+1)+(A-1)*cs-2*sqa),
		(A+1)-(A-1)*cs+2*sqa,
		2*((A-1)-(A+1)*cs),
		(A+1)-(A-1)*cs-2*sqa,
	)
	return bq
}

// NewPEQ builds a cookbook parametric peaking EQ section.
func NewPEQ(sampleRate uint32, frequency, q, gain float64) Biquad {
	w0 := omega(sampleRate, frequency)
	alpha := alphaFromQ(w0, q)
	A := math.Pow(10, gain/40)
	cs := math.Cos(w0)
	var bq Biquad
	bq.initRaw(
		1+alpha*A, -2*cs, 1-alpha*A,
		1+alpha/A, -2*cs, 1-alpha/A,
	)
	return bq
}

// NewBandPass builds a constant-skirt-gain band-pass, bandwidth in octaves.
func NewBandPass(sampleRate uint32, frequency, bandwidth, gain float64) Biquad {
	w0 := omega(sampleRate, frequency)
	sn := math.Sin(w0)
	alpha := sn * math.Sinh(math.Ln2/2*bandwidth*w0/sn)
	A := math.Pow(10, gain/20)
	var bq Biquad
	bq.initRaw(
		A*alpha, 0, -A*alpha,
		1+alpha, -2*math.Cos(w0), 1-alpha,
	)
	return bq
}

// NewNotch builds a notch section, bandwidth in octaves.
func NewNotch(sampleRate uint32, frequency, bandwidth, gain float64) Biquad {
	w0 := omega(sampleRate, frequency)
	sn := math.Sin(w0)
	alpha := sn * math.Sinh(math.Ln2/2*bandwidth*w0/sn)
	cs := math.Cos(w0)
	A := math.Pow(10, gain/20)
	var bq Biquad
	bq.initRaw(
		A, -2*cs*A, A,
		1+alpha, -2*cs, 1-alpha,
	)
	return bq
}

// NewLinkwitzTransform builds a pole/zero relocation section that
// reshapes a driver's natural roll-off (F0, Q0) into a target alignment
// (Fp, Qp). Unlike the other initializers this one divides by the
// denominator itself and passes a0=1 to initRaw, which still clears
// state, matching every other Biquad initializer's post-condition.
func NewLinkwitzTransform(sampleRate uint32, F0, Q0, Fp, Qp float64) Biquad {
	Fc := (F0 + Fp) / 2
	d0i := math.Pow(2*math.Pi*F0, 2)
	d1i := (2 * math.Pi * F0) / Q0
	c0i := math.Pow(2*math.Pi*Fp, 2)
	c1i := (2 * math.Pi * Fp) / Qp
	gn := (2 * math.Pi * Fc) / math.Tan(math.Pi*Fc/float64(sampleRate))
	gn2 := gn * gn
	cci := c0i + gn*c1i + gn2

	var bq Biquad
	bq.initRaw(
		(d0i+gn*d1i+gn2)/cci,
		2*(d0i-gn2)/cci,
		(d0i-gn*d1i+gn2)/cci,
		1,
		2*(c0i-gn2)/cci,
		(c0i-gn*c1i+gn2)/cci,
	)
	return bq
}

// FrequencyResponse evaluates this section's magnitude response (in dB)
// at one frequency, using the standard cookbook evaluation:
// phi = 4*sin^2(w/2), then the ratio of numerator to denominator
// magnitude-squared expressions. Diagnostics only — never on the hot
// path.
func (bq *Biquad) FrequencyResponse(sampleRate uint32, frequency float64) float64 {
	w := omega(sampleRate, frequency)
	phi := 4 * math.Pow(math.Sin(w/2), 2)
	num := math.Pow(bq.b0+bq.b1+bq.b2, 2) + (bq.b0*bq.b2*phi-(bq.b1*(bq.b0+bq.b2)+4*bq.b0*bq.b2))*phi
	den := math.Pow(1+bq.a1+bq.a2, 2) + (1*bq.a2*phi-(bq.a1*(1+bq.a2)+4*1*bq.a2))*phi
	return 10*math.Log10(num) - 10*math.Log10(den)
}
