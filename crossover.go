// crossover.go - named crossover filter families and their fixed Q tables.

package main

import "fmt"

// CrossoverType selects a named family of Q values for QValues (used by
// AddLowPassFamily/AddHighPassFamily and buildCrossoverCascade).
// Custom means the caller supplies the Q list directly.
type CrossoverType int

const (
	Butterworth CrossoverType = iota
	LinkwitzRiley
	Bessel
	Custom
)

func (t CrossoverType) String() string {
	switch t {
	case Butterworth:
		return "Butterworth"
	case LinkwitzRiley:
		return "Linkwitz_Riley"
	case Bessel:
		return "Bessel"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

func CrossoverTypeFromString(s string) (CrossoverType, bool) {
	switch s {
	case "Butterworth":
		return Butterworth, true
	case "Linkwitz_Riley":
		return LinkwitzRiley, true
	case "Bessel":
		return Bessel, true
	case "Custom":
		return Custom, true
	default:
		return Custom, false
	}
}

// butterworthQ holds the per-order Q tables for orders 1..8. A negative
// Q is the sentinel for "first-order section" (no Q).
var butterworthQ = [][]float64{
	{-1},
	{0.7071067811865476},
	{-1, 1},
	{1 / 1.8478, 1 / 0.7654},
	{-1, 1 / 0.6180, 1 / 1.6180},
	{1 / 1.9319, 0.7071067811865476, 1 / 0.5176},
	{-1, 1 / 1.8019, 1 / 1.2470, 1 / 0.4450},
	{1 / 1.96161, 1 / 1.6629, 1 / 1.1111, 1 / 0.3902},
}

// linkwitzRileyQ holds the Q tables for the only orders LR crossovers
// are defined at: 2, 4, 8.
var linkwitzRileyQ = map[int][]float64{
	2: {-1, -1},
	4: {0.7071067811865476, 0.7071067811865476},
	8: {1 / 1.8478, 1 / 0.7654, 1 / 1.8478, 1 / 0.7654},
}

// besselQ holds the per-order Q tables for orders 2..8.
var besselQ = map[int][]float64{
	2: {0.57735026919},
	3: {-1, 0.691046625825},
	4: {0.805538281842, 0.521934581669},
	5: {-1, 0.916477373948, 0.563535620851},
	6: {1.02331395383, 0.611194546878, 0.510317824749},
	7: {-1, 1.12625754198, 0.660821389297, 0.5323556979},
	8: {1.22566942541, 0.710852074442, 0.559609164796, 0.505991069397},
}

// QValues returns the ordered Q list for a named family and order,
// with qOffset applied as a (1+qOffset) multiplier to every positive Q.
func QValues(t CrossoverType, order int, qOffset float64) ([]float64, error) {
	var table []float64
	switch t {
	case Butterworth:
		if order < 1 || order > len(butterworthQ) {
			return nil, fmt.Errorf("butterworth crossover: unsupported order %d", order)
		}
		table = butterworthQ[order-1]
	case LinkwitzRiley:
		t, ok := linkwitzRileyQ[order]
		if !ok {
			return nil, fmt.Errorf("linkwitz-riley crossover: unsupported order %d", order)
		}
		table = t
	case Bessel:
		t, ok := besselQ[order]
		if !ok {
			return nil, fmt.Errorf("bessel crossover: unsupported order %d", order)
		}
		table = t
	default:
		return nil, fmt.Errorf("QValues: not a named crossover family")
	}
	out := make([]float64, len(table))
	for i, q := range table {
		if q < 0 {
			out[i] = q
		} else {
			out[i] = q * (1 + qOffset)
		}
	}
	return out, nil
}

// ValidateCustomOrder checks the sum-of-orders identity required for a
// Custom crossover Q list: one order per negative (first-order) entry,
// two per positive (second-order) entry, must equal the requested order.
func ValidateCustomOrder(qValues []float64, order int) error {
	sum := 0
	for _, q := range qValues {
		if q < 0 {
			sum++
		} else {
			sum += 2
		}
	}
	if sum != order {
		return fmt.Errorf("custom crossover: q values sum to order %d, expected %d", sum, order)
	}
	return nil
}
