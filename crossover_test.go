// crossover_test.go - named crossover Q table lookups and the custom
// order-sum identity.

package main

import "testing"

func TestCrossoverTypeFromStringRoundTrip(t *testing.T) {
	cases := []CrossoverType{Butterworth, LinkwitzRiley, Bessel, Custom}
	for _, ct := range cases {
		parsed, ok := CrossoverTypeFromString(ct.String())
		if !ok {
			t.Fatalf("CrossoverTypeFromString(%q) not ok", ct.String())
		}
		if parsed != ct {
			t.Fatalf("CrossoverTypeFromString(%q) = %v, want %v", ct.String(), parsed, ct)
		}
	}
}

func TestQValuesButterworthOrder2(t *testing.T) {
	q, err := QValues(Butterworth, 2, 0)
	if err != nil {
		t.Fatalf("QValues: %v", err)
	}
	if len(q) != 1 {
		t.Fatalf("order-2 butterworth should have 1 Q value, got %d", len(q))
	}
	requireFloatNear(t, "butterworth order 2 Q", q[0], 0.7071067811865476, 1e-12)
}

func TestQValuesUnsupportedOrder(t *testing.T) {
	if _, err := QValues(Butterworth, 9, 0); err == nil {
		t.Fatal("expected error for unsupported butterworth order")
	}
	if _, err := QValues(LinkwitzRiley, 3, 0); err == nil {
		t.Fatal("expected error for unsupported linkwitz-riley order")
	}
}

func TestQValuesOffsetScalesPositiveQOnly(t *testing.T) {
	q, err := QValues(Butterworth, 3, 1.0) // order 3 has one first-order (-1) section
	if err != nil {
		t.Fatalf("QValues: %v", err)
	}
	if q[0] != -1 {
		t.Fatalf("first-order sentinel should be untouched by qOffset, got %v", q[0])
	}
	base, _ := QValues(Butterworth, 3, 0)
	requireFloatNear(t, "offset-scaled Q", q[1], base[1]*2, 1e-12)
}

func TestValidateCustomOrder(t *testing.T) {
	if err := ValidateCustomOrder([]float64{-1, 0.7}, 3); err != nil {
		t.Fatalf("expected order-3 sum (1 + 2) to validate, got %v", err)
	}
	if err := ValidateCustomOrder([]float64{0.7}, 3); err == nil {
		t.Fatal("expected mismatched order sum to fail")
	}
}
