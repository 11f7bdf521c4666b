// route_test.go - route gating and filter chain behavior.

package main

import "testing"

func TestRouteDefaultsToEnabled(t *testing.T) {
	r := NewRoute(ChannelL, ChannelSW, nil, nil)
	got := r.Process(1)
	requireFloatNear(t, "default-enabled route", got, 1, 0)
}

func TestRouteAppliesFilterChainInOrder(t *testing.T) {
	filters := []Filter{
		NewGainFilter(0, true), // invert
		NewGainFilter(6.0206, false),
	}
	r := NewRoute(ChannelL, ChannelR, filters, nil)
	got := r.Process(1)
	requireFloatNear(t, "inverted then doubled", got, -2, 1e-4)
}

func TestRouteDisabledByFailingCondition(t *testing.T) {
	reg := NewConditionRegistry(1)
	reg.SetUsed(0, true) // channel 0 is playing, so SILENT(0) is false
	cond := NewSilentCondition(reg, 0)
	r := NewRoute(ChannelL, ChannelR, nil, []Condition{cond})

	r.EvalConditions()
	got := r.Process(1)
	requireFloatNear(t, "disabled route output", got, 0, 0)
}

func TestRouteAllConditionsMustHoldForEnable(t *testing.T) {
	reg := NewConditionRegistry(2)
	always := NewSilentCondition(reg, 0) // channel 0 never marked used -> true
	never := NewSilentCondition(reg, 1)
	reg.SetUsed(1, true) // channel 1 playing -> SILENT(1) false

	r := NewRoute(ChannelL, ChannelR, nil, []Condition{always, never})
	r.EvalConditions()
	got := r.Process(1)
	requireFloatNear(t, "route with one failing condition", got, 0, 0)
}

func TestRouteResetClearsFilterState(t *testing.T) {
	delay := NewDelayFilter(48000, 10, false)
	r := NewRoute(ChannelL, ChannelR, []Filter{delay}, nil)
	r.Process(1)
	r.Reset()
	for i := uint32(0); i < delay.size; i++ {
		got := r.Process(0)
		requireFloatNear(t, "post-reset route output", got, 0, 0)
	}
}
