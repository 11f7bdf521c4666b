// route.go - a single input-channel-to-output-channel signal path: a
// filter chain plus zero or more conditions gating whether the route
// currently contributes anything.

package main

import (
	"fmt"
	"sync/atomic"
)

// Route carries one input channel's (possibly filtered) signal to one
// output channel. Conditions are evaluated on a slow cadence by the
// supervisor and cached in enabled so the per-sample hot path never
// does more than an atomic load.
type Route struct {
	Source      Channel
	Destination Channel

	filters    []Filter
	conditions []Condition
	enabled    atomic.Bool
}

func NewRoute(source, destination Channel, filters []Filter, conditions []Condition) *Route {
	r := &Route{
		Source:      source,
		Destination: destination,
		filters:     filters,
		conditions:  conditions,
	}
	r.enabled.Store(true)
	return r
}

// EvalConditions re-evaluates every gating condition and updates the
// cached enabled flag. A route with no conditions is always enabled.
// All conditions must hold (logical AND) for the route to fire.
func (r *Route) EvalConditions() {
	for _, c := range r.conditions {
		if !c.Eval() {
			r.enabled.Store(false)
			return
		}
	}
	r.enabled.Store(true)
}

// Process runs sample through the route's filter chain and returns the
// result, or 0 if the route is currently disabled by its conditions.
func (r *Route) Process(sample float64) float64 {
	if !r.enabled.Load() {
		return 0
	}
	for _, f := range r.filters {
		sample = f.Process(sample)
	}
	return sample
}

func (r *Route) Reset() {
	for _, f := range r.filters {
		f.Reset()
	}
}

func (r *Route) String() string {
	return fmt.Sprintf("Route: %s -> %s (%d filters, %d conditions)",
		r.Source, r.Destination, len(r.filters), len(r.conditions))
}
