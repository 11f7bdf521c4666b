// condition_test.go - the condition registry and SILENT condition.

package main

import "testing"

func TestConditionRegistryDefaultsToNotUsed(t *testing.T) {
	r := NewConditionRegistry(4)
	if r.IsUsed(0) {
		t.Fatal("fresh registry should report every channel as not used")
	}
}

func TestConditionRegistrySetAndGet(t *testing.T) {
	r := NewConditionRegistry(4)
	r.SetUsed(2, true)
	if !r.IsUsed(2) {
		t.Fatal("SetUsed(2, true) did not stick")
	}
	if r.IsUsed(1) {
		t.Fatal("SetUsed(2, true) should not affect channel 1")
	}
}

func TestSilentConditionIsNegationOfUsed(t *testing.T) {
	r := NewConditionRegistry(2)
	cond := NewSilentCondition(r, 0)

	if !cond.Eval() {
		t.Fatal("channel never marked used should be silent")
	}
	r.SetUsed(0, true)
	if cond.Eval() {
		t.Fatal("channel marked used should not be silent")
	}
}
