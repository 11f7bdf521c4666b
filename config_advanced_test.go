// config_advanced_test.go - explicit per-channel advanced routing.

package main

import "testing"

func TestCompileConfigAdvancedExplicitRoute(t *testing.T) {
	doc := `{
		"devices": {},
		"advanced": {
			"L": [{"out": "L", "gain": -6}],
			"R": [{"out": "R", "invert": true}]
		}
	}`
	cfg, err := compileTestConfig(t, mustParseJSON(t, doc))
	if err != nil {
		t.Fatalf("compileConfig: %v", err)
	}
	left := cfg.Inputs[ChannelL]
	if len(left.Routes) != 1 || left.Routes[0].Destination != ChannelL {
		t.Fatalf("advanced L route missing or wrong destination: %+v", left.Routes)
	}
	got := left.Routes[0].Process(1)
	requireFloatNear(t, "advanced route -6dB gain", got, 0.5012, 1e-3)
}

func TestCompileConfigAdvancedSilentCondition(t *testing.T) {
	doc := `{
		"devices": {},
		"advanced": {
			"SW": [{"out": "SW", "if": {"silent": "L"}}]
		}
	}`
	cfg, err := compileTestConfig(t, mustParseJSON(t, doc))
	if err != nil {
		t.Fatalf("compileConfig: %v", err)
	}
	route := cfg.Inputs[ChannelSW].Routes[0]
	route.EvalConditions() // L never marked used -> SILENT(L) holds -> enabled
	got := route.Process(1)
	requireFloatNear(t, "silent-gated route when L is quiet", got, 1, 0)

	cfg.ConditionRegistry.SetUsed(int(ChannelL), true)
	route.EvalConditions()
	got = route.Process(1)
	requireFloatNear(t, "silent-gated route when L is playing", got, 0, 0)
}

func TestCompileConfigAdvancedUnknownOutputChannelErrors(t *testing.T) {
	doc := `{"devices": {}, "advanced": {"L": [{"out": "NOPE"}]}}`
	if _, err := compileTestConfig(t, mustParseJSON(t, doc)); err == nil {
		t.Fatal("expected unknown output channel to error")
	}
}
