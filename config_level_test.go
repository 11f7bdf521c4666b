// config_level_test.go - output assembly, mute, and auto-gain injection
// when basic mode's accumulated route level would clip.

package main

import "testing"

func TestBuildOutputsAppliesDeclaredMute(t *testing.T) {
	doc := `{"devices": {}, "outputs": [{"channel": "L", "mute": true}]}`
	cfg, err := compileTestConfig(t, mustParseJSON(t, doc))
	if err != nil {
		t.Fatalf("compileConfig: %v", err)
	}
	if !cfg.Outputs[ChannelL].Mute {
		t.Fatal("declared mute: true should carry through to the Output")
	}
}

func TestBuildOutputsSharedChannelsList(t *testing.T) {
	doc := `{"devices": {}, "outputs": [{"channels": ["L", "R"], "gain": -3}]}`
	cfg, err := compileTestConfig(t, mustParseJSON(t, doc))
	if err != nil {
		t.Fatalf("compileConfig: %v", err)
	}
	gotL := cfg.Outputs[ChannelL].Process(1)
	gotR := cfg.Outputs[ChannelR].Process(1)
	requireFloatNear(t, "shared-channels gain on L", gotL, gotR, 1e-12)
}

func TestBasicModeInjectsAutoGainWhenOverUnity(t *testing.T) {
	// With fronts large and center and subwoofer off, several routes
	// sum into L, pushing its expected level over unity.
	doc := `{
		"devices": {},
		"basic": {"front": "large", "subwoofer": "off", "center": "off"}
	}`
	cfg, err := compileTestConfig(t, mustParseJSON(t, doc))
	if err != nil {
		t.Fatalf("compileConfig: %v", err)
	}
	// L receives its own direct route (0dB), the center downmix (-3dB)
	// and the SW bass route (LFE +10dB, stereo split -6dB, so +4dB):
	// total linear level is 1 + 10^(-3/20) + 10^(4/20), about 3.29, over
	// unity, so auto-gain should have injected an attenuating stage.
	out := cfg.Outputs[ChannelL]
	got := out.Process(1)
	if got >= 1 {
		t.Fatalf("expected auto-gain headroom to keep a unity input under clipping, got %v", got)
	}
}
