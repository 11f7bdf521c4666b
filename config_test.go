// config_test.go - top-level config compilation: pass-through mode and
// mutual exclusion of basic/advanced.

package main

import "testing"

func TestCompileConfigPassThroughRoutesDirectly(t *testing.T) {
	cfg, err := compileTestConfig(t, mustParseJSON(t, `{"devices": {}}`))
	if err != nil {
		t.Fatalf("compileConfig: %v", err)
	}
	if len(cfg.Inputs) != NumChannels {
		t.Fatalf("expected %d inputs, got %d", NumChannels, len(cfg.Inputs))
	}
	left := cfg.Inputs[ChannelL]
	if len(left.Routes) != 1 || left.Routes[0].Destination != ChannelL {
		t.Fatalf("pass-through should route L straight to L, got %+v", left.Routes)
	}
}

func TestCompileConfigRejectsBasicAndAdvancedTogether(t *testing.T) {
	doc := `{"devices": {}, "basic": {}, "advanced": {}}`
	if _, err := compileTestConfig(t, mustParseJSON(t, doc)); err == nil {
		t.Fatal("expected basic+advanced to be rejected as mutually exclusive")
	}
}

func TestCompileConfigDevicesSection(t *testing.T) {
	doc := `{"devices": {"capture": "loopback", "render": "speakers"}}`
	cfg, err := compileTestConfig(t, mustParseJSON(t, doc))
	if err != nil {
		t.Fatalf("compileConfig: %v", err)
	}
	if cfg.CaptureDeviceName != "loopback" || cfg.RenderDeviceName != "speakers" {
		t.Fatalf("device names not carried through: %+v", cfg)
	}
}

func mustParseJSON(t *testing.T, doc string) *JSONNode {
	t.Helper()
	n, err := ParseJSONDocument(doc)
	if err != nil {
		t.Fatalf("ParseJSONDocument: %v", err)
	}
	return n
}

// compileTestConfig compiles root using the default requested channel
// counts and sample rate, for tests that exercise route compilation
// without opening a real device.
func compileTestConfig(t *testing.T, root *JSONNode) (*Config, error) {
	t.Helper()
	pre, err := parseDevicePreamble(root)
	if err != nil {
		return nil, err
	}
	return compileConfig(root, pre, int(NumChannels), int(NumChannels), requestedSampleRate)
}
