// config.go - top level configuration compiler: parses the JSON
// document adjacent to the executable into immutable Input/Output
// sequences consumed read-only by the processing thread.

package main

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	defaultConfigFilename = "WinDSP.json"
	phantomCenterGainDB   = -3
	lfeGainDB             = 10
	bassToStereoGainDB    = -6
	autoGainHeadroomDB    = -0.1
)

// Config is the compiled, immutable result of reading a configuration
// file: everything the pipeline needs to run until the next reload.
type Config struct {
	Description string
	Hide        bool
	Minimize    bool
	StartWithOS bool
	Debug       bool

	CaptureDeviceName string
	RenderDeviceName  string
	RenderAsio        bool
	AsioBufferSize    int
	AsioNumChannels   int

	SampleRate     uint32
	NumChannelsIn  int
	NumChannelsOut int

	Inputs            []*Input
	Outputs           []*Output
	ConditionRegistry *ConditionRegistry
}

// configBuilder holds the mutable state threaded through the basic and
// advanced compilers before the final, immutable Config is assembled.
type configBuilder struct {
	doc            *JSONNode
	sampleRate     uint32
	numChannelsIn  int
	numChannelsOut int
	registry       *ConditionRegistry

	routesByInput map[Channel][]*Route
	addHpTo       map[Channel]bool
	addLpTo       map[Channel]bool
	lpCrossover   *basicCrossoverSpec
	hpCrossover   *basicCrossoverSpec
	useAutoGain   bool

	// levelLinear accumulates each output channel's expected linear
	// level, the sum of every route's linear gain reaching it, for the
	// level-validation pass (config_level.go).
	levelLinear map[Channel]float64
}

// requestedSampleRate is the rate asked for when opening capture/render
// devices, before their real negotiated rate is known. compileConfig
// is always given the devices' actual post-open values, never this one.
const requestedSampleRate uint32 = 48000

// devicePreamble holds the handful of top-level fields that must be
// read from the config document before any device is opened: device
// names and the process-level flags. Everything else compileConfig
// needs (channel counts, sample rate) can only come from the devices
// themselves, once they're open.
type devicePreamble struct {
	Description string
	Hide        bool
	Minimize    bool
	StartWithOS bool
	Debug       bool

	CaptureDeviceName string
	RenderDeviceName  string
	RenderAsio        bool
	AsioBufferSize    int
	AsioNumChannels   int
}

// ReadConfigDocument reads and parses the configuration file at path
// and extracts its device preamble, without compiling routes: the
// caller needs the preamble to open devices before the rest of the
// document can be compiled against their real channel count and
// sample rate.
func ReadConfigDocument(path string) (*JSONNode, devicePreamble, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, devicePreamble{}, NewEngineError(ErrConfigInvalid, err)
	}
	root, err := ParseJSONDocument(string(raw))
	if err != nil {
		return nil, devicePreamble{}, err
	}
	pre, err := parseDevicePreamble(root)
	if err != nil {
		return nil, devicePreamble{}, err
	}
	return root, pre, nil
}

// LoadConfig reads and compiles the configuration file at path using
// the default requested channel counts and sample rate, for callers
// (tests, --dump-response) that don't have a real opened device to
// compile against.
func LoadConfig(path string) (*Config, error) {
	root, pre, err := ReadConfigDocument(path)
	if err != nil {
		return nil, err
	}
	return compileConfig(root, pre, int(NumChannels), int(NumChannels), requestedSampleRate)
}

func parseDevicePreamble(root *JSONNode) (devicePreamble, error) {
	var pre devicePreamble
	var err error

	if pre.Description, err = root.StringDefault("description", ""); err != nil {
		return devicePreamble{}, err
	}
	if pre.Hide, err = root.BoolDefault("hide", false); err != nil {
		return devicePreamble{}, err
	}
	if pre.Minimize, err = root.BoolDefault("minimize", false); err != nil {
		return devicePreamble{}, err
	}
	if pre.StartWithOS, err = root.BoolDefault("startWithOS", false); err != nil {
		return devicePreamble{}, err
	}
	if pre.Debug, err = root.BoolDefault("debug", false); err != nil {
		return devicePreamble{}, err
	}

	devicesNode, err := root.GetObject("devices")
	if err != nil {
		return devicePreamble{}, err
	}
	if pre.CaptureDeviceName, err = devicesNode.StringDefault("capture", ""); err != nil {
		return devicePreamble{}, err
	}
	if pre.RenderDeviceName, err = devicesNode.StringDefault("render", ""); err != nil {
		return devicePreamble{}, err
	}
	if pre.RenderAsio, err = devicesNode.BoolDefault("renderAsio", false); err != nil {
		return devicePreamble{}, err
	}
	if pre.AsioBufferSize, err = devicesNode.IntDefault("asioBufferSize", 0); err != nil {
		return devicePreamble{}, err
	}
	if pre.AsioNumChannels, err = devicesNode.IntDefault("asioNumChannels", int(NumChannels)); err != nil {
		return devicePreamble{}, err
	}
	return pre, nil
}

// compileConfig compiles the rest of the document (basic/advanced
// routing, crossovers, conditions) against numIn/numOut/sampleRate,
// which must be the real values negotiated with the opened capture
// and render devices.
func compileConfig(root *JSONNode, pre devicePreamble, numIn, numOut int, sampleRate uint32) (*Config, error) {
	hasBasic := root.Has("basic")
	hasAdvanced := root.Has("advanced")
	if hasBasic && hasAdvanced {
		return nil, root.errorf("%q and %q are mutually exclusive", "basic", "advanced")
	}

	b := &configBuilder{
		doc:            root,
		sampleRate:     sampleRate,
		numChannelsIn:  numIn,
		numChannelsOut: numOut,
		registry:       NewConditionRegistry(numIn),
		routesByInput:  make(map[Channel][]*Route),
		addHpTo:        make(map[Channel]bool),
		addLpTo:        make(map[Channel]bool),
		levelLinear:    make(map[Channel]float64),
	}

	switch {
	case hasBasic:
		basicNode, err := root.GetObject("basic")
		if err != nil {
			return nil, err
		}
		if err := b.parseBasic(basicNode); err != nil {
			return nil, err
		}
	case hasAdvanced:
		advNode, err := root.GetObject("advanced")
		if err != nil {
			return nil, err
		}
		if err := b.parseAdvanced(advNode); err != nil {
			return nil, err
		}
	default:
		b.parsePassThrough()
	}

	outputs, err := b.buildOutputs(root)
	if err != nil {
		return nil, err
	}

	inputs := make([]*Input, b.numChannelsIn)
	for i := 0; i < b.numChannelsIn; i++ {
		ch := Channel(i)
		inputs[i] = NewInput(ch, b.routesByInput[ch])
	}

	return &Config{
		Description:       pre.Description,
		Hide:              pre.Hide,
		Minimize:          pre.Minimize,
		StartWithOS:       pre.StartWithOS,
		Debug:             pre.Debug,
		CaptureDeviceName: pre.CaptureDeviceName,
		RenderDeviceName:  pre.RenderDeviceName,
		RenderAsio:        pre.RenderAsio,
		AsioBufferSize:    pre.AsioBufferSize,
		AsioNumChannels:   pre.AsioNumChannels,
		SampleRate:        b.sampleRate,
		NumChannelsIn:     b.numChannelsIn,
		NumChannelsOut:    b.numChannelsOut,
		Inputs:            inputs,
		Outputs:           outputs,
		ConditionRegistry: b.registry,
	}, nil
}

// parsePassThrough wires a direct 1:1 route for every channel present
// on both capture and render devices when neither basic nor advanced
// config is given: routing straight through is a legal default.
func (b *configBuilder) parsePassThrough() {
	n := b.numChannelsIn
	if b.numChannelsOut < n {
		n = b.numChannelsOut
	}
	for i := 0; i < n; i++ {
		ch := Channel(i)
		b.addRoute(ch, ch, 0, false)
	}
}

// addRoute appends a direct gain(-only) route from source to dest,
// tracking the linear level contribution for the level-validation pass
// and optionally prefixing the front crossover's low-pass.
func (b *configBuilder) addRoute(source, dest Channel, gainDB float64, addLP bool) {
	if int(dest) >= b.numChannelsOut {
		return
	}
	var filters []Filter
	if gainDB != 0 {
		filters = append(filters, NewGainFilter(gainDB, false))
	}
	if addLP && b.lpCrossover != nil {
		cascade, err := buildCrossoverCascade(b.sampleRate, b.lpCrossover.crossoverType, b.lpCrossover.freq, b.lpCrossover.order, b.lpCrossover.customQ, true)
		if err == nil {
			filters = append(filters, cascade)
		}
	}
	route := NewRoute(source, dest, filters, nil)
	b.routesByInput[source] = append(b.routesByInput[source], route)
	b.levelLinear[dest] += dbToLevel(gainDB)
}

func (b *configBuilder) addRoutes(source Channel, dests []Channel, gainDB float64) {
	for _, d := range dests {
		b.addRoute(source, d, gainDB, false)
	}
}

func (b *configBuilder) addConditionalRoute(source, dest Channel, silentChannel Channel) {
	if int(dest) >= b.numChannelsOut {
		return
	}
	cond := NewSilentCondition(b.registry, int(silentChannel))
	route := NewRoute(source, dest, nil, []Condition{cond})
	b.routesByInput[source] = append(b.routesByInput[source], route)
}

func validateChannel(ch Channel, numChannels int) error {
	if int(ch) >= numChannels {
		return fmt.Errorf("channel %s out of range (have %d channels)", ch, numChannels)
	}
	return nil
}

// PersistDeviceSelection rewrites the resolved capture/render device
// names back into the config file at path, so a first run that
// auto-selected a device (blank name in the file) pins that choice for
// next time rather than re-resolving "default" on every start. Only
// the devices object is touched, and only fields that were blank or
// absent (capture, render, renderAsio); everything else in the file is
// round-tripped untouched.
func (c *Config) PersistDeviceSelection(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	devices, _ := doc["devices"].(map[string]any)
	if devices == nil {
		devices = make(map[string]any)
	}

	changed := false
	if s, _ := devices["capture"].(string); s == "" && c.CaptureDeviceName != "" {
		devices["capture"] = c.CaptureDeviceName
		changed = true
	}
	if s, _ := devices["render"].(string); s == "" && c.RenderDeviceName != "" {
		devices["render"] = c.RenderDeviceName
		changed = true
	}
	if _, ok := devices["renderAsio"]; !ok {
		devices["renderAsio"] = c.RenderAsio
		changed = true
	}
	if !changed {
		return nil
	}
	doc["devices"] = devices

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
