// config_level.go - output assembly plus level validation: sums the
// expected linear level reaching each output and either injects an
// automatic headroom gain (basic mode) or warns (advanced/pass-through)
// when it would clip.

package main

import "math"

// buildOutputs compiles the outputs[] section, applying basic mode's
// auto-crossover injection and the level-validation pass.
func (b *configBuilder) buildOutputs(root *JSONNode) ([]*Output, error) {
	outputNodes, err := root.Array("outputs")
	if err != nil {
		return nil, err
	}

	declared := make(map[Channel]*JSONNode)
	for _, on := range outputNodes {
		channels, err := outputChannels(on)
		if err != nil {
			return nil, err
		}
		for _, ch := range channels {
			declared[ch] = on
		}
	}

	outputs := make([]*Output, b.numChannelsOut)
	for i := 0; i < b.numChannelsOut; i++ {
		ch := Channel(i)
		out, err := b.buildOutput(ch, declared[ch])
		if err != nil {
			return nil, err
		}
		outputs[i] = out
	}
	return outputs, nil
}

func outputChannels(on *JSONNode) ([]Channel, error) {
	if on.Has("channels") {
		nodes, err := on.Array("channels")
		if err != nil {
			return nil, err
		}
		var out []Channel
		for _, n := range nodes {
			ch, ok := ChannelFromString(n.res.String())
			if !ok {
				return nil, n.errorf("unknown channel %q", n.res.String())
			}
			out = append(out, ch)
		}
		return out, nil
	}
	name, err := on.StringDefault("channel", "")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	ch, ok := ChannelFromString(name)
	if !ok {
		return nil, on.errorf("unknown channel %q", name)
	}
	return []Channel{ch}, nil
}

func (b *configBuilder) buildOutput(ch Channel, node *JSONNode) (*Output, error) {
	var filters []Filter
	var mute bool
	var gainDB float64
	hasLowPass, hasHighPass := false, false

	if node != nil {
		var err error
		mute, err = node.BoolDefault("mute", false)
		if err != nil {
			return nil, err
		}
		gainDB, err = node.FloatDefault("gain", 0)
		if err != nil {
			return nil, err
		}
		invert, err := node.BoolDefault("invert", false)
		if err != nil {
			return nil, err
		}
		delayMs, err := node.FloatDefault("delay", 0)
		if err != nil {
			return nil, err
		}

		filterNodes, err := node.Array("filters")
		if err != nil {
			return nil, err
		}
		for _, fn := range filterNodes {
			t, _ := fn.StringDefault("type", "")
			switch t {
			case "LOW_PASS":
				hasLowPass = true
			case "HIGH_PASS":
				hasHighPass = true
			}
		}
		userFilters, err := compileFilterList(filterNodes, b.sampleRate)
		if err != nil {
			return nil, err
		}

		if gainDB != 0 || invert {
			filters = append(filters, NewGainFilter(gainDB, invert))
		}
		if delayMs != 0 {
			if SampleDelay(b.sampleRate, delayMs, false) == 0 {
				logWarn("delay %gms at %s is shorter than one sample, dropped", delayMs, node.pathOrRoot())
			} else {
				filters = append(filters, NewDelayFilter(b.sampleRate, delayMs, false))
			}
		}
		filters = append(filters, userFilters...)

		if cancelNode, has, err := node.Get("cancellation"); err != nil {
			return nil, err
		} else if has {
			freq, err := cancelNode.FloatDefault("freq", 0)
			if err != nil {
				return nil, err
			}
			cgain, err := cancelNode.FloatDefault("gain", 0)
			if err != nil {
				return nil, err
			}
			filters = append(filters, NewCancellationFilter(b.sampleRate, freq, cgain))
		}

		if compNode, has, err := node.Get("compression"); err != nil {
			return nil, err
		} else if has {
			threshold, err := compNode.FloatDefault("threshold", 0)
			if err != nil {
				return nil, err
			}
			ratio, err := compNode.FloatDefault("ratio", 1)
			if err != nil {
				return nil, err
			}
			attack, err := compNode.FloatDefault("attack", 10)
			if err != nil {
				return nil, err
			}
			release, err := compNode.FloatDefault("release", 100)
			if err != nil {
				return nil, err
			}
			window, err := compNode.FloatDefault("window", 0)
			if err != nil {
				return nil, err
			}
			filters = append(filters, NewCompressionFilter(b.sampleRate, threshold, ratio, attack, release, window))
		}
	}

	// Auto-crossover injection (basic mode only, skipped if the user
	// already declared the matching filter type on this channel).
	if b.addLpTo[ch] && !hasLowPass && b.lpCrossover != nil {
		cascade, err := buildCrossoverCascade(b.sampleRate, b.lpCrossover.crossoverType, b.lpCrossover.freq, b.lpCrossover.order, b.lpCrossover.customQ, true)
		if err == nil {
			filters = append([]Filter{cascade}, filters...)
		}
	}
	if b.addHpTo[ch] && !hasHighPass && b.hpCrossover != nil {
		cascade, err := buildCrossoverCascade(b.sampleRate, b.hpCrossover.crossoverType, b.hpCrossover.freq, b.hpCrossover.order, b.hpCrossover.customQ, false)
		if err == nil {
			filters = append([]Filter{cascade}, filters...)
		}
	}

	filters = b.validateLevel(ch, gainDB, filters)

	out := NewOutput(ch, filters)
	out.Mute = mute
	return out, nil
}

// validateLevel checks the accumulated linear level reaching ch
// against this output's own gain and either injects headroom (auto
// gain) or logs a clipping warning.
func (b *configBuilder) validateLevel(ch Channel, outputGainDB float64, filters []Filter) []Filter {
	total := b.levelLinear[ch] * dbToLevel(outputGainDB)
	if total <= 1.0 {
		return filters
	}
	overDB := 20 * math.Log10(total)
	if b.useAutoGain {
		attenuation := -(overDB - autoGainHeadroomDB)
		return append([]Filter{NewGainFilter(attenuation, false)}, filters...)
	}
	logWarn("output %s expected level %.2fdB over unity, may clip", ch, overDB)
	return filters
}
