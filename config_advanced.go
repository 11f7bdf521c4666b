// config_advanced.go - advanced mode: the user spells out every route
// explicitly, keyed by capture channel name.

package main

func (b *configBuilder) parseAdvanced(node *JSONNode) error {
	for i := 0; i < int(NumChannels); i++ {
		ch := Channel(i)
		name := ch.String()
		if !node.Has(name) {
			continue
		}
		routeNodes, err := node.Array(name)
		if err != nil {
			return err
		}
		for _, rn := range routeNodes {
			if err := b.parseAdvancedRoute(ch, rn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *configBuilder) parseAdvancedRoute(source Channel, rn *JSONNode) error {
	outName, err := rn.StringDefault("out", "")
	if err != nil {
		return err
	}
	if outName == "" {
		return rn.errorf("advanced route missing required field %q", "out")
	}
	dest, ok := ChannelFromString(outName)
	if !ok {
		return rn.errorf("unknown output channel %q", outName)
	}
	if int(dest) >= b.numChannelsOut {
		return nil
	}

	gain, err := rn.FloatDefault("gain", 0)
	if err != nil {
		return err
	}
	invert, err := rn.BoolDefault("invert", false)
	if err != nil {
		return err
	}
	delayMs, err := rn.FloatDefault("delay", 0)
	if err != nil {
		return err
	}

	var filters []Filter
	if gain != 0 || invert {
		filters = append(filters, NewGainFilter(gain, invert))
	}
	if delayMs != 0 {
		if SampleDelay(b.sampleRate, delayMs, false) == 0 {
			logWarn("delay %gms at %s is shorter than one sample, dropped", delayMs, rn.pathOrRoot())
		} else {
			filters = append(filters, NewDelayFilter(b.sampleRate, delayMs, false))
		}
	}
	filterNodes, err := rn.Array("filters")
	if err != nil {
		return err
	}
	extra, err := compileFilterList(filterNodes, b.sampleRate)
	if err != nil {
		return err
	}
	filters = append(filters, extra...)

	var conditions []Condition
	ifNode, hasIf, err := rn.Get("if")
	if err != nil {
		return err
	}
	if hasIf {
		silentName, err := ifNode.StringDefault("silent", "")
		if err != nil {
			return err
		}
		if silentName != "" {
			silentCh, ok := ChannelFromString(silentName)
			if !ok {
				return ifNode.errorf("unknown channel %q", silentName)
			}
			conditions = append(conditions, NewSilentCondition(b.registry, int(silentCh)))
		}
	}

	route := NewRoute(source, dest, filters, conditions)
	b.routesByInput[source] = append(b.routesByInput[source], route)
	b.levelLinear[dest] += dbToLevel(gain)
	return nil
}
