// config_basic.go - the declarative bass-management compiler: given a
// per-channel speaker role (LARGE/SMALL/SUB/OFF), derives the routing
// and crossover plan automatically.

package main

// parseBasic is the basic-mode entry point.
func (b *configBuilder) parseBasic(node *JSONNode) error {
	b.useAutoGain = true

	stereoBass, err := node.BoolDefault("stereoBass", false)
	if err != nil {
		return err
	}

	var subs, subLs, subRs, smalls []Channel
	channelsMap, err := b.parseChannels(node, stereoBass, &subs, &subLs, &subRs, &smalls)
	if err != nil {
		return err
	}

	useSubwoofers := len(subs) > 0 || len(subLs) > 0 || len(subRs) > 0
	lfeGain, err := b.getLfeGain(node, useSubwoofers, len(smalls) > 0)
	if err != nil {
		return err
	}
	centerGain, err := node.FloatDefault("centerGain", 0)
	if err != nil {
		return err
	}

	if err := b.parseBasicCrossovers(node, channelsMap); err != nil {
		return err
	}

	if err := b.routeChannels(channelsMap, stereoBass, subs, subLs, subRs, lfeGain, centerGain); err != nil {
		return err
	}

	return b.parseExpandSurround(node, channelsMap)
}

func (b *configBuilder) parseBasicCrossovers(node *JSONNode, channelsMap map[Channel]SpeakerType) error {
	for ch, t := range channelsMap {
		switch t {
		case SpeakerSmall:
			b.addHpTo[ch] = true
		case SpeakerSub:
			b.addLpTo[ch] = true
		}
	}
	lp, err := b.parseBasicCrossover(node, "lowPass", "Butterworth", 80, 5)
	if err != nil {
		return err
	}
	b.lpCrossover = lp
	hp, err := b.parseBasicCrossover(node, "highPass", "Butterworth", 80, 3)
	if err != nil {
		return err
	}
	b.hpCrossover = hp
	return nil
}

// basicCrossoverSpec holds the resolved {crossoverType,freq,order,q}
// values for one of basic mode's two auto-crossovers.
type basicCrossoverSpec struct {
	crossoverType string
	freq          float64
	order         int
	customQ       []float64
}

// parseBasicCrossover resolves field's {crossoverType,freq,order,q}
// against the given defaults.
func (b *configBuilder) parseBasicCrossover(node *JSONNode, field, defaultType string, defaultFreq float64, defaultOrder int) (*basicCrossoverSpec, error) {
	userNode, has, err := node.Get(field)
	if err != nil {
		return nil, err
	}
	spec := &basicCrossoverSpec{crossoverType: defaultType, freq: defaultFreq, order: defaultOrder}
	if !has {
		return spec, nil
	}
	spec.freq, err = userNode.FloatDefault("freq", defaultFreq)
	if err != nil {
		return nil, err
	}
	spec.order, err = userNode.IntDefault("order", defaultOrder)
	if err != nil {
		return nil, err
	}
	spec.crossoverType, err = userNode.StringDefault("crossoverType", defaultType)
	if err != nil {
		return nil, err
	}
	qNodes, err := userNode.Array("q")
	if err != nil {
		return nil, err
	}
	for _, qn := range qNodes {
		spec.customQ = append(spec.customQ, qn.res.Float())
	}
	return spec, nil
}

func (b *configBuilder) parseExpandSurround(node *JSONNode, channelsMap map[Channel]SpeakerType) error {
	expand, err := node.BoolDefault("expandSurround", false)
	if err != nil {
		return err
	}
	if !expand {
		return nil
	}
	surr, surrOK := channelsMap[ChannelSL]
	surrBack, surrBackOK := channelsMap[ChannelSBL]
	playing := func(t SpeakerType) bool { return t == SpeakerLarge || t == SpeakerSmall }
	if !surrOK || !surrBackOK || !playing(surr) || !playing(surrBack) {
		return nil // warn-and-skip, matching the original's LOG_WARN + return
	}
	b.addConditionalRoute(ChannelSL, ChannelSBL, ChannelSBL)
	b.addConditionalRoute(ChannelSR, ChannelSBR, ChannelSBR)
	return nil
}

func (b *configBuilder) routeChannels(channelsMap map[Channel]SpeakerType, stereoBass bool, subs, subLs, subRs []Channel, lfeGain, centerGain float64) error {
	for i := 0; i < b.numChannelsIn; i++ {
		ch := Channel(i)
		t := channelsMap[ch]
		switch t {
		case SpeakerLarge:
			b.addRoute(ch, ch, 0, false)
		case SpeakerSmall:
			b.addRoute(ch, ch, 0, false)
			b.addBassRoute(ch, stereoBass, subs, subLs, subRs, lfeGain, centerGain)
		case SpeakerSub:
			if ch == ChannelSW {
				b.addSwRoute(ch, stereoBass, subs, subLs, subRs, lfeGain)
			} else {
				b.downmix(channelsMap, ch, stereoBass, subs, subLs, subRs, lfeGain, centerGain)
			}
		case SpeakerOff:
			b.downmix(channelsMap, ch, stereoBass, subs, subLs, subRs, lfeGain, centerGain)
		}
	}
	return nil
}

func (b *configBuilder) downmix(channelsMap map[Channel]SpeakerType, ch Channel, stereoBass bool, subs, subLs, subRs []Channel, lfeGain, centerGain float64) {
	resultType := SpeakerOff
	switch ch {
	case ChannelSL:
		resultType = b.downmixTo(channelsMap, ch, []Channel{ChannelSBL, ChannelL})
	case ChannelSBL:
		resultType = b.downmixTo(channelsMap, ch, []Channel{ChannelSL, ChannelL})
	case ChannelSR:
		resultType = b.downmixTo(channelsMap, ch, []Channel{ChannelSBR, ChannelR})
	case ChannelSBR:
		resultType = b.downmixTo(channelsMap, ch, []Channel{ChannelSR, ChannelR})
	case ChannelC:
		gain := phantomCenterGainDB + centerGain
		b.addRoute(ch, ChannelL, gain, false)
		b.addRoute(ch, ChannelR, gain, false)
		resultType = channelsMap[ChannelL]
	case ChannelSW:
		resultType = SpeakerSmall
	}
	if resultType == SpeakerSmall {
		b.addBassRoute(ch, stereoBass, subs, subLs, subRs, lfeGain, centerGain)
	}
}

// downmixTo routes ch to the first of candidates that is an active
// speaker (LARGE or SMALL), returning that candidate's type.
func (b *configBuilder) downmixTo(channelsMap map[Channel]SpeakerType, ch Channel, candidates []Channel) SpeakerType {
	for _, c := range candidates {
		t, ok := channelsMap[c]
		if ok && (t == SpeakerLarge || t == SpeakerSmall) {
			b.addRoute(ch, c, 0, false)
			return t
		}
	}
	return SpeakerOff
}

func (b *configBuilder) addBassRoute(ch Channel, stereoBass bool, subs, subLs, subRs []Channel, lfeGain, centerGain float64) {
	var gain float64
	switch ch {
	case ChannelSW:
		gain = lfeGain
	case ChannelC:
		gain = centerGain
	}
	if len(subs) > 0 || len(subLs) > 0 || len(subRs) > 0 {
		b.addSwRoute(ch, stereoBass, subs, subLs, subRs, gain)
	} else {
		b.addFrontBassRoute(ch, stereoBass, gain)
	}
}

func (b *configBuilder) addFrontBassRoute(ch Channel, stereoBass bool, gain float64) {
	addLP := ch != ChannelSW
	if stereoBass {
		switch ch {
		case ChannelSL, ChannelSBL:
			b.addRoute(ch, ChannelL, gain, addLP)
			return
		case ChannelSR, ChannelSBR:
			b.addRoute(ch, ChannelR, gain, addLP)
			return
		case ChannelC, ChannelSW:
			b.addRoute(ch, ChannelL, gain+bassToStereoGainDB, addLP)
			b.addRoute(ch, ChannelR, gain+bassToStereoGainDB, addLP)
			return
		}
	}
	b.addRoute(ch, ChannelL, gain+bassToStereoGainDB, addLP)
	b.addRoute(ch, ChannelR, gain+bassToStereoGainDB, addLP)
}

func (b *configBuilder) addSwRoute(ch Channel, stereoBass bool, subs, subLs, subRs []Channel, gain float64) {
	if stereoBass {
		switch ch {
		case ChannelL, ChannelSL, ChannelSBL:
			b.addRoutes(ch, subLs, gain)
			return
		case ChannelR, ChannelSR, ChannelSBR:
			b.addRoutes(ch, subRs, gain)
			return
		case ChannelC, ChannelSW:
			b.addRoutes(ch, subLs, gain+bassToStereoGainDB)
			b.addRoutes(ch, subRs, gain+bassToStereoGainDB)
			return
		}
	}
	b.addRoutes(ch, subs, gain)
}

// parseChannels builds the {channel -> SpeakerType} map for all
// managed channels and fills the subs/subLs/subRs/smalls slices.
func (b *configBuilder) parseChannels(node *JSONNode, stereoBass bool, subs, subLs, subRs, smalls *[]Channel) (map[Channel]SpeakerType, error) {
	result := make(map[Channel]SpeakerType)

	if err := b.parseChannelField(result, node, "front", []Channel{ChannelL, ChannelR},
		[]SpeakerType{SpeakerLarge, SpeakerSmall}); err != nil {
		return nil, err
	}
	if err := b.parseChannelField(result, node, "subwoofer", []Channel{ChannelSW},
		[]SpeakerType{SpeakerSub, SpeakerOff}); err != nil {
		return nil, err
	}
	allowed := []SpeakerType{SpeakerLarge, SpeakerSmall, SpeakerSub, SpeakerOff}
	if err := b.parseChannelField(result, node, "center", []Channel{ChannelC}, allowed); err != nil {
		return nil, err
	}
	if err := b.parseChannelField(result, node, "surround", []Channel{ChannelSL, ChannelSR}, allowed); err != nil {
		return nil, err
	}
	if err := b.parseChannelField(result, node, "surroundBack", []Channel{ChannelSBL, ChannelSBR}, allowed); err != nil {
		return nil, err
	}

	for ch, t := range result {
		switch t {
		case SpeakerSmall:
			*smalls = append(*smalls, ch)
		case SpeakerSub:
			if stereoBass {
				switch ch {
				case ChannelC, ChannelSL, ChannelSBL:
					*subLs = append(*subLs, ch)
				case ChannelSW, ChannelSR, ChannelSBR:
					*subRs = append(*subRs, ch)
				}
			} else {
				*subs = append(*subs, ch)
			}
		}
	}

	useSubwoofers := len(*subs) > 0 || len(*subLs) > 0 || len(*subRs) > 0
	if useSubwoofers {
		if len(*subLs) != len(*subRs) {
			return nil, node.errorf("stereoBass requires matching left/right subwoofer counts")
		}
	} else {
		if result[ChannelL] == SpeakerSmall {
			return nil, node.errorf("can't use small front speakers with no subwoofer")
		}
	}

	return result, nil
}

func (b *configBuilder) parseChannelField(result map[Channel]SpeakerType, node *JSONNode, field string, channels []Channel, allowed []SpeakerType) error {
	isAllowed := func(t SpeakerType) bool {
		for _, a := range allowed {
			if a == t {
				return true
			}
		}
		return false
	}

	child, has, err := node.Get(field)
	if err != nil {
		return err
	}
	if has {
		s := child.res.String()
		t, err := SpeakerTypeFromString(s)
		if err != nil {
			return child.errorf("%v", err)
		}
		if !isAllowed(t) {
			return child.errorf("speaker type %q is not allowed for %q", t, field)
		}
		for _, ch := range channels {
			result[ch] = SpeakerOff
			if int(ch) >= b.numChannelsOut && t != SpeakerOff {
				continue
			}
			if int(ch) >= b.numChannelsIn && (t == SpeakerLarge || t == SpeakerSmall) {
				continue
			}
			result[ch] = t
		}
		return nil
	}

	for _, ch := range channels {
		if int(ch) < b.numChannelsOut {
			result[ch] = allowed[0]
		} else {
			result[ch] = SpeakerOff
		}
	}
	return nil
}

func (b *configBuilder) getLfeGain(node *JSONNode, useSubwoofers, hasSmalls bool) (float64, error) {
	lfeGain, err := node.FloatDefault("lfeGain", 0)
	if err != nil {
		return 0, err
	}
	if useSubwoofers && !hasSmalls {
		return 0, nil
	}
	return lfeGain + lfeGainDB, nil
}
