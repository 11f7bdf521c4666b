// config_filters.go - compiles a JSON filters[] array into a []Filter
// chain. Shared by advanced-mode routes, basic-mode auto-crossovers,
// and output filter chains.

package main

import "fmt"

func compileFilterList(nodes []*JSONNode, sampleRate uint32) ([]Filter, error) {
	var filters []Filter
	for _, n := range nodes {
		f, err := compileFilter(n, sampleRate)
		if err != nil {
			return nil, err
		}
		if f != nil {
			filters = append(filters, f)
		}
	}
	return filters, nil
}

func compileFilter(n *JSONNode, sampleRate uint32) (Filter, error) {
	kind, err := n.StringDefault("type", "")
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, n.errorf("filter entry missing required field %q", "type")
	}

	switch kind {
	case "LOW_PASS":
		return compileCrossoverFilter(n, sampleRate, true)
	case "HIGH_PASS":
		return compileCrossoverFilter(n, sampleRate, false)
	case "LOW_SHELF":
		return compileShelfOrPEQ(n, sampleRate, "lowshelf")
	case "HIGH_SHELF":
		return compileShelfOrPEQ(n, sampleRate, "highshelf")
	case "PEQ":
		return compileShelfOrPEQ(n, sampleRate, "peq")
	case "BAND_PASS":
		return compileShelfOrPEQ(n, sampleRate, "bandpass")
	case "NOTCH":
		return compileShelfOrPEQ(n, sampleRate, "notch")
	case "LINKWITZ_TRANSFORM":
		return compileLinkwitzTransform(n, sampleRate)
	case "BIQUAD":
		return compileRawBiquad(n, sampleRate)
	case "FIR":
		return compileFIR(n)
	default:
		return nil, n.errorf("unknown filter type %q", kind)
	}
}

func compileCrossoverFilter(n *JSONNode, sampleRate uint32, lowPass bool) (Filter, error) {
	defaultFreq, defaultOrder := 80.0, 2
	freq, err := n.FloatDefault("freq", defaultFreq)
	if err != nil {
		return nil, err
	}
	order, err := n.IntDefault("order", defaultOrder)
	if err != nil {
		return nil, err
	}
	ctStr, err := n.StringDefault("crossoverType", "Butterworth")
	if err != nil {
		return nil, err
	}

	var customQ []float64
	if ctStr == "Custom" {
		qNodes, err := n.Array("q")
		if err != nil {
			return nil, err
		}
		for _, qn := range qNodes {
			customQ = append(customQ, qn.res.Float())
		}
	}

	f, err := buildCrossoverCascade(sampleRate, ctStr, freq, order, customQ, lowPass)
	if err != nil {
		return nil, n.errorf("%v", err)
	}
	return f, nil
}

// buildCrossoverCascade builds the biquad cascade for a low-pass or
// high-pass crossover of the given family/order, shared by both the
// JSON filter compiler and the basic-mode auto-crossover injector.
func buildCrossoverCascade(sampleRate uint32, crossoverTypeStr string, freq float64, order int, customQ []float64, lowPass bool) (Filter, error) {
	ct, ok := CrossoverTypeFromString(crossoverTypeStr)
	if !ok {
		return nil, fmt.Errorf("unknown crossover type %q", crossoverTypeStr)
	}

	var qValues []float64
	var err error
	if ct == Custom {
		if err := ValidateCustomOrder(customQ, order); err != nil {
			return nil, err
		}
		qValues = customQ
	} else {
		qValues, err = QValues(ct, order, 0)
		if err != nil {
			return nil, err
		}
	}

	cascade := NewBiquadCascade(sampleRate)
	if lowPass {
		cascade.AddLowPass(freq, qValues)
	} else {
		cascade.AddHighPass(freq, qValues)
	}
	return cascade, nil
}

func compileShelfOrPEQ(n *JSONNode, sampleRate uint32, kind string) (Filter, error) {
	freq, err := n.FloatDefault("freq", 1000)
	if err != nil {
		return nil, err
	}
	gain, err := n.FloatDefault("gain", 0)
	if err != nil {
		return nil, err
	}
	q, err := n.FloatDefault("q", 0.707)
	if err != nil {
		return nil, err
	}
	bandwidth, err := n.FloatDefault("bandwidth", q)
	if err != nil {
		return nil, err
	}

	cascade := NewBiquadCascade(sampleRate)
	switch kind {
	case "lowshelf":
		cascade.AddLowShelf(freq, gain, q)
	case "highshelf":
		cascade.AddHighShelf(freq, gain, q)
	case "peq":
		cascade.AddPEQ(freq, q, gain)
	case "bandpass":
		cascade.AddBandPass(freq, bandwidth, gain)
	case "notch":
		cascade.AddNotch(freq, bandwidth, gain)
	default:
		return nil, fmt.Errorf("compileShelfOrPEQ: unknown kind %q", kind)
	}
	return cascade, nil
}

func compileLinkwitzTransform(n *JSONNode, sampleRate uint32) (Filter, error) {
	fz, err := n.FloatDefault("fz", 0)
	if err != nil {
		return nil, err
	}
	qz, err := n.FloatDefault("qz", 0.707)
	if err != nil {
		return nil, err
	}
	fp, err := n.FloatDefault("fp", 0)
	if err != nil {
		return nil, err
	}
	qp, err := n.FloatDefault("qp", 0.707)
	if err != nil {
		return nil, err
	}
	cascade := NewBiquadCascade(sampleRate)
	cascade.AddLinkwitzTransform(fz, qz, fp, qp)
	return cascade, nil
}

func compileRawBiquad(n *JSONNode, sampleRate uint32) (Filter, error) {
	values, err := n.Array("values")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, n.errorf("BIQUAD filter requires a non-empty %q array", "values")
	}
	cascade := NewBiquadCascade(sampleRate)
	for _, v := range values {
		b0, err := v.FloatDefault("b0", 0)
		if err != nil {
			return nil, err
		}
		b1, err := v.FloatDefault("b1", 0)
		if err != nil {
			return nil, err
		}
		b2, err := v.FloatDefault("b2", 0)
		if err != nil {
			return nil, err
		}
		a0, err := v.FloatDefault("a0", 1)
		if err != nil {
			return nil, err
		}
		a1, err := v.FloatDefault("a1", 0)
		if err != nil {
			return nil, err
		}
		a2, err := v.FloatDefault("a2", 0)
		if err != nil {
			return nil, err
		}
		cascade.AddRaw(b0, b1, b2, a0, a1, a2)
	}
	return cascade, nil
}

func compileFIR(n *JSONNode) (Filter, error) {
	file, err := n.StringDefault("file", "")
	if err != nil {
		return nil, err
	}
	if file == "" {
		return nil, n.errorf("FIR filter requires a %q field", "file")
	}
	taps, err := LoadFIRTaps(file)
	if err != nil {
		return nil, wrapTransientIOError(err)
	}
	return NewFIRFilter(taps), nil
}
