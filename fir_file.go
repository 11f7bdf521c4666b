// fir_file.go - FIR tap file loaders for .txt (one decimal per line)
// and .wav (mono PCM or IEEE-float).

package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
)

// LoadFIRTaps dispatches on the file extension and returns the tap
// coefficients in file order.
func LoadFIRTaps(path string) ([]float64, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".wav"):
		return loadFIRWav(path)
	default:
		return loadFIRText(path)
	}
}

func loadFIRText(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIR file %q: %w", path, err)
	}
	defer f.Close()

	var taps []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("FIR file %q: invalid tap value %q: %w", path, line, err)
		}
		taps = append(taps, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read FIR file %q: %w", path, err)
	}
	if len(taps) == 0 {
		return nil, fmt.Errorf("FIR file %q contains no taps", path)
	}
	return taps, nil
}

func loadFIRWav(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIR file %q: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode FIR wav %q: %w", path, err)
	}
	if dec.NumChans != 1 {
		return nil, fmt.Errorf("FIR wav %q: expected mono, got %d channels", path, dec.NumChans)
	}

	bits := int(dec.BitDepth)
	taps := make([]float64, len(buf.Data))
	if dec.WavAudioFormat == 3 {
		// IEEE-float: go-audio stores raw int32/int64 bit patterns for
		// non-integer PCM, so reinterpret each sample's bits.
		switch bits {
		case 32:
			for i, s := range buf.Data {
				taps[i] = float64(math.Float32frombits(uint32(s)))
			}
		case 64:
			for i, s := range buf.Data {
				taps[i] = math.Float64frombits(uint64(s))
			}
		default:
			return nil, fmt.Errorf("FIR wav %q: unsupported float bit depth %d", path, bits)
		}
		return taps, nil
	}

	maxVal := float64(int64(1)<<(bits-1)) - 1
	for i, s := range buf.Data {
		taps[i] = float64(s) / maxVal
	}
	return taps, nil
}
