// main.go - CLI entry point.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
)

const windspVersion = "0.1.0"

var cli struct {
	Config       string           `help:"Path to the configuration file. Defaults to WinDSP.json next to the executable." type:"path"`
	Debug        bool             `help:"Enable debug-level logging."`
	ListDevices  bool             `name:"list-devices" help:"List available capture and render devices, then exit."`
	DumpResponse string           `name:"dump-response" help:"Comma-separated frequencies (Hz): print each output's filter chain and its response at those frequencies, then exit." placeholder:"FREQ,..."`
	Version      kong.VersionFlag `help:"Show version and exit."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("windsp"),
		kong.Description("Loopback capture, routing, crossover, and room-correction engine."),
		kong.Vars{"version": "windsp " + windspVersion},
	)

	if cli.Debug {
		defaultLogger.SetLevel(log.DebugLevel)
	}

	if cli.ListDevices {
		if err := listDevices(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	configPath, err := findConfigPath(cli.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cli.DumpResponse != "" {
		if err := dumpResponse(configPath, cli.DumpResponse); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	visibility := NewHeadlessVisibility()
	supervisor := NewSupervisor(configPath, visibility)

	if err := supervisor.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// listDevices prints every PortAudio device's name, channel counts, and
// default sample rate, so a user can pick an exact name for the
// config file's devices.capture/devices.render fields.
func listDevices() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return fmt.Errorf("enumerate devices: %w", err)
	}

	for _, d := range devices {
		fmt.Printf("%-40s in=%d out=%d rate=%.0f\n", d.Name, d.MaxInputChannels, d.MaxOutputChannels, d.DefaultSampleRate)
	}
	return nil
}

// dumpResponse compiles the config at configPath against the default
// requested channel counts and sample rate (no device is opened) and
// prints, for every output, each biquad cascade in its filter chain:
// its description, its frequency response at each of the requested
// frequencies, and its coefficients in the miniDSP format used by
// BiquadCascade.DumpCoefficients. Filters that are not biquad
// cascades are skipped.
func dumpResponse(configPath, freqSpec string) error {
	freqs, err := parseFrequencyList(freqSpec)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	for _, out := range cfg.Outputs {
		fmt.Printf("output %s:\n", out.Channel)
		for _, f := range out.filters {
			cascade, ok := f.(*BiquadCascade)
			if !ok {
				continue
			}
			fmt.Println("  " + cascade.String())
			for _, hz := range freqs {
				fmt.Printf("  %8.1f Hz -> %.4f dB\n", hz, cascade.FrequencyResponse(hz))
			}
			for _, line := range cascade.DumpCoefficients(true) {
				fmt.Println("  " + line)
			}
		}
	}
	return nil
}

// parseFrequencyList parses a comma-separated list of frequencies in
// Hz, e.g. "20,100,1000,10000".
func parseFrequencyList(spec string) ([]float64, error) {
	parts := strings.Split(spec, ",")
	freqs := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		hz, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid frequency %q: %w", p, err)
		}
		freqs = append(freqs, hz)
	}
	return freqs, nil
}
