// supervisor.go - the outer ~100ms housekeeping loop: drains logs,
// surfaces asynchronous device errors, watches for config changes, and
// refreshes the condition registry and clip counters every ~5s.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	supervisorTickInterval    = 100 * time.Millisecond
	conditionRefreshTicks     = 50 // ~5s at 100ms/tick
	configInvalidRetryTicks   = 20 // waits 20 x 100ms then retries
	deviceUnavailableRetry    = 2 * time.Second
)

// Supervisor owns the lifecycle of one Pipeline: building it from the
// current config, tearing it down and rebuilding on config change or
// async device error, and the slow housekeeping tick in between.
type Supervisor struct {
	configPath string
	visibility Visibility
	watcher    *ConfigWatcher
	keys       *DigitKeyReader

	pipeline     *Pipeline
	pipelineErrs chan error
}

func NewSupervisor(configPath string, visibility Visibility) *Supervisor {
	return &Supervisor{configPath: configPath, visibility: visibility}
}

// Run loads the config, builds the pipeline, and services it until an
// error it does not recover from. Neither Run nor main.go installs any
// signal handling; an interrupt ends the process directly.
func (s *Supervisor) Run() error {
	if err := raiseProcessPriority(); err != nil {
		logWarn("could not raise process priority: %v", err)
	}

	watcher, err := NewConfigWatcher(s.configPath)
	if err != nil {
		logWarn("config watch disabled: %v", err)
	} else {
		s.watcher = watcher
		defer watcher.Close()
	}

	keys, err := NewDigitKeyReader()
	if err != nil {
		logWarn("digit key selection disabled: %v", err)
	} else {
		s.keys = keys
		defer keys.Close()
	}

	for {
		if err := s.runOnce(); err != nil {
			ee, ok := err.(*EngineError)
			if !ok {
				return err
			}
			switch ee.Kind {
			case ErrConfigInvalid:
				s.visibility.Show()
				logError("config invalid: %v", err)
				time.Sleep(time.Duration(configInvalidRetryTicks) * supervisorTickInterval)
			case ErrDeviceUnavailable:
				s.visibility.Show()
				logError("device unavailable: %v", err)
				time.Sleep(deviceUnavailableRetry)
			case ErrDeviceAsync:
				logWarn("device signaled async reset: %v", err)
			case ErrConfigChanged:
				logInfo("configuration changed, reloading")
			default:
				return err
			}
			globalLogQueue.Drain()
			continue
		}
		return nil
	}
}

// runOnce reads the config's device preamble, opens the capture and
// render devices against it, compiles the rest of the config against
// the devices' real negotiated channel counts and sample rate, runs
// the pipeline's hot loop in a goroutine, and services the
// housekeeping tick until the pipeline exits (error, async reset, or
// config change).
func (s *Supervisor) runOnce() error {
	root, pre, err := ReadConfigDocument(s.configPath)
	if err != nil {
		return err
	}

	capture, sharedRender, proRender, err := openDevices(pre)
	if err != nil {
		return err
	}
	defer capture.Close()
	if sharedRender != nil {
		defer sharedRender.Close()
	}
	if proRender != nil {
		defer proRender.Close()
	}

	numOut, renderRate, renderName := renderDeviceInfo(sharedRender, proRender)
	if renderRate != capture.SampleRate() {
		return NewEngineError(ErrConfigInvalid, fmt.Errorf(
			"sample rate mismatch: capture device %q runs at %d Hz, render device %q runs at %d Hz",
			capture.Name(), capture.SampleRate(), renderName, renderRate))
	}

	cfg, err := compileConfig(root, pre, capture.Channels(), numOut, capture.SampleRate())
	if err != nil {
		return err
	}
	cfg.CaptureDeviceName = capture.Name()
	cfg.RenderDeviceName = renderName
	if err := cfg.PersistDeviceSelection(s.configPath); err != nil {
		logWarn("could not persist resolved device selection: %v", err)
	}

	s.pipeline = NewPipeline(cfg, capture, sharedRender, proRender)
	s.pipelineErrs = make(chan error, 1)

	capture.Start()
	if sharedRender != nil {
		sharedRender.Start()
	}
	if proRender != nil {
		proRender.Start()
	}

	go func() {
		s.pipelineErrs <- s.pipeline.Run()
	}()

	ticker := time.NewTicker(supervisorTickInterval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case err := <-s.pipelineErrs:
			s.pipeline.Stop()
			globalLogQueue.Drain()
			if err == nil {
				return nil
			}
			return err

		case <-ticker.C:
			globalLogQueue.Drain()

			if proRender != nil {
				if err := proRender.Errors(); err != nil {
					s.pipeline.Stop()
					return NewEngineError(ErrDeviceAsync, err)
				}
			}
			if s.watcher != nil {
				select {
				case <-s.watcher.Changed:
					s.pipeline.Stop()
					return NewEngineError(ErrConfigChanged, nil)
				default:
				}
			}
			if s.keys != nil {
				select {
				case d := <-s.keys.Digits:
					s.pipeline.Stop()
					s.configPath = configPathForDigit(filepath.Dir(s.configPath), d)
					return NewEngineError(ErrConfigChanged, nil)
				default:
				}
			}

			tick++
			if tick >= conditionRefreshTicks {
				tick = 0
				s.refreshConditions(cfg)
				s.checkClipping(cfg)
			}
		}
	}
}

// renderDeviceInfo extracts the channel count, sample rate, and name
// from whichever render device is active; exactly one of
// sharedRender/proRender is non-nil.
func renderDeviceInfo(sharedRender *SharedRenderDevice, proRender *ProAudioRenderDevice) (numOut int, sampleRate uint32, name string) {
	if proRender != nil {
		return proRender.Channels(), proRender.SampleRate(), proRender.Name()
	}
	return sharedRender.Channels(), sharedRender.SampleRate(), sharedRender.Name()
}

func (s *Supervisor) refreshConditions(cfg *Config) {
	for i, in := range cfg.Inputs {
		used := in.ResetIsPlaying()
		cfg.ConditionRegistry.SetUsed(i, used)
	}
	for _, in := range cfg.Inputs {
		in.EvalConditions()
	}
}

func (s *Supervisor) checkClipping(cfg *Config) {
	for _, out := range cfg.Outputs {
		if out.ResetClipping() {
			logWarn("output %s clipped", out.Channel)
		}
	}
}

// openDevices opens the capture and render devices named in pre,
// requesting NumChannels/requestedSampleRate since the compiled config
// (which needs the devices' real negotiated values) doesn't exist yet.
func openDevices(pre devicePreamble) (CaptureDevice, *SharedRenderDevice, *ProAudioRenderDevice, error) {
	capture, err := NewPortAudioCapture(pre.CaptureDeviceName, int(NumChannels), requestedSampleRate)
	if err != nil {
		return nil, nil, nil, err
	}

	if pre.RenderAsio {
		render, err := NewProAudioRenderDevice(pre.RenderDeviceName, pre.AsioNumChannels, requestedSampleRate)
		if err != nil {
			capture.Close()
			return nil, nil, nil, err
		}
		return capture, nil, render, nil
	}

	render, err := NewSharedRenderDevice(int(NumChannels), requestedSampleRate)
	if err != nil {
		capture.Close()
		return nil, nil, nil, err
	}
	return capture, render, nil, nil
}

// findConfigPath resolves the default config file adjacent to the
// running executable.
func findConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), defaultConfigFilename), nil
}
