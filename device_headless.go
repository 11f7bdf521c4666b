//go:build headless

// device_headless.go - null capture/render devices for headless test
// and CI environments with no real audio hardware.

package main

import "time"

// NullCaptureDevice produces silence at the configured rate.
type NullCaptureDevice struct {
	channels   int
	sampleRate uint32
}

func NewNullCaptureDevice(channels int, sampleRate uint32) *NullCaptureDevice {
	return &NullCaptureDevice{channels: channels, sampleRate: sampleRate}
}

func (d *NullCaptureDevice) Start() error { return nil }
func (d *NullCaptureDevice) Stop() error  { return nil }
func (d *NullCaptureDevice) Close() error { return nil }

func (d *NullCaptureDevice) Read(buf []float32) (int, error) {
	clear(buf)
	frames := len(buf) / d.channels
	time.Sleep(time.Duration(frames) * time.Second / time.Duration(d.sampleRate))
	return frames, nil
}

func (d *NullCaptureDevice) Channels() int      { return d.channels }
func (d *NullCaptureDevice) SampleRate() uint32 { return d.sampleRate }
func (d *NullCaptureDevice) Name() string       { return "null" }

// NullRenderDevice discards whatever it's given.
type NullRenderDevice struct {
	channels   int
	sampleRate uint32
}

func NewNullRenderDevice(channels int, sampleRate uint32) *NullRenderDevice {
	return &NullRenderDevice{channels: channels, sampleRate: sampleRate}
}

func (d *NullRenderDevice) Start() error { return nil }
func (d *NullRenderDevice) Stop() error  { return nil }
func (d *NullRenderDevice) Close() error { return nil }

func (d *NullRenderDevice) Channels() int      { return d.channels }
func (d *NullRenderDevice) SampleRate() uint32 { return d.sampleRate }
func (d *NullRenderDevice) Name() string       { return "null" }

func (d *NullRenderDevice) WriteFrames(samples []float32, numFrames int) error {
	return nil
}
