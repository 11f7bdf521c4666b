// device_capture.go - loopback/input capture via PortAudio.

package main

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioCapture reads interleaved frames from a PortAudio input
// stream opened against the configured device (typically a monitor /
// loopback source).
const captureFramesPerBuffer = 512

type PortAudioCapture struct {
	stream     *portaudio.Stream
	deviceName string
	channels   int
	sampleRate uint32
	errs       AsyncErrorBox
	ioBuf      []float32 // interleaved, len == captureFramesPerBuffer*channels
}

// NewPortAudioCapture opens deviceName (or the default input device
// when empty) with the given channel count and sample rate.
func NewPortAudioCapture(deviceName string, channels int, sampleRate uint32) (*PortAudioCapture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, NewEngineError(ErrDeviceUnavailable, err)
	}

	dev, err := resolveInputDevice(deviceName)
	if err != nil {
		portaudio.Terminate()
		return nil, NewEngineError(ErrDeviceUnavailable, err)
	}

	c := &PortAudioCapture{
		deviceName: dev.Name,
		channels:   channels,
		sampleRate: sampleRate,
		ioBuf:      make([]float32, captureFramesPerBuffer*channels),
	}
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(sampleRate),
		FramesPerBuffer: captureFramesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, c.ioBuf)
	if err != nil {
		portaudio.Terminate()
		return nil, NewEngineError(ErrDeviceUnavailable, err)
	}
	c.stream = stream
	return c, nil
}

func resolveInputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		return portaudio.DefaultInputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if d.Name == name && d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("capture device %q not found", name)
}

func (c *PortAudioCapture) Start() error { return c.stream.Start() }
func (c *PortAudioCapture) Stop() error  { return c.stream.Stop() }
func (c *PortAudioCapture) Close() error { defer portaudio.Terminate(); return c.stream.Close() }

// Read blocks for one buffer's worth of frames and copies them into
// buf, which must be at least captureFramesPerBuffer*Channels() long.
func (c *PortAudioCapture) Read(buf []float32) (int, error) {
	if err := c.stream.Read(); err != nil {
		return 0, wrapTransientIOError(err)
	}
	n := copy(buf, c.ioBuf)
	return n / c.channels, nil
}

func (c *PortAudioCapture) Channels() int      { return c.channels }
func (c *PortAudioCapture) SampleRate() uint32 { return c.sampleRate }
func (c *PortAudioCapture) Name() string       { return c.deviceName }
