//go:build !headless

// device_shared.go - shared, event-driven render device. The OS mixes
// this with other applications' audio; the device drives us by
// calling Read whenever it wants more samples, so the engine has to
// keep a ring of already-rendered frames ready rather than blocking a
// writer thread.

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// FrameSource supplies one fully-rendered, channel-interleaved frame
// at a time to a push-callback render device.
type FrameSource interface {
	NextFrame() []float32
}

// SharedRenderDevice is a RenderDevice backed by oto. Read is invoked
// on oto's own goroutine; frames come from an atomically-swapped
// FrameSource so the hot path never takes a lock.
type SharedRenderDevice struct {
	ctx        *oto.Context
	player     *oto.Player
	source     atomic.Pointer[FrameSource]
	channels   int
	sampleRate uint32
	started    bool
	mutex      sync.Mutex
	errs       AsyncErrorBox
}

func NewSharedRenderDevice(channels int, sampleRate uint32) (*SharedRenderDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, NewEngineError(ErrDeviceUnavailable, err)
	}
	<-ready

	d := &SharedRenderDevice{ctx: ctx, channels: channels, sampleRate: sampleRate}
	d.player = ctx.NewPlayer(d)
	return d, nil
}

// SetSource swaps in a new frame source, used when the pipeline is
// rebuilt after a config reload.
func (d *SharedRenderDevice) SetSource(s FrameSource) {
	d.source.Store(&s)
}

// Read implements io.Reader for oto.Player. It is called on oto's
// internal goroutine whenever the device buffer needs refilling.
func (d *SharedRenderDevice) Read(p []byte) (int, error) {
	sp := d.source.Load()
	if sp == nil {
		clear(p)
		return len(p), nil
	}
	source := *sp

	numSamples := len(p) / 4
	samples := make([]float32, 0, numSamples)
	for len(samples) < numSamples {
		frame := source.NextFrame()
		if frame == nil {
			break
		}
		samples = append(samples, frame...)
	}
	for len(samples) < numSamples {
		samples = append(samples, 0)
	}

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (d *SharedRenderDevice) Start() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if !d.started {
		d.player.Play()
		d.started = true
	}
	return nil
}

func (d *SharedRenderDevice) Stop() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.started {
		d.player.Pause()
		d.started = false
	}
	return nil
}

func (d *SharedRenderDevice) Close() error {
	d.Stop()
	return d.player.Close()
}

func (d *SharedRenderDevice) Channels() int      { return d.channels }
func (d *SharedRenderDevice) SampleRate() uint32 { return d.sampleRate }

// Name returns "default": oto shares the OS mixer's default output and
// never takes a device name of its own.
func (d *SharedRenderDevice) Name() string { return "default" }
