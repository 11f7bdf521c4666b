// device.go - capture/render device abstractions. Two render variants
// exist: a shared event-driven push-callback device (device_shared.go,
// oto-backed) and a pro-audio blocking-write device
// (device_proaudio.go, ALSA-backed via cgo). Capture is always
// pull-based (device_capture.go, portaudio-backed).

package main

import "sync/atomic"

// CaptureDevice pulls interleaved float32 frames from an input device.
type CaptureDevice interface {
	Start() error
	Stop() error
	Close() error
	// Read blocks until at least one frame is available and fills buf
	// with interleaved samples, returning the frame count read.
	Read(buf []float32) (int, error)
	Channels() int
	SampleRate() uint32
	// Name returns the resolved device name, used to persist an
	// auto-selected device back into the config file.
	Name() string
}

// RenderDevice pushes interleaved float32 frames to an output device.
// Shared devices are driven by the device calling back into Read;
// pro-audio devices are driven by the engine calling Enqueue.
type RenderDevice interface {
	Start() error
	Stop() error
	Close() error
	Channels() int
	SampleRate() uint32
	// Name returns the resolved device name, used to persist an
	// auto-selected device back into the config file.
	Name() string
}

// AsyncErrorBox lets a device's background goroutine (an oto Read
// callback, an ALSA write-error path) hand an error to the supervisor
// without blocking or requiring a lock.
type AsyncErrorBox struct {
	err atomic.Pointer[error]
}

func (b *AsyncErrorBox) Raise(err error) {
	b.err.Store(&err)
}

// Take returns the pending error, if any, and clears it.
func (b *AsyncErrorBox) Take() error {
	p := b.err.Swap(nil)
	if p == nil {
		return nil
	}
	return *p
}
