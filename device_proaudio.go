//go:build !headless

// device_proaudio.go - pro-audio render device: a blocking write call
// on a dedicated consumer goroutine fed by the engine's non-blocking
// Enqueue, matching hardware interfaces that expect the application to
// keep the ring fed (ALSA snd_pcm_writei and equivalents).

package main

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate, unsigned int channels) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_FLOAT);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, channels);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

// proAudioQueueDepth bounds the hand-off queue between the processing
// thread's Enqueue calls and the consumer goroutine's blocking writes.
const proAudioQueueDepth = 8

// ProAudioRenderDevice pushes interleaved frames to an ALSA PCM device.
// The processing thread only ever calls Enqueue, which never blocks; a
// dedicated consumer goroutine drains the queue into the blocking
// snd_pcm_writei call, recovering inline from a single underrun
// (EPIPE) and raising anything else via errs for the supervisor to
// pick up.
type ProAudioRenderDevice struct {
	handle     *C.snd_pcm_t
	deviceName string
	started    bool
	playing    bool
	channels   int
	sampleRate uint32
	mutex      sync.Mutex

	queue chan *renderBuffer
	pool  chan *renderBuffer
	done  chan struct{}
	errs  AsyncErrorBox
}

func NewProAudioRenderDevice(deviceName string, channels int, sampleRate uint32) (*ProAudioRenderDevice, error) {
	if deviceName == "" {
		deviceName = "default"
	}
	cname := C.CString(deviceName)
	defer C.free(unsafe.Pointer(cname))

	var cerr C.int
	handle := C.openPCM(cname, &cerr)
	if cerr < 0 {
		return nil, NewEngineError(ErrDeviceUnavailable, fmt.Errorf("open PCM %q: %s", deviceName, C.GoString(C.snd_strerror(cerr))))
	}

	if cerr = C.setupPCM(handle, C.uint(sampleRate), C.uint(channels)); cerr < 0 {
		C.closePCM(handle)
		return nil, NewEngineError(ErrDeviceUnavailable, fmt.Errorf("setup PCM: %s", C.GoString(C.snd_strerror(cerr))))
	}

	d := &ProAudioRenderDevice{
		handle:     handle,
		deviceName: deviceName,
		channels:   channels,
		sampleRate: sampleRate,
		queue:      make(chan *renderBuffer, proAudioQueueDepth),
		pool:       make(chan *renderBuffer, proAudioQueueDepth),
		done:       make(chan struct{}),
	}
	for i := 0; i < proAudioQueueDepth; i++ {
		d.pool <- &renderBuffer{samples: make([]float32, channels)}
	}
	go d.consume()
	return d, nil
}

// Enqueue hands one frame's worth of interleaved samples to the
// consumer goroutine without blocking or allocating. A full queue
// drops the oldest pending frame rather than stalling the processing
// thread.
func (d *ProAudioRenderDevice) Enqueue(samples []float32) error {
	var buf *renderBuffer
	select {
	case buf = <-d.pool:
	default:
		select {
		case buf = <-d.queue:
		default:
			buf = <-d.pool
		}
	}
	copy(buf.samples, samples)

	select {
	case d.queue <- buf:
	default:
		select {
		case old := <-d.queue:
			d.pool <- old
		default:
		}
		d.queue <- buf
	}
	return nil
}

// consume is the only goroutine that ever calls writeFrames. It owns
// the blocking snd_pcm_writei call so the processing thread never
// touches it.
func (d *ProAudioRenderDevice) consume() {
	for {
		select {
		case <-d.done:
			return
		case buf := <-d.queue:
			numFrames := len(buf.samples) / d.channels
			if err := d.writeFrames(buf.samples, numFrames); err != nil {
				d.errs.Raise(err)
			}
			d.pool <- buf
		}
	}
}

// Errors returns the pending async write error, if any, and clears it.
func (d *ProAudioRenderDevice) Errors() error {
	return d.errs.Take()
}

// writeFrames blocks until numFrames interleaved frames have been
// written (or an unrecoverable error occurs). Recovers from a single
// underrun (EPIPE) by re-preparing the stream and retrying once.
func (d *ProAudioRenderDevice) writeFrames(samples []float32, numFrames int) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !d.playing {
		return nil
	}

	frames := C.writePCM(d.handle, (*C.float)(unsafe.Pointer(&samples[0])), C.int(numFrames))
	if frames < 0 {
		if frames == -C.EPIPE {
			C.snd_pcm_prepare(d.handle)
			frames = C.writePCM(d.handle, (*C.float)(unsafe.Pointer(&samples[0])), C.int(numFrames))
		}
		if frames < 0 {
			return NewEngineError(ErrDeviceAsync, fmt.Errorf("write failed: %s", C.GoString(C.snd_strerror(C.int(frames)))))
		}
	}
	return nil
}

func (d *ProAudioRenderDevice) Start() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.started = true
	d.playing = true
	return nil
}

func (d *ProAudioRenderDevice) Stop() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.playing = false
	d.started = false
	return nil
}

func (d *ProAudioRenderDevice) Close() error {
	d.mutex.Lock()
	handle := d.handle
	if handle != nil {
		d.playing = false
		d.started = false
		d.handle = nil
	}
	d.mutex.Unlock()

	if handle != nil {
		close(d.done)
		C.closePCM(handle)
	}
	return nil
}

func (d *ProAudioRenderDevice) Channels() int      { return d.channels }
func (d *ProAudioRenderDevice) SampleRate() uint32 { return d.sampleRate }
func (d *ProAudioRenderDevice) Name() string       { return d.deviceName }
