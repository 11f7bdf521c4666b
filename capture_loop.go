// capture_loop.go - the hot capture/route/render loop. One sample at a
// time: route every input channel's sample into a render block, then
// run every output's filter chain over that block. Silence detection
// resets every filter so state doesn't leak across a quiet stretch.

package main

import (
	"sync/atomic"
)

const frameQueueDepth = 64

// renderBuffer is one frame's worth of interleaved render samples,
// recycled between a free pool and a hand-off queue so the hot loop
// never allocates.
type renderBuffer struct {
	samples []float32
}

// Pipeline wires one compiled Config to a capture device and a render
// device and runs the hot loop on its own goroutine.
type Pipeline struct {
	config  *Config
	capture CaptureDevice

	// Exactly one of these is set, depending on the render model:
	// shared event-driven vs pro-driver push.
	sharedRender *SharedRenderDevice
	proRender    *ProAudioRenderDevice

	frames       chan *renderBuffer // shared-mode hand-off; unused on pro-driver path
	framePool    chan *renderBuffer // free renderBuffers recycled between emit and NextFrame
	nextFrameOut []float32          // scratch output of NextFrame, reused every call

	running atomic.Bool
	silent  bool
}

func NewPipeline(cfg *Config, capture CaptureDevice, sharedRender *SharedRenderDevice, proRender *ProAudioRenderDevice) *Pipeline {
	p := &Pipeline{
		config:       cfg,
		capture:      capture,
		sharedRender: sharedRender,
		proRender:    proRender,
		silent:       true,
	}
	if sharedRender != nil {
		p.frames = make(chan *renderBuffer, frameQueueDepth)
		p.framePool = make(chan *renderBuffer, frameQueueDepth)
		for i := 0; i < frameQueueDepth; i++ {
			p.framePool <- &renderBuffer{samples: make([]float32, cfg.NumChannelsOut)}
		}
		p.nextFrameOut = make([]float32, cfg.NumChannelsOut)
		sharedRender.SetSource(p)
	}
	return p
}

// NextFrame implements FrameSource for the shared render device. It
// never blocks: an empty queue yields nil, which the caller fills with
// silence. The returned slice is reused across calls — the caller (the
// oto Read callback) must finish copying it out before calling again.
func (p *Pipeline) NextFrame() []float32 {
	select {
	case buf := <-p.frames:
		copy(p.nextFrameOut, buf.samples)
		p.framePool <- buf
		return p.nextFrameOut
	default:
		return nil
	}
}

// Run executes the capture/process/render loop until Stop is called or
// the capture read or the render hand-off returns an error of any kind,
// which Run returns to its caller. One loop serves
// both the pro-driver and shared-event renderers since the
// CaptureDevice/RenderDevice abstractions already hide the difference
// from this loop — only how a finished frame leaves the loop differs.
func (p *Pipeline) Run() error {
	p.running.Store(true)
	defer p.running.Store(false)

	numOut := p.config.NumChannelsOut
	captureBuf := make([]float32, 4096)
	renderBlock := make([]float64, numOut)
	outFrame := make([]float32, numOut)

	for p.running.Load() {
		n, err := p.capture.Read(captureBuf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}

		channelsIn := p.capture.Channels()
		frameWasSilent := true

		for frame := 0; frame < n; frame++ {
			for i := range renderBlock {
				renderBlock[i] = 0
			}

			anyNonZero := false
			for ch := 0; ch < channelsIn && ch < p.config.NumChannelsIn; ch++ {
				sample := float64(captureBuf[frame*channelsIn+ch])
				if sample != 0 {
					anyNonZero = true
				}
				p.config.Inputs[ch].Route(sample, renderBlock)
			}
			if anyNonZero {
				frameWasSilent = false
			}

			for ch, out := range p.config.Outputs {
				outFrame[ch] = float32(out.Process(renderBlock[ch]))
			}

			if err := p.emit(outFrame); err != nil {
				return err
			}
		}

		if frameWasSilent {
			if !p.silent {
				p.silent = true
				p.resetFilters()
			}
		} else {
			p.silent = false
		}
	}
	return nil
}

// emit hands one finished frame to whichever render path is active,
// without allocating: pro-driver frames go straight into the render
// device's own hand-off queue; shared-render frames are copied into a
// renderBuffer drawn from framePool.
func (p *Pipeline) emit(frame []float32) error {
	if p.proRender != nil {
		return p.proRender.Enqueue(frame)
	}

	var buf *renderBuffer
	select {
	case buf = <-p.framePool:
	default:
		// Pool momentarily exhausted: reclaim the oldest queued frame
		// instead of allocating a new one.
		select {
		case buf = <-p.frames:
		default:
			buf = <-p.framePool
		}
	}
	copy(buf.samples, frame)

	select {
	case p.frames <- buf:
	default:
		// Queue full: drop the oldest frame rather than block the hot
		// path, returning its buffer to the pool.
		select {
		case old := <-p.frames:
			p.framePool <- old
		default:
		}
		p.frames <- buf
	}
	return nil
}

func (p *Pipeline) resetFilters() {
	for _, in := range p.config.Inputs {
		in.Reset()
	}
	for _, out := range p.config.Outputs {
		out.Reset()
	}
}

func (p *Pipeline) Stop() {
	p.running.Store(false)
}
