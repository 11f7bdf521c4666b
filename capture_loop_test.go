// capture_loop_test.go - the shared-renderer frame hand-off queue:
// NextFrame never blocks, and a full queue drops the oldest frame
// rather than stalling the hot path.

package main

import "testing"

// newTestPipeline builds the frames/framePool/nextFrameOut triplet the
// same way NewPipeline does for the shared-render path, without
// needing a real SharedRenderDevice.
func newTestPipeline(depth, numOut int) *Pipeline {
	p := &Pipeline{
		frames:       make(chan *renderBuffer, depth),
		framePool:    make(chan *renderBuffer, depth),
		nextFrameOut: make([]float32, numOut),
	}
	for i := 0; i < depth; i++ {
		p.framePool <- &renderBuffer{samples: make([]float32, numOut)}
	}
	return p
}

func TestPipelineNextFrameReturnsNilWhenEmpty(t *testing.T) {
	p := newTestPipeline(2, 2)
	if f := p.NextFrame(); f != nil {
		t.Fatalf("NextFrame on an empty queue should return nil, got %v", f)
	}
}

func TestPipelineNextFrameDrainsInOrder(t *testing.T) {
	p := newTestPipeline(2, 2)
	if err := p.emit([]float32{1, 2}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := p.emit([]float32{3, 4}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	got := p.NextFrame()
	requireFloatNear(t, "first frame[0]", float64(got[0]), 1, 0)
	requireFloatNear(t, "first frame[1]", float64(got[1]), 2, 0)

	got = p.NextFrame()
	requireFloatNear(t, "second frame[0]", float64(got[0]), 3, 0)
	requireFloatNear(t, "second frame[1]", float64(got[1]), 4, 0)

	if f := p.NextFrame(); f != nil {
		t.Fatalf("queue should be empty after draining both frames, got %v", f)
	}
}

func TestPipelineEmitDropsOldestWhenQueueIsFull(t *testing.T) {
	p := newTestPipeline(1, 1)
	if err := p.emit([]float32{1}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := p.emit([]float32{2}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := p.NextFrame()
	if got == nil || got[0] != 2 {
		t.Fatalf("emit into a full queue should keep the newest frame, got %v", got)
	}
}

func TestPipelineEmitReusesPoolWithoutAllocating(t *testing.T) {
	p := newTestPipeline(4, 1)
	for i := 0; i < 100; i++ {
		if err := p.emit([]float32{float32(i)}); err != nil {
			t.Fatalf("emit: %v", err)
		}
		p.NextFrame()
	}
	select {
	case buf := <-p.framePool:
		if cap(buf.samples) != 1 {
			t.Fatalf("framePool buffer capacity changed, want 1 got %d", cap(buf.samples))
		}
	default:
		t.Fatal("framePool should still hold its fixed set of buffers after draining")
	}
}
