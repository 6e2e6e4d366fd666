package render

import (
	"context"
	"errors"
	"sync"
)

// ErrRendererGone is returned once the render side of a pool has stopped
var ErrRendererGone = errors.New("render: renderer gone")

// Renderer presents frames; Render runs on the render goroutine
type Renderer interface {
	Render(f *Frame) error
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(f *Frame) error

func (fn RendererFunc) Render(f *Frame) error {
	return fn(f)
}

// Pool circulates a fixed set of frames between the simulation and a renderer
// The simulation acquires a free frame, fills it and submits it; the renderer
// draws it and hands it back. With every frame in flight Acquire blocks
type Pool struct {
	free  chan *Frame
	ready chan *Frame
	done  chan struct{}
	once  sync.Once
	size  int
}

// NewPool creates a pool of n frames, at least one
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		free:  make(chan *Frame, n),
		ready: make(chan *Frame, n),
		done:  make(chan struct{}),
		size:  n,
	}
	for i := 0; i < n; i++ {
		p.free <- NewFrame()
	}
	return p
}

// Size returns the number of frames in circulation
func (p *Pool) Size() int {
	return p.size
}

// Acquire takes a free frame, blocking until the renderer releases one
func (p *Pool) Acquire(ctx context.Context) (*Frame, error) {
	select {
	case <-p.done:
		return nil, ErrRendererGone
	default:
	}

	select {
	case f := <-p.free:
		f.Reset()
		return f, nil
	case <-p.done:
		return nil, ErrRendererGone
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit hands a filled frame to the renderer
func (p *Pool) Submit(ctx context.Context, f *Frame) error {
	select {
	case <-p.done:
		return ErrRendererGone
	default:
	}

	select {
	case p.ready <- f:
		return nil
	case <-p.done:
		return ErrRendererGone
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a frame to the free list
func (p *Pool) Release(f *Frame) {
	select {
	case p.free <- f:
	default:
		// Foreign frame, pool already full
	}
}

// Close marks the renderer gone and unblocks every waiter; safe to call repeatedly
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.done)
	})
}

// Done is closed once the renderer has stopped
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

// Serve runs the render side until ctx is cancelled or the renderer fails
// The pool is closed on return so the simulation stops waiting for frames
func (p *Pool) Serve(ctx context.Context, r Renderer) error {
	defer p.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return ErrRendererGone
		case f := <-p.ready:
			err := r.Render(f)
			p.Release(f)
			if err != nil {
				return err
			}
		}
	}
}
