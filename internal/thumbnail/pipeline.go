// Package thumbnail applies asynchronously resolved images to grid cells.
//
// Every Resolve call starts a new binding generation for its target. A
// completed fetch is applied only if the target is still on the generation
// that issued it, so a recycled cell never shows the image of the token it
// displayed before.
package thumbnail

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"

	"github.com/ytget/otp-grid/internal/imaging"
)

// Target is the image view of a single cell
type Target interface {
	ClearThumbnail()
	ShowThumbnail(img image.Image)
}

// Request is one in-flight thumbnail resolution
type Request struct {
	Locator string
	Size    imaging.Size

	target     Target
	generation uint64
	pipeline   *Pipeline
}

// Cancel invalidates the request if it is still the target's current one
func (r *Request) Cancel() {
	r.pipeline.invalidate(r.target, r.generation)
}

// Current reports whether the request still owns its target
func (r *Request) Current() bool {
	return r.pipeline.isCurrent(r.target, r.generation)
}

type binding struct {
	generation uint64
	cancel     context.CancelFunc
}

// Pipeline resolves thumbnails for cells
type Pipeline struct {
	fetcher  imaging.Fetcher
	dispatch func(func())

	mu       sync.Mutex
	bindings map[Target]*binding
}

// NewPipeline creates a pipeline. dispatch must run its argument on the UI
// loop; completions are applied only from inside dispatch.
func NewPipeline(fetcher imaging.Fetcher, dispatch func(func())) *Pipeline {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Pipeline{
		fetcher:  fetcher,
		dispatch: dispatch,
		bindings: make(map[Target]*binding),
	}
}

// Resolve clears the target, supersedes any request bound to it and starts
// a new fetch. An empty locator leaves the placeholder in place.
func (p *Pipeline) Resolve(target Target, locator string, size imaging.Size) *Request {
	target.ClearThumbnail()

	ctx, cancel := context.WithCancel(context.Background())
	gen := p.rebind(target, cancel)

	req := &Request{
		Locator:    locator,
		Size:       size,
		target:     target,
		generation: gen,
		pipeline:   p,
	}

	if locator == "" || p.fetcher == nil {
		return req
	}

	go p.run(ctx, req)
	return req
}

// Invalidate clears the target and discards whatever request it had
func (p *Pipeline) Invalidate(target Target) {
	target.ClearThumbnail()
	p.rebind(target, nil)
}

// Release forgets the target entirely, e.g. when its cell is destroyed
func (p *Pipeline) Release(target Target) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if b, ok := p.bindings[target]; ok {
		if b.cancel != nil {
			b.cancel()
		}
		delete(p.bindings, target)
	}
}

func (p *Pipeline) run(ctx context.Context, req *Request) {
	img, err := p.fetcher.Fetch(ctx, req.Locator, req.Size)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("Thumbnail fetch failed for %s: %v", req.Locator, err)
		}
		return
	}
	if img == nil {
		return
	}

	p.dispatch(func() {
		if !req.Current() {
			return
		}
		req.target.ShowThumbnail(img)
	})
}

// rebind starts a new generation for target and returns it
func (p *Pipeline) rebind(target Target, cancel context.CancelFunc) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.bindings[target]
	if !ok {
		b = &binding{}
		p.bindings[target] = b
	}
	if b.cancel != nil {
		b.cancel()
	}
	b.generation++
	b.cancel = cancel
	return b.generation
}

func (p *Pipeline) invalidate(target Target, generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.bindings[target]
	if !ok || b.generation != generation {
		return
	}
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.generation++
}

func (p *Pipeline) isCurrent(target Target, generation uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.bindings[target]
	return ok && b.generation == generation
}
