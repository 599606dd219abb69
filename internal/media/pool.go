package media

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/reelcraft/api/internal/model"
)

// Factory builds the element backing an asset.
type Factory func(asset model.Asset) (Element, error)

// Pool owns the off-screen elements, keyed by asset id, with explicit
// reference counting: every Acquire must be paired with a Release, and an
// entry's element is closed when its count reaches zero. This replaces an
// implicit grow-only cache so long editing sessions cannot leak native
// media resources.
type Pool struct {
	factory Factory

	mu      sync.Mutex
	entries map[string]*poolEntry
}

type poolEntry struct {
	element Element
	refs    int
}

// NewPool returns an empty pool over the factory.
func NewPool(factory Factory) *Pool {
	return &Pool{factory: factory, entries: make(map[string]*poolEntry)}
}

// Acquire returns the element for the asset, creating it lazily, and takes
// a reference.
func (p *Pool) Acquire(asset model.Asset) (Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.entries[asset.ID]; ok {
		e.refs++
		return e.element, nil
	}
	el, err := p.factory(asset)
	if err != nil {
		return nil, fmt.Errorf("create element for asset %s: %w", asset.ID, err)
	}
	p.entries[asset.ID] = &poolEntry{element: el, refs: 1}
	return el, nil
}

// Release drops a reference. The element is closed and removed when the
// last reference goes.
func (p *Pool) Release(assetID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[assetID]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(p.entries, assetID)
	if err := e.element.Close(); err != nil {
		log.Warn().Err(err).Str("assetId", assetID).Msg("closing media element")
	}
}

// Get returns the pooled element without taking a reference. Used on the
// per-frame paths, which must never create or destroy entries mid-frame.
func (p *Pool) Get(assetID string) (Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[assetID]
	if !ok {
		return nil, false
	}
	return e.element, true
}

// Each visits every pooled element.
func (p *Pool) Each(f func(assetID string, el Element)) {
	p.mu.Lock()
	ids := make([]string, 0, len(p.entries))
	els := make([]Element, 0, len(p.entries))
	for id, e := range p.entries {
		ids = append(ids, id)
		els = append(els, e.element)
	}
	p.mu.Unlock()

	for i := range ids {
		f(ids[i], els[i])
	}
}

// Len returns the number of pooled elements.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Close tears the pool down, closing every element regardless of its
// reference count. Used on asset-list replacement and editor shutdown.
func (p *Pool) Close() {
	p.mu.Lock()
	entries := p.entries
	p.entries = make(map[string]*poolEntry)
	p.mu.Unlock()

	for id, e := range entries {
		if err := e.element.Close(); err != nil {
			log.Warn().Err(err).Str("assetId", id).Msg("closing media element")
		}
	}
}
