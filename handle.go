package fetchcache

import (
	"slices"
	"time"
)

// Handle is a view of a Registry bound to a fixed tag set. Handles with
// equal tag sets see the same slice of the shared store; creating one is
// cheap and allocates nothing in the Registry.
type Handle struct {
	reg  *Registry
	tags []string
}

// Scope returns a Handle bound to the given tags. With no tags the handle
// uses the registry's default tag.
func (r *Registry) Scope(tags ...string) *Handle {
	return &Handle{reg: r, tags: slices.Clone(tags)}
}

// Tags returns the handle's tag set.
func (h *Handle) Tags() []string { return slices.Clone(h.tags) }

func (h *Handle) Lookup(req Request, lifespan time.Duration) Result {
	return h.reg.Lookup(h.tags, req, lifespan)
}

func (h *Handle) LookupURL(url string, lifespan time.Duration) Result {
	return h.reg.LookupURL(h.tags, url, lifespan)
}

func (h *Handle) LookupAsync(req Request, lifespan time.Duration) *Entry {
	return h.reg.LookupAsync(h.tags, req, lifespan)
}

func (h *Handle) IsCached(url string) bool { return h.reg.IsCached(h.tags, url) }

func (h *Handle) InvalidateURL(url string) { h.reg.InvalidateURL(h.tags, url) }

func (h *Handle) InvalidateRequest(req Request) { h.reg.InvalidateRequest(h.tags, req) }

func (h *Handle) InvalidateAll() { h.reg.InvalidateAll(h.tags) }

func (h *Handle) OnInvalidated(fn func()) (cancel func()) {
	return h.reg.OnInvalidated(h.tags, fn)
}
