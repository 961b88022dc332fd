// Package asynchook decouples hook sinks from the cache's hot paths.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	reg, _ := fetchcache.New(fetchcache.Options{
//	    Transport: transport.NewClient(transport.Options{}),
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
//
// Events are dropped when the queue is full; hooks are diagnostics, not an
// event log.
package asynchook

import (
	"sync"

	"github.com/richardfuca/fetchcache"
)

type Hooks struct {
	inner fetchcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ fetchcache.Hooks = (*Hooks)(nil)

func New(inner fetchcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntryCreated(key, url string) { h.try(func() { h.inner.EntryCreated(key, url) }) }
func (h *Hooks) EntryResolved(key string, failed bool) {
	h.try(func() { h.inner.EntryResolved(key, failed) })
}
func (h *Hooks) EntryExpired(key string, forced bool) {
	h.try(func() { h.inner.EntryExpired(key, forced) })
}
func (h *Hooks) InvalidationBatch(tags []string, removed int) {
	h.try(func() { h.inner.InvalidationBatch(tags, removed) })
}
func (h *Hooks) SubscribersNotified(count int) { h.try(func() { h.inner.SubscribersNotified(count) }) }
