// Package sloghooks logs cache events through log/slog.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/richardfuca/fetchcache"
)

type Options struct {
	// Sampling to avoid floods on hot events; 0/1 = log all.
	ResolvedEvery uint64
	CreatedEvery  uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	createdCtr  atomic.Uint64
	resolvedCtr atomic.Uint64
}

var _ fetchcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryCreated(key, url string) {
	if h.l == nil || !sample(h.opts.CreatedEvery, &h.createdCtr) {
		return
	}
	h.l.Debug("fetchcache.entry_created",
		"key", key,
		"url", url)
}

func (h *Hooks) EntryResolved(key string, failed bool) {
	if h.l == nil || !sample(h.opts.ResolvedEvery, &h.resolvedCtr) {
		return
	}
	if failed {
		h.l.Warn("fetchcache.entry_failed", "key", key)
		return
	}
	h.l.Debug("fetchcache.entry_resolved", "key", key)
}

func (h *Hooks) EntryExpired(key string, forced bool) {
	if h.l == nil {
		return
	}
	h.l.Debug("fetchcache.entry_expired",
		"key", key,
		"forced", forced)
}

func (h *Hooks) InvalidationBatch(tags []string, removed int) {
	if h.l == nil {
		return
	}
	h.l.Info("fetchcache.invalidation",
		"tags", tags,
		"removed", removed)
}

func (h *Hooks) SubscribersNotified(count int) {
	if h.l == nil {
		return
	}
	h.l.Debug("fetchcache.subscribers_notified",
		"count", count)
}
