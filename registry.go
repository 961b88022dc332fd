package fetchcache

import (
	"sync"
	"time"

	"github.com/richardfuca/fetchcache/body"
)

// Registry is the tag engine: a set of named groups, each owning an ordered
// sequence of shared Entry references. One entry may be registered under
// several tags; expiring it under one tag set makes it invisible to lookups
// under every tag (the expired flag belongs to the entry), while removal
// from each tag's sequence happens only when a cleanup pass touches that
// tag.
//
// Lookups scan the caller's tags in caller order and each tag's entries in
// insertion order; the first live match wins. The scan is linear in the live
// entries reachable from the given tags - a deliberate bound at this scale,
// not an accident.
type Registry struct {
	transport  Transport
	decoders   body.Set
	log        Logger
	hooks      Hooks
	defaultTag string

	mu      sync.Mutex
	tags    map[string][]*Entry
	subs    map[uint64]*subscription
	nextSub uint64

	// background sweep
	ticker    *time.Ticker
	stopCh    chan struct{}
	closeWg   sync.WaitGroup
	closeOnce sync.Once
}

type subscription struct {
	tags []string
	fn   func()
}

func newRegistry(opts Options) (*Registry, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}

	r := &Registry{
		transport: opts.Transport,
		tags:      make(map[string][]*Entry),
		subs:      make(map[uint64]*subscription),
	}

	// defaults
	r.decoders = opts.Decoders
	if r.decoders == nil {
		r.decoders = body.Defaults()
	}
	r.log = coalesce[Logger](opts.Logger, NopLogger{})
	r.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	r.defaultTag = coalesce[string](opts.DefaultTag, DefaultTag)

	if opts.SweepInterval > 0 {
		r.ticker = time.NewTicker(opts.SweepInterval)
		r.stopCh = make(chan struct{})
		r.closeWg.Add(1)
		go r.sweepLoop()
	}
	return r, nil
}

// Close stops the background sweep loop, if one was started. Entries and
// their in-flight fetches are unaffected. Safe to call multiple times.
func (r *Registry) Close() {
	r.closeOnce.Do(func() {
		if r.stopCh != nil {
			close(r.stopCh)
			r.closeWg.Wait()
			r.ticker.Stop()
		}
	})
}

// Lookup resolves req against the given tag set and returns the three-way
// outcome: a cached failure, a cached value, or the pending computation. On
// miss it creates a new entry (starting its fetch immediately), registers it
// under every tag in the set, and reports it as pending.
//
// lifespan applies only when the lookup creates the entry; 0 means the entry
// never auto-expires.
func (r *Registry) Lookup(tagSet []string, req Request, lifespan time.Duration) Result {
	e, created := r.findOrCreate(tagSet, req, lifespan)
	if created {
		// Freshly created entries always report pending, even if the
		// fetch settles between creation and this return.
		return pendingResult(e)
	}
	return e.result()
}

// LookupURL is Lookup matching on URL alone, ignoring the rest of the
// request configuration. A miss creates a plain GET entry for url.
func (r *Registry) LookupURL(tagSet []string, url string, lifespan time.Duration) Result {
	tags := r.normTags(tagSet)

	r.mu.Lock()
	r.touchLocked(tags)
	e := r.findLocked(tags, func(e *Entry) bool { return e.MatchesURL(url) })
	if e != nil {
		r.mu.Unlock()
		return e.result()
	}
	req := NewRequest(url)
	e = r.createLocked(tags, req, req.Fingerprint(), lifespan)
	r.mu.Unlock()

	r.logCreated(e, tags)
	return pendingResult(e)
}

// LookupAsync is the non-suspending variant: it resolves or creates exactly
// like Lookup but uniformly returns the entry, whether freshly created or
// found. Await the outcome with Wait.
func (r *Registry) LookupAsync(tagSet []string, req Request, lifespan time.Duration) *Entry {
	e, _ := r.findOrCreate(tagSet, req, lifespan)
	return e
}

// IsCached reports whether a live entry matching url is reachable from the
// tag set. A still-pending entry counts as cached.
func (r *Registry) IsCached(tagSet []string, url string) bool {
	tags := r.normTags(tagSet)

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(tags, func(e *Entry) bool { return e.MatchesURL(url) }) != nil
}

// InvalidateURL force-expires every entry visible from the tag set whose URL
// equals url, across all listed tags and including multiple matches within
// one tag. If at least one entry was expired, intersecting subscribers are
// notified and a cleanup pass drops expired entries from the touched tags.
// Idempotent: a second call finds nothing and notifies nobody.
func (r *Registry) InvalidateURL(tagSet []string, url string) {
	r.expireMatching(tagSet, func(e *Entry) bool { return e.MatchesURL(url) })
}

// InvalidateRequest is InvalidateURL matching on full request identity.
func (r *Registry) InvalidateRequest(tagSet []string, req Request) {
	key := req.Fingerprint()
	r.expireMatching(tagSet, func(e *Entry) bool { return e.key == key })
}

// InvalidateAll unconditionally clears every tag in the set. Unlike the
// matching invalidations it notifies intersecting subscribers even when the
// tags were already empty. Entries also registered under tags outside the
// set stay reachable there.
func (r *Registry) InvalidateAll(tagSet []string) {
	tags := r.normTags(tagSet)

	r.mu.Lock()
	r.touchLocked(tags)
	removed := 0
	for _, t := range tags {
		removed += len(r.tags[t])
		r.tags[t] = nil
	}
	fns := r.intersectingLocked(tags)
	r.mu.Unlock()

	r.hooks.InvalidationBatch(tags, removed)
	r.log.Debug("tags wiped", Fields{"tags": tags, "removed": removed})
	r.notify(fns)
}

// OnInvalidated subscribes fn to invalidations affecting any tag in the
// set. fn receives no payload - only the signal that the subscriber's view
// may be stale and should be re-queried. It runs outside the registry lock
// and may safely re-enter the Registry. The returned func removes the
// subscription.
func (r *Registry) OnInvalidated(tagSet []string, fn func()) (cancel func()) {
	tags := r.normTags(tagSet)

	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = &subscription{tags: tags, fn: fn}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// findOrCreate is the shared resolution path for identity lookups.
// created reports whether a new entry was registered.
func (r *Registry) findOrCreate(tagSet []string, req Request, lifespan time.Duration) (*Entry, bool) {
	key := req.Fingerprint()
	tags := r.normTags(tagSet)

	r.mu.Lock()
	r.touchLocked(tags)
	e := r.findLocked(tags, func(e *Entry) bool { return e.key == key })
	if e != nil {
		r.mu.Unlock()
		return e, false
	}
	e = r.createLocked(tags, req, key, lifespan)
	r.mu.Unlock()

	r.logCreated(e, tags)
	return e, true
}

// findLocked scans tags in caller order, entries in insertion order,
// skipping expired entries. First match wins.
func (r *Registry) findLocked(tags []string, match func(*Entry) bool) *Entry {
	for _, t := range tags {
		for _, e := range r.tags[t] {
			if e.Expired() {
				continue
			}
			if match(e) {
				return e
			}
		}
	}
	return nil
}

// createLocked starts the entry's fetch and registers the one entry under
// every tag in the set (shared reference, not copies).
func (r *Registry) createLocked(tags []string, req Request, key string, lifespan time.Duration) *Entry {
	e := newEntry(r, req, key, lifespan)
	for _, t := range tags {
		r.tags[t] = append(r.tags[t], e)
	}
	return e
}

// expireMatching implements the matching invalidations: expire every visible
// match until none remain, then clean up and notify only if something was
// actually expired.
func (r *Registry) expireMatching(tagSet []string, match func(*Entry) bool) {
	tags := r.normTags(tagSet)

	r.mu.Lock()
	r.touchLocked(tags)
	expired := 0
	for {
		e := r.findLocked(tags, match)
		if e == nil {
			break
		}
		e.Expire()
		expired++
	}
	var fns []func()
	if expired > 0 {
		r.cleanupLocked(tags)
		fns = r.intersectingLocked(tags)
	}
	r.mu.Unlock()

	if expired == 0 {
		return
	}
	r.hooks.InvalidationBatch(tags, expired)
	r.log.Debug("entries invalidated", Fields{"tags": tags, "expired": expired})
	r.notify(fns)
}

// cleanupLocked drops expired entries from each touched tag's sequence.
// An entry expired under one tag set is only removed from tags the pass
// touches; it stays (invisible) elsewhere until a pass reaches those tags.
func (r *Registry) cleanupLocked(tags []string) int {
	removed := 0
	for _, t := range tags {
		entries := r.tags[t]
		live := entries[:0]
		for _, e := range entries {
			if e.Expired() {
				removed++
				continue
			}
			live = append(live, e)
		}
		for i := len(live); i < len(entries); i++ {
			entries[i] = nil // release for GC
		}
		r.tags[t] = live
	}
	return removed
}

// touchLocked materializes tags on first reference; a tag persists even
// when emptied.
func (r *Registry) touchLocked(tags []string) {
	for _, t := range tags {
		if _, ok := r.tags[t]; !ok {
			r.tags[t] = nil
		}
	}
}

func (r *Registry) intersectingLocked(affected []string) []func() {
	var fns []func()
	for _, s := range r.subs {
		if intersects(s.tags, affected) {
			fns = append(fns, s.fn)
		}
	}
	return fns
}

// notify runs subscriber callbacks with no locks held.
func (r *Registry) notify(fns []func()) {
	if len(fns) == 0 {
		return
	}
	for _, fn := range fns {
		fn()
	}
	r.hooks.SubscribersNotified(len(fns))
}

func (r *Registry) normTags(tagSet []string) []string {
	if len(tagSet) == 0 {
		return []string{r.defaultTag}
	}
	return tagSet
}

func (r *Registry) logCreated(e *Entry, tags []string) {
	r.hooks.EntryCreated(e.key, e.req.URL)
	r.log.Debug("entry created", Fields{"key": e.key, "url": e.req.URL, "tags": tags})
}

func (r *Registry) sweepLoop() {
	defer r.closeWg.Done()
	for {
		select {
		case <-r.ticker.C:
			r.sweep()
		case <-r.stopCh:
			return
		}
	}
}

// sweep runs a cleanup pass over every tag. It removes only entries that
// already expired, so no subscriber notification is owed.
func (r *Registry) sweep() {
	r.mu.Lock()
	all := make([]string, 0, len(r.tags))
	for t := range r.tags {
		all = append(all, t)
	}
	removed := r.cleanupLocked(all)
	r.mu.Unlock()

	if removed > 0 {
		r.log.Debug("sweep removed expired entries", Fields{"removed": removed})
	}
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
