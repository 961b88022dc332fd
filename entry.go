package fetchcache

import (
	"context"
	"sync/atomic"
	"time"
)

// Entry is one cached fetch: its immutable request identity, the in-flight
// computation, the eventual outcome, and the expiry flag.
//
// Construction starts the underlying fetch immediately; there is no lazy
// start and no cancellation. The outcome transitions unresolved ->
// succeeded|failed exactly once, published by closing the done channel, so
// any reader that observes Done() closed also observes the final value/err.
type Entry struct {
	reg *Registry
	req Request
	key string

	done  chan struct{}
	value any
	err   error

	// expired is monotonic false->true, set by the lifespan timer or by
	// explicit invalidation. Timer and invalidation only touch this flag;
	// removal from tag sequences happens in a later cleanup pass.
	expired atomic.Bool
	timer   *time.Timer
}

func newEntry(reg *Registry, req Request, key string, lifespan time.Duration) *Entry {
	e := &Entry{
		reg:  reg,
		req:  req,
		key:  key,
		done: make(chan struct{}),
	}
	if lifespan > 0 {
		e.timer = time.AfterFunc(lifespan, func() { e.expire(false) })
	}
	go e.fetch()
	return e
}

// fetch runs the transport call and settles the outcome. Transport and
// decode failures are captured, never re-thrown outside Wait/Peek.
func (e *Entry) fetch() {
	// The fetch is shared by every caller that later matches this entry,
	// so no single caller's context may bound it.
	resp, err := e.reg.transport.Do(context.Background(), e.req)
	if err != nil {
		e.resolve(nil, &TransportError{Method: e.req.method(), URL: e.req.URL, Err: err})
		return
	}
	v, err := e.reg.decoders.Decode(resp.ContentType, resp.Body)
	if err != nil {
		e.resolve(nil, &DecodeError{URL: e.req.URL, ContentType: resp.ContentType, Err: err})
		return
	}
	e.resolve(v, nil)
}

func (e *Entry) resolve(v any, err error) {
	e.value = v
	e.err = err
	close(e.done)
	e.reg.hooks.EntryResolved(e.key, err != nil)
	if err != nil {
		e.reg.log.Debug("entry resolved with failure", Fields{"key": e.key, "url": e.req.URL, "err": err})
	}
}

// Request returns the entry's identity. The returned value shares the
// identity's Header and Body; callers must not mutate them.
func (e *Entry) Request() Request { return e.req }

// Fingerprint returns the canonical identity key computed at creation.
func (e *Entry) Fingerprint() string { return e.key }

// MatchesRequest reports whether req has the same identity as this entry:
// method, URL, headers, and body all equal, via fingerprint comparison.
func (e *Entry) MatchesRequest(req Request) bool { return e.key == req.Fingerprint() }

// MatchesURL reports whether the entry's URL equals url, ignoring the rest
// of the request configuration.
func (e *Entry) MatchesURL(url string) bool { return e.req.URL == url }

// Expired reports whether the entry has been expired by its lifespan timer
// or by invalidation. Expired entries are invisible to lookups but may
// linger in tag sequences until a cleanup pass drops them.
func (e *Entry) Expired() bool { return e.expired.Load() }

// Expire force-expires the entry. Idempotent; a no-op when already expired.
// The in-flight fetch, if any, runs to completion - its result simply
// becomes unreachable through lookups.
func (e *Entry) Expire() { e.expire(true) }

func (e *Entry) expire(forced bool) {
	if !e.expired.CompareAndSwap(false, true) {
		return
	}
	if forced && e.timer != nil {
		e.timer.Stop()
	}
	e.reg.hooks.EntryExpired(e.key, forced)
}

// Done is closed once the outcome settles. It is the pending handle a
// suspend-on-pending caller waits on before re-issuing its lookup.
func (e *Entry) Done() <-chan struct{} { return e.done }

// Peek is the non-blocking three-way read of the current outcome. resolved
// is false while the fetch is in flight; afterwards value or err carries the
// settled outcome.
func (e *Entry) Peek() (value any, resolved bool, err error) {
	select {
	case <-e.done:
		return e.value, true, e.err
	default:
		return nil, false, nil
	}
}

// Wait blocks until the outcome settles or ctx is done. ctx bounds only this
// wait, never the fetch itself. Calling Wait after resolution returns the
// known outcome immediately without re-running anything.
func (e *Entry) Wait(ctx context.Context) (any, error) {
	select {
	case <-e.done:
		return e.value, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// result maps the current outcome onto the three-way lookup contract.
func (e *Entry) result() Result {
	v, resolved, err := e.Peek()
	switch {
	case !resolved:
		return pendingResult(e)
	case err != nil:
		return failedResult(err)
	default:
		return readyResult(v)
	}
}
