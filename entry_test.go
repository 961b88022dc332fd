package fetchcache

import (
	"context"
	"testing"
	"time"
)

func (h *countHooks) expiredCount() (total, forced int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expired, h.forced
}

func TestPeekBeforeAndAfterSettle(t *testing.T) {
	tr := newFakeTransport()
	tr.gate = make(chan struct{})
	r := newTestRegistry(t, tr, nil)

	e := r.LookupAsync([]string{"a"}, NewRequest("https://api.test/a"), 0)

	if v, resolved, err := e.Peek(); resolved || v != nil || err != nil {
		t.Fatalf("peek before settle: v=%v resolved=%v err=%v", v, resolved, err)
	}

	close(tr.gate)
	waitSettled(t, e)

	v, resolved, err := e.Peek()
	if !resolved || err != nil {
		t.Fatalf("peek after settle: resolved=%v err=%v", resolved, err)
	}
	if m, ok := v.(map[string]any); !ok || m["url"] != "https://api.test/a" {
		t.Fatalf("unexpected value %#v", v)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	tr := newFakeTransport()
	tr.gate = make(chan struct{})
	r := newTestRegistry(t, tr, nil)

	e := r.LookupAsync([]string{"a"}, NewRequest("https://api.test/a"), 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := e.Wait(ctx); err != context.DeadlineExceeded {
		t.Fatalf("want deadline error while gated, got %v", err)
	}

	// The wait is bounded, not the fetch: it settles normally afterwards.
	close(tr.gate)
	if v, err := e.Wait(context.Background()); err != nil || v == nil {
		t.Fatalf("wait after gate: v=%v err=%v", v, err)
	}
}

func TestForceExpireIdempotent(t *testing.T) {
	tr := newFakeTransport()
	hooks := &countHooks{}
	r := newTestRegistry(t, tr, func(o *Options) { o.Hooks = hooks })

	e := r.LookupAsync([]string{"a"}, NewRequest("https://api.test/a"), 0)
	waitSettled(t, e)

	e.Expire()
	e.Expire()

	if !e.Expired() {
		t.Fatalf("entry should be expired")
	}
	if total, forced := hooks.expiredCount(); total != 1 || forced != 1 {
		t.Fatalf("expiry hook fired total=%d forced=%d, want 1/1", total, forced)
	}

	// The settled outcome stays readable through the handle already held.
	if v, err := e.Wait(context.Background()); err != nil || v == nil {
		t.Fatalf("expired entry lost its outcome: v=%v err=%v", v, err)
	}
}

func TestTimerExpiryIsNotForced(t *testing.T) {
	tr := newFakeTransport()
	hooks := &countHooks{}
	r := newTestRegistry(t, tr, func(o *Options) { o.Hooks = hooks })

	e := r.LookupAsync([]string{"a"}, NewRequest("https://api.test/a"), 30*time.Millisecond)
	waitSettled(t, e)

	deadline := time.Now().Add(2 * time.Second)
	for !e.Expired() {
		if time.Now().After(deadline) {
			t.Fatal("lifespan timer never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if total, forced := hooks.expiredCount(); total != 1 || forced != 0 {
		t.Fatalf("expiry hook fired total=%d forced=%d, want 1/0", total, forced)
	}
}

func TestEntryMatching(t *testing.T) {
	tr := newFakeTransport()
	r := newTestRegistry(t, tr, nil)

	req := Request{
		Method: "post",
		URL:    "https://api.test/a",
		Header: map[string][]string{"Content-Type": {"application/json"}},
		Body:   []byte(`{"q":1}`),
	}
	e := r.LookupAsync([]string{"a"}, req, 0)

	if !e.MatchesRequest(req) {
		t.Fatalf("entry does not match its own identity")
	}
	// Method comparison is case-insensitive via canonicalization.
	upper := req
	upper.Method = "POST"
	if !e.MatchesRequest(upper) {
		t.Fatalf("method case must not affect identity")
	}

	other := req
	other.Body = []byte(`{"q":2}`)
	if e.MatchesRequest(other) {
		t.Fatalf("different body must not match")
	}

	if !e.MatchesURL("https://api.test/a") {
		t.Fatalf("URL match ignores configuration")
	}
	if e.MatchesURL("https://api.test/b") {
		t.Fatalf("different URL matched")
	}
}
