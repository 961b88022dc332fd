package fetchcache

import (
	"context"
	"net/http"
	"strings"

	"github.com/richardfuca/fetchcache/internal/fingerprint"
)

// Request is the identity of one logical fetch: the input plus its request
// configuration. It must be treated as immutable once handed to the cache;
// mutating Header or Body afterwards breaks entry matching.
type Request struct {
	Method string // "" means GET
	URL    string
	Header http.Header
	Body   []byte
}

// NewRequest returns a GET identity for url.
func NewRequest(url string) Request {
	return Request{URL: url}
}

// Fingerprint returns the canonical key for this identity. Two requests with
// the same method, URL, headers, and body always fingerprint equal,
// regardless of header insertion order.
func (r Request) Fingerprint() string {
	return fingerprint.Key(r.method(), r.URL, r.Header, r.Body)
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

// Response is what a Transport yields for a request: the declared content
// type and the raw body. StatusCode is informational; a Transport that
// treats non-success statuses as failures returns an error instead.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Transport issues the underlying network call for a Request. Do runs in the
// entry's own goroutine and may block; any error it returns becomes the
// entry's failed outcome verbatim.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}
