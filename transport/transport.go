// Package transport provides the net/http implementation of the
// fetchcache.Transport collaborator.
//
// The cache only requires that a Transport return the declared content type
// and the raw body, or an error. This implementation treats any non-2xx
// status as an error (StatusError), so failed responses are cached as failed
// outcomes rather than decoded.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/richardfuca/fetchcache"
)

// Options tune a Client. The zero value is usable.
type Options struct {
	// Client issues the requests. nil => http.DefaultClient, or a
	// cookie-carrying client when Jar is set. Redirect, credential, and
	// TLS behavior all belong to this client.
	Client *http.Client

	// Jar makes fetches credentialed: session cookies set by one fetch
	// are sent on later fetches. Ignored when Client is set (configure
	// the jar on that client instead).
	Jar http.CookieJar

	// MaxBodyBytes truncates response bodies at a hard cap before they
	// reach a decoder. <= 0 disables the cap.
	MaxBodyBytes int64
}

// Client fetches over HTTP.
type Client struct {
	hc      *http.Client
	maxBody int64
}

var _ fetchcache.Transport = (*Client)(nil)

func NewClient(opts Options) *Client {
	hc := opts.Client
	if hc == nil {
		if opts.Jar != nil {
			hc = &http.Client{Jar: opts.Jar}
		} else {
			hc = http.DefaultClient
		}
	}
	return &Client{hc: hc, maxBody: opts.MaxBodyBytes}
}

func (c *Client) Do(ctx context.Context, req fetchcache.Request) (*fetchcache.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for name, values := range req.Header {
		for _, v := range values {
			hreq.Header.Add(name, v)
		}
	}

	resp, err := c.hc.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rd io.Reader = resp.Body
	if c.maxBody > 0 {
		rd = io.LimitReader(rd, c.maxBody)
	}
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: req.URL}
	}
	return &fetchcache.Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        b,
	}, nil
}

// StatusError reports a response the transport treats as a failure.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: %s returned status %d", e.URL, e.StatusCode)
}
