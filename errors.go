package fetchcache

import "fmt"

// TransportError wraps a failure of the underlying Transport. It is captured
// into the entry's outcome and replayed to every matching lookup until the
// entry is evicted.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetchcache: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a failure to decode a response body under its declared
// content type. Like TransportError it becomes the entry's failed outcome;
// the cache does not distinguish the two further.
type DecodeError struct {
	URL         string
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fetchcache: decode %s body from %s: %v", e.ContentType, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
