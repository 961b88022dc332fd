package body

// Text is the fallback decoder: the body as a Go string. By convention this
// assumes UTF-8 and performs no validation.
type Text struct{}

func (Text) Decode(b []byte) (any, error) { return string(b), nil }

// Bytes is an identity decoder for callers that want the raw body unchanged,
// e.g. images or opaque binary payloads.
type Bytes struct{}

func (Bytes) Decode(b []byte) (any, error) { return b, nil }
