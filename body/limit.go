package body

import "fmt"

// Limit wraps another decoder to enforce a maximum allowed body size before
// decoding. If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: protect against oversized payloads from an untrusted origin.
type Limit struct {
	// Inner is the underlying decoder being wrapped. It must be set.
	Inner Decoder
	// MaxDecode is the maximum permitted body length in bytes. Bodies
	// exceeding it fail without invoking Inner.
	MaxDecode int
}

func (l Limit) Decode(b []byte) (any, error) {
	if l.MaxDecode > 0 && len(b) > l.MaxDecode {
		return nil, fmt.Errorf("body too large: %d > %d", len(b), l.MaxDecode)
	}
	return l.Inner.Decode(b)
}
