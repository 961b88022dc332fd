package body

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR decodes application/cbor bodies using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
type CBOR struct {
	dec cbor.DecMode
}

var _ Decoder = CBOR{}

// NewCBOR constructs a CBOR decoder with default decode options.
func NewCBOR() (CBOR, error) {
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests/examples.
func MustCBOR() CBOR {
	c, err := NewCBOR()
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Decode(b []byte) (any, error) {
	var v any
	if err := c.dec.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
