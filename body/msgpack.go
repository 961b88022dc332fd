package body

import "github.com/vmihailenco/msgpack/v5"

// Msgpack decodes application/msgpack (or application/x-msgpack) bodies
// using vmihailenco/msgpack/v5. The zero value is ready to use.
type Msgpack struct{}

func (Msgpack) Decode(b []byte) (any, error) {
	var v any
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
