package body

import "encoding/json"

// JSON decodes a body into the generic JSON object model
// (map[string]any, []any, string, float64, bool, nil).
type JSON struct{}

func (JSON) Decode(b []byte) (any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
