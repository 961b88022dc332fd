// Package body decodes fetched response bodies by declared content type.
//
// A Set maps media types (parameters stripped, case-insensitive) to
// Decoders. Unmapped JSON-ish types (application/json and any "+json"
// suffix) decode as JSON; everything else falls back to plain text.
package body

import "mime"

// Decoder turns a raw response body into a cacheable value.
type Decoder interface {
	Decode([]byte) (any, error)
}

// Set routes a body to a Decoder by media type. Keys must be lowercase
// media types without parameters, e.g. "application/cbor".
type Set map[string]Decoder

// Defaults returns the routing the cache uses when no Set is configured:
// JSON for application/json, text for everything else (both also applied as
// fallbacks by Decode when a type is unmapped).
func Defaults() Set {
	return Set{
		"application/json": JSON{},
		"text/plain":       Text{},
	}
}

// Decode routes payload to the decoder registered for contentType.
// contentType may carry parameters ("application/json; charset=utf-8");
// they are ignored for routing.
func (s Set) Decode(contentType string, payload []byte) (any, error) {
	mt := mediaType(contentType)
	if d, ok := s[mt]; ok {
		return d.Decode(payload)
	}
	if isJSON(mt) {
		return JSON{}.Decode(payload)
	}
	return Text{}.Decode(payload)
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt // ParseMediaType lowercases
}

func isJSON(mediaType string) bool {
	if mediaType == "application/json" {
		return true
	}
	const suffix = "+json"
	return len(mediaType) > len(suffix) && mediaType[len(mediaType)-len(suffix):] == suffix
}
