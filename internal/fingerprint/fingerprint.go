// Package fingerprint turns a request identity into a stable cache key.
//
// The identity is serialized into an unambiguous canonical frame (version
// byte, then length-prefixed method, URL, sorted header runs, and body) and
// hashed, so structurally equal identities always map to the same key and
// field boundaries can never alias ("ab"+"c" vs "a"+"bc").
package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

const version byte = 1

// Key returns the canonical fingerprint for one request identity as a short
// hex string. Header names are compared case-insensitively; value order
// within one header is preserved (it is significant in HTTP).
func Key(method, url string, header map[string][]string, body []byte) string {
	var buf bytes.Buffer
	buf.Grow(64 + len(url) + len(body))

	buf.WriteByte(version)
	writeField(&buf, []byte(method))
	writeField(&buf, []byte(url))

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	// Order by folded name, then original spelling, so case-duplicate
	// names ("accept" and "Accept" both present) encode in one fixed
	// order instead of whatever map iteration fed the sort.
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(names)))
	buf.Write(u4[:])
	for _, name := range names {
		writeField(&buf, []byte(strings.ToLower(name)))
		values := header[name]
		binary.BigEndian.PutUint32(u4[:], uint32(len(values)))
		buf.Write(u4[:])
		for _, v := range values {
			writeField(&buf, []byte(v))
		}
	}

	writeField(&buf, body)

	sum := sha256.Sum256(buf.Bytes())
	return fmt.Sprintf("%x", sum[:16])
}

func writeField(buf *bytes.Buffer, b []byte) {
	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(b)))
	buf.Write(u4[:])
	buf.Write(b)
}
