package utils

import (
	"bytes"
	"fmt"

	"github.com/gowebpki/jcs"
)

// CanonicalJSON returns the RFC 8785 (JCS) form of raw. Any JSON value is
// accepted, including bare scalars at the top level.
func CanonicalJSON(raw []byte) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("canonical json: empty input")
	}
	if raw[0] == '{' || raw[0] == '[' {
		return jcs.Transform(raw)
	}

	// jcs expects an object or array at the top level; wrap scalars.
	wrapped := make([]byte, 0, len(raw)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, raw...)
	wrapped = append(wrapped, ']')
	out, err := jcs.Transform(wrapped)
	if err != nil {
		return nil, err
	}
	return out[1 : len(out)-1], nil
}
