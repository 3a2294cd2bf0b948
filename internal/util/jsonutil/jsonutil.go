package jsonutil

import (
	"bytes"
	"encoding/json"
)

// MarshalNoEscape encodes v into JSON without escaping <, >, & into <, etc.
// Generated component source is full of those characters.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Remove trailing newline from json.Encoder.Encode
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalNoEscapeIndent is MarshalNoEscape with indentation.
func MarshalNoEscapeIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Canonical encodes v with sorted object keys and no insignificant
// whitespace, so equal values always produce equal bytes.
func Canonical(v any) ([]byte, error) {
	b, err := MarshalNoEscape(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return MarshalNoEscape(generic)
}
