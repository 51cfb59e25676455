// Package codec serializes one logical record to and from a single line of
// text. Each line is a compact JSON object; both logs share the codec and the
// caller knows which record type it is reading.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when a line cannot be decoded. Callers
// decide whether to skip the line or abort the whole scan.
var ErrMalformedRecord = errors.New("malformed record")

// Encode serializes a record to a single line without a trailing newline.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	return string(data), nil
}

// Decode parses a single line into the given record. Absent optional fields
// are left at their zero values; consumers treat them as best-effort.
func Decode(line string, v any) error {
	if err := json.Unmarshal([]byte(line), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return nil
}
