// Package id provides opaque references to backend-owned records.
// The inventory backend is not consistent about ID types: some endpoints
// emit numeric IDs, others strings. Ref normalizes both to a string.
package id

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ref is an opaque backend identifier (store, product, indent, transfer, asset).
type Ref string

// Parse normalizes a user-supplied reference.
func Parse(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty reference")
	}
	return Ref(s), nil
}

// MustParse converts string to Ref, panics on error.
// Use only for constants and tests.
func MustParse(s string) Ref {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// IsNil checks if the reference is empty.
func IsNil(r Ref) bool {
	return r == ""
}

func (r Ref) String() string { return string(r) }

// MarshalJSON always encodes as a JSON string.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// UnmarshalJSON accepts a JSON string or number.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parse reference: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*r = Ref(strconv.FormatInt(i, 10))
		return nil
	}
	*r = Ref(n.String())
	return nil
}
