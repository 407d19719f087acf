// internal/domain/models/id.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is the canonical identifier for every record the collection API serves.
//
// The store hands out numeric ids, but clients have historically written
// string ids ("5") into foreign-key fields, so the same record can be
// referenced as 5 in one collection and "5" in another. ID normalizes both
// forms at decode time: a JSON number or a string holding a canonical
// integer become the same decimal string, and everything else is kept
// verbatim as an opaque string. Lookups then compare IDs with ==.
type ID string

// NoID is the zero ID (a missing or null reference).
const NoID ID = ""

// ParseID normalizes a raw id string.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoID
	}
	if n, ok := integral(s); ok {
		return ID(strconv.FormatInt(n, 10))
	}
	return ID(s)
}

// IDFromInt returns the canonical ID for an integer id.
func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// IsZero reports whether the id is missing.
func (id ID) IsZero() bool { return id == NoID }

func (id ID) String() string { return string(id) }

// Int64 returns the numeric value when the id is an integer id.
func (id ID) Int64() (int64, bool) {
	if !isCanonicalInt(string(id)) {
		return 0, false
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// MarshalJSON writes integer ids as JSON numbers and everything else as
// strings, so records round-trip through the store unchanged.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == NoID {
		return []byte("null"), nil
	}
	if isCanonicalInt(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts null, numbers and strings.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = NoID
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ParseID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ParseID(n.String())
		return nil
	}
}

// integral parses s as an integer, accepting float spellings of whole
// numbers ("5.0", "1e3") the way a JSON number can arrive. Strings with
// leading zeros ("007") are not integers here: they are opaque keys.
func integral(s string) (int64, bool) {
	if isCanonicalInt(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	}
	if !strings.ContainsAny(s, ".eE") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

func isCanonicalInt(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" || (len(s) > 1 && s[0] == '0') || len(s) > 18 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IDs collects a set of ids for membership tests.
type IDs map[ID]struct{}

// NewIDs builds a set from the given ids, skipping zero ids.
func NewIDs(ids ...ID) IDs {
	set := make(IDs, len(ids))
	for _, id := range ids {
		if !id.IsZero() {
			set[id] = struct{}{}
		}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDs) Has(id ID) bool {
	_, ok := s[id]
	return ok
}
