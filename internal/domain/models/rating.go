// internal/domain/models/rating.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Rating is a student's star rating of a lecturer. A student may rate the
// same lecturer any number of times.
type Rating struct {
	ID         ID     `json:"id,omitempty"`
	LecturerID ID     `json:"lecturerId"`
	UserID     ID     `json:"userId"`
	Rating     Stars  `json:"rating"`
	Comment    string `json:"comment"`
	Date       string `json:"date"`
}

// Stars is a 1-5 star value.
//
// Out-of-range values already in the store are a data-quality problem, not
// a decode failure: Stars decodes any number (or numeric string), truncating
// fractions, and leaves range checking to Valid.
type Stars int

const (
	MinStars Stars = 1
	MaxStars Stars = 5
)

// Valid reports whether s is within 1..5.
func (s Stars) Valid() bool { return s >= MinStars && s <= MaxStars }

// UnmarshalJSON accepts numbers, numeric strings and null.
func (s *Stars) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = 0
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*s = 0
		return nil
	}
	*s = Stars(int(f))
	return nil
}
