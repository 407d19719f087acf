// internal/app/system/banner/banner.go
package banner

import (
	"fmt"
	"time"

	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
)

// Kind is the banner style.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Banner is a transient notice shown at the top of a dashboard.
type Banner struct {
	Kind         Kind          `json:"kind"`
	Message      string        `json:"message"`
	DismissAfter time.Duration `json:"-"`
	DismissMS    int64         `json:"dismissAfterMs"`
}

// Set collects the banners for one response. The zero value is usable
// with no auto-dismiss.
type Set struct {
	dismiss time.Duration
	items   []Banner
}

// NewSet returns a set whose banners dismiss after d.
func NewSet(d time.Duration) *Set {
	return &Set{dismiss: d}
}

func (s *Set) add(k Kind, msg string) {
	s.items = append(s.items, Banner{
		Kind:         k,
		Message:      msg,
		DismissAfter: s.dismiss,
		DismissMS:    s.dismiss.Milliseconds(),
	})
}

// Success adds a success banner.
func (s *Set) Success(msg string) { s.add(KindSuccess, msg) }

// Error adds an error banner.
func (s *Set) Error(msg string) { s.add(KindError, msg) }

// FetchError adds "Error fetching <what>: <cause>".
func (s *Set) FetchError(what string, err error) {
	s.Error(FetchMessage(what, err))
}

// Items returns the collected banners (never nil).
func (s *Set) Items() []Banner {
	if s.items == nil {
		return []Banner{}
	}
	return s.items
}

// HasErrors reports whether any error banner was added.
func (s *Set) HasErrors() bool {
	for _, b := range s.items {
		if b.Kind == KindError {
			return true
		}
	}
	return false
}

// FetchMessage formats a read failure for display. Store errors show the
// store's own reason rather than the full wrapped chain.
func FetchMessage(what string, err error) string {
	return fmt.Sprintf("Error fetching %s: %s", what, storeclient.Reason(err))
}
