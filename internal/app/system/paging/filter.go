// internal/app/system/paging/filter.go
package paging

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Filter keeps the items whose field contains q, ignoring case and
// diacritics. An empty (or all-space) query keeps everything. Order is
// preserved.
func Filter[T any](items []T, q string, field func(T) string) []T {
	needle := text.Fold(strings.TrimSpace(q))
	if needle == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(text.Fold(field(it)), needle) {
			out = append(out, it)
		}
	}
	return out
}

// FilterPage filters first, then paginates the filtered result.
func FilterPage[T any](items []T, q string, field func(T) string, index, size int) ([]T, Window) {
	filtered := Filter(items, q, field)
	return Page(filtered, index, size), ComputeWindow(len(filtered), index, size)
}
