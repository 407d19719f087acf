// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
)

// Default page sizes for the dashboards that paginate.
const (
	ProgramLeaderPageSize = 6
	PrincipalPageSize     = 4
)

// Page returns items[index*size : index*size+size], clipped to the slice.
// A negative index is treated as 0. There is no clamp on the high side:
// asking past the last page yields an empty slice, never a panic. A
// non-positive size yields an empty slice.
func Page[T any](items []T, index, size int) []T {
	if size <= 0 {
		return []T{}
	}
	if index < 0 {
		index = 0
	}
	start := index * size
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) || end < start {
		end = len(items)
	}
	return items[start:end]
}

// Window describes the page being shown, for prev/next controls and a
// "showing 7-12 of 20" caption.
type Window struct {
	Index   int  `json:"index"`
	Size    int  `json:"size"`
	Total   int  `json:"total"`
	Start   int  `json:"start"` // 1-based, 0 when the page is empty
	End     int  `json:"end"`   // 1-based, 0 when the page is empty
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
}

// ComputeWindow describes page index of a list of total items.
func ComputeWindow(total, index, size int) Window {
	if index < 0 {
		index = 0
	}
	w := Window{Index: index, Size: size, Total: total, HasPrev: index > 0}
	if size <= 0 {
		return w
	}
	start := index * size
	if start < total {
		end := start + size
		if end > total {
			end = total
		}
		w.Start = start + 1
		w.End = end
	}
	w.HasNext = start+size < total
	return w
}

// Move is a pagination step requested by the user.
type Move int

const (
	Stay Move = iota
	Next
	Prev
)

// ParseMove reads the "move" query parameter ("next" or "prev").
func ParseMove(r *http.Request) Move {
	switch strings.ToLower(query.Get(r, "move")) {
	case "next":
		return Next
	case "prev", "previous":
		return Prev
	}
	return Stay
}
