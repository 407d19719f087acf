// internal/app/system/paging/pager.go
package paging

import (
	"sort"
	"strconv"
	"strings"
)

// Pager holds one page index per named list on a dashboard. It lives in
// the user's session between requests and is never shared.
type Pager struct {
	Size  int
	Index map[string]int
}

// NewPager returns a pager with every list on page 0.
func NewPager(size int) *Pager {
	return &Pager{Size: size, Index: make(map[string]int)}
}

// Current returns the page index of list.
func (p *Pager) Current(list string) int {
	return p.Index[list]
}

// Next advances list by one page. It does not look at the list length:
// paging past the end shows an empty page.
func (p *Pager) Next(list string) int {
	p.ensure()
	p.Index[list]++
	return p.Index[list]
}

// Prev moves list back one page, never below 0.
func (p *Pager) Prev(list string) int {
	p.ensure()
	if p.Index[list] > 0 {
		p.Index[list]--
	}
	return p.Index[list]
}

// Apply performs m on list and returns the resulting index.
func (p *Pager) Apply(list string, m Move) int {
	switch m {
	case Next:
		return p.Next(list)
	case Prev:
		return p.Prev(list)
	}
	return p.Current(list)
}

// SwitchView resets every list to page 0.
func (p *Pager) SwitchView() {
	p.Index = make(map[string]int)
}

// Slice returns the current page of items for list.
func Slice[T any](p *Pager, list string, items []T) []T {
	return Page(items, p.Current(list), p.Size)
}

func (p *Pager) ensure() {
	if p.Index == nil {
		p.Index = make(map[string]int)
	}
}

// Encode serialises the non-zero indices as "list:n,list:n", sorted by
// list name so the output is stable.
func (p *Pager) Encode() string {
	names := make([]string, 0, len(p.Index))
	for k, v := range p.Index {
		if v > 0 {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = k + ":" + strconv.Itoa(p.Index[k])
	}
	return strings.Join(parts, ",")
}

// DecodePager rebuilds a pager from Encode output. Malformed entries are
// ignored, so a corrupt session value degrades to page 0.
func DecodePager(size int, s string) *Pager {
	p := NewPager(size)
	for _, part := range strings.Split(s, ",") {
		name, num, ok := strings.Cut(part, ":")
		if !ok || name == "" {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			continue
		}
		p.Index[name] = n
	}
	return p
}
