package paging

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPage(t *testing.T) {
	items := seq(10)
	tests := []struct {
		name        string
		index, size int
		want        []int
	}{
		{"first page", 0, 4, []int{1, 2, 3, 4}},
		{"middle page", 1, 4, []int{5, 6, 7, 8}},
		{"short last page", 2, 4, []int{9, 10}},
		{"past the end", 3, 4, []int{}},
		{"far past the end", 1000, 4, []int{}},
		{"negative index clamps", -2, 4, []int{1, 2, 3, 4}},
		{"zero size", 0, 0, []int{}},
		{"negative size", 0, -1, []int{}},
		{"size larger than list", 0, 50, seq(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Page(items, tt.index, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Page(%d, %d) = %v, want %v", tt.index, tt.size, got, tt.want)
			}
		})
	}
}

func TestPage_ConcatenationReconstructs(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for size := 1; size <= 7; size++ {
			items := seq(n)
			var got []int
			for i := 0; ; i++ {
				p := Page(items, i, size)
				if len(p) == 0 {
					break
				}
				got = append(got, p...)
			}
			if !reflect.DeepEqual(got, items) {
				t.Fatalf("n=%d size=%d: reconstructed %v", n, size, got)
			}
		}
	}
}

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name               string
		total, index, size int
		want               Window
	}{
		{"empty", 0, 0, 6, Window{Index: 0, Size: 6}},
		{"first of two", 8, 0, 6, Window{Index: 0, Size: 6, Total: 8, Start: 1, End: 6, HasNext: true}},
		{"second of two", 8, 1, 6, Window{Index: 1, Size: 6, Total: 8, Start: 7, End: 8, HasPrev: true}},
		{"past end", 8, 5, 6, Window{Index: 5, Size: 6, Total: 8, HasPrev: true}},
		{"exact fit", 12, 1, 6, Window{Index: 1, Size: 6, Total: 12, Start: 7, End: 12, HasPrev: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeWindow(tt.total, tt.index, tt.size); got != tt.want {
				t.Errorf("ComputeWindow = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPager_PrevClampsNextDoesNot(t *testing.T) {
	p := NewPager(4)
	if got := p.Prev("reports"); got != 0 {
		t.Errorf("Prev from 0 = %d, want 0", got)
	}
	for i := 0; i < 5; i++ {
		p.Next("reports")
	}
	if got := p.Current("reports"); got != 5 {
		t.Errorf("Current = %d, want 5", got)
	}
	if got := Slice(p, "reports", seq(6)); len(got) != 0 {
		t.Errorf("page past end = %v, want empty", got)
	}
	if got := p.Prev("reports"); got != 4 {
		t.Errorf("Prev = %d, want 4", got)
	}
}

func TestPager_SwitchViewResetsAll(t *testing.T) {
	p := NewPager(6)
	p.Next("courses")
	p.Next("classes")
	p.Next("classes")
	p.SwitchView()
	if p.Current("courses") != 0 || p.Current("classes") != 0 {
		t.Errorf("indices after SwitchView = %v, want all 0", p.Index)
	}
}

func TestPager_Apply(t *testing.T) {
	var p Pager // zero value must be usable
	p.Size = 2
	if got := p.Apply("x", Next); got != 1 {
		t.Errorf("Apply(Next) = %d", got)
	}
	if got := p.Apply("x", Stay); got != 1 {
		t.Errorf("Apply(Stay) = %d", got)
	}
	if got := p.Apply("x", Prev); got != 0 {
		t.Errorf("Apply(Prev) = %d", got)
	}
}

func TestPager_EncodeDecode(t *testing.T) {
	p := NewPager(4)
	p.Next("reports")
	p.Next("reports")
	p.Next("classes")
	p.Index["courses"] = 0

	enc := p.Encode()
	if enc != "classes:1,reports:2" {
		t.Errorf("Encode = %q", enc)
	}
	back := DecodePager(4, enc)
	if back.Current("reports") != 2 || back.Current("classes") != 1 || back.Current("courses") != 0 {
		t.Errorf("DecodePager = %v", back.Index)
	}
}

func TestDecodePager_IgnoresGarbage(t *testing.T) {
	p := DecodePager(6, "a:1,,b,:3,c:-2,d:x,e:4")
	want := map[string]int{"a": 1, "e": 4}
	if !reflect.DeepEqual(p.Index, want) {
		t.Errorf("Index = %v, want %v", p.Index, want)
	}
	if p.Size != 6 {
		t.Errorf("Size = %d", p.Size)
	}
}

func TestParseMove(t *testing.T) {
	tests := map[string]Move{
		"/pl":               Stay,
		"/pl?move=next":     Next,
		"/pl?move=NEXT":     Next,
		"/pl?move=prev":     Prev,
		"/pl?move=sideways": Stay,
	}
	for target, want := range tests {
		r := httptest.NewRequest("GET", target, nil)
		if got := ParseMove(r); got != want {
			t.Errorf("ParseMove(%q) = %v, want %v", target, got, want)
		}
	}
}

type rating struct {
	comment string
}

func TestFilter(t *testing.T) {
	items := []rating{{"Great lecturer"}, {"boring"}, {"GREAT pace"}, {""}}
	field := func(r rating) string { return r.comment }

	got := Filter(items, "great", field)
	if len(got) != 2 || got[0].comment != "Great lecturer" || got[1].comment != "GREAT pace" {
		t.Errorf("Filter(great) = %v", got)
	}
	if got := Filter(items, "  ", field); len(got) != len(items) {
		t.Errorf("blank query kept %d of %d", len(got), len(items))
	}
	if got := Filter(items, "missing", field); len(got) != 0 {
		t.Errorf("Filter(missing) = %v", got)
	}
}

func TestFilterPage_FiltersBeforePaging(t *testing.T) {
	var items []rating
	for i := 0; i < 10; i++ {
		c := "meh"
		if i%2 == 0 {
			c = "good"
		}
		items = append(items, rating{c})
	}
	page, w := FilterPage(items, "good", func(r rating) string { return r.comment }, 1, 4)
	if len(page) != 1 {
		t.Errorf("second page of 5 matches at size 4 has %d items, want 1", len(page))
	}
	if w.Total != 5 || w.Start != 5 || w.End != 5 || w.HasNext {
		t.Errorf("window = %+v", w)
	}
}
