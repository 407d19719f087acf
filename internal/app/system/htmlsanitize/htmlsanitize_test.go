package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/luctportal/internal/app/system/htmlsanitize"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "Loops and arrays", "Loops and arrays"},
		{"trims", "  Intro  ", "Intro"},
		{"strips tags", "<b>Bold</b> topic", "Bold topic"},
		{"drops script", "Hello<script>alert('x')</script>", "Hello"},
		{"keeps ampersand", "Q&A session", "Q&A session"},
		{"keeps quotes", `He said "great"`, `He said "great"`},
		{"keeps comparison", "a < b", "a < b"},
		{"does not revive encoded markup", "&lt;script&gt;x", "&lt;script&gt;x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPlainText(t *testing.T) {
	tests := map[string]bool{
		"":              true,
		"Hello, World!": true,
		"<p>Hello</p>":  false,
		"a < b":         true,
		"x </b>":        false,
		"<!-- c -->":    false,
		"5<6":           true,
	}
	for in, want := range tests {
		if got := htmlsanitize.IsPlainText(in); got != want {
			t.Errorf("IsPlainText(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFields(t *testing.T) {
	a, b := "<i>one</i>", " two "
	htmlsanitize.Fields(&a, nil, &b)
	if a != "one" || b != "two" {
		t.Errorf("Fields gave %q, %q", a, b)
	}
}
