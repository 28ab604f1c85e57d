package service

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "trims whitespace", in: "  hello  ", max: 100, want: "hello"},
		{name: "strips angle brackets", in: "<script>alert(1)</script>", max: 100, want: "scriptalert(1)/script"},
		{name: "caps length", in: "abcdef", max: 3, want: "abc"},
		{name: "caps by characters not bytes", in: "ñandú ñandú", max: 5, want: "ñandú"},
		{name: "empty", in: "", max: 10, want: ""},
		{name: "only brackets", in: " <> ", max: 10, want: ""},
		{name: "whitespace exposed by stripping", in: "< a >", max: 10, want: "a"},
		{name: "brackets around a space", in: "< >", max: 10, want: ""},
		{name: "brackets around spaces", in: "<  >", max: 10, want: ""},
		{name: "inner whitespace kept", in: "<b>hi</b> there", max: 100, want: "bhi/b there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeText(tt.in, tt.max); got != tt.want {
				t.Errorf("sanitizeText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestSanitizeText_NeverExceedsMax(t *testing.T) {
	in := strings.Repeat("é<", 2000)
	got := sanitizeText(in, 1000)
	if n := charCount(got); n > 1000 {
		t.Errorf("Expected at most 1000 characters, got %d", n)
	}
	if strings.ContainsAny(got, "<>") {
		t.Error("Angle brackets should be stripped")
	}
}
