package service

import (
	"strings"
	"unicode/utf8"
)

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// sanitizeText trims s, caps it at max characters and strips angle brackets.
// The result is trimmed again since stripping can expose inner whitespace.
func sanitizeText(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return strings.TrimSpace(angleBrackets.Replace(s))
}

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
