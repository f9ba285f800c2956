// Package normalize folds free-form titles into a comparable ASCII form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMark matches the Combining Diacritical Marks block (U+0300-U+036F).
var combiningMark = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

// Title lowercases s, removes diacritics, drops everything outside [a-z0-9]
// and whitespace, and collapses whitespace runs into single spaces.
func Title(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(combiningMark))
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Matches reports whether either normalized string contains the other.
// Empty inputs never match.
func Matches(a, b string) bool {
	na, nb := Title(a), Title(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
