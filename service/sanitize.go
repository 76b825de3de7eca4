package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
)

var dropNonASCII = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// SanitizeName removes every non-ASCII rune (stars, emoji, trademark signs,
// accented letters) and trims surrounding whitespace.
//
// The transform is lossy: distinct names can collapse to the same result,
// so callers keep the original name next to the sanitized one.
func SanitizeName(name string) string {
	return strings.TrimSpace(dropNonASCII.String(name))
}
