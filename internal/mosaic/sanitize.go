package mosaic

import (
	"strings"
	"unicode"
)

// SanitizeName maps a display name to a safe folder name. Letters, digits,
// dashes, underscores and spaces pass through; everything else becomes an
// underscore. Surrounding whitespace is trimmed.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.TrimSpace(b.String())
}
