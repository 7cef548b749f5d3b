// Package keys turns raw partner and solution fields into the lookup keys
// used to join the two datasets.
//
// Name keys are case- and whitespace-insensitive. Identifier keys are the
// exact stringified value of a JSON string or number, so 123 and "123"
// refer to the same partner.
package keys

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name returns the normalized lookup key for a display name: leading and
// trailing whitespace removed, then lower-cased. An absent name is the
// empty string and normalizes to the empty string.
func Name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	// cases.Caser is stateful and not safe for concurrent use.
	return cases.Lower(language.Und).String(trimmed)
}

// SameName reports whether two display names resolve to the same key.
func SameName(a, b string) bool {
	return Name(a) == Name(b)
}
