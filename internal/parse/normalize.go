// Package parse converts raw sheet rows into typed domain records.
// The source sheets are edited by hand, so parsing is deliberately
// lenient: stray text in a height cell means "unset", and weight rows
// that fail date or number parsing are dropped rather than reported.
package parse

import "strings"

var idReplacer = strings.NewReplacer("　", " ", "\n", " ", "\r", " ")

// NormalizeID canonicalizes a user-supplied identifier: full-width
// spaces and line breaks become plain spaces, then surrounding
// whitespace is trimmed. The function is total and idempotent, and is
// applied to every user id before comparison, storage or lookup so
// that differently-formatted inputs collapse to one key.
func NormalizeID(raw string) string {
	return strings.TrimSpace(idReplacer.Replace(raw))
}
