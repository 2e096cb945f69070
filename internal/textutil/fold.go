package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

const byteOrderMark = "\ufeff"

// Fold returns s trimmed and case folded for comparisons. A leading byte
// order mark is dropped first so the first header cell of a BOM-prefixed
// file still matches.
func Fold(s string) string {
	s = TrimCell(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// TrimCell strips a leading byte order mark and surrounding whitespace,
// including the ideographic space U+3000.
func TrimCell(s string) string {
	s = strings.TrimPrefix(s, byteOrderMark)
	return strings.TrimSpace(s)
}
