package extract

import (
	"strings"
)

const (
	fullWidthParen = "（"
	halfWidthParen = "("
)

// CleanMajor strips one parenthetical annotation from a major name. A
// full-width parenthesis takes precedence; only one form is ever cut.
func CleanMajor(s string) string {
	if i := strings.Index(s, fullWidthParen); i >= 0 {
		s = s[:i]
	} else if i := strings.Index(s, halfWidthParen); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// SplitMajors splits a major cell on ASCII commas and cleans each entry,
// dropping entries that end up empty. The result never has more entries
// than the cell has comma-separated parts.
func SplitMajors(cell string) []string {
	parts := strings.Split(cell, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if major := CleanMajor(strings.TrimSpace(part)); major != "" {
			out = append(out, major)
		}
	}
	return out
}
