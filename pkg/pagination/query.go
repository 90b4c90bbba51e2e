package pagination

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery composes the query to NFC, trims it and collapses inner whitespace.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(norm.NFC.String(q)), " ")
}

// SameQuery compares two queries after normalization and case folding.
func SameQuery(a, b string) bool {
	fold := cases.Fold()
	return fold.String(NormalizeQuery(a)) == fold.String(NormalizeQuery(b))
}
