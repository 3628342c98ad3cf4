// Package textutil holds small text helpers shared by clients and the CLI.
package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
)

// MaxErrorPreview bounds upstream error text kept in error causes.
const MaxErrorPreview = 200

// Truncate shortens s to at most max user-perceived characters, appending an
// ellipsis when anything was cut. Grapheme clusters are never split, so
// combining marks in scripts like Sinhala stay attached to their base.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < max && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString("…")
	return b.String()
}

// Length returns the number of user-perceived characters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
