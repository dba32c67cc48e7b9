// Package diffview produces unified diffs for preview output. It uses
// github.com/pmezard/go-difflib/difflib to generate classic patches
// (---/+++ headers, @@ hunks) when the formatter itself did not emit one.
package diffview

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

const defaultContext = 4

// Unified renders a unified patch for a -> b. An empty string means the
// inputs are identical.
func Unified(aName, bName string, a, b []byte) string {
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  defaultContext,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}

// splitLinesKeepNL splits into lines and keeps newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
