// Package content compares source and destination file contents.
//
// All comparisons are made on line-ending normalized text: CRLF and lone CR
// are rewritten to LF first, so a destination checked out with Windows line
// endings is not reported as drift. Equality is exact string equality after
// normalization; there is no whitespace tolerance and no semantic diffing.
// Diff renders a plain line diff for operators who ask for one.
package content

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pmezard/go-difflib/difflib"
)

// Normalize rewrites CRLF and lone CR line endings to LF.
func Normalize(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Equal reports whether a and b are identical after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// LineCount returns the number of newline-separated segments in s.
// A trailing newline therefore counts as an extra (empty) segment, and the
// empty string has one segment.
func LineCount(s string) int {
	return strings.Count(Normalize(s), "\n") + 1
}

// Describe returns a short, human readable explanation of how actual differs
// from expected. It is not a diff.
func Describe(expected, actual string) string {
	expected = Normalize(expected)
	actual = Normalize(actual)
	return fmt.Sprintf("Content mismatch (expected %d lines, got %d lines; %s vs %s)",
		LineCount(expected), LineCount(actual),
		humanize.Bytes(uint64(len(expected))), humanize.Bytes(uint64(len(actual))))
}

// Diff returns a unified diff turning actual (the destination, labelled
// from) into expected (labelled to), with three lines of context.
func Diff(expected, actual, from, to string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(Normalize(actual)),
		B:        difflib.SplitLines(Normalize(expected)),
		FromFile: from,
		ToFile:   to,
		Context:  3,
	})
}
