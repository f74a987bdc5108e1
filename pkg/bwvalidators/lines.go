// Package bwvalidators implements the seven built-in validators (spec.md
// §4.7): affects, keep-sorted, keep-unique, line-count, line-pattern,
// check-ai, check-lua.
package bwvalidators

import "strings"

// contentLine is one non-blank, whitespace-trimmed line of a block's
// content, along with its 1-based line number and 1-based inclusive
// character span within the original (untrimmed) line.
type contentLine struct {
	lineNumber int
	text       string
	charStart  int
	charEnd    int
}

// contentLines splits content on newlines and yields the trimmed,
// non-empty lines with their absolute line numbers (startLine is the
// block's first content line) and trimmed character spans, matching the
// "ignore blank lines and surrounding whitespace" rule shared by
// keep-sorted, keep-unique, and line-pattern.
func contentLines(content string, startLine int) []contentLine {
	var out []contentLine
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		start := strings.Index(line, trimmed)
		out = append(out, contentLine{
			lineNumber: startLine + i,
			text:       trimmed,
			charStart:  start + 1,
			charEnd:    start + len(trimmed),
		})
	}
	return out
}
