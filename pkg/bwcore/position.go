// Package bwcore holds the position, range, and violation types shared by
// every stage of the pipeline: comment extraction, tag scanning, block
// assembly, diff interpretation, and the validators.
package bwcore

import "sort"

// Position is a 1-based line/character location in a source file.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Less reports whether p sorts strictly before o.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// PositionRange is a half-open range of Positions: [Start, End).
type PositionRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// ByteRange is a half-open range of byte offsets into a source buffer.
type ByteRange struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r ByteRange) Len() int {
	return r.End - r.Start
}

// Slice returns the substring of src covered by r.
func (r ByteRange) Slice(src []byte) []byte {
	return src[r.Start:r.End]
}

// NewlineIndex is the sorted list of byte offsets of '\n' characters in a
// source buffer. It supports O(log n) byte-offset-to-Position conversion.
type NewlineIndex struct {
	offsets []int
}

// BuildNewlineIndex scans src once and records every newline offset.
func BuildNewlineIndex(src []byte) *NewlineIndex {
	idx := &NewlineIndex{}
	for i, b := range src {
		if b == '\n' {
			idx.offsets = append(idx.offsets, i)
		}
	}
	return idx
}

// PositionFor converts a byte offset into a 1-based Position.
func (n *NewlineIndex) PositionFor(offset int) Position {
	// line 1 is everything before the first newline
	line := sort.SearchInts(n.offsets, offset) + 1
	lineStart := 0
	if line > 1 {
		lineStart = n.offsets[line-2] + 1
	}
	return Position{Line: line, Character: offset - lineStart + 1}
}

// LineCount returns the total number of lines in the indexed buffer,
// counting a trailing partial line (no final newline) as one line.
func (n *NewlineIndex) LineCount(srcLen int) int {
	if len(n.offsets) == 0 {
		return 1
	}
	last := n.offsets[len(n.offsets)-1]
	if last == srcLen-1 {
		return len(n.offsets)
	}
	return len(n.offsets) + 1
}
