// Package bwselect implements the Selection component (spec.md §4.5):
// intersecting parsed blocks with diff-modified line ranges to label each
// block as content-modified and/or tag-modified, discarding blocks that
// intersect nothing.
package bwselect

import (
	"sort"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwdiff"
)

// Select builds the BlockWithContext list for one file's blocks against
// its modified ranges. ranges must already be sorted and non-overlapping
// (bwdiff.Extract's output satisfies this).
func Select(blocks []bwcore.Block, ranges []bwdiff.Range) []bwcore.BlockWithContext {
	var out []bwcore.BlockWithContext
	for _, b := range blocks {
		if !intersectsAny(ranges, b.StartsAtLine, b.EndsAtLine) {
			continue
		}
		startTagModified := intersectsAny(ranges, b.StartTagPositionRange.Start.Line, b.StartTagPositionRange.End.Line)
		contentModified := isContentModified(ranges, b)
		out = append(out, bwcore.BlockWithContext{
			Block:              b,
			IsStartTagModified: startTagModified,
			IsContentModified:  contentModified,
		})
	}
	return out
}

// isContentModified reports whether any modified range touches the block
// but is not wholly contained within the opening or closing tag's lines.
func isContentModified(ranges []bwdiff.Range, b bwcore.Block) bool {
	endTagStartLine := endTagLine(b)
	for _, r := range ranges {
		if !rangesOverlap(r.Start, r.End, b.StartsAtLine, b.EndsAtLine) {
			continue
		}
		if withinTagLines(r, b.StartTagPositionRange.Start.Line, b.StartTagPositionRange.End.Line) {
			continue
		}
		if withinTagLines(r, endTagStartLine, endTagStartLine) {
			continue
		}
		return true
	}
	return false
}

func endTagLine(b bwcore.Block) int {
	return b.EndsAtLine
}

func withinTagLines(r bwdiff.Range, tagStart, tagEnd int) bool {
	return r.Start >= tagStart && r.End <= tagEnd
}

// intersectsAny binary-searches the sorted ranges to decide whether
// [start, end] intersects any of them.
func intersectsAny(ranges []bwdiff.Range, start, end int) bool {
	if len(ranges) == 0 {
		return false
	}
	// first range whose End >= start
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End >= start })
	if i >= len(ranges) {
		return false
	}
	return rangesOverlap(ranges[i].Start, ranges[i].End, start, end)
}

func rangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart <= bEnd && bStart <= aEnd
}
