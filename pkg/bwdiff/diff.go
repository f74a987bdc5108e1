// Package bwdiff implements the Diff Extractor component (spec.md §4.4):
// parsing a unified patch into a map from post-image path to sorted,
// merged, non-overlapping modified line ranges.
package bwdiff

import (
	"io"
	"sort"
	"strings"

	"github.com/gitleaks/go-gitdiff/gitdiff"

	"github.com/blockwatch-dev/blockwatch/pkg/logger"
)

var diffLog = logger.New("bwdiff:diff")

// Range is a closed line interval [Start, End].
type Range struct {
	Start int
	End   int
}

// Extract parses a unified diff (as produced by `git diff --patch`) and
// returns, per post-image path, the sorted, merged modified line ranges.
// An empty patch yields an empty map (spec.md §6).
func Extract(patch io.Reader) (map[string][]Range, error) {
	files, _, err := gitdiff.Parse(patch)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]Range, len(files))
	for _, f := range files {
		if f.IsDelete || f.NewName == "/dev/null" || leavesFileEmpty(f) {
			diffLog.Printf("skipping deleted file %s", f.OldName)
			continue
		}
		path := strings.TrimPrefix(f.NewName, "b/")
		result[path] = modifiedRanges(f)
	}
	return result, nil
}

// leavesFileEmpty catches the case where a patch deletes every line of a
// file's only hunk without an explicit "deleted file mode" header: the
// post-image has zero lines, so the file is effectively gone even though
// it wasn't marked as a delete.
func leavesFileEmpty(f *gitdiff.File) bool {
	if len(f.TextFragments) != 1 {
		return false
	}
	frag := f.TextFragments[0]
	return frag.NewLines == 0 && frag.OldLines > 0
}

// modifiedRanges walks one file's text fragments and builds the closed
// line ranges per spec.md §4.4's rules, mirroring original_source's
// differ.rs line-by-line state machine exactly: a run of added lines
// becomes one range on the post-image (new) line numbers; a run of
// removed lines collapses to a single anchor range on the pre-image (old)
// line numbers, because those lines no longer exist post-image; a
// transition to context, or between add/remove runs, closes the range;
// touching or overlapping ranges are merged as they are appended. Because
// removed-line anchors use pre-image numbers, the finished list is then
// sorted by start and overlapping ranges are merged once more.
const noLine = -1

func modifiedRanges(f *gitdiff.File) []Range {
	var ranges []Range
	start, end := noLine, noLine
	var prevAdded, prevRemoved, havePrev bool

	flush := func() {
		if start == noLine {
			return
		}
		s, e := start, end
		start, end = noLine, noLine
		if n := len(ranges); n > 0 && ranges[n-1].Start <= e && s <= ranges[n-1].End {
			if e > ranges[n-1].End {
				ranges[n-1].End = e
			}
			return
		}
		ranges = append(ranges, Range{Start: s, End: e})
	}

	for _, frag := range f.TextFragments {
		oldLine := int(frag.OldPosition)
		newLine := int(frag.NewPosition)
		start, end = noLine, noLine
		havePrev = false

		for _, line := range frag.Lines {
			switch line.Op {
			case gitdiff.OpAdd:
				if havePrev && !prevAdded {
					flush()
				}
				if start == noLine {
					start = newLine
				}
				end = newLine
				newLine++
				prevAdded, prevRemoved, havePrev = true, false, true

			case gitdiff.OpDelete:
				if !havePrev || !prevRemoved {
					flush()
					start, end = oldLine, oldLine
				}
				oldLine++
				prevAdded, prevRemoved, havePrev = false, true, true

			default: // context
				flush()
				oldLine++
				newLine++
				prevAdded, prevRemoved, havePrev = false, false, true
			}
		}
		flush()
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	merged := ranges[:0]
	for _, r := range ranges {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
