// Package bwblock implements the Block Assembler component (spec.md §4.3):
// a nesting-aware state machine that pairs <block>/</block> tags across a
// file's comment stream into bwcore.Block records.
package bwblock

import (
	"sort"
	"strings"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwerrors"
	"github.com/blockwatch-dev/blockwatch/pkg/bwtag"
)

type openBuilder struct {
	startLine           int
	attributes          bwcore.Attributes
	startTagPosRange    bwcore.PositionRange
	startTagSourceRange bwcore.ByteRange
	owningCommentStart  int
	owningCommentEnd    int
}

// Assemble consumes a file's ordered Comments, scans each for <block> tags,
// and returns the file's Blocks sorted by opening line ascending. It fails
// the whole parse (spec.md §7) on an unexpected close or an unclosed block
// at EOF.
func Assemble(file string, comments []bwcore.Comment, idx *bwcore.NewlineIndex) ([]bwcore.Block, error) {
	var stack []openBuilder
	var blocks []bwcore.Block

	for _, c := range comments {
		tokens, err := bwtag.Scan(c.CommentText)
		if err != nil {
			return nil, bwerrors.Parse(file, c.PositionRange.Start.Line, c.PositionRange.Start.Character, "%v", err)
		}
		for _, tok := range tokens {
			switch {
			case tok.Start != nil:
				start := tok.Start
				absStart := c.SourceRange.Start + start.TagRange.Start
				absEnd := c.SourceRange.Start + start.TagRange.End
				lineOffset := strings.Count(c.CommentText[:start.TagRange.Start], "\n")
				startLine := c.PositionRange.Start.Line + lineOffset
				stack = append(stack, openBuilder{
					startLine:  startLine,
					attributes: start.Attributes,
					startTagPosRange: bwcore.PositionRange{
						Start: idx.PositionFor(absStart),
						End:   idx.PositionFor(absEnd),
					},
					startTagSourceRange: bwcore.ByteRange{Start: absStart, End: absEnd},
					owningCommentStart:  c.SourceRange.Start,
					owningCommentEnd:    c.SourceRange.End,
				})

			case tok.End != nil:
				end := tok.End
				absStart := c.SourceRange.Start + end.TagRange.Start
				absEnd := c.SourceRange.Start + end.TagRange.End
				if len(stack) == 0 {
					p := idx.PositionFor(absStart)
					return nil, bwerrors.Parse(file, p.Line, p.Character, "unexpected closing </block>")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				var contentRange bwcore.ByteRange
				if top.owningCommentStart == c.SourceRange.Start {
					// both tags live in the same comment
					contentRange = bwcore.ByteRange{Start: top.startTagSourceRange.End, End: top.startTagSourceRange.End}
				} else {
					contentRange = bwcore.ByteRange{Start: top.owningCommentEnd, End: c.SourceRange.Start}
				}

				endLine := idx.PositionFor(absStart).Line

				blocks = append(blocks, bwcore.Block{
					StartTagPositionRange: top.startTagPosRange,
					StartTagSourceRange:   top.startTagSourceRange,
					EndTagSourceRange:     bwcore.ByteRange{Start: absStart, End: absEnd},
					ContentRange:          contentRange,
					Attributes:            top.attributes,
					StartsAtLine:          top.startLine,
					EndsAtLine:            endLine,
				})
			}
		}
	}

	if len(stack) != 0 {
		top := stack[len(stack)-1]
		return nil, bwerrors.Parse(file, top.startTagPosRange.Start.Line, top.startTagPosRange.Start.Character, "block is not closed")
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].StartsAtLine < blocks[j].StartsAtLine
	})
	return blocks, nil
}
