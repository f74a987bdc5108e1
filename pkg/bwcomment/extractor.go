// Package bwcomment implements the Comment Extractor component (spec.md
// §4.1): per-language, grammar-aware extraction of comment regions from
// source text, with length-preserving delimiter stripping so that byte
// offsets computed against Comment.CommentText remain valid absolute
// offsets into the original source.
package bwcomment

import (
	"iter"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/logger"
)

var extractorLog = logger.New("bwcomment:extractor")

// Extractor produces the ordered, non-restartable sequence of Comments for
// one source buffer. Positions strictly increase by SourceRange.Start.
type Extractor interface {
	Parse(source []byte) iter.Seq[bwcore.Comment]
}

// stripFunc rewrites raw[start:end], a single comment node's byte range
// picked out by a language's grammar, into a Comment with delimiter bytes
// replaced by ASCII spaces. It must return text of exactly end-start bytes,
// or false if the node should be dropped entirely (e.g. a Bash shebang).
type stripFunc func(raw []byte, start, end int) (text string, keep bool)

func buildComment(raw []byte, idx *bwcore.NewlineIndex, start, end int, strip stripFunc) (bwcore.Comment, bool) {
	text, keep := strip(raw, start, end)
	if !keep {
		return bwcore.Comment{}, false
	}
	return bwcore.Comment{
		PositionRange: bwcore.PositionRange{
			Start: idx.PositionFor(start),
			End:   idx.PositionFor(end),
		},
		SourceRange: bwcore.ByteRange{Start: start, End: end},
		CommentText: text,
	}, true
}
