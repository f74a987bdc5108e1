// Package bwparse wires the Comment Extractor, Tag Scanner, and Block
// Assembler together into a single per-file parse (spec.md §2 data flow:
// "source files -> CommentExtractor -> TagScanner -> BlockAssembler ->
// Block[]").
package bwparse

import (
	"github.com/blockwatch-dev/blockwatch/pkg/bwblock"
	"github.com/blockwatch-dev/blockwatch/pkg/bwcomment"
	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// File parses one file's source into its sorted Blocks and the
// newline index used for position math elsewhere in the pipeline.
func File(path string, source []byte, extractor bwcomment.Extractor) ([]bwcore.Block, *bwcore.NewlineIndex, error) {
	idx := bwcore.BuildNewlineIndex(source)

	var comments []bwcore.Comment
	for c := range extractor.Parse(source) {
		comments = append(comments, c)
	}

	blocks, err := bwblock.Assemble(path, comments, idx)
	if err != nil {
		return nil, nil, err
	}
	return blocks, idx, nil
}
