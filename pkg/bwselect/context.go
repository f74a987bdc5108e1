package bwselect

import "github.com/blockwatch-dev/blockwatch/pkg/bwcore"

// BuildFileBlocks assembles one file's FileBlocks record from its parsed
// blocks, selection results, source text, and newline index.
func BuildFileBlocks(source []byte, idx *bwcore.NewlineIndex, withContext []bwcore.BlockWithContext) *bwcore.FileBlocks {
	return &bwcore.FileBlocks{
		FileContent:         source,
		FileContentNewLines: idx,
		BlocksWithContext:   withContext,
	}
}

// ModifiedBlocks returns the blocks from fb whose content was modified by
// the diff (spec.md §4.5/§4.7.1: a block whose only change is in the
// opening tag does not count as content-modified).
func ModifiedBlocks(fb *bwcore.FileBlocks) []bwcore.BlockWithContext {
	var out []bwcore.BlockWithContext
	for _, bc := range fb.BlocksWithContext {
		if bc.IsContentModified {
			out = append(out, bc)
		}
	}
	return out
}
