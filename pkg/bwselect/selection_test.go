package bwselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwdiff"
)

func block(startTagLine, startTagEndLine, startsAt, endsAt int) bwcore.Block {
	return bwcore.Block{
		StartTagPositionRange: bwcore.PositionRange{
			Start: bwcore.Position{Line: startTagLine},
			End:   bwcore.Position{Line: startTagEndLine},
		},
		StartsAtLine: startsAt,
		EndsAtLine:   endsAt,
	}
}

func TestSelectDropsNonIntersectingBlocks(t *testing.T) {
	b := block(1, 1, 1, 5)
	out := Select([]bwcore.Block{b}, []bwdiff.Range{{Start: 10, End: 12}})
	assert.Empty(t, out)
}

func TestSelectKeepsIntersectingBlock(t *testing.T) {
	b := block(1, 1, 1, 5)
	out := Select([]bwcore.Block{b}, []bwdiff.Range{{Start: 3, End: 3}})
	require.Len(t, out, 1)
	assert.True(t, out[0].IsContentModified)
}

func TestSelectTagOnlyChangeIsNotContentModified(t *testing.T) {
	// block spans lines 1-5, opening tag is line 1, closing tag line 5.
	// A modified range touching only the opening tag line must not mark
	// the block as content-modified.
	b := block(1, 1, 1, 5)
	out := Select([]bwcore.Block{b}, []bwdiff.Range{{Start: 1, End: 1}})
	require.Len(t, out, 1)
	assert.True(t, out[0].IsStartTagModified)
	assert.False(t, out[0].IsContentModified)
}

func TestSelectContentLineIsContentModified(t *testing.T) {
	b := block(1, 1, 1, 5)
	out := Select([]bwcore.Block{b}, []bwdiff.Range{{Start: 3, End: 3}})
	require.Len(t, out, 1)
	assert.False(t, out[0].IsStartTagModified)
	assert.True(t, out[0].IsContentModified)
}

func TestBuildFileBlocksAndModifiedBlocks(t *testing.T) {
	src := []byte("abc")
	idx := bwcore.BuildNewlineIndex(src)
	withContext := []bwcore.BlockWithContext{
		{Block: block(1, 1, 1, 2), IsContentModified: true},
		{Block: block(5, 5, 5, 6), IsContentModified: false},
	}
	fb := BuildFileBlocks(src, idx, withContext)
	assert.Equal(t, src, fb.FileContent)

	modified := ModifiedBlocks(fb)
	require.Len(t, modified, 1)
	assert.True(t, modified[0].IsContentModified)
}
