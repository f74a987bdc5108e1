package bwvalidators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

func fileBlocks(blocks ...bwcore.BlockWithContext) *bwcore.FileBlocks {
	return &bwcore.FileBlocks{BlocksWithContext: blocks}
}

func namedBlock(name string, startsAt int, attrs bwcore.Attributes) bwcore.Block {
	a := bwcore.Attributes{"name": name}
	for k, v := range attrs {
		a[k] = v
	}
	return bwcore.Block{
		Attributes:            a,
		StartsAtLine:          startsAt,
		StartTagPositionRange: bwcore.PositionRange{Start: bwcore.Position{Line: startsAt}},
	}
}

func TestAffectsValidatorNoViolationWhenTargetModified(t *testing.T) {
	main := namedBlock("", 1, bwcore.Attributes{"affects": "other.rs:foo"})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{
		"main.rs":  fileBlocks(bwcore.BlockWithContext{Block: main, IsContentModified: true}),
		"other.rs": fileBlocks(bwcore.BlockWithContext{Block: namedBlock("foo", 10, nil), IsContentModified: true}),
	}}

	v := NewAffectsValidator()
	violations, err := v.Validate(context.Background(), vctx)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestAffectsValidatorViolationWhenTargetNotModified(t *testing.T) {
	main := namedBlock("", 1, bwcore.Attributes{"affects": "other.rs:foo"})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{
		"main.rs":  fileBlocks(bwcore.BlockWithContext{Block: main, IsContentModified: true}),
		"other.rs": fileBlocks(bwcore.BlockWithContext{Block: namedBlock("foo", 10, nil), IsContentModified: false}),
	}}

	v := NewAffectsValidator()
	violations, err := v.Validate(context.Background(), vctx)
	require.NoError(t, err)
	require.Len(t, violations["main.rs"], 1)
	assert.Equal(t, "affects", violations["main.rs"][0].Code)
	assert.Contains(t, violations["main.rs"][0].Message, "other.rs:foo")
}

func TestAffectsValidatorMalformedReferenceIsFatal(t *testing.T) {
	main := namedBlock("", 1, bwcore.Attributes{"affects": "missing-colon"})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{
		"main.rs": fileBlocks(bwcore.BlockWithContext{Block: main, IsContentModified: true}),
	}}

	v := NewAffectsValidator()
	_, err := v.Validate(context.Background(), vctx)
	assert.Error(t, err)
}

func TestAffectsValidatorSameFileReference(t *testing.T) {
	main := namedBlock("", 1, bwcore.Attributes{"affects": ":foo"})
	foo := namedBlock("foo", 10, nil)
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{
		"main.rs": fileBlocks(
			bwcore.BlockWithContext{Block: main, IsContentModified: true},
			bwcore.BlockWithContext{Block: foo, IsContentModified: false},
		),
	}}

	v := NewAffectsValidator()
	violations, err := v.Validate(context.Background(), vctx)
	require.NoError(t, err)
	require.Len(t, violations["main.rs"], 1)
}
