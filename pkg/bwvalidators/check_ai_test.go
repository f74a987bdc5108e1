package bwvalidators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

type stubAIClient struct {
	reply string
	err   error
}

func (s *stubAIClient) CheckBlock(ctx context.Context, condition, blockContent string) (string, error) {
	return s.reply, s.err
}

func TestCheckAIPasses(t *testing.T) {
	fb, _ := blockOverContent("some content", bwcore.Attributes{"check-ai": "must be concise"})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{"f.go": fb}}

	v := NewCheckAIValidator(&stubAIClient{reply: ""})
	violations, err := v.Validate(context.Background(), vctx)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckAIFails(t *testing.T) {
	fb, _ := blockOverContent("some content", bwcore.Attributes{"check-ai": "must be concise"})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{"f.go": fb}}

	v := NewCheckAIValidator(&stubAIClient{reply: "too verbose"})
	violations, err := v.Validate(context.Background(), vctx)
	require.NoError(t, err)
	require.Len(t, violations["f.go"], 1)
	assert.Equal(t, "check-ai", violations["f.go"][0].Code)
	assert.Contains(t, violations["f.go"][0].Message, "too verbose")
}

func TestCheckAIEmptyConditionIsFatal(t *testing.T) {
	fb, _ := blockOverContent("content", bwcore.Attributes{"check-ai": "  "})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{"f.go": fb}}

	v := NewCheckAIValidator(&stubAIClient{})
	_, err := v.Validate(context.Background(), vctx)
	assert.Error(t, err)
}

func TestCheckAIPatternSelectsValueGroup(t *testing.T) {
	fb, _ := blockOverContent("name: widget, owner: bob", bwcore.Attributes{
		"check-ai":         "owner is a real name",
		"check-ai-pattern": `owner: (?P<value>\w+)`,
	})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{"f.go": fb}}

	var seenContent string
	client := &recordingAIClient{}
	v := NewCheckAIValidator(client)
	_, err := v.Validate(context.Background(), vctx)
	require.NoError(t, err)
	seenContent = client.lastContent
	assert.Equal(t, "bob", seenContent)
}

func TestCheckAIPropagatesClientError(t *testing.T) {
	fb, _ := blockOverContent("content", bwcore.Attributes{"check-ai": "condition"})
	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{"f.go": fb}}

	v := NewCheckAIValidator(&stubAIClient{err: assert.AnError})
	_, err := v.Validate(context.Background(), vctx)
	assert.Error(t, err)
}

type recordingAIClient struct {
	lastContent string
}

func (r *recordingAIClient) CheckBlock(ctx context.Context, condition, blockContent string) (string, error) {
	r.lastContent = blockContent
	return "", nil
}
