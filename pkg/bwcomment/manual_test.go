package bwcomment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectComments(ex Extractor, source []byte) []string {
	var out []string
	for c := range ex.Parse(source) {
		out = append(out, c.CommentText)
	}
	return out
}

func TestKotlinExtractorLineComment(t *testing.T) {
	ex := NewKotlinExtractor()
	src := []byte("val x = 1 // comment\nval y = 2")
	comments := collectComments(ex, src)
	require.Len(t, comments, 1)
	assert.Equal(t, "   comment", comments[0])
}

func TestKotlinExtractorBlockComment(t *testing.T) {
	ex := NewKotlinExtractor()
	src := []byte("/* block */ val x = 1")
	comments := collectComments(ex, src)
	require.Len(t, comments, 1)
	assert.Equal(t, "   block   ", comments[0])
}

func TestKotlinExtractorIgnoresCommentDelimitersInStrings(t *testing.T) {
	ex := NewKotlinExtractor()
	src := []byte(`val s = "// not a comment"` + "\nval t = 1 // real")
	comments := collectComments(ex, src)
	require.Len(t, comments, 1)
	assert.Contains(t, comments[0], "real")
}

func TestMakefileExtractor(t *testing.T) {
	ex := NewMakefileExtractor()
	src := []byte("target: dep # build it\n\tcommand")
	comments := collectComments(ex, src)
	require.Len(t, comments, 1)
	assert.Equal(t, "  build it", comments[0])
}

func TestXMLExtractor(t *testing.T) {
	ex := NewXMLExtractor()
	src := []byte("<root><!-- a comment --><child/></root>")
	comments := collectComments(ex, src)
	require.Len(t, comments, 1)
	assert.Contains(t, comments[0], "a comment")
	assert.Equal(t, len("<!-- a comment -->"), len(comments[0]))
}

func TestSwiftExtractorSharesKotlinPolicy(t *testing.T) {
	ex := NewSwiftExtractor()
	src := []byte("// swift comment\n")
	comments := collectComments(ex, src)
	require.Len(t, comments, 1)
	assert.Equal(t, "   swift comment", comments[0])
}
