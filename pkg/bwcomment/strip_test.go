package bwcomment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lenPreserving(t *testing.T, raw string, strip stripFunc) string {
	t.Helper()
	out, keep := strip([]byte(raw), 0, len(raw))
	assert.True(t, keep)
	assert.Len(t, out, len(raw))
	return out
}

func TestStripCStyleLineComment(t *testing.T) {
	out := lenPreserving(t, "// hello", stripCStyle)
	assert.Equal(t, "   hello", out)
}

func TestStripCStyleDocSlashes(t *testing.T) {
	assert.Equal(t, "   doc", lenPreserving(t, "///doc", stripCStyle))
	assert.Equal(t, "   bang", lenPreserving(t, "//!bang", stripCStyle))
}

func TestStripCStyleBlockComment(t *testing.T) {
	out := lenPreserving(t, "/* hi */", stripCStyle)
	assert.Equal(t, "   hi   ", out)
}

func TestStripCStyleBlockCommentLeadingStars(t *testing.T) {
	raw := "/*\n * line\n */"
	out := lenPreserving(t, raw, stripCStyle)
	assert.Len(t, out, len(raw))
	// leading '*' on continuation lines blanked, content preserved
	assert.Contains(t, out, " line")
	assert.NotContains(t, out, "*")
}

// Regression: a javadoc-style "/**" doc-open is blanked as a whole,
// including its third '*', which is not a continuation-line star and so
// is not covered by blankLeadingStars.
func TestStripCStyleDocOpenBlanksThirdStar(t *testing.T) {
	raw := "/**\n * line\n */"
	out := lenPreserving(t, raw, stripCStyle)
	assert.Equal(t, byte(' '), out[2])
	assert.Contains(t, out, " line")
}

func TestStripHash(t *testing.T) {
	assert.Equal(t, " hello", lenPreserving(t, "#hello", stripHash))
}

func TestStripBashShebangDropped(t *testing.T) {
	out, keep := stripBash([]byte("#!/bin/sh"), 0, len("#!/bin/sh"))
	assert.False(t, keep)
	assert.Empty(t, out)
}

func TestStripBashNonShebangKept(t *testing.T) {
	raw := []byte("x = 1 #!/bin/sh")
	out, keep := stripBash(raw, 6, len(raw))
	assert.True(t, keep)
	assert.Equal(t, " !/bin/sh", out)
}

func TestStripBashRegularComment(t *testing.T) {
	assert.Equal(t, " comment", lenPreserving(t, "#comment", stripBash))
}

func TestStripSQLLineComment(t *testing.T) {
	assert.Equal(t, "  hi", lenPreserving(t, "--hi", stripSQL))
}

func TestStripSQLBlockComment(t *testing.T) {
	assert.Equal(t, "   hi   ", lenPreserving(t, "/* hi */", stripSQL))
}

func TestStripHTML(t *testing.T) {
	out := lenPreserving(t, "<!-- hi -->", stripHTML)
	assert.Equal(t, "     hi    ", out)
}
