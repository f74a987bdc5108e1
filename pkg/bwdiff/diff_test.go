package bwdiff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmptyPatch(t *testing.T) {
	ranges, err := Extract(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestExtractSingleAddedLine(t *testing.T) {
	patch := `diff --git a/foo.go b/foo.go
index 1111111..2222222 100644
--- a/foo.go
+++ b/foo.go
@@ -1,3 +1,4 @@
 line1
+line2
 line3
 line4
`
	ranges, err := Extract(strings.NewReader(patch))
	require.NoError(t, err)
	require.Contains(t, ranges, "foo.go")
	assert.Equal(t, []Range{{Start: 2, End: 2}}, ranges["foo.go"])
}

func TestExtractAddedRunMergesToOneRange(t *testing.T) {
	patch := `diff --git a/foo.go b/foo.go
index 1111111..2222222 100644
--- a/foo.go
+++ b/foo.go
@@ -1,2 +1,5 @@
 line1
+added1
+added2
+added3
 line2
`
	ranges, err := Extract(strings.NewReader(patch))
	require.NoError(t, err)
	assert.Equal(t, []Range{{Start: 2, End: 4}}, ranges["foo.go"])
}

func TestExtractRemovedLinesAnchorOnOldPosition(t *testing.T) {
	patch := `diff --git a/foo.go b/foo.go
index 1111111..2222222 100644
--- a/foo.go
+++ b/foo.go
@@ -1,4 +1,2 @@
 line1
-removed1
-removed2
 line2
`
	ranges, err := Extract(strings.NewReader(patch))
	require.NoError(t, err)
	require.Len(t, ranges["foo.go"], 1)
	assert.Equal(t, 2, ranges["foo.go"][0].Start)
}

func TestExtractDeletedFileIsSkipped(t *testing.T) {
	patch := `diff --git a/gone.go b/gone.go
deleted file mode 100644
index 1111111..0000000
--- a/gone.go
+++ /dev/null
@@ -1,1 +0,0 @@
-line1
`
	ranges, err := Extract(strings.NewReader(patch))
	require.NoError(t, err)
	assert.NotContains(t, ranges, "gone.go")
}
