package bwcli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockwatch-dev/blockwatch/pkg/bwdiff"
	"github.com/blockwatch-dev/blockwatch/pkg/bwlang"
)

func TestListWalksPathsAndFiltersByLanguage(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile("foo.go", []byte(goSourceWithBlock), 0o644))
	require.NoError(t, os.WriteFile("notes.txt", []byte("hello"), 0o644))

	registry := bwlang.New()
	listings, err := List(registry, nil, []string{dir})
	require.NoError(t, err)

	require.Contains(t, listings, dir+"/foo.go")
	require.Len(t, listings[dir+"/foo.go"], 1)
	assert.Equal(t, "widget", listings[dir+"/foo.go"][0].Name)
	assert.NotContains(t, listings, dir+"/notes.txt")
}

func TestListMarksContentModifiedFromRanges(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile("foo.go", []byte(goSourceWithBlock), 0o644))

	registry := bwlang.New()
	ranges := map[string][]bwdiff.Range{dir + "/foo.go": {{Start: 4, End: 4}}}
	listings, err := List(registry, ranges, []string{dir})
	require.NoError(t, err)

	require.Len(t, listings[dir+"/foo.go"], 1)
	assert.True(t, listings[dir+"/foo.go"][0].IsContentModified)
}

func TestListWithNoPathsUsesModifiedRangeKeys(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile("foo.go", []byte(goSourceWithBlock), 0o644))

	registry := bwlang.New()
	ranges := map[string][]bwdiff.Range{"foo.go": {{Start: 4, End: 4}}}
	listings, err := List(registry, ranges, nil)
	require.NoError(t, err)
	require.Contains(t, listings, "foo.go")
}
