package bwcli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwlang"
	"github.com/blockwatch-dev/blockwatch/pkg/bwvalidate"
)

type stubValidator struct {
	code       string
	violations map[string][]bwcore.Violation
	err        error
}

func (s *stubValidator) Code() string { return s.code }

func (s *stubValidator) Validate(ctx context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.violations, nil
}

// recordingValidator captures which files it saw blocks for, so tests
// can assert on Check's file-selection behavior without depending on
// any real validator's rule logic.
type recordingValidator struct {
	seenFiles []string
}

func (r *recordingValidator) Code() string { return "recording" }

func (r *recordingValidator) Validate(ctx context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	for file := range vctx.BlocksByFile {
		r.seenFiles = append(r.seenFiles, file)
	}
	return nil, nil
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return dir
}

const goSourceWithBlock = `package foo

// <block name=widget>
func widget() int {
	return 1
}

// </block>
`

func TestCheckRunsValidatorsOverSelectedBlocks(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile("foo.go", []byte(goSourceWithBlock), 0o644))

	patch := `diff --git a/foo.go b/foo.go
index 1111111..2222222 100644
--- a/foo.go
+++ b/foo.go
@@ -3,4 +3,4 @@
 // <block name=widget>
-func widget() int {
-	return 0
+func widget() int {
+	return 1
 }
`
	registry := bwlang.New()
	rec := &recordingValidator{}
	engine := bwvalidate.New([]bwvalidate.Validator{rec})

	result, err := Check(context.Background(), registry, engine, []byte(patch), nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, rec.seenFiles, "foo.go")
}

func TestCheckEmptyPatchYieldsNoFiles(t *testing.T) {
	chdirTemp(t)
	registry := bwlang.New()
	engine := bwvalidate.New(nil)

	result, err := Check(context.Background(), registry, engine, []byte(""), nil)
	require.NoError(t, err)
	assert.Empty(t, result.ViolationsByFile)
}

func TestCheckPropagatesValidatorError(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile("foo.go", []byte(goSourceWithBlock), 0o644))

	patch := `diff --git a/foo.go b/foo.go
index 1111111..2222222 100644
--- a/foo.go
+++ b/foo.go
@@ -3,4 +3,4 @@
 // <block name=widget>
-func widget() int {
-	return 0
+func widget() int {
+	return 1
 }
`
	registry := bwlang.New()
	boom := &stubValidator{code: "boom", err: assert.AnError}
	engine := bwvalidate.New([]bwvalidate.Validator{boom})

	_, err := Check(context.Background(), registry, engine, []byte(patch), nil)
	assert.Error(t, err)
}

func TestCheckFiltersByPaths(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile("foo.go", []byte(goSourceWithBlock), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join("sub", "bar.go"), []byte(goSourceWithBlock), 0o644))

	patch := `diff --git a/foo.go b/foo.go
index 1111111..2222222 100644
--- a/foo.go
+++ b/foo.go
@@ -3,4 +3,4 @@
 // <block name=widget>
-func widget() int {
-	return 0
+func widget() int {
+	return 1
 }
diff --git a/sub/bar.go b/sub/bar.go
index 1111111..2222222 100644
--- a/sub/bar.go
+++ b/sub/bar.go
@@ -3,4 +3,4 @@
 // <block name=widget>
-func widget() int {
-	return 0
+func widget() int {
+	return 1
 }
`
	registry := bwlang.New()
	rec := &recordingValidator{}
	engine := bwvalidate.New([]bwvalidate.Validator{rec})

	_, err := Check(context.Background(), registry, engine, []byte(patch), []string{"sub"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("sub/bar.go")}, rec.seenFiles)
}
