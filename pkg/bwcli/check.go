// Package bwcli wires the parsing, diffing, selection, and validation
// packages together into the two operations the CLI exposes: Check (the
// root command) and List (the "list" subcommand).
package bwcli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwdiff"
	"github.com/blockwatch-dev/blockwatch/pkg/bwlang"
	"github.com/blockwatch-dev/blockwatch/pkg/bwparse"
	"github.com/blockwatch-dev/blockwatch/pkg/bwselect"
	"github.com/blockwatch-dev/blockwatch/pkg/bwvalidate"
	"github.com/blockwatch-dev/blockwatch/pkg/fileutil"
	"github.com/blockwatch-dev/blockwatch/pkg/logger"
)

var checkLog = logger.New("bwcli:check")

// Check runs the full pipeline against a unified patch: diff extraction,
// per-file comment/tag/block parsing, selection against the patch's
// modified ranges, and validator execution. paths restricts which of the
// diff's touched files are considered; an empty paths considers every
// file the patch touched.
func Check(ctx context.Context, registry *bwlang.Registry, engine *bwvalidate.Engine, patch []byte, paths []string) (*bwvalidate.Result, error) {
	modifiedRanges, err := bwdiff.Extract(bytes.NewReader(patch))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	files, err := filterByPaths(modifiedRanges, paths)
	if err != nil {
		return nil, err
	}
	checkLog.Printf("checking %d file(s) out of %d touched by the patch", len(files), len(modifiedRanges))

	vctx := &bwcore.ValidationContext{BlocksByFile: map[string]*bwcore.FileBlocks{}}
	for _, file := range files {
		extractor, lang, ok := registry.ExtractorFor(file)
		if !ok {
			checkLog.Printf("skipping %s: no language registered for it", file)
			continue
		}
		source, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		blocks, idx, err := bwparse.File(file, source, extractor)
		if err != nil {
			return nil, err
		}
		withContext := bwselect.Select(blocks, modifiedRanges[file])
		if len(withContext) == 0 {
			continue
		}
		checkLog.Printf("%s (%s): %d block(s) selected", file, lang, len(withContext))
		vctx.BlocksByFile[file] = bwselect.BuildFileBlocks(source, idx, withContext)
	}

	return engine.Run(ctx, vctx)
}

// filterByPaths resolves the file set a Check/List run operates on: with
// no paths given, every file the diff touched; otherwise every file
// reachable by walking the given paths that also appears in the diff.
func filterByPaths(modifiedRanges map[string][]bwdiff.Range, paths []string) ([]string, error) {
	if len(paths) == 0 {
		out := make([]string, 0, len(modifiedRanges))
		for p := range modifiedRanges {
			out = append(out, p)
		}
		sort.Strings(out)
		return out, nil
	}

	allowed := map[string]bool{}
	for _, p := range paths {
		found, err := fileutil.WalkFiles(p)
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
		for _, f := range found {
			allowed[filepath.Clean(f)] = true
		}
	}

	out := make([]string, 0, len(modifiedRanges))
	for p := range modifiedRanges {
		if allowed[filepath.Clean(p)] {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}
