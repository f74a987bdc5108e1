package bwcli

import (
	"fmt"
	"os"
	"sort"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwdiff"
	"github.com/blockwatch-dev/blockwatch/pkg/bwlang"
	"github.com/blockwatch-dev/blockwatch/pkg/bwparse"
	"github.com/blockwatch-dev/blockwatch/pkg/bwselect"
	"github.com/blockwatch-dev/blockwatch/pkg/fileutil"
)

// BlockListing is one block entry in the "list" subcommand's output
// (spec.md §6 supplement).
type BlockListing struct {
	Name              string            `json:"name"`
	Line              int               `json:"line"`
	Column            int               `json:"column"`
	IsContentModified bool              `json:"is_content_modified"`
	Attributes        map[string]string `json:"attributes"`
}

// List parses every file reachable under paths (or every file the patch
// touched, when patch is non-empty and paths is empty) and returns its
// blocks. modifiedRanges may be nil: is_content_modified is then false
// for every block.
func List(registry *bwlang.Registry, modifiedRanges map[string][]bwdiff.Range, paths []string) (map[string][]BlockListing, error) {
	var files []string
	if len(paths) > 0 {
		for _, p := range paths {
			found, err := walkAndFilterByLanguage(registry, p)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	} else {
		for p := range modifiedRanges {
			files = append(files, p)
		}
	}
	sort.Strings(files)

	result := map[string][]BlockListing{}
	for _, file := range files {
		extractor, _, ok := registry.ExtractorFor(file)
		if !ok {
			continue
		}
		source, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		blocks, _, err := bwparse.File(file, source, extractor)
		if err != nil {
			return nil, err
		}
		result[file] = listingsForFile(blocks, modifiedRanges[file])
	}
	return result, nil
}

func listingsForFile(blocks []bwcore.Block, ranges []bwdiff.Range) []BlockListing {
	contentModifiedByLine := map[int]bool{}
	for _, bc := range bwselect.Select(blocks, ranges) {
		contentModifiedByLine[bc.Block.StartsAtLine] = bc.IsContentModified
	}

	listings := make([]BlockListing, 0, len(blocks))
	for _, b := range blocks {
		name, _ := b.Name()
		listings = append(listings, BlockListing{
			Name:              name,
			Line:              b.StartTagPositionRange.Start.Line,
			Column:            b.StartTagPositionRange.Start.Character,
			IsContentModified: contentModifiedByLine[b.StartsAtLine],
			Attributes:        map[string]string(b.Attributes),
		})
	}
	return listings
}

func walkAndFilterByLanguage(registry *bwlang.Registry, root string) ([]string, error) {
	all, err := fileutil.WalkFiles(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range all {
		if _, _, ok := registry.ExtractorFor(f); ok {
			out = append(out, f)
		}
	}
	return out, nil
}
