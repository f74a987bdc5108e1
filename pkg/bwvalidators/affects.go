package bwvalidators

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwselect"
)

// AffectsValidator checks that every block named by another block's
// "affects" attribute was itself content-modified in the same run.
type AffectsValidator struct{}

func NewAffectsValidator() *AffectsValidator { return &AffectsValidator{} }

func (*AffectsValidator) Code() string { return "affects" }

type affectsRef struct {
	file string
	name string
}

func (v *AffectsValidator) Validate(_ context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	modifiedByName := map[affectsRef]bool{}
	for file, fb := range vctx.BlocksByFile {
		for _, bc := range bwselect.ModifiedBlocks(fb) {
			if name, ok := bc.Block.Name(); ok {
				modifiedByName[affectsRef{file: file, name: name}] = true
			}
		}
	}

	files := sortedFiles(vctx)
	violations := map[string][]bwcore.Violation{}
	for _, file := range files {
		fb := vctx.BlocksByFile[file]
		for _, bc := range bwselect.ModifiedBlocks(fb) {
			affectsAttr, ok := bc.Block.Attributes.Get("affects")
			if !ok {
				continue
			}
			refs, err := parseAffectsAttribute(affectsAttr)
			if err != nil {
				return nil, err
			}
			for _, ref := range refs {
				targetFile := ref.file
				if targetFile == "" {
					targetFile = file
				}
				if modifiedByName[affectsRef{file: targetFile, name: ref.name}] {
					continue
				}
				violation, err := affectsViolation(file, bc.Block, fb, targetFile, ref.name)
				if err != nil {
					return nil, err
				}
				violations[file] = append(violations[file], violation)
			}
		}
	}
	return violations, nil
}

func parseAffectsAttribute(value string) ([]affectsRef, error) {
	var refs []affectsRef
	for _, part := range strings.Split(value, ",") {
		block := strings.TrimSpace(part)
		idx := strings.Index(block, ":")
		if idx < 0 {
			return nil, fmt.Errorf("invalid \"affects\" attribute value: %q", block)
		}
		file := strings.TrimSpace(block[:idx])
		name := strings.TrimSpace(block[idx+1:])
		refs = append(refs, affectsRef{file: file, name: name})
	}
	return refs, nil
}

func affectsViolation(file string, b bwcore.Block, fb *bwcore.FileBlocks, affectedFile, affectedName string) (bwcore.Violation, error) {
	name := blockNameDisplay(b)
	message := fmt.Sprintf("Block %s:%s at line %d is modified, but %s:%s is not",
		file, name, b.StartsAtLine, affectedFile, affectedName)
	data, err := json.Marshal(struct {
		AffectedBlockFilePath string `json:"affected_block_file_path"`
		AffectedBlockName     string `json:"affected_block_name"`
	}{affectedFile, affectedName})
	if err != nil {
		return bwcore.Violation{}, err
	}
	severity, ok := b.Severity()
	if !ok {
		return bwcore.Violation{}, fmt.Errorf("invalid severity attribute on block %s:%s at line %d", file, name, b.StartsAtLine)
	}
	return bwcore.Violation{
		Range:    b.StartTagPositionRange,
		Code:     "affects",
		Message:  message,
		Severity: severity,
		Data:     data,
	}, nil
}

func blockNameDisplay(b bwcore.Block) string {
	if name, ok := b.Name(); ok {
		return name
	}
	return "(unnamed)"
}

func sortedFiles(vctx *bwcore.ValidationContext) []string {
	files := make([]string, 0, len(vctx.BlocksByFile))
	for f := range vctx.BlocksByFile {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
