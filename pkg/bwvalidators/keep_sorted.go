package bwvalidators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// KeepSortedValidator checks that a block's non-blank, trimmed lines are
// in ascending or descending order, per its "keep-sorted" attribute.
// Equal neighbouring lines are not out of order.
type KeepSortedValidator struct{}

func NewKeepSortedValidator() *KeepSortedValidator { return &KeepSortedValidator{} }

func (*KeepSortedValidator) Code() string { return "keep-sorted" }

func (v *KeepSortedValidator) Validate(_ context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	violations := map[string][]bwcore.Violation{}
	for _, file := range sortedFiles(vctx) {
		fb := vctx.BlocksByFile[file]
		for _, bc := range fb.BlocksWithContext {
			order, ok := bc.Block.Attributes.Get("keep-sorted")
			if !ok {
				continue
			}
			violation, fatalErr := v.checkBlock(file, bc.Block, fb, order)
			if fatalErr != nil {
				return nil, fatalErr
			}
			if violation != nil {
				violations[file] = append(violations[file], *violation)
			}
		}
	}
	return violations, nil
}

func (v *KeepSortedValidator) checkBlock(file string, b bwcore.Block, fb *bwcore.FileBlocks, order string) (*bwcore.Violation, error) {
	normalized := strings.ToLower(order)
	if normalized == "" {
		normalized = "asc"
	}
	if normalized != "asc" && normalized != "desc" {
		return nil, fmt.Errorf("keep-sorted expected values are \"asc\" or \"desc\", got %q in %s:%s at line %d",
			order, file, blockNameDisplay(b), b.StartsAtLine)
	}

	lines := contentLines(fb.ContentText(b), b.StartsAtLine)
	for i := 1; i < len(lines); i++ {
		prev, cur := lines[i-1], lines[i]
		outOfOrder := (normalized == "asc" && prev.text > cur.text) || (normalized == "desc" && prev.text < cur.text)
		if !outOfOrder {
			continue
		}
		return v.violation(file, b, normalized, cur)
	}
	return nil, nil
}

func (v *KeepSortedValidator) violation(file string, b bwcore.Block, order string, line contentLine) (*bwcore.Violation, error) {
	message := fmt.Sprintf("Block %s:%s defined at line %d has an out-of-order line %d (%s)",
		file, blockNameDisplay(b), b.StartsAtLine, line.lineNumber, order)
	data, err := json.Marshal(struct {
		OrderBy string `json:"order_by"`
	}{order})
	if err != nil {
		return nil, err
	}
	severity, ok := b.Severity()
	if !ok {
		return nil, fmt.Errorf("invalid severity attribute on block %s:%s at line %d", file, blockNameDisplay(b), b.StartsAtLine)
	}
	return &bwcore.Violation{
		Range: bwcore.PositionRange{
			Start: bwcore.Position{Line: line.lineNumber, Character: line.charStart},
			End:   bwcore.Position{Line: line.lineNumber, Character: line.charEnd + 1},
		},
		Code:     "keep-sorted",
		Message:  message,
		Severity: severity,
		Data:     data,
	}, nil
}
