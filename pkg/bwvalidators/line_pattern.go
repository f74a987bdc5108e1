package bwvalidators

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// LinePatternValidator checks that every non-blank, trimmed content line
// of a block matches a regular expression given by its "line-pattern"
// attribute. The pattern is matched against the trimmed line as given;
// callers wanting a full-line match must anchor it themselves with ^/$.
type LinePatternValidator struct{}

func NewLinePatternValidator() *LinePatternValidator { return &LinePatternValidator{} }

func (*LinePatternValidator) Code() string { return "line-pattern" }

func (v *LinePatternValidator) Validate(_ context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	violations := map[string][]bwcore.Violation{}
	for _, file := range sortedFiles(vctx) {
		fb := vctx.BlocksByFile[file]
		for _, bc := range fb.BlocksWithContext {
			pattern, ok := bc.Block.Attributes.Get("line-pattern")
			if !ok {
				continue
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("line-pattern expected a valid regular expression, got %q in %s:%s at line %d (error: %w)",
					pattern, file, blockNameDisplay(bc.Block), bc.Block.StartTagPositionRange.Start.Line, err)
			}

			lines := contentLines(fb.ContentText(bc.Block), bc.Block.StartTagPositionRange.Start.Line)
			for _, line := range lines {
				if re.MatchString(line.text) {
					continue
				}
				violation, err := linePatternViolation(file, bc.Block, pattern, line)
				if err != nil {
					return nil, err
				}
				violations[file] = append(violations[file], violation)
				break
			}
		}
	}
	return violations, nil
}

func linePatternViolation(file string, b bwcore.Block, pattern string, line contentLine) (bwcore.Violation, error) {
	message := fmt.Sprintf("Block %s:%s defined at line %d has a non-matching line %d (pattern: /%s/)",
		file, blockNameDisplay(b), b.StartTagPositionRange.Start.Line, line.lineNumber, pattern)
	data, err := json.Marshal(struct {
		Pattern string `json:"pattern"`
	}{pattern})
	if err != nil {
		return bwcore.Violation{}, err
	}
	severity, ok := b.Severity()
	if !ok {
		return bwcore.Violation{}, fmt.Errorf("invalid severity attribute on block %s:%s at line %d", file, blockNameDisplay(b), b.StartsAtLine)
	}
	return bwcore.Violation{
		Range: bwcore.PositionRange{
			Start: bwcore.Position{Line: line.lineNumber, Character: line.charStart},
			End:   bwcore.Position{Line: line.lineNumber, Character: line.charEnd + 1},
		},
		Code:     "line-pattern",
		Message:  message,
		Severity: severity,
		Data:     data,
	}, nil
}
