package bwvalidators

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// LineCountValidator checks that the number of non-blank content lines in
// a block satisfies a comparator expression given by its "line-count"
// attribute (e.g. "<10", ">=3", "==1").
type LineCountValidator struct{}

func NewLineCountValidator() *LineCountValidator { return &LineCountValidator{} }

func (*LineCountValidator) Code() string { return "line-count" }

type lineCountOp string

const (
	opLt lineCountOp = "<"
	opLe lineCountOp = "<="
	opEq lineCountOp = "=="
	opGe lineCountOp = ">="
	opGt lineCountOp = ">"
)

func (v *LineCountValidator) Validate(_ context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	violations := map[string][]bwcore.Violation{}
	for _, file := range sortedFiles(vctx) {
		fb := vctx.BlocksByFile[file]
		for _, bc := range fb.BlocksWithContext {
			expr, ok := bc.Block.Attributes.Get("line-count")
			if !ok {
				continue
			}
			op, expected, err := parseLineCountConstraint(expr)
			if err != nil {
				return nil, fmt.Errorf("line-count expected a comparator like <N, <=N, ==N, >=N, >N; got %q in %s:%s at line %d (error: %w)",
					expr, file, blockNameDisplay(bc.Block), bc.Block.StartsAtLine, err)
			}
			actual := countNonBlankLines(fb.ContentText(bc.Block))
			if lineCountSatisfies(op, actual, expected) {
				continue
			}
			violation, err := lineCountViolation(file, bc.Block, op, expected, actual)
			if err != nil {
				return nil, err
			}
			violations[file] = append(violations[file], violation)
		}
	}
	return violations, nil
}

func lineCountSatisfies(op lineCountOp, actual, expected int) bool {
	switch op {
	case opLt:
		return actual < expected
	case opLe:
		return actual <= expected
	case opEq:
		return actual == expected
	case opGe:
		return actual >= expected
	case opGt:
		return actual > expected
	default:
		return false
	}
}

func countNonBlankLines(content string) int {
	if content == "" {
		return 0
	}
	n := 0
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func parseLineCountConstraint(s string) (lineCountOp, int, error) {
	trimmed := strings.TrimSpace(s)
	var op lineCountOp
	var rest string
	switch {
	case strings.HasPrefix(trimmed, "<="):
		op, rest = opLe, trimmed[2:]
	case strings.HasPrefix(trimmed, ">="):
		op, rest = opGe, trimmed[2:]
	case strings.HasPrefix(trimmed, "=="):
		op, rest = opEq, trimmed[2:]
	case strings.HasPrefix(trimmed, "<"):
		op, rest = opLt, trimmed[1:]
	case strings.HasPrefix(trimmed, ">"):
		op, rest = opGt, trimmed[1:]
	default:
		return "", 0, fmt.Errorf("missing comparator")
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return "", 0, fmt.Errorf("invalid number: %w", err)
	}
	return op, n, nil
}

func lineCountViolation(file string, b bwcore.Block, op lineCountOp, expected, actual int) (bwcore.Violation, error) {
	message := fmt.Sprintf("Block %s:%s defined at line %d has %d lines, which does not satisfy %s%d",
		file, blockNameDisplay(b), b.StartsAtLine, actual, op, expected)
	data, err := json.Marshal(struct {
		Actual   int    `json:"actual"`
		Op       string `json:"op"`
		Expected int    `json:"expected"`
	}{actual, string(op), expected})
	if err != nil {
		return bwcore.Violation{}, err
	}
	severity, ok := b.Severity()
	if !ok {
		return bwcore.Violation{}, fmt.Errorf("invalid severity attribute on block %s:%s at line %d", file, blockNameDisplay(b), b.StartsAtLine)
	}
	return bwcore.Violation{
		Range:    b.StartTagPositionRange,
		Code:     "line-count",
		Message:  message,
		Severity: severity,
		Data:     data,
	}, nil
}
