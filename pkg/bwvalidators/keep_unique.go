package bwvalidators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// KeepUniqueValidator checks that a block's lines (or regex matches
// within each line) are all distinct, per its "keep-unique" attribute.
// An empty attribute value compares whole trimmed lines; a non-empty
// value is a regex, and the "value" named capture group (or the whole
// match) is compared instead.
type KeepUniqueValidator struct{}

func NewKeepUniqueValidator() *KeepUniqueValidator { return &KeepUniqueValidator{} }

func (*KeepUniqueValidator) Code() string { return "keep-unique" }

func (v *KeepUniqueValidator) Validate(_ context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	violations := map[string][]bwcore.Violation{}
	for _, file := range sortedFiles(vctx) {
		fb := vctx.BlocksByFile[file]
		for _, bc := range fb.BlocksWithContext {
			pattern, ok := bc.Block.Attributes.Get("keep-unique")
			if !ok {
				continue
			}
			violation, err := v.checkBlock(file, bc.Block, fb, pattern)
			if err != nil {
				return nil, err
			}
			if violation != nil {
				violations[file] = append(violations[file], *violation)
			}
		}
	}
	return violations, nil
}

type uniqueMatch struct {
	lineNumber int
	text       string
	charStart  int
	charEnd    int
}

func (v *KeepUniqueValidator) checkBlock(file string, b bwcore.Block, fb *bwcore.FileBlocks, pattern string) (*bwcore.Violation, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid keep-unique regex pattern for block %s:%s defined at line %d: %w",
				file, blockNameDisplay(b), b.StartsAtLine, err)
		}
	}

	content := fb.ContentText(b)
	seen := map[string]bool{}
	for i, line := range splitLines(content) {
		m := matchUniqueLine(re, line, b.StartsAtLine+i)
		if m == nil {
			continue
		}
		if seen[m.text] {
			return v.violation(file, b, *m)
		}
		seen[m.text] = true
	}
	return nil, nil
}

func matchUniqueLine(re *regexp.Regexp, line string, lineNumber int) *uniqueMatch {
	if re == nil {
		trimmed, start := trimOffsets(line)
		if trimmed == "" {
			return nil
		}
		return &uniqueMatch{lineNumber: lineNumber, text: trimmed, charStart: start + 1, charEnd: start + len(trimmed)}
	}

	loc := re.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil
	}
	names := re.SubexpNames()
	for i, name := range names {
		if name == "value" && loc[2*i] >= 0 {
			return &uniqueMatch{lineNumber: lineNumber, text: line[loc[2*i]:loc[2*i+1]], charStart: loc[2*i] + 1, charEnd: loc[2*i+1]}
		}
	}
	return &uniqueMatch{lineNumber: lineNumber, text: line[loc[0]:loc[1]], charStart: loc[0] + 1, charEnd: loc[1]}
}

func (v *KeepUniqueValidator) violation(file string, b bwcore.Block, m uniqueMatch) (*bwcore.Violation, error) {
	message := fmt.Sprintf("Block %s:%s defined at line %d has a duplicated line %d",
		file, blockNameDisplay(b), b.StartsAtLine, m.lineNumber)
	severity, ok := b.Severity()
	if !ok {
		return nil, fmt.Errorf("invalid severity attribute on block %s:%s at line %d", file, blockNameDisplay(b), b.StartsAtLine)
	}
	return &bwcore.Violation{
		Range: bwcore.PositionRange{
			Start: bwcore.Position{Line: m.lineNumber, Character: m.charStart},
			End:   bwcore.Position{Line: m.lineNumber, Character: m.charEnd + 1},
		},
		Code:     "keep-unique",
		Message:  message,
		Severity: severity,
	}, nil
}

func splitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, trimCR(content[start:i]))
			start = i + 1
		}
	}
	lines = append(lines, trimCR(content[start:]))
	return lines
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

func trimOffsets(line string) (trimmed string, start int) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	j := len(line)
	for j > i && (line[j-1] == ' ' || line[j-1] == '\t') {
		j--
	}
	return line[i:j], i
}
