package bwcomment

import (
	"bytes"
	"iter"
	"sort"
	"strings"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// markdownExtractor implements spec.md §4.1's two Markdown-specific rules:
// [//]: # (...) link-reference-definition comments, and HTML comments
// recovered from the document's html_block spans. It scans the raw text
// directly rather than through tree-sitter-markdown's block/inline split,
// because the link-reference form is a line-oriented pattern that
// tree-sitter-markdown does not expose as a distinct node kind, and the
// html_block recovery below is itself a line-oriented approximation of
// CommonMark's type-2 HTML block (start condition: line begins with
// "<!--"; end condition: the same or a later line contains "-->"), which is the one
// html_block shape that can ever contain a comment.
type markdownExtractor struct{}

// NewMarkdownExtractor builds the Markdown Comment Extractor.
func NewMarkdownExtractor() Extractor {
	return &markdownExtractor{}
}

func (e *markdownExtractor) Parse(source []byte) iter.Seq[bwcore.Comment] {
	return func(yield func(bwcore.Comment) bool) {
		idx := bwcore.BuildNewlineIndex(source)
		var comments []bwcore.Comment

		lines := splitLinesKeepEnds(source)
		offset := 0
		for _, line := range lines {
			if com, ok := linkRefComment(source, idx, offset, line); ok {
				comments = append(comments, com)
			}
			offset += len(line)
		}

		comments = append(comments, htmlBlockComments(source, idx, lines)...)

		sort.Slice(comments, func(i, j int) bool {
			return comments[i].SourceRange.Start < comments[j].SourceRange.Start
		})
		for _, c := range comments {
			if !yield(c) {
				return
			}
		}
	}
}

// htmlBlockComments recovers "<!-- ... -->" spans that open at a line's
// first non-space column (CommonMark's type-2 HTML block start
// condition), skipping any line inside a fenced code block so that
// example text showing how to write a comment is never misclassified
// as a live one (spec.md §3/§4.1). Indented code blocks are excluded
// for free: the start condition below requires the "<!--" to follow at
// most 3 leading spaces, which a 4-space code indent never satisfies.
func htmlBlockComments(source []byte, idx *bwcore.NewlineIndex, lines [][]byte) []bwcore.Comment {
	var comments []bwcore.Comment

	var fenceChar byte
	fenceLen := 0
	inFence := false

	offset := 0
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineStart := offset
		offset += len(line)

		if inFence {
			if ch, n, ok := fenceMarker(line); ok && ch == fenceChar && n >= fenceLen {
				inFence = false
			}
			continue
		}
		if ch, n, ok := fenceMarker(line); ok {
			fenceChar, fenceLen, inFence = ch, n, true
			continue
		}

		lead := leadingSpaces(line)
		if lead > 3 {
			continue
		}
		rest := line[lead:]
		if !bytes.HasPrefix(rest, []byte("<!--")) {
			continue
		}

		start := lineStart + lead
		end, closed := findCommentClose(source, start+4)
		if !closed {
			continue
		}
		if c, keep := buildComment(source, idx, start, end, stripHTML); keep {
			comments = append(comments, c)
		}
		// If the comment swallowed later lines, skip the loop forward
		// past them so they aren't re-scanned as fence/comment starts.
		if end > offset {
			i, offset = advanceToOffset(lines, end)
		}
	}
	return comments
}

// findCommentClose searches source from searchFrom for "-->", returning
// the absolute byte offset just past it.
func findCommentClose(source []byte, searchFrom int) (int, bool) {
	rest := source[searchFrom:]
	if i := bytes.Index(rest, []byte("-->")); i >= 0 {
		return searchFrom + i + 3, true
	}
	return 0, false
}

// advanceToOffset finds the line containing byte offset target and
// returns its index plus the running offset for the line after it, so
// assigning them to the caller's loop variables (i, offset) makes the
// next iteration resume exactly where the comment left off.
func advanceToOffset(lines [][]byte, target int) (int, int) {
	offset := 0
	for i, line := range lines {
		next := offset + len(line)
		if target <= next {
			return i, next
		}
		offset = next
	}
	return len(lines) - 1, offset
}

func leadingSpaces(line []byte) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// fenceMarker reports whether line opens or closes a fenced code block:
// at most 3 leading spaces followed by a run of 3+ identical '`' or '~'
// bytes (CommonMark's fenced code block rule).
func fenceMarker(line []byte) (ch byte, length int, ok bool) {
	lead := 0
	for lead < len(line) && lead < 4 && line[lead] == ' ' {
		lead++
	}
	if lead > 3 {
		return 0, 0, false
	}
	rest := line[lead:]
	if len(rest) == 0 || (rest[0] != '`' && rest[0] != '~') {
		return 0, 0, false
	}
	c := rest[0]
	n := 0
	for n < len(rest) && rest[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	return c, n, true
}

// linkRefComment matches a single line of the form:
//
//	[//]: # (text)   or   [//]: # 'text'   or   [//]: # "text"
//
// replacing "[//]:" with five spaces, everything up to and including the
// opening delimiter with spaces, and the matching closing delimiter with
// one space, preserving interior content (spec.md §4.1).
func linkRefComment(source []byte, idx *bwcore.NewlineIndex, lineStart int, line []byte) (bwcore.Comment, bool) {
	trimmed := strings.TrimLeft(string(line), " \t")
	lead := len(line) - len(strings.TrimLeft(string(line), " \t"))
	if !strings.HasPrefix(trimmed, "[//]:") {
		return bwcore.Comment{}, false
	}
	rest := trimmed[len("[//]:"):]
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	if i >= len(rest) || rest[i] != '#' {
		return bwcore.Comment{}, false
	}
	i++
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	if i >= len(rest) {
		return bwcore.Comment{}, false
	}
	var closer byte
	switch rest[i] {
	case '(':
		closer = ')'
	case '\'':
		closer = '\''
	case '"':
		closer = '"'
	default:
		return bwcore.Comment{}, false
	}
	openIdx := i
	closeIdx := strings.IndexByte(rest[openIdx+1:], closer)
	if closeIdx < 0 {
		return bwcore.Comment{}, false
	}
	closeIdx += openIdx + 1

	out := make([]byte, len(line))
	copy(out, line)
	// "[//]:" -> 5 spaces
	for k := 0; k < 5; k++ {
		out[lead+k] = ' '
	}
	absOpen := lead + len("[//]:") + (openIdx)
	for k := lead + len("[//]:"); k <= absOpen; k++ {
		out[k] = ' '
	}
	absClose := lead + len("[//]:") + closeIdx
	out[absClose] = ' '

	start := lineStart
	end := lineStart + len(line)
	return bwcore.Comment{
		PositionRange: bwcore.PositionRange{Start: idx.PositionFor(start), End: idx.PositionFor(end)},
		SourceRange:   bwcore.ByteRange{Start: start, End: end},
		CommentText:   string(out),
	}, true
}

// splitLinesKeepEnds splits source into lines, each retaining its
// trailing '\n' (the last line may lack one), so offsets are easy to
// accumulate without re-scanning.
func splitLinesKeepEnds(source []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range source {
		if b == '\n' {
			lines = append(lines, source[start:i+1])
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}
