package bwcore

import "strings"

// Block is one <block>...</block> region assembled from the tag stream.
// ContentRange is empty when the opening and closing tags share a comment.
type Block struct {
	StartTagPositionRange PositionRange
	StartTagSourceRange   ByteRange
	EndTagSourceRange     ByteRange
	ContentRange          ByteRange
	Attributes            Attributes

	// StartsAtLine/EndsAtLine are the 1-based line numbers the block
	// spans, from the first line of the opening tag to the last line of
	// the closing tag. Selection (§4.5) intersects these against
	// modified-line ranges.
	StartsAtLine int
	EndsAtLine   int
}

// Name returns the block's "name" attribute, if any.
func (b Block) Name() (string, bool) {
	return b.Attributes.Get("name")
}

// Severity parses the block's "severity" attribute, defaulting to Error.
// The bool return is false when the attribute is present but malformed.
func (b Block) Severity() (Severity, bool) {
	v, ok := b.Attributes.Get("severity")
	if !ok {
		return SeverityError, true
	}
	return ParseSeverity(strings.TrimSpace(v))
}

// BlockWithContext pairs a Block with the diff-selection flags computed for it.
type BlockWithContext struct {
	Block               Block
	IsStartTagModified   bool
	IsContentModified    bool
}

// FileBlocks owns one file's full source text, its newline index, and the
// blocks discovered within it. It is constructed once per file and shared
// immutably by every validator that runs over the ValidationContext.
type FileBlocks struct {
	FileContent         []byte
	FileContentNewLines *NewlineIndex
	BlocksWithContext    []BlockWithContext
}

// ContentText returns the substring of block's content range.
func (fb *FileBlocks) ContentText(b Block) string {
	return string(b.ContentRange.Slice(fb.FileContent))
}

// ValidationContext is the shared, immutable input handed to every
// validator: the set of files touched by this run, each with its parsed
// blocks and selection flags.
type ValidationContext struct {
	BlocksByFile map[string]*FileBlocks
}
