package bwcore

// Comment is a single extracted comment region. CommentText has exactly the
// same byte length as the original source substring it was derived from:
// every language-specific delimiter byte is replaced with an ASCII space so
// that offsets computed inside CommentText remain valid absolute offsets
// once added to SourceRange.Start.
type Comment struct {
	PositionRange PositionRange
	SourceRange   ByteRange
	CommentText   string
}
