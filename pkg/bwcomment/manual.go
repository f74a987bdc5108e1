package bwcomment

import (
	"iter"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// Makefile, Kotlin, and Swift have no tree-sitter grammar binding in the
// retrieval pack (unlike Go, C-family, JS/TS, Python, Ruby, Rust, CSS,
// HTML, Bash, YAML, TOML, and SQL, all of which do). These three fall
// back to a small hand-written scanner that tracks whether it is inside a
// single- or double-quoted string literal, so that delimiter-looking text
// inside string literals is not misclassified as a comment — the same
// guarantee the tree-sitter path gets from the grammar.
type lineScanExtractor struct {
	lineComment  string // e.g. "//" or "#"
	blockStart   string // "" if the language has no block comments
	blockEnd     string
	strip        stripFunc
}

func (e *lineScanExtractor) Parse(source []byte) iter.Seq[bwcore.Comment] {
	return func(yield func(bwcore.Comment) bool) {
		idx := bwcore.BuildNewlineIndex(source)
		n := len(source)
		i := 0
		inString := byte(0)
		for i < n {
			c := source[i]
			if inString != 0 {
				if c == '\\' && i+1 < n {
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				i++
				continue
			}
			if e.blockStart != "" && hasPrefixAt(source, i, e.blockStart) {
				end := indexFrom(source, i+len(e.blockStart), e.blockEnd)
				if end < 0 {
					end = n
				} else {
					end += len(e.blockEnd)
				}
				if com, keep := buildComment(source, idx, i, end, e.strip); keep && !yield(com) {
					return
				}
				i = end
				continue
			}
			if e.lineComment != "" && hasPrefixAt(source, i, e.lineComment) {
				end := indexFrom(source, i, "\n")
				if end < 0 {
					end = n
				}
				if com, keep := buildComment(source, idx, i, end, e.strip); keep && !yield(com) {
					return
				}
				i = end
				continue
			}
			i++
		}
	}
}

func hasPrefixAt(source []byte, i int, prefix string) bool {
	if i+len(prefix) > len(source) {
		return false
	}
	return string(source[i:i+len(prefix)]) == prefix
}

func indexFrom(source []byte, from int, sub string) int {
	if from >= len(source) {
		return -1
	}
	rel := indexOf(source[from:], sub)
	if rel < 0 {
		return -1
	}
	return from + rel
}

func indexOf(haystack []byte, needle string) int {
	n := len(needle)
	if n == 0 {
		return -1
	}
	for i := 0; i+n <= len(haystack); i++ {
		if string(haystack[i:i+n]) == needle {
			return i
		}
	}
	return -1
}

// NewKotlinExtractor and NewSwiftExtractor share the C-style "//" and
// "/* */" delimiters and the stripCStyle policy, scanned by hand.
func NewKotlinExtractor() Extractor {
	return &lineScanExtractor{lineComment: "//", blockStart: "/*", blockEnd: "*/", strip: stripCStyle}
}

func NewSwiftExtractor() Extractor {
	return &lineScanExtractor{lineComment: "//", blockStart: "/*", blockEnd: "*/", strip: stripCStyle}
}

// NewMakefileExtractor: Makefile comments are a plain '#' to end of line,
// identical to stripHash with no block-comment form and no shebang
// special case (that rule is Bash-specific, spec.md §4.1).
func NewMakefileExtractor() Extractor {
	return &lineScanExtractor{lineComment: "#", strip: stripHash}
}

// NewXMLExtractor: XML uses the identical "<!-- ... -->" delimiter as
// HTML (spec.md §4.1 groups them together); no dedicated tree-sitter-xml
// binding was retrieved, so XML reuses the hand-written block scanner
// with the HTML stripping policy.
func NewXMLExtractor() Extractor {
	return &lineScanExtractor{blockStart: "<!--", blockEnd: "-->", strip: stripHTML}
}
