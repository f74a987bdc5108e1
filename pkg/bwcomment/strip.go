package bwcomment

import "bytes"

// spaces returns a run of n ASCII spaces.
func spaces(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return b
}

// stripCStyle replaces "//", "/* ... */", and the doc-comment prefixes
// ("///", "//!", "/** */") with spaces, preserving any decorative leading
// '*' on block-comment continuation lines (spec.md §4.1 table row 1).
func stripCStyle(raw []byte, start, end int) (string, bool) {
	src := raw[start:end]
	out := make([]byte, len(src))
	copy(out, src)

	switch {
	case bytes.HasPrefix(src, []byte("/*")):
		blankDelim(out, 0, 2)
		if bytes.HasPrefix(src, []byte("/**")) {
			blankDelim(out, 2, 3)
		}
		if bytes.HasSuffix(src, []byte("*/")) {
			blankDelim(out, len(out)-2, len(out))
		}
		blankLeadingStars(out)
	case bytes.HasPrefix(src, []byte("//")):
		// covers "//", "///", "//!" — all are two-or-more slashes; blank
		// only the leading run of slashes/bang that forms the delimiter.
		i := 0
		for i < len(out) && (out[i] == '/' || out[i] == '!') {
			out[i] = ' '
			i++
		}
	}
	return string(out), true
}

func blankDelim(out []byte, from, to int) {
	for i := from; i < to && i < len(out); i++ {
		out[i] = ' '
	}
}

// blankLeadingStars replaces a single decorative '*' at the start of a
// continuation line (after leading whitespace) with a space, so column
// offsets on that line stay stable relative to the original text.
func blankLeadingStars(out []byte) {
	atLineStart := false
	for i := 0; i < len(out); i++ {
		switch out[i] {
		case '\n':
			atLineStart = true
		case ' ', '\t':
			// whitespace doesn't end the at-line-start state
		case '*':
			if atLineStart {
				out[i] = ' '
				atLineStart = false
			}
		default:
			atLineStart = false
		}
	}
}

// stripHash replaces exactly one leading '#' with one space, for Python,
// Ruby, YAML, TOML, and Makefile comments.
func stripHash(raw []byte, start, end int) (string, bool) {
	src := raw[start:end]
	out := make([]byte, len(src))
	copy(out, src)
	if len(out) > 0 && out[0] == '#' {
		out[0] = ' '
	}
	return string(out), true
}

// stripBash is stripHash, except a line-initial shebang ("#!...") is
// dropped entirely: no Comment is emitted for it.
func stripBash(raw []byte, start, end int) (string, bool) {
	src := raw[start:end]
	if bytes.HasPrefix(src, []byte("#!")) && isLineStart(raw, start) {
		return "", false
	}
	return stripHash(raw, start, end)
}

func isLineStart(raw []byte, pos int) bool {
	return pos == 0 || raw[pos-1] == '\n'
}

// stripSQL replaces "--" and "/* ... */" with equal-length runs of spaces.
func stripSQL(raw []byte, start, end int) (string, bool) {
	src := raw[start:end]
	out := make([]byte, len(src))
	copy(out, src)
	switch {
	case bytes.HasPrefix(src, []byte("--")):
		blankDelim(out, 0, 2)
	case bytes.HasPrefix(src, []byte("/*")):
		blankDelim(out, 0, 2)
		if bytes.HasSuffix(src, []byte("*/")) {
			blankDelim(out, len(out)-2, len(out))
		}
	}
	return string(out), true
}

// stripHTML replaces "<!--" and "-->" with equal-length runs of spaces.
func stripHTML(raw []byte, start, end int) (string, bool) {
	src := raw[start:end]
	out := make([]byte, len(src))
	copy(out, src)
	if bytes.HasPrefix(src, []byte("<!--")) {
		blankDelim(out, 0, 4)
	}
	if bytes.HasSuffix(src, []byte("-->")) {
		blankDelim(out, len(out)-3, len(out))
	}
	return string(out), true
}
