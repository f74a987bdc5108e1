// Package bwtag implements the Tag Scanner component (spec.md §4.2): a
// hand-written recursive-descent scanner for the <block ...>/</block>
// grammar over a single comment_text string.
package bwtag

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// TagRange is a byte range within the comment_text the scanner was given,
// not yet translated into absolute source offsets.
type TagRange struct {
	Start int
	End   int
}

// StartTag is an opening <block ...> tag.
type StartTag struct {
	TagRange   TagRange
	Attributes bwcore.Attributes
}

// EndTag is a closing </block> tag.
type EndTag struct {
	TagRange TagRange
}

// Token is either a StartTag or an EndTag.
type Token struct {
	Start *StartTag
	End   *EndTag
}

// Scan walks text and returns every <block>/</block> tag found, in order.
// A malformed "<block ..." whose attribute list does not parse is a hard
// error (spec.md §4.2, §7); any other "<...>"-shaped text is ignored.
func Scan(text string) ([]Token, error) {
	var tokens []Token
	i := 0
	n := len(text)
	for i < n {
		lt := strings.IndexByte(text[i:], '<')
		if lt < 0 {
			break
		}
		start := i + lt
		tok, next, matched, err := tryScanTag(text, start)
		if err != nil {
			return nil, err
		}
		if matched {
			tokens = append(tokens, tok)
			i = next
			continue
		}
		i = start + 1
	}
	return tokens, nil
}

// tryScanTag attempts to parse a <block ...> or </block> tag starting at
// the '<' found at position start. matched is false (with no error) when
// the text at start is not block-tag-shaped at all (some other tag,
// arithmetic "<", etc.) — it is silently ignored per spec.
func tryScanTag(text string, start int) (tok Token, next int, matched bool, err error) {
	i := start + 1 // past '<'
	i = skipSpace(text, i)

	isEnd := false
	if i < len(text) && text[i] == '/' {
		isEnd = true
		i++
		i = skipSpace(text, i)
	}

	word, j, ok := scanIdent(text, i)
	if !ok || word != "block" {
		return Token{}, 0, false, nil
	}
	i = j

	if isEnd {
		i = skipSpace(text, i)
		if i >= len(text) || text[i] != '>' {
			// "</block" not followed by '>': not a recognized end tag;
			// ignore silently, matching "any other tag-like text".
			return Token{}, 0, false, nil
		}
		end := i + 1
		return Token{End: &EndTag{TagRange: TagRange{Start: start, End: end}}}, end, true, nil
	}

	attrs := bwcore.Attributes{}
	for {
		save := i
		i = skipSpace(text, i)
		if i >= len(text) {
			return Token{}, 0, false, fmt.Errorf("unterminated <block tag")
		}
		if text[i] == '>' {
			if i == save {
				// no whitespace before '>' is fine: the tag closes either
				// directly after "block" or directly after an attribute.
			}
			end := i + 1
			return Token{Start: &StartTag{TagRange: TagRange{Start: start, End: end}, Attributes: attrs}}, end, true, nil
		}
		if i == save && i > j {
			// no whitespace consumed and we're not immediately after
			// "block": malformed attribute separator.
			return Token{}, 0, false, fmt.Errorf("malformed <block tag: expected whitespace or '>' at offset %d", i)
		}
		name, k, ok := scanIdent(text, i)
		if !ok {
			return Token{}, 0, false, fmt.Errorf("malformed <block tag: invalid attribute at offset %d", i)
		}
		i = k
		value := ""
		save2 := i
		i = skipSpace(text, i)
		if i < len(text) && text[i] == '=' {
			i++
			i = skipSpace(text, i)
			v, k2, ok := scanValue(text, i)
			if !ok {
				return Token{}, 0, false, fmt.Errorf("malformed <block tag: invalid value for attribute %q", name)
			}
			value = v
			i = k2
		} else {
			i = save2
		}
		attrs[name] = value
	}
}

func skipSpace(text string, i int) int {
	for i < len(text) && unicode.IsSpace(rune(text[i])) {
		i++
	}
	return i
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func scanIdent(text string, i int) (string, int, bool) {
	j := i
	for j < len(text) && isIdentByte(text[j]) {
		j++
	}
	if j == i {
		return "", i, false
	}
	return text[i:j], j, true
}

// scanValue parses a Value := '"' [^"]* '"' | '\'' [^']* '\'' | ident.
func scanValue(text string, i int) (string, int, bool) {
	if i >= len(text) {
		return "", i, false
	}
	switch text[i] {
	case '"':
		end := strings.IndexByte(text[i+1:], '"')
		if end < 0 {
			return "", i, false
		}
		return text[i+1 : i+1+end], i + 1 + end + 1, true
	case '\'':
		end := strings.IndexByte(text[i+1:], '\'')
		if end < 0 {
			return "", i, false
		}
		return text[i+1 : i+1+end], i + 1 + end + 1, true
	default:
		return scanIdent(text, i)
	}
}
