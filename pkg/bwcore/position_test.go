package bwcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want bool
	}{
		{"earlier line", Position{Line: 1, Character: 5}, Position{Line: 2, Character: 1}, true},
		{"later line", Position{Line: 2, Character: 1}, Position{Line: 1, Character: 5}, false},
		{"same line earlier character", Position{Line: 3, Character: 1}, Position{Line: 3, Character: 2}, true},
		{"equal", Position{Line: 3, Character: 2}, Position{Line: 3, Character: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Less(tt.b))
		})
	}
}

func TestByteRange(t *testing.T) {
	src := []byte("hello world")
	r := ByteRange{Start: 6, End: 11}
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, "world", string(r.Slice(src)))
}

func TestNewlineIndexPositionFor(t *testing.T) {
	src := []byte("ab\ncd\nef")
	idx := BuildNewlineIndex(src)

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Character: 1}}, // 'a'
		{1, Position{Line: 1, Character: 2}}, // 'b'
		{3, Position{Line: 2, Character: 1}}, // 'c'
		{4, Position{Line: 2, Character: 2}}, // 'd'
		{6, Position{Line: 3, Character: 1}}, // 'e'
		{7, Position{Line: 3, Character: 2}}, // 'f'
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.PositionFor(tt.offset), "offset %d", tt.offset)
	}
}

func TestNewlineIndexLineCount(t *testing.T) {
	assert.Equal(t, 1, BuildNewlineIndex([]byte("no newline")).LineCount(len("no newline")))
	assert.Equal(t, 2, BuildNewlineIndex([]byte("a\nb")).LineCount(3))
	assert.Equal(t, 1, BuildNewlineIndex([]byte("a\n")).LineCount(2))
	assert.Equal(t, 1, BuildNewlineIndex(nil).LineCount(0))
}
