package bwcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributesGet(t *testing.T) {
	a := Attributes{"name": "foo"}
	v, ok := a.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "foo", v)

	_, ok = a.Get("missing")
	assert.False(t, ok)
}

func TestAttributesGetOr(t *testing.T) {
	a := Attributes{"name": "foo"}
	assert.Equal(t, "foo", a.GetOr("name", "default"))
	assert.Equal(t, "default", a.GetOr("missing", "default"))
}
