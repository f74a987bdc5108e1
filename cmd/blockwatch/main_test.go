package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcli"
	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwerrors"
)

func TestMisuseAndFailureCarryExitCodes(t *testing.T) {
	mErr := misuse(errors.New("bad flag"))
	var me *exitError
	assert.ErrorAs(t, mErr, &me)
	assert.Equal(t, 2, me.code)

	fErr := failure(errors.New("boom"))
	var fe *exitError
	assert.ErrorAs(t, fErr, &fe)
	assert.Equal(t, 1, fe.code)
}

func TestExitErrorUnwraps(t *testing.T) {
	inner := errors.New("root cause")
	wrapped := failure(inner)
	assert.ErrorIs(t, wrapped, inner)
}

func TestFormatFatalUsesBWErrorMessage(t *testing.T) {
	be := bwerrors.Parse("f.go", 3, 1, "unexpected closing </block>")
	assert.Equal(t, be.Error(), formatFatal(be))
}

func TestFormatFatalFallsBackToPlainError(t *testing.T) {
	err := errors.New("plain failure")
	assert.Equal(t, "plain failure", formatFatal(err))
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, ".go", normalizeExt("go"))
	assert.Equal(t, ".go", normalizeExt(".GO"))
	assert.Equal(t, "", normalizeExt("  "))
}

func TestHasErrorSeverityTrueWhenAnyFileHasError(t *testing.T) {
	violations := map[string][]bwcore.Violation{
		"a.go": {{Severity: bwcore.SeverityWarning}},
		"b.go": {{Severity: bwcore.SeverityError}},
	}
	assert.True(t, hasErrorSeverity(violations))
}

func TestHasErrorSeverityFalseWhenOnlyWarnings(t *testing.T) {
	violations := map[string][]bwcore.Violation{
		"a.go": {{Severity: bwcore.SeverityWarning}},
	}
	assert.False(t, hasErrorSeverity(violations))
}

func TestSortedKeys(t *testing.T) {
	m := map[string][]bwcli.BlockListing{
		"z.go": nil,
		"a.go": nil,
	}
	assert.Equal(t, []string{"a.go", "z.go"}, sortedKeys(m))
}
