package bwcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantOK  bool
	}{
		{"", SeverityError, true},
		{"error", SeverityError, true},
		{"Error", SeverityError, true},
		{"warning", SeverityWarning, true},
		{"WARNING", SeverityWarning, true},
		{"info", SeverityInfo, true},
		{"hint", SeverityHint, true},
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSeverity(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "hint", SeverityHint.String())
}

func TestMaxSeverity(t *testing.T) {
	assert.Equal(t, Severity(0), MaxSeverity(nil))

	violations := []Violation{
		{Severity: SeverityHint},
		{Severity: SeverityError},
		{Severity: SeverityWarning},
	}
	assert.Equal(t, SeverityError, MaxSeverity(violations))
}
