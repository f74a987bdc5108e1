// Package bwvalidate implements the Validator Engine component (spec.md
// §4.6): running every enabled validator concurrently against the full
// ValidationContext and aggregating the violations they report.
package bwvalidate

import (
	"context"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// Validator is implemented by every rule in pkg/bwvalidators. Each
// validator receives the whole ValidationContext rather than one block
// at a time: affects needs to know whether a referenced block anywhere
// in the tree was itself content-modified, so filtering down to a
// single block up front would throw away information a validator may
// need.
type Validator interface {
	// Code identifies the validator for the "-D code" disable flag and
	// for the violation's Code field.
	Code() string

	// Validate inspects every block in vctx that carries this
	// validator's attribute and returns violations grouped by file. A
	// returned error is fatal to the whole run (spec.md §4.6).
	Validate(ctx context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error)
}
