package bwvalidate

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/logger"
)

var engineLog = logger.New("bwvalidate:engine")

// Engine runs a fixed validator set against a ValidationContext,
// mirroring the original per-validator task-per-validator concurrency
// model: every validator gets its own goroutine and sees the entire
// context, since a validator like affects needs visibility across
// files to tell whether a referenced block was itself modified.
type Engine struct {
	validators []Validator

	// MaxGoroutines bounds the pool. Zero means unbounded: validators
	// are few (one per registered rule) so there is no need to throttle
	// by default, but check-ai/check-lua instances spawn their own
	// internal concurrency and a caller may want to cap the outer pool
	// too when running against a very large repository.
	MaxGoroutines int
}

// New builds an Engine from the enabled validator set.
func New(validators []Validator) *Engine {
	return &Engine{validators: validators}
}

// Result is the per-file violation map returned by Run.
type Result struct {
	ViolationsByFile map[string][]bwcore.Violation
}

// Run executes every validator concurrently and merges their output.
// The first fatal error returned by any validator cancels the rest of
// the pool and is returned; partial violations collected before the
// failure are discarded, matching the "one bad validator fails the
// whole run" behavior of the system being ported.
func (e *Engine) Run(ctx context.Context, vctx *bwcore.ValidationContext) (*Result, error) {
	p := pool.New().WithContext(ctx).WithCancelOnError()
	if e.MaxGoroutines > 0 {
		p = p.WithMaxGoroutines(e.MaxGoroutines)
	}

	var mu sync.Mutex
	merged := map[string][]bwcore.Violation{}

	for _, v := range e.validators {
		v := v
		runID := uuid.NewString()
		p.Go(func(ctx context.Context) error {
			engineLog.Printf("run %s: starting validator %s", runID, v.Code())
			violations, err := v.Validate(ctx, vctx)
			if err != nil {
				engineLog.Printf("run %s: validator %s failed: %v", runID, v.Code(), err)
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for file, vs := range violations {
				merged[file] = append(merged[file], vs...)
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	for file, vs := range merged {
		sort.SliceStable(vs, func(i, j int) bool {
			return vs[i].Range.Start.Less(vs[j].Range.Start)
		})
		merged[file] = vs
	}

	return &Result{ViolationsByFile: merged}, nil
}
