package gosimplex

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/costela/gosimplex/bnb"
	"github.com/costela/gosimplex/sensitivity"
	"github.com/costela/gosimplex/simplex"
)

const methodBranchAndBound = "branch-and-bound"

// SolveWithContext wraps Solve() with a context. If the context is cancelled or times out, the solution search will be
// aborted and the context error will be returned.
func (model *Model) SolveWithContext(ctx context.Context) (res *SolveResult, err error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	start := time.Now()
	l := model.lower()

	method := model.config.Method.String()
	if len(l.integer) > 0 {
		method = methodBranchAndBound
		res, err = model.solveInteger(ctx, l)
	} else {
		res, err = model.solveLinear(ctx, l)
	}
	if err != nil {
		return nil, err
	}

	model.metrics.observe(method, res, time.Since(start))
	model.logger.Print(fmt.Sprintf("model %q: %s with objective %g (%s, %d iterations)",
		model.name, res.status, res.value, method, res.iterations))

	return res, nil
}

func (model *Model) solveLinear(ctx context.Context, l *lowering) (*SolveResult, error) {
	r, err := simplex.Solve(ctx, l.problem, model.config.simplexOptions(model.logger))
	if err != nil {
		return nil, err
	}

	res := &SolveResult{
		status:     r.Status,
		value:      r.Value,
		iterations: r.Iterations,
	}
	if r.X != nil {
		res.values = l.recover(r.X)
		res.value = model.objective(res.values)
	}

	if model.config.Sensitivity && r.Status.IsOptimal() {
		rep, err := sensitivity.Analyze(r, model.config.Tolerance)
		if err != nil {
			return nil, errors.Wrap(err, "analyzing sensitivity")
		}
		res.report = l.sensitivity(rep)
	}

	return res, nil
}

func (model *Model) solveInteger(ctx context.Context, l *lowering) (*SolveResult, error) {
	r, err := bnb.Solve(ctx, l.problem, l.integer, model.config.bnbOptions(model.logger))
	if err != nil {
		return nil, err
	}

	res := &SolveResult{
		status:     r.Status,
		value:      r.Value,
		iterations: r.Iterations,
		nodes:      r.Nodes,
	}
	if r.X != nil {
		res.values = l.recover(r.X)
		res.value = model.objective(res.values)
	}

	return res, nil
}
