/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/
package gosimplex

import (
	"math"

	"github.com/costela/gosimplex/sensitivity"
	"github.com/costela/gosimplex/simplex"
	"github.com/costela/gosimplex/standard"
)

/* Types */

type SolveResult struct {
	status     SolveStatus
	value      float64
	values     []float64
	iterations int
	nodes      int
	report     *Sensitivity
}

type SolveStatus = simplex.Status

const (
	SolutionOptimal        = simplex.Optimal
	SolutionMultipleOptima = simplex.MultipleOptima
	SolutionInfeasible     = simplex.Infeasible
	SolutionUnbounded      = simplex.Unbounded
	SolutionIterationLimit = simplex.IterationLimit
)

type SolveError int

const (
	ErrModelInfeasible SolveError = iota + 1
	ErrModelUnbounded
	ErrIterationLimit
)

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrModelInfeasible:
		return "model is infeasible"
	case ErrModelUnbounded:
		return "model is unbounded"
	case ErrIterationLimit:
		return "iteration limit reached before an optimal solution was found"
	default:
		panic("unrecognized error")
	}
}

// MalformedProblemError is returned for problems whose shape or data
// cannot be solved, e.g. mismatched dimensions or non-finite values.
type MalformedProblemError = standard.MalformedProblemError

type Interval = sensitivity.Interval

// Sensitivity describes how the optimal solution of a linear model
// reacts to changes in its data. Entries are indexed like the model's
// variables and constraints.
type Sensitivity struct {
	ShadowPrices    []float64
	ReducedCosts    []float64
	ObjectiveRanges []Interval
	RHSRanges       []Interval
}

// Status reports how the solve terminated. Only SolutionOptimal and
// SolutionMultipleOptima carry an optimal solution.
func (res SolveResult) Status() SolveStatus {
	return res.status
}

// Err maps non-optimal statuses to a SolveError, for callers who prefer
// error flow over status checks.
func (res SolveResult) Err() error {
	switch res.status {
	case SolutionInfeasible:
		return ErrModelInfeasible
	case SolutionUnbounded:
		return ErrModelUnbounded
	case SolutionIterationLimit:
		return ErrIterationLimit
	default:
		return nil
	}
}

// Value returns the computed value of the given variable for this
// optimization result.
// This is a shorthand for PrimalValue.
func (res SolveResult) Value(v *Variable) float64 {
	return res.PrimalValue(v)
}

// PrimalValue returns the computed value of the given variable for
// this optimization result, or NaN if the solve found no solution.
func (res SolveResult) PrimalValue(v *Variable) float64 {
	if res.values == nil {
		return math.NaN()
	}
	return res.values[v.index]
}

// Values returns the values of all variables in the order they were
// added to the model.
func (res SolveResult) Values() []float64 {
	return append([]float64(nil), res.values...)
}

// DualValue returns the reduced cost of the given variable in this
// optimization result. It is NaN unless the model was solved with
// WithSensitivity.
func (res SolveResult) DualValue(v *Variable) float64 {
	if res.report == nil {
		return math.NaN()
	}
	return res.report.ReducedCosts[v.index]
}

// ShadowPrice returns the dual value of the i-th constraint row. It is
// NaN unless the model was solved with WithSensitivity.
func (res SolveResult) ShadowPrice(i int) float64 {
	if res.report == nil {
		return math.NaN()
	}
	return res.report.ShadowPrices[i]
}

// Sensitivity returns the full sensitivity report, nil unless the model
// was solved with WithSensitivity and the solution is optimal.
func (res SolveResult) Sensitivity() *Sensitivity {
	return res.report
}

// ObjectiveValue returns the value of the objective function for
// this optimization result. This value is only optimal if Status
// also returns SolutionOptimal or SolutionMultipleOptima.
func (res SolveResult) ObjectiveValue() float64 {
	return res.value
}

// Iterations returns the number of simplex pivots, summed over all
// relaxations for integer models.
func (res SolveResult) Iterations() int {
	return res.iterations
}

// Nodes returns the number of branch-and-bound nodes solved, zero for
// linear models.
func (res SolveResult) Nodes() int {
	return res.nodes
}
