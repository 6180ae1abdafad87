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
// Package simplex solves linear programs in standard form with the
// tableau simplex method. Two strategies for finding an initial feasible
// basis are available, Two-Phase and Big-M, both driving the same pivot
// loop.
package simplex

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/costela/gosimplex/standard"
	"github.com/costela/gosimplex/tableau"
)

// Solve converts p to standard form and optimizes it. Infeasible,
// unbounded and truncated runs are reported through Result.Status; an
// error is only returned for malformed input, a cancelled context or an
// internal failure.
func Solve(ctx context.Context, p standard.Problem, opts Options) (*Result, error) {
	f, err := standard.Convert(p)
	if err != nil {
		return nil, errors.Wrap(err, "converting to standard form")
	}

	return SolveForm(ctx, f, opts)
}

// SolveForm optimizes an already converted problem.
func SolveForm(ctx context.Context, f *standard.Form, opts Options) (*Result, error) {
	t, err := newTableau(f)
	if err != nil {
		return nil, err
	}

	s := &solver{
		form:    f,
		tab:     t,
		opts:    opts,
		tol:     opts.tolerance(),
		maxIter: opts.maxIterations(f.NumRows(), f.NumColumns()),
	}
	s.feasTol = s.tol
	for _, b := range f.B {
		s.feasTol = math.Max(s.feasTol, s.tol*math.Abs(b))
	}

	var status Status
	switch opts.Method {
	case TwoPhase:
		status, err = s.twoPhase(ctx)
	case BigM:
		status, err = s.bigM(ctx)
	default:
		return nil, errors.Errorf("unknown method %d", int(opts.Method))
	}
	if err != nil {
		return nil, err
	}

	res := s.result(status)
	opts.logf("simplex: %s after %d iterations (%s)", res.Status, res.Iterations, opts.Method)

	return res, nil
}

func newTableau(f *standard.Form) (*tableau.Tableau, error) {
	var a mat.Matrix
	if f.A != nil {
		a = f.A
	}
	t, err := tableau.New(a, f.B, f.Basis, f.NumColumns())
	if err != nil {
		return nil, errors.Wrap(err, "building tableau")
	}
	return t, nil
}

type solver struct {
	form *standard.Form
	tab  *tableau.Tableau
	opts Options

	tol     float64
	feasTol float64
	maxIter int

	iterations int
	phase1     int
	penalty    float64

	degenerate int  // consecutive degenerate pivots
	bland      bool // Bland's rule temporarily in force
}

func (s *solver) twoPhase(ctx context.Context) (Status, error) {
	f, t := s.form, s.tab

	if f.HasArtificial() {
		if err := s.installPhaseOne(); err != nil {
			return 0, err
		}

		s.opts.logf("simplex: phase 1 with %d rows, %d columns", t.Rows(), t.Cols())
		status, err := s.iterate(ctx, nil)
		s.phase1 = s.iterations
		if err != nil {
			return 0, err
		}
		switch status {
		case IterationLimit:
			return IterationLimit, nil
		case Unbounded:
			// the auxiliary objective is bounded below by zero
			return 0, errors.New("phase 1 reported an unbounded auxiliary problem")
		}

		if w := t.Objective(); w > s.feasTol {
			s.opts.logf("simplex: phase 1 ended with infeasibility %g", w)
			return Infeasible, nil
		}

		if err := s.expelArtificials(); err != nil {
			return 0, err
		}
		err = t.DropColumns(func(c int) bool {
			return f.Kinds[t.Source(c)] == standard.Artificial
		})
		if err != nil {
			return 0, errors.Wrap(err, "dropping artificial columns")
		}
	}

	costs := make([]float64, t.Cols())
	for c := range costs {
		costs[c] = f.C[t.Source(c)]
	}
	if err := t.SetObjective(costs); err != nil {
		return 0, errors.Wrap(err, "installing phase 2 objective")
	}

	s.opts.logf("simplex: phase 2 with %d rows, %d columns", t.Rows(), t.Cols())
	return s.iterate(ctx, nil)
}

// installPhaseOne prices the tableau with unit costs on the artificial
// columns.
func (s *solver) installPhaseOne() error {
	t := s.tab
	costs := make([]float64, t.Cols())
	for c := range costs {
		if s.form.Kinds[t.Source(c)] == standard.Artificial {
			costs[c] = 1
		}
	}
	return errors.Wrap(t.SetObjective(costs), "installing phase 1 objective")
}

// expelArtificials pivots every artificial still basic at zero level out
// of the basis. Rows where no other column can take its place are
// linearly dependent on the others and are removed.
func (s *solver) expelArtificials() error {
	f, t := s.form, s.tab

	for r := 0; r < t.Rows(); {
		if f.Kinds[t.Source(t.BasicIn(r))] != standard.Artificial {
			r++
			continue
		}

		col := -1
		for c := 0; c < t.Cols(); c++ {
			if f.Kinds[t.Source(c)] != standard.Artificial && math.Abs(t.At(r, c)) > s.tol {
				col = c
				break
			}
		}
		if col < 0 {
			s.opts.logf("simplex: removing redundant row %d", t.SourceRow(r))
			t.DropRow(r)
			continue
		}

		if err := t.Pivot(r, col); err != nil {
			return errors.Wrap(err, "expelling artificial variable")
		}
		s.iterations++
		r++
	}

	return nil
}

func (s *solver) bigM(ctx context.Context) (Status, error) {
	f, t := s.form, s.tab

	costs := append([]float64(nil), f.C...)
	if f.HasArtificial() {
		s.penalty = s.opts.bigM(f)
		for c := range costs {
			if f.Kinds[c] == standard.Artificial {
				costs[c] = s.penalty
			}
		}
	}
	if err := t.SetObjective(costs); err != nil {
		return 0, errors.Wrap(err, "installing penalized objective")
	}

	s.opts.logf("simplex: big-m with M=%g, %d rows, %d columns", s.penalty, t.Rows(), t.Cols())
	// an artificial that left the basis is never useful again
	status, err := s.iterate(ctx, func(c int) bool {
		return f.Kinds[c] != standard.Artificial
	})
	if err != nil {
		return 0, err
	}
	switch {
	case status == Optimal && s.artificialInBasis():
		s.opts.logf("simplex: artificial variable left in basis, problem is infeasible")
		return Infeasible, nil
	case status == Unbounded && s.artificialBasic():
		// the ray may belong to the penalized problem only
		return s.checkUnbounded(ctx)
	}

	return status, nil
}

// checkUnbounded decides an unbounded Big-M run that still holds an
// artificial in the basis by running phase 1 on a fresh tableau.
func (s *solver) checkUnbounded(ctx context.Context) (Status, error) {
	t, err := newTableau(s.form)
	if err != nil {
		return 0, err
	}

	check := &solver{
		form:    s.form,
		tab:     t,
		opts:    s.opts,
		tol:     s.tol,
		feasTol: s.feasTol,
		maxIter: s.maxIter,
	}
	if err := check.installPhaseOne(); err != nil {
		return 0, err
	}

	status, err := check.iterate(ctx, nil)
	s.iterations += check.iterations
	s.phase1 += check.iterations
	if err != nil {
		return 0, err
	}
	if status == IterationLimit {
		return IterationLimit, nil
	}

	if w := t.Objective(); w > s.feasTol {
		s.opts.logf("simplex: penalized problem is unbounded but infeasibility is %g", w)
		return Infeasible, nil
	}
	return Unbounded, nil
}

// artificialBasic reports whether some artificial column is basic at any
// level.
func (s *solver) artificialBasic() bool {
	f, t := s.form, s.tab
	for r := 0; r < t.Rows(); r++ {
		if f.Kinds[t.Source(t.BasicIn(r))] == standard.Artificial {
			return true
		}
	}
	return false
}

// artificialInBasis reports whether some artificial column is basic at a
// non-zero level.
func (s *solver) artificialInBasis() bool {
	f, t := s.form, s.tab
	for r := 0; r < t.Rows(); r++ {
		if f.Kinds[t.Source(t.BasicIn(r))] == standard.Artificial && t.RHS(r) > s.feasTol {
			return true
		}
	}
	return false
}

// hasAlternative reports whether the optimal tableau admits another
// optimal point: some non-basic column with zero reduced cost can enter
// and move the solution. A zero reduced cost whose ratio test only allows
// a degenerate step leads to the same vertex and does not count, nor does
// the mirror of a basic free variable.
func (s *solver) hasAlternative() bool {
	f, t := s.form, s.tab
	for c := 0; c < t.Cols(); c++ {
		src := t.Source(c)
		if t.IsBasic(c) || f.Kinds[src] == standard.Artificial {
			continue
		}
		if p := f.Partner(src); p >= 0 {
			if pc := t.Column(p); pc >= 0 && t.IsBasic(pc) {
				continue
			}
		}
		if math.Abs(t.Cost(c)) > s.tol {
			continue
		}
		if r := s.leaving(c); r < 0 || t.RHS(r) > s.tol {
			return true
		}
	}
	return false
}

func (s *solver) result(status Status) *Result {
	f, t := s.form, s.tab

	res := &Result{
		Status:           status,
		Value:            math.NaN(),
		Iterations:       s.iterations,
		Phase1Iterations: s.phase1,
		Method:           s.opts.Method,
		BigM:             s.penalty,
		Form:             f,
		Tableau:          t,
	}

	switch status {
	case Unbounded:
		res.Value = math.Inf(-1)
		if f.Maximize {
			res.Value = math.Inf(1)
		}
		return res
	case Infeasible:
		return res
	case IterationLimit:
		// only report the current vertex when it is feasible
		if s.artificialInBasis() {
			return res
		}
	case Optimal:
		if s.hasAlternative() {
			res.Status = MultipleOptima
		}
	}

	res.X = f.Recover(t.Solution(f.NumColumns()))
	res.Value = f.Value(res.X)

	return res
}
