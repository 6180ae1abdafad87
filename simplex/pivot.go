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
package simplex

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// iterate runs the pivot loop on the installed objective until it is
// optimal, unbounded or out of budget. eligible, when not nil, restricts
// the columns allowed to enter the basis.
func (s *solver) iterate(ctx context.Context, eligible func(c int) bool) (Status, error) {
	t := s.tab

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		c := s.entering(eligible)
		if c < 0 {
			return Optimal, nil
		}

		r := s.leaving(c)
		if r < 0 {
			s.opts.logf("simplex: column %d has no blocking row", t.Source(c))
			return Unbounded, nil
		}

		if s.iterations >= s.maxIter {
			return IterationLimit, nil
		}

		degenerate := t.RHS(r) <= s.tol
		if err := t.Pivot(r, c); err != nil {
			return 0, errors.Wrapf(err, "iteration %d", s.iterations)
		}
		s.iterations++
		s.track(degenerate)
	}
}

func (s *solver) useBland() bool {
	return s.opts.PivotRule == Bland || s.bland
}

// entering returns the column to enter the basis, or -1 at optimality.
func (s *solver) entering(eligible func(c int) bool) int {
	t := s.tab
	bland := s.useBland()

	best, bestCost := -1, -s.tol
	for c := 0; c < t.Cols(); c++ {
		if eligible != nil && !eligible(c) {
			continue
		}
		d := t.Cost(c)
		if d >= -s.tol {
			continue
		}
		if bland {
			return c
		}
		if d < bestCost {
			best, bestCost = c, d
		}
	}

	return best
}

// leaving runs the minimum ratio test on column c and returns the pivot
// row, or -1 if no entry of the column is positive. Ties go to the row
// whose basic variable has the lowest index.
func (s *solver) leaving(c int) int {
	t := s.tab

	row, best := -1, math.Inf(1)
	for r := 0; r < t.Rows(); r++ {
		a := t.At(r, c)
		if a <= s.tol {
			continue
		}
		ratio := math.Max(t.RHS(r), 0) / a

		switch {
		case row < 0 || ratio < best-s.tol:
			row, best = r, ratio
		case ratio <= best+s.tol && t.Source(t.BasicIn(r)) < t.Source(t.BasicIn(row)):
			row, best = r, math.Min(best, ratio)
		}
	}

	return row
}

// track counts consecutive degenerate pivots and toggles the temporary
// switch to Bland's rule.
func (s *solver) track(degenerate bool) {
	if !degenerate {
		if s.bland {
			s.opts.logf("simplex: leaving degenerate vertex after %d pivots", s.degenerate)
		}
		s.degenerate = 0
		s.bland = false
		return
	}

	s.degenerate++
	if !s.bland && s.opts.PivotRule == Dantzig && s.degenerate >= degenerateRun {
		s.opts.logf("simplex: %d degenerate pivots in a row, switching to Bland's rule", s.degenerate)
		s.bland = true
	}
}
