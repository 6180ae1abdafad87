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
package simplex_test

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/costela/gosimplex/sensitivity"
	"github.com/costela/gosimplex/simplex"
	"github.com/costela/gosimplex/standard"
)

// randomMixed builds a minimization with ≤, ≥ and = rows and non-zero
// integer coefficients.
func randomMixed(rnd *rand.Rand) standard.Problem {
	n := 2 + rnd.IntN(3)
	m := 1 + rnd.IntN(4)

	p := standard.Problem{Objective: make([]float64, n)}
	for j := range p.Objective {
		p.Objective[j] = float64(rnd.IntN(11) - 5)
	}

	for i := 0; i < m; i++ {
		c := standard.Constraint{
			Coefficients: make([]float64, n),
			RHS:          float64(rnd.IntN(17) - 6),
		}
		for j := range c.Coefficients {
			v := float64(1 + rnd.IntN(4))
			if rnd.IntN(2) == 0 {
				v = -v
			}
			c.Coefficients[j] = v
		}
		switch rnd.IntN(5) {
		case 0, 1:
			c.Relation = standard.LessEqual
		case 2, 3:
			c.Relation = standard.GreaterEqual
		default:
			c.Relation = standard.Equal
		}
		p.Constraints = append(p.Constraints, c)
	}

	return p
}

// equalityForm adds one slack or surplus column per inequality row, the
// input lp.Simplex expects.
func equalityForm(p standard.Problem) (c []float64, a *mat.Dense, b []float64) {
	n := len(p.Objective)
	cols := n
	for _, con := range p.Constraints {
		if con.Relation != standard.Equal {
			cols++
		}
	}

	c = make([]float64, cols)
	copy(c, p.Objective)
	a = mat.NewDense(len(p.Constraints), cols, nil)
	b = make([]float64, len(p.Constraints))

	extra := n
	for i, con := range p.Constraints {
		for j, v := range con.Coefficients {
			a.Set(i, j, v)
		}
		switch con.Relation {
		case standard.LessEqual:
			a.Set(i, extra, 1)
			extra++
		case standard.GreaterEqual:
			a.Set(i, extra, -1)
			extra++
		}
		b[i] = con.RHS
	}

	return c, a, b
}

func gonumSimplex(c []float64, a *mat.Dense, b []float64) (opt float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lp.Simplex panicked: %v", r)
		}
	}()

	opt, _, err = lp.Simplex(append([]float64(nil), c...), mat.DenseCopyOf(a), append([]float64(nil), b...), 1e-10, nil)
	return opt, err
}

// expectedStatus classifies p with gonum. lp.Simplex may call an infeasible
// problem unbounded, so an unbounded answer is only trusted once a zero
// objective finds a feasible point.
func expectedStatus(p standard.Problem) (simplex.Status, float64, bool) {
	c, a, b := equalityForm(p)

	opt, err := gonumSimplex(c, a, b)
	switch {
	case err == nil:
		return simplex.Optimal, opt, true
	case errors.Is(err, lp.ErrInfeasible):
		return simplex.Infeasible, 0, true
	case !errors.Is(err, lp.ErrUnbounded):
		return 0, 0, false
	}

	_, err = gonumSimplex(make([]float64, len(c)), a, b)
	switch {
	case err == nil:
		return simplex.Unbounded, 0, true
	case errors.Is(err, lp.ErrInfeasible):
		return simplex.Infeasible, 0, true
	default:
		return 0, 0, false
	}
}

func assertFeasible(t *testing.T, p standard.Problem, x []float64, k int) {
	t.Helper()

	for j, v := range x {
		assert.GreaterOrEqual(t, v, -1e-9, "problem %d: x[%d]", k, j)
	}
	for i, con := range p.Constraints {
		var lhs float64
		for j, v := range con.Coefficients {
			lhs += v * x[j]
		}
		switch con.Relation {
		case standard.LessEqual:
			assert.LessOrEqual(t, lhs, con.RHS+1e-6, "problem %d: row %d", k, i)
		case standard.GreaterEqual:
			assert.GreaterOrEqual(t, lhs, con.RHS-1e-6, "problem %d: row %d", k, i)
		default:
			assert.InDelta(t, con.RHS, lhs, 1e-6, "problem %d: row %d", k, i)
		}
	}
}

func TestMixedRelationsAgainstGonum(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))
	seen := map[simplex.Status]int{}

	for k := 0; k < 200; k++ {
		p := randomMixed(rnd)

		want, value, ok := expectedStatus(p)
		if !ok {
			continue
		}
		seen[want]++

		for _, method := range []simplex.Method{simplex.TwoPhase, simplex.BigM} {
			res, err := simplex.Solve(context.Background(), p, simplex.Options{Method: method})
			require.NoError(t, err)

			if want != simplex.Optimal {
				assert.Equal(t, want, res.Status, "problem %d (%s)", k, method)
				continue
			}

			require.True(t, res.Status.IsOptimal(), "problem %d (%s): %s", k, method, res.Status)
			assert.InDelta(t, value, res.Value, 1e-6*(1+math.Abs(value)), "problem %d (%s)", k, method)
			assertFeasible(t, p, res.X, k)

			rep, err := sensitivity.Analyze(res, 0)
			require.NoError(t, err)
			assert.InDelta(t, res.Value, rep.DualObjective(), 1e-5*(1+math.Abs(res.Value)), "problem %d (%s)", k, method)
		}
	}

	assert.Positive(t, seen[simplex.Optimal])
	assert.Positive(t, seen[simplex.Infeasible])
}
