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
package bnb

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/gosimplex/simplex"
	"github.com/costela/gosimplex/standard"
)

const (
	delta = 0.0000001 // acceptable numerical deviation for test results
)

var orders = []Order{DepthFirst, BestBound}

func le(rhs float64, coefs ...float64) standard.Constraint {
	return standard.Constraint{Coefficients: coefs, Relation: standard.LessEqual, RHS: rhs}
}

func TestKnapsack(t *testing.T) {
	// the relaxation optimum (3, 1.5) rounds to an infeasible point
	p := standard.Problem{
		Objective:   []float64{5, 4},
		Constraints: []standard.Constraint{le(24, 6, 4), le(6, 1, 2)},
		Maximize:    true,
	}

	for _, o := range orders {
		t.Run(o.String(), func(t *testing.T) {
			res, err := Solve(context.Background(), p, []int{0, 1}, Options{Order: o})
			require.NoError(t, err)

			assert.Equal(t, simplex.Optimal, res.Status)
			assert.InDelta(t, 20, res.Value, delta)
			assert.Equal(t, []float64{4, 0}, res.X)
			assert.Greater(t, res.Nodes, 1)
			assert.Positive(t, res.Iterations)
		})
	}
}

func TestIntegerInfeasible(t *testing.T) {
	p := standard.Problem{
		Objective: []float64{1},
		Constraints: []standard.Constraint{
			{Coefficients: []float64{2}, Relation: standard.Equal, RHS: 1},
		},
	}

	res, err := Solve(context.Background(), p, []int{0}, Options{})
	require.NoError(t, err)

	assert.Equal(t, simplex.Infeasible, res.Status)
	assert.Equal(t, 3, res.Nodes)
	assert.Nil(t, res.X)
	assert.True(t, math.IsNaN(res.Value))
}

func TestNodeLimit(t *testing.T) {
	p := standard.Problem{
		Objective:   []float64{1, 1},
		Constraints: []standard.Constraint{le(3, 2, 2)},
		Maximize:    true,
	}

	res, err := Solve(context.Background(), p, []int{0, 1}, Options{MaxNodes: 1})
	require.NoError(t, err)

	assert.Equal(t, simplex.IterationLimit, res.Status)
	assert.Equal(t, 1, res.Nodes)
	assert.Nil(t, res.X)

	res, err = Solve(context.Background(), p, []int{0, 1}, Options{})
	require.NoError(t, err)
	assert.Equal(t, simplex.Optimal, res.Status)
	assert.InDelta(t, 1, res.Value, delta)
}

func TestUnbounded(t *testing.T) {
	p := standard.Problem{
		Objective:   []float64{1, 1},
		Constraints: []standard.Constraint{le(1, 1, -1)},
		Maximize:    true,
	}

	res, err := Solve(context.Background(), p, []int{0}, Options{})
	require.NoError(t, err)

	assert.Equal(t, simplex.Unbounded, res.Status)
	assert.True(t, math.IsInf(res.Value, 1))
	assert.Nil(t, res.X)
}

func TestContinuousPart(t *testing.T) {
	// only x is integral, y takes up the slack
	p := standard.Problem{
		Objective:   []float64{3, 1},
		Constraints: []standard.Constraint{le(5.5, 2, 1), le(2.5, 1, 0)},
		Maximize:    true,
	}

	res, err := Solve(context.Background(), p, []int{0}, Options{})
	require.NoError(t, err)

	assert.Equal(t, simplex.Optimal, res.Status)
	assert.InDelta(t, 2, res.X[0], delta)
	assert.InDelta(t, 1.5, res.X[1], delta)
	assert.InDelta(t, 7.5, res.Value, delta)
}

func TestTrace(t *testing.T) {
	p := standard.Problem{
		Objective:   []float64{5, 4},
		Constraints: []standard.Constraint{le(24, 6, 4), le(6, 1, 2)},
		Maximize:    true,
	}

	var trace []Node
	res, err := Solve(context.Background(), p, []int{0, 1}, Options{
		Trace: func(n Node) { trace = append(trace, n) },
	})
	require.NoError(t, err)

	require.NotEmpty(t, trace)
	assert.Equal(t, 0, trace[0].ID)
	assert.Equal(t, -1, trace[0].Parent)
	assert.Equal(t, Branched, trace[0].State)
	assert.InDelta(t, 21, trace[0].Relaxation, delta)

	incumbents := 0
	seen := make(map[int]bool)
	for _, n := range trace {
		assert.NotEqual(t, Open, n.State)
		assert.False(t, seen[n.ID], "node %d traced twice", n.ID)
		seen[n.ID] = true
		assert.Len(t, n.Changes, n.Depth)
		if n.State == Incumbent {
			incumbents++
		}
	}
	assert.Positive(t, incumbents)
	assert.GreaterOrEqual(t, len(trace), res.Nodes)
}

func TestInvalidIntegerIndex(t *testing.T) {
	p := standard.Problem{Objective: []float64{1}}

	_, err := Solve(context.Background(), p, []int{1}, Options{})
	require.Error(t, err)

	var malformed *standard.MalformedProblemError
	assert.True(t, errors.As(err, &malformed))
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := standard.Problem{Objective: []float64{1}, Constraints: []standard.Constraint{le(1.5, 1)}}
	_, err := Solve(ctx, p, []int{0}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestBruteForce compares random small integer programs against full
// enumeration of their integer points.
func TestBruteForce(t *testing.T) {
	const (
		n     = 3
		upper = 4
	)
	rnd := rand.New(rand.NewPCG(3, 4))

	for k := 0; k < 15; k++ {
		p := standard.Problem{Objective: make([]float64, n), Maximize: true}
		for j := range p.Objective {
			p.Objective[j] = 1 + 9*rnd.Float64()
		}
		for i := 0; i < 2; i++ {
			coefs := make([]float64, n)
			for j := range coefs {
				coefs[j] = 1 + 5*rnd.Float64()
			}
			p.Constraints = append(p.Constraints, le(5+15*rnd.Float64(), coefs...))
		}
		for j := 0; j < n; j++ {
			coefs := make([]float64, n)
			coefs[j] = 1
			p.Constraints = append(p.Constraints, le(upper, coefs...))
		}

		want := math.Inf(-1)
		x := make([]float64, n)
		var enumerate func(j int)
		enumerate = func(j int) {
			if j == n {
				for _, c := range p.Constraints {
					lhs := 0.0
					for i, a := range c.Coefficients {
						lhs += a * x[i]
					}
					if lhs > c.RHS+1e-9 {
						return
					}
				}
				value := 0.0
				for i, c := range p.Objective {
					value += c * x[i]
				}
				want = math.Max(want, value)
				return
			}
			for v := 0; v <= upper; v++ {
				x[j] = float64(v)
				enumerate(j + 1)
			}
		}
		enumerate(0)

		for _, o := range orders {
			res, err := Solve(context.Background(), p, []int{0, 1, 2}, Options{Order: o})
			require.NoError(t, err)

			assert.Equal(t, simplex.Optimal, res.Status, "problem %d", k)
			assert.InDelta(t, want, res.Value, 1e-6, "problem %d (%s)", k, o)
		}
	}
}
