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
// Package bnb solves integer and mixed-integer linear programs by branch
// and bound over LP relaxations solved with the simplex package.
package bnb

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/costela/gosimplex/simplex"
	"github.com/costela/gosimplex/standard"
)

const (
	DefaultMaxNodes             = 10000
	DefaultIntegralityTolerance = 1e-6
)

// Options tune the search. The zero value is usable.
type Options struct {
	Order Order
	// MaxNodes caps the number of relaxations solved. Zero means
	// DefaultMaxNodes.
	MaxNodes int
	// IntegralityTolerance is the distance to the nearest integer below
	// which a value counts as integral. Zero means
	// DefaultIntegralityTolerance.
	IntegralityTolerance float64
	// Simplex is used for every relaxation.
	Simplex simplex.Options
	// Trace, if set, receives every node once its state is decided.
	Trace func(Node)
}

// Result is the outcome of an integer solve.
type Result struct {
	// Status is Optimal when the search completed with an incumbent,
	// Infeasible when it completed without one, Unbounded when a
	// relaxation was unbounded and IterationLimit when the search was
	// cut short.
	Status simplex.Status
	// Value and X describe the best integer solution found, NaN and nil
	// if there is none.
	Value float64
	X     []float64
	// Nodes counts solved relaxations, Iterations their pivots.
	Nodes      int
	Iterations int
}

type search struct {
	problem standard.Problem
	integer []bool
	opts    Options

	sense    float64
	intTol   float64
	tol      float64
	maxNodes int

	queue  queue
	nextID int

	nodes      int
	iterations int
	incomplete bool

	best float64 // incumbent value, minimization sense
	x    []float64
}

// Solve maximizes or minimizes p with the variables listed in integer
// restricted to integral values.
func Solve(ctx context.Context, p standard.Problem, integer []int, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating problem")
	}

	s := &search{
		problem:  p,
		integer:  make([]bool, p.NumVariables()),
		opts:     opts,
		sense:    1,
		intTol:   opts.IntegralityTolerance,
		tol:      opts.Simplex.Tolerance,
		maxNodes: opts.MaxNodes,
		queue:    newQueue(opts.Order),
		best:     math.Inf(1),
	}
	if p.Maximize {
		s.sense = -1
	}
	if s.intTol <= 0 {
		s.intTol = DefaultIntegralityTolerance
	}
	if s.tol <= 0 {
		s.tol = simplex.DefaultTolerance
	}
	if s.maxNodes <= 0 {
		s.maxNodes = DefaultMaxNodes
	}

	for _, j := range integer {
		if j < 0 || j >= len(s.integer) {
			return nil, &standard.MalformedProblemError{
				Constraint: -1,
				Reason:     fmt.Sprintf("integer variable %d out of range", j),
			}
		}
		s.integer[j] = true
	}

	if err := s.run(ctx); err != nil {
		return nil, err
	}

	return s.result(), nil
}

func (s *search) run(ctx context.Context) error {
	s.push(Node{Parent: -1, Bound: math.Inf(-1)})

	for s.queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := s.queue.pop()
		if s.x != nil && n.Bound >= s.best-s.tol {
			s.decide(n, Pruned)
			continue
		}
		if s.nodes >= s.maxNodes {
			s.logf("bnb: node limit %d reached with %d open nodes", s.maxNodes, s.queue.Len()+1)
			s.incomplete = true
			return nil
		}

		status, err := s.visit(ctx, n)
		if err != nil {
			return err
		}
		if status == simplex.Unbounded {
			s.logf("bnb: relaxation of node %d is unbounded", n.ID)
			s.x = nil
			s.best = math.Inf(-1)
			return nil
		}
	}

	return nil
}

// visit solves the relaxation of n and decides its fate.
func (s *search) visit(ctx context.Context, n Node) (simplex.Status, error) {
	rows, ok := s.boundRows(n.Changes)
	if !ok {
		s.decide(n, Infeasible)
		return simplex.Infeasible, nil
	}

	s.nodes++
	res, err := simplex.Solve(ctx, s.problem.WithConstraints(rows...), s.opts.Simplex)
	if err != nil {
		return 0, errors.Wrapf(err, "solving relaxation of node %d", n.ID)
	}
	s.iterations += res.Iterations

	switch {
	case res.Status == simplex.Unbounded:
		return res.Status, nil
	case res.Status == simplex.Infeasible:
		s.decide(n, Infeasible)
		return res.Status, nil
	case !res.Status.IsOptimal():
		s.logf("bnb: relaxation of node %d stopped with %s", n.ID, res.Status)
		s.incomplete = true
		s.decide(n, Pruned)
		return res.Status, nil
	}

	n.Relaxation = res.Value
	bound := s.sense * res.Value
	if s.x != nil && bound >= s.best-s.tol {
		s.decide(n, Pruned)
		return res.Status, nil
	}

	j := s.branchVariable(res.X)
	if j < 0 {
		s.accept(n, res.X)
		return res.Status, nil
	}

	v := res.X[j]
	s.decide(n, Branched)
	// the floor child is pushed last so depth-first explores it first
	s.push(n.child(BoundChange{Variable: j, Value: math.Ceil(v)}, bound))
	s.push(n.child(BoundChange{Variable: j, Upper: true, Value: math.Floor(v)}, bound))

	return res.Status, nil
}

// boundRows turns the accumulated bound changes into constraints, one
// per tightened bound. It reports false when some variable's bounds
// cross.
func (s *search) boundRows(changes []BoundChange) ([]standard.Constraint, bool) {
	type bounds struct{ lower, upper float64 }

	n := s.problem.NumVariables()
	tight := make(map[int]*bounds)
	var order []int
	for _, c := range changes {
		b, ok := tight[c.Variable]
		if !ok {
			b = &bounds{math.Inf(-1), math.Inf(1)}
			tight[c.Variable] = b
			order = append(order, c.Variable)
		}
		if c.Upper {
			b.upper = math.Min(b.upper, c.Value)
		} else {
			b.lower = math.Max(b.lower, c.Value)
		}
	}

	var rows []standard.Constraint
	for _, j := range order {
		b := tight[j]
		if b.lower > b.upper {
			return nil, false
		}
		coefs := make([]float64, n)
		coefs[j] = 1
		if b.lower == b.upper {
			rows = append(rows, standard.Constraint{Coefficients: coefs, Relation: standard.Equal, RHS: b.lower})
			continue
		}
		if !math.IsInf(b.upper, 1) {
			rows = append(rows, standard.Constraint{Coefficients: coefs, Relation: standard.LessEqual, RHS: b.upper})
		}
		if !math.IsInf(b.lower, -1) && (b.lower > 0 || s.problem.IsFree(j)) {
			rows = append(rows, standard.Constraint{Coefficients: coefs, Relation: standard.GreaterEqual, RHS: b.lower})
		}
	}

	return rows, true
}

// branchVariable returns the integer variable whose value is furthest
// from integral, or -1 if all of them are integral.
func (s *search) branchVariable(x []float64) int {
	best, bestDist := -1, s.intTol
	for j, v := range x {
		if !s.integer[j] {
			continue
		}
		frac := v - math.Floor(v)
		if dist := math.Min(frac, 1-frac); dist > bestDist {
			best, bestDist = j, dist
		}
	}
	return best
}

// accept rounds the integral relaxation solution of n and keeps it if it
// improves the incumbent.
func (s *search) accept(n Node, x []float64) {
	x = append([]float64(nil), x...)
	for j, v := range x {
		if s.integer[j] {
			x[j] = math.Round(v)
		}
	}

	value := s.sense * floats.Dot(s.problem.Objective, x)
	if s.x != nil && value >= s.best {
		s.decide(n, Pruned)
		return
	}

	s.logf("bnb: node %d is the new incumbent with value %g", n.ID, s.sense*value)
	s.best, s.x = value, x
	s.decide(n, Incumbent)
}

func (s *search) push(n Node) {
	n.ID = s.nextID
	n.Relaxation = math.NaN()
	s.nextID++
	s.queue.push(n)
}

func (s *search) decide(n Node, state NodeState) {
	n.State = state
	if s.opts.Trace != nil {
		s.opts.Trace(n)
	}
}

func (n Node) child(c BoundChange, bound float64) Node {
	changes := make([]BoundChange, len(n.Changes), len(n.Changes)+1)
	copy(changes, n.Changes)

	return Node{
		Parent:  n.ID,
		Depth:   n.Depth + 1,
		Changes: append(changes, c),
		Bound:   bound,
	}
}

func (s *search) result() *Result {
	res := &Result{
		Value:      math.NaN(),
		Nodes:      s.nodes,
		Iterations: s.iterations,
	}

	switch {
	case math.IsInf(s.best, -1):
		res.Status = simplex.Unbounded
		res.Value = math.Inf(-1)
		if s.problem.Maximize {
			res.Value = math.Inf(1)
		}
		return res
	case s.incomplete:
		res.Status = simplex.IterationLimit
	case s.x == nil:
		res.Status = simplex.Infeasible
	default:
		res.Status = simplex.Optimal
	}

	if s.x != nil {
		res.X = s.x
		res.Value = s.sense * s.best
	}

	return res
}

func (s *search) logf(format string, v ...interface{}) {
	if s.opts.Simplex.Logger == nil {
		return
	}
	s.opts.Simplex.Logger.Print(fmt.Sprintf(format, v...))
}
