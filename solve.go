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
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/costela/gosimplex/standard"
)

type Relation = standard.Relation

const (
	LessEqual    = standard.LessEqual
	GreaterEqual = standard.GreaterEqual
	Equal        = standard.Equal
)

// Constraint is one row Σ Coefficients[j]·x[j] Relation RHS of a
// problem passed to Solve or SolveInteger.
type Constraint = standard.Constraint

// ParseRelation reads "<=", ">=" or "=" and their common spellings.
func ParseRelation(s string) (Relation, error) {
	return standard.ParseRelation(s)
}

// Solve optimizes objective over non-negative variables subject to
// constraints. Options are the same as for NewModel.
func Solve(objective []float64, constraints []Constraint, maximize bool, opts ...Option) (*SolveResult, error) {
	return SolveInteger(objective, constraints, maximize, nil, opts...)
}

// SolveInteger is Solve with the variables at the given indices
// restricted to integer values.
func SolveInteger(objective []float64, constraints []Constraint, maximize bool, integerVariables []int, opts ...Option) (*SolveResult, error) {
	p := standard.Problem{
		Objective:   objective,
		Constraints: constraints,
		Maximize:    maximize,
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid problem")
	}

	dir := Minimize
	if maximize {
		dir = Maximize
	}
	model, err := NewModel("", dir, opts...)
	if err != nil {
		return nil, err
	}

	vars := make([]*Variable, len(objective))
	for j, c := range objective {
		if vars[j], err = model.AddDefinedVariable("", ContinuousVariable, c, 0, math.Inf(1)); err != nil {
			return nil, err
		}
	}
	for _, j := range integerVariables {
		if j < 0 || j >= len(vars) {
			return nil, errors.Wrap(&MalformedProblemError{
				Constraint: -1,
				Reason:     fmt.Sprintf("integer variable %d out of range", j),
			}, "invalid problem")
		}
		vars[j].SetType(IntegerVariable)
	}
	for _, c := range constraints {
		if err := model.AddRelation(vars, c.Coefficients, c.Relation, c.RHS); err != nil {
			return nil, err
		}
	}

	return model.Solve()
}
