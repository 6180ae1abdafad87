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

package standard

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ColumnKind tells what a column of the standard form stands for.
type ColumnKind int

const (
	// Structural columns are the problem's own variables (the x⁺ part
	// of a free variable).
	Structural ColumnKind = iota
	// Mirror columns hold the x⁻ part of a free variable.
	Mirror
	Slack
	Surplus
	Artificial
)

func (k ColumnKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Mirror:
		return "mirror"
	case Slack:
		return "slack"
	case Surplus:
		return "surplus"
	case Artificial:
		return "artificial"
	default:
		return "unknown"
	}
}

// Form is a problem in canonical minimization form. Columns are laid out
// as structural variables, mirrors of free variables, slack and surplus
// columns in row order, and finally artificial columns in row order.
type Form struct {
	A *mat.Dense
	B []float64
	// C holds the minimization costs; zero for every auxiliary column.
	C []float64

	Kinds []ColumnKind
	// Owners maps every column to the variable it belongs to (structural
	// and mirror columns) or the row it was added for (all other kinds).
	Owners []int

	// Negated marks rows multiplied by -1 because of a negative RHS.
	Negated []bool
	// Relations holds each row's relation after normalization.
	Relations []Relation
	// Auxiliary holds the slack or surplus column of each row, or -1.
	Auxiliary []int
	// Artificials holds the artificial column of each row, or -1.
	Artificials []int
	// Mirrors holds the mirror column of each variable, or -1.
	Mirrors []int

	// Basis is the initial feasible basis of the auxiliary problem: one
	// slack or artificial column per row.
	Basis []int

	// Objective is the caller's objective, kept to report values in
	// the caller's sense.
	Objective []float64
	Maximize  bool
}

// Convert normalizes p into canonical form. Rows with a negative RHS are
// negated first, then ≤ rows receive a slack column, ≥ rows a surplus and
// an artificial column, and = rows an artificial column.
func Convert(p Problem) (*Form, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.NumVariables()
	m := len(p.Constraints)

	f := &Form{
		B:           make([]float64, m),
		Negated:     make([]bool, m),
		Relations:   make([]Relation, m),
		Auxiliary:   make([]int, m),
		Artificials: make([]int, m),
		Mirrors:     make([]int, n),
		Basis:       make([]int, m),
		Objective:   append([]float64(nil), p.Objective...),
		Maximize:    p.Maximize,
	}

	rows := make([][]float64, m)
	for i, c := range p.Constraints {
		rows[i] = append([]float64(nil), c.Coefficients...)
		f.B[i] = c.RHS
		f.Relations[i] = c.Relation
		if c.RHS < 0 {
			floats.Scale(-1, rows[i])
			f.B[i] = -c.RHS
			f.Relations[i] = c.Relation.flip()
			f.Negated[i] = true
		}
	}

	// lay out the columns before allocating the matrix
	for j := 0; j < n; j++ {
		f.Kinds = append(f.Kinds, Structural)
		f.Owners = append(f.Owners, j)
	}
	for j := 0; j < n; j++ {
		f.Mirrors[j] = -1
		if p.IsFree(j) {
			f.Mirrors[j] = len(f.Kinds)
			f.Kinds = append(f.Kinds, Mirror)
			f.Owners = append(f.Owners, j)
		}
	}
	for i := 0; i < m; i++ {
		f.Auxiliary[i] = -1
		switch f.Relations[i] {
		case LessEqual:
			f.Auxiliary[i] = len(f.Kinds)
			f.Kinds = append(f.Kinds, Slack)
			f.Owners = append(f.Owners, i)
		case GreaterEqual:
			f.Auxiliary[i] = len(f.Kinds)
			f.Kinds = append(f.Kinds, Surplus)
			f.Owners = append(f.Owners, i)
		}
	}
	for i := 0; i < m; i++ {
		f.Artificials[i] = -1
		if f.Relations[i] != LessEqual {
			f.Artificials[i] = len(f.Kinds)
			f.Kinds = append(f.Kinds, Artificial)
			f.Owners = append(f.Owners, i)
		}
	}

	cols := len(f.Kinds)
	f.C = make([]float64, cols)
	for j, c := range p.Objective {
		if p.Maximize {
			c = -c
		}
		f.C[j] = c
		if mj := f.Mirrors[j]; mj >= 0 {
			f.C[mj] = -c
		}
	}

	if m == 0 {
		return f, nil
	}

	f.A = mat.NewDense(m, cols, nil)
	for i, row := range rows {
		for j, a := range row {
			f.A.Set(i, j, a)
			if mj := f.Mirrors[j]; mj >= 0 {
				f.A.Set(i, mj, -a)
			}
		}
		switch f.Relations[i] {
		case LessEqual:
			f.A.Set(i, f.Auxiliary[i], 1)
			f.Basis[i] = f.Auxiliary[i]
		case GreaterEqual:
			f.A.Set(i, f.Auxiliary[i], -1)
			f.A.Set(i, f.Artificials[i], 1)
			f.Basis[i] = f.Artificials[i]
		case Equal:
			f.A.Set(i, f.Artificials[i], 1)
			f.Basis[i] = f.Artificials[i]
		}
	}

	return f, nil
}

// NumRows returns the number of constraint rows.
func (f *Form) NumRows() int {
	return len(f.B)
}

// NumColumns returns the total number of columns, auxiliary ones included.
func (f *Form) NumColumns() int {
	return len(f.Kinds)
}

// NumVariables returns the number of variables of the original problem.
func (f *Form) NumVariables() int {
	return len(f.Objective)
}

// HasArtificial reports whether any row needed an artificial column.
func (f *Form) HasArtificial() bool {
	for _, a := range f.Artificials {
		if a >= 0 {
			return true
		}
	}
	return false
}

// Partner returns the column paired with col through a free-variable
// split, or -1 when col is not part of a split.
func (f *Form) Partner(col int) int {
	switch f.Kinds[col] {
	case Structural:
		return f.Mirrors[f.Owners[col]]
	case Mirror:
		return f.Owners[col]
	default:
		return -1
	}
}

// Recover maps a solution over the form's columns back onto the original
// variables, recombining split free variables.
func (f *Form) Recover(cols []float64) []float64 {
	x := make([]float64, f.NumVariables())
	for j := range x {
		x[j] = cols[j]
		if mj := f.Mirrors[j]; mj >= 0 {
			x[j] -= cols[mj]
		}
	}
	return x
}

// Value evaluates the caller's objective at x.
func (f *Form) Value(x []float64) float64 {
	return floats.Dot(f.Objective, x)
}
