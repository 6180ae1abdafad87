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

	"gonum.org/v1/gonum/floats"

	"github.com/costela/gosimplex/sensitivity"
	"github.com/costela/gosimplex/standard"
)

// lowering is a model rewritten over non-negative variables. Every
// model variable x maps to a solver variable y by x = shift + sign·y:
// a finite lower bound L gives x = L + y, an upper bound U alone gives
// x = U − y, and variables without bounds stay free. A finite upper
// bound next to a finite lower bound becomes an extra row y ≤ U − L,
// appended after the model's own rows.
type lowering struct {
	problem standard.Problem
	integer []int

	shift []float64
	sign  []float64

	rows     int       // number of model rows at the top of problem
	rowShift []float64 // Σ a·shift per model row
}

// lower builds the solver problem; the caller must hold the read lock.
func (model *Model) lower() *lowering {
	n, m := len(model.vars), len(model.rows)

	l := &lowering{
		shift:    make([]float64, n),
		sign:     make([]float64, n),
		rows:     m,
		rowShift: make([]float64, m),
	}
	p := standard.Problem{
		Objective:   make([]float64, n),
		Constraints: make([]standard.Constraint, 0, m),
		Maximize:    model.dir == Maximize,
		Free:        make([]bool, n),
	}

	var bounds []standard.Constraint
	for j, v := range model.vars {
		lower, upper := v.effectiveBounds()
		l.sign[j] = 1

		switch {
		case !math.IsInf(lower, -1):
			l.shift[j] = lower
			if !math.IsInf(upper, 1) {
				coefs := make([]float64, n)
				coefs[j] = 1
				bounds = append(bounds, standard.Constraint{
					Coefficients: coefs,
					Relation:     standard.LessEqual,
					RHS:          upper - lower,
				})
			}
		case !math.IsInf(upper, 1):
			l.shift[j], l.sign[j] = upper, -1
		default:
			p.Free[j] = true
		}

		p.Objective[j] = l.sign[j] * v.coefficient
		if v.isInteger() {
			l.integer = append(l.integer, j)
		}
	}

	for i, r := range model.rows {
		coefs := make([]float64, n)
		for k, j := range r.vars {
			coefs[j] += l.sign[j] * r.coefs[k]
			l.rowShift[i] += r.coefs[k] * l.shift[j]
		}
		p.Constraints = append(p.Constraints, standard.Constraint{
			Coefficients: coefs,
			Relation:     r.relation,
			RHS:          r.rhs - l.rowShift[i],
		})
	}
	p.Constraints = append(p.Constraints, bounds...)

	l.problem = p
	return l
}

// recover maps solver values back onto model variables.
func (l *lowering) recover(y []float64) []float64 {
	x := make([]float64, len(y))
	for j := range y {
		x[j] = l.shift[j] + l.sign[j]*y[j]
	}
	return x
}

// sensitivity maps a report on the solver problem back onto the model.
// Bound rows are internal and left out.
func (l *lowering) sensitivity(rep *sensitivity.Report) *Sensitivity {
	n := len(l.shift)
	s := &Sensitivity{
		ShadowPrices:    append([]float64(nil), rep.ShadowPrices[:l.rows]...),
		ReducedCosts:    make([]float64, n),
		ObjectiveRanges: make([]Interval, n),
		RHSRanges:       make([]Interval, l.rows),
	}

	for j := 0; j < n; j++ {
		s.ReducedCosts[j] = l.sign[j] * rep.ReducedCosts[j]
		r := rep.ObjectiveRanges[j]
		if l.sign[j] < 0 {
			r = Interval{Lower: -r.Upper, Upper: -r.Lower}
		}
		s.ObjectiveRanges[j] = r
	}
	for i := 0; i < l.rows; i++ {
		r := rep.RHSRanges[i]
		s.RHSRanges[i] = Interval{Lower: r.Lower + l.rowShift[i], Upper: r.Upper + l.rowShift[i]}
	}

	return s
}

// objective evaluates the model's objective at x; the caller must hold
// the read lock.
func (model *Model) objective(x []float64) float64 {
	c := make([]float64, len(model.vars))
	for j, v := range model.vars {
		c[j] = v.coefficient
	}
	return floats.Dot(c, x)
}
