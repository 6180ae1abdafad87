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
// Package sensitivity derives duality information from an optimal
// simplex result: shadow prices, reduced costs and the ranges over which
// objective coefficients and right-hand sides may move without changing
// the optimal basis.
package sensitivity

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/costela/gosimplex/simplex"
	"github.com/costela/gosimplex/standard"
)

// NonOptimalTableauError is returned when the analyzed result did not
// end in an optimal basis.
type NonOptimalTableauError struct {
	Status simplex.Status
}

func (e *NonOptimalTableauError) Error() string {
	return fmt.Sprintf("sensitivity analysis needs an optimal basis, solve ended with %s", e.Status)
}

// Interval is a closed range; either end may be infinite.
type Interval struct {
	Lower, Upper float64
}

// Contains reports whether v lies in the interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.Lower, i.Upper)
}

// Report holds the analysis in the caller's terms: per constraint and per
// variable of the original problem, with signs matching the caller's
// objective sense and constraint orientation.
type Report struct {
	// ShadowPrices is the change of the optimal value per unit increase
	// of each constraint's right-hand side.
	ShadowPrices []float64
	// ReducedCosts is cⱼ − yᵗAⱼ per variable, zero for basic variables.
	ReducedCosts []float64
	// ObjectiveRanges bounds each objective coefficient.
	ObjectiveRanges []Interval
	// RHSRanges bounds each right-hand side.
	RHSRanges []Interval
	// Basic marks the variables in the optimal basis.
	Basic []bool

	rhs []float64
}

// DualObjective evaluates the dual objective Σ yᵢbᵢ, which equals the
// optimal value by strong duality.
func (r *Report) DualObjective() float64 {
	var sum float64
	for i, y := range r.ShadowPrices {
		sum += y * r.rhs[i]
	}
	return sum
}

type analysis struct {
	form *standard.Form
	res  *simplex.Result
	tol  float64

	rows  []int // kept constraint rows, in tableau order
	basis []int // source column basic in each tableau row

	binv  *mat.Dense
	duals []float64 // minimization duals per tableau row
	costs []float64 // minimization reduced costs per source column
}

// Analyze computes the report for an optimal (or multiple-optima)
// result. tol is the zero threshold; zero means simplex.DefaultTolerance.
func Analyze(res *simplex.Result, tol float64) (*Report, error) {
	if !res.Status.IsOptimal() {
		return nil, &NonOptimalTableauError{Status: res.Status}
	}
	if tol <= 0 {
		tol = simplex.DefaultTolerance
	}

	a := &analysis{form: res.Form, res: res, tol: tol}
	if err := a.invert(); err != nil {
		return nil, err
	}
	a.price()

	f := a.form
	n, m := f.NumVariables(), f.NumRows()
	rep := &Report{
		ShadowPrices:    make([]float64, m),
		ReducedCosts:    make([]float64, n),
		ObjectiveRanges: make([]Interval, n),
		RHSRanges:       make([]Interval, m),
		Basic:           make([]bool, n),
		rhs:             make([]float64, m),
	}

	for i := 0; i < m; i++ {
		rep.rhs[i] = f.B[i]
		if f.Negated[i] {
			rep.rhs[i] = -f.B[i]
		}
		rep.RHSRanges[i] = Interval{rep.rhs[i], rep.rhs[i]}
	}
	for k, i := range a.rows {
		rep.ShadowPrices[i] = a.rowSign(i) * a.duals[k]
		rep.RHSRanges[i] = a.rhsRange(k)
	}

	for j := 0; j < n; j++ {
		rep.Basic[j] = a.isBasic(j) || (f.Mirrors[j] >= 0 && a.isBasic(f.Mirrors[j]))
		if !rep.Basic[j] {
			rep.ReducedCosts[j] = a.sense() * a.costs[j]
		}
		rep.ObjectiveRanges[j] = a.objectiveRange(j)
	}

	return rep, nil
}

// invert builds the basis matrix from the standard-form columns of the
// final basis and inverts it.
func (a *analysis) invert() error {
	t := a.res.Tableau
	k := t.Rows()

	a.rows = make([]int, k)
	a.basis = make([]int, k)
	for r := 0; r < k; r++ {
		a.rows[r] = t.SourceRow(r)
		a.basis[r] = t.Source(t.BasicIn(r))
	}
	if k == 0 {
		a.binv = nil
		return nil
	}

	b := mat.NewDense(k, k, nil)
	for i, row := range a.rows {
		for r, col := range a.basis {
			b.Set(i, r, a.form.A.At(row, col))
		}
	}

	a.binv = mat.NewDense(k, k, nil)
	if err := a.binv.Inverse(b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return errors.Wrap(err, "inverting basis")
		}
	}

	return nil
}

// price computes the duals yᵗ = c_Bᵗ B⁻¹ and the reduced cost of every
// source column for the minimization form.
func (a *analysis) price() {
	f := a.form
	k := len(a.rows)

	a.duals = make([]float64, k)
	for i := 0; i < k; i++ {
		for r, col := range a.basis {
			a.duals[i] += f.C[col] * a.binv.At(r, i)
		}
	}

	a.costs = make([]float64, f.NumColumns())
	for col := range a.costs {
		d := f.C[col]
		for i, row := range a.rows {
			d -= a.duals[i] * f.A.At(row, col)
		}
		a.costs[col] = d
	}
	for _, col := range a.basis {
		a.costs[col] = 0
	}
}

func (a *analysis) isBasic(col int) bool {
	for _, c := range a.basis {
		if c == col {
			return true
		}
	}
	return false
}

// sense is -1 when the caller maximizes.
func (a *analysis) sense() float64 {
	if a.form.Maximize {
		return -1
	}
	return 1
}

// rowSign maps minimization duals of row i onto the caller's sense and
// row orientation.
func (a *analysis) rowSign(i int) float64 {
	s := a.sense()
	if a.form.Negated[i] {
		s = -s
	}
	return s
}

// rhsRange computes how far the RHS of tableau row k may move while the
// basic values x_B + δ·B⁻¹eₖ stay non-negative.
func (a *analysis) rhsRange(k int) Interval {
	t := a.res.Tableau
	lo, hi := math.Inf(-1), math.Inf(1)
	for r := 0; r < t.Rows(); r++ {
		beta := a.binv.At(r, k)
		if a.form.Kinds[a.basis[r]] == standard.Artificial && math.Abs(beta) > a.tol {
			// an artificial left in the basis at zero must stay there
			lo, hi = math.Max(lo, 0), math.Min(hi, 0)
			continue
		}
		x := math.Max(t.RHS(r), 0)
		switch {
		case beta > a.tol:
			lo = math.Max(lo, -x/beta)
		case beta < -a.tol:
			hi = math.Min(hi, -x/beta)
		}
	}

	i := a.rows[k]
	b := a.form.B[i]
	if a.form.Negated[i] {
		return Interval{-(b + hi), -(b + lo)}
	}
	return Interval{b + lo, b + hi}
}

// basicRange returns the interval of cost changes δ for the basic source
// column col that keep every non-basic reduced cost non-negative.
func (a *analysis) basicRange(col int) (lo, hi float64) {
	f, t := a.form, a.res.Tableau
	lo, hi = math.Inf(-1), math.Inf(1)

	r := t.RowOf(t.Column(col))
	partner := f.Partner(col)
	for c := 0; c < t.Cols(); c++ {
		src := t.Source(c)
		if t.IsBasic(c) || src == partner || f.Kinds[src] == standard.Artificial {
			continue
		}
		alpha := t.At(r, c)
		switch {
		case alpha > a.tol:
			hi = math.Min(hi, a.costs[src]/alpha)
		case alpha < -a.tol:
			lo = math.Max(lo, a.costs[src]/alpha)
		}
	}

	return lo, hi
}

// objectiveRange returns the caller's interval for objective
// coefficient j.
func (a *analysis) objectiveRange(j int) Interval {
	f := a.form
	mirror := f.Mirrors[j]

	var lo, hi float64
	switch {
	case a.isBasic(j):
		lo, hi = a.basicRange(j)
	case mirror >= 0 && a.isBasic(mirror):
		// the mirror's cost moves opposite to the variable's
		mlo, mhi := a.basicRange(mirror)
		lo, hi = -mhi, -mlo
	default:
		lo, hi = -a.costs[j], math.Inf(1)
		if mirror >= 0 {
			hi = a.costs[mirror]
		}
	}

	c := f.Objective[j]
	if f.Maximize {
		return Interval{c - hi, c - lo}
	}
	return Interval{c + lo, c + hi}
}
