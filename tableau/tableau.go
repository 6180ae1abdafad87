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

// Package tableau implements the dense simplex tableau and its pivot
// mechanics. A Tableau has one row per constraint plus a trailing
// objective row, and one column per variable plus a trailing RHS column.
// The objective row holds reduced costs; its RHS cell holds the negated
// objective value.
package tableau

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrZeroPivot = errors.New("tableau: pivot element is zero")
	ErrShape     = errors.New("tableau: size mismatch")
	ErrBasic     = errors.New("tableau: cannot drop a basic column")
)

// Tableau is the mutable state of one simplex run. It is never shared
// between solves.
type Tableau struct {
	data *mat.Dense

	rows, cols int

	basis []int // basis[r] is the column basic in row r
	rowOf []int // rowOf[c] is the row column c is basic in, or -1

	sources    []int // tableau column -> originating column
	sourceRows []int // tableau row -> originating row
}

// New builds a tableau for Ax = b with the given initial basis. The
// columns named in basis must form an identity sub-matrix of a. a may be
// nil when there are no rows, in which case cols gives the column count.
func New(a mat.Matrix, b []float64, basis []int, cols int) (*Tableau, error) {
	rows := len(b)
	if a != nil {
		r, c := a.Dims()
		if r != rows {
			return nil, errors.Wrapf(ErrShape, "%d rows in A, %d in b", r, rows)
		}
		cols = c
	} else if rows != 0 {
		return nil, errors.Wrap(ErrShape, "missing constraint matrix")
	}
	if len(basis) != rows {
		return nil, errors.Wrapf(ErrShape, "%d basic columns for %d rows", len(basis), rows)
	}

	t := &Tableau{
		data:       mat.NewDense(rows+1, cols+1, nil),
		rows:       rows,
		cols:       cols,
		basis:      append([]int(nil), basis...),
		rowOf:      make([]int, cols),
		sources:    make([]int, cols),
		sourceRows: make([]int, rows),
	}
	for c := range t.rowOf {
		t.rowOf[c] = -1
		t.sources[c] = c
	}
	for r := 0; r < rows; r++ {
		t.sourceRows[r] = r
		for c := 0; c < cols; c++ {
			t.data.Set(r, c, a.At(r, c))
		}
		t.data.Set(r, cols, b[r])
	}
	for r, c := range basis {
		if c < 0 || c >= cols {
			return nil, errors.Wrapf(ErrShape, "basic column %d out of range", c)
		}
		t.rowOf[c] = r
	}

	return t, nil
}

// Rows returns the number of constraint rows.
func (t *Tableau) Rows() int { return t.rows }

// Cols returns the number of variable columns, RHS excluded.
func (t *Tableau) Cols() int { return t.cols }

// At returns the entry of constraint row r in column c.
func (t *Tableau) At(r, c int) float64 { return t.data.At(r, c) }

// RHS returns the right-hand side of row r, i.e. the value of its basic variable.
func (t *Tableau) RHS(r int) float64 { return t.data.At(r, t.cols) }

// Cost returns the objective row entry of column c.
func (t *Tableau) Cost(c int) float64 { return t.data.At(t.rows, c) }

// Objective returns the current value of the objective installed with
// SetObjective.
func (t *Tableau) Objective() float64 { return -t.data.At(t.rows, t.cols) }

// BasicIn returns the column basic in row r.
func (t *Tableau) BasicIn(r int) int { return t.basis[r] }

// RowOf returns the row column c is basic in, or -1 if it is non-basic.
func (t *Tableau) RowOf(c int) int { return t.rowOf[c] }

// IsBasic reports whether column c is basic.
func (t *Tableau) IsBasic(c int) bool { return t.rowOf[c] >= 0 }

// Basis returns a copy of the basis, one column per row.
func (t *Tableau) Basis() []int { return append([]int(nil), t.basis...) }

// Source returns the originating column of tableau column c. It differs
// from c once columns have been dropped.
func (t *Tableau) Source(c int) int { return t.sources[c] }

// SourceRow returns the originating row of tableau row r.
func (t *Tableau) SourceRow(r int) int { return t.sourceRows[r] }

// Column returns the tableau column originating from source, or -1 if it
// has been dropped.
func (t *Tableau) Column(source int) int {
	for c, s := range t.sources {
		if s == source {
			return c
		}
	}
	return -1
}

// SetObjective installs a new objective row from per-column costs and
// prices out the basic columns, leaving reduced costs in the row.
func (t *Tableau) SetObjective(costs []float64) error {
	if len(costs) != t.cols {
		return errors.Wrapf(ErrShape, "%d costs for %d columns", len(costs), t.cols)
	}

	obj := t.data.RawRowView(t.rows)
	copy(obj, costs)
	obj[t.cols] = 0

	for r, c := range t.basis {
		if cb := costs[c]; cb != 0 {
			floats.AddScaled(obj, -cb, t.data.RawRowView(r))
		}
	}
	for _, c := range t.basis {
		obj[c] = 0
	}

	return nil
}

// Pivot makes column c basic in row r: the row is scaled so the pivot
// entry becomes 1 and c is eliminated from every other row, the objective
// row included.
func (t *Tableau) Pivot(r, c int) error {
	pivotRow := t.data.RawRowView(r)
	p := pivotRow[c]
	if p == 0 {
		return errors.Wrapf(ErrZeroPivot, "row %d, column %d", r, c)
	}

	floats.Scale(1/p, pivotRow)
	pivotRow[c] = 1

	for i := 0; i <= t.rows; i++ {
		if i == r {
			continue
		}
		row := t.data.RawRowView(i)
		if f := row[c]; f != 0 {
			floats.AddScaled(row, -f, pivotRow)
			row[c] = 0
		}
	}

	t.rowOf[t.basis[r]] = -1
	t.basis[r] = c
	t.rowOf[c] = r

	return nil
}

// DropColumns removes every non-basic column for which drop returns true.
func (t *Tableau) DropColumns(drop func(c int) bool) error {
	keep := make([]int, 0, t.cols)
	for c := 0; c < t.cols; c++ {
		if !drop(c) {
			keep = append(keep, c)
			continue
		}
		if t.IsBasic(c) {
			return errors.Wrapf(ErrBasic, "column %d (source %d)", c, t.sources[c])
		}
	}
	if len(keep) == t.cols {
		return nil
	}

	data := mat.NewDense(t.rows+1, len(keep)+1, nil)
	sources := make([]int, len(keep))
	rowOf := make([]int, len(keep))
	newIndex := make(map[int]int, len(keep))
	for nc, c := range keep {
		for r := 0; r <= t.rows; r++ {
			data.Set(r, nc, t.data.At(r, c))
		}
		sources[nc] = t.sources[c]
		rowOf[nc] = t.rowOf[c]
		newIndex[c] = nc
	}
	for r := 0; r <= t.rows; r++ {
		data.Set(r, len(keep), t.data.At(r, t.cols))
	}
	for r, c := range t.basis {
		t.basis[r] = newIndex[c]
	}

	t.data = data
	t.cols = len(keep)
	t.sources = sources
	t.rowOf = rowOf

	return nil
}

// DropRow removes constraint row r together with its basic variable's
// membership in the basis. It is used for linearly dependent rows.
func (t *Tableau) DropRow(r int) {
	data := mat.NewDense(t.rows, t.cols+1, nil)
	for i, ni := 0, 0; i <= t.rows; i++ {
		if i == r {
			continue
		}
		data.SetRow(ni, t.data.RawRowView(i))
		ni++
	}

	t.rowOf[t.basis[r]] = -1
	t.basis = append(t.basis[:r], t.basis[r+1:]...)
	t.sourceRows = append(t.sourceRows[:r], t.sourceRows[r+1:]...)
	for i, c := range t.basis {
		t.rowOf[c] = i
	}

	t.data = data
	t.rows--
}

// Solution returns the value of every source column, basic columns
// taking their RHS and all others zero. size is the number of source
// columns.
func (t *Tableau) Solution(size int) []float64 {
	x := make([]float64, size)
	for r, c := range t.basis {
		x[t.sources[c]] = t.RHS(r)
	}
	return x
}

// Clone returns an independent copy of the tableau.
func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		data:       mat.DenseCopyOf(t.data),
		rows:       t.rows,
		cols:       t.cols,
		basis:      append([]int(nil), t.basis...),
		rowOf:      append([]int(nil), t.rowOf...),
		sources:    append([]int(nil), t.sources...),
		sourceRows: append([]int(nil), t.sourceRows...),
	}
}

// String formats the tableau, mainly for debug logging.
func (t *Tableau) String() string {
	return fmt.Sprintf("basis %v\n%v", t.basis, mat.Formatted(t.data, mat.Squeeze()))
}
