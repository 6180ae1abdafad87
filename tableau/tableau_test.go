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
package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const (
	delta = 0.0000001 // acceptable numerical deviation for test results
)

// newSample builds the tableau of
//
//	x + y + s1           = 4
//	x          + s2      = 2
//	    y           + s3 = 3
func newSample(t *testing.T) *Tableau {
	t.Helper()

	a := mat.NewDense(3, 5, []float64{
		1, 1, 1, 0, 0,
		1, 0, 0, 1, 0,
		0, 1, 0, 0, 1,
	})
	tab, err := New(a, []float64{4, 2, 3}, []int{2, 3, 4}, 0)
	require.NoError(t, err)

	return tab
}

func TestNew(t *testing.T) {
	tab := newSample(t)

	assert.Equal(t, 3, tab.Rows())
	assert.Equal(t, 5, tab.Cols())
	assert.Equal(t, []int{2, 3, 4}, tab.Basis())
	assert.True(t, tab.IsBasic(3))
	assert.False(t, tab.IsBasic(0))
	assert.Equal(t, 1, tab.RowOf(3))
	assert.Equal(t, 2.0, tab.RHS(1))
}

func TestNewShapeMismatch(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	_, err := New(a, []float64{1}, []int{0}, 0)
	assert.ErrorIs(t, err, ErrShape)

	_, err = New(a, []float64{1, 2}, []int{0}, 0)
	assert.ErrorIs(t, err, ErrShape)
}

func TestSetObjective(t *testing.T) {
	tab := newSample(t)

	require.NoError(t, tab.SetObjective([]float64{-3, -2, 0, 0, 0}))
	assert.Equal(t, -3.0, tab.Cost(0))
	assert.Equal(t, -2.0, tab.Cost(1))
	assert.Equal(t, 0.0, tab.Objective())

	// pricing out a basic column with non-zero cost
	require.NoError(t, tab.SetObjective([]float64{0, 0, 1, 0, 0}))
	assert.Equal(t, 0.0, tab.Cost(2))
	assert.Equal(t, -1.0, tab.Cost(0))
	assert.Equal(t, 4.0, tab.Objective())

	assert.ErrorIs(t, tab.SetObjective([]float64{1}), ErrShape)
}

func TestPivot(t *testing.T) {
	tab := newSample(t)
	require.NoError(t, tab.SetObjective([]float64{-3, -2, 0, 0, 0}))

	// x enters in row 1 (x ≤ 2)
	require.NoError(t, tab.Pivot(1, 0))
	assert.Equal(t, []int{2, 0, 4}, tab.Basis())
	assert.Equal(t, -1, tab.RowOf(3))
	assert.InDelta(t, 2, tab.RHS(0), delta)
	assert.InDelta(t, 2, tab.RHS(1), delta)
	assert.InDelta(t, -6, tab.Objective(), delta)
	assert.Equal(t, 0.0, tab.Cost(0))

	// y enters in row 0
	require.NoError(t, tab.Pivot(0, 1))
	assert.InDelta(t, -10, tab.Objective(), delta)
	assert.InDelta(t, 2, tab.Cost(2), delta)
	assert.InDelta(t, 1, tab.Cost(3), delta)

	x := tab.Solution(5)
	assert.InDeltaSlice(t, []float64{2, 2, 0, 0, 1}, x, delta)
}

func TestPivotZero(t *testing.T) {
	tab := newSample(t)

	err := tab.Pivot(1, 1)
	assert.ErrorIs(t, err, ErrZeroPivot)
	assert.Equal(t, []int{2, 3, 4}, tab.Basis())
}

func TestDropColumns(t *testing.T) {
	tab := newSample(t)

	err := tab.DropColumns(func(c int) bool { return c == 2 })
	assert.ErrorIs(t, err, ErrBasic)

	require.NoError(t, tab.Pivot(0, 0))
	require.NoError(t, tab.DropColumns(func(c int) bool { return c == 2 }))

	assert.Equal(t, 4, tab.Cols())
	assert.Equal(t, 0, tab.Source(0))
	assert.Equal(t, 3, tab.Source(2))
	assert.Equal(t, 2, tab.Column(3))
	assert.Equal(t, -1, tab.Column(2))
	assert.Equal(t, []int{0, 2, 3}, tab.Basis())
	assert.Equal(t, 1, tab.RowOf(2))
	assert.InDeltaSlice(t, []float64{4, 0, 0, -2, 3}, tab.Solution(5), delta)
}

func TestDropRow(t *testing.T) {
	tab := newSample(t)

	tab.DropRow(1)

	assert.Equal(t, 2, tab.Rows())
	assert.Equal(t, []int{2, 4}, tab.Basis())
	assert.Equal(t, 2, tab.SourceRow(1))
	assert.Equal(t, -1, tab.RowOf(3))
	assert.Equal(t, 1, tab.RowOf(4))
	assert.Equal(t, 3.0, tab.RHS(1))
}

func TestClone(t *testing.T) {
	tab := newSample(t)
	clone := tab.Clone()

	require.NoError(t, clone.Pivot(1, 0))

	assert.Equal(t, []int{2, 3, 4}, tab.Basis())
	assert.Equal(t, []int{2, 0, 4}, clone.Basis())
	assert.Equal(t, 1.0, tab.At(1, 0))
}

func TestNoRows(t *testing.T) {
	tab, err := New(nil, nil, nil, 2)
	require.NoError(t, err)

	require.NoError(t, tab.SetObjective([]float64{-1, 2}))
	assert.Equal(t, 0, tab.Rows())
	assert.Equal(t, -1.0, tab.Cost(0))
	assert.Equal(t, []float64{0, 0}, tab.Solution(2))
}
