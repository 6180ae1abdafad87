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
	"github.com/costela/gosimplex/standard"
	"github.com/costela/gosimplex/tableau"
)

// Result is the outcome of a single simplex solve.
type Result struct {
	Status Status
	// Value is the objective value in the caller's sense. It is ±Inf for
	// unbounded problems and NaN when no feasible point is known.
	Value float64
	// X holds the original variables, or nil when no feasible point is
	// known.
	X []float64

	// Iterations counts all pivots, Phase1Iterations those spent looking
	// for a feasible basis with the Two-Phase method.
	Iterations       int
	Phase1Iterations int

	Method Method
	// BigM is the penalty actually used, zero unless the BigM method
	// needed artificial variables.
	BigM float64

	// Form and Tableau are the terminal state, kept for sensitivity
	// analysis.
	Form    *standard.Form
	Tableau *tableau.Tableau
}
