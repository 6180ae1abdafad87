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
	"fmt"
	"math"

	"github.com/costela/gosimplex/standard"
)

// Method selects how an initial feasible basis is obtained.
type Method int

const (
	// TwoPhase first minimizes the sum of artificial variables, then
	// optimizes the real objective from the basis found.
	TwoPhase Method = iota
	// BigM penalizes artificial variables in a single optimization.
	BigM
)

func (m Method) String() string {
	switch m {
	case TwoPhase:
		return "two-phase"
	case BigM:
		return "big-m"
	default:
		return "unknown"
	}
}

// PivotRule selects the entering column.
type PivotRule int

const (
	// Dantzig picks the most negative reduced cost, falling back to Bland
	// during long runs of degenerate pivots.
	Dantzig PivotRule = iota
	// Bland always picks the lowest eligible column.
	Bland
)

func (r PivotRule) String() string {
	switch r {
	case Dantzig:
		return "dantzig"
	case Bland:
		return "bland"
	default:
		return "unknown"
	}
}

const DefaultTolerance = 1e-9

// degenerateRun is the number of consecutive degenerate pivots after
// which Dantzig pricing gives way to Bland's rule.
const degenerateRun = 50

type Logger interface {
	Print(v ...interface{})
}

// Options tune a solve. The zero value is usable.
type Options struct {
	Method    Method
	PivotRule PivotRule
	// Tolerance is the zero threshold for reduced costs, pivot entries
	// and feasibility checks. Zero means DefaultTolerance.
	Tolerance float64
	// MaxIterations caps the number of pivots. Zero means
	// max(1000, 10*(rows+columns)).
	MaxIterations int
	// BigM is the artificial penalty for the BigM method. Zero derives
	// it from the objective.
	BigM   float64
	Logger Logger
}

func (o Options) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return DefaultTolerance
}

func (o Options) maxIterations(rows, cols int) int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	if n := 10 * (rows + cols); n > 1000 {
		return n
	}
	return 1000
}

func (o Options) bigM(f *standard.Form) float64 {
	if o.BigM > 0 {
		return o.BigM
	}
	scale := 1.0
	for _, c := range f.C {
		scale = math.Max(scale, math.Abs(c))
	}
	return 1e6 * scale
}

func (o Options) logf(format string, v ...interface{}) {
	if o.Logger == nil {
		return
	}
	o.Logger.Print(fmt.Sprintf(format, v...))
}
