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

// Status classifies how a solve terminated.
type Status int

const (
	Optimal Status = iota
	// MultipleOptima is an optimal termination where some non-basic
	// column has a zero reduced cost, so other optimal vertices exist.
	MultipleOptima
	Unbounded
	Infeasible
	// IterationLimit means the pivot budget ran out before a terminal
	// state was reached.
	IterationLimit
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case MultipleOptima:
		return "MULTIPLE_OPTIMA"
	case Unbounded:
		return "UNBOUNDED"
	case Infeasible:
		return "INFEASIBLE"
	case IterationLimit:
		return "ITERATION_LIMIT"
	default:
		return "UNKNOWN"
	}
}

// IsOptimal reports whether the status carries an optimal solution.
func (s Status) IsOptimal() bool {
	return s == Optimal || s == MultipleOptima
}
