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

// Package standard holds the linear program definition shared by the
// solvers and its conversion into the canonical form
//
//	minimize cᵗx  s.t.  Ax = b, x ≥ 0
//
// on which the simplex tableau operates.
package standard

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

/* Types */

// Relation is the comparison operator of a constraint.
type Relation int

const (
	LessEqual Relation = iota
	GreaterEqual
	Equal
)

// String returns the relation's operator as written in a constraint.
func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

func (r Relation) valid() bool {
	return r == LessEqual || r == GreaterEqual || r == Equal
}

// flip returns the relation obtained by multiplying both sides by -1.
func (r Relation) flip() Relation {
	switch r {
	case LessEqual:
		return GreaterEqual
	case GreaterEqual:
		return LessEqual
	default:
		return r
	}
}

// ParseRelation parses the textual form of a relation. Both the ASCII
// and the unicode operators are accepted.
func ParseRelation(s string) (Relation, error) {
	switch strings.TrimSpace(s) {
	case "<=", "≤", "=<":
		return LessEqual, nil
	case ">=", "≥", "=>":
		return GreaterEqual, nil
	case "=", "==":
		return Equal, nil
	default:
		return 0, errors.Errorf("unknown relation %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Relation) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, errors.Errorf("unknown relation %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Relation) UnmarshalText(text []byte) error {
	parsed, err := ParseRelation(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Constraint is a single linear constraint: Coefficients·x Relation RHS.
type Constraint struct {
	Coefficients []float64
	Relation     Relation
	RHS          float64
}

// Problem is a linear program over n variables. Unless marked in Free,
// every variable carries the implicit bound x ≥ 0.
//
// A Problem is never modified by the solvers; the slices it references
// must not be changed by the caller while a solve is running.
type Problem struct {
	Objective   []float64
	Constraints []Constraint
	Maximize    bool

	// Free marks variables which may take negative values. A nil slice
	// means every variable is non-negative.
	Free []bool
}

// NumVariables returns the number of decision variables.
func (p Problem) NumVariables() int {
	return len(p.Objective)
}

// IsFree reports whether variable j is unrestricted in sign.
func (p Problem) IsFree(j int) bool {
	return p.Free != nil && p.Free[j]
}

// WithConstraints returns a copy of the problem with extra constraints
// appended. The receiver's constraint slice is left untouched.
func (p Problem) WithConstraints(extra ...Constraint) Problem {
	constraints := make([]Constraint, 0, len(p.Constraints)+len(extra))
	constraints = append(constraints, p.Constraints...)
	constraints = append(constraints, extra...)
	p.Constraints = constraints
	return p
}

// Validate checks the problem's dimensions and data.
func (p Problem) Validate() error {
	n := len(p.Objective)
	if n == 0 {
		return &MalformedProblemError{Constraint: -1, Reason: "empty objective"}
	}
	if err := checkFinite(p.Objective); err != nil {
		return &MalformedProblemError{Constraint: -1, Reason: "objective " + err.Error()}
	}
	if p.Free != nil && len(p.Free) != n {
		return &MalformedProblemError{
			Constraint: -1,
			Reason:     fmt.Sprintf("free mask has %d entries, objective has %d", len(p.Free), n),
		}
	}

	for i, c := range p.Constraints {
		if len(c.Coefficients) != n {
			return &MalformedProblemError{
				Constraint: i,
				Reason:     fmt.Sprintf("has %d coefficients, objective has %d", len(c.Coefficients), n),
			}
		}
		if !c.Relation.valid() {
			return &MalformedProblemError{Constraint: i, Reason: fmt.Sprintf("unknown relation %d", int(c.Relation))}
		}
		if err := checkFinite(c.Coefficients); err != nil {
			return &MalformedProblemError{Constraint: i, Reason: "coefficients " + err.Error()}
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return &MalformedProblemError{Constraint: i, Reason: fmt.Sprintf("right-hand side is %v", c.RHS)}
		}
	}

	return nil
}

func checkFinite(v []float64) error {
	for j, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Errorf("entry %d is %v", j, x)
		}
	}
	return nil
}

// MalformedProblemError reports a problem whose shape or data cannot be
// solved: dimension mismatches, an empty objective, or non-finite values.
type MalformedProblemError struct {
	// Constraint is the index of the offending constraint, or -1 when
	// the problem lies in the objective.
	Constraint int
	Reason     string
}

func (e *MalformedProblemError) Error() string {
	if e.Constraint < 0 {
		return "malformed problem: " + e.Reason
	}
	return fmt.Sprintf("malformed problem: constraint %d %s", e.Constraint, e.Reason)
}
