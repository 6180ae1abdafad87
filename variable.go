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
)

type Variable struct {
	model *Model
	index int

	name         string
	varType      VariableType
	coefficient  float64
	lower, upper float64
}

type VariableType int

const (
	ContinuousVariable VariableType = iota
	IntegerVariable
	BinaryVariable
)

func (t VariableType) String() string {
	switch t {
	case ContinuousVariable:
		return "continuous"
	case IntegerVariable:
		return "integer"
	case BinaryVariable:
		return "binary"
	default:
		return "unknown"
	}
}

/* Variable-related functions (model variables, as opposed to Go variables) */

func (v *Variable) Name() string {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.name
}

func (v *Variable) SetType(varType VariableType) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.varType = varType
}

func (v *Variable) Type() VariableType {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.varType
}

// SetBounds sets the boundaries for the given variable.
// To set a bound to infinity, pass math.Inf(1) or math.Inf(-1). The
// signal of the infinity is ignored, as the lower and upper bounds are
// always assumed to be the negative and positive infinities,
// respectively.
func (v *Variable) SetBounds(lower, upper float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	if math.IsInf(lower, 0) {
		lower = math.Inf(-1)
	}
	if math.IsInf(upper, 0) {
		upper = math.Inf(1)
	}
	v.lower, v.upper = lower, upper
}

func (v *Variable) Bounds() (lower, upper float64) {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.lower, v.upper
}

func (v *Variable) SetObjectiveCoefficient(coef float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.coefficient = coef
}

func (v *Variable) Coefficient() float64 {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.coefficient
}

// effectiveBounds returns the bounds the solver works with: binary
// variables are clamped to [0, 1] and integer bounds are rounded inwards.
// The caller must hold the model lock.
func (v *Variable) effectiveBounds() (lower, upper float64) {
	lower, upper = v.lower, v.upper
	switch v.varType {
	case BinaryVariable:
		lower, upper = math.Max(lower, 0), math.Min(upper, 1)
		fallthrough
	case IntegerVariable:
		lower, upper = math.Ceil(lower), math.Floor(upper)
	}
	return lower, upper
}

func (v *Variable) isInteger() bool {
	return v.varType == IntegerVariable || v.varType == BinaryVariable
}
