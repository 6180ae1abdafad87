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
/*

GoSimplex is a library for modelling and solving linear and integer
programming problems with a pure-Go simplex engine.

As an example of the API, the model of the following problem:

    Maximize:
      z = x1 + 2 x2 - 3 x3
    With:
      0 <= x1 <= 40
      5 <= x3 <= 11
    Subject to:
      0 <= - x1 + x2 + 5.3 x3 <= 10
      -inf <= 2 x1 - 5 x2 + 3 x3 <= 20
      x2 - 8 x3 = 0

can be expressed with GoSimplex like this:

	package main

	import (
		"fmt"
		"math"

		"github.com/costela/gosimplex"
	)

	func main() {
		model, _ := gosimplex.NewModel("some model", gosimplex.Maximize)
		x1, _ := model.AddVariable("x1")
		x1.SetBounds(0, 40)
		x2, _ := model.AddVariable("x2")
		x2.SetObjectiveCoefficient(2)
		// alternatively, all information pertaining can be given at once:
		x3, _ := model.AddDefinedVariable("x3", gosimplex.ContinuousVariable, -3, 5, 11)

		model.AddConstraint(0, 10, []*gosimplex.Variable{x1, x2, x3}, []float64{-1, 1, 5.3})
		model.AddConstraint(math.Inf(-1), 20, []*gosimplex.Variable{x1, x2, x3}, []float64{2, -5, 3})
		model.AddConstraint(0, 0, []*gosimplex.Variable{x2, x3}, []float64{1, -8})

		// ⋮
		// The model can than be solved and the resulting values can than be retrieved as follows:
		// ⋮

		result, _ := model.Solve() // you should check for errors

		fmt.Printf("solution optimal? %t\n", result.Status() == gosimplex.SolutionOptimal)
		fmt.Printf("z = %f\n", result.ObjectiveValue())
		fmt.Printf("x1 = %f\n", result.Value(x1))
		// ⋮
	}

Models with integer or binary variables are solved by branch and bound;
all others by the simplex method, optionally followed by sensitivity
analysis (see WithSensitivity).

*/
package gosimplex

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/pkg/errors"
)

/* Types */

type Model struct {
	mu      sync.RWMutex
	name    string
	dir     direction
	vars    []*Variable
	rows    []row
	logger  Logger
	config  solveConfig
	metrics *metrics
}

// row is a single constraint over model variables.
type row struct {
	vars     []int
	coefs    []float64
	relation Relation
	rhs      float64
}

type direction int

const (
	Minimize direction = iota
	Maximize
)

func (d direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

/* Model related functions */

// NewModel instantiates a new linear programming model, providing a
// name (purely informational) and a optimization direction (either
// Minimize or Maximize)
func NewModel(name string, dir direction, opts ...Option) (*Model, error) {
	model := &Model{
		name:   name,
		dir:    dir,
		logger: noopLogger{},
		config: defaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			return nil, errors.Wrap(err, "applying model option")
		}
	}

	if err := model.config.validate(); err != nil {
		return nil, err
	}

	return model, nil
}

// Clone returns a copy of the model. Variables of the copy are distinct
// from those of the original and must be fetched with Variables.
func (model *Model) Clone() *Model {
	model.mu.RLock()
	defer model.mu.RUnlock()

	newModel := &Model{
		name:    model.name,
		dir:     model.dir,
		logger:  model.logger,
		config:  model.config,
		metrics: model.metrics,
		vars:    make([]*Variable, len(model.vars)),
		rows:    make([]row, len(model.rows)),
	}

	for i, v := range model.vars {
		nv := *v
		nv.model = newModel
		newModel.vars[i] = &nv
	}
	for i, r := range model.rows {
		newModel.rows[i] = row{
			vars:     append([]int(nil), r.vars...),
			coefs:    append([]float64(nil), r.coefs...),
			relation: r.relation,
			rhs:      r.rhs,
		}
	}

	return newModel
}

// Name returns the name provided upon instantiation of a model
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.name
}

// SetDirection changes the direction of the model's optimization
func (model *Model) SetDirection(dir direction) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.dir = dir
}

// Direction returns the model's current optimization direction
func (model *Model) Direction() direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.dir
}

/* Column-related functions */

func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.vars)
}

// Variables returns a new slice with the model's variables. Changes to the slice will not be reflected in the model.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return append([]*Variable(nil), model.vars...)
}

// AddVariable adds a variable to the linear programming model and
// returns a reference to it.
// A freshly instantiated variable has the default type of
// ContinuousVariable, no bounds and an objective coefficient of 1.
//
// A variable is bound to its model. Attempting to use a variable
// created in one model in a different model results in an error.
//
// Empty names will automatically replaced by a unique name.
func (model *Model) AddVariable(name string) (v *Variable, err error) {
	return model.AddDefinedVariable(name, ContinuousVariable, 1, math.Inf(-1), math.Inf(1))
}

// AddBinaryVariable is a convenience function for adding a single
// named binary variable to the model, with a default coefficient of 1.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddBinaryVariable(name string) (v *Variable, err error) {
	return model.AddDefinedVariable(name, BinaryVariable, 1, 0, 1)
}

// AddIntegerVariable is a convenience function for adding a single
// named unbounded integer variable to the model, with a default
// objective coefficient of 1.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddIntegerVariable(name string) (v *Variable, err error) {
	return model.AddDefinedVariable(name, IntegerVariable, 1, math.Inf(-1), math.Inf(1))
}

// AddDefinedVariable add a variable to the linear programming model
// with its attributes passed as arguments.
// If varType is BinaryVariable, the bounds are ignored.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddDefinedVariable(name string, varType VariableType, coefficient, lowerBound, upperBound float64) (v *Variable, err error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	size := len(model.vars)
	if name == "" {
		name = fmt.Sprintf("V%d", size)
	}

	v = &Variable{
		model:       model,
		index:       size,
		name:        name,
		varType:     varType,
		coefficient: coefficient,
	}
	if varType == BinaryVariable {
		lowerBound, upperBound = 0, 1
	}
	v.lower, v.upper = normalizeBounds(lowerBound, upperBound)

	model.vars = append(model.vars, v)

	return v, nil
}

func normalizeBounds(lower, upper float64) (float64, float64) {
	if math.IsInf(lower, 0) {
		lower = math.Inf(-1)
	}
	if math.IsInf(upper, 0) {
		upper = math.Inf(1)
	}
	return lower, upper
}

// SetObjectiveFunction defines the objective function for the model as
// a slice of coefficients and a slice of its respective variables.
// E.g.: an objective function of the form 2x+3y is passed as:
//
//	SetObjectiveFunction([]float64{2,3}, []*Variable{x, y})
//
// Where x and y are the return values of one of the Add*Variable
// functions.
func (model *Model) SetObjectiveFunction(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return errors.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	if err := model.checkVariables(vars); err != nil {
		return err
	}

	for i, v := range vars {
		v.SetObjectiveCoefficient(coefs[i])
	}
	return nil
}

func (model *Model) checkVariables(vars []*Variable) error {
	for i, v := range vars {
		if v == nil || v.model != model {
			return errors.Errorf("variable %d does not belong to model %q", i, model.name)
		}
	}
	return nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraints in
// the model
func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.rows)
}

// AddConstraint adds a constraint to the model as a lower and an upper
// bounds, a slice of variables and a slice of their respective
// coefficients. Depending on the bounds this results in zero, one or
// two constraint rows.
func (model *Model) AddConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	if len(vars) != len(coefs) {
		return errors.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	if err := model.checkVariables(vars); err != nil {
		return err
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	switch {
	case math.IsInf(lower, 0) && math.IsInf(upper, 0):
		// no constraints
	case math.IsInf(lower, 0):
		model.addRow(vars, coefs, LessEqual, upper)
	case math.IsInf(upper, 0):
		model.addRow(vars, coefs, GreaterEqual, lower)
	case upper == lower:
		model.addRow(vars, coefs, Equal, upper)
	default:
		model.addRow(vars, coefs, LessEqual, upper)
		model.addRow(vars, coefs, GreaterEqual, lower)
	}

	return nil
}

// AddRelation adds a single constraint row of the form
// Σ coefs·vars relation rhs.
func (model *Model) AddRelation(vars []*Variable, coefs []float64, relation Relation, rhs float64) error {
	if len(vars) != len(coefs) {
		return errors.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	if err := model.checkVariables(vars); err != nil {
		return err
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	model.addRow(vars, coefs, relation, rhs)

	return nil
}

// addRow appends a row; the caller must hold the write lock.
func (model *Model) addRow(vars []*Variable, coefs []float64, relation Relation, rhs float64) {
	r := row{
		vars:     make([]int, len(vars)),
		coefs:    append([]float64(nil), coefs...),
		relation: relation,
		rhs:      rhs,
	}
	for i, v := range vars {
		r.vars[i] = v.index
	}
	model.rows = append(model.rows, r)
}

// Solve attempts to find an optimal solution to the model.
// Information about the solution can be queried from the returned
// SolveResult value. Infeasible or unbounded models are not errors:
// check Status, or use SolveResult.Err.
func (model *Model) Solve() (res *SolveResult, err error) {
	return model.SolveWithContext(context.Background())
}
