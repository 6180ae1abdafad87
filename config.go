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
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/costela/gosimplex/bnb"
	"github.com/costela/gosimplex/simplex"
)

var configValidate = validator.New()

// solveConfig collects the tunables set through options.
type solveConfig struct {
	Method        simplex.Method    `validate:"oneof=0 1"`
	PivotRule     simplex.PivotRule `validate:"oneof=0 1"`
	Tolerance     float64           `validate:"gt=0,lt=1"`
	MaxIterations int               `validate:"gte=0"`
	BigM          float64           `validate:"gte=0"`
	Sensitivity   bool

	SearchOrder          bnb.Order `validate:"oneof=0 1"`
	MaxNodes             int       `validate:"gte=0"`
	IntegralityTolerance float64   `validate:"gt=0,lt=0.5"`
}

func defaultConfig() solveConfig {
	return solveConfig{
		Tolerance:            simplex.DefaultTolerance,
		IntegralityTolerance: bnb.DefaultIntegralityTolerance,
	}
}

func (c solveConfig) validate() error {
	if err := configValidate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid solver configuration")
	}
	return nil
}

func (c solveConfig) simplexOptions(logger Logger) simplex.Options {
	return simplex.Options{
		Method:        c.Method,
		PivotRule:     c.PivotRule,
		Tolerance:     c.Tolerance,
		MaxIterations: c.MaxIterations,
		BigM:          c.BigM,
		Logger:        logger,
	}
}

func (c solveConfig) bnbOptions(logger Logger) bnb.Options {
	return bnb.Options{
		Order:                c.SearchOrder,
		MaxNodes:             c.MaxNodes,
		IntegralityTolerance: c.IntegralityTolerance,
		Simplex:              c.simplexOptions(logger),
	}
}
