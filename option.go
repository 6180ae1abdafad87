package gosimplex

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/costela/gosimplex/bnb"
	"github.com/costela/gosimplex/simplex"
)

type Option func(*Model) error

func WithLogger(logger Logger) Option {
	return func(m *Model) error {
		m.logger = logger

		return nil
	}
}

// WithMethod selects how the initial feasible basis is found.
func WithMethod(method simplex.Method) Option {
	return func(m *Model) error {
		m.config.Method = method

		return nil
	}
}

func WithPivotRule(rule simplex.PivotRule) Option {
	return func(m *Model) error {
		m.config.PivotRule = rule

		return nil
	}
}

// WithTolerance sets the zero threshold used throughout the solver.
func WithTolerance(tol float64) Option {
	return func(m *Model) error {
		m.config.Tolerance = tol

		return nil
	}
}

func WithMaxIterations(n int) Option {
	return func(m *Model) error {
		m.config.MaxIterations = n

		return nil
	}
}

// WithBigM overrides the artificial penalty of the Big-M method.
func WithBigM(penalty float64) Option {
	return func(m *Model) error {
		m.config.BigM = penalty

		return nil
	}
}

// WithSensitivity enables shadow prices, reduced costs and ranging on
// linear solves.
func WithSensitivity() Option {
	return func(m *Model) error {
		m.config.Sensitivity = true

		return nil
	}
}

func WithSearchOrder(order bnb.Order) Option {
	return func(m *Model) error {
		m.config.SearchOrder = order

		return nil
	}
}

func WithMaxNodes(n int) Option {
	return func(m *Model) error {
		m.config.MaxNodes = n

		return nil
	}
}

func WithIntegralityTolerance(tol float64) Option {
	return func(m *Model) error {
		m.config.IntegralityTolerance = tol

		return nil
	}
}

// WithMetrics registers the solver's collectors with reg and records
// every solve of the model.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(m *Model) error {
		metrics, err := newMetrics(reg)
		if err != nil {
			return err
		}
		m.metrics = metrics

		return nil
	}
}
