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
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	solves   *prometheus.CounterVec
	pivots   prometheus.Histogram
	nodes    prometheus.Histogram
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gosimplex_solves_total",
			Help: "Number of solves by method and final status.",
		}, []string{"method", "status"}),
		pivots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosimplex_pivots",
			Help:    "Simplex pivots per solve.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gosimplex_bnb_nodes",
			Help:    "Branch-and-bound nodes solved per integer solve.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gosimplex_solve_duration_seconds",
			Help:    "Wall time of a solve.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	var err error
	if m.solves, err = register(reg, m.solves); err != nil {
		return nil, err
	}
	if m.pivots, err = register(reg, m.pivots); err != nil {
		return nil, err
	}
	if m.nodes, err = register(reg, m.nodes); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, returning the collector already registered
// under the same description if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "registering metrics")
	}
	return c, nil
}

func (m *metrics) observe(method string, res *SolveResult, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.solves.WithLabelValues(method, res.status.String()).Inc()
	m.pivots.Observe(float64(res.iterations))
	if method == methodBranchAndBound {
		m.nodes.Observe(float64(res.nodes))
	}
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
