/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	actions   *prometheus.CounterVec
	throttled prometheus.Counter
	sessions  prometheus.Gauge
	render    prometheus.Histogram
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tabula_actions_total",
			Help: "Grid actions applied, by action.",
		}, []string{"action"}),
		throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tabula_actions_throttled_total",
			Help: "Grid actions rejected by the per-session rate limit.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tabula_sessions",
			Help: "Live grid sessions.",
		}),
		render: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabula_render_seconds",
			Help:    "Time spent executing the grid template.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	registry.MustRegister(m.actions, m.throttled, m.sessions, m.render)
	return m
}
