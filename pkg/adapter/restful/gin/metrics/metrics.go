// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metrics collects the Prometheus metrics of the HTTP
// requests and the business operations and exposes them for scraping.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics keeps the collectors in their own registry, so independent
// engines (e.g., in tests) do not collide.
// All methods may be called on a nil *Metrics, which ignores them.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge

	contracts prometheus.Counter
	checkIns  prometheus.Counter
	payments  *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentweb_http_requests_total",
				Help: "Number of HTTP requests.",
			},
			[]string{"method", "endpoint", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rentweb_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "rentweb_http_requests_in_flight",
			Help: "Number of HTTP requests which are being served.",
		}),
		contracts: f.NewCounter(prometheus.CounterOpts{
			Name: "rentweb_contracts_created_total",
			Help: "Number of created rental contracts.",
		}),
		checkIns: f.NewCounter(prometheus.CounterOpts{
			Name: "rentweb_check_ins_total",
			Help: "Number of returned rentals.",
		}),
		payments: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentweb_payments_total",
				Help: "Number of recorded and deleted payments.",
			},
			[]string{"action"},
		),
	}
}

// Middleware measures the requests. Unmatched routes are reported
// with the "unknown" endpoint, so scanners cannot blow up the label
// cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		m.inFlight.Inc()
		defer m.inFlight.Dec()
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		m.duration.WithLabelValues(c.Request.Method, endpoint).Observe(
			time.Since(start).Seconds(),
		)
	}
}

// Handler serves the registry contents in the Prometheus format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

func (m *Metrics) ContractCreated() {
	if m != nil {
		m.contracts.Inc()
	}
}

func (m *Metrics) CheckedIn() {
	if m != nil {
		m.checkIns.Inc()
	}
}

func (m *Metrics) PaymentRecorded() {
	if m != nil {
		m.payments.WithLabelValues("recorded").Inc()
	}
}

func (m *Metrics) PaymentDeleted() {
	if m != nil {
		m.payments.WithLabelValues("deleted").Inc()
	}
}
