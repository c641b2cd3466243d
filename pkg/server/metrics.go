/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dburkart/almanac/pkg/extract"
	"github.com/dburkart/almanac/pkg/resolve"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// Collection
	IncClientConnection()
	IncRateLimited()
	IncRequests(cmd, culture string)
	ObserveRequestSeconds(cmd string, d time.Duration)
	ObserveSpans(culture string, spans []extract.Span)
	ObserveEntries(entries []resolve.Entry)
	IncUnresolved(reason string)
}

type metricsStore struct {
	registry          *prometheus.Registry
	ClientConnections prometheus.Counter
	RateLimited       prometheus.Counter
	Requests          *prometheus.CounterVec
	RequestSeconds    *prometheus.HistogramVec
	Spans             *prometheus.CounterVec
	Resolutions       *prometheus.CounterVec
	Unresolved        *prometheus.CounterVec
}

var (
	CultureLabel = "culture"
	CommandLabel = "command"
	TypeLabel    = "type"
	ReasonLabel  = "reason"
)

// Reasons reported by almanac_unresolved_total.
var (
	ReasonMalformed       = "malformed"
	ReasonNotResolved     = "not_resolved"
	ReasonInvalidOffset   = "invalid_offset"
	ReasonAmbiguousOffset = "ambiguous_offset"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
	)

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		ClientConnections: factory.NewCounter(prometheus.CounterOpts{
			Name: "almanac_client_connections",
			Help: "The total number of client connections",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "almanac_rate_limited_total",
			Help: "Requests rejected by the per-host rate limiter",
		}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "almanac_requests_total",
			Help: "Request counts for the almanac commands",
		}, []string{CommandLabel, CultureLabel}),
		RequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "almanac_request_seconds",
			Help:    "Time spent serving a command",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{CommandLabel}),
		Spans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "almanac_spans_total",
			Help: "Extracted spans by culture and type",
		}, []string{CultureLabel, TypeLabel}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "almanac_resolutions_total",
			Help: "Resolution entries produced, by type",
		}, []string{TypeLabel}),
		Unresolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "almanac_unresolved_total",
			Help: "Values that could not be resolved, by reason",
		}, []string{ReasonLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncClientConnection() {
	ms.ClientConnections.Inc()
}

func (ms *metricsStore) IncRateLimited() {
	ms.RateLimited.Inc()
}

func (ms *metricsStore) IncRequests(cmd, culture string) {
	ms.Requests.With(prometheus.Labels{CommandLabel: cmd, CultureLabel: culture}).Inc()
}

func (ms *metricsStore) ObserveRequestSeconds(cmd string, d time.Duration) {
	ms.RequestSeconds.
		With(prometheus.Labels{CommandLabel: cmd}).
		Observe(d.Seconds())
}

func (ms *metricsStore) ObserveSpans(culture string, spans []extract.Span) {
	for _, s := range spans {
		ms.Spans.With(prometheus.Labels{CultureLabel: culture, TypeLabel: s.Type}).Inc()
	}
}

// ObserveEntries counts entries by type; entries carrying the "not
// resolved" sentinel also count as unresolved.
func (ms *metricsStore) ObserveEntries(entries []resolve.Entry) {
	for _, e := range entries {
		ms.Resolutions.With(prometheus.Labels{TypeLabel: e.Type}).Inc()
		if !e.Resolved() {
			ms.IncUnresolved(ReasonNotResolved)
		}
	}
}

func (ms *metricsStore) IncUnresolved(reason string) {
	ms.Unresolved.With(prometheus.Labels{ReasonLabel: reason}).Inc()
}
