/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dburkart/almanac/pkg/engine"
)

type engineStatsCollector struct {
	engine *engine.Engine

	cultures   *prometheus.Desc
	cacheItems *prometheus.Desc
}

func NewEngineStatsCollector(e *engine.Engine) prometheus.Collector {
	return &engineStatsCollector{
		engine: e,
		cultures: prometheus.NewDesc(
			"almanac_cultures",
			"Number of cultures the engine can serve.",
			nil, nil,
		),
		cacheItems: prometheus.NewDesc(
			"almanac_timex_cache_items",
			"Number of parsed TIMEX values held in the cache.",
			nil, nil,
		),
	}
}

// Describe implements Collector.
func (c *engineStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cultures
	ch <- c.cacheItems
}

// Collect implements Collector.
func (c *engineStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.cultures, prometheus.GaugeValue, float64(len(c.engine.Cultures())))
	ch <- prometheus.MustNewConstMetric(c.cacheItems, prometheus.GaugeValue, float64(c.engine.CacheItems()))
}
