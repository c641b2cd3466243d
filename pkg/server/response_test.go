/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/proto"
)

func newTestStore(t *testing.T) *metricsStore {
	t.Helper()
	ms, ok := NewMetricsStore().(*metricsStore)
	require.True(t, ok)
	return ms
}

func TestExtractResponseMetrics(t *testing.T) {
	e := engine.New(nil)
	m := newTestStore(t)

	resp := ExtractResponse(e, m, proto.ExtractRequest{Text: "tomorrow at 3pm", Culture: "en", Reference: "2023-06-14"})
	require.Equal(t, proto.CommandExtract, resp.Command())

	er := proto.ExtractResponse{}
	require.NoError(t, proto.Decode(resp, &er))
	assert.Equal(t, "en-us", er.Culture)
	require.Len(t, er.Spans, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues(proto.CommandExtract, "en-us")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Spans.WithLabelValues("en-us", "date")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Spans.WithLabelValues("en-us", "time")))
}

func TestResolveResponseMetrics(t *testing.T) {
	e := engine.New(nil)
	m := newTestStore(t)

	resp := ResolveResponse(e, m, proto.ResolveRequest{Timex: []string{"2023-SU", "(", "T16"}})
	rr := proto.ResolveResponse{}
	require.NoError(t, proto.Decode(resp, &rr))
	require.Len(t, rr.Entries, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unresolved.WithLabelValues(ReasonMalformed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unresolved.WithLabelValues(ReasonNotResolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("daterange")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("time")))
}

func TestResolveResponseCountsOnlyUnparsableAsMalformed(t *testing.T) {
	e := engine.New(nil)
	m := newTestStore(t)

	resp := ResolveResponse(e, m, proto.ResolveRequest{Timex: []string{"PRESENT_REF", "2023", "XXXX-WXX-8", "(", "2023-02-31"}})
	require.Equal(t, proto.CommandResolve, resp.Command())
	require.NoError(t, proto.Decode(resp, &proto.ResolveResponse{}))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Unresolved.WithLabelValues(ReasonMalformed)))
}

func TestOffsetResponseMetrics(t *testing.T) {
	e := engine.New(nil)
	m := newTestStore(t)

	for _, text := range []string{"CST", "+13", "EST"} {
		resp := OffsetResponse(e, m, proto.OffsetRequest{Text: text})
		require.Equal(t, proto.CommandOffset, resp.Command())
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unresolved.WithLabelValues(ReasonAmbiguousOffset)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unresolved.WithLabelValues(ReasonInvalidOffset)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Requests.WithLabelValues(proto.CommandOffset, "en-us")))
}

func TestEngineStatsCollector(t *testing.T) {
	e := engine.New(nil)
	e.Resolve(time.Time{}, "T16", "T17")

	c := NewEngineStatsCollector(e)
	assert.Equal(t, 2, testutil.CollectAndCount(c))
}

func TestLimiter(t *testing.T) {
	var none *Limiter
	assert.True(t, none.Allow("10.0.0.1"))
	assert.Nil(t, NewLimiter(0, 5))

	l := NewLimiter(0.001, 1)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}
