/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dburkart/almanac/pkg/extract"
	"github.com/dburkart/almanac/pkg/resolve"
	"github.com/dburkart/almanac/pkg/timex"
	"github.com/dburkart/almanac/pkg/timezone"
)

var ref = time.Date(2023, time.June, 14, 12, 0, 0, 0, time.UTC)

func TestExtract(t *testing.T) {
	e := New(nil)

	spans, err := e.Extract("en-us", "Meet me on June 20, 2023 at 3pm EST", ref)
	require.NoError(t, err)
	require.Len(t, spans, 3)

	assert.Equal(t, "June 20, 2023", spans[0].Text)
	assert.Equal(t, extract.TypeDate, spans[0].Type)
	assert.Equal(t, "2023-06-20", spans[0].Timex)

	assert.Equal(t, "3pm", spans[1].Text)
	assert.Equal(t, extract.TypeTime, spans[1].Type)
	assert.Equal(t, "T15:00:00", spans[1].Timex)

	assert.Equal(t, "EST", spans[2].Text)
	assert.Equal(t, extract.TypeTimeZone, spans[2].Type)
	assert.Equal(t, "UTC-05:00", spans[2].Comment)
}

func TestExtractPrefersMergedRanges(t *testing.T) {
	e := New(nil)

	spans, err := e.Extract("", "sales over the last 3 days", ref)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "last 3 days", spans[0].Text)
	assert.Equal(t, extract.TypeDateRange, spans[0].Type)
	assert.Equal(t, "(2023-06-11,2023-06-14,P3D)", spans[0].Timex)
}

func TestExtractNothing(t *testing.T) {
	e := New(nil)

	spans, err := e.Extract("en-us", "nothing temporal in here", ref)
	require.NoError(t, err)
	assert.NotNil(t, spans)
	assert.Empty(t, spans)
}

func TestExtractRanges(t *testing.T) {
	e := New(nil)

	tests := []struct {
		text  string
		span  string
		typ   string
		timex string
	}{
		{"Closed from Dec 20 to Jan 5, 2024", "from Dec 20 to Jan 5, 2024", extract.TypeDateRange, "(2023-12-20,2024-01-05,P16D)"},
		{"Open from Nov 2023 to Feb 2024", "from Nov 2023 to Feb 2024", extract.TypeDateRange, "(2023-11-01,2024-02-01,P3M)"},
		{"Sold between Nov 2023 and Feb 2024", "between Nov 2023 and Feb 2024", extract.TypeDateRange, "(2023-11-01,2024-02-01,P3M)"},
		{"Meet from 3pm to 5pm", "from 3pm to 5pm", extract.TypeTimeRange, "(T15:00:00,T17:00:00,PT2H)"},
		{"Meet tomorrow from 3pm to 5pm", "tomorrow from 3pm to 5pm", extract.TypeDateTimeRange, "(2023-06-15T15:00:00,2023-06-15T17:00:00,PT2H)"},
	}

	for _, test := range tests {
		spans, err := e.Extract("en-us", test.text, ref)
		require.NoError(t, err)
		require.Len(t, spans, 1, "%q: %v", test.text, spans)
		assert.Equal(t, test.span, spans[0].Text)
		assert.Equal(t, test.typ, spans[0].Type)
		assert.Equal(t, test.timex, spans[0].Timex)
	}

	for _, text := range []string{"Prices may fall and march on", "call 1234-5678 now"} {
		spans, err := e.Extract("en-us", text, ref)
		require.NoError(t, err)
		assert.Empty(t, spans, "%q", text)
	}
}

func TestExtractedValuesParse(t *testing.T) {
	e := New(nil)

	texts := []string{
		"Meet me on June 20, 2023 at 3pm EST",
		"from Dec 20 to Jan 5, 2024, from Dec 20, 2024 to Jan 5, 2024",
		"from Nov to Feb 2024 and from Q1 2023 to Q3 2023",
		"the last 3 days, in 2 weeks, 4 months ago, the 90s, 2010-2012",
		"call 1234-5678 now or between 9:30am and 11am tomorrow",
		"next spring, this morning, tomorrow evening, 10pm - 2am",
		"del 3 al 5 de junio de 2023",
	}

	for _, culture := range []string{"en-us", "es-es"} {
		for _, text := range texts {
			spans, err := e.Extract(culture, text, ref)
			require.NoError(t, err)
			for _, s := range spans {
				if s.Timex == "" {
					continue
				}
				_, err := timex.Parse(s.Timex)
				assert.NoError(t, err, "%s %q: %q => %s", culture, text, s.Text, s.Timex)
			}
		}
	}
}

func TestExtractUnknownCulture(t *testing.T) {
	e := New(nil)

	_, err := e.Extract("ja-JP", "2023-06-20", ref)
	assert.Error(t, err)
}

func TestRecognize(t *testing.T) {
	e := New(nil)

	recognitions, err := e.Recognize("en-us", "Meet me on June 20, 2023 at 3pm EST", ref)
	require.NoError(t, err)
	require.Len(t, recognitions, 3)

	assert.Equal(t, []resolve.Entry{{Timex: "2023-06-20", Type: "date", Value: "2023-06-20"}}, recognitions[0].Resolution)
	assert.Equal(t, []resolve.Entry{{Timex: "T15:00:00", Type: "time", Value: "15:00:00"}}, recognitions[1].Resolution)

	require.NotNil(t, recognitions[2].Offset)
	assert.Equal(t, -300, recognitions[2].Offset.Minutes)
	assert.Empty(t, recognitions[2].Resolution)
}

func TestResolveSkipsMalformed(t *testing.T) {
	e := New(nil)

	entries := e.Resolve(ref, "2023-06-20", "not a timex", "T16")
	assert.Equal(t, []resolve.Entry{
		{Timex: "2023-06-20", Type: "date", Value: "2023-06-20"},
		{Timex: "T16", Type: "time", Value: "16:00:00"},
	}, entries)

	assert.Equal(t, []resolve.Entry{}, e.Resolve(ref))
}

func TestResolveCachesProperties(t *testing.T) {
	e := New(nil)

	first := e.Resolve(ref, "XXXX-WXX-5")
	second := e.Resolve(ref, "XXXX-WXX-5")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.cache.ItemCount())

	e.Resolve(ref, "garbage")
	assert.Equal(t, 1, e.cache.ItemCount())
}

func TestResolveWithoutCache(t *testing.T) {
	e := New(nil, WithCacheExpiry(0))
	assert.Nil(t, e.cache)

	entries := e.Resolve(ref, "2023-06-20")
	assert.Len(t, entries, 1)
}

func TestParseOffset(t *testing.T) {
	e := New(nil)

	offset, err := e.ParseOffset("en-us", "UTC+05:30")
	require.NoError(t, err)
	assert.Equal(t, 330, offset.Minutes)

	offset, err = e.ParseOffset("en-us", "CST")
	require.NoError(t, err)
	assert.Equal(t, timezone.InvalidOffset, offset.Minutes)
	assert.True(t, offset.Ambiguous)

	_, err = e.ParseOffset("ja-JP", "UTC")
	assert.Error(t, err)
}

func TestExtractAllKeepsOrder(t *testing.T) {
	e := New(nil, WithConcurrency(2))

	texts := []string{"2023-06-20", "nothing", "at 3pm", "June 1st"}
	results, err := e.ExtractAll(context.Background(), "en-us", texts, ref)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	assert.Equal(t, "2023-06-20", results[0][0].Timex)
	assert.Empty(t, results[1])
	assert.Equal(t, "T15:00:00", results[2][0].Timex)
	assert.Equal(t, "XXXX-06-01", results[3][0].Timex)
}

func TestResolveAll(t *testing.T) {
	e := New(nil)

	results, err := e.ResolveAll(context.Background(), [][]string{{"T16"}, {}, {"2023-06-20", "bad"}}, ref)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "16:00:00", results[0][0].Value)
	assert.Empty(t, results[1])
	assert.Equal(t, []resolve.Entry{{Timex: "2023-06-20", Type: "date", Value: "2023-06-20"}}, results[2])
}

func TestResolveAllCancelled(t *testing.T) {
	e := New(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ResolveAll(ctx, [][]string{{"T16"}, {"T17"}}, ref)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkRecognize(b *testing.B) {
	e := New(nil)
	text := "From June 3 to June 7 we met twice, the second time at 3pm EST, and again 2 weeks ago."
	for i := 0; i < b.N; i++ {
		_, _ = e.Recognize("en-us", text, ref)
	}
}
