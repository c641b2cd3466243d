/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	lex := testLexicon()

	tests := []struct {
		kind     string
		groups   map[string]string
		expected string
	}{
		{KindDate, map[string]string{"monthname": "June", "day": "1", "year": "2023"}, "2023-06-01"},
		{KindDate, map[string]string{"month": "02", "day": "29"}, "XXXX-02-29"},
		{KindDate, map[string]string{"month": "3", "day": "4", "year": "24"}, "2024-03-04"},
		{KindDate, map[string]string{"monthname": "jan", "day": "third"}, "XXXX-01-03"},
		{KindRelativeDay, map[string]string{"relday": "Tomorrow"}, "2023-06-15"},
		{KindRelativeDay, map[string]string{"relday": "yesterday"}, "2023-06-13"},
		{KindWeekday, map[string]string{"weekday": "friday"}, "XXXX-WXX-5"},
		{KindWeekday, map[string]string{"weekday": "friday", "relative": "next"}, "2023-06-16"},
		{KindWeekday, map[string]string{"weekday": "wednesday", "relative": "next"}, "2023-06-21"},
		{KindWeekday, map[string]string{"weekday": "wednesday", "relative": "last"}, "2023-06-07"},
		{KindWeekday, map[string]string{"weekday": "monday", "relative": "this"}, "2023-06-12"},
		{KindWeekday, map[string]string{"weekday": "sunday", "relative": "this"}, "2023-06-18"},
		{KindMonth, map[string]string{"monthname": "May"}, "XXXX-05"},
		{KindMonth, map[string]string{"monthname": "May", "year": "2021"}, "2021-05"},
		{KindMonth, map[string]string{"monthname": "may", "relative": "next"}, "2024-05"},
		{KindSeason, map[string]string{"season": "summer"}, "XXXX-SU"},
		{KindSeason, map[string]string{"season": "winter", "relative": "last"}, "2022-WI"},
		{KindQuarter, map[string]string{"quarter": "3", "year": "2019"}, "(2019-07-01,2019-10-01,P3M)"},
		{KindQuarter, map[string]string{"quarter": "fourth"}, "(2023-10-01,2024-01-01,P3M)"},
		{KindDecade, map[string]string{"decade": "90"}, "(1990-01-01,2000-01-01,P10Y)"},
		{KindDecade, map[string]string{"decade": "20"}, "(2020-01-01,2030-01-01,P10Y)"},
		{KindDecade, map[string]string{"decade": "1960"}, "(1960-01-01,1970-01-01,P10Y)"},
		{KindRelativePeriod, map[string]string{"relative": "next", "unit": "week"}, "(2023-06-19,2023-06-26,P7D)"},
		{KindRelativePeriod, map[string]string{"relative": "last", "unit": "month"}, "2023-05"},
		{KindRelativePeriod, map[string]string{"relative": "this", "unit": "year"}, "(2023-01-01,2024-01-01,P1Y)"},
		{KindRelativePeriod, map[string]string{"relative": "next", "unit": "day"}, "2023-06-15"},
		{KindYear, map[string]string{"year": "1999"}, "(1999-01-01,2000-01-01,P1Y)"},
		{KindYearPeriod, map[string]string{"start": "2010", "end": "2012"}, "(2010-01-01,2012-01-01,P2Y)"},
		{KindTime, map[string]string{"hour": "4", "meridiem": "PM"}, "T16:00:00"},
		{KindTime, map[string]string{"hour": "12", "minute": "30", "meridiem": "am"}, "T00:30:00"},
		{KindTime, map[string]string{"hour": "9", "minute": "05"}, "T09:05:00"},
		{KindPartOfDay, map[string]string{"partofday": "evening"}, "TEV"},
		{KindPartOfDay, map[string]string{"partofday": "night", "relday": "today"}, "2023-06-14TNI"},
		{KindDuration, map[string]string{"amount": "3", "unit": "days"}, "P3D"},
		{KindDuration, map[string]string{"amount": "1.5", "unit": "hours"}, "PT1.5H"},
		{KindDuration, map[string]string{"amount": "two", "unit": "weeks"}, "P2W"},
		{KindDuration, map[string]string{"unit": "month"}, "P1M"},
	}

	for _, test := range tests {
		prop, ok := lex.Normalize(test.kind, test.groups, ref)
		if assert.True(t, ok, "%s %v", test.kind, test.groups) {
			assert.Equal(t, test.expected, prop.String(), "%s %v", test.kind, test.groups)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	lex := testLexicon()

	tests := []struct {
		kind   string
		groups map[string]string
	}{
		{KindDate, map[string]string{"monthname": "June", "day": "31"}},
		{KindDate, map[string]string{"month": "2", "day": "29", "year": "2023"}},
		{KindDate, map[string]string{"month": "13", "day": "1"}},
		{KindRelativeDay, map[string]string{"relday": "someday"}},
		{KindWeekday, map[string]string{"weekday": "funday"}},
		{KindQuarter, map[string]string{"quarter": "5", "year": "2019"}},
		{KindDecade, map[string]string{"decade": "95"}},
		{KindYearPeriod, map[string]string{"start": "2012", "end": "2010"}},
		{KindTime, map[string]string{"hour": "13", "meridiem": "pm"}},
		{KindTime, map[string]string{"hour": "25"}},
		{KindTime, map[string]string{"hour": "10", "minute": "75"}},
		{KindDuration, map[string]string{"amount": "3", "unit": "fortnights"}},
		{KindDuration, map[string]string{"amount": "0", "unit": "days"}},
		{"no-such-kind", map[string]string{}},
	}

	for _, test := range tests {
		_, ok := lex.Normalize(test.kind, test.groups, ref)
		assert.False(t, ok, "%s %v", test.kind, test.groups)
	}
}

func TestLexiconLookupsFoldCase(t *testing.T) {
	lex := testLexicon()

	m, ok := lex.Month("  SEPT ")
	assert.True(t, ok)
	assert.Equal(t, 9, m)

	n, ok := lex.Number("42")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = lex.Weekday("")
	assert.False(t, ok)
}
