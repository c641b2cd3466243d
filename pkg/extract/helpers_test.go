/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"regexp"
	"time"

	"github.com/dburkart/almanac/pkg/timex"
)

// Wednesday
var ref = time.Date(2023, time.June, 14, 12, 0, 0, 0, time.UTC)

const monthNames = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec`

func testLexicon() *Lexicon {
	return &Lexicon{
		Months: map[string]int{
			"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
			"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
			"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7, "aug": 8,
			"sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
		},
		Weekdays: map[string]int{
			"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4,
			"friday": 5, "saturday": 6, "sunday": 7,
		},
		Numbers: map[string]int{
			"one": 1, "two": 2, "three": 3, "four": 4, "first": 1, "second": 2, "third": 3, "fourth": 4,
		},
		Units: map[string]timex.Unit{
			"day": timex.UnitDay, "days": timex.UnitDay,
			"week": timex.UnitWeek, "weeks": timex.UnitWeek,
			"month": timex.UnitMonth, "months": timex.UnitMonth,
			"year": timex.UnitYear, "years": timex.UnitYear,
			"hour": timex.UnitHour, "hours": timex.UnitHour,
			"minute": timex.UnitMinute, "minutes": timex.UnitMinute,
		},
		Seasons:      map[string]string{"spring": timex.Spring, "summer": timex.Summer, "fall": timex.Fall, "winter": timex.Winter},
		PartsOfDay:   map[string]string{"morning": timex.Morning, "afternoon": timex.Afternoon, "evening": timex.Evening, "night": timex.Night},
		Relatives:    map[string]int{"last": -1, "this": 0, "next": 1},
		RelativeDays: map[string]int{"yesterday": -1, "today": 0, "tomorrow": 1},
		Meridiems:    map[string]bool{"am": false, "pm": true},
	}
}

func testDatePoint(lex *Lexicon) *RegexExtractor {
	return &RegexExtractor{
		Type:    TypeDate,
		Lexicon: lex,
		Patterns: []Pattern{
			{KindDate, regexp.MustCompile(`(?i)\b(?P<monthname>` + monthNames + `)\s+(?P<day>\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(?P<year>\d{4}))?\b`)},
			{KindDate, regexp.MustCompile(`\b(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})\b`)},
			{KindRelativeDay, regexp.MustCompile(`(?i)\b(?P<relday>yesterday|today|tomorrow)\b`)},
			{KindWeekday, regexp.MustCompile(`(?i)\b(?:(?P<relative>last|this|next)\s+)?(?P<weekday>monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)},
		},
	}
}

func testTimePoint(lex *Lexicon) *RegexExtractor {
	return &RegexExtractor{
		Type:    TypeTime,
		Lexicon: lex,
		Patterns: []Pattern{
			{KindTime, regexp.MustCompile(`(?i)\b(?P<hour>\d{1,2})(?::(?P<minute>\d{2}))?\s*(?P<meridiem>am|pm)\b`)},
			{KindTime, regexp.MustCompile(`\b(?P<hour>[01]?\d|2[0-3]):(?P<minute>[0-5]\d)\b`)},
			{KindPartOfDay, regexp.MustCompile(`(?i)\b(?P<partofday>morning|afternoon|evening|night)\b`)},
		},
	}
}

func testDuration(lex *Lexicon) *RegexExtractor {
	return &RegexExtractor{
		Type:    TypeDuration,
		Lexicon: lex,
		Patterns: []Pattern{
			{KindDuration, regexp.MustCompile(`(?i)\b(?P<amount>\d+(?:\.\d+)?|one|two|three|four)\s+(?P<unit>days?|weeks?|months?|years?|hours?|minutes?)\b`)},
		},
	}
}

func testDatePeriodConfig() DatePeriodConfig {
	lex := testLexicon()
	return DatePeriodConfig{
		Lexicon:   lex,
		DatePoint: testDatePoint(lex),
		TimePoint: testTimePoint(lex),
		Duration:  testDuration(lex),
		SimpleCases: []Pattern{
			{KindQuarter, regexp.MustCompile(`(?i)\bq(?P<quarter>[1-4])\s+(?P<year>\d{4})\b`)},
			{KindDecade, regexp.MustCompile(`(?i)\bthe\s+(?P<decade>\d{2}|\d{4})'?s\b`)},
			{KindMonth, regexp.MustCompile(`(?i)\b(?P<monthname>` + monthNames + `)(?:\s+(?P<year>\d{4}))?\b`)},
			{KindSeason, regexp.MustCompile(`(?i)\b(?:(?P<relative>last|this|next)\s+)?(?P<season>spring|summer|fall|winter)(?:\s+(?P<year>\d{4}))?\b`)},
			{KindRelativePeriod, regexp.MustCompile(`(?i)\b(?P<relative>last|this|next)\s+(?P<unit>week|month|year)\b`)},
			{KindYear, regexp.MustCompile(`\b(?P<year>\d{4})\b`)},
		},
		YearPeriods: []Pattern{
			{KindYearPeriod, regexp.MustCompile(`\b(?P<start>\d{4})\s*-\s*(?P<end>\d{4})\b`)},
		},
		Year:             regexp.MustCompile(`(?P<year>\d{4})`),
		Till:             regexp.MustCompile(`^(?:to|till|until|through|thru|-)$`),
		Connector:        regexp.MustCompile(`^(?:and)$`),
		From:             regexp.MustCompile(`(?i)\bfrom\s*$`),
		Between:          regexp.MustCompile(`(?i)\bbetween\s*$`),
		DateTimeGap:      regexp.MustCompile(`^(?:,|on|at)$`),
		Ambiguous:        regexp.MustCompile(`^(?:may|march|mar|fall|spring)$`),
		AmbiguousContext: regexp.MustCompile(`(?i)\b(?:in|on|of|during|by|since|until|till|through|thru|to|from|before|after|between)\s*$`),
		PastPrefix:       regexp.MustCompile(`(?i)\b(?:past|last|previous)\s*$`),
		PastSuffix:       regexp.MustCompile(`(?i)^\s*(?:ago|before)\b`),
		WithinNextPrefix: regexp.MustCompile(`(?i)\bwithin\s+(?:the\s+)?(?:next|coming)\s*$`),
		FuturePrefix:     regexp.MustCompile(`(?i)\b(?:next|coming|upcoming)\s*$`),
		FutureSuffix:     regexp.MustCompile(`(?i)^\s*(?:from\s+now|later|hence)\b`),
		InPrefix:         regexp.MustCompile(`(?i)\bin\s*$`),
		DateUnit:         regexp.MustCompile(`(?i)\b(?:days?|weeks?|months?|years?)\b`),
		TimeUnit:         regexp.MustCompile(`(?i)\b(?:hours?|minutes?|seconds?)\b`),
		RangeUnit:        regexp.MustCompile(`(?i)\b(?:weeks?|months?|years?)\b`),
		WeekOf:           regexp.MustCompile(`(?i)\b(?:the\s+)?week\s+of\s*$`),
		MonthOf:          regexp.MustCompile(`(?i)\b(?:the\s+)?month\s+of\s*$`),
	}
}
