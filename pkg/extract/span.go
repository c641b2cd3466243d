/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package extract locates temporal expressions in text.
package extract

import (
	"time"

	"github.com/dburkart/almanac/pkg/common/parse"
)

// Span types.
const (
	TypeDate          = "date"
	TypeDateTime      = "datetime"
	TypeTime          = "time"
	TypeDuration      = "duration"
	TypeDateRange     = "daterange"
	TypeTimeRange     = "timerange"
	TypeDateTimeRange = "datetimerange"
	TypeTimeZone      = "timezone"
)

// Comments attached to spans extended over a "week of" / "month of" phrase.
const (
	CommentWeekOf  = "WeekOf"
	CommentMonthOf = "MonthOf"
)

// Span is a half-open range [Start, Start+Length) of byte offsets into the
// text it was extracted from.
type Span struct {
	Start   int    `json:"start"`
	Length  int    `json:"length"`
	Text    string `json:"text"`
	Type    string `json:"type"`
	Timex   string `json:"timex,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func (s Span) End() int {
	return s.Start + s.Length
}

func (s Span) location() parse.Location {
	return parse.Location{Start: s.Start, End: s.End()}
}

// An Extractor finds spans in text. Implementations never fail; text without
// matches yields an empty list. The returned spans are ordered by Start and
// do not overlap.
type Extractor interface {
	Extract(text string, ref time.Time) []Span
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(text string, ref time.Time) []Span

func (f ExtractorFunc) Extract(text string, ref time.Time) []Span {
	return f(text, ref)
}
