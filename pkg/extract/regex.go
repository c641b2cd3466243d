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

// Pattern is one compiled locale expression. Kind names the normalization
// applied to its named groups.
type Pattern struct {
	Kind   string
	Regexp *regexp.Regexp
}

// Groups collects the named groups of match m that took part in the match.
func Groups(re *regexp.Regexp, text string, m []int) map[string]string {
	g := map[string]string{}
	for i, name := range re.SubexpNames() {
		if name == "" || 2*i+1 >= len(m) || m[2*i] < 0 {
			continue
		}
		g[name] = text[m[2*i]:m[2*i+1]]
	}
	return g
}

// TypeOf maps the shape of a value onto the span type reporting it.
func TypeOf(shape timex.Shape) string {
	switch shape {
	case timex.ShapeDate:
		return TypeDate
	case timex.ShapeTime:
		return TypeTime
	case timex.ShapeDateTime:
		return TypeDateTime
	case timex.ShapeDuration:
		return TypeDuration
	case timex.ShapeDateRange:
		return TypeDateRange
	case timex.ShapeTimeRange:
		return TypeTimeRange
	case timex.ShapeDateTimeRange:
		return TypeDateTimeRange
	}
	return ""
}

// RegexExtractor reports every match of its patterns that normalizes to a
// value. Overlapping matches are merged, the earlier and longer match
// winning.
type RegexExtractor struct {
	// Type labels spans whose value has no shape.
	Type     string
	Patterns []Pattern
	Lexicon  *Lexicon
}

func (e *RegexExtractor) Extract(text string, ref time.Time) []Span {
	return Merge(text, e.candidates(text, ref))
}

func (e *RegexExtractor) candidates(text string, ref time.Time) []Candidate {
	var c []Candidate
	for _, p := range e.Patterns {
		for _, m := range p.Regexp.FindAllStringSubmatchIndex(text, -1) {
			if m[1] <= m[0] {
				continue
			}
			prop, ok := e.Lexicon.Normalize(p.Kind, Groups(p.Regexp, text, m), ref)
			if !ok {
				continue
			}
			span := Span{Start: m[0], Length: m[1] - m[0], Type: TypeOf(prop.Shape()), Timex: prop.String()}
			if span.Type == "" {
				span.Type = e.Type
			}
			c = append(c, Candidate{Span: span, Rank: RankPoint})
		}
	}
	return c
}
