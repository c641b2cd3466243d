/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/dburkart/almanac/pkg/timex"
)

// DatePeriodConfig carries the culture-specific pieces of the date period
// extractor. Any nil expression disables the rule that uses it.
//
// Till, Connector, DateTimeGap and Ambiguous must match a whole trimmed,
// lower-cased string. From, Between, AmbiguousContext, WeekOf, MonthOf and the
// *Prefix expressions must be anchored at the end of the text they are applied
// to; the *Suffix expressions at the start.
type DatePeriodConfig struct {
	Lexicon   *Lexicon
	DatePoint Extractor
	TimePoint Extractor
	Duration  Extractor

	// SimpleCases are whole-expression patterns such as "Q3 2019".
	SimpleCases []Pattern
	// YearPeriods match explicit year ranges such as "2010-2012".
	YearPeriods []Pattern

	// Year matches a bare year; matches consisting of nothing but a year
	// must fall within [MinYear, MaxYear].
	Year    *regexp.Regexp
	MinYear int
	MaxYear int

	Till      *regexp.Regexp
	Connector *regexp.Regexp
	From      *regexp.Regexp
	Between   *regexp.Regexp

	// DateTimeGap joins a date to an adjacent time range, as in "June 20 at
	// 3pm to 5pm". An empty gap always joins.
	DateTimeGap *regexp.Regexp

	// Ambiguous matches words such as "may" or "fall" that are only
	// temporal when AmbiguousContext precedes them. A simple case consisting
	// of nothing but such a word is dropped otherwise.
	Ambiguous        *regexp.Regexp
	AmbiguousContext *regexp.Regexp

	PastPrefix       *regexp.Regexp
	PastSuffix       *regexp.Regexp
	WithinNextPrefix *regexp.Regexp
	FuturePrefix     *regexp.Regexp
	FutureSuffix     *regexp.Regexp
	InPrefix         *regexp.Regexp

	DateUnit  *regexp.Regexp
	TimeUnit  *regexp.Regexp
	RangeUnit *regexp.Regexp

	WeekOf  *regexp.Regexp
	MonthOf *regexp.Regexp
}

// DatePeriodExtractor merges single dates, times, durations and connective
// words into date, time and date-time ranges.
type DatePeriodExtractor struct {
	config DatePeriodConfig
}

func NewDatePeriodExtractor(config DatePeriodConfig) *DatePeriodExtractor {
	if config.MinYear == 0 && config.MaxYear == 0 {
		config.MinYear, config.MaxYear = 1500, 2100
	}
	return &DatePeriodExtractor{config: config}
}

func (e *DatePeriodExtractor) Extract(text string, ref time.Time) []Span {
	return Merge(text, e.Candidates(text, ref))
}

// Candidates returns every span the extraction rules produce, before merging.
func (e *DatePeriodExtractor) Candidates(text string, ref time.Time) []Candidate {
	var points, times []Span
	if e.config.DatePoint != nil {
		points = e.config.DatePoint.Extract(text, ref)
	}
	if e.config.TimePoint != nil {
		times = e.config.TimePoint.Extract(text, ref)
	}

	all := e.matchPatterns(text, ref, e.config.SimpleCases)
	simple := e.unambiguous(text, all)
	timeRanges := e.joinPoints(text, times, TypeTimeRange, timeRangeTimex)

	var c []Candidate
	c = append(c, Candidates(RankPattern, unsubsumed(simple, points))...)
	c = append(c, Candidates(RankMerge, e.mergeTwoPoints(text, points))...)
	c = append(c, Candidates(RankMerge, e.mergeDurations(text, ref))...)
	c = append(c, Candidates(RankMerge, e.singlePointWithContext(text, points))...)
	c = append(c, Candidates(RankMerge, e.mergeComplex(text, points, all))...)
	c = append(c, Candidates(RankPattern, e.matchPatterns(text, ref, e.config.YearPeriods))...)
	c = append(c, Candidates(RankMerge, timeRanges)...)
	c = append(c, Candidates(RankMerge, e.mergeDateAndTimeRange(text, points, timeRanges))...)
	return c
}

func (e *DatePeriodExtractor) matchPatterns(text string, ref time.Time, patterns []Pattern) []Span {
	var spans []Span
	for _, p := range patterns {
		for _, m := range p.Regexp.FindAllStringSubmatchIndex(text, -1) {
			if m[1] <= m[0] || !e.validYear(text[m[0]:m[1]]) {
				continue
			}
			g := Groups(p.Regexp, text, m)
			if p.Kind == KindYearPeriod && !(e.inYears(g["start"]) && e.inYears(g["end"])) {
				continue
			}
			span := Span{Start: m[0], Length: m[1] - m[0], Type: TypeDateRange}
			if prop, ok := e.config.Lexicon.Normalize(p.Kind, g, ref); ok {
				span.Timex = prop.String()
			}
			spans = append(spans, span)
		}
	}
	return spans
}

// validYear reports false only for text that is nothing but a year outside
// the configured bounds.
func (e *DatePeriodExtractor) validYear(s string) bool {
	if e.config.Year == nil {
		return true
	}
	m := e.config.Year.FindStringSubmatchIndex(s)
	if m == nil || m[0] != 0 || m[1] != len(s) {
		return true
	}

	digits := s
	if g, ok := Groups(e.config.Year, s, m)["year"]; ok {
		digits = g
	}
	return e.inYears(digits)
}

func (e *DatePeriodExtractor) inYears(digits string) bool {
	y, ok := atoi(digits)
	return ok && y >= e.config.MinYear && y <= e.config.MaxYear
}

// ambiguous reports whether s is a word that is only temporal in context,
// with no such context before it.
func (e *DatePeriodExtractor) ambiguous(text string, s Span) bool {
	word := strings.ToLower(strings.TrimSpace(text[s.Start:s.End()]))
	return matches(e.config.Ambiguous, word) && !matches(e.config.AmbiguousContext, text[:s.Start])
}

func (e *DatePeriodExtractor) unambiguous(text string, spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if !e.ambiguous(text, s) {
			out = append(out, s)
		}
	}
	return out
}

func matches(re *regexp.Regexp, s string) bool {
	return re != nil && re.MatchString(s)
}

func find(re *regexp.Regexp, s string) []int {
	if re == nil {
		return nil
	}
	return re.FindStringIndex(s)
}

// mergeTwoPoints joins adjacent dates into date ranges.
func (e *DatePeriodExtractor) mergeTwoPoints(text string, points []Span) []Span {
	return e.joinPoints(text, points, TypeDateRange, rangeTimex)
}

// joinPoints joins adjacent spans separated by a till or connector word. A
// pair joined by "till" also absorbs a preceding "from" or "between"; a pair
// joined by a plain connector needs the "between". A pair value reports
// false when the two spans cannot form a range, leaving them unjoined.
func (e *DatePeriodExtractor) joinPoints(text string, points []Span, typ string, value func(a, b Span) (string, bool)) []Span {
	var merged []Span
	for i := 0; i+1 < len(points); {
		a, b := points[i], points[i+1]
		if a.End() > b.Start {
			i++
			continue
		}

		gap := strings.ToLower(strings.TrimSpace(text[a.End():b.Start]))
		before := text[:a.Start]
		start := -1

		switch {
		case matches(e.config.Till, gap):
			start = a.Start
			if m := find(e.config.From, before); m != nil {
				start = m[0]
			} else if m := find(e.config.Between, before); m != nil {
				start = m[0]
			}
		case matches(e.config.Connector, gap):
			if m := find(e.config.Between, before); m != nil {
				start = m[0]
			}
		}

		if start < 0 {
			i++
			continue
		}
		v, ok := value(a, b)
		if !ok {
			i++
			continue
		}

		merged = append(merged, Span{
			Start:  start,
			Length: b.End() - start,
			Type:   typ,
			Timex:  v,
		})
		i += 2
	}
	return merged
}

// rangeTimex joins the values of two spans into one range, or returns "" if
// either side has none. A start without a year borrows the year of the end,
// or the year before when that would put the start after the end. A start
// that still falls after the end is no range.
func rangeTimex(a, b Span) (string, bool) {
	if a.Timex == "" || b.Timex == "" {
		return "", true
	}
	start, err := timex.Parse(a.Timex)
	if err != nil {
		return "", true
	}
	end, err := timex.Parse(b.Timex)
	if err != nil {
		return "", true
	}

	s, e := bound(borrowYear(start, end)), bound(end)
	r := timex.NewRange(s, e)
	if isDate(s) && isDate(e) {
		if dateTime(s).After(dateTime(e)) {
			return "", false
		}
		amount, unit := between(dateTime(s), dateTime(e))
		r = r.WithDuration(amount, unit)
	}
	return r.String(), true
}

func isDate(p timex.Property) bool {
	return p.Definite() && p.Shape() == timex.ShapeDate
}

func dateTime(p timex.Property) time.Time {
	y, _ := p.Year()
	m, _ := p.Month()
	d, _ := p.DayOfMonth()
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// between measures s to e in whole years or months when both fall on the
// first of a year or month, and in days otherwise.
func between(s, e time.Time) (float64, timex.Unit) {
	if s.Day() == 1 && e.Day() == 1 {
		months := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
		if s.Month() == time.January && e.Month() == time.January {
			return float64(months / 12), timex.UnitYear
		}
		return float64(months), timex.UnitMonth
	}
	return e.Sub(s).Hours() / 24, timex.UnitDay
}

func borrowYear(start, end timex.Property) timex.Property {
	if _, ok := start.Year(); ok {
		return start
	}
	m, mok := start.Month()
	y, ok := end.Year()
	if !ok {
		if s, sok := end.Start(); sok {
			y, ok = s.Year()
		}
	}
	if !ok || !mok {
		return start
	}

	d, dok := start.DayOfMonth()
	in := func(y int) (timex.Property, bool) {
		if !dok {
			return timex.NewMonthRange(y, m), true
		}
		return timex.NewDate(y, m, d), validDate(y, m, d)
	}

	p, valid := in(y)
	if s, e := bound(p), bound(end); !valid || (isDate(s) && isDate(e) && dateTime(s).After(dateTime(e))) {
		if prev, ok := in(y - 1); ok {
			return prev
		}
	}
	if !valid {
		return start
	}
	return p
}

// bound returns the first day a value covers: the start of a range, the
// first of a month, or the value itself.
func bound(p timex.Property) timex.Property {
	if s, ok := p.Start(); ok {
		return s
	}
	y, yok := p.Year()
	m, mok := p.Month()
	if _, dok := p.DayOfMonth(); yok && mok && !dok {
		return timex.NewDate(y, m, 1)
	}
	return p
}

// mergeDurations extends date-unit durations over a past or future modifier.
func (e *DatePeriodExtractor) mergeDurations(text string, ref time.Time) []Span {
	if e.config.Duration == nil {
		return nil
	}

	var merged []Span
	for _, d := range e.config.Duration.Extract(text, ref) {
		if !matches(e.config.DateUnit, d.Text) {
			continue
		}

		before, after := text[:d.Start], text[d.End():]
		if strings.TrimSpace(before) == "" && strings.TrimSpace(after) == "" {
			continue
		}

		if span, ok := e.extendDuration(d, before, after, ref); ok {
			merged = append(merged, span)
		}
	}
	return merged
}

func (e *DatePeriodExtractor) extendDuration(d Span, before, after string, ref time.Time) (Span, bool) {
	span := Span{Start: d.Start, Length: d.Length, Type: TypeDateRange}
	extendBack := func(m []int) {
		span.Start = m[0]
		span.Length = d.End() - m[0]
	}
	extendForward := func(m []int) {
		span.Length = d.Length + m[1]
	}

	switch {
	case find(e.config.PastPrefix, before) != nil:
		extendBack(find(e.config.PastPrefix, before))
		span.Timex = durationRange(d, ref, true)
	case find(e.config.PastSuffix, after) != nil:
		extendForward(find(e.config.PastSuffix, after))
		span.Timex = durationRange(d, ref, true)
	case find(e.config.WithinNextPrefix, before) != nil && matches(e.config.DateUnit, d.Text) && !matches(e.config.TimeUnit, d.Text):
		extendBack(find(e.config.WithinNextPrefix, before))
		span.Timex = durationRange(d, ref, false)
	case find(e.config.FuturePrefix, before) != nil:
		extendBack(find(e.config.FuturePrefix, before))
		span.Timex = durationRange(d, ref, false)
	case find(e.config.FutureSuffix, after) != nil:
		extendForward(find(e.config.FutureSuffix, after))
		span.Timex = durationRange(d, ref, false)
	case find(e.config.InPrefix, before) != nil && matches(e.config.RangeUnit, d.Text):
		extendBack(find(e.config.InPrefix, before))
		span.Timex = durationRange(d, ref, false)
	default:
		return Span{}, false
	}
	return span, true
}

// durationRange anchors the duration of d at ref, reaching back into the
// past or forward into the future.
func durationRange(d Span, ref time.Time, past bool) string {
	p, err := timex.Parse(d.Timex)
	if err != nil {
		return ""
	}
	amount, unit, ok := p.Duration()
	n := int(amount)
	if !ok || float64(n) != amount {
		return ""
	}
	if past {
		n = -n
	}

	anchor := midnight(ref)
	if unit.IsTime() {
		anchor = ref.Truncate(time.Second)
	}

	var other time.Time
	switch unit {
	case timex.UnitYear:
		other = anchor.AddDate(n, 0, 0)
	case timex.UnitMonth:
		other = anchor.AddDate(0, n, 0)
	case timex.UnitWeek:
		other = anchor.AddDate(0, 0, 7*n)
	case timex.UnitDay:
		other = anchor.AddDate(0, 0, n)
	case timex.UnitHour:
		other = anchor.Add(time.Duration(n) * time.Hour)
	case timex.UnitMinute:
		other = anchor.Add(time.Duration(n) * time.Minute)
	case timex.UnitSecond:
		other = anchor.Add(time.Duration(n) * time.Second)
	default:
		return ""
	}

	point := func(t time.Time) timex.Property {
		if unit.IsTime() {
			return timex.NewDateTime(timex.DateOf(t), t.Hour(), t.Minute(), t.Second())
		}
		return timex.DateOf(t)
	}

	var r timex.Property
	if past {
		r = timex.NewRange(point(other), point(anchor))
	} else {
		r = timex.NewRange(point(anchor), point(other))
	}
	return r.WithDuration(amount, unit).String()
}

// singlePointWithContext extends a date preceded by "week of" or "month of"
// over that phrase.
func (e *DatePeriodExtractor) singlePointWithContext(text string, points []Span) []Span {
	var spans []Span
	for _, p := range points {
		before := text[:p.Start]

		if m := find(e.config.WeekOf, before); m != nil {
			spans = append(spans, Span{
				Start:   m[0],
				Length:  p.End() - m[0],
				Type:    TypeDateRange,
				Timex:   weekOf(p.Timex),
				Comment: CommentWeekOf,
			})
		} else if m := find(e.config.MonthOf, before); m != nil {
			spans = append(spans, Span{
				Start:   m[0],
				Length:  p.End() - m[0],
				Type:    TypeDateRange,
				Timex:   monthOf(p.Timex),
				Comment: CommentMonthOf,
			})
		}
	}
	return spans
}

func definiteDate(s string) (time.Time, bool) {
	p, err := timex.Parse(s)
	if err != nil || !p.Definite() || p.Shape() != timex.ShapeDate {
		return time.Time{}, false
	}
	return dateTime(p), true
}

func weekOf(s string) string {
	t, ok := definiteDate(s)
	if !ok {
		return ""
	}
	start := monday(t)
	r := timex.NewRange(timex.DateOf(start), timex.DateOf(start.AddDate(0, 0, 7)))
	return r.WithDuration(7, timex.UnitDay).String()
}

func monthOf(s string) string {
	t, ok := definiteDate(s)
	if !ok {
		return ""
	}
	return timex.NewMonthRange(t.Year(), int(t.Month())).String()
}

// mergeComplex runs the two-point merge over dates mixed with the simple
// case spans, so "March to May 2023" joins a month to a month-year. The mix
// is reduced first: dates outrank simple cases, and of two overlapping simple
// cases the earlier and longer one wins, so "Nov 2023" hides its "2023".
//
// An ambiguous word may end a range opened by "between", as in "between
// March and May"; elsewhere it needs its own context.
func (e *DatePeriodExtractor) mergeComplex(text string, points, simple []Span) []Span {
	var c []Candidate
	c = append(c, Candidates(RankPattern, points)...)
	c = append(c, Candidates(RankPoint, simple)...)

	return e.joinPoints(text, Merge(text, c), TypeDateRange, func(a, b Span) (string, bool) {
		if e.ambiguous(text, a) || (e.ambiguous(text, b) && find(e.config.Between, text[:a.Start]) == nil) {
			return "", false
		}
		return rangeTimex(a, b)
	})
}

// timeRangeTimex joins two clock times, as in "(T15,T17,PT2H)". A range that
// ends at or before its start runs past midnight.
func timeRangeTimex(a, b Span) (string, bool) {
	start, sok := clockOf(a.Timex)
	end, eok := clockOf(b.Timex)
	if !sok || !eok {
		return "", false
	}
	r := timex.NewRange(start, end)
	if amount, unit, ok := clockLength(start, end); ok {
		r = r.WithDuration(amount, unit)
	}
	return r.String(), true
}

// clockOf parses s as a bare clock time; parts of day do not count.
func clockOf(s string) (timex.Property, bool) {
	p, err := timex.Parse(s)
	if err != nil || p.Shape() != timex.ShapeTime {
		return timex.Property{}, false
	}
	if _, ok := p.Hour(); !ok || p.PartOfDay() != "" {
		return timex.Property{}, false
	}
	return p, true
}

func seconds(p timex.Property) int {
	h, _ := p.Hour()
	m, _ := p.Minute()
	s, _ := p.Second()
	return h*3600 + m*60 + s
}

// clockLength measures start to end in whole hours when possible, else in
// minutes or seconds.
func clockLength(start, end timex.Property) (float64, timex.Unit, bool) {
	d := seconds(end) - seconds(start)
	if d <= 0 {
		d += 24 * 3600
	}
	switch {
	case d%3600 == 0:
		return float64(d / 3600), timex.UnitHour, true
	case d%60 == 0:
		return float64(d / 60), timex.UnitMinute, true
	default:
		return float64(d), timex.UnitSecond, true
	}
}

// mergeDateAndTimeRange joins a date to a time range on either side of it,
// as in "June 20 from 3pm to 5pm" or "3pm to 5pm on June 20".
func (e *DatePeriodExtractor) mergeDateAndTimeRange(text string, points, timeRanges []Span) []Span {
	var merged []Span
	for _, r := range timeRanges {
		for _, p := range points {
			var lo, hi Span
			switch {
			case p.End() <= r.Start:
				lo, hi = p, r
			case r.End() <= p.Start:
				lo, hi = r, p
			default:
				continue
			}
			if !e.dateTimeGap(text[lo.End():hi.Start]) {
				continue
			}
			v, ok := dateTimeRangeTimex(p.Timex, r.Timex)
			if !ok {
				continue
			}
			merged = append(merged, Span{
				Start:  lo.Start,
				Length: hi.End() - lo.Start,
				Type:   TypeDateTimeRange,
				Timex:  v,
			})
		}
	}
	return merged
}

func (e *DatePeriodExtractor) dateTimeGap(gap string) bool {
	gap = strings.ToLower(strings.TrimSpace(gap))
	return gap == "" || matches(e.config.DateTimeGap, gap)
}

// dateTimeRangeTimex places both ends of a time range on date. On a definite
// date, an end at or before the start falls on the next day.
func dateTimeRangeTimex(date, times string) (string, bool) {
	d, err := timex.Parse(date)
	if err != nil || d.Shape() != timex.ShapeDate {
		return "", false
	}
	r, err := timex.Parse(times)
	if err != nil || r.Shape() != timex.ShapeTimeRange {
		return "", false
	}
	start, _ := r.Start()
	end, _ := r.End()

	endDate := d
	if isDate(d) && seconds(end) <= seconds(start) {
		endDate = timex.DateOf(dateTime(d).AddDate(0, 0, 1))
	}

	at := func(date, clock timex.Property) timex.Property {
		h, _ := clock.Hour()
		m, _ := clock.Minute()
		s, _ := clock.Second()
		return timex.NewDateTime(date, h, m, s)
	}

	dr := timex.NewRange(at(d, start), at(endDate, end))
	if amount, unit, ok := r.Duration(); ok {
		dr = dr.WithDuration(amount, unit)
	}
	return dr.String(), true
}

// unsubsumed returns the spans not contained in any of points.
func unsubsumed(spans, points []Span) []Span {
	var out []Span
	for _, s := range spans {
		subsumed := false
		for _, p := range points {
			if p.location().Contains(s.location()) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, s)
		}
	}
	return out
}
