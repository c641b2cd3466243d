/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/dburkart/almanac/pkg/timex"
)

// Pattern kinds. The kind of a pattern selects how its named groups are
// turned into a timex.
const (
	KindDate           = "date"
	KindRelativeDay    = "relative-day"
	KindWeekday        = "weekday"
	KindMonth          = "month"
	KindSeason         = "season"
	KindQuarter        = "quarter"
	KindDecade         = "decade"
	KindRelativePeriod = "relative-period"
	KindYear           = "year"
	KindYearPeriod     = "year-period"
	KindTime           = "time"
	KindPartOfDay      = "part-of-day"
	KindDuration       = "duration"
)

// Kinds lists every pattern kind Normalize understands.
var Kinds = []string{
	KindDate, KindRelativeDay, KindWeekday, KindMonth, KindSeason, KindQuarter,
	KindDecade, KindRelativePeriod, KindYear, KindYearPeriod, KindTime,
	KindPartOfDay, KindDuration,
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

func atof(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monday returns the Monday starting the week containing t.
func monday(t time.Time) time.Time {
	t = midnight(t)
	return t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
}

// validDate reports whether day exists in month. Without a year, February 29
// is allowed.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	if year == 0 {
		year = 2000
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Day() == day
}

// Normalize turns the named groups of a pattern match into a timex value,
// interpreting relative words against ref. It reports false when the groups
// do not describe a real value.
func (l *Lexicon) Normalize(kind string, g map[string]string, ref time.Time) (timex.Property, bool) {
	switch kind {
	case KindDate:
		return l.date(g, ref)
	case KindRelativeDay:
		off, ok := l.RelativeDay(g["relday"])
		if !ok {
			return timex.Property{}, false
		}
		return timex.DateOf(midnight(ref).AddDate(0, 0, off)), true
	case KindWeekday:
		return l.weekday(g, ref)
	case KindMonth:
		m, ok := l.Month(g["monthname"])
		if !ok {
			return timex.Property{}, false
		}
		if y, ok := l.year(g, ref); ok {
			return timex.NewMonthRange(y, m), true
		}
		return timex.NewMonth(m), true
	case KindSeason:
		s, ok := l.Season(g["season"])
		if !ok {
			return timex.Property{}, false
		}
		y, _ := l.year(g, ref)
		return timex.NewSeason(y, s), true
	case KindQuarter:
		return l.quarter(g, ref)
	case KindDecade:
		return decade(g["decade"], ref)
	case KindRelativePeriod:
		return l.relativePeriod(g, ref)
	case KindYear:
		y, ok := l.year(g, ref)
		if !ok {
			return timex.Property{}, false
		}
		return yearRange(y, y+1), true
	case KindYearPeriod:
		start, ok1 := atoi(g["start"])
		end, ok2 := atoi(g["end"])
		if !ok1 || !ok2 || end <= start {
			return timex.Property{}, false
		}
		return yearRange(start, end), true
	case KindTime:
		return l.clock(g)
	case KindPartOfDay:
		code, ok := l.PartOfDay(g["partofday"])
		if !ok {
			return timex.Property{}, false
		}
		if off, ok := l.RelativeDay(g["relday"]); ok {
			return timex.NewDatePartOfDay(timex.DateOf(midnight(ref).AddDate(0, 0, off)), code), true
		}
		return timex.NewPartOfDay(code), true
	case KindDuration:
		amount, ok := l.Amount(g["amount"])
		if g["amount"] == "" {
			amount, ok = 1, true
		}
		unit, uok := l.Unit(g["unit"])
		if !ok || !uok || amount <= 0 {
			return timex.Property{}, false
		}
		return timex.NewDuration(amount, unit), true
	}
	return timex.Property{}, false
}

// year reads an explicit year group, two-digit years landing in the 2000s, or
// a relative word counted from the year of ref.
func (l *Lexicon) year(g map[string]string, ref time.Time) (int, bool) {
	if y, ok := atoi(g["year"]); ok {
		if len(strings.TrimSpace(g["year"])) <= 2 {
			y += 2000
		}
		return y, true
	}
	if rel, ok := l.Relative(g["relative"]); ok {
		return ref.Year() + rel, true
	}
	return 0, false
}

func (l *Lexicon) date(g map[string]string, ref time.Time) (timex.Property, bool) {
	month, ok := atoi(g["month"])
	if !ok {
		month, ok = l.Month(g["monthname"])
	}
	day, dok := l.Number(g["day"])
	if !ok || !dok {
		return timex.Property{}, false
	}

	year, hasYear := 0, false
	if g["year"] != "" {
		year, hasYear = l.year(g, ref)
	}
	if !validDate(year, month, day) {
		return timex.Property{}, false
	}
	if hasYear {
		return timex.NewDate(year, month, day), true
	}
	return timex.NewMonthDay(month, day), true
}

func (l *Lexicon) weekday(g map[string]string, ref time.Time) (timex.Property, bool) {
	dow, ok := l.Weekday(g["weekday"])
	if !ok {
		return timex.Property{}, false
	}
	rel, ok := l.Relative(g["relative"])
	if !ok {
		return timex.NewWeekday(dow), true
	}

	day := midnight(ref)
	current := (int(day.Weekday())+6)%7 + 1
	switch {
	case rel < 0:
		back := current - dow
		if back <= 0 {
			back += 7
		}
		day = day.AddDate(0, 0, -back)
	case rel > 0:
		ahead := dow - current
		if ahead <= 0 {
			ahead += 7
		}
		day = day.AddDate(0, 0, ahead)
	default:
		day = monday(ref).AddDate(0, 0, dow-1)
	}
	return timex.DateOf(day), true
}

func (l *Lexicon) quarter(g map[string]string, ref time.Time) (timex.Property, bool) {
	q, ok := l.Number(g["quarter"])
	if !ok || q < 1 || q > 4 {
		return timex.Property{}, false
	}
	year, ok := l.year(g, ref)
	if !ok {
		year = ref.Year()
	}
	first := time.Date(year, time.Month(3*q-2), 1, 0, 0, 0, 0, time.UTC)
	r := timex.NewRange(timex.DateOf(first), timex.DateOf(first.AddDate(0, 3, 0)))
	return r.WithDuration(3, timex.UnitMonth), true
}

// decade reads "90" or "1990". Two-digit decades land in the most recent
// century not after ref.
func decade(s string, ref time.Time) (timex.Property, bool) {
	n, ok := atoi(s)
	if !ok || n%10 != 0 {
		return timex.Property{}, false
	}
	if len(strings.TrimSpace(s)) == 2 {
		century := ref.Year() / 100 * 100
		if century+n > ref.Year() {
			century -= 100
		}
		n += century
	}
	return timex.NewRange(timex.NewDate(n, 1, 1), timex.NewDate(n+10, 1, 1)).WithDuration(10, timex.UnitYear), true
}

func (l *Lexicon) relativePeriod(g map[string]string, ref time.Time) (timex.Property, bool) {
	rel, ok := l.Relative(g["relative"])
	unit, uok := l.Unit(g["unit"])
	if !ok || !uok {
		return timex.Property{}, false
	}

	switch unit {
	case timex.UnitDay:
		return timex.DateOf(midnight(ref).AddDate(0, 0, rel)), true
	case timex.UnitWeek:
		start := monday(ref).AddDate(0, 0, 7*rel)
		r := timex.NewRange(timex.DateOf(start), timex.DateOf(start.AddDate(0, 0, 7)))
		return r.WithDuration(7, timex.UnitDay), true
	case timex.UnitMonth:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, rel, 0)
		return timex.NewMonthRange(first.Year(), int(first.Month())), true
	case timex.UnitYear:
		y := ref.Year() + rel
		return yearRange(y, y+1), true
	}
	return timex.Property{}, false
}

func yearRange(start, end int) timex.Property {
	r := timex.NewRange(timex.NewDate(start, 1, 1), timex.NewDate(end, 1, 1))
	return r.WithDuration(float64(end-start), timex.UnitYear)
}

func (l *Lexicon) clock(g map[string]string) (timex.Property, bool) {
	hour, ok := l.Number(g["hour"])
	if !ok {
		return timex.Property{}, false
	}
	minute := 0
	if g["minute"] != "" {
		if minute, ok = atoi(g["minute"]); !ok || minute > 59 {
			return timex.Property{}, false
		}
	}

	if pm, ok := l.Meridiem(g["meridiem"]); ok {
		if hour < 1 || hour > 12 {
			return timex.Property{}, false
		}
		hour %= 12
		if pm {
			hour += 12
		}
	}
	if hour < 0 || hour > 23 {
		return timex.Property{}, false
	}
	return timex.NewTime(hour, minute, 0), true
}
