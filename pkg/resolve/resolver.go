/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package resolve turns TIMEX values into concrete calendar and clock values
// relative to a reference instant.
package resolve

import (
	"strconv"
	"time"

	"github.com/dburkart/almanac/pkg/timex"
)

// Resolve produces the concrete entries for p. Values without a shape, and
// values whose fields cannot be anchored, produce an empty list.
func Resolve(p timex.Property, ref time.Time) []Entry {
	shape := p.Shape()

	switch {
	case shape == timex.ShapeDateTimeRange:
		return resolveDateTimeRange(p, ref)
	case p.Definite() && (shape == timex.ShapeDateTime || shape == timex.ShapeTime):
		return resolveDefiniteTime(p)
	case p.Definite():
		return resolveDefinite(p)
	case shape == timex.ShapeDateRange:
		return resolveDateRange(p, ref)
	case shape == timex.ShapeTimeRange:
		return resolveTimeRange(p)
	case shape == timex.ShapeDateTime:
		return resolveDateTime(p, ref)
	case shape == timex.ShapeDuration:
		return resolveDuration(p)
	case shape == timex.ShapeDate:
		return resolveDate(p, ref)
	case shape == timex.ShapeTime:
		return resolveTime(p)
	}

	return []Entry{}
}

// ResolveString parses and resolves a canonical TIMEX string. Malformed
// input resolves to an empty list.
func ResolveString(s string, ref time.Time) []Entry {
	p, err := timex.Parse(s)
	if err != nil {
		return []Entry{}
	}
	return Resolve(p, ref)
}

// ResolveAll resolves each string in turn and concatenates the entries.
// Malformed strings contribute nothing; the rest still resolve.
func ResolveAll(ref time.Time, timexes ...string) []Entry {
	entries := []Entry{}
	for _, s := range timexes {
		entries = append(entries, ResolveString(s, ref)...)
	}
	return entries
}

func resolveDefinite(p timex.Property) []Entry {
	value, ok := dateValue(p)
	if !ok {
		return []Entry{}
	}
	return []Entry{{Timex: p.String(), Type: timex.TagDate, Value: value}}
}

func resolveDefiniteTime(p timex.Property) []Entry {
	value, ok := dateValue(p)
	if !ok {
		return []Entry{}
	}
	return []Entry{{Timex: p.String(), Type: timex.TagDateTime, Value: value + " " + timeValue(p)}}
}

func resolveTime(p timex.Property) []Entry {
	return []Entry{{Timex: p.String(), Type: timex.TagTime, Value: timeValue(p)}}
}

func resolveDuration(p timex.Property) []Entry {
	entry := Entry{Timex: p.String(), Type: timex.TagDuration, Value: NotResolved}

	amount, unit, _ := p.Duration()
	if seconds, ok := unit.Seconds(); ok {
		entry.Value = "PT" + strconv.FormatFloat(amount*seconds, 'f', -1, 64) + "S"
	}
	return []Entry{entry}
}

// ambiguousDates returns the last and the next occurrence of a value that
// lacks a year, or nothing if p has neither month+day nor a day of week.
func ambiguousDates(p timex.Property, ref time.Time) []string {
	month, hasMonth := p.Month()
	day, hasDay := p.DayOfMonth()
	if hasMonth && hasDay {
		return []string{
			formatDate(ref.Year()-1, month, day),
			formatDate(ref.Year(), month, day),
		}
	}

	if dow, ok := p.DayOfWeek(); ok {
		wd, ok := weekday(dow)
		if !ok {
			return nil
		}
		return []string{
			lastWeekday(ref, wd).Format(dateLayout),
			nextWeekday(ref, wd).Format(dateLayout),
		}
	}

	return nil
}

func resolveDate(p timex.Property, ref time.Time) []Entry {
	entries := []Entry{}
	for _, d := range ambiguousDates(p, ref) {
		entries = append(entries, Entry{Timex: p.String(), Type: timex.TagDate, Value: d})
	}
	return entries
}

func resolveDateTime(p timex.Property, ref time.Time) []Entry {
	clock := timeValue(p)
	entries := resolveDate(p, ref)
	for i := range entries {
		entries[i].Value += " " + clock
		entries[i].Type = timex.TagDateTime
	}
	return entries
}

func resolveDateRange(p timex.Property, ref time.Time) []Entry {
	key := p.String()

	if p.Season() != "" {
		return []Entry{{Timex: key, Type: timex.TagDateRange, Value: NotResolved}}
	}

	month, hasMonth := p.Month()
	if year, ok := p.Year(); ok && hasMonth {
		start, end := monthBounds(year, month)
		return []Entry{{Timex: key, Type: timex.TagDateRange, Start: start, End: end}}
	}

	if hasMonth {
		lastStart, lastEnd := monthBounds(ref.Year()-1, month)
		nextStart, nextEnd := monthBounds(ref.Year(), month)
		return []Entry{
			{Timex: key, Type: timex.TagDateRange, Start: lastStart, End: lastEnd},
			{Timex: key, Type: timex.TagDateRange, Start: nextStart, End: nextEnd},
		}
	}

	start, hasStart := p.Start()
	end, hasEnd := p.End()
	if hasStart && hasEnd {
		return []Entry{{
			Timex: key,
			Type:  timex.TagDateRange,
			Start: orNotResolved(dateValue(start)),
			End:   orNotResolved(dateValue(end)),
		}}
	}

	return []Entry{}
}

func resolveTimeRange(p timex.Property) []Entry {
	key := p.String()

	if code := p.PartOfDay(); code != "" {
		entry := Entry{Timex: key, Type: timex.TagTimeRange, Start: NotResolved, End: NotResolved}
		if bounds, ok := partOfDayBounds[code]; ok {
			entry.Start, entry.End = bounds[0], bounds[1]
		}
		return []Entry{entry}
	}

	start, hasStart := p.Start()
	end, hasEnd := p.End()
	if !hasStart || !hasEnd {
		return []Entry{}
	}
	return []Entry{{Timex: key, Type: timex.TagTimeRange, Start: timeValue(start), End: timeValue(end)}}
}

func resolveDateTimeRange(p timex.Property, ref time.Time) []Entry {
	key := p.String()

	if code := p.PartOfDay(); code != "" {
		bounds, known := partOfDayBounds[code]

		var dates []string
		if d, ok := dateValue(p); ok {
			dates = []string{d}
		} else {
			dates = ambiguousDates(p, ref)
		}

		entries := []Entry{}
		for _, d := range dates {
			entry := Entry{Timex: key, Type: timex.TagDateTimeRange, Start: NotResolved, End: NotResolved}
			if known {
				entry.Start, entry.End = d+" "+bounds[0], d+" "+bounds[1]
			}
			entries = append(entries, entry)
		}
		return entries
	}

	start, hasStart := p.Start()
	end, hasEnd := p.End()
	if !hasStart || !hasEnd {
		return []Entry{}
	}
	return []Entry{{
		Timex: key,
		Type:  timex.TagDateTimeRange,
		Start: dateTimeValue(start),
		End:   dateTimeValue(end),
	}}
}

func dateTimeValue(p timex.Property) string {
	date, ok := dateValue(p)
	if !ok {
		return NotResolved
	}
	return date + " " + timeValue(p)
}

func orNotResolved(value string, ok bool) string {
	if !ok {
		return NotResolved
	}
	return value
}
