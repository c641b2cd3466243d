/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

// Infer derives the shape of p from the fields it carries, ignoring any shape
// it was built with. The first matching rule wins:
//
//  1. start and end, both clock only                -> TimeRange
//  2. start and end, either with a time of day      -> DateTimeRange
//  3. start and end                                 -> DateRange
//  4. month+day (definite with a year), or a lone
//     day of week, and no time of day              -> Date
//  5. hour without date fields                      -> Time
//  6. date fields and clock fields                  -> DateTime
//  7. amount and unit                               -> Duration
//  8. part of day with date fields                  -> DateTimeRange
//  9. part of day alone                             -> TimeRange
// 10. season, month, week, year, decade or century  -> DateRange
//
// Anything else has no shape and resolves to nothing.
func Infer(p Property) (Shape, bool) {
	definite := p.hasFullDate()

	if p.hasRange() {
		start, end := p.start, p.end
		switch {
		case clockOnly(start) && clockOnly(end):
			return ShapeTimeRange, false
		case start.hasTimeOfDay() || end.hasTimeOfDay():
			return ShapeDateTimeRange, false
		default:
			return ShapeDateRange, false
		}
	}

	if !p.hasTimeOfDay() {
		if p.month.ok && p.dayOfMonth.ok {
			return ShapeDate, definite
		}
		if p.dayOfWeek.ok && p.dateOnly() == (Property{dayOfWeek: p.dayOfWeek}) {
			return ShapeDate, false
		}
	}

	if p.hour.ok && !p.hasDate() && p.partOfDay == "" {
		return ShapeTime, false
	}

	if p.hasDate() && p.hasClock() {
		return ShapeDateTime, definite
	}

	if p.unit != UnitNone {
		return ShapeDuration, false
	}

	if p.partOfDay != "" {
		if p.hasDate() {
			return ShapeDateTimeRange, definite
		}
		return ShapeTimeRange, false
	}

	if p.season != "" || p.month.ok || p.weekOfYear.ok || p.year.ok || p.decade.ok || p.century.ok {
		return ShapeDateRange, false
	}

	return ShapeNone, false
}

func clockOnly(p *Property) bool {
	return p.hasClock() && !p.hasDate() && p.partOfDay == ""
}
