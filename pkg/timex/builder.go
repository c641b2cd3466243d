/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

import "time"

func (p Property) tagged(shape Shape, definite bool) Property {
	p.shape = shape
	p.definite = definite
	return p
}

// inferred returns p tagged with the shape its fields imply.
func (p Property) inferred() Property {
	shape, definite := Infer(p)
	return p.tagged(shape, definite)
}

// NewDate builds a definite calendar date.
func NewDate(year, month, day int) Property {
	p := Property{year: some(year), month: some(month), dayOfMonth: some(day)}
	return p.tagged(ShapeDate, true)
}

// DateOf builds the definite date of t in t's location.
func DateOf(t time.Time) Property {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// NewMonthDay builds a month and day without a year. It resolves to one
// occurrence in the previous year and one in the current year.
func NewMonthDay(month, day int) Property {
	p := Property{month: some(month), dayOfMonth: some(day)}
	return p.tagged(ShapeDate, false)
}

// NewWeekday builds a bare day of week, 1 for Monday through 7 for Sunday.
// Any other day yields an empty value with no shape.
func NewWeekday(dayOfWeek int) Property {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return Property{}
	}
	p := Property{dayOfWeek: some(dayOfWeek)}
	return p.tagged(ShapeDate, false)
}

// NewTime builds a clock time with no date.
func NewTime(hour, minute, second int) Property {
	p := Property{hour: some(hour), minute: some(minute), second: some(second)}
	return p.tagged(ShapeTime, false)
}

// NewDateTime attaches a clock time to the calendar fields of date.
func NewDateTime(date Property, hour, minute, second int) Property {
	p := date.dateOnly()
	p.hour, p.minute, p.second = some(hour), some(minute), some(second)
	return p.tagged(ShapeDateTime, p.hasFullDate())
}

// NewDuration builds an amount of some unit.
func NewDuration(amount float64, unit Unit) Property {
	p := Property{amount: amount, unit: unit}
	return p.tagged(ShapeDuration, false)
}

// NewMonthRange builds the whole of one month of one year.
func NewMonthRange(year, month int) Property {
	p := Property{year: some(year), month: some(month)}
	return p.tagged(ShapeDateRange, false)
}

// NewMonth builds a month without a year.
func NewMonth(month int) Property {
	p := Property{month: some(month)}
	return p.tagged(ShapeDateRange, false)
}

// NewSeason builds a season, optionally anchored to a year (year 0 leaves the
// year unspecified).
func NewSeason(year int, season string) Property {
	p := Property{season: season}
	if year != 0 {
		p.year = some(year)
	}
	return p.tagged(ShapeDateRange, false)
}

// NewPartOfDay builds a part of day with no date, such as "tonight".
func NewPartOfDay(code string) Property {
	p := Property{partOfDay: code}
	return p.tagged(ShapeTimeRange, false)
}

// NewDatePartOfDay attaches a part of day to the calendar fields of date.
func NewDatePartOfDay(date Property, code string) Property {
	p := date.dateOnly()
	p.partOfDay = code
	return p.tagged(ShapeDateTimeRange, p.hasFullDate())
}

// NewRange builds a range between two values. Its shape follows from the
// fields of start and end.
func NewRange(start, end Property) Property {
	p := Property{start: &start, end: &end}
	return p.inferred()
}

// NewPresent builds the PRESENT_REF value.
func NewPresent() Property {
	return Property{present: true}
}

// WithDuration returns a copy of p carrying the given length. On a range this
// is the length between its bounds. Lengths are never negative, so a negative
// amount leaves p unchanged.
func (p Property) WithDuration(amount float64, unit Unit) Property {
	if amount < 0 {
		return p
	}
	p.amount = amount
	p.unit = unit
	if p.shape == ShapeNone {
		return p.inferred()
	}
	return p
}

// WithMod returns a copy of p carrying m.
func (p Property) WithMod(m Mod) Property {
	p.mod = m
	return p
}
