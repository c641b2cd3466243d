/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

// field is an optional integer component of a Property.
type field struct {
	v  int
	ok bool
}

func some(v int) field {
	return field{v: v, ok: true}
}

func (f field) get() (int, bool) {
	return f.v, f.ok
}

// Property is an immutable TIMEX value. It is only built through the
// constructors in this package or by Parse; every derived value is a copy.
type Property struct {
	year       field
	month      field
	dayOfMonth field
	dayOfWeek  field
	weekOfYear field
	decade     field
	century    field
	season     string

	hour   field
	minute field
	second field

	partOfDay string
	mod       Mod

	amount float64
	unit   Unit

	start *Property
	end   *Property

	present bool

	shape    Shape
	definite bool
}

func (p Property) Year() (int, bool)       { return p.year.get() }
func (p Property) Month() (int, bool)      { return p.month.get() }
func (p Property) DayOfMonth() (int, bool) { return p.dayOfMonth.get() }
func (p Property) WeekOfYear() (int, bool) { return p.weekOfYear.get() }
func (p Property) Decade() (int, bool)     { return p.decade.get() }
func (p Property) Century() (int, bool)    { return p.century.get() }
func (p Property) Hour() (int, bool)       { return p.hour.get() }
func (p Property) Minute() (int, bool)     { return p.minute.get() }
func (p Property) Second() (int, bool)     { return p.second.get() }

// DayOfWeek is 1 for Monday through 7 for Sunday.
func (p Property) DayOfWeek() (int, bool) { return p.dayOfWeek.get() }

func (p Property) Season() string    { return p.season }
func (p Property) PartOfDay() string { return p.partOfDay }
func (p Property) Mod() Mod          { return p.mod }
func (p Property) Present() bool     { return p.present }

// Duration returns the amount and unit of a duration value.
func (p Property) Duration() (float64, Unit, bool) {
	return p.amount, p.unit, p.unit != UnitNone
}

// Start returns the lower bound of a range value.
func (p Property) Start() (Property, bool) {
	if p.start == nil {
		return Property{}, false
	}
	return *p.start, true
}

// End returns the upper bound of a range value.
func (p Property) End() (Property, bool) {
	if p.end == nil {
		return Property{}, false
	}
	return *p.end, true
}

func (p Property) Shape() Shape   { return p.shape }
func (p Property) Definite() bool { return p.definite }

// Tags lists the type tags of p: its shape followed by the modifier tags.
// An unresolvable value has no tags.
func (p Property) Tags() []string {
	tags := []string{}
	if p.shape != ShapeNone {
		tags = append(tags, p.shape.String())
	}
	if p.definite {
		tags = append(tags, TagDefinite)
	}
	if p.present {
		tags = append(tags, TagPresent)
	}
	return tags
}

func (p Property) hasRange() bool {
	return p.start != nil && p.end != nil
}

func (p Property) hasClock() bool {
	return p.hour.ok || p.minute.ok || p.second.ok
}

// hasTimeOfDay includes the part-of-day bucket alongside the clock fields.
func (p Property) hasTimeOfDay() bool {
	return p.hasClock() || p.partOfDay != ""
}

func (p Property) hasDate() bool {
	return p.year.ok || p.month.ok || p.dayOfMonth.ok || p.dayOfWeek.ok ||
		p.weekOfYear.ok || p.decade.ok || p.century.ok || p.season != ""
}

func (p Property) hasFullDate() bool {
	return p.year.ok && p.month.ok && p.dayOfMonth.ok
}

// dateOnly copies the calendar fields of p into a new value.
func (p Property) dateOnly() Property {
	return Property{
		year:       p.year,
		month:      p.month,
		dayOfMonth: p.dayOfMonth,
		dayOfWeek:  p.dayOfWeek,
		weekOfYear: p.weekOfYear,
		decade:     p.decade,
		century:    p.century,
		season:     p.season,
	}
}
