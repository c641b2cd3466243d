/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

import "strings"

// Shape is the dominant type of a TIMEX value. Exactly one shape selects the
// resolution branch; Definite and Present are carried separately.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeDate
	ShapeTime
	ShapeDateRange
	ShapeTimeRange
	ShapeDateTime
	ShapeDateTimeRange
	ShapeDuration
)

var shapeNames = [...]string{
	ShapeNone:          "",
	ShapeDate:          "date",
	ShapeTime:          "time",
	ShapeDateRange:     "daterange",
	ShapeTimeRange:     "timerange",
	ShapeDateTime:      "datetime",
	ShapeDateTimeRange: "datetimerange",
	ShapeDuration:      "duration",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return ""
	}
	return shapeNames[s]
}

// Type tags as they appear in resolution output and tag listings.
const (
	TagDate          = "date"
	TagTime          = "time"
	TagDateRange     = "daterange"
	TagTimeRange     = "timerange"
	TagDateTime      = "datetime"
	TagDateTimeRange = "datetimerange"
	TagDuration      = "duration"
	TagDefinite      = "definite"
	TagPresent       = "present"
)

// Unit of a duration amount, ordered from the largest to the smallest.
type Unit int

const (
	UnitNone Unit = iota
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
)

var unitNames = [...]string{"", "year", "month", "week", "day", "hour", "minute", "second"}

// Nominal seconds per unit. Years and months are calendar approximations.
var unitSeconds = [...]float64{0, 31536000, 2592000, 604800, 86400, 3600, 60, 1}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return ""
	}
	return unitNames[u]
}

// Seconds returns the number of seconds in one u. The second return value is
// false for UnitNone and anything out of range.
func (u Unit) Seconds() (float64, bool) {
	if u <= UnitNone || int(u) >= len(unitSeconds) {
		return 0, false
	}
	return unitSeconds[u], true
}

// IsTime reports whether u is a clock unit (hour, minute or second).
func (u Unit) IsTime() bool {
	return u >= UnitHour && u <= UnitSecond
}

// letter is the designator used in canonical duration text.
func (u Unit) letter() string {
	switch u {
	case UnitYear:
		return "Y"
	case UnitMonth, UnitMinute:
		return "M"
	case UnitWeek:
		return "W"
	case UnitDay:
		return "D"
	case UnitHour:
		return "H"
	case UnitSecond:
		return "S"
	}
	return ""
}

// ParseUnit maps a unit name ("day", "hours", "Minute") to its Unit.
func ParseUnit(name string) (Unit, bool) {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "s")
	for i, n := range unitNames {
		if i > 0 && n == name {
			return Unit(i), true
		}
	}
	return UnitNone, false
}

// Mod qualifies a value relative to its anchor.
type Mod string

const (
	ModNone   Mod = ""
	ModBefore Mod = "before"
	ModAfter  Mod = "after"
	ModSince  Mod = "since"
	ModStart  Mod = "start"
	ModMid    Mod = "mid"
	ModEnd    Mod = "end"
)

// Part-of-day codes.
const (
	Morning   = "MO"
	Afternoon = "AF"
	Evening   = "EV"
	Night     = "NI"
)

// Season codes.
const (
	Spring = "SP"
	Summer = "SU"
	Fall   = "FA"
	Winter = "WI"
)

func isSeason(code string) bool {
	switch code {
	case Spring, Summer, Fall, Winter:
		return true
	}
	return false
}
