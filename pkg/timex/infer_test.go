/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

import (
	"testing"
)

func TestInfer(t *testing.T) {
	tt := []struct {
		name     string
		prop     Property
		shape    Shape
		definite bool
	}{
		{"definite date", NewDate(2023, 6, 1), ShapeDate, true},
		{"month and day", NewMonthDay(6, 1), ShapeDate, false},
		{"weekday", NewWeekday(5), ShapeDate, false},
		{"clock", NewTime(16, 0, 0), ShapeTime, false},
		{"definite datetime", NewDateTime(NewDate(2023, 6, 1), 16, 0, 0), ShapeDateTime, true},
		{"weekday datetime", NewDateTime(NewWeekday(1), 9, 30, 0), ShapeDateTime, false},
		{"duration", NewDuration(3, UnitDay), ShapeDuration, false},
		{"month of year", NewMonthRange(2023, 6), ShapeDateRange, false},
		{"bare month", NewMonth(6), ShapeDateRange, false},
		{"season", NewSeason(0, Summer), ShapeDateRange, false},
		{"part of day", NewPartOfDay(Night), ShapeTimeRange, false},
		{"date part of day", NewDatePartOfDay(NewDate(2023, 6, 1), Evening), ShapeDateTimeRange, true},
		{"date range", NewRange(NewDate(2023, 6, 1), NewDate(2023, 6, 4)), ShapeDateRange, false},
		{"clock range", NewRange(NewTime(16, 0, 0), NewTime(18, 0, 0)), ShapeTimeRange, false},
		{"datetime range", NewRange(NewDateTime(NewDate(2023, 6, 1), 16, 0, 0), NewDate(2023, 6, 2)), ShapeDateTimeRange, false},
		{"present", NewPresent(), ShapeNone, false},
		{"nothing", Property{}, ShapeNone, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			shape, definite := Infer(tc.prop)
			if shape != tc.shape || definite != tc.definite {
				t.Errorf("Infer(%s) = %v/%v, wanted %v/%v", tc.prop, shape, definite, tc.shape, tc.definite)
			}

			// Builders tag their values with what inference would derive.
			if tc.prop.Shape() != tc.shape || tc.prop.Definite() != tc.definite {
				t.Errorf("%s was built as %v/%v", tc.prop, tc.prop.Shape(), tc.prop.Definite())
			}
		})
	}
}

func TestTagsNeverEmptyForShapes(t *testing.T) {
	for _, input := range []string{"2023-06-01", "T16", "P1D", "TNI", "2023-06", "(T16,T18)"} {
		if len(MustParse(input).Tags()) == 0 {
			t.Errorf("%s has no tags", input)
		}
	}
}

func TestDerivedValuesAreCopies(t *testing.T) {
	base := NewRange(NewDate(2023, 6, 1), NewDate(2023, 6, 4))
	withLength := base.WithDuration(3, UnitDay)

	if _, _, ok := base.Duration(); ok {
		t.Error("WithDuration modified the original value")
	}
	if withLength.String() != "(2023-06-01,2023-06-04,P3D)" {
		t.Errorf("unexpected derived value %s", withLength)
	}

	modded := base.WithMod(ModBefore)
	if base.Mod() != ModNone || modded.Mod() != ModBefore {
		t.Error("WithMod did not copy")
	}
}

func TestNegativeLengthIsDropped(t *testing.T) {
	r := NewRange(NewDate(2024, 12, 20), NewDate(2024, 1, 5)).WithDuration(-350, UnitDay)

	if _, _, ok := r.Duration(); ok {
		t.Error("negative length was kept")
	}
	if r.String() != "(2024-12-20,2024-01-05)" {
		t.Errorf("unexpected value %s", r)
	}
}

func TestUnits(t *testing.T) {
	tt := []struct {
		name    string
		unit    Unit
		seconds float64
		time    bool
	}{
		{"year", UnitYear, 365 * 86400, false},
		{"months", UnitMonth, 30 * 86400, false},
		{"Week", UnitWeek, 7 * 86400, false},
		{"day", UnitDay, 86400, false},
		{"hours", UnitHour, 3600, true},
		{"minute", UnitMinute, 60, true},
		{"second", UnitSecond, 1, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			unit, ok := ParseUnit(tc.name)
			if !ok || unit != tc.unit {
				t.Fatalf("ParseUnit(%q) = %v, %v", tc.name, unit, ok)
			}
			if s, _ := unit.Seconds(); s != tc.seconds {
				t.Errorf("%s has %v seconds, wanted %v", unit, s, tc.seconds)
			}
			if unit.IsTime() != tc.time {
				t.Errorf("%s IsTime = %v", unit, !tc.time)
			}
		})
	}

	if _, ok := UnitNone.Seconds(); ok {
		t.Error("UnitNone should have no seconds")
	}
	if _, ok := ParseUnit("fortnight"); ok {
		t.Error("fortnight is not a unit")
	}
}
