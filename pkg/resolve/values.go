/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package resolve

import (
	"fmt"
	"time"

	"github.com/dburkart/almanac/pkg/timex"
)

const dateLayout = "2006-01-02"

// partOfDayBounds are the clock bounds of each part of day. 24:00:00 denotes
// the end of the day.
var partOfDayBounds = map[string][2]string{
	timex.Morning:   {"08:00:00", "12:00:00"},
	timex.Afternoon: {"12:00:00", "16:00:00"},
	timex.Evening:   {"16:00:00", "20:00:00"},
	timex.Night:     {"20:00:00", "24:00:00"},
}

func formatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// dateValue renders the calendar date of a value that carries year, month
// and day of month.
func dateValue(p timex.Property) (string, bool) {
	year, ok1 := p.Year()
	month, ok2 := p.Month()
	day, ok3 := p.DayOfMonth()
	if !ok1 || !ok2 || !ok3 {
		return "", false
	}
	return formatDate(year, month, day), true
}

// timeValue renders the clock fields of p; missing fields are zero.
func timeValue(p timex.Property) string {
	hour, _ := p.Hour()
	minute, _ := p.Minute()
	second, _ := p.Second()
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

// weekday maps a day of week (1 Monday .. 6 Saturday) to a time.Weekday.
// Day 7 aliases to Monday. Anything else is not a day of week.
func weekday(dayOfWeek int) (time.Weekday, bool) {
	switch {
	case dayOfWeek == 7:
		return time.Monday, true
	case dayOfWeek >= 1 && dayOfWeek <= 6:
		return time.Weekday(dayOfWeek), true
	}
	return 0, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// lastWeekday returns the most recent date strictly before ref falling on wd.
func lastWeekday(ref time.Time, wd time.Weekday) time.Time {
	d := midnight(ref).AddDate(0, 0, -1)
	for i := 1; i < 7 && d.Weekday() != wd; i++ {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// nextWeekday returns the nearest date strictly after ref falling on wd.
func nextWeekday(ref time.Time, wd time.Weekday) time.Time {
	d := midnight(ref).AddDate(0, 0, 1)
	for i := 1; i < 7 && d.Weekday() != wd; i++ {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// monthBounds returns the first day of a month and of the month after it.
// Month 12 rolls over into January of the following year.
func monthBounds(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start.Format(dateLayout), start.AddDate(0, 1, 0).Format(dateLayout)
}
