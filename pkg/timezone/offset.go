/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package timezone turns UTC offsets and zone names into signed minutes.
package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// InvalidOffset is returned for offsets outside policy. It lies outside the
// range of any real offset. A zone table may also map a name to it to mark
// the name as ambiguous.
const InvalidOffset = -10000

// ComputeMinutes reads "+H", "-H:MM", "±HMM" and the like into signed
// minutes. The sign defaults to positive. Hours above 12, minutes other than
// 0, 15, 30, 45 or 60, and anything unparsable yield InvalidOffset.
func ComputeMinutes(text string) int {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "±"):
		s = strings.TrimPrefix(s, "±")
	}

	hourText, minuteText := s, ""
	if h, m, found := strings.Cut(s, ":"); found {
		if m == "" {
			return InvalidOffset
		}
		hourText, minuteText = h, m
	} else if len(s) > 2 {
		hourText, minuteText = s[:len(s)-2], s[len(s)-2:]
	}

	if !digits(hourText) || (minuteText != "" && !digits(minuteText)) {
		return InvalidOffset
	}

	hours, err := strconv.Atoi(hourText)
	if err != nil || hours > 12 {
		return InvalidOffset
	}

	minutes := 0
	if minuteText != "" {
		if minutes, err = strconv.Atoi(minuteText); err != nil {
			return InvalidOffset
		}
	}
	switch minutes {
	case 0, 15, 30, 45, 60:
	default:
		return InvalidOffset
	}

	return sign * (hours*60 + minutes)
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Offset is the result of parsing a timezone mention.
type Offset struct {
	Minutes int `json:"minutes"`
	// Ambiguous is set for names that map to more than one zone.
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// Valid reports whether Minutes holds a usable offset.
func (o Offset) Valid() bool {
	return !o.Ambiguous && o.Minutes != InvalidOffset
}

// String renders the offset as "UTC+08:00", or "UTC+XX:XX" when unknown.
func (o Offset) String() string {
	if !o.Valid() {
		return "UTC+XX:XX"
	}
	sign, m := '+', o.Minutes
	if m < 0 {
		sign, m = '-', -m
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, m/60, m%60)
}

// Resolution renders the offset the way resolution entries report it.
func (o Offset) Resolution() string {
	if !o.Valid() {
		return "UtcOffsetMins: not resolved"
	}
	return fmt.Sprintf("UtcOffsetMins: %d", o.Minutes)
}
