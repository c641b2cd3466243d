/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

import (
	"fmt"
	"strconv"
	"strings"
)

const presentRef = "PRESENT_REF"

// String renders p in canonical TIMEX form, for example "2023-06-01",
// "XXXX-WXX-1", "T16:30", "2023-06-01TEV", "P3D" or
// "(2023-06-01,2023-06-04,P3D)". Parse accepts everything String produces.
func (p Property) String() string {
	if p.present {
		return presentRef
	}

	if p.hasRange() {
		var sb strings.Builder
		sb.WriteByte('(')
		sb.WriteString(p.start.String())
		sb.WriteByte(',')
		sb.WriteString(p.end.String())
		if p.unit != UnitNone {
			sb.WriteByte(',')
			sb.WriteString(formatDuration(p.amount, p.unit))
		}
		sb.WriteByte(')')
		return sb.String()
	}

	date := p.formatDate()
	clock := p.formatTime()
	if date == "" && clock == "" && p.unit != UnitNone {
		return formatDuration(p.amount, p.unit)
	}

	return date + clock
}

func (p Property) formatYear() string {
	switch {
	case p.year.ok:
		return fmt.Sprintf("%04d", p.year.v)
	case p.decade.ok:
		return fmt.Sprintf("%03dX", p.decade.v)
	case p.century.ok:
		return fmt.Sprintf("%02dXX", p.century.v)
	}
	return "XXXX"
}

func (p Property) formatDate() string {
	year := p.formatYear()

	switch {
	case p.dayOfWeek.ok:
		week := "WXX"
		if p.weekOfYear.ok {
			week = fmt.Sprintf("W%02d", p.weekOfYear.v)
		}
		return fmt.Sprintf("%s-%s-%d", year, week, p.dayOfWeek.v)
	case p.weekOfYear.ok:
		return fmt.Sprintf("%s-W%02d", year, p.weekOfYear.v)
	case p.season != "":
		return year + "-" + p.season
	case p.month.ok && p.dayOfMonth.ok:
		return fmt.Sprintf("%s-%02d-%02d", year, p.month.v, p.dayOfMonth.v)
	case p.month.ok:
		return fmt.Sprintf("%s-%02d", year, p.month.v)
	case p.dayOfMonth.ok:
		return fmt.Sprintf("%s-XX-%02d", year, p.dayOfMonth.v)
	case p.year.ok || p.decade.ok || p.century.ok:
		return year
	}
	return ""
}

func (p Property) formatTime() string {
	if p.partOfDay != "" {
		return "T" + p.partOfDay
	}
	if !p.hasClock() {
		return ""
	}

	s := fmt.Sprintf("T%02d", p.hour.v)
	if p.minute.ok || p.second.ok {
		s += fmt.Sprintf(":%02d", p.minute.v)
	}
	if p.second.ok {
		s += fmt.Sprintf(":%02d", p.second.v)
	}
	return s
}

func formatDuration(amount float64, unit Unit) string {
	prefix := "P"
	if unit.IsTime() {
		prefix = "PT"
	}
	return prefix + FormatAmount(amount) + unit.letter()
}

// FormatAmount renders a duration amount with as few digits as needed.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
