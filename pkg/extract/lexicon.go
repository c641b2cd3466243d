/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"strings"

	"github.com/dburkart/almanac/pkg/timex"
)

// Lexicon maps the words of one culture onto calendar values. Keys are
// lowercase; lookups fold case and collapse runs of whitespace.
type Lexicon struct {
	Months       map[string]int
	Weekdays     map[string]int
	Numbers      map[string]int
	Units        map[string]timex.Unit
	Seasons      map[string]string
	PartsOfDay   map[string]string
	Relatives    map[string]int
	RelativeDays map[string]int
	// Meridiems maps "am"/"pm" style markers to true for afternoon.
	Meridiems map[string]bool
}

func key(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), " ")
}

func (l *Lexicon) Month(word string) (int, bool) {
	v, ok := l.Months[key(word)]
	return v, ok
}

func (l *Lexicon) Weekday(word string) (int, bool) {
	v, ok := l.Weekdays[key(word)]
	return v, ok
}

func (l *Lexicon) Unit(word string) (timex.Unit, bool) {
	v, ok := l.Units[key(word)]
	return v, ok
}

func (l *Lexicon) Season(word string) (string, bool) {
	v, ok := l.Seasons[key(word)]
	return v, ok
}

func (l *Lexicon) PartOfDay(word string) (string, bool) {
	v, ok := l.PartsOfDay[key(word)]
	return v, ok
}

func (l *Lexicon) Relative(word string) (int, bool) {
	v, ok := l.Relatives[key(word)]
	return v, ok
}

func (l *Lexicon) RelativeDay(word string) (int, bool) {
	v, ok := l.RelativeDays[key(word)]
	return v, ok
}

func (l *Lexicon) Meridiem(word string) (bool, bool) {
	v, ok := l.Meridiems[key(word)]
	return v, ok
}

// Number reads a count written either in digits or as a word of the lexicon.
func (l *Lexicon) Number(word string) (int, bool) {
	if n, ok := atoi(word); ok {
		return n, true
	}
	v, ok := l.Numbers[key(word)]
	return v, ok
}

// Amount reads a possibly fractional count.
func (l *Lexicon) Amount(word string) (float64, bool) {
	if f, ok := atof(word); ok {
		return f, true
	}
	n, ok := l.Numbers[key(word)]
	return float64(n), ok
}
