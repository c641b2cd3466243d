/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

type TokenType interface {
	ToString() string
}

// Location is a half-open range [Start, End) over some input.
type Location struct {
	Start int
	End   int
}

func (l Location) Len() int {
	return l.End - l.Start
}

// Contains reports whether o lies entirely within l.
func (l Location) Contains(o Location) bool {
	return o.Start >= l.Start && o.End <= l.End
}

// Overlaps reports whether l and o share at least one position.
func (l Location) Overlaps(o Location) bool {
	return l.Start < o.End && o.Start < l.End
}

// Within reports whether l is a non-empty range inside an input of length n.
func (l Location) Within(n int) bool {
	return l.Start >= 0 && l.End <= n && l.Start < l.End
}

type Token struct {
	Type     TokenType
	Lexeme   string
	Location Location
}
