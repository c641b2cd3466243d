/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package resolve

// NotResolved is the value of an entry whose expression is well formed but
// has no concrete calendar bounds, such as a season.
const NotResolved = "not resolved"

// Entry is one concrete value produced by resolving a TIMEX expression. Point
// entries carry Value; range entries carry Start and End.
type Entry struct {
	Timex string `json:"timex"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsRange reports whether e is a start/end entry.
func (e Entry) IsRange() bool {
	return e.Value == "" && (e.Start != "" || e.End != "")
}

// Resolved reports whether e carries a concrete value.
func (e Entry) Resolved() bool {
	return e.Value != NotResolved && e.Start != NotResolved && e.End != NotResolved
}
