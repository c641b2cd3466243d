/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"strings"
	"testing"
)

func TestLocation(t *testing.T) {
	outer := Location{Start: 2, End: 10}

	tt := []struct {
		name     string
		other    Location
		contains bool
		overlaps bool
	}{
		{"identical", Location{2, 10}, true, true},
		{"inside", Location{4, 6}, true, true},
		{"left edge", Location{0, 3}, false, true},
		{"right edge", Location{9, 12}, false, true},
		{"adjacent", Location{10, 12}, false, false},
		{"before", Location{0, 2}, false, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if outer.Contains(tc.other) != tc.contains {
				t.Errorf("Contains(%v) = %v, wanted %v", tc.other, !tc.contains, tc.contains)
			}
			if outer.Overlaps(tc.other) != tc.overlaps {
				t.Errorf("Overlaps(%v) = %v, wanted %v", tc.other, !tc.overlaps, tc.overlaps)
			}
		})
	}

	if !(Location{0, 4}).Within(4) || (Location{0, 5}).Within(4) || (Location{2, 2}).Within(4) {
		t.Error("Within did not respect the input bounds")
	}
}

func TestFormatError(t *testing.T) {
	err := SyntaxError{Location: Location{Start: 5, End: 8}, Message: "bad month"}
	out := err.FormatError("2023-99-01")

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least three lines, got %q", out)
	}
	if lines[1] != "2023-99-01" {
		t.Errorf("wanted input echoed on line two, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "     ^~~ bad month") {
		t.Errorf("caret line is wrong: %q", lines[2])
	}
}
