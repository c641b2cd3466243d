/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"sort"
)

// Rank orders the rules that produce candidate spans. When two candidates
// overlap, the higher rank keeps its bounds.
type Rank int

const (
	// RankPoint is a bare single date, time or duration.
	RankPoint Rank = iota
	// RankPattern is a whole-expression locale pattern such as "Q3 2019".
	RankPattern
	// RankMerge is a range or duration-modifier merge.
	RankMerge
)

// Candidate is a span competing for a place in the merged output.
type Candidate struct {
	Span
	Rank Rank
}

// Candidates wraps spans of one rank.
func Candidates(rank Rank, spans []Span) []Candidate {
	c := make([]Candidate, 0, len(spans))
	for _, s := range spans {
		c = append(c, Candidate{Span: s, Rank: rank})
	}
	return c
}

// Merge reduces candidates over text to an ordered list of non-overlapping
// spans. Candidates are considered by rank, then by start, then longest
// first; each is kept only if it does not overlap one already kept. This
// collapses duplicates, drops contained spans of equal or lower rank, and
// lets the earlier of two partially overlapping spans win. Candidates outside
// text are discarded.
func Merge(text string, candidates []Candidate) []Span {
	valid := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.location().Within(len(text)) {
			valid = append(valid, c)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		a, b := valid[i], valid[j]
		if a.Rank != b.Rank {
			return a.Rank > b.Rank
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Length > b.Length
	})

	kept := []Span{}
	for _, c := range valid {
		loc := c.location()

		overlaps := false
		for _, k := range kept {
			if loc.Overlaps(k.location()) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		span := c.Span
		span.Text = text[span.Start:span.End()]
		kept = append(kept, span)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Start < kept[j].Start
	})

	return kept
}
