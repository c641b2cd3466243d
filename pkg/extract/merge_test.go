/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidate(start, length int, typ string, rank Rank) Candidate {
	return Candidate{Span: Span{Start: start, Length: length, Type: typ}, Rank: rank}
}

func TestMerge(t *testing.T) {
	text := "from June 1 to June 5 we rest"

	tests := []struct {
		name       string
		candidates []Candidate
		expected   []Span
	}{
		{
			"empty",
			nil,
			[]Span{},
		},
		{
			"identical bounds collapse",
			[]Candidate{
				candidate(5, 6, TypeDate, RankPoint),
				candidate(5, 6, TypeDate, RankPoint),
			},
			[]Span{{Start: 5, Length: 6, Text: "June 1", Type: TypeDate}},
		},
		{
			"merge swallows contained points",
			[]Candidate{
				candidate(5, 6, TypeDate, RankPoint),
				candidate(15, 6, TypeDate, RankPoint),
				candidate(0, 21, TypeDateRange, RankMerge),
			},
			[]Span{{Start: 0, Length: 21, Text: "from June 1 to June 5", Type: TypeDateRange}},
		},
		{
			"higher rank keeps its bounds over a longer point",
			[]Candidate{
				candidate(0, 24, TypeDate, RankPoint),
				candidate(5, 6, TypeDateRange, RankPattern),
			},
			[]Span{{Start: 5, Length: 6, Text: "June 1", Type: TypeDateRange}},
		},
		{
			"longer span wins at equal rank",
			[]Candidate{
				candidate(5, 4, TypeDateRange, RankPattern),
				candidate(5, 6, TypeDate, RankPattern),
			},
			[]Span{{Start: 5, Length: 6, Text: "June 1", Type: TypeDate}},
		},
		{
			"earlier span wins a partial overlap",
			[]Candidate{
				candidate(12, 9, TypeDate, RankPoint),
				candidate(5, 9, TypeDate, RankPoint),
			},
			[]Span{{Start: 5, Length: 9, Text: "June 1 to", Type: TypeDate}},
		},
		{
			"out of bounds and empty spans are dropped",
			[]Candidate{
				candidate(-1, 3, TypeDate, RankPoint),
				candidate(25, 10, TypeDate, RankPoint),
				candidate(3, 0, TypeDate, RankPoint),
				candidate(25, 4, TypeDate, RankPoint),
			},
			[]Span{{Start: 25, Length: 4, Text: "rest", Type: TypeDate}},
		},
		{
			"output ordered by start",
			[]Candidate{
				candidate(15, 6, TypeDate, RankPoint),
				candidate(5, 6, TypeDate, RankMerge),
			},
			[]Span{
				{Start: 5, Length: 6, Text: "June 1", Type: TypeDate},
				{Start: 15, Length: 6, Text: "June 5", Type: TypeDate},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Merge(text, test.candidates))
		})
	}
}

func TestCandidates(t *testing.T) {
	c := Candidates(RankMerge, []Span{{Start: 1, Length: 2}, {Start: 4, Length: 1}})
	assert.Len(t, c, 2)
	for _, x := range c {
		assert.Equal(t, RankMerge, x.Rank)
	}
	assert.Empty(t, Candidates(RankPoint, nil))
}
