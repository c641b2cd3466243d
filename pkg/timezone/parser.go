/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timezone

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dburkart/almanac/pkg/extract"
)

var direct = regexp.MustCompile(`(?i)\b(?:utc|gmt)(?:\s*[+\-±]\s*\d{1,2}(?:\s*:\s*\d{2})?)?`)

// Parser recognizes explicit UTC offsets and the zone names of one culture.
type Parser struct {
	names map[string]int
	named *regexp.Regexp
}

// NewParser builds a parser over a table of zone names (abbreviations or
// full names) and their offsets in minutes. Names mapped to InvalidOffset
// are reported as ambiguous.
func NewParser(names map[string]int) *Parser {
	p := &Parser{names: make(map[string]int, len(names))}

	keys := make([]string, 0, len(names))
	for name, minutes := range names {
		k := strings.ToLower(strings.TrimSpace(name))
		if k == "" {
			continue
		}
		p.names[k] = minutes
		keys = append(keys, regexp.QuoteMeta(k))
	}

	if len(keys) > 0 {
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) > len(keys[j])
			}
			return keys[i] < keys[j]
		})
		p.named = regexp.MustCompile(`(?i)\b(?:` + strings.Join(keys, "|") + `)\b`)
	}

	return p
}

// Parse converts matched text into an offset. It accepts zone names from the
// table, "UTC"/"GMT" optionally followed by an offset, and bare offsets.
func (p *Parser) Parse(text string) Offset {
	t := strings.ToLower(strings.Join(strings.Fields(text), " "))

	if minutes, ok := p.names[t]; ok {
		if minutes == InvalidOffset {
			return Offset{Minutes: InvalidOffset, Ambiguous: true}
		}
		return Offset{Minutes: minutes}
	}

	for _, prefix := range []string{"utc", "gmt"} {
		if strings.HasPrefix(t, prefix) {
			t = strings.TrimSpace(t[len(prefix):])
			if t == "" {
				return Offset{}
			}
			break
		}
	}

	return Offset{Minutes: ComputeMinutes(t)}
}

// Extract finds timezone mentions. Each span carries the rendered offset in
// its comment.
func (p *Parser) Extract(text string, ref time.Time) []extract.Span {
	var c []extract.Candidate

	add := func(re *regexp.Regexp) {
		if re == nil {
			return
		}
		for _, m := range re.FindAllStringIndex(text, -1) {
			c = append(c, extract.Candidate{
				Span: extract.Span{
					Start:   m[0],
					Length:  m[1] - m[0],
					Type:    extract.TypeTimeZone,
					Comment: p.Parse(text[m[0]:m[1]]).String(),
				},
				Rank: extract.RankPoint,
			})
		}
	}
	add(direct)
	add(p.named)

	return extract.Merge(text, c)
}
