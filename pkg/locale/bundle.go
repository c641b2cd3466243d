/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package locale loads the per-culture word lists and patterns that drive
// extraction.
package locale

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dburkart/almanac/pkg/extract"
	"github.com/dburkart/almanac/pkg/timex"
	"github.com/dburkart/almanac/pkg/timezone"
)

// Bundle is the compiled, read-only resource set of one culture.
type Bundle struct {
	Culture string
	Tag     language.Tag
	Lexicon *extract.Lexicon

	Date       *extract.RegexExtractor
	Time       *extract.RegexExtractor
	Duration   *extract.RegexExtractor
	DatePeriod *extract.DatePeriodExtractor
	TimeZone   *timezone.Parser
}

type patternDocument struct {
	Kind    string `yaml:"kind"`
	Pattern string `yaml:"pattern"`
}

type document struct {
	Culture string `yaml:"culture"`

	Lexicon struct {
		Months       map[string]int    `yaml:"months"`
		Weekdays     map[string]int    `yaml:"weekdays"`
		Numbers      map[string]int    `yaml:"numbers"`
		Units        map[string]string `yaml:"units"`
		Seasons      map[string]string `yaml:"seasons"`
		PartsOfDay   map[string]string `yaml:"partsOfDay"`
		Relatives    map[string]int    `yaml:"relatives"`
		RelativeDays map[string]int    `yaml:"relativeDays"`
		Meridiems    map[string]bool   `yaml:"meridiems"`
	} `yaml:"lexicon"`

	Year struct {
		Pattern string `yaml:"pattern"`
		Min     int    `yaml:"min"`
		Max     int    `yaml:"max"`
	} `yaml:"year"`

	Extractors struct {
		Date     []patternDocument `yaml:"date"`
		Time     []patternDocument `yaml:"time"`
		Duration []patternDocument `yaml:"duration"`
	} `yaml:"extractors"`

	DatePeriod struct {
		SimpleCases []patternDocument `yaml:"simpleCases"`
		YearPeriods []patternDocument `yaml:"yearPeriods"`

		Till             string `yaml:"till"`
		Connector        string `yaml:"connector"`
		From             string `yaml:"from"`
		Between          string `yaml:"between"`
		PastPrefix       string `yaml:"pastPrefix"`
		PastSuffix       string `yaml:"pastSuffix"`
		WithinNextPrefix string `yaml:"withinNextPrefix"`
		FuturePrefix     string `yaml:"futurePrefix"`
		FutureSuffix     string `yaml:"futureSuffix"`
		InPrefix         string `yaml:"inPrefix"`
		DateUnit         string `yaml:"dateUnit"`
		TimeUnit         string `yaml:"timeUnit"`
		RangeUnit        string `yaml:"rangeUnit"`
		WeekOf           string `yaml:"weekOf"`
		MonthOf          string `yaml:"monthOf"`
		DateTimeGap      string `yaml:"dateTimeGap"`
		Ambiguous        string `yaml:"ambiguous"`
		AmbiguousContext string `yaml:"ambiguousContext"`
	} `yaml:"datePeriod"`

	// TimeZones maps zone names to "+05:30" style offsets, or to "ambiguous".
	TimeZones map[string]string `yaml:"timezones"`
}

// Anchoring of connective patterns.
type anchor int

const (
	anchorNone anchor = iota
	// The whole input.
	anchorWhole
	// The end of the text preceding a span.
	anchorEnd
	// The start of the text following a span.
	anchorStart
)

// Ambiguous marks a zone name with more than one possible offset.
const Ambiguous = "ambiguous"

// Culture canonicalizes a culture identifier, so "EN_us" becomes "en-us".
func Culture(name string) (string, language.Tag, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
	if err != nil {
		return "", language.Und, errors.Wrapf(err, "invalid culture %q", name)
	}
	return strings.ToLower(tag.String()), tag, nil
}

// LoadFile reads and compiles one YAML bundle.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading locale bundle %s", path)
	}
	b, err := Load(data)
	return b, errors.Wrapf(err, "loading locale bundle %s", path)
}

// Load compiles a YAML bundle. A malformed pattern fails the whole bundle
// with an error naming the culture and the pattern.
func Load(data []byte) (*Bundle, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding locale bundle")
	}

	culture, tag, err := Culture(doc.Culture)
	if err != nil {
		return nil, err
	}

	c := compiler{culture: culture}
	lex, err := c.lexicon(&doc)
	if err != nil {
		return nil, err
	}
	c.placeholders = placeholders(lex)

	b := &Bundle{Culture: culture, Tag: tag, Lexicon: lex}

	if b.Date, err = c.extractor(extract.TypeDate, "extractors.date", doc.Extractors.Date, lex); err != nil {
		return nil, err
	}
	if b.Time, err = c.extractor(extract.TypeTime, "extractors.time", doc.Extractors.Time, lex); err != nil {
		return nil, err
	}
	if b.Duration, err = c.extractor(extract.TypeDuration, "extractors.duration", doc.Extractors.Duration, lex); err != nil {
		return nil, err
	}

	config, err := c.datePeriod(&doc)
	if err != nil {
		return nil, err
	}
	config.Lexicon, config.DatePoint, config.TimePoint, config.Duration = lex, b.Date, b.Time, b.Duration
	b.DatePeriod = extract.NewDatePeriodExtractor(config)

	zones := make(map[string]int, len(doc.TimeZones))
	for name, offset := range doc.TimeZones {
		if strings.EqualFold(offset, Ambiguous) {
			zones[name] = timezone.InvalidOffset
			continue
		}
		minutes := timezone.ComputeMinutes(offset)
		if minutes == timezone.InvalidOffset {
			return nil, errors.Errorf("%s: timezones.%s: invalid offset %q", culture, name, offset)
		}
		zones[name] = minutes
	}
	b.TimeZone = timezone.NewParser(zones)

	return b, nil
}

type compiler struct {
	culture      string
	placeholders *strings.Replacer
}

func lower[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[strings.Join(strings.Fields(strings.ToLower(k)), " ")] = v
	}
	return out
}

func (c *compiler) lexicon(doc *document) (*extract.Lexicon, error) {
	l := doc.Lexicon
	lex := &extract.Lexicon{
		Months:       lower(l.Months),
		Weekdays:     lower(l.Weekdays),
		Numbers:      lower(l.Numbers),
		Units:        map[string]timex.Unit{},
		Seasons:      lower(l.Seasons),
		PartsOfDay:   lower(l.PartsOfDay),
		Relatives:    lower(l.Relatives),
		RelativeDays: lower(l.RelativeDays),
		Meridiems:    lower(l.Meridiems),
	}

	for word, name := range lower(l.Units) {
		unit, ok := timex.ParseUnit(name)
		if !ok {
			return nil, errors.Errorf("%s: lexicon.units.%s: unknown unit %q", c.culture, word, name)
		}
		lex.Units[word] = unit
	}
	for word, m := range lex.Months {
		if m < 1 || m > 12 {
			return nil, errors.Errorf("%s: lexicon.months.%s: month %d out of range", c.culture, word, m)
		}
	}
	for word, d := range lex.Weekdays {
		if d < 1 || d > 7 {
			return nil, errors.Errorf("%s: lexicon.weekdays.%s: day %d out of range", c.culture, word, d)
		}
	}

	return lex, nil
}

// alternation joins words longest first, so that "day after tomorrow" is
// tried before "tomorrow".
func alternation[V any](m map[string]V) string {
	words := make([]string, 0, len(m))
	for w := range m {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	for i, w := range words {
		words[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return "(?:" + strings.Join(words, "|") + ")"
}

func placeholders(l *extract.Lexicon) *strings.Replacer {
	return strings.NewReplacer(
		"{month}", alternation(l.Months),
		"{weekday}", alternation(l.Weekdays),
		"{number}", alternation(l.Numbers),
		"{unit}", alternation(l.Units),
		"{season}", alternation(l.Seasons),
		"{partofday}", alternation(l.PartsOfDay),
		"{relative}", alternation(l.Relatives),
		"{relday}", alternation(l.RelativeDays),
		"{meridiem}", alternation(l.Meridiems),
	)
}

// compile expands placeholders in expr, anchors it and compiles it case
// insensitively. An empty expression compiles to nil.
func (c *compiler) compile(key, expr string, a anchor) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	expr = c.placeholders.Replace(expr)
	switch a {
	case anchorWhole:
		expr = `^(?:` + expr + `)$`
	case anchorEnd:
		expr = `(?:` + expr + `)\s*$`
	case anchorStart:
		expr = `^\s*(?:` + expr + `)`
	}

	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: %s", c.culture, key)
	}
	return re, nil
}

func (c *compiler) patterns(key string, docs []patternDocument) ([]extract.Pattern, error) {
	patterns := make([]extract.Pattern, 0, len(docs))
	for i, d := range docs {
		if !validKind(d.Kind) {
			return nil, errors.Errorf("%s: %s[%d]: unknown kind %q", c.culture, key, i, d.Kind)
		}
		re, err := c.compile(key+"["+d.Kind+"]", d.Pattern, anchorNone)
		if err != nil {
			return nil, err
		}
		if re == nil {
			return nil, errors.Errorf("%s: %s[%d]: empty pattern", c.culture, key, i)
		}
		patterns = append(patterns, extract.Pattern{Kind: d.Kind, Regexp: re})
	}
	return patterns, nil
}

func validKind(kind string) bool {
	for _, k := range extract.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (c *compiler) extractor(typ, key string, docs []patternDocument, lex *extract.Lexicon) (*extract.RegexExtractor, error) {
	patterns, err := c.patterns(key, docs)
	if err != nil {
		return nil, err
	}
	return &extract.RegexExtractor{Type: typ, Patterns: patterns, Lexicon: lex}, nil
}

func (c *compiler) datePeriod(doc *document) (extract.DatePeriodConfig, error) {
	var (
		config extract.DatePeriodConfig
		err    error
	)
	d := doc.DatePeriod

	if config.SimpleCases, err = c.patterns("datePeriod.simpleCases", d.SimpleCases); err != nil {
		return config, err
	}
	if config.YearPeriods, err = c.patterns("datePeriod.yearPeriods", d.YearPeriods); err != nil {
		return config, err
	}
	if config.Year, err = c.compile("year.pattern", doc.Year.Pattern, anchorNone); err != nil {
		return config, err
	}
	config.MinYear, config.MaxYear = doc.Year.Min, doc.Year.Max

	connectives := []struct {
		key    string
		expr   string
		anchor anchor
		target **regexp.Regexp
	}{
		{"till", d.Till, anchorWhole, &config.Till},
		{"connector", d.Connector, anchorWhole, &config.Connector},
		{"from", d.From, anchorEnd, &config.From},
		{"between", d.Between, anchorEnd, &config.Between},
		{"pastPrefix", d.PastPrefix, anchorEnd, &config.PastPrefix},
		{"pastSuffix", d.PastSuffix, anchorStart, &config.PastSuffix},
		{"withinNextPrefix", d.WithinNextPrefix, anchorEnd, &config.WithinNextPrefix},
		{"futurePrefix", d.FuturePrefix, anchorEnd, &config.FuturePrefix},
		{"futureSuffix", d.FutureSuffix, anchorStart, &config.FutureSuffix},
		{"inPrefix", d.InPrefix, anchorEnd, &config.InPrefix},
		{"dateUnit", d.DateUnit, anchorNone, &config.DateUnit},
		{"timeUnit", d.TimeUnit, anchorNone, &config.TimeUnit},
		{"rangeUnit", d.RangeUnit, anchorNone, &config.RangeUnit},
		{"weekOf", d.WeekOf, anchorEnd, &config.WeekOf},
		{"monthOf", d.MonthOf, anchorEnd, &config.MonthOf},
		{"dateTimeGap", d.DateTimeGap, anchorWhole, &config.DateTimeGap},
		{"ambiguous", d.Ambiguous, anchorWhole, &config.Ambiguous},
		{"ambiguousContext", d.AmbiguousContext, anchorEnd, &config.AmbiguousContext},
	}

	for _, conn := range connectives {
		if *conn.target, err = c.compile("datePeriod."+conn.key, conn.expr, conn.anchor); err != nil {
			return config, err
		}
	}

	return config, nil
}
