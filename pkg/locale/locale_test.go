/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package locale

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dburkart/almanac/pkg/timex"
	"github.com/dburkart/almanac/pkg/timezone"
)

// Wednesday
var ref = time.Date(2023, time.June, 14, 12, 0, 0, 0, time.UTC)

const minimal = `
culture: fr-FR
lexicon:
  months: {janvier: 1, juin: 6}
  units: {jour: day, jours: day}
extractors:
  date:
    - kind: date
      pattern: '\b(?P<day>\d{1,2})\s+(?P<monthname>{month})\b'
`

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"en-us", "es-es"}, r.Cultures())
	assert.Same(t, r, Default())
}

func TestLookup(t *testing.T) {
	r := Default()

	tests := []struct {
		culture  string
		expected string
	}{
		{"en-us", "en-us"},
		{"EN_us", "en-us"},
		{"", "en-us"},
		{"en", "en-us"},
		{"en-GB", "en-us"},
		{"es-ES", "es-es"},
		{"es", "es-es"},
		{"es-MX", "es-es"},
	}

	for _, test := range tests {
		b, err := r.Lookup(test.culture)
		if assert.NoError(t, err, test.culture) {
			assert.Equal(t, test.expected, b.Culture, test.culture)
		}
	}

	_, err := r.Lookup("ja-JP")
	assert.Error(t, err)

	_, err = r.Lookup("not a culture!")
	assert.Error(t, err)
}

func TestLoadMinimal(t *testing.T) {
	b, err := Load([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, "fr-fr", b.Culture)
	assert.Equal(t, timex.UnitDay, b.Lexicon.Units["jours"])

	spans := b.Date.Extract("Rendez-vous le 3 juin.", ref)
	require.Len(t, spans, 1)
	assert.Equal(t, "3 juin", spans[0].Text)
	assert.Equal(t, "XXXX-06-03", spans[0].Timex)

	// No connectors, no zone names: nothing beyond points.
	assert.Empty(t, b.DatePeriod.Extract("du 3 juin au 5 juin", ref))
	assert.Empty(t, b.TimeZone.Extract("CET", ref))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		bundle   string
		contains string
	}{
		{"bad yaml", "culture: [", "decoding locale bundle"},
		{"bad culture", "culture: 'xx yy zz'", "invalid culture"},
		{"bad unit", "culture: fr-FR\nlexicon:\n  units: {quinzaine: fortnight}\n", "fr-fr: lexicon.units.quinzaine"},
		{"bad month", "culture: fr-FR\nlexicon:\n  months: {brumaire: 14}\n", "fr-fr: lexicon.months.brumaire"},
		{"bad kind", "culture: fr-FR\nextractors:\n  date:\n    - kind: epoch\n      pattern: 'x'\n", `unknown kind "epoch"`},
		{"bad pattern", "culture: fr-FR\nextractors:\n  time:\n    - kind: time\n      pattern: '(?P<hour>\\d+'\n", "fr-fr: extractors.time[time]"},
		{"bad connective", "culture: fr-FR\ndatePeriod:\n  till: 'au|('\n", "fr-fr: datePeriod.till"},
		{"bad offset", "culture: fr-FR\ntimezones:\n  cet: '+1:20'\n", "fr-fr: timezones.cet"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load([]byte(test.bundle))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.contains)
		})
	}
}

func TestLoadDirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr-fr.yaml"), []byte(minimal), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	bundles, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	r := Default().With(bundles...)
	assert.Equal(t, []string{"en-us", "es-es", "fr-fr"}, r.Cultures())

	b, err := r.Lookup("fr")
	require.NoError(t, err)
	assert.Equal(t, "fr-fr", b.Culture)

	// The default registry is untouched.
	_, err = Default().Lookup("fr-FR")
	assert.Error(t, err)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestTimeZones(t *testing.T) {
	b, err := Default().Lookup("en-us")
	require.NoError(t, err)

	assert.Equal(t, timezone.Offset{Minutes: -300}, b.TimeZone.Parse("EST"))
	assert.Equal(t, timezone.Offset{Minutes: 345}, b.TimeZone.Parse("nepal time"))
	assert.True(t, b.TimeZone.Parse("IST").Ambiguous)
}

func TestPlaceholdersLongestFirst(t *testing.T) {
	b, err := Default().Lookup("en-us")
	require.NoError(t, err)

	spans := b.Date.Extract("see you the day after tomorrow", ref)
	require.Len(t, spans, 1)
	assert.Equal(t, "the day after tomorrow", spans[0].Text)
	assert.Equal(t, "2023-06-16", spans[0].Timex)
}
