/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package engine ties the locale registry, the extractors and the resolver
// together behind one value that is safe to share between goroutines.
package engine

import (
	"context"
	"runtime"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dburkart/almanac/pkg/extract"
	"github.com/dburkart/almanac/pkg/locale"
	"github.com/dburkart/almanac/pkg/resolve"
	"github.com/dburkart/almanac/pkg/timex"
	"github.com/dburkart/almanac/pkg/timezone"
)

const DefaultCacheExpiry = 10 * time.Minute

// Recognition is an extracted span together with its concrete values.
type Recognition struct {
	extract.Span
	Resolution []resolve.Entry   `json:"resolution,omitempty"`
	Offset     *timezone.Offset `json:"offset,omitempty"`
}

type Engine struct {
	registry *locale.Registry
	log      zerolog.Logger
	cache    *gocache.Cache
	limit    int
}

type Option func(*Engine)

func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithCacheExpiry sets how long parsed TIMEX values stay cached. A
// non-positive expiry disables the cache.
func WithCacheExpiry(expiry time.Duration) Option {
	return func(e *Engine) {
		if expiry <= 0 {
			e.cache = nil
			return
		}
		e.cache = gocache.New(expiry, 2*expiry)
	}
}

// WithConcurrency bounds the goroutines used by the batch operations.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// New returns an engine over registry, or over locale.Default() when
// registry is nil.
func New(registry *locale.Registry, opts ...Option) *Engine {
	if registry == nil {
		registry = locale.Default()
	}
	e := &Engine{
		registry: registry,
		log:      zerolog.Nop(),
		cache:    gocache.New(DefaultCacheExpiry, 2*DefaultCacheExpiry),
		limit:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Cultures() []string {
	return e.registry.Cultures()
}

// Culture returns the culture of the bundle that serves name.
func (e *Engine) Culture(name string) (string, error) {
	b, err := e.registry.Lookup(name)
	if err != nil {
		return "", err
	}
	return b.Culture, nil
}

// CacheItems reports the number of parsed values held by the cache.
func (e *Engine) CacheItems() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.ItemCount()
}

func reference(ref time.Time) time.Time {
	if ref.IsZero() {
		return time.Now()
	}
	return ref
}

// Extract finds the temporal spans of text in the given culture. The only
// error is an unknown culture; text without temporal content yields an
// empty list.
func (e *Engine) Extract(culture, text string, ref time.Time) ([]extract.Span, error) {
	b, err := e.registry.Lookup(culture)
	if err != nil {
		return nil, err
	}
	ref = reference(ref)

	var c []extract.Candidate
	c = append(c, extract.Candidates(extract.RankPoint, b.Date.Extract(text, ref))...)
	c = append(c, extract.Candidates(extract.RankPoint, b.Time.Extract(text, ref))...)
	c = append(c, extract.Candidates(extract.RankPoint, b.Duration.Extract(text, ref))...)
	c = append(c, extract.Candidates(extract.RankPoint, b.TimeZone.Extract(text, ref))...)
	c = append(c, b.DatePeriod.Candidates(text, ref)...)

	spans := extract.Merge(text, c)
	e.log.Debug().Str("culture", b.Culture).Int("spans", len(spans)).Msg("extract")
	return spans, nil
}

// Recognize extracts spans and resolves each against ref. Timezone spans
// carry their offset instead of resolution entries.
func (e *Engine) Recognize(culture, text string, ref time.Time) ([]Recognition, error) {
	b, err := e.registry.Lookup(culture)
	if err != nil {
		return nil, err
	}
	ref = reference(ref)

	spans, err := e.Extract(b.Culture, text, ref)
	if err != nil {
		return nil, err
	}

	recognitions := make([]Recognition, 0, len(spans))
	for _, s := range spans {
		r := Recognition{Span: s}
		switch {
		case s.Type == extract.TypeTimeZone:
			offset := b.TimeZone.Parse(s.Text)
			r.Offset = &offset
		case s.Timex != "":
			r.Resolution = e.Resolve(ref, s.Timex)
		}
		recognitions = append(recognitions, r)
	}
	return recognitions, nil
}

// Resolve resolves canonical TIMEX strings against ref. Malformed strings
// contribute nothing to the result.
func (e *Engine) Resolve(ref time.Time, timexes ...string) []resolve.Entry {
	ref = reference(ref)

	entries := []resolve.Entry{}
	for _, s := range timexes {
		p, ok := e.property(s)
		if !ok {
			continue
		}
		entries = append(entries, resolve.Resolve(p, ref)...)
	}
	return entries
}

// property parses s through the cache. Properties are immutable, so a cached
// value is shared freely; resolution entries are always built fresh.
func (e *Engine) property(s string) (timex.Property, bool) {
	if e.cache != nil {
		if v, found := e.cache.Get(s); found {
			return v.(timex.Property), true
		}
	}

	p, err := timex.Parse(s)
	if err != nil {
		e.log.Debug().Str("timex", s).Err(err).Msg("unparsable timex")
		return timex.Property{}, false
	}
	if e.cache != nil {
		e.cache.SetDefault(s, p)
	}
	return p, true
}

// ParseOffset converts timezone text to an offset in the given culture.
func (e *Engine) ParseOffset(culture, text string) (timezone.Offset, error) {
	b, err := e.registry.Lookup(culture)
	if err != nil {
		return timezone.Offset{Minutes: timezone.InvalidOffset}, err
	}
	return b.TimeZone.Parse(text), nil
}

// ExtractAll runs Extract over texts concurrently. Results keep the order of
// texts.
func (e *Engine) ExtractAll(ctx context.Context, culture string, texts []string, ref time.Time) ([][]extract.Span, error) {
	if _, err := e.registry.Lookup(culture); err != nil {
		return nil, err
	}
	ref = reference(ref)

	results := make([][]extract.Span, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spans, err := e.Extract(culture, text, ref)
			results[i] = spans
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ResolveAll resolves each batch of TIMEX strings concurrently. Results keep
// the order of batches.
func (e *Engine) ResolveAll(ctx context.Context, batches [][]string, ref time.Time) ([][]resolve.Entry, error) {
	ref = reference(ref)

	results := make([][]resolve.Entry, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Resolve(ref, batch...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
