/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package locale

import (
	"embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// DefaultCulture is used when a request names no culture.
const DefaultCulture = "en-us"

//go:embed bundles/*.yaml
var bundlesFS embed.FS

// Registry holds compiled bundles keyed by canonical culture. It is never
// modified after construction and is safe for concurrent use.
type Registry struct {
	bundles map[string]*Bundle
	tags    []language.Tag
	keys    []string
	matcher language.Matcher
}

// NewRegistry indexes bundles by culture. A later bundle replaces an earlier
// one of the same culture.
func NewRegistry(bundles ...*Bundle) *Registry {
	r := &Registry{bundles: map[string]*Bundle{}}
	for _, b := range bundles {
		if _, ok := r.bundles[b.Culture]; !ok {
			r.keys = append(r.keys, b.Culture)
			r.tags = append(r.tags, b.Tag)
		}
		r.bundles[b.Culture] = b
	}
	if len(r.tags) > 0 {
		r.matcher = language.NewMatcher(r.tags)
	}
	return r
}

// With returns a new registry holding the bundles of r followed by bundles.
func (r *Registry) With(bundles ...*Bundle) *Registry {
	all := make([]*Bundle, 0, len(r.keys)+len(bundles))
	for _, k := range r.keys {
		all = append(all, r.bundles[k])
	}
	return NewRegistry(append(all, bundles...)...)
}

// Lookup returns the bundle for culture. Cultures without a bundle of their
// own fall back to the closest match, so "en" or "en-GB" find "en-us". An
// empty culture selects DefaultCulture.
func (r *Registry) Lookup(culture string) (*Bundle, error) {
	if strings.TrimSpace(culture) == "" {
		culture = DefaultCulture
	}

	key, tag, err := Culture(culture)
	if err != nil {
		return nil, err
	}
	if b, ok := r.bundles[key]; ok {
		return b, nil
	}

	if r.matcher != nil {
		if _, i, confidence := r.matcher.Match(tag); confidence != language.No {
			return r.bundles[r.keys[i]], nil
		}
	}
	return nil, errors.Errorf("no locale bundle for culture %q", culture)
}

// Cultures lists the cultures with a bundle, sorted.
func (r *Registry) Cultures() []string {
	c := append([]string{}, r.keys...)
	sort.Strings(c)
	return c
}

// Embedded compiles the bundles shipped with the binary.
func Embedded() ([]*Bundle, error) {
	entries, err := bundlesFS.ReadDir("bundles")
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded bundles")
	}

	var bundles []*Bundle
	for _, entry := range entries {
		data, err := bundlesFS.ReadFile("bundles/" + entry.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "reading embedded bundle %s", entry.Name())
		}
		b, err := Load(data)
		if err != nil {
			return nil, errors.Wrapf(err, "embedded bundle %s", entry.Name())
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}

// LoadDir compiles every *.yaml bundle in dir, in name order.
func LoadDir(dir string) ([]*Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading locale directory %s", dir)
	}

	var bundles []*Bundle
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		b, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of embedded bundles, compiling them on first
// use. It panics if an embedded bundle is malformed.
func Default() *Registry {
	defaultOnce.Do(func() {
		bundles, err := Embedded()
		if err != nil {
			panic(err)
		}
		defaultRegistry = NewRegistry(bundles...)
	})
	return defaultRegistry
}
