package fakedata

import (
	"fmt"
	"sort"
)

// Source retrieves the read only data table of a locale. Implementations return an
// error wrapping ErrLocaleNotFound for codes they have no data for.
type Source interface {
	Load(locale string) (*LocaleTable, error)
}

// LocaleLister is implemented by sources able to enumerate their locales
type LocaleLister interface {
	Locales() ([]string, error)
}

// SourceFunc adapters allow bare functions to implement Source
type SourceFunc func(locale string) (*LocaleTable, error)

// Load implements Source for SourceFunc
func (fn SourceFunc) Load(locale string) (*LocaleTable, error) {
	return fn(locale)
}

// MapSource is an in memory source, read only after construction
type MapSource struct {
	tables  map[string]*LocaleTable
	locales []string
}

var (
	_ Source       = &MapSource{}
	_ LocaleLister = &MapSource{}
)

// NewMapSource builds an immutable snapshot from the given tables keyed by locale code
func NewMapSource(data map[string]*LocaleTable) *MapSource {
	if len(data) == 0 {
		return &MapSource{tables: make(map[string]*LocaleTable)}
	}

	tables := make(map[string]*LocaleTable, len(data))
	locales := make([]string, 0, len(data))

	for locale, table := range data {
		if table == nil {
			continue
		}
		clone := table.Clone()
		if clone.Code == "" {
			clone.Code = locale
		}
		tables[locale] = clone
		locales = append(locales, locale)
	}

	// make locales deterministic
	sort.Strings(locales)

	return &MapSource{
		tables:  tables,
		locales: locales,
	}
}

func (s *MapSource) Load(locale string) (*LocaleTable, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
	}

	table, ok := s.tables[locale]
	if !ok || table == nil {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
	}

	return table.Clone(), nil
}

// Locales returns a slice with all locale codes
func (s *MapSource) Locales() ([]string, error) {
	if s == nil || len(s.locales) == 0 {
		return nil, nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out, nil
}
