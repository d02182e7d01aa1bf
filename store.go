package fakedata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Store loads locale tables on first use and keeps them for the process lifetime.
// Concurrent first use of a locale triggers a single source read; once cached a
// table is never mutated, so reads need no further coordination.
type Store struct {
	source        Source
	resolver      FallbackResolver
	defaultLocale string
	deriveParents bool
	strict        bool
	logger        *slog.Logger

	mu          sync.RWMutex
	tables      map[string]*LocaleTable
	chains      map[string][]string
	loads       map[string]int
	group       singleflight.Group
	validations sync.Map // locale -> *validation
}

type validation struct {
	once sync.Once
	err  error
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithStoreFallbackResolver sets explicit fallback chains that take precedence
// over the fallbacks declared by the locale data.
func WithStoreFallbackResolver(resolver FallbackResolver) StoreOption {
	return func(s *Store) {
		s.resolver = resolver
	}
}

// WithStoreDefaultLocale appends locale to the end of every chain
func WithStoreDefaultLocale(locale string) StoreOption {
	return func(s *Store) {
		s.defaultLocale = normalizeLocale(locale)
	}
}

// WithStoreParentFallbacks derives language parents ("en-gb" -> "en") and adds
// the ones the source knows to the chain.
func WithStoreParentFallbacks() StoreOption {
	return func(s *Store) {
		s.deriveParents = true
	}
}

// WithStoreStrictValidation validates every locale the first time it is used
func WithStoreStrictValidation() StoreOption {
	return func(s *Store) {
		s.strict = true
	}
}

// WithStoreLogger sets the logger used for load and validation events
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore builds a lazy store over source
func NewStore(source Source, opts ...StoreOption) *Store {
	s := &Store{
		source: source,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tables: make(map[string]*LocaleTable),
		chains: make(map[string][]string),
		loads:  make(map[string]int),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.source == nil {
		s.source = NewMapSource(nil)
	}
	return s
}

// Table returns a copy of the locale table, loading it on first use
func (s *Store) Table(locale string) (*LocaleTable, error) {
	table, err := s.ensure(locale)
	if err != nil {
		return nil, err
	}
	return table.Clone(), nil
}

// Chain returns the fallback chain of locale, starting with locale itself
func (s *Store) Chain(locale string) ([]string, error) {
	locale = normalizeLocale(locale)
	if _, err := s.ensure(locale); err != nil {
		return nil, err
	}
	chain, err := s.chain(locale)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), chain...), nil
}

// Lookup walks the chain and returns the first table entry defining key, either
// as a format entry or as a pool.
func (s *Store) Lookup(locale, key string) (Entry, error) {
	locale = normalizeLocale(locale)
	if _, err := s.ensure(locale); err != nil {
		return Entry{}, err
	}
	entry, err := s.lookup(locale, key, 0)
	if err != nil {
		return Entry{}, err
	}
	entry.Formats = append([]string(nil), entry.Formats...)
	entry.Pool = entry.Pool.Clone()
	return entry, nil
}

// ResolvePool returns the first pool named key in the chain
func (s *Store) ResolvePool(locale, key string) (Pool, error) {
	locale = normalizeLocale(locale)
	if _, err := s.ensure(locale); err != nil {
		return Pool{}, err
	}
	entry, err := s.lookup(locale, key, EntryPool)
	if err != nil {
		return Pool{}, err
	}
	return entry.Pool.Clone(), nil
}

// ResolveFormat returns the first format entry named key in the chain
func (s *Store) ResolveFormat(locale, key string) ([]string, error) {
	locale = normalizeLocale(locale)
	if _, err := s.ensure(locale); err != nil {
		return nil, err
	}
	entry, err := s.lookup(locale, key, EntryFormat)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), entry.Formats...), nil
}

// Preload loads and, in strict mode, validates the given locales concurrently
func (s *Store) Preload(ctx context.Context, locales ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, locale := range normalizeLocales(locales) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := s.ensure(locale); err != nil {
				return err
			}
			_, err := s.chain(locale)
			return err
		})
	}
	return g.Wait()
}

// Locales lists the locale codes of the source, nil when it cannot enumerate them
func (s *Store) Locales() ([]string, error) {
	lister, ok := s.source.(LocaleLister)
	if !ok {
		return nil, nil
	}
	return lister.Locales()
}

// Loads reports how many times the source was read for locale
func (s *Store) Loads(locale string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads[normalizeLocale(locale)]
}

// Validate checks that every placeholder of every format entry reachable from
// locale resolves in its chain, and that every pool can be sampled.
func (s *Store) Validate(locale string) error {
	locale = normalizeLocale(locale)
	if _, err := s.load(locale); err != nil {
		return err
	}
	chain, err := s.chain(locale)
	if err != nil {
		return err
	}

	tables := make([]*LocaleTable, 0, len(chain))
	known := make(map[string]struct{})
	for _, code := range chain {
		table, err := s.load(code)
		if err != nil {
			return err
		}
		tables = append(tables, table)
		for key := range table.Formats {
			known[key] = struct{}{}
		}
		for key := range table.Pools {
			known[key] = struct{}{}
		}
	}

	var problems []error
	for _, table := range tables {
		for _, key := range sortedKeys(table.Formats) {
			templates := table.Formats[key]
			if len(templates) == 0 {
				problems = append(problems, fmt.Errorf("%s/formats/%s: %w", table.Code, key, ErrEmptyPool))
				continue
			}
			for _, tmpl := range templates {
				segments, err := parseTemplate(tmpl)
				if err != nil {
					problems = append(problems, fmt.Errorf("%s/formats/%s: %w", table.Code, key, err))
					continue
				}
				for _, seg := range segments {
					if seg.placeholder == nil {
						continue
					}
					name := seg.placeholder.name
					if _, ok := known[name]; ok || isBuiltin(name) {
						continue
					}
					problems = append(problems, fmt.Errorf("%s/formats/%s: %w",
						table.Code, key, &LookupError{Locale: locale, Key: name, Chain: chain}))
				}
			}
		}

		for _, key := range sortedKeys(table.Pools) {
			if err := validatePool(table.Pools[key]); err != nil {
				problems = append(problems, fmt.Errorf("%s/pools/%s: %w", table.Code, key, err))
			}
		}
	}

	return errors.Join(problems...)
}

func validatePool(pool Pool) error {
	if len(pool.Values) == 0 {
		return ErrEmptyPool
	}
	if !pool.Weighted() {
		return nil
	}
	if len(pool.Weights) != len(pool.Values) {
		return fmt.Errorf("%w: %d weights for %d values", ErrInvalidWeights, len(pool.Weights), len(pool.Values))
	}
	var total float64
	for _, weight := range pool.Weights {
		if weight < 0 {
			return fmt.Errorf("%w: negative weight", ErrInvalidWeights)
		}
		total += weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidWeights)
	}
	return nil
}

// ensure loads locale and applies strict validation once per locale
func (s *Store) ensure(locale string) (*LocaleTable, error) {
	table, err := s.load(locale)
	if err != nil {
		return nil, err
	}
	if !s.strict {
		return table, nil
	}

	value, _ := s.validations.LoadOrStore(locale, &validation{})
	v := value.(*validation)
	v.once.Do(func() {
		v.err = s.Validate(locale)
		if v.err != nil {
			s.logger.Warn("locale validation failed", slog.String("locale", locale), slog.Any("error", v.err))
		}
	})
	if v.err != nil {
		return nil, v.err
	}
	return table, nil
}

func (s *Store) load(locale string) (*LocaleTable, error) {
	if locale == "" {
		return nil, fmt.Errorf("%w: empty locale code", ErrLocaleNotFound)
	}

	s.mu.RLock()
	table, ok := s.tables[locale]
	s.mu.RUnlock()
	if ok {
		return table, nil
	}

	value, err, _ := s.group.Do(locale, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.tables[locale]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := s.source.Load(locale)

		s.mu.Lock()
		s.loads[locale]++
		s.mu.Unlock()

		if err != nil {
			return nil, err
		}
		if loaded == nil {
			return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
		}
		if loaded.Code == "" {
			loaded.Code = locale
		}

		s.mu.Lock()
		s.tables[locale] = loaded
		s.mu.Unlock()

		s.logger.Debug("locale loaded",
			slog.String("locale", locale),
			slog.String("fallback", loaded.Fallback),
			slog.Int("formats", len(loaded.Formats)),
			slog.Int("pools", len(loaded.Pools)))

		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*LocaleTable), nil
}

type chainLink struct {
	code     string
	optional bool
}

// chain returns the cached chain of locale, building it once. Optional parents
// missing from the source are dropped at build time and never read again.
func (s *Store) chain(locale string) ([]string, error) {
	s.mu.RLock()
	chain, ok := s.chains[locale]
	s.mu.RUnlock()
	if ok {
		return chain, nil
	}

	value, err, _ := s.group.Do("chain\x00"+locale, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.chains[locale]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		built, err := s.buildChain(locale)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.chains[locale] = built
		s.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]string), nil
}

func (s *Store) buildChain(locale string) ([]string, error) {
	root, err := s.load(locale)
	if err != nil {
		return nil, err
	}

	links := []chainLink{{code: locale}}

	var explicit []string
	if s.resolver != nil {
		explicit = s.resolver.Resolve(locale)
	}

	if explicit != nil {
		for _, code := range explicit {
			links = append(links, chainLink{code: code})
		}
	} else {
		seen := map[string]struct{}{locale: {}}
		for current := root.Fallback; current != ""; {
			if _, ok := seen[current]; ok {
				break
			}
			seen[current] = struct{}{}
			links = append(links, chainLink{code: current})

			table, err := s.load(current)
			if err != nil {
				return nil, fmt.Errorf("fakedata: fallback %q of %q: %w", current, locale, err)
			}
			current = table.Fallback
		}
	}

	if s.deriveParents {
		for _, parent := range localeParentChain(locale) {
			links = append(links, chainLink{code: parent, optional: true})
		}
	}

	if s.defaultLocale != "" {
		links = append(links, chainLink{code: s.defaultLocale})
	}

	chain := make([]string, 0, len(links))
	seen := make(map[string]struct{}, len(links))
	for _, link := range links {
		if _, ok := seen[link.code]; ok {
			continue
		}
		if _, err := s.load(link.code); err != nil {
			if link.optional && errors.Is(err, ErrLocaleNotFound) {
				continue
			}
			return nil, fmt.Errorf("fakedata: fallback %q of %q: %w", link.code, locale, err)
		}
		seen[link.code] = struct{}{}
		chain = append(chain, link.code)
	}

	return chain, nil
}

// lookup walks the chain of locale; kind 0 accepts either namespace
func (s *Store) lookup(locale, key string, kind EntryKind) (Entry, error) {
	chain, err := s.chain(locale)
	if err != nil {
		return Entry{}, err
	}

	for _, code := range chain {
		table, err := s.load(code)
		if err != nil {
			return Entry{}, err
		}
		if kind == 0 || kind == EntryFormat {
			if formats, ok := table.Format(key); ok {
				return Entry{Kind: EntryFormat, Key: key, Locale: code, Formats: formats}, nil
			}
		}
		if kind == 0 || kind == EntryPool {
			if pool, ok := table.Pool(key); ok {
				return Entry{Kind: EntryPool, Key: key, Locale: code, Pool: pool}, nil
			}
		}
	}

	return Entry{}, &LookupError{Locale: locale, Key: key, Chain: chain}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
