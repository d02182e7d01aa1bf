package fakedata

import (
	"errors"
	"fmt"
	"log/slog"
)

// Config captures store, sampler, resolver and provider setup
type Config struct {
	DefaultLocale string
	Source        Source
	Resolver      FallbackResolver
	Sampler       *Sampler
	MaxDepth      int
	Providers     []Provider
	Hooks         []GenerateHook
	Logger        *slog.Logger

	parentFallbacks bool
	strict          bool
	extraProviders  []Provider
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)

	if cfg.Source == nil {
		cfg.Source = NewMapSource(nil)
	}

	if cfg.Sampler == nil {
		cfg.Sampler = DefaultSampler()
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	if cfg.Providers == nil {
		cfg.Providers = DefaultProviders()
	}

	return cfg, nil
}

// WithSource sets where locale tables are read from
func WithSource(source Source) Option {
	return func(c *Config) error {
		if source == nil {
			return errors.New("fakedata: nil source")
		}
		c.Source = source
		return nil
	}
}

// WithDefaultLocale sets the locale appended to the end of every fallback chain
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithFallbackResolver sets explicit chains that win over declared fallbacks
func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

// WithFallback sets an explicit chain for locale. It is ignored when a custom
// resolver other than StaticFallbackResolver is already configured.
func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithParentFallbacks adds derived language parents ("en-gb" -> "en") to chains
func WithParentFallbacks() Option {
	return func(c *Config) error {
		c.parentFallbacks = true
		return nil
	}
}

// WithSampler sets the random source shared by resolution and post processing
func WithSampler(sampler *Sampler) Option {
	return func(c *Config) error {
		c.Sampler = sampler
		return nil
	}
}

// WithSeed installs a deterministic sampler. The resulting generator must not
// be shared across goroutines if reproducibility matters.
func WithSeed(seed uint64) Option {
	return func(c *Config) error {
		c.Sampler = NewSeededSampler(seed)
		return nil
	}
}

// WithMaxDepth bounds nested format expansion, depth must be positive
func WithMaxDepth(depth int) Option {
	return func(c *Config) error {
		if depth <= 0 {
			return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidParam, depth)
		}
		c.MaxDepth = depth
		return nil
	}
}

// WithProviders replaces the built in providers
func WithProviders(providers ...Provider) Option {
	return func(c *Config) error {
		c.Providers = append([]Provider{}, providers...)
		return nil
	}
}

// WithExtraProviders registers providers next to the built in ones
func WithExtraProviders(providers ...Provider) Option {
	return func(c *Config) error {
		c.extraProviders = append(c.extraProviders, providers...)
		return nil
	}
}

// WithHooks registers hooks run around every Generate call
func WithHooks(hooks ...GenerateHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// WithLogger sets the logger used for store events
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithStrictValidation validates each locale table the first time it is used
func WithStrictValidation() Option {
	return func(c *Config) error {
		c.strict = true
		return nil
	}
}

// StoreOptions translates the config into store options
func (cfg *Config) StoreOptions() []StoreOption {
	opts := []StoreOption{
		WithStoreDefaultLocale(cfg.DefaultLocale),
		WithStoreLogger(cfg.Logger),
	}
	if cfg.Resolver != nil {
		opts = append(opts, WithStoreFallbackResolver(cfg.Resolver))
	}
	if cfg.parentFallbacks {
		opts = append(opts, WithStoreParentFallbacks())
	}
	if cfg.strict {
		opts = append(opts, WithStoreStrictValidation())
	}
	return opts
}

// BuildGenerator assembles a Generator from the config
func (cfg *Config) BuildGenerator() (*Generator, error) {
	if cfg == nil {
		return nil, errors.New("fakedata: nil config")
	}

	providers := make([]Provider, 0, len(cfg.Providers)+len(cfg.extraProviders))
	providers = append(providers, cfg.Providers...)
	providers = append(providers, cfg.extraProviders...)

	registry, err := NewRegistry(providers...)
	if err != nil {
		return nil, err
	}

	store := NewStore(cfg.Source, cfg.StoreOptions()...)
	resolver := NewResolver(store, cfg.Sampler, WithResolverMaxDepth(cfg.MaxDepth))

	return NewGenerator(resolver, registry, cfg.Hooks...)
}
