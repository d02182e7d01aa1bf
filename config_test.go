package fakedata

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig error = %v", err)
	}
	if cfg.Source == nil || cfg.Sampler == nil {
		t.Fatalf("source and sampler must be defaulted: %+v", cfg)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", cfg.MaxDepth, DefaultMaxDepth)
	}
	if len(cfg.Providers) != len(DefaultProviders()) {
		t.Fatalf("Providers = %d, want the defaults", len(cfg.Providers))
	}

	gen, err := cfg.BuildGenerator()
	if err != nil {
		t.Fatalf("BuildGenerator error = %v", err)
	}
	if _, err := gen.Generate("city", "en", nil); !errors.Is(err, ErrLocaleNotFound) {
		t.Fatalf("empty source Generate error = %v, want ErrLocaleNotFound", err)
	}
}

func TestConfigOptionErrors(t *testing.T) {
	if _, err := NewConfig(WithSource(nil)); err == nil {
		t.Fatalf("nil source must fail")
	}
	if _, err := NewConfig(WithMaxDepth(0)); !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("WithMaxDepth(0) error = %v, want ErrInvalidParam", err)
	}

	cfg, err := NewConfig(WithExtraProviders(Provider{Category: "city"}))
	if err != nil {
		t.Fatalf("NewConfig error = %v", err)
	}
	if _, err := cfg.BuildGenerator(); !errors.Is(err, ErrInvalidProvider) {
		t.Fatalf("duplicate extra provider error = %v, want ErrInvalidProvider", err)
	}

	var nilCfg *Config
	if _, err := nilCfg.BuildGenerator(); err == nil {
		t.Fatalf("nil config must fail")
	}
}

func TestConfigProviders(t *testing.T) {
	tables := map[string]*LocaleTable{
		"en": {Pools: map[string]Pool{
			"city":    {Values: []string{"Boston"}},
			"slogan":  {Values: []string{"go fast"}},
			"country": {Values: []string{"Canada"}},
		}},
	}

	gen := newTableGenerator(t, tables,
		WithProviders(Provider{Category: "town", Key: "city"}),
		WithExtraProviders(Provider{Category: "slogan", Post: []PostProcessor{StripSpaces}}),
	)
	if diff := cmp.Diff([]string{"slogan", "town"}, gen.Registry().Categories()); diff != "" {
		t.Fatalf("Categories mismatch (-want +got):\n%s", diff)
	}
	if got, err := gen.Generate("town", "en", nil); err != nil || got != "Boston" {
		t.Fatalf("Generate(town) = %q, %v", got, err)
	}
	if got, err := gen.Generate("slogan", "en", Params{"case": "upper"}); err != nil || got != "GOFAST" {
		t.Fatalf("Generate(slogan) = %q, %v", got, err)
	}
	if _, err := gen.Generate("country", "en", nil); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("replaced providers must drop country, error = %v", err)
	}
}

func TestConfigFallbacks(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{name: "declared", want: []string{"en-gb", "en", "default"}},
		{name: "explicit", opts: []Option{WithFallback("en-gb", "fr")}, want: []string{"en-gb", "fr"}},
		{name: "explicit with default", opts: []Option{WithFallback("en-gb", "fr"), WithDefaultLocale("default")}, want: []string{"en-gb", "fr", "default"}},
		{name: "empty locale ignored", opts: []Option{WithFallback("", "fr")}, want: []string{"en-gb", "en", "default"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := newTableGenerator(t, testTables(), tc.opts...)
			got, err := gen.Store().Chain("en-gb")
			if err != nil {
				t.Fatalf("Chain error = %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Chain mismatch (-want +got):\n%s", diff)
			}
		})
	}

	custom := NewStaticFallbackResolver()
	custom.Set("en-gb", "en")
	cfg, err := NewConfig(WithFallbackResolver(custom), WithFallback("en-gb", "fr"))
	if err != nil {
		t.Fatalf("NewConfig error = %v", err)
	}
	if cfg.Resolver != custom {
		t.Fatalf("WithFallback must extend a static resolver in place")
	}
	if diff := cmp.Diff([]string{"fr"}, custom.Resolve("en-gb")); diff != "" {
		t.Fatalf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigSeedIsReproducible(t *testing.T) {
	draw := func() []string {
		gen := newEmbeddedGenerator(t, WithSeed(2024))
		out := make([]string, 0, 12)
		for _, category := range []string{"full_name", "email", "address", "phone"} {
			for i := 0; i < 3; i++ {
				value, err := gen.Generate(category, "de", nil)
				if err != nil {
					t.Fatalf("Generate(%s) error = %v", category, err)
				}
				out = append(out, value)
			}
		}
		return out
	}

	if diff := cmp.Diff(draw(), draw()); diff != "" {
		t.Fatalf("seeded generators diverged (-first +second):\n%s", diff)
	}
}

func TestConfigStrictValidation(t *testing.T) {
	tables := map[string]*LocaleTable{
		"en": {Formats: map[string][]string{
			"city":    {"{nowhere}"},
			"country": {"Freedonia"},
		}},
	}

	lenient := newTableGenerator(t, tables)
	if got, err := lenient.Generate("country", "en", nil); err != nil || got != "Freedonia" {
		t.Fatalf("lenient Generate = %q, %v", got, err)
	}

	strict := newTableGenerator(t, tables, WithStrictValidation())
	if _, err := strict.Generate("country", "en", nil); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("strict Generate error = %v, want ErrKeyNotFound", err)
	}
}
