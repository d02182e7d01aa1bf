package fakedata

import (
	"embed"
	"sync"
)

// DefaultLocaleCode is the locale every embedded locale eventually falls back to
const DefaultLocaleCode = "default"

//go:embed locales
var embeddedLocales embed.FS

// EmbeddedSource returns the locale data compiled into the package
func EmbeddedSource() *FileSource {
	return NewFileSource(embeddedLocales, "locales")
}

var defaultGenerator = sync.OnceValues(func() (*Generator, error) {
	cfg, err := NewConfig(
		WithSource(EmbeddedSource()),
		WithDefaultLocale(DefaultLocaleCode),
	)
	if err != nil {
		return nil, err
	}
	return cfg.BuildGenerator()
})

// Default returns the process wide generator over the embedded data. It is
// built on first use and safe for concurrent use.
func Default() (*Generator, error) {
	return defaultGenerator()
}

// Generate produces a value with the process wide generator
func Generate(category, locale string, params Params) (string, error) {
	g, err := Default()
	if err != nil {
		return "", err
	}
	return g.Generate(category, locale, params)
}

// Build produces a record with the process wide generator
func Build(spec Spec, locale string) (*Record, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.Build(spec, locale)
}
