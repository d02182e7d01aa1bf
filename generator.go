package fakedata

import (
	"errors"
	"fmt"
)

// Generator dispatches categories to providers and resolves them for a locale
type Generator struct {
	store    *Store
	resolver *Resolver
	registry *Registry
	hooks    []GenerateHook
}

// NewGenerator wires a resolver and a registry. The resolver's store and
// sampler are used for post processing too.
func NewGenerator(resolver *Resolver, registry *Registry, hooks ...GenerateHook) (*Generator, error) {
	if resolver == nil {
		return nil, errors.New("fakedata: generator requires a resolver")
	}
	if registry == nil {
		var err error
		if registry, err = NewRegistry(DefaultProviders()...); err != nil {
			return nil, err
		}
	}

	g := &Generator{
		store:    resolver.store,
		resolver: resolver,
		registry: registry,
	}
	for _, hook := range hooks {
		if hook != nil {
			g.hooks = append(g.hooks, hook)
		}
	}
	return g, nil
}

// Store returns the store backing the generator
func (g *Generator) Store() *Store {
	return g.store
}

func (g *Generator) Resolver() *Resolver {
	return g.resolver
}

// Registry returns the category registry
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Generate produces one value of category for locale
func (g *Generator) Generate(category, locale string, params Params) (string, error) {
	if len(g.hooks) == 0 {
		value, _, err := g.generate(category, locale, params)
		return value, err
	}

	ctx := &HookContext{
		Category: category,
		Locale:   locale,
		Params:   params.Clone(),
	}
	for _, hook := range g.hooks {
		hook.BeforeGenerate(ctx)
	}

	value, key, err := g.generate(category, locale, params)
	ctx.Result = value
	ctx.Error = err
	if key != "" {
		ctx.SetMetadata(metadataKey, key)
	}

	for _, hook := range g.hooks {
		hook.AfterGenerate(ctx)
	}
	return value, err
}

func (g *Generator) generate(category, locale string, params Params) (string, string, error) {
	provider, err := g.registry.Lookup(category)
	if err != nil {
		return "", "", err
	}

	keys, err := provider.keys(params)
	if err != nil {
		return "", "", err
	}

	locale = normalizeLocale(locale)

	ctx := PostContext{
		Locale:   locale,
		Category: category,
		Params:   params,
		Sampler:  g.resolver.sampler,
		Store:    g.store,
	}

	var value, used string
	if provider.Value != nil {
		if _, err := g.store.Chain(locale); err != nil {
			return "", "", err
		}
		if value, err = provider.Value(ctx); err != nil {
			return "", "", fmt.Errorf("fakedata: %s: %w", category, err)
		}
	} else if value, used, err = g.resolveKeys(locale, keys); err != nil {
		return "", "", err
	}

	for _, chain := range [][]PostProcessor{provider.Post, commonPost} {
		for _, post := range chain {
			if value, err = post(ctx, value); err != nil {
				return "", used, fmt.Errorf("fakedata: %s: %w", category, err)
			}
		}
	}

	return value, used, nil
}

// resolveKeys resolves the first key defined in the chain. Only a miss on the
// key itself moves on to the next one.
func (g *Generator) resolveKeys(locale string, keys []string) (string, string, error) {
	for i, key := range keys {
		value, err := g.resolver.ResolveKey(locale, key)
		if err == nil {
			return value, key, nil
		}
		var lookupErr *LookupError
		if i < len(keys)-1 && errors.As(err, &lookupErr) && lookupErr.Key == key {
			continue
		}
		return "", "", err
	}
	return "", "", fmt.Errorf("fakedata: no key to resolve in %q", locale)
}
