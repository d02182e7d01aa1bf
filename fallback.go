package fakedata

import "sync"

// FallbackResolver resolves explicit fallback locale chains. The returned chain
// excludes the locale itself; nil means "no explicit chain configured".
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps a configurable locale -> fallbacks table
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the fallback chain of locale. Empty entries, duplicates and the
// locale itself are dropped.
func (r *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	locale = normalizeLocale(locale)
	if r == nil || locale == "" {
		return
	}

	chain := sanitizeFallbacks(locale, fallbacks)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chains == nil {
		r.chains = make(map[string][]string)
	}
	r.chains[locale] = chain
}

func (r *StaticFallbackResolver) Resolve(locale string) []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain, ok := r.chains[normalizeLocale(locale)]
	if !ok {
		return nil
	}
	return append([]string{}, chain...)
}

func sanitizeFallbacks(locale string, fallbacks []string) []string {
	seen := map[string]struct{}{locale: {}}
	out := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		fallback = normalizeLocale(fallback)
		if fallback == "" {
			continue
		}
		if _, ok := seen[fallback]; ok {
			continue
		}
		seen[fallback] = struct{}{}
		out = append(out, fallback)
	}
	return out
}
