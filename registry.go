package fakedata

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Params are the caller supplied parameters of a single generation
type Params map[string]string

// Get returns the value of key, empty when missing or when p is nil
func (p Params) Get(key string) string {
	if p == nil {
		return ""
	}
	return p[key]
}

// Clone returns a shallow copy, nil for nil params
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Provider binds a category to the locale key it resolves and the post
// processing applied to the result.
type Provider struct {
	Category string
	// Key defaults to Category.
	Key string
	// VariantParam names the parameter selecting Key_<value>, e.g. gender.
	VariantParam   string
	DefaultVariant string
	// Value, when set, builds the raw value from the call parameters and no
	// locale key is read. Post processors still run.
	Value ValueFunc
	Post  []PostProcessor
}

// ValueFunc produces a raw value without locale data
type ValueFunc func(ctx PostContext) (string, error)

func (p Provider) baseKey() string {
	if p.Key != "" {
		return p.Key
	}
	return p.Category
}

// keys returns the keys to try in order: the variant key, then the base key
func (p Provider) keys(params Params) ([]string, error) {
	base := p.baseKey()
	if p.VariantParam == "" {
		return []string{base}, nil
	}

	variant := params.Get(p.VariantParam)
	if variant == "" {
		variant = p.DefaultVariant
	}
	if variant == "" {
		return []string{base}, nil
	}

	key := base + "_" + variant
	if !validKey(key) {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidParam, p.VariantParam, variant)
	}
	return []string{key, base}, nil
}

// Registry maps categories to providers. It is immutable after construction.
type Registry struct {
	providers  map[string]Provider
	categories []string
}

// NewRegistry validates and indexes providers
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers))}

	for i, provider := range providers {
		if provider.Category == "" {
			return nil, fmt.Errorf("%w: provider #%d has no category", ErrInvalidProvider, i)
		}
		if !validKey(provider.Category) || !validKey(provider.baseKey()) {
			return nil, fmt.Errorf("%w: illegal name in %q", ErrInvalidProvider, provider.Category)
		}
		if _, dup := r.providers[provider.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidProvider, provider.Category)
		}
		for j, post := range provider.Post {
			if post == nil {
				return nil, fmt.Errorf("%w: %q post processor #%d is nil", ErrInvalidProvider, provider.Category, j)
			}
		}
		provider.Post = slices.Clone(provider.Post)
		r.providers[provider.Category] = provider
		r.categories = append(r.categories, provider.Category)
	}

	sort.Strings(r.categories)
	return r, nil
}

// Lookup returns the provider of category
func (r *Registry) Lookup(category string) (Provider, error) {
	if r != nil {
		if provider, ok := r.providers[category]; ok {
			return provider, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// Categories returns the registered categories, sorted
func (r *Registry) Categories() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.categories)
}

// DefaultProviders returns the built in categories. Name related categories
// accept a gender parameter and state accepts form=abbr. Phone accepts
// format=digits|international and a mask overriding the locale masks. Age and
// street_number accept minimum and maximum, pin and custom_code accept a mask.
func DefaultProviders() []Provider {
	return []Provider{
		{Category: "first_name", VariantParam: "gender"},
		{Category: "name", Key: "first_name", VariantParam: "gender"},
		{Category: "last_name", VariantParam: "gender"},
		{Category: "full_name", VariantParam: "gender"},
		{Category: "title", VariantParam: "gender"},
		{Category: "username", Post: []PostProcessor{StripSpaces, Lowercase}},
		{Category: "email", Post: []PostProcessor{StripSpaces, Lowercase}},
		{Category: "gender"},
		{Category: "age", Value: IntRangeValue(16, 66)},
		{Category: "occupation"},
		{Category: "company"},
		{Category: "street_number", Post: []PostProcessor{IntRangeOverride(1, 1400)}},
		{Category: "street_name"},
		{Category: "street_suffix"},
		{Category: "address"},
		{Category: "city"},
		{Category: "state", VariantParam: "form"},
		{Category: "country"},
		{Category: "postal_code", Post: []PostProcessor{
			ExpandMaskPost,
			MatchLocalePattern("postal_code_pattern"),
		}},
		{Category: "phone", Post: []PostProcessor{MaskOverride, ExpandMaskPost, FormatPhone}},
		{Category: "pin", Value: MaskValue("####"), Post: []PostProcessor{ExpandMaskPost}},
		{Category: "custom_code", Value: MaskValue("@###"), Post: []PostProcessor{ExpandMaskPost}},
	}
}

// commonPost runs after the provider specific post processors of every category
var commonPost = []PostProcessor{RomanizePost, ApplyCase}
