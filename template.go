package fakedata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// DefaultMaxDepth bounds nested format entry expansion
const DefaultMaxDepth = 10

type segment struct {
	literal     string
	placeholder *placeholder
}

type placeholder struct {
	name      string
	modifiers []modifier
}

// Resolver expands format templates against the tables of a Store.
//
// Placeholders take the form {name} or {name:mod,mod}. A name refers to a pool
// (one value is sampled) or to a format entry (one template is sampled and
// expanded recursively). {{ and }} produce literal braces.
type Resolver struct {
	store    *Store
	sampler  *Sampler
	maxDepth int
	parsed   sync.Map // template -> []segment
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithResolverMaxDepth overrides DefaultMaxDepth
func WithResolverMaxDepth(depth int) ResolverOption {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// NewResolver builds a resolver over store. A nil sampler uses the shared source.
func NewResolver(store *Store, sampler *Sampler, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:    store,
		sampler:  sampler,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.store == nil {
		r.store = NewStore(nil)
	}
	if r.sampler == nil {
		r.sampler = DefaultSampler()
	}
	return r
}

// Resolve expands templateOrKey. Input without placeholder syntax that names a
// format entry or pool in the chain is resolved as that key, anything else is
// treated as a literal template.
func (r *Resolver) Resolve(locale, templateOrKey string) (string, error) {
	locale = normalizeLocale(locale)
	if _, err := r.store.ensure(locale); err != nil {
		return "", err
	}

	if validKey(templateOrKey) {
		entry, err := r.store.lookup(locale, templateOrKey, 0)
		if err == nil {
			return r.resolveEntry(locale, entry, 0)
		}
		if !errors.Is(err, ErrKeyNotFound) {
			return "", err
		}
	}

	return r.expand(locale, templateOrKey, 0)
}

// ResolveKey resolves a format entry or pool by name
func (r *Resolver) ResolveKey(locale, key string) (string, error) {
	locale = normalizeLocale(locale)
	if _, err := r.store.ensure(locale); err != nil {
		return "", err
	}
	return r.resolveName(locale, &placeholder{name: key}, 0)
}

// ResolveTemplate expands a literal template
func (r *Resolver) ResolveTemplate(locale, template string) (string, error) {
	locale = normalizeLocale(locale)
	if _, err := r.store.ensure(locale); err != nil {
		return "", err
	}
	return r.expand(locale, template, 0)
}

func (r *Resolver) resolveEntry(locale string, entry Entry, depth int) (string, error) {
	switch entry.Kind {
	case EntryPool:
		value, err := r.sampler.Pick(entry.Pool)
		if err != nil {
			return "", fmt.Errorf("%s/pools/%s: %w", entry.Locale, entry.Key, err)
		}
		return value, nil
	case EntryFormat:
		if depth >= r.maxDepth {
			return "", fmt.Errorf("%w: %q nested deeper than %d", ErrRecursionLimit, entry.Key, r.maxDepth)
		}
		template, err := Choice(r.sampler, entry.Formats)
		if err != nil {
			return "", fmt.Errorf("%s/formats/%s: %w", entry.Locale, entry.Key, err)
		}
		return r.expand(locale, template, depth+1)
	default:
		return "", fmt.Errorf("fakedata: unknown entry kind for %q", entry.Key)
	}
}

func (r *Resolver) expand(locale, template string, depth int) (string, error) {
	if template == "" {
		return "", nil
	}

	segments, err := r.parse(template)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range segments {
		if seg.placeholder == nil {
			b.WriteString(seg.literal)
			continue
		}
		value, err := r.resolveName(locale, seg.placeholder, depth)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

func (r *Resolver) resolveName(locale string, ph *placeholder, depth int) (string, error) {
	var value string

	entry, err := r.store.lookup(locale, ph.name, 0)
	switch {
	case err == nil:
		value, err = r.resolveEntry(locale, entry, depth)
		if err != nil {
			return "", err
		}
	case errors.Is(err, ErrKeyNotFound) && isBuiltin(ph.name):
		value, err = resolveBuiltin(r.sampler, ph)
		if err != nil {
			return "", err
		}
	default:
		return "", err
	}

	return applyModifiers(r.sampler, locale, value, ph.modifiers)
}

func (r *Resolver) parse(template string) ([]segment, error) {
	if cached, ok := r.parsed.Load(template); ok {
		return cached.([]segment), nil
	}
	segments, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}
	r.parsed.Store(template, segments)
	return segments, nil
}

func parseTemplate(template string) ([]segment, error) {
	var (
		segments []segment
		literal  strings.Builder
	)

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		segments = append(segments, segment{literal: literal.String()})
		literal.Reset()
	}

	for i := 0; i < len(template); {
		switch c := template[i]; c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, &SyntaxError{Template: template, Offset: i, Reason: "unterminated placeholder"}
			}
			body := template[i+1 : i+1+end]
			if strings.IndexByte(body, '{') >= 0 {
				return nil, &SyntaxError{Template: template, Offset: i, Reason: "nested placeholder"}
			}
			ph, reason := parsePlaceholder(body)
			if reason != "" {
				return nil, &SyntaxError{Template: template, Offset: i, Reason: reason}
			}
			flush()
			segments = append(segments, segment{placeholder: ph})
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, &SyntaxError{Template: template, Offset: i, Reason: "unmatched closing brace"}
		default:
			literal.WriteByte(c)
			i++
		}
	}
	flush()

	return segments, nil
}

func parsePlaceholder(body string) (*placeholder, string) {
	name, mods, hasMods := strings.Cut(body, ":")
	if name == "" {
		return nil, "empty placeholder name"
	}
	if !validKey(name) {
		return nil, fmt.Sprintf("invalid placeholder name %q", name)
	}

	ph := &placeholder{name: name}
	if !hasMods {
		return ph, ""
	}

	for _, raw := range strings.Split(mods, ",") {
		mod, reason := parseModifier(strings.TrimSpace(raw))
		if reason != "" {
			return nil, reason
		}
		ph.modifiers = append(ph.modifiers, mod)
	}
	return ph, ""
}

// validKey reports whether key is usable as a format/pool name and placeholder
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}

var builtinNames = map[string]struct{}{
	"int":    {},
	"digit":  {},
	"letter": {},
}

// isBuiltin reports names the resolver can produce without locale data. Data
// defining the same name takes precedence.
func isBuiltin(name string) bool {
	_, ok := builtinNames[name]
	return ok
}

func resolveBuiltin(sampler *Sampler, ph *placeholder) (string, error) {
	switch ph.name {
	case "int":
		lo, hi := 0, 9
		for _, mod := range ph.modifiers {
			if mod.kind == modRange {
				lo, hi = mod.lo, mod.hi
			}
		}
		n, err := sampler.IntRange(lo, hi)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case "digit":
		n, err := sampler.IntRange(0, 9)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case "letter":
		return Choice(sampler, uppercaseLetters)
	default:
		return "", fmt.Errorf("fakedata: unknown builtin %q", ph.name)
	}
}
