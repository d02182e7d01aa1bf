package fakedata

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

// localeParentChain derives parents from the language tag, closest first. Locale
// codes are stored in lower case ("en-gb") while x/text canonicalizes regions
// ("en-GB"), so both spellings of every parent are offered.
func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{locale: {}}

	add := func(value string) {
		for _, candidate := range []string{value, strings.ToLower(value)} {
			if candidate == "" || candidate == "und" {
				continue
			}
			if _, exists := seen[candidate]; exists {
				continue
			}
			seen[candidate] = struct{}{}
			chain = append(chain, candidate)
		}
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			add(parent.String())
		}
	}

	for current := localeParentTag(locale); current != "" && current != locale; current = localeParentTag(current) {
		add(current)
	}

	return chain
}

// normalizeLocale trims whitespace. Codes are matched case sensitively.
func normalizeLocale(locale string) string {
	return strings.TrimSpace(locale)
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

// languageTag returns the best effort x/text tag for a locale code, used by the
// case modifiers. Unknown codes such as "default" map to language.Und.
func languageTag(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und
	}
	return tag
}
