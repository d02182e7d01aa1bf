package fakedata

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// PostContext carries what a post processor may consult about the current call
type PostContext struct {
	Locale   string
	Category string
	Params   Params
	Sampler  *Sampler
	Store    *Store
}

// PostProcessor rewrites or validates a resolved value
type PostProcessor func(ctx PostContext, value string) (string, error)

// DigitsOnly keeps digits and a leading plus sign
func DigitsOnly(_ PostContext, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	digits := digitsOnly(trimmed)
	if strings.HasPrefix(trimmed, "+") {
		return "+" + digits, nil
	}
	return digits, nil
}

// ExpandMaskPost expands '#' and '@' mask characters of the value
func ExpandMaskPost(ctx PostContext, value string) (string, error) {
	return ExpandMask(ctx.Sampler, value)
}

// Lowercase lower cases the value with the casing rules of the locale
func Lowercase(ctx PostContext, value string) (string, error) {
	return cases.Lower(languageTag(ctx.Locale)).String(value), nil
}

// StripSpaces removes every whitespace character
func StripSpaces(_ PostContext, value string) (string, error) {
	return strings.Join(strings.Fields(value), ""), nil
}

// ApplyCase honours the "case" parameter: upper, lower or title
func ApplyCase(ctx PostContext, value string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(ctx.Params.Get("case")))
	tag := languageTag(ctx.Locale)
	switch mode {
	case "":
		return value, nil
	case "upper":
		return cases.Upper(tag).String(value), nil
	case "lower":
		return cases.Lower(tag).String(value), nil
	case "title":
		return cases.Title(tag).String(value), nil
	default:
		return "", fmt.Errorf("%w: case %q", ErrInvalidParam, mode)
	}
}

// RomanizePost transliterates the value when the "romanize" parameter is true
func RomanizePost(ctx PostContext, value string) (string, error) {
	raw := ctx.Params.Get("romanize")
	if raw == "" {
		return value, nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return "", fmt.Errorf("%w: romanize %q", ErrInvalidParam, raw)
	}
	if !enabled {
		return value, nil
	}
	return Romanize(ctx.Locale, value)
}

// FormatPhone honours the "format" parameter: digits or international. The
// international form uses the dial plan of the first locale in the chain that
// has one.
func FormatPhone(ctx PostContext, value string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(ctx.Params.Get("format")))
	switch mode {
	case "":
		return value, nil
	case "digits":
		return DigitsOnly(ctx, value)
	case "international":
		plan, ok := dialPlanForChain(ctx)
		if !ok {
			return "", fmt.Errorf("%w: no dial plan for %q", ErrUnsupportedLocale, ctx.Locale)
		}
		return plan.Format(value), nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrInvalidParam, mode)
	}
}

func dialPlanForChain(ctx PostContext) (PhoneDialPlan, bool) {
	candidates := []string{ctx.Locale}
	if ctx.Store != nil {
		if chain, err := ctx.Store.Chain(ctx.Locale); err == nil {
			candidates = chain
		}
	}
	for _, locale := range candidates {
		if plan, ok := DefaultPhoneDialPlan(locale); ok {
			return plan, true
		}
	}
	return PhoneDialPlan{}, false
}

var localePatterns sync.Map // pattern -> *regexp.Regexp

// MatchLocalePattern validates the value against the regular expressions of
// the pool named key in the locale chain. Locales without the pool accept any
// value.
func MatchLocalePattern(key string) PostProcessor {
	return func(ctx PostContext, value string) (string, error) {
		if ctx.Store == nil {
			return value, nil
		}
		pool, err := ctx.Store.ResolvePool(ctx.Locale, key)
		if errors.Is(err, ErrKeyNotFound) {
			return value, nil
		}
		if err != nil {
			return "", err
		}

		for _, pattern := range pool.Values {
			re, err := compilePattern(pattern)
			if err != nil {
				return "", fmt.Errorf("fakedata: %s pattern %q: %w", key, pattern, err)
			}
			if re.MatchString(value) {
				return value, nil
			}
		}
		return "", fmt.Errorf("%w: %q (%s, locale %q)", ErrPatternMismatch, value, key, ctx.Locale)
	}
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := localePatterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	localePatterns.Store(pattern, re)
	return re, nil
}

const maxMaskLength = 64

// IntRangeValue draws an integer in [minimum, maximum]. Each bound comes from
// the call parameter of that name, lo and hi when the parameter is absent.
func IntRangeValue(lo, hi int) ValueFunc {
	return func(ctx PostContext) (string, error) {
		minimum, err := intParam(ctx.Params, "minimum", lo)
		if err != nil {
			return "", err
		}
		maximum, err := intParam(ctx.Params, "maximum", hi)
		if err != nil {
			return "", err
		}
		n, err := ctx.Sampler.IntRange(minimum, maximum)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	}
}

// IntRangeOverride keeps the resolved value unless the call sets minimum or
// maximum, in which case an integer is drawn as IntRangeValue does.
func IntRangeOverride(lo, hi int) PostProcessor {
	draw := IntRangeValue(lo, hi)
	return func(ctx PostContext, value string) (string, error) {
		if ctx.Params.Get("minimum") == "" && ctx.Params.Get("maximum") == "" {
			return value, nil
		}
		return draw(ctx)
	}
}

// MaskValue returns the "mask" parameter, or fallback when it is absent. The
// mask is expanded by ExpandMaskPost.
func MaskValue(fallback string) ValueFunc {
	return func(ctx PostContext) (string, error) {
		mask, err := maskParam(ctx.Params)
		if err != nil || mask != "" {
			return mask, err
		}
		return fallback, nil
	}
}

// MaskOverride replaces the resolved value with the "mask" parameter when set
func MaskOverride(ctx PostContext, value string) (string, error) {
	mask, err := maskParam(ctx.Params)
	if err != nil || mask != "" {
		return mask, err
	}
	return value, nil
}

func maskParam(params Params) (string, error) {
	mask := params.Get("mask")
	if utf8.RuneCountInString(mask) > maxMaskLength {
		return "", fmt.Errorf("%w: mask longer than %d", ErrInvalidParam, maxMaskLength)
	}
	return mask, nil
}

func intParam(params Params, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(params.Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidParam, name, raw)
	}
	return n, nil
}
