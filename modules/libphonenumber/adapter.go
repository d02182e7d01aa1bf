package libphonenumber

import (
	"fmt"
	"strconv"
	"strings"

	fakedata "github.com/goliatone/go-fakedata"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
)

type options struct {
	region string
	format phonenumbers.PhoneNumberFormat
	strict bool
}

// Option configures the libphonenumber post processor.
type Option func(*options)

// WithRegion forces parsing using the provided ISO 3166-1 alpha-2 country code.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = strings.ToUpper(strings.TrimSpace(region))
	}
}

// WithFormat selects the libphonenumber output format (defaults to INTERNATIONAL).
func WithFormat(format phonenumbers.PhoneNumberFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithStrict makes numbers that cannot be parsed an error instead of passing
// them through unchanged.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// PostProcessor formats generated phone numbers with libphonenumber. The
// region comes from WithRegion, then the locale, then the dial plan of the
// first locale in the fallback chain that has one.
func PostProcessor(opts ...Option) fakedata.PostProcessor {
	cfg := options{format: phonenumbers.INTERNATIONAL}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return func(ctx fakedata.PostContext, raw string) (string, error) {
		value := strings.TrimSpace(raw)
		if value == "" {
			return value, nil
		}

		region := determineRegion(ctx, cfg.region)
		number, err := phonenumbers.Parse(value, region)
		if err != nil {
			if cfg.strict {
				return "", fmt.Errorf("%w: phone %q (region %q): %v", fakedata.ErrInvalidParam, value, region, err)
			}
			return value, nil
		}

		if !phonenumbers.IsPossibleNumber(number) && !phonenumbers.IsValidNumber(number) {
			if cfg.strict {
				return "", fmt.Errorf("%w: phone %q is not possible in region %q", fakedata.ErrInvalidParam, value, region)
			}
			return value, nil
		}

		formatted := phonenumbers.Format(number, cfg.format)
		if formatted == "" {
			return value, nil
		}
		return formatted, nil
	}
}

// Provider returns a phone provider registered under category whose output is
// formatted by libphonenumber. It resolves the same "phone" locale key as the
// built in provider.
func Provider(category string, opts ...Option) fakedata.Provider {
	return fakedata.Provider{
		Category: category,
		Key:      "phone",
		Post:     []fakedata.PostProcessor{fakedata.ExpandMaskPost, PostProcessor(opts...)},
	}
}

func determineRegion(ctx fakedata.PostContext, explicitRegion string) string {
	if explicitRegion != "" {
		return explicitRegion
	}

	if region := regionFromLocale(ctx.Locale); region != "" {
		return region
	}

	return regionFromChain(ctx)
}

func regionFromChain(ctx fakedata.PostContext) string {
	candidates := []string{ctx.Locale}
	if ctx.Store != nil {
		if chain, err := ctx.Store.Chain(ctx.Locale); err == nil {
			candidates = chain
		}
	}
	for _, locale := range candidates {
		if plan, ok := fakedata.DefaultPhoneDialPlan(locale); ok {
			if region := regionFromDialPlan(plan); region != "" {
				return region
			}
		}
	}
	return ""
}

func regionFromLocale(locale string) string {
	if locale == "" {
		return ""
	}

	cleaned := strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(cleaned)
	if err != nil {
		return ""
	}

	region, confidence := tag.Region()
	if confidence == language.No {
		return ""
	}

	return strings.ToUpper(region.String())
}

func regionFromDialPlan(plan fakedata.PhoneDialPlan) string {
	code, err := strconv.Atoi(plan.CountryCode)
	if err != nil || code <= 0 {
		return ""
	}
	region := phonenumbers.GetRegionCodeForCountryCode(code)
	return strings.ToUpper(region)
}
