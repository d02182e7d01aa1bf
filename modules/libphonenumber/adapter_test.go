package libphonenumber

import (
	"errors"
	"strings"
	"testing"

	fakedata "github.com/goliatone/go-fakedata"
	"github.com/nyaruka/phonenumbers"
)

func TestPostProcessorFormats(t *testing.T) {
	cases := []struct {
		name   string
		locale string
		raw    string
		opts   []Option
		want   string
	}{
		{name: "e164 from language region", locale: "en", raw: "6502530000", opts: []Option{WithFormat(phonenumbers.E164)}, want: "+16502530000"},
		{name: "explicit region", locale: "default", raw: "(650) 253-0000", opts: []Option{WithRegion("us"), WithFormat(phonenumbers.E164)}, want: "+16502530000"},
		{name: "international gb", locale: "en-gb", raw: "020 7946 0018", want: "+44 20 7946 0018"},
		{name: "unparsable passes through", locale: "en", raw: "not a phone", want: "not a phone"},
		{name: "empty", locale: "en", raw: "  ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post := PostProcessor(tc.opts...)
			got, err := post(fakedata.PostContext{Locale: tc.locale}, tc.raw)
			if err != nil {
				t.Fatalf("post(%q) error = %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("post(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestPostProcessorStrict(t *testing.T) {
	post := PostProcessor(WithStrict())
	_, err := post(fakedata.PostContext{Locale: "en"}, "not a phone")
	if !errors.Is(err, fakedata.ErrInvalidParam) {
		t.Fatalf("strict error = %v, want ErrInvalidParam", err)
	}
}

func TestRegionFromDialPlanChain(t *testing.T) {
	store := fakedata.NewStore(fakedata.NewMapSource(map[string]*fakedata.LocaleTable{
		"local": {Code: "local", Fallback: "fr"},
		"fr":    {Code: "fr"},
	}))

	got := regionFromChain(fakedata.PostContext{Locale: "local", Store: store})
	if got != "FR" {
		t.Fatalf("regionFromChain = %q, want FR", got)
	}
}

func TestProviderThroughGenerator(t *testing.T) {
	source := fakedata.NewMapSource(map[string]*fakedata.LocaleTable{
		"en": {
			Code:    "en",
			Formats: map[string][]string{"phone": {"650253####"}},
		},
	})
	cfg, err := fakedata.NewConfig(
		fakedata.WithSource(source),
		fakedata.WithSeed(7),
		fakedata.WithExtraProviders(Provider("phone_e164", WithFormat(phonenumbers.E164))),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	gen, err := cfg.BuildGenerator()
	if err != nil {
		t.Fatalf("BuildGenerator: %v", err)
	}

	got, err := gen.Generate("phone_e164", "en", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "+1650253") || len(got) != len("+16502530000") {
		t.Fatalf("Generate(phone_e164) = %q, want +1650253XXXX", got)
	}
}
