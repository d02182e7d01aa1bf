package fakedata

import (
	"errors"
	"testing"
)

func TestPhoneDialPlanFormat(t *testing.T) {
	tests := []struct {
		locale string
		raw    string
		want   string
	}{
		{locale: "en", raw: "(650) 253-0000", want: "+1 650 253 0000"},
		{locale: "en", raw: "1 650 253 0000", want: "+1 650 253 0000"},
		{locale: "en-GB", raw: "07123 456789", want: "+44 7123 456789"},
		{locale: "en_gb", raw: "+44 7123 456789", want: "+44 7123 456789"},
		{locale: "fr", raw: "06 12 34 56 78", want: "+33 6 12 34 56 78"},
		{locale: "de", raw: "0301 23456789", want: "+49 301 23456789"},
		{locale: "ru", raw: "8 (912) 345-67-89", want: "+7 912 345 67 89"},
		{locale: "tr", raw: "0 (532) 123 45 67", want: "+90 532 123 45 67"},
		{locale: "en", raw: "12-34", want: "1234"},
		{locale: "en", raw: "no digits", want: ""},
	}

	for _, tc := range tests {
		plan, ok := DefaultPhoneDialPlan(tc.locale)
		if !ok {
			t.Fatalf("DefaultPhoneDialPlan(%q) missing", tc.locale)
		}
		if got := plan.Format(tc.raw); got != tc.want {
			t.Fatalf("Format(%q, %q) = %q, want %q", tc.locale, tc.raw, got, tc.want)
		}
	}
}

func TestDefaultPhoneDialPlanLookup(t *testing.T) {
	if plan, ok := DefaultPhoneDialPlan("en-US"); !ok || plan.CountryCode != "1" {
		t.Fatalf("en-US must use the en plan, got %+v, %v", plan, ok)
	}
	if _, ok := DefaultPhoneDialPlan("pt"); ok {
		t.Fatalf("pt has no dial plan")
	}
	if _, ok := DefaultPhoneDialPlan(""); ok {
		t.Fatalf("empty locale has no dial plan")
	}
}

func TestRegisterPhoneDialPlan(t *testing.T) {
	RegisterPhoneDialPlan("es", PhoneDialPlan{CountryCode: " 34 ", Groups: []int{3, 0, 3, 3}})
	RegisterPhoneDialPlan("it", PhoneDialPlan{CountryCode: "39"})

	plan, ok := DefaultPhoneDialPlan("es-ES")
	if !ok {
		t.Fatalf("registered plan missing")
	}
	if got := plan.Format("612 345 678"); got != "+34 612 345 678" {
		t.Fatalf("Format = %q", got)
	}
	if _, ok := DefaultPhoneDialPlan("it"); ok {
		t.Fatalf("plan without groups must be ignored")
	}
}

func TestRomanize(t *testing.T) {
	tests := []struct {
		locale string
		text   string
		want   string
	}{
		{locale: "ru", text: "Ликид Геимфари", want: "Likid Geimfari"},
		{locale: "ru-RU", text: "Щукин Юрий", want: "Shchukin Yuriy"},
		{locale: "ru", text: "Подъезд, д. 5", want: "Podezd, d. 5"},
		{locale: "ru", text: `Что-то там_4352-!@#$%^&*()_+?"<>"`, want: `Chto-to tam_4352-!@#$%^&*()_+?"<>"`},
		{locale: "ua", text: "Українська мова!", want: "Ukrayins’ka mova!"},
		{locale: "uk", text: "Київ", want: "Kyyiv"},
		{locale: "ua", text: "Гнат", want: "Hnat"},
	}

	for _, tc := range tests {
		got, err := Romanize(tc.locale, tc.text)
		if err != nil {
			t.Fatalf("Romanize(%q) error = %v", tc.locale, err)
		}
		if got != tc.want {
			t.Fatalf("Romanize(%q, %q) = %q, want %q", tc.locale, tc.text, got, tc.want)
		}
	}

	if _, err := Romanize("fr", "Zoé"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("Romanize(fr) error = %v, want ErrUnsupportedLocale", err)
	}
}

func TestSimplePostProcessors(t *testing.T) {
	ctx := PostContext{Locale: "tr", Sampler: NewSeededSampler(1)}

	tests := []struct {
		name string
		post PostProcessor
		in   string
		want string
	}{
		{name: "digits", post: DigitsOnly, in: "(650) 253-0000", want: "6502530000"},
		{name: "digits keeps plus", post: DigitsOnly, in: " +44 20 7946", want: "+44207946"},
		{name: "strip spaces", post: StripSpaces, in: " a b\tc ", want: "abc"},
		{name: "locale lowercase", post: Lowercase, in: "İSTANBUL", want: "istanbul"},
		{name: "no case param", post: ApplyCase, in: "Keep", want: "Keep"},
		{name: "no romanize param", post: RomanizePost, in: "Keep", want: "Keep"},
		{name: "no format param", post: FormatPhone, in: "555", want: "555"},
		{name: "pattern without store", post: MatchLocalePattern("postal_code_pattern"), in: "x", want: "x"},
	}

	for _, tc := range tests {
		got, err := tc.post(ctx, tc.in)
		if err != nil {
			t.Fatalf("%s: error = %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestMatchLocalePatternInvalidRegexp(t *testing.T) {
	store := NewStore(NewMapSource(map[string]*LocaleTable{
		"en": {Pools: map[string]Pool{"code_pattern": {Values: []string{"("}}}},
	}))
	post := MatchLocalePattern("code_pattern")
	if _, err := post(PostContext{Locale: "en", Store: store}, "x"); err == nil {
		t.Fatalf("expected an error for an invalid pattern")
	}
}
