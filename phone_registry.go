package fakedata

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// PhoneDialPlan describes how to normalize and format phone numbers for a locale.
// CountryCode should be digits without the leading plus sign.
// NationalPrefix is optional and stripped when present.
// Groups defines the digit grouping for the national significant number.
type PhoneDialPlan struct {
	CountryCode    string
	NationalPrefix string
	Groups         []int
}

var (
	dialPlansMu sync.RWMutex
	dialPlans   = map[string]PhoneDialPlan{
		"en": {
			CountryCode:    "1",
			NationalPrefix: "1",
			Groups:         []int{3, 3, 4},
		},
		"en-gb": {
			CountryCode:    "44",
			NationalPrefix: "0",
			Groups:         []int{4, 6},
		},
		"fr": {
			CountryCode:    "33",
			NationalPrefix: "0",
			Groups:         []int{1, 2, 2, 2, 2},
		},
		"de": {
			CountryCode:    "49",
			NationalPrefix: "0",
			Groups:         []int{3, 8},
		},
		"tr": {
			CountryCode:    "90",
			NationalPrefix: "0",
			Groups:         []int{3, 3, 2, 2},
		},
		"ru": {
			CountryCode:    "7",
			NationalPrefix: "8",
			Groups:         []int{3, 3, 2, 2},
		},
	}
)

// RegisterPhoneDialPlan registers or replaces the dial plan of a locale. Plans
// without a country code or groups are ignored.
func RegisterPhoneDialPlan(locale string, plan PhoneDialPlan) {
	key := normalizeLocaleKey(locale)
	plan = plan.normalized()
	if key == "" || plan.CountryCode == "" || len(plan.Groups) == 0 {
		return
	}

	dialPlansMu.Lock()
	defer dialPlansMu.Unlock()
	dialPlans[key] = plan
}

// DefaultPhoneDialPlan exposes the dial plan for a locale if available.
// It first checks the exact locale key, then falls back to the base language.
func DefaultPhoneDialPlan(locale string) (PhoneDialPlan, bool) {
	key := normalizeLocaleKey(locale)

	dialPlansMu.RLock()
	defer dialPlansMu.RUnlock()

	if plan, ok := dialPlans[key]; ok {
		return plan, true
	}

	tag, err := language.Parse(key)
	if err != nil {
		return PhoneDialPlan{}, false
	}
	base, _ := tag.Base()
	baseKey := base.String()
	if baseKey != key {
		if plan, ok := dialPlans[baseKey]; ok {
			return plan, true
		}
	}

	return PhoneDialPlan{}, false
}

// Format renders raw as +<country> followed by the grouped national number.
// Input whose digit count does not match the plan is returned digits only.
func (plan PhoneDialPlan) Format(raw string) string {
	digits := digitsOnly(raw)
	if digits == "" {
		return ""
	}

	plan = plan.normalized()
	if plan.CountryCode == "" || len(plan.Groups) == 0 {
		return digits
	}

	national := digits
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		national = strings.TrimPrefix(national, plan.CountryCode)
	} else if plan.NationalPrefix != "" && len(national) > plan.nationalLength() {
		national = strings.TrimPrefix(national, plan.NationalPrefix)
	}

	if len(national) != plan.nationalLength() {
		return digits
	}

	parts := make([]string, 0, len(plan.Groups)+1)
	parts = append(parts, "+"+plan.CountryCode)
	offset := 0
	for _, size := range plan.Groups {
		parts = append(parts, national[offset:offset+size])
		offset += size
	}
	return strings.Join(parts, " ")
}

func (plan PhoneDialPlan) nationalLength() int {
	total := 0
	for _, g := range plan.Groups {
		total += g
	}
	return total
}

func (plan PhoneDialPlan) normalized() PhoneDialPlan {
	return PhoneDialPlan{
		CountryCode:    strings.TrimSpace(plan.CountryCode),
		NationalPrefix: strings.TrimSpace(plan.NationalPrefix),
		Groups:         normalizePhoneGroups(plan.Groups),
	}
}

func normalizePhoneGroups(groups []int) []int {
	if len(groups) == 0 {
		return nil
	}
	result := make([]int, 0, len(groups))
	for _, g := range groups {
		if g > 0 {
			result = append(result, g)
		}
	}
	return result
}

func normalizeLocaleKey(locale string) string {
	if locale == "" {
		return ""
	}
	normalized := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	return strings.ToLower(normalized)
}

func digitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
