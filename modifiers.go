package fakedata

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type modifierKind int

const (
	modUpper modifierKind = iota + 1
	modLower
	modTitle
	modASCII
	modMask
	modPad
	modRange
)

const maxPadWidth = 64

type modifier struct {
	kind  modifierKind
	width int
	lo    int
	hi    int
}

var uppercaseLetters = strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "")

func parseModifier(raw string) (modifier, string) {
	switch raw {
	case "upper":
		return modifier{kind: modUpper}, ""
	case "lower":
		return modifier{kind: modLower}, ""
	case "title":
		return modifier{kind: modTitle}, ""
	case "ascii":
		return modifier{kind: modASCII}, ""
	case "mask":
		return modifier{kind: modMask}, ""
	case "":
		return modifier{}, "empty modifier"
	}

	if width, ok := strings.CutPrefix(raw, "pad="); ok {
		n, err := strconv.Atoi(width)
		if err != nil || n <= 0 || n > maxPadWidth {
			return modifier{}, fmt.Sprintf("invalid pad width %q", width)
		}
		return modifier{kind: modPad, width: n}, ""
	}

	if lo, hi, ok := strings.Cut(raw, "-"); ok {
		l, errLo := strconv.Atoi(lo)
		h, errHi := strconv.Atoi(hi)
		if errLo != nil || errHi != nil || l < 0 || h < 0 {
			return modifier{}, fmt.Sprintf("invalid range %q", raw)
		}
		return modifier{kind: modRange, lo: l, hi: h}, ""
	}

	return modifier{}, fmt.Sprintf("unknown modifier %q", raw)
}

// applyModifiers runs the modifiers in declaration order. Range modifiers only
// affect the int builtin and are ignored here.
func applyModifiers(sampler *Sampler, locale, value string, mods []modifier) (string, error) {
	for _, mod := range mods {
		switch mod.kind {
		case modUpper:
			value = cases.Upper(languageTag(locale)).String(value)
		case modLower:
			value = cases.Lower(languageTag(locale)).String(value)
		case modTitle:
			value = cases.Title(languageTag(locale)).String(value)
		case modASCII:
			folded, err := foldASCII(value)
			if err != nil {
				return "", err
			}
			value = folded
		case modMask:
			expanded, err := ExpandMask(sampler, value)
			if err != nil {
				return "", err
			}
			value = expanded
		case modPad:
			if n := utf8.RuneCountInString(value); n < mod.width {
				value = strings.Repeat("0", mod.width-n) + value
			}
		}
	}
	return value, nil
}

// foldASCII strips combining marks, "Müller" becomes "Muller"
func foldASCII(value string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return "", fmt.Errorf("fakedata: ascii fold: %w", err)
	}
	return out, nil
}

// ExpandMask replaces '#' with a random digit and '@' with a random uppercase
// letter, other characters are copied.
func ExpandMask(sampler *Sampler, mask string) (string, error) {
	var b strings.Builder
	b.Grow(len(mask))
	for _, r := range mask {
		switch r {
		case '#':
			n, err := sampler.IntRange(0, 9)
			if err != nil {
				return "", err
			}
			b.WriteByte(byte('0' + n))
		case '@':
			letter, err := Choice(sampler, uppercaseLetters)
			if err != nil {
				return "", err
			}
			b.WriteString(letter)
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}
