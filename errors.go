package fakedata

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLocaleNotFound indicates the locale code has no registered data.
	ErrLocaleNotFound = errors.New("fakedata: locale not found")
	// ErrKeyNotFound indicates a key is absent from every table in the fallback chain.
	ErrKeyNotFound = errors.New("fakedata: key not found")
	// ErrEmptyPool is returned when sampling from a pool without entries.
	ErrEmptyPool = errors.New("fakedata: empty pool")
	// ErrRecursionLimit guards cyclic or over-deep template definitions.
	ErrRecursionLimit = errors.New("fakedata: template recursion limit exceeded")
	// ErrUnknownCategory indicates the provider registry has no such category.
	ErrUnknownCategory = errors.New("fakedata: unknown category")

	ErrInvalidRange      = errors.New("fakedata: invalid range")
	ErrInvalidWeights    = errors.New("fakedata: invalid weights")
	ErrTemplateSyntax    = errors.New("fakedata: template syntax error")
	ErrInvalidSpec       = errors.New("fakedata: invalid structured spec")
	ErrPatternMismatch   = errors.New("fakedata: value does not match locale pattern")
	ErrUnsupportedLocale = errors.New("fakedata: unsupported locale")
	ErrInvalidParam      = errors.New("fakedata: invalid parameter")
	ErrInvalidProvider   = errors.New("fakedata: invalid provider")
)

// LookupError reports a key that could not be found after walking the chain.
type LookupError struct {
	Locale string
	Key    string
	Chain  []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q in locale %q (chain %s)", ErrKeyNotFound, e.Key, e.Locale, strings.Join(e.Chain, " -> "))
}

func (e *LookupError) Unwrap() error {
	return ErrKeyNotFound
}

// SyntaxError points at the offending offset of a malformed template.
type SyntaxError struct {
	Template string
	Offset   int
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrTemplateSyntax, e.Reason, e.Offset, e.Template)
}

func (e *SyntaxError) Unwrap() error {
	return ErrTemplateSyntax
}

// FieldError identifies the structured field whose generation failed.
type FieldError struct {
	Index    int
	Field    string
	Category string
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("fakedata: field %q (#%d, category %q): %v", e.Field, e.Index, e.Category, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
