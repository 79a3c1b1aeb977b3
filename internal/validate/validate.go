package validate

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	"golang.org/x/text/unicode/norm"
)

var (
	isbnRe      = regexp.MustCompile(`^\d{10}$|^\d{13}$|^\d{9}[\dXx]$`)
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	isbnStripRe = regexp.MustCompile(`[-\s]`)
)

const minTitleLen = 3

// Sanitize trims, drops NUL bytes and normalizes to NFC.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(norm.NFC.String(s))
}

// Optional sanitizes s and maps an empty result to nil.
func Optional(s string) *string {
	s = Sanitize(s)
	if s == "" {
		return nil
	}
	return &s
}

func Title(s string) (string, error) {
	s = Sanitize(s)
	if s == "" {
		return "", apperr.Invalid("title is required")
	}
	if utf8.RuneCountInString(s) < minTitleLen {
		return "", apperr.Invalid("title must be at least " + strconv.Itoa(minTitleLen) + " characters")
	}
	return s, nil
}

// ISBN strips dashes and whitespace and checks the 10/13 digit shapes.
func ISBN(s string) (string, error) {
	s = isbnStripRe.ReplaceAllString(Sanitize(s), "")
	if s == "" {
		return "", apperr.Invalid("isbn is required")
	}
	if !isbnRe.MatchString(s) {
		return "", apperr.Invalid("invalid isbn: must have 10 or 13 digits")
	}
	return s, nil
}

func Email(s string) (string, error) {
	s = Sanitize(s)
	if s == "" {
		return "", apperr.Invalid("email is required")
	}
	if !emailRe.MatchString(s) {
		return "", apperr.Invalid("invalid email")
	}
	return s, nil
}

// Required trims s and rejects an empty result.
func Required(name, s string) (string, error) {
	s = Sanitize(s)
	if s == "" {
		return "", apperr.Invalid(name + " is required")
	}
	return s, nil
}

// maxInt matches the integer columns that store pages and years.
const maxInt = math.MaxInt32

// parseInt accepts JSON numbers and numeric strings. present is false for
// nil and blank strings. Fractions truncate toward zero.
func parseInt(v any) (n int64, present bool, ok bool) {
	switch t := v.(type) {
	case nil:
		return 0, false, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false, true
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, true, false
		}
		return truncate(f)
	case float64:
		return truncate(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, true, true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, true, false
		}
		return truncate(f)
	case int:
		return int64(t), true, true
	case int64:
		return t, true, true
	default:
		return 0, true, false
	}
}

// truncate saturates finite floats outside int32 so callers see them as
// too large or too small rather than a wrapped value.
func truncate(f float64) (int64, bool, bool) {
	switch {
	case math.IsInf(f, 0) || math.IsNaN(f):
		return 0, true, false
	case f > maxInt:
		return maxInt + 1, true, true
	case f < -maxInt:
		return -maxInt - 1, true, true
	}
	return int64(f), true, true
}

// Pages must be a positive integer when supplied.
func Pages(v any) (*int, error) {
	n, present, ok := parseInt(v)
	if !present && ok {
		return nil, nil
	}
	if !ok || n < 1 {
		return nil, apperr.Invalid("pages must be greater than 0")
	}
	if n > maxInt {
		return nil, apperr.Invalid("pages is too large")
	}
	out := int(n)
	return &out, nil
}

// Year rejects non-numeric and out-of-range input; zero and negative
// years become null.
func Year(name string, v any) (*int, error) {
	n, present, ok := parseInt(v)
	if !ok {
		return nil, apperr.Invalid(name + " must be a number")
	}
	if n > maxInt {
		return nil, apperr.Invalid(name + " is too large")
	}
	if !present || n <= 0 {
		return nil, nil
	}
	out := int(n)
	return &out, nil
}
