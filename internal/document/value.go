package document

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sant0-9/legalgen/internal/catalog"
)

// ErrInvalidValue is wrapped by every value construction or parse failure.
var ErrInvalidValue = errors.New("invalid value")

// DateLayout is the input layout accepted for date fields.
const DateLayout = "2006-01-02"

// Value is one typed form datum: text, a calendar date or a non-negative
// amount. The zero Value is empty text.
type Value struct {
	kind  catalog.Kind
	text  string
	date  time.Time
	cents int64
}

// Text wraps a literal string.
func Text(s string) Value {
	return Value{kind: catalog.KindText, text: s}
}

// Date builds a calendar date value. Out-of-range components are rejected
// rather than normalized, so February 30 is an error.
func Date(year int, month time.Month, day int) (Value, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Value{}, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidValue, year, int(month), day)
	}
	if year < 1 || year > 9999 {
		return Value{}, fmt.Errorf("%w: year %d out of range", ErrInvalidValue, year)
	}
	return Value{kind: catalog.KindDate, date: t}, nil
}

// DateOf takes the calendar date of t in its own location.
func DateOf(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: catalog.KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Amount builds a monetary amount, rounded to cents.
func Amount(v float64) (Value, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}, fmt.Errorf("%w: amount is not a finite number", ErrInvalidValue)
	}
	if v < 0 {
		return Value{}, fmt.Errorf("%w: amount %v is negative", ErrInvalidValue, v)
	}
	// float64(math.MaxInt64) is 2^63, the first value that does not fit
	cents := math.Round(v * 100)
	if cents >= float64(math.MaxInt64) {
		return Value{}, fmt.Errorf("%w: amount %v is too large", ErrInvalidValue, v)
	}
	return Value{kind: catalog.KindAmount, cents: int64(cents)}, nil
}

// AmountCents builds an amount from a whole number of cents.
func AmountCents(cents int64) (Value, error) {
	if cents < 0 {
		return Value{}, fmt.Errorf("%w: amount is negative", ErrInvalidValue)
	}
	return Value{kind: catalog.KindAmount, cents: cents}, nil
}

func (v Value) Kind() catalog.Kind { return v.kind }

// Text returns the literal of a text value.
func (v Value) Text() string { return v.text }

// Date returns the date of a date value at midnight UTC.
func (v Value) Date() time.Time { return v.date }

// Cents returns an amount in hundredths.
func (v Value) Cents() int64 { return v.cents }

// ParseValue converts raw form input into a value of the given kind.
func ParseValue(kind catalog.Kind, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)

	switch kind {
	case catalog.KindText:
		return Text(raw), nil

	case catalog.KindDate:
		if raw == "" {
			return Value{}, fmt.Errorf("%w: date is required (YYYY-MM-DD)", ErrInvalidValue)
		}
		parts := strings.Split(raw, "-")
		if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
			return Value{}, fmt.Errorf("%w: %q is not a date (YYYY-MM-DD)", ErrInvalidValue, raw)
		}
		y, errY := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		d, errD := strconv.Atoi(parts[2])
		if errY != nil || errM != nil || errD != nil {
			return Value{}, fmt.Errorf("%w: %q is not a date (YYYY-MM-DD)", ErrInvalidValue, raw)
		}
		return Date(y, time.Month(m), d)

	case catalog.KindAmount:
		return parseAmount(raw)

	default:
		return Value{}, fmt.Errorf("%w: unsupported kind %s", ErrInvalidValue, kind)
	}
}

// parseAmount reads a plain decimal with at most two fraction digits.
// Thousands separators are dropped.
func parseAmount(raw string) (Value, error) {
	s := strings.ReplaceAll(raw, ",", "")
	if s == "" {
		return Value{}, fmt.Errorf("%w: amount is required", ErrInvalidValue)
	}
	if strings.HasPrefix(s, "-") {
		return Value{}, fmt.Errorf("%w: amount %q is negative", ErrInvalidValue, raw)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return Value{}, fmt.Errorf("%w: amount %q must have one or two decimal places", ErrInvalidValue, raw)
	}
	if !allDigits(whole) || !allDigits(frac) {
		return Value{}, fmt.Errorf("%w: %q is not an amount", ErrInvalidValue, raw)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100-1 {
		return Value{}, fmt.Errorf("%w: amount %q is too large", ErrInvalidValue, raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)

	return AmountCents(units*100 + cents)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
