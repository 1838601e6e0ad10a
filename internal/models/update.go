package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (birthdays, hire dates).
const DateLayout = "2006-01-02"

// setIfChanged copies *src into *dst when src is set and differs from the current value.
func setIfChanged[T comparable](dst *T, src *T) bool {
	if src == nil || *dst == *src {
		return false
	}
	*dst = *src
	return true
}

// setStringIfChanged is setIfChanged for free text; surrounding whitespace is ignored.
func setStringIfChanged(dst *string, src *string) bool {
	if src == nil {
		return false
	}
	v := strings.TrimSpace(*src)
	return setIfChanged(dst, &v)
}

// setOptionalStringIfChanged handles nullable text columns; an empty value clears the field.
func setOptionalStringIfChanged(dst **string, src *string) bool {
	if src == nil {
		return false
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		if *dst == nil {
			return false
		}
		*dst = nil
		return true
	}
	if *dst != nil && **dst == v {
		return false
	}
	*dst = &v
	return true
}

// setDateIfChanged parses a YYYY-MM-DD value and assigns it when the day differs.
// An empty string clears the date. Unparseable input is ignored; validation rejects it earlier.
func setDateIfChanged(dst **time.Time, src *string) bool {
	if src == nil {
		return false
	}
	if strings.TrimSpace(*src) == "" {
		if *dst == nil {
			return false
		}
		*dst = nil
		return true
	}
	d, err := ParseDate(*src)
	if err != nil {
		return false
	}
	if *dst != nil && sameDay(**dst, d) {
		return false
	}
	*dst = &d
	return true
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
