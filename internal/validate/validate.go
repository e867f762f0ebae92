// Package validate holds the pure validation engine behind the booking
// workflow: primitive field checks plus the composed airline-domain rules.
// Every check returns a fresh Result and collects all violations instead of
// stopping at the first one, so callers can show the user a complete list.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of one validation call. Never cached, never shared.
type Result struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

func valid() Result {
	return Result{IsValid: true, Errors: []string{}}
}

func invalid(errs ...string) Result {
	return Result{IsValid: false, Errors: errs}
}

// Err converts a failed Result into an error carrying the full message list.
// A passing Result yields nil.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &Error{Errors: r.Errors}
}

// Error is a validation failure as an error value. It keeps the ordered
// message list so the boundary can surface every violation at once.
type Error struct {
	Errors []string
}

func (e *Error) Error() string {
	return strings.Join(e.Errors, "; ")
}

const dateLayout = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Required fails when the value is blank after trimming.
func Required(value string) Result {
	if strings.TrimSpace(value) == "" {
		return invalid("required")
	}
	return valid()
}

// Pattern fails with message when re does not match value.
func Pattern(value string, re *regexp.Regexp, message string) Result {
	if !re.MatchString(value) {
		return invalid(message)
	}
	return valid()
}

// Num wraps a float for use as an optional Range bound.
func Num(v float64) *float64 {
	return &v
}

// Range checks that value parses as a number and lies in [min, max]. Either
// bound may be nil, leaving that side open. An empty message falls back to a
// generic one.
func Range(value string, min, max *float64, message string) Result {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	// ParseFloat accepts "NaN" and "Inf"; neither can satisfy a range.
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		if message != "" {
			return invalid(message)
		}
		return invalid("must be a number")
	}
	if (min != nil && n < *min) || (max != nil && n > *max) {
		if message != "" {
			return invalid(message)
		}
		return invalid(fmt.Sprintf("must be between %s and %s", boundLabel(min), boundLabel(max)))
	}
	return valid()
}

func boundLabel(b *float64) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}

// Date requires a YYYY-MM-DD string naming a real calendar date.
func Date(value string) Result {
	if !dateRe.MatchString(value) {
		return invalid("must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return invalid("must be a valid calendar date")
	}
	return valid()
}

// FutureDate requires a valid date that is today or later. The comparison is
// against the start of the current day, so a same-day departure is accepted
// regardless of time of day.
func FutureDate(value string) Result {
	return futureDateAt(value, time.Now())
}

func futureDateAt(value string, now time.Time) Result {
	if r := Date(value); !r.IsValid {
		return r
	}
	d, _ := time.Parse(dateLayout, value)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(startOfDay) {
		return invalid("must be today or later")
	}
	return valid()
}

// ReturnDate requires a valid date strictly after the departure date.
func ReturnDate(value, departureDate string) Result {
	if r := Date(value); !r.IsValid {
		return r
	}
	dep, err := time.Parse(dateLayout, departureDate)
	if err != nil {
		return invalid("departure date is invalid")
	}
	ret, _ := time.Parse(dateLayout, value)
	if !ret.After(dep) {
		return invalid("must be after the departure date")
	}
	return valid()
}
