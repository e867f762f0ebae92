package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Domenick1991/bookingflow/internal/domain"
)

var (
	airportCodeRe  = regexp.MustCompile(`^[A-Z]{3}$`)
	flightNumberRe = regexp.MustCompile(`^[A-Z]{2,3}\d{1,4}$`)
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharsRe   = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
)

// SearchRequest validates an offer search. All violated rules are collected.
func SearchRequest(req domain.SearchRequest) Result {
	return searchRequestAt(req, time.Now())
}

func searchRequestAt(req domain.SearchRequest, now time.Time) Result {
	var errs []string

	if r := Pattern(req.Origin, airportCodeRe, "origin must be a 3-letter airport code"); !r.IsValid {
		errs = append(errs, r.Errors...)
	}
	if r := Pattern(req.Destination, airportCodeRe, "destination must be a 3-letter airport code"); !r.IsValid {
		errs = append(errs, r.Errors...)
	}
	if req.Origin != "" && req.Origin == req.Destination {
		errs = append(errs, "origin and destination cannot be the same")
	}
	if r := futureDateAt(req.DepartureDate, now); !r.IsValid {
		errs = append(errs, prefix("departure date", r.Errors)...)
	}
	if req.ReturnDate != "" {
		if r := ReturnDate(req.ReturnDate, req.DepartureDate); !r.IsValid {
			errs = append(errs, prefix("return date", r.Errors)...)
		}
	}
	if req.Passengers < 1 || req.Passengers > 9 {
		errs = append(errs, "passenger count must be between 1 and 9")
	}

	return fromErrors(errs)
}

// Passenger validates one traveler record. Contact fields are optional on
// non-primary passengers, so email and phone are only checked when present.
func Passenger(p domain.Passenger) Result {
	return passengerAt(p, time.Now())
}

func passengerAt(p domain.Passenger, now time.Time) Result {
	var errs []string

	if r := Required(p.FirstName); !r.IsValid {
		errs = append(errs, "first name required")
	}
	if r := Required(p.LastName); !r.IsValid {
		errs = append(errs, "last name required")
	}
	if p.Email != "" {
		if r := Pattern(p.Email, emailRe, "email is invalid"); !r.IsValid {
			errs = append(errs, r.Errors...)
		}
	}
	if p.Phone != "" {
		if !phoneCharsRe.MatchString(p.Phone) || len(strings.TrimSpace(p.Phone)) < 10 {
			errs = append(errs, "phone number is invalid")
		}
	}
	if r := Date(p.DateOfBirth); !r.IsValid {
		errs = append(errs, prefix("date of birth", r.Errors)...)
	} else {
		age := ageAt(p.DateOfBirth, now)
		if age < 0 || age > 120 {
			errs = append(errs, "age must be between 0 and 120")
		}
	}

	return fromErrors(errs)
}

// Flight validates a directly-entered flight record.
func Flight(f domain.Flight) Result {
	var errs []string

	if r := Pattern(f.FlightNumber, flightNumberRe, "flight number must look like AA123"); !r.IsValid {
		errs = append(errs, r.Errors...)
	}
	if r := Pattern(f.Origin, airportCodeRe, "origin must be a 3-letter airport code"); !r.IsValid {
		errs = append(errs, r.Errors...)
	}
	if r := Pattern(f.Destination, airportCodeRe, "destination must be a 3-letter airport code"); !r.IsValid {
		errs = append(errs, r.Errors...)
	}
	dep, depErr := time.Parse(time.RFC3339, f.DepartureTime)
	if depErr != nil {
		errs = append(errs, "departure time must be a valid timestamp")
	}
	arr, arrErr := time.Parse(time.RFC3339, f.ArrivalTime)
	if arrErr != nil {
		errs = append(errs, "arrival time must be a valid timestamp")
	}
	if depErr == nil && arrErr == nil && !arr.After(dep) {
		errs = append(errs, "arrival must be after departure")
	}
	if f.Price < 0 {
		errs = append(errs, "price cannot be negative")
	}

	return fromErrors(errs)
}

// Payment is the transition guard for the payment step. Card separators are
// stripped before the length check.
func Payment(p domain.PaymentDetails) Result {
	var errs []string

	digits := stripSeparators(p.CardNumber)
	if len(digits) < 13 {
		errs = append(errs, "card number must have at least 13 digits")
	}
	if r := Required(p.ExpiryMonth); !r.IsValid {
		errs = append(errs, "expiry month required")
	}
	if r := Required(p.ExpiryYear); !r.IsValid {
		errs = append(errs, "expiry year required")
	}
	if len(strings.TrimSpace(p.CVV)) < 3 {
		errs = append(errs, "cvv must have at least 3 digits")
	}
	if r := Required(p.CardholderName); !r.IsValid {
		errs = append(errs, "cardholder name required")
	}
	billing := map[string]string{
		"street":  p.BillingAddress.Street,
		"city":    p.BillingAddress.City,
		"state":   p.BillingAddress.State,
		"zip":     p.BillingAddress.ZipCode,
		"country": p.BillingAddress.Country,
	}
	for _, field := range []string{"street", "city", "state", "zip", "country"} {
		if r := Required(billing[field]); !r.IsValid {
			errs = append(errs, fmt.Sprintf("billing %s required", field))
		}
	}

	return fromErrors(errs)
}

func stripSeparators(card string) string {
	var b strings.Builder
	for _, r := range card {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ageAt(dob string, now time.Time) int {
	born, _ := time.Parse(dateLayout, dob)
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

func prefix(field string, errs []string) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, field+" "+e)
	}
	return out
}

func fromErrors(errs []string) Result {
	if len(errs) > 0 {
		return Result{IsValid: false, Errors: errs}
	}
	return valid()
}
