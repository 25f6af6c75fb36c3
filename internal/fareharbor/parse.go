// Package fareharbor extracts flight data out of raw FareHarbor booking
// payloads: airport codes from the item name, the flight number from the
// availability headline or custom fields, and the departure timestamp.
package fareharbor

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/makersair/fhbridge/internal/domain"
)

// ParseError means the webhook payload is malformed for this integration.
// It maps to a client error; nothing is stored before extraction succeeds.
type ParseError struct {
	Field  string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Field, e.Detail)
}

var (
	airportCodeRe    = regexp.MustCompile(`\(([A-Z]{3})\)`)
	headlineNumberRe = regexp.MustCompile(`\s*-\s*(\d+)$`)
	trailingDigitsRe = regexp.MustCompile(`(\d+)$`)
	digitsRe         = regexp.MustCompile(`\d+`)
)

// ExtractLeg pulls everything the coordinator needs from a booking.
// Returns a *ParseError when the item name, departure time or flight number
// cannot be extracted.
func ExtractLeg(b *domain.Booking) (*domain.BookingLeg, error) {
	origin, destination, err := AirportCodes(b.Availability.Item.Name)
	if err != nil {
		return nil, err
	}

	date, err := ParseTimestamp(b.Availability.StartAt)
	if err != nil {
		return nil, &ParseError{Field: "availability.start_at", Detail: err.Error()}
	}

	number, err := FlightNumber(b)
	if err != nil {
		return nil, err
	}

	return &domain.BookingLeg{
		Booking:      b,
		Origin:       origin,
		Destination:  destination,
		Date:         date,
		FlightNumber: number,
		OrderID:      b.OrderDisplayID(),
		ItemPK:       b.Availability.Item.PK,
	}, nil
}

// AirportCodes extracts the origin and destination codes from an item name
// like "Fort Lauderdale Executive (FXE) → South Andros (COX)".
func AirportCodes(itemName string) (origin, destination string, err error) {
	matches := airportCodeRe.FindAllStringSubmatch(itemName, -1)
	if len(matches) < 2 {
		return "", "", &ParseError{
			Field:  "availability.item.name",
			Detail: fmt.Sprintf("expected two bracketed airport codes in %q", itemName),
		}
	}
	return matches[0][1], matches[1][1], nil
}

// FlightNumber extracts the flight number, preferring the availability
// headline ("N146WM - 2112" -> "2112") and falling back to the booking
// custom field named "Flight Number <N>".
func FlightNumber(b *domain.Booking) (string, error) {
	headline := strings.TrimSpace(b.Availability.Headline)
	if headline != "" {
		if m := headlineNumberRe.FindStringSubmatch(headline); m != nil {
			return m[1], nil
		}
		if m := trailingDigitsRe.FindStringSubmatch(headline); m != nil {
			return m[1], nil
		}
	}

	for _, field := range b.CustomFieldValues {
		if !strings.Contains(field.Name, "Flight Number") {
			continue
		}
		if m := digitsRe.FindString(field.Name); m != "" {
			return m, nil
		}
		if v := strings.TrimSpace(field.DisplayValue); v != "" && digitsOnly(v) {
			return v, nil
		}
		if v := strings.TrimSpace(field.Value); v != "" && digitsOnly(v) {
			return v, nil
		}
	}

	return "", &ParseError{Field: "custom_field_values", Detail: "no flight number field"}
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ParseTimestamp parses a FareHarbor or Airmax timestamp. FareHarbor sends
// offsets without a colon ("2025-10-28T08:00:00-0400"), Airmax with one
// ("-04:00"); both forms and a trailing Z are accepted.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}
