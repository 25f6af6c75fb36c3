package domain

import "time"

// BookingLeg is one flight segment extracted from a webhook booking:
// the raw payload plus the fields the flight search needs.
type BookingLeg struct {
	Booking      *Booking
	Origin       string
	Destination  string
	Date         time.Time // departure time in the flight's local offset
	FlightNumber string
	OrderID      string // "" for single trips
	ItemPK       int64  // legacy fallback flight identifier
}

// FlightCandidate is one row returned by the Airmax flight search.
type FlightCandidate struct {
	Identifier   int64  `json:"identifier"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	FlightDate   string `json:"flight_date"`
	FlightNumber string `json:"flight_number"`
	FirstClass   bool   `json:"first_class"`
}

// ResolvedLeg pairs a leg with exactly one flight identifier: either the
// matched search candidate or, when search fails or finds nothing, the
// booking's availability item pk (Legacy is then true).
type ResolvedLeg struct {
	Leg      *BookingLeg
	FlightID int64
	Legacy   bool
}
