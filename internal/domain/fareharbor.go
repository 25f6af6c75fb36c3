package domain

// WebhookEnvelope is the top-level FareHarbor webhook body. FareHarbor also
// delivers non-booking callbacks, so Booking may be nil.
type WebhookEnvelope struct {
	Booking *Booking `json:"booking"`
}

// Booking is the raw FareHarbor booking payload for one flight segment.
// It is never mutated after decoding.
type Booking struct {
	PK                int64              `json:"pk"`
	UUID              string             `json:"uuid"`
	Order             *Order             `json:"order"`
	Availability      Availability       `json:"availability"`
	Customers         []Customer         `json:"customers"`
	Contact           Contact            `json:"contact"`
	CustomFieldValues []CustomFieldValue `json:"custom_field_values"`
}

// IsRoundTrip reports whether the booking belongs to a multi-segment order.
// A missing order (or missing display id) means a single trip.
func (b *Booking) IsRoundTrip() bool {
	return b.Order != nil && b.Order.DisplayID != ""
}

// OrderDisplayID returns the order key shared by both legs of a round trip,
// or "" for a single trip.
func (b *Booking) OrderDisplayID() string {
	if b.Order == nil {
		return ""
	}
	return b.Order.DisplayID
}

type Order struct {
	DisplayID string `json:"display_id"`
}

type Availability struct {
	PK       int64  `json:"pk"`
	StartAt  string `json:"start_at"`
	EndAt    string `json:"end_at"`
	Headline string `json:"headline"`
	Item     Item   `json:"item"`
}

// Item is the bookable route. Name carries the airports as
// "Fort Lauderdale Executive (FXE) → South Andros (COX)"; PK is the legacy
// flight identifier used when search yields no match.
type Item struct {
	PK   int64  `json:"pk"`
	Name string `json:"name"`
}

type CustomFieldValue struct {
	Name         string `json:"name"`
	Value        string `json:"value"`
	DisplayValue string `json:"display_value"`
}

type Customer struct {
	PK                int64              `json:"pk"`
	CustomFieldValues []CustomFieldValue `json:"custom_field_values"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}
