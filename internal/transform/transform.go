// Package transform reshapes FareHarbor booking data into the MakerSuite
// CreateBooking payload.
package transform

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/biter777/countries"
	"github.com/makersair/fhbridge/internal/domain"
)

// Build assembles the outbound booking. Legs are given in arrival order and
// each contributes its own passengers; passenger lists are concatenated, not
// de-duplicated. ReturnFlights stays empty for single trips.
func Build(legs []*domain.BookingLeg, departFlights, returnFlights []int64) *domain.OutboundBooking {
	if returnFlights == nil {
		returnFlights = []int64{}
	}

	passengers := make([]domain.Passenger, 0)
	for _, leg := range legs {
		passengers = append(passengers, Passengers(leg.Booking)...)
	}

	return &domain.OutboundBooking{
		DepartFlights: departFlights,
		ReturnFlights: returnFlights,
		Passengers:    passengers,
	}
}

// Passengers maps one booking's customers to MakerSuite passengers.
// Address fields come from booking-level custom fields, contact details from
// the booking contact.
func Passengers(b *domain.Booking) []domain.Passenger {
	bookingFields := fieldValues(b.CustomFieldValues)

	passengers := make([]domain.Passenger, 0, len(b.Customers))
	for _, customer := range b.Customers {
		fields := fieldDisplayValues(customer.CustomFieldValues)

		passengers = append(passengers, domain.Passenger{
			FirstName:       fields["First Name"],
			LastName:        fields["Last Name"],
			DateOfBirth:     ConvertDate(fields["Date of Birth"]),
			Gender:          genderCode(fields["Gender"]),
			Email:           b.Contact.Email,
			Phone:           b.Contact.Phone,
			DocumentNumber:  fields["Passport Number"],
			DocumentType:    "P",
			DocumentExpiry:  ConvertDate(fields["Passport Expiration Date"]),
			DocumentCountry: CountryISO3(fields["Citizenship"]),
			Weight:          parseWeight(fields["Passenger Weight"]),
			BahamasStay:     "BSStay",
			AddressStreet:   bookingFields["Address Street"],
			AddressCity:     bookingFields["Address City"],
			AddressState:    bookingFields["Address State"],
			AddressZIPCode:  bookingFields["Zip Code"],
		})
	}
	return passengers
}

// ConvertDate turns FareHarbor's MM/DD/YYYY into YYYY-MM-DD. Values in any
// other format pass through unchanged.
func ConvertDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse("01/02/2006", s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

// CountryISO3 converts a country name to its ISO3 code, returning the input
// unchanged when the name is unknown.
func CountryISO3(name string) string {
	if name == "" {
		return ""
	}
	country := countries.ByName(name)
	if country == countries.Unknown {
		log.Printf("country %q not recognized, passing through", name)
		return name
	}
	return country.Alpha3()
}

func genderCode(display string) string {
	if strings.Contains(display, "Male") {
		return "M"
	}
	return "F"
}

func parseWeight(s string) int {
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || w < 0 {
		return 0
	}
	return w
}

func fieldValues(fields []domain.CustomFieldValue) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m
}

func fieldDisplayValues(fields []domain.CustomFieldValue) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.DisplayValue
	}
	return m
}
