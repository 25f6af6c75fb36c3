package domain

import "time"

// Passenger is one traveller in the MakerSuite CreateBooking schema.
type Passenger struct {
	FirstName       string `json:"FirstName"`
	LastName        string `json:"LastName"`
	DateOfBirth     string `json:"DateOfBirth"`
	Gender          string `json:"Gender"`
	Email           string `json:"Email"`
	Phone           string `json:"Phone"`
	DocumentNumber  string `json:"DocumentNumber"`
	DocumentType    string `json:"DocumentType"`
	DocumentExpiry  string `json:"DocumentExpiry"`
	DocumentCountry string `json:"DocumentCountry"`
	Weight          int    `json:"Weight"`
	BahamasStay     string `json:"BahamasStay"`
	AddressStreet   string `json:"AddressStreet"`
	AddressCity     string `json:"AddressCity"`
	AddressState    string `json:"AddressState"`
	AddressZIPCode  string `json:"AddressZIPCode"`
}

// OutboundBooking is the merged MakerSuite CreateBooking payload. Built
// fresh per webhook, handed to the submitter and discarded.
type OutboundBooking struct {
	DepartFlights      []int64     `json:"DepartFlights"`
	ReturnFlights      []int64     `json:"ReturnFlights"`
	Passengers         []Passenger `json:"Passengers"`
	IsDepartFirstClass bool        `json:"IsDepartFirstClass"`
	IsReturnFirstClass bool        `json:"IsReturnFirstClass"`
}

// DeliveryRecord is one row of the webhook delivery audit log.
type DeliveryRecord struct {
	RequestID      string
	OrderDisplayID string
	Outcome        string
	Error          string
	ReceivedAt     time.Time
}
