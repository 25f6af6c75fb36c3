// Package airmax is the client for the Airmax one-way flight search API.
package airmax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/makersair/fhbridge/config"
	"github.com/makersair/fhbridge/internal/domain"
)

// SearchRequest is the GetOneWayFlightsForDateRange payload.
type SearchRequest struct {
	DepartDateStart    string `json:"DepartDateStart"`
	DepartDateEnd      string `json:"DepartDateEnd"`
	DepartOrigin       string `json:"DepartOrigin"`
	DepartDestination  string `json:"DepartDestination"`
	AdultCount         int    `json:"AdultCount"`
	InfantCount        int    `json:"InfantCount"`
	IsDepartFirstClass bool   `json:"IsDepartFirstClass"`
}

type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewClient(cfg config.AirmaxConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:    cfg.BaseURL + cfg.SearchEndpoint,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// SearchFlights returns the candidate flights for one route and date, in
// the order the API produced them. Any transport or decode failure is
// returned as an error; callers treat every error as "fall back to the
// legacy identifier", never as fatal.
func (c *Client) SearchFlights(ctx context.Context, req SearchRequest) ([]domain.FlightCandidate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("ApiKey", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("flight search request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read flight search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight search returned status %d: %s", resp.StatusCode, string(data))
	}

	return decodeCandidates(data)
}

// flightRow tolerates the API's shape drift: the identifier has appeared
// under three names and FlightNumber is sometimes a bare number.
type flightRow struct {
	FlightIdentifier int64           `json:"FlightIdentifier"`
	Identifier       int64           `json:"Identifier"`
	ID               int64           `json:"Id"`
	Origin           string          `json:"Origin"`
	Destination      string          `json:"Destination"`
	FlightDate       string          `json:"FlightDate"`
	FlightNumber     json.RawMessage `json:"FlightNumber"`
	IsFirstClass     bool            `json:"IsFirstClass"`
}

type searchEnvelope struct {
	Flights    []flightRow `json:"flights"`
	FlightList []flightRow `json:"FlightList"`
	Data       []flightRow `json:"data"`
}

// decodeCandidates accepts either a bare JSON array of flights or an object
// wrapping the array under "flights", "FlightList" or "data".
func decodeCandidates(data []byte) ([]domain.FlightCandidate, error) {
	var rows []flightRow
	if err := json.Unmarshal(data, &rows); err != nil {
		var envelope searchEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("decode flight search response: %w", err)
		}
		switch {
		case envelope.Flights != nil:
			rows = envelope.Flights
		case envelope.FlightList != nil:
			rows = envelope.FlightList
		default:
			rows = envelope.Data
		}
	}

	candidates := make([]domain.FlightCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, domain.FlightCandidate{
			Identifier:   row.identifier(),
			Origin:       row.Origin,
			Destination:  row.Destination,
			FlightDate:   row.FlightDate,
			FlightNumber: rawToString(row.FlightNumber),
			FirstClass:   row.IsFirstClass,
		})
	}
	return candidates, nil
}

func (r flightRow) identifier() int64 {
	if r.FlightIdentifier != 0 {
		return r.FlightIdentifier
	}
	if r.Identifier != 0 {
		return r.Identifier
	}
	return r.ID
}

func rawToString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	return strings.Trim(s, `"`)
}
