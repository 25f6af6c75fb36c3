package airmax

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/makersair/fhbridge/config"
	"github.com/stretchr/testify/assert"
)

func searchRequest() SearchRequest {
	return SearchRequest{
		DepartDateStart:   "2025-10-28",
		DepartDateEnd:     "2025-10-28",
		DepartOrigin:      "FXE",
		DepartDestination: "COX",
		AdultCount:        1,
	}
}

func newTestClient(serverURL string) *Client {
	return NewClient(config.AirmaxConfig{
		BaseURL:        serverURL,
		SearchEndpoint: "/api/FlightSearch/GetOneWayFlightsForDateRange",
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})
}

func TestSearchFlights_BareList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/FlightSearch/GetOneWayFlightsForDateRange", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("ApiKey"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "FXE", req.DepartOrigin)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"FlightIdentifier": 2001, "FlightDate": "2025-10-28T08:00:00-04:00", "FlightNumber": "516", "Origin": "FXE", "Destination": "COX"},
			{"FlightIdentifier": 2002, "FlightDate": "2025-10-28T12:00:00-04:00", "FlightNumber": 518, "Origin": "FXE", "Destination": "COX"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	candidates, err := client.SearchFlights(context.Background(), searchRequest())

	assert.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, int64(2001), candidates[0].Identifier)
	assert.Equal(t, "516", candidates[0].FlightNumber)
	// Numeric flight numbers decode to the same string form.
	assert.Equal(t, "518", candidates[1].FlightNumber)
}

func TestSearchFlights_WrappedList(t *testing.T) {
	for _, key := range []string{"flights", "FlightList", "data"} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"` + key + `": [{"Identifier": 42, "FlightDate": "2025-10-28T08:00:00-04:00", "FlightNumber": "516"}]}`))
		}))

		client := newTestClient(server.URL)
		candidates, err := client.SearchFlights(context.Background(), searchRequest())

		assert.NoError(t, err, key)
		assert.Len(t, candidates, 1, key)
		assert.Equal(t, int64(42), candidates[0].Identifier, key)
		server.Close()
	}
}

func TestSearchFlights_IdentifierFieldFallbacks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"FlightIdentifier": 1, "FlightDate": "2025-10-28T08:00:00-04:00", "FlightNumber": "1"},
			{"Identifier": 2, "FlightDate": "2025-10-28T08:00:00-04:00", "FlightNumber": "2"},
			{"Id": 3, "FlightDate": "2025-10-28T08:00:00-04:00", "FlightNumber": "3"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	candidates, err := client.SearchFlights(context.Background(), searchRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(1), candidates[0].Identifier)
	assert.Equal(t, int64(2), candidates[1].Identifier)
	assert.Equal(t, int64(3), candidates[2].Identifier)
}

func TestSearchFlights_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	candidates, err := client.SearchFlights(context.Background(), searchRequest())

	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSearchFlights_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchFlights(context.Background(), searchRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestSearchFlights_Unreachable(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.SearchFlights(context.Background(), searchRequest())
	assert.Error(t, err)
}
