package makersuite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/makersair/fhbridge/config"
	"github.com/makersair/fhbridge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func outbound() *domain.OutboundBooking {
	return &domain.OutboundBooking{
		DepartFlights: []int64{2001},
		ReturnFlights: []int64{},
		Passengers: []domain.Passenger{
			{FirstName: "Eric", LastName: "Mollergren", DocumentType: "P", BahamasStay: "BSStay"},
		},
	}
}

func TestCreateBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("ApiKey"))

		var payload domain.OutboundBooking
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []int64{2001}, payload.DepartFlights)
		assert.Len(t, payload.Passengers, 1)

		w.Write([]byte(`{"BookingId": 77, "Status": "Confirmed"}`))
	}))
	defer server.Close()

	client := NewClient(config.MakerSuiteConfig{URL: server.URL, APIKey: "test-key", TimeoutSeconds: 5})
	resp, err := client.CreateBooking(context.Background(), outbound())

	assert.NoError(t, err)
	assert.JSONEq(t, `{"BookingId": 77, "Status": "Confirmed"}`, string(resp))
}

func TestCreateBooking_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid passenger data", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(config.MakerSuiteConfig{URL: server.URL, APIKey: "test-key", TimeoutSeconds: 5})
	_, err := client.CreateBooking(context.Background(), outbound())

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid passenger data")
}

func TestCreateBooking_Unreachable(t *testing.T) {
	client := NewClient(config.MakerSuiteConfig{URL: "http://127.0.0.1:1", APIKey: "k", TimeoutSeconds: 1})
	_, err := client.CreateBooking(context.Background(), outbound())

	assert.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
