// Package makersuite is the client for the MakerSuite CreateBooking API.
package makersuite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/makersair/fhbridge/config"
	"github.com/makersair/fhbridge/internal/domain"
)

// APIError is a rejection from the MakerSuite API. For round trips it
// arrives after the stored leg has been consumed, so the caller must
// resubmit both legs to retry.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("makersuite returned status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewClient(cfg config.MakerSuiteConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// CreateBooking submits the merged booking and returns the raw API
// response. Submission is attempted once; retries are the caller's
// operational responsibility.
func (c *Client) CreateBooking(ctx context.Context, booking *domain.OutboundBooking) (json.RawMessage, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, fmt.Errorf("marshal booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("ApiKey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create booking request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read create booking response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return json.RawMessage(data), nil
}
