package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cryptoledger/internal/core/domain"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSubscriber POSTs each event as JSON to a webhook URL. Delivery is
// at-least-once; receivers must tolerate duplicates.
type HTTPSubscriber struct {
	url        string
	httpClient HTTPClient
}

// NewHTTPSubscriber creates a webhook subscriber for one URL.
func NewHTTPSubscriber(url string, timeout time.Duration) *HTTPSubscriber {
	return &HTTPSubscriber{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewHTTPSubscriberWithClient injects the HTTP client, used by tests.
func NewHTTPSubscriberWithClient(url string, client HTTPClient) *HTTPSubscriber {
	return &HTTPSubscriber{url: url, httpClient: client}
}

func (s *HTTPSubscriber) Name() string {
	return "http:" + s.url
}

// Receive POSTs the event. Any non-2xx response is a delivery failure.
func (s *HTTPSubscriber) Receive(ctx context.Context, e domain.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting event to %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s returned %d", s.url, resp.StatusCode)
	}
	return nil
}
