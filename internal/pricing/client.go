// Package pricing talks to the external loan pricing API.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kampanyaradar/loan-offer-service/internal/model"
)

const (
	defaultTimeout   = 10 * time.Second
	calculationsPath = "loans/calculations"
	apiKeyHeader     = "X-Api-Key"
	maxErrorBody     = 512
)

// ErrEmptyResponse is returned when the API answers 2xx with no body.
var ErrEmptyResponse = errors.New("pricing: empty response")

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pricing: status %d: %s", e.StatusCode, e.Body)
}

// Requester issues a JSON request against the pricing API and returns the raw body.
type Requester interface {
	Request(ctx context.Context, method, path string, body any, headers map[string]string) ([]byte, error)
}

// HTTPRequester is the net/http Requester. One instance is shared per process.
type HTTPRequester struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPRequester builds a Requester rooted at baseURL.
func NewHTTPRequester(baseURL, apiKey string, timeout time.Duration) *HTTPRequester {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPRequester{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Request implements Requester.
func (r *HTTPRequester) Request(ctx context.Context, method, path string, body any, headers map[string]string) ([]byte, error) {
	endpoint, err := url.JoinPath(r.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("pricing: build url: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("pricing: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("pricing: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.apiKey != "" {
		req.Header.Set(apiKeyHeader, r.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricing: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pricing: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}
	return data, nil
}

// Client prices loans through a Requester.
type Client struct {
	requester Requester
}

// NewClient wraps a Requester.
func NewClient(r Requester) *Client {
	return &Client{requester: r}
}

// Calculate issues POST /loans/calculations and decodes the envelope.
// The raw body is returned alongside so callers can cache it verbatim.
func (c *Client) Calculate(ctx context.Context, req model.CalculationsRequest) (*model.CalculationsResponse, []byte, error) {
	raw, err := c.requester.Request(ctx, http.MethodPost, calculationsPath, req, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := Decode(raw)
	if err != nil {
		return nil, nil, err
	}
	return resp, raw, nil
}

// Decode parses a raw pricing response body.
func Decode(raw []byte) (*model.CalculationsResponse, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyResponse
	}
	var resp model.CalculationsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("pricing: decode response: %w", err)
	}
	return &resp, nil
}
