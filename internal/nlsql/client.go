// Package nlsql talks to the natural-language-to-SQL service that answers
// free-form questions about the invoice data.
package nlsql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 20 * time.Second

var (
	// ErrUpstreamUnavailable means the service could not be reached or did
	// not answer in time.
	ErrUpstreamUnavailable = errors.New("nl-to-sql service unavailable")
	// ErrUpstream means the service answered with an error.
	ErrUpstream   = errors.New("nl-to-sql service error")
	ErrEmptyQuery = errors.New("query is empty")
)

// Answer is the service's reply, forwarded untouched.
type Answer struct {
	Query  string           `json:"query"`
	SQL    string           `json:"sql"`
	Result []map[string]any `json:"result"`
}

type reply struct {
	Answer
	Error string `json:"error"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL. A non-positive
// timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Ask sends one question and returns the generated SQL with its result rows.
func (c *Client) Ask(ctx context.Context, query string) (*Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-sql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
	}

	var r reply
	if err := json.Unmarshal(raw, &r); err != nil {
		if resp.StatusCode/100 != 2 {
			return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		}

		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	if r.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, r.Error)
	}

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	return &r.Answer, nil
}
