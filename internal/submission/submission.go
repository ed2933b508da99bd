package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/userform/internal/record"
)

// Path is the users resource under the store base URL.
const Path = "/users.json"

const maxBodyBytes = 10 * 1024 * 1024 // 10 MiB

// ErrRejected wraps every outcome other than acceptance.
var ErrRejected = errors.New("submission rejected")

// Outcome is the result of one submission attempt.
type Outcome struct {
	Accepted  bool
	Name      string // identifier the store assigned, set when Accepted
	AttemptID string // X-Request-ID sent with the attempt
}

// Submitter posts a completed record.
type Submitter interface {
	Submit(ctx context.Context, r record.FormRecord) (Outcome, error)
}

// Client writes records to the remote store.
type Client struct {
	url  string
	http *http.Client
}

// New returns a Client for the store rooted at baseURL. A nil httpClient
// uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:  strings.TrimRight(baseURL, "/") + Path,
		http: httpClient,
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

type createResponse struct {
	Name string `json:"name"`
}

// Submit issues a single POST. The record counts as accepted only when the
// store answers 2xx with a non-empty "name"; anything else returns an error
// wrapping ErrRejected alongside an Outcome that still carries the attempt ID.
func (c *Client) Submit(ctx context.Context, r record.FormRecord) (Outcome, error) {
	out := Outcome{AttemptID: uuid.NewString()}

	bodyBytes, err := json.Marshal(r.Payload())
	if err != nil {
		return out, fmt.Errorf("%w: marshaling request: %w", ErrRejected, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return out, fmt.Errorf("%w: creating HTTP request: %w", ErrRejected, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", out.AttemptID)

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: HTTP request failed: %w", ErrRejected, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return out, fmt.Errorf("%w: reading response body: %w", ErrRejected, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("%w: HTTP %d: %s", ErrRejected, resp.StatusCode, truncate(string(respBytes), 200))
	}

	var cr createResponse
	if err := json.Unmarshal(respBytes, &cr); err != nil {
		return out, fmt.Errorf("%w: parsing response JSON (body: %s): %w", ErrRejected, truncate(string(respBytes), 200), err)
	}
	if cr.Name == "" {
		return out, fmt.Errorf("%w: response carries no identifier", ErrRejected)
	}

	out.Accepted = true
	out.Name = cr.Name
	return out, nil
}

// truncate limits a string to maxLen runes, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
