package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dshills/userform/internal/record"
)

// Path is the departments resource under the store base URL.
const Path = "/departments.json"

const maxBodyBytes = 10 * 1024 * 1024 // 10 MiB

// ErrFetch wraps every failure to obtain the department list.
var ErrFetch = errors.New("fetching departments")

// Fetcher lists the selectable departments.
type Fetcher interface {
	Fetch(ctx context.Context) ([]record.Department, error)
}

// Client reads departments from the remote store.
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

// URL returns the endpoint the client reads from.
func (c *Client) URL() string { return c.url }

// Fetch issues a single GET and returns the departments in the order the
// store sent them. Null entries, which the store emits for sparse arrays,
// are dropped.
func (c *Client) Fetch(ctx context.Context) ([]record.Department, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating HTTP request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: HTTP request failed: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetch, resp.StatusCode)
	}

	return Parse(body)
}

// Parse decodes a departments body. A JSON null body yields an empty list.
func Parse(body []byte) ([]record.Department, error) {
	var raw []*record.Department
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing response JSON: %w", ErrFetch, err)
	}
	out := make([]record.Department, 0, len(raw))
	for _, d := range raw {
		if d == nil {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}
