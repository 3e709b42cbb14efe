package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/pigro"
)

// Kind classifies fetch failures.
type Kind int

const (
	// Transport failures: the request could not be sent or the response not read.
	Transport Kind = iota
	// Protocol failures: the server answered with a non-2xx status.
	Protocol
	// Payload failures: the body is not JSON or has not the expected shape.
	Payload
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Protocol:
		return "protocol"
	case Payload:
		return "payload"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FetchError is returned by the Client methods.
type FetchError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failure on GET %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// JSON paths that must be present in each payload.
var (
	seriesPaths   = []string{"$.labels", "$.values"}
	combinedPaths = []string{"$.base_date", "$.points", "$.freq", "$.weights", "$.labels", "$.portfolio", "$.ls80", "$.gold", "$.btc"}
)

// Client fetches dashboard payloads from a backend.
type Client struct {
	BaseURL string       // e.g. http://localhost:5000
	HTTP    *http.Client // nil means http.DefaultClient
}

// Data fetches the single series of /api/data.
//
// The status code is not checked: an error page fails as a Payload error.
func (c *Client) Data(ctx context.Context) (pigro.SeriesResponse, error) {
	var r pigro.SeriesResponse
	addr := c.url("/api/data", nil)
	if err := c.get(ctx, addr, false, seriesPaths, &r); err != nil {
		return r, err
	}
	if err := r.Validate(); err != nil {
		return r, &FetchError{Kind: Payload, URL: addr, Err: err}
	}
	return r, nil
}

// Combined fetches the portfolio series of /api/combined for freq.
func (c *Client) Combined(ctx context.Context, freq string) (pigro.CombinedResponse, error) {
	var r pigro.CombinedResponse
	addr := c.url("/api/combined", url.Values{"freq": {freq}})
	if err := c.get(ctx, addr, true, combinedPaths, &r); err != nil {
		return r, err
	}
	if err := r.Validate(); err != nil {
		return r, &FetchError{Kind: Payload, URL: addr, Err: err}
	}
	return r, nil
}

func (c *Client) url(path string, query url.Values) string {
	addr := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	return addr
}

// get performs an HTTP GET on addr, checks that the JSON body has every
// path in required, and unmarshals it into data.
func (c *Client) get(ctx context.Context, addr string, checkStatus bool, required []string, data any) error {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return &FetchError{Kind: Transport, URL: addr, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return &FetchError{Kind: Transport, URL: addr, Err: err}
	}
	defer resp.Body.Close()
	if checkStatus && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return &FetchError{Kind: Protocol, URL: addr, Err: fmt.Errorf("HTTP %s", resp.Status)}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return &FetchError{Kind: Transport, URL: addr, Err: err}
	}

	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		return &FetchError{Kind: Payload, URL: addr, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	for _, path := range required {
		if _, err := jsonpath.Get(path, jobj); err != nil {
			return &FetchError{Kind: Payload, URL: addr, Err: fmt.Errorf("missing %s: %w", path, err)}
		}
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return &FetchError{Kind: Payload, URL: addr, Err: err}
	}
	return nil
}
