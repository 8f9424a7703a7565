package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Client issues JSON POST requests against a fixed base URL.
type Client struct {
	base            *url.URL
	http            *http.Client
	userAgent       string
	requestIDHeader string
	maxResponseSize int64
}

// Response is a settled HTTP exchange. Any status code, including 4xx and
// 5xx, is a Response; callers classify it themselves.
type Response struct {
	StatusCode int
	Body       []byte
}

// Success reports a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the body into v. An empty body is an error.
func (r *Response) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("wire: empty response body (status %d)", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("wire: decode response body: %w", err)
	}
	return nil
}

// Message extracts a top-level "message" or "error" string from a JSON
// body, for surfacing server-supplied failure text. Returns "" when the
// body carries neither.
func (r *Response) Message() string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// NewClient builds a client for the given absolute base URL.
func NewClient(baseURL string, httpClient *http.Client, userAgent, requestIDHeader string, maxResponseSize int64) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("wire: parse base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if maxResponseSize <= 0 {
		maxResponseSize = 1 << 20
	}
	return &Client{
		base:            base,
		http:            httpClient,
		userAgent:       userAgent,
		requestIDHeader: requestIDHeader,
		maxResponseSize: maxResponseSize,
	}, nil
}

// Post issues one JSON POST to base+path. body may be nil; headers are set
// verbatim on top of the fixed ones. The returned error is non-nil only
// when no HTTP response was received.
func (c *Client) Post(ctx context.Context, path string, body any, headers map[string]string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("wire: encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("wire: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wire: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("wire: read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
