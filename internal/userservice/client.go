// Package userservice talks to the external create-user HTTP endpoint.
package userservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// maxResponseBytes caps how much of a reply body is read.
const maxResponseBytes = 1 << 20

// Response is the decoded reply of a create-user call.
type Response struct {
	Title     string
	RequestID string
	Raw       []byte
}

// Client posts create-user requests to a fixed endpoint.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	log      *slog.Logger
	newID    func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{endpoint: endpoint}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Create posts body as JSON and returns the reply title.
// Non-2xx replies, undecodable bodies and transport failures are errors.
func (c *Client) Create(ctx context.Context, body any) (Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("userservice: encoding request: %w", err)
	}

	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqID := c.newID()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("userservice: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log := c.log.With("request_id", reqID, "endpoint", c.endpoint)
	start := time.Now()
	log.Debug("create user request")

	resp, err := c.http.Do(req)
	if err != nil {
		// Only our own bound is a TimeoutError; a parent deadline stays a RequestError.
		if c.timeout > 0 && parent.Err() == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Response{}, &TimeoutError{RequestID: reqID, Duration: c.timeout}
		}
		return Response{}, &RequestError{RequestID: reqID, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return Response{}, &RequestError{RequestID: reqID, Err: fmt.Errorf("reading body: %w", err)}
	}
	if len(raw) > maxResponseBytes {
		return Response{}, fmt.Errorf("%w: over %d bytes (request %s)", ErrResponseTooLarge, maxResponseBytes, reqID)
	}
	log.Debug("create user response", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &StatusError{RequestID: reqID, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if !gjson.ValidBytes(raw) {
		return Response{}, fmt.Errorf("%w (request %s)", ErrMalformedResponse, reqID)
	}

	return Response{
		Title:     gjson.GetBytes(raw, "title").String(),
		RequestID: reqID,
		Raw:       raw,
	}, nil
}
