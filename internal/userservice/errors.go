package userservice

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedResponse indicates the reply body was not valid JSON.
var ErrMalformedResponse = errors.New("userservice: malformed response")

// ErrResponseTooLarge indicates the reply body exceeded the read limit.
var ErrResponseTooLarge = errors.New("userservice: response too large")

// StatusError indicates the endpoint replied with a non-2xx status.
type StatusError struct {
	RequestID  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("userservice: request %s: unexpected status %d", e.RequestID, e.StatusCode)
}

// RequestError wraps a failure to send a request or read its reply.
type RequestError struct {
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("userservice: request %s: %s", e.RequestID, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates a request exceeded the configured timeout.
type TimeoutError struct {
	RequestID string
	Duration  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("userservice: request %s: timed out after %s", e.RequestID, e.Duration)
}

func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}
