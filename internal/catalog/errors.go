package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Sentinels for errors.Is checks on catalog failures.
var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
	ErrUnavailable = errors.New("catalog unavailable")
	ErrTimeout     = errors.New("request timed out")
)

// APIError is a non-2xx response. Its message is what the user sees: the
// server's {error} text when present, otherwise "HTTP <status>".
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrUnavailable
	}
	return false
}

// TimeoutError is returned when a request exceeds the client timeout.
type TimeoutError struct {
	Endpoint string
	After    time.Duration
	Err      error
}

func (e *TimeoutError) Error() string {
	if e.After > 0 {
		return fmt.Sprintf("request timed out after %s", e.After)
	}
	return "request timed out"
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// decodeAPIError reads the {error} envelope; an absent or invalid body is tolerated.
func decodeAPIError(endpoint string, res *http.Response) error {
	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	_ = json.Unmarshal(data, &body)
	return &APIError{StatusCode: res.StatusCode, Message: body.Error, Endpoint: endpoint}
}

// classifyTransportErr turns deadline failures into TimeoutError and passes
// everything else through.
func classifyTransportErr(endpoint string, timeout time.Duration, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &TimeoutError{Endpoint: endpoint, After: timeout, Err: err}
	}
	return err
}

// IsNotFound reports whether err is a 404 from the catalog.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsTimeout reports whether err is a request timeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }
