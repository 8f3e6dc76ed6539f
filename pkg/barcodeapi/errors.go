package barcodeapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStatus matches every *StatusError.
	ErrStatus = errors.New("barcodeapi: unexpected http status")
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("barcodeapi: invalid json response")
	// ErrInvalidInput is returned before any request is sent when a byte
	// source cannot be resolved.
	ErrInvalidInput = errors.New("barcodeapi: invalid input")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: http response status %d", e.Method, e.URL, e.StatusCode)
	if snippet := bodySnippet(e.Body); snippet != "" {
		msg += ": " + snippet
	}
	return msg
}

// Is lets errors.Is(err, ErrStatus) match.
func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// DecodeError reports a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode json response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
