package api

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// maxSnippetBytes bounds the body excerpt carried by DecodeError.
const maxSnippetBytes = 120

// ErrUnsuccessfulEnvelope indicates an envelope with success=false or without data
var ErrUnsuccessfulEnvelope = errors.New("unsuccessful response envelope")

// TransportError means the request could not be sent or its body could not be read
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError represents a non-2xx response from the backend
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// DecodeError covers invalid JSON, unsuccessful envelopes and wrongly shaped data.
type DecodeError struct {
	Snippet string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v (body: %q)", e.Err, e.Snippet)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err carries an upstream 404.
func IsNotFound(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

func newDecodeError(body []byte, err error) *DecodeError {
	return &DecodeError{Snippet: snippet(body), Err: err}
}

func snippet(body []byte) string {
	if len(body) <= maxSnippetBytes {
		return string(body)
	}
	cut := maxSnippetBytes
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut])
}
