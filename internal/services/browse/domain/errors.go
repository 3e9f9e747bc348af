package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	perr "parliametrics/internal/platform/errors"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer
// fetch had already been applied; the stale response is dropped
var ErrSuperseded = errors.New("browse: response superseded by a newer request")

// NetworkError means no response was received
type NetworkError struct {
	Op  string
	URL string
	Err error
}

// Error interface
// a *url.Error already names the url, so only its cause is printed
func (e *NetworkError) Error() string {
	cause := e.Err
	var ue *url.Error
	if errors.As(cause, &ue) && ue.Err != nil {
		cause = ue.Err
	}
	return fmt.Sprintf("%s: network error calling %s: %v", e.Op, e.URL, cause)
}

// Unwrap interface
func (e *NetworkError) Unwrap() error { return e.Err }

// Code maps to the project error codes
func (e *NetworkError) Code() perr.ErrorCode {
	var to interface{ Timeout() bool }
	if errors.Is(e.Err, context.DeadlineExceeded) || (errors.As(e.Err, &to) && to.Timeout()) {
		return perr.ErrorCodeTimeout
	}
	return perr.ErrorCodeUnavailable
}

// FetchError means a response was received but it was not usable
// Status is zero when the body failed to decode after a 200
type FetchError struct {
	Op     string
	URL    string
	Status int
	Body   string
	Err    error
}

// Error interface
func (e *FetchError) Error() string {
	if e.Status != 0 && e.Status != http.StatusOK {
		return fmt.Sprintf("%s: %s returned status %d", e.Op, e.URL, e.Status)
	}
	return fmt.Sprintf("%s: unusable response from %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap interface
func (e *FetchError) Unwrap() error { return e.Err }

// HTTPStatus interface
func (e *FetchError) HTTPStatus() int { return e.Status }

// Code maps to the project error codes
func (e *FetchError) Code() perr.ErrorCode {
	switch {
	case e.Status == http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return perr.ErrorCodeInvalidArgument
	case e.Status == http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case e.Status >= 500:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUnknown
	}
}

// IsNetworkError reports whether err wraps a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsFetchError reports whether err wraps a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
