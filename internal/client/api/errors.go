package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind is the closed set of transport failure classes. Every error
// leaving this package is normalized into one of these immediately after the
// transport call, so downstream code matches on a known shape instead of
// probing response fields.
type ErrorKind int

const (
	// KindTimeout: the call exceeded its per-call budget. The request may or
	// may not have reached the server.
	KindTimeout ErrorKind = iota + 1
	// KindNetworkUnavailable: the transport produced no HTTP response at all.
	KindNetworkUnavailable
	// KindHTTPStatus: the server answered with a non-2xx status.
	KindHTTPStatus
	// KindMalformed: a 2xx response whose body could not be decoded.
	KindMalformed
)

// Error is the normalized transport error. Status and Message are populated
// for KindHTTPStatus; Message holds the server-supplied message when the
// body carried one.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "request timed out"
	case KindNetworkUnavailable:
		return "server unreachable"
	case KindHTTPStatus:
		if e.Message != "" {
			return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("server returned %d", e.Status)
	case KindMalformed:
		return "malformed server response"
	}
	return "unknown client error"
}

// normalizeTransportError maps an error from http.Client.Do into the closed
// Error type. ctx distinguishes caller cancellation from a deadline.
func normalizeTransportError(err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Kind: KindTimeout}
	}
	return &Error{Kind: KindNetworkUnavailable}
}

// errorMessage is the conventional error body shape of the backend.
type errorMessage struct {
	Message string `json:"message"`
}

func newStatusError(status int, body []byte) *Error {
	var em errorMessage
	_ = json.Unmarshal(body, &em)
	return &Error{Kind: KindHTTPStatus, Status: status, Message: em.Message}
}

// IsConnectivity reports whether err means the server could not be reached:
// the offline-fallback trigger. Timeouts are not connectivity failures; a
// timed-out request may still have been processed server-side.
func IsConnectivity(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNetworkUnavailable
}

// IsTimeout reports whether err is a per-call budget expiry.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTimeout
}

// IsAuth reports whether err is an HTTP 401: the caller must re-authenticate.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindHTTPStatus && e.Status == http.StatusUnauthorized
}

// IsSessionInvalid classifies refresh failures that irrecoverably end the
// session: explicit 401/403, an unexpected redirect, or no response at all.
func IsSessionInvalid(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindNetworkUnavailable:
		return true
	case KindHTTPStatus:
		return e.Status == http.StatusUnauthorized ||
			e.Status == http.StatusForbidden ||
			(e.Status >= 300 && e.Status < 400)
	}
	return false
}

// IsServerError reports a 5xx status.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindHTTPStatus && e.Status >= 500
}
