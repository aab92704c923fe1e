// Package common defines shared constants and sentinel errors used across
// the Orator client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNeedLogin is returned by the sync-cache services when a remote call
	// fails with an auth-class error. Authentication problems are never
	// masked by the offline fallback.
	ErrNeedLogin = errors.New("login required")

	// Token lifecycle errors.
	ErrTokenMalformed = errors.New("malformed token")
	ErrRefreshExpired = errors.New("session expired, refresh rejected")
	ErrRefreshTimeout = errors.New("token refresh timed out")
	ErrNoStoredToken  = errors.New("no stored token")

	// Analysis job errors.
	ErrAnalysisTimeout = errors.New("analysis polling timed out")
	ErrAnalysisFailed  = errors.New("analysis failed")
)
