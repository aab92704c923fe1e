package api

import (
	"context"
	"net/http"
	"strings"
)

// TokenSource supplies the bearer token for outgoing requests and performs
// the single-flight refresh when the server rejects one. The auth manager
// implements it; the interface lives here so the transport does not depend
// on the manager package.
type TokenSource interface {
	// Token returns the currently stored token verbatim, "" when unset.
	Token(ctx context.Context) (string, error)
	// Refresh obtains and stores a new token, collapsing concurrent callers
	// onto one network call.
	Refresh(ctx context.Context) (string, error)
}

// authTransport injects the bearer token at client-construction time and
// replays a request exactly once after a 401, with a freshly refreshed
// token. Requests to credential and session endpoints pass through
// untouched, which also keeps the refresh call itself out of the retry path.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func newAuthTransport(base http.RoundTripper, tokens TokenSource) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, tokens: tokens}
}

// skipAuth marks endpoints that never carry (or refresh) a bearer token.
func skipAuth(req *http.Request) bool {
	p := req.URL.Path
	return strings.HasPrefix(p, "/auth/") || strings.HasPrefix(p, "/api/oauth2/")
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil || skipAuth(req) {
		return t.base.RoundTrip(req)
	}

	token, err := t.tokens.Token(req.Context())
	if err == nil && token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// A request with a non-replayable body cannot be retried.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	newToken, rerr := t.tokens.Refresh(req.Context())
	if rerr != nil {
		// Refresh failed: surface the original 401 untouched.
		return resp, nil
	}
	resp.Body.Close()

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, berr
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+newToken)

	return t.base.RoundTrip(retry)
}
