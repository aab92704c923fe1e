package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orator-app/orator-cli/internal/common"
)

// Claims are the access-token claims the client cares about. The token is
// never cryptographically verified here; verification is the server's job,
// the client only inspects expiry and identity.
type Claims struct {
	Subject   string
	Name      string
	ExpiresAt int64 // epoch seconds; valid only when HasExpiry

	HasExpiry bool
}

// DecodeClaims parses a JWT-shaped token without checking the signature.
// Returns common.ErrTokenMalformed for anything that is not three
// dot-separated segments with JSON claims.
func DecodeClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, common.ErrTokenMalformed
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, common.ErrTokenMalformed
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, common.ErrTokenMalformed
	}

	c := &Claims{}
	if sub, ok := mc["sub"].(string); ok {
		c.Subject = sub
	}
	if name, ok := mc["name"].(string); ok {
		c.Name = name
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = int64(exp)
		c.HasExpiry = true
	}
	return c, nil
}

// usableAt reports whether the claims permit sending the token at the given
// moment. Fails closed: a token without an expiry claim is unusable, not
// "usable forever".
func (c *Claims) usableAt(now time.Time) bool {
	return c.HasExpiry && c.ExpiresAt > now.Unix()
}

// Subject extracts the sub claim, "" when the token cannot be decoded. Used
// as a fallback user identifier when no richer profile is cached.
func Subject(token string) string {
	c, err := DecodeClaims(token)
	if err != nil {
		return ""
	}
	return c.Subject
}
