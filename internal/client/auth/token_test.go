package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/orator-app/orator-cli/internal/common"
)

// signToken builds a real HS256 JWT; the signature is irrelevant to the
// client-side decode, which never verifies it.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestDecodeClaims_WellFormed(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "user@x.com",
		"name": "Sam",
		"exp":  float64(1900000000),
	})

	c, err := DecodeClaims(token)
	require.NoError(t, err)
	require.Equal(t, "user@x.com", c.Subject)
	require.Equal(t, "Sam", c.Name)
	require.True(t, c.HasExpiry)
	require.Equal(t, int64(1900000000), c.ExpiresAt)
}

func TestDecodeClaims_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "justonesegment"},
		{"two segments", "a.b"},
		{"four segments", "a.b.c.d"},
		{"claims not base64", "eyJhbGciOiJIUzI1NiJ9.???.sig"},
		{"claims not json", "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClaims(tt.token)
			require.ErrorIs(t, err, common.ErrTokenMalformed)
		})
	}
}

func TestSubject(t *testing.T) {
	require.Equal(t, "user@x.com", Subject(signToken(t, jwt.MapClaims{"sub": "user@x.com"})))
	require.Equal(t, "", Subject("not.a.token"))
	require.Equal(t, "", Subject(""))
	// sub absent
	require.Equal(t, "", Subject(signToken(t, jwt.MapClaims{"exp": float64(1900000000)})))
}

func TestIsUsable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(nil, nil, nil)
	m.now = func() time.Time { return now }

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "valid future expiry",
			token: signToken(t, jwt.MapClaims{"sub": "u@x.com", "exp": float64(now.Unix() + 60)}),
			want:  true,
		},
		{
			name:  "expired",
			token: signToken(t, jwt.MapClaims{"sub": "u@x.com", "exp": float64(now.Unix() - 60)}),
			want:  false,
		},
		{
			name:  "expiry exactly now",
			token: signToken(t, jwt.MapClaims{"sub": "u@x.com", "exp": float64(now.Unix())}),
			want:  false,
		},
		{
			name: "missing expiry is not usable forever",
			// spec scenario: well-formed token, sub present, no exp claim
			token: signToken(t, jwt.MapClaims{"sub": "user@x.com"}),
			want:  false,
		},
		{name: "empty", token: "", want: false},
		{name: "two segments", token: "a.b", want: false},
		{name: "four segments", token: "a.b.c.d", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.IsUsable(tt.token))
		})
	}
}
