package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferramentas/toolhub/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "2f0c72f5-9a9e-4a1c-9a57-0a9f1a9d8c11",
		Username: "alice",
		Role:     domain.RoleUser,
	}
}

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager("unit-secret", 15*time.Minute)

	tokenStr, expiresAt, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "2f0c72f5-9a9e-4a1c-9a57-0a9f1a9d8c11", claims.UserID)
	assert.Equal(t, []string{"USER"}, claims.Roles)
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute)
	verifier := NewTokenManager("secret-b", time.Minute)

	tokenStr, _, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseTokenTampered(t *testing.T) {
	tm := NewTokenManager("unit-secret", time.Minute)

	tokenStr, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	tampered := tokenStr[:len(tokenStr)-2] + "xx"
	_, err = tm.ParseToken(tampered)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseTokenMalformed(t *testing.T) {
	tm := NewTokenManager("unit-secret", time.Minute)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := tm.ParseToken(input)
		assert.ErrorIs(t, err, ErrMalformedToken, "input %q", input)
	}
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("unit-secret", time.Minute)

	claims := &Claims{
		UserID: "u1",
		Roles:  []string{"USER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	tm := NewTokenManager("unit-secret", time.Minute)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(tokenStr)
	assert.Error(t, err)
}
