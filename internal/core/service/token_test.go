package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/user-management-api/internal/core/domain"
)

func signedWithWindow(t *testing.T, secret string, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := TokenClaims{
		UserID: "64a1f2e9b3c4d5e6f7a8b9c0",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	user := &domain.User{ID: "64a1f2e9b3c4d5e6f7a8b9c0", Role: domain.RoleAdmin}

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(&domain.User{ID: "x", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "token=%q", raw)
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	now := time.Now()

	// issued an hour ago, one minute of validity left
	stillValid := signedWithWindow(t, "secret", now.Add(-59*time.Minute), now.Add(time.Minute))
	_, err := svc.Verify(stillValid)
	assert.NoError(t, err)

	// expired a minute ago
	expired := signedWithWindow(t, "secret", now.Add(-61*time.Minute), now.Add(-time.Minute))
	_, err = svc.Verify(expired)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// alg=none tokens must never verify
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   "x",
		"role": domain.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
