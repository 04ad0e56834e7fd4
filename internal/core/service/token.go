package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/user-management-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// TokenClaims is the payload carried by every issued token.
type TokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies compact bearer tokens. The signing secret
// is injected at construction and immutable afterwards. Tokens are stateless:
// there is no revocation list, a token stays valid until its expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured validity window.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given user carrying its id and role.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token. Bad signature, malformed
// structure, and past expiry all yield ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
