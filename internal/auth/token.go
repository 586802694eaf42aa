package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// TokenSigner issues and verifies the signed, expiring session tokens handed
// to clients. The token is an HS256 JWT carrying the user id as subject and
// the session id as jti; rehydration verifies signature and expiry before the
// directory is consulted.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSigner constructs a signer with the given secret and token lifetime.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the user and returns it with the fresh
// session id embedded as jti.
func (s *TokenSigner) Issue(userID string) (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, sessionID, nil
}

// Parse verifies signature and expiry and returns the claims.
func (s *TokenSigner) Parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, shared.ErrUnauthenticated
	}
	return claims, nil
}

// TTL exposes the configured token lifetime.
func (s *TokenSigner) TTL() time.Duration {
	return s.ttl
}
