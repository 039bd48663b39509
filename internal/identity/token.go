// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultTokenLeeway is the clock-skew allowance applied when validating
// session token expiry.
const DefaultTokenLeeway = 30 * time.Second

// SessionToken is an opaque signed credential returned after sign-in.
// Callers carry it as a bearer credential; it must never be logged or
// echoed in error payloads.
type SessionToken string

// SessionClaims is the payload embedded in a session token. Validity is
// computed entirely from the signature and these timestamps; nothing is
// persisted server-side.
type SessionClaims struct {
	PlayerID  ulid.ULID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer creates session tokens for player IDs.
type TokenIssuer interface {
	Issue(playerID ulid.ULID) (SessionToken, error)
}

// TokenVerifier validates presented session tokens.
type TokenVerifier interface {
	Verify(token SessionToken) (*SessionClaims, error)
}

// TokenService issues and verifies HS256-signed session tokens. Key
// material and TTL are fixed for the lifetime of the instance; the service
// holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
}

// NewTokenService creates a TokenService with the given signing secret and
// token TTL. The secret must be non-empty and the TTL positive.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, oops.Code("SESSION_TOKEN_CONFIG_INVALID").Errorf("signing secret is required")
	}
	if ttl <= 0 {
		return nil, oops.Code("SESSION_TOKEN_CONFIG_INVALID").
			With("ttl", ttl.String()).
			Errorf("token TTL must be positive")
	}
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		leeway: DefaultTokenLeeway,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a session token bound to the given player ID with
// issued-at now and expiry now+TTL.
func (s *TokenService) Issue(playerID ulid.ULID) (SessionToken, error) {
	if playerID.Compare(ulid.ULID{}) == 0 {
		return "", oops.Code("SESSION_TOKEN_ISSUE_FAILED").Errorf("player ID cannot be zero")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   playerID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", oops.Code("SESSION_TOKEN_ISSUE_FAILED").
			With("operation", "sign claims").
			Wrap(err)
	}
	return SessionToken(signed), nil
}

// Verify checks the signature and expiry of a presented token and returns
// its claims. Failure kinds are distinguishable with errors.Is:
// ErrTokenExpired, ErrTokenSignature, or ErrTokenMalformed.
func (s *TokenService) Verify(token SessionToken) (*SessionClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(string(token), &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}

	playerID, err := ulid.Parse(claims.Subject)
	if err != nil {
		return nil, oops.Code("SESSION_TOKEN_MALFORMED").
			With("operation", "parse subject").
			Wrap(ErrTokenMalformed)
	}

	sessionClaims := &SessionClaims{PlayerID: playerID}
	if claims.IssuedAt != nil {
		sessionClaims.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sessionClaims.ExpiresAt = claims.ExpiresAt.Time
	}
	return sessionClaims, nil
}

// mapJWTError converts golang-jwt parse errors into the package's
// failure kinds. The library verifies the signature before validating
// claims, so a tampered token always reports the signature kind even if
// its embedded expiry has also passed.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return oops.Code("SESSION_TOKEN_SIGNATURE").Wrap(ErrTokenSignature)
	case errors.Is(err, jwt.ErrTokenExpired):
		return oops.Code("SESSION_TOKEN_EXPIRED").Wrap(ErrTokenExpired)
	default:
		return oops.Code("SESSION_TOKEN_MALFORMED").Wrap(ErrTokenMalformed)
	}
}

// Compile-time interface checks.
var (
	_ TokenIssuer   = (*TokenService)(nil)
	_ TokenVerifier = (*TokenService)(nil)
)
