// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

// Package middleware provides HTTP middleware for the public API.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/gamehub/gamehub/internal/httpapi/apierr"
	"github.com/gamehub/gamehub/internal/identity"
	"github.com/gamehub/gamehub/internal/observability"
)

type contextKey string

const playerContextKey contextKey = "player"

// PlayerResolver resolves an authenticated player ID to its record.
type PlayerResolver interface {
	PlayerByID(ctx context.Context, id ulid.ULID) (*identity.Player, error)
}

// Auth authenticates requests from a bearer session token. The decision
// sequence is linear and every branch is terminal: no token yields the
// missing-token error; an unverifiable token yields the invalid-token
// error; a valid token whose player no longer resolves is unauthorized,
// not a server failure. On success the player record is placed in the
// request context.
//
// The presented token is never logged and never echoed in a response.
func Auth(tokens identity.TokenVerifier, players PlayerResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				observability.RecordSessionVerify("missing")
				apierr.Write(w, logger, identity.ErrTokenMissing)
				return
			}

			claims, err := tokens.Verify(identity.SessionToken(token))
			if err != nil {
				observability.RecordSessionVerify(verifyOutcome(err))
				apierr.Write(w, logger, err)
				return
			}

			player, err := players.PlayerByID(r.Context(), claims.PlayerID)
			if err != nil {
				observability.RecordSessionVerify("invalid")
				apierr.Write(w, logger, err)
				return
			}

			observability.RecordSessionVerify("success")
			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyOutcome classifies a verification failure for metrics.
func verifyOutcome(err error) string {
	if errors.Is(err, identity.ErrTokenExpired) {
		return "expired"
	}
	return "invalid"
}

// bearerToken extracts the bearer credential from the Authorization
// header. Returns false when the header is absent; a present but
// non-bearer header returns an empty token, which fails verification as
// malformed rather than missing.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// PlayerFrom returns the authenticated player from the request context.
func PlayerFrom(ctx context.Context) *identity.Player {
	player, _ := ctx.Value(playerContextKey).(*identity.Player)
	return player
}
