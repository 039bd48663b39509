// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/gamehub/gamehub/internal/observability"
)

// SignInRequest is an inbound sign-in credential: a provider tag and the
// opaque token issued by that provider.
type SignInRequest struct {
	Provider Provider
	IDToken  string
}

// Service orchestrates sign-in: it verifies a third-party identity token,
// resolves or provisions the player linked to that external identity, and
// issues a session token. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	store  Store
	google Verifier
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(store Store, google Verifier, tokens TokenIssuer) (*Service, error) {
	return NewServiceWithLogger(store, google, tokens, slog.Default())
}

// NewServiceWithLogger creates a new Service with a custom logger.
func NewServiceWithLogger(store Store, google Verifier, tokens TokenIssuer, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, oops.Code("IDENTITY_SERVICE_INVALID").Errorf("store is required")
	}
	if google == nil {
		return nil, oops.Code("IDENTITY_SERVICE_INVALID").Errorf("google verifier is required")
	}
	if tokens == nil {
		return nil, oops.Code("IDENTITY_SERVICE_INVALID").Errorf("token issuer is required")
	}
	if logger == nil {
		return nil, oops.Code("IDENTITY_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{
		store:  store,
		google: google,
		tokens: tokens,
		logger: logger,
	}, nil
}

// SignIn verifies the request's identity token, finds or provisions the
// linked player, and returns a fresh session token bound to that player.
//
// When two concurrent sign-ins race to register the same never-before-seen
// external identity, the store's uniqueness constraint lets exactly one
// creation through. The loser re-reads the winner's record and still
// receives a valid session; sign-in is idempotent under concurrency.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (SessionToken, error) {
	method, err := s.verifyCredential(ctx, req)
	if err != nil {
		return "", err
	}

	player, err := s.resolvePlayer(ctx, method)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(player.ID)
	if err != nil {
		return "", oops.Code("SIGN_IN_FAILED").
			With("operation", "issue session token").
			With("player_id", player.ID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "player signed in",
		"player_id", player.ID.String(),
		"provider", string(method.Provider),
	)

	return token, nil
}

// PlayerByID returns the player with the given ID. Returns ErrNotFound if
// the player does not exist.
func (s *Service) PlayerByID(ctx context.Context, id ulid.ULID) (*Player, error) {
	return s.store.FindByPlayerID(ctx, id)
}

// verifyCredential dispatches the opaque token to the verifier for the
// request's provider and derives the sign-in method key from the verified
// claims. Verification failures are caller errors, never retried.
func (s *Service) verifyCredential(ctx context.Context, req SignInRequest) (SignInMethod, error) {
	var verifier Verifier
	switch req.Provider {
	case ProviderGoogle:
		verifier = s.google
	default:
		return SignInMethod{}, oops.Code("SIGN_IN_INVALID_PROVIDER").
			With("provider", string(req.Provider)).
			Wrap(ErrIdentityTokenInvalid)
	}

	claims, err := verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return SignInMethod{}, oops.Code("SIGN_IN_ID_TOKEN_REJECTED").
			With("provider", string(req.Provider)).
			Wrap(errors.Join(ErrIdentityTokenInvalid, err))
	}

	method, err := NewSignInMethod(req.Provider, claims.Subject)
	if err != nil {
		return SignInMethod{}, oops.Code("SIGN_IN_ID_TOKEN_REJECTED").
			With("provider", string(req.Provider)).
			Wrap(errors.Join(ErrIdentityTokenInvalid, err))
	}
	return method, nil
}

// resolvePlayer finds the player linked to the sign-in method, creating
// one atomically on first sign-in. Exactly one creation retry is allowed:
// a uniqueness conflict means another request won the race, so the record
// must now exist. A second miss indicates a deeper bug and surfaces as an
// internal error rather than looping.
func (s *Service) resolvePlayer(ctx context.Context, method SignInMethod) (*Player, error) {
	player, err := s.store.FindBySignInMethod(ctx, method)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("SIGN_IN_FAILED").
			With("operation", "find player by sign-in method").
			Wrap(err)
	}

	candidate := NewPlayer()
	err = s.store.CreatePlayerWithSignInMethod(ctx, candidate, method)
	if err == nil {
		observability.RecordPlayerCreated()
		s.logger.InfoContext(ctx, "player created",
			"player_id", candidate.ID.String(),
			"provider", string(method.Provider),
		)
		return candidate, nil
	}
	if !errors.Is(err, ErrSignInMethodExists) {
		return nil, oops.Code("SIGN_IN_FAILED").
			With("operation", "create player with sign-in method").
			Wrap(err)
	}

	// Lost the creation race; the winner's record must be visible now.
	player, err = s.store.FindBySignInMethod(ctx, method)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// The constraint fired but the record is gone. Not a caller
			// condition, so the sentinel is deliberately not propagated.
			return nil, oops.Code("SIGN_IN_RACE_LOOKUP_FAILED").
				With("provider", string(method.Provider)).
				Errorf("player missing after sign-in method uniqueness conflict")
		}
		return nil, oops.Code("SIGN_IN_RACE_LOOKUP_FAILED").
			With("operation", "re-find player after uniqueness conflict").
			Wrap(err)
	}
	return player, nil
}
