// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package identity

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Provider identifies a third-party sign-in provider.
type Provider string

// Supported providers.
const (
	ProviderGoogle Provider = "google"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	return p == ProviderGoogle
}

// SignInMethod links an external identity to a player. A given
// (Provider, ExternalUserID) pair resolves to exactly one player; the
// pairing is created atomically with the player it is first linked to and
// is never mutated afterwards.
type SignInMethod struct {
	Provider       Provider
	ExternalUserID string
}

// NewSignInMethod creates a validated SignInMethod.
func NewSignInMethod(provider Provider, externalUserID string) (SignInMethod, error) {
	if !provider.Valid() {
		return SignInMethod{}, oops.Code("SIGN_IN_METHOD_INVALID").
			With("provider", string(provider)).
			Errorf("unknown sign-in provider")
	}
	if externalUserID == "" {
		return SignInMethod{}, oops.Code("SIGN_IN_METHOD_INVALID").
			With("provider", string(provider)).
			Errorf("external user ID cannot be empty")
	}
	return SignInMethod{Provider: provider, ExternalUserID: externalUserID}, nil
}

// Store manages player identity persistence. Implementations must enforce
// sign-in method uniqueness at the storage layer; in-process locking does
// not hold across multiple service instances.
type Store interface {
	// CreatePlayerWithSignInMethod durably creates the player record and
	// its sign-in method link as one atomic unit. Returns
	// ErrSignInMethodExists when the sign-in method key is already taken.
	CreatePlayerWithSignInMethod(ctx context.Context, player *Player, method SignInMethod) error

	// FindBySignInMethod retrieves the player linked to the given sign-in
	// method. Returns ErrNotFound if no link exists; that is a normal
	// outcome, not a failure.
	FindBySignInMethod(ctx context.Context, method SignInMethod) (*Player, error)

	// FindByPlayerID retrieves a player by ID. Returns ErrNotFound if the
	// player does not exist.
	FindByPlayerID(ctx context.Context, id ulid.ULID) (*Player, error)
}
