// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package identity

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrSignInMethodExists is returned by Store.CreatePlayerWithSignInMethod
// when the sign-in method key is already linked to a player. This is the
// signal consumed by the sign-in race recovery in Service.SignIn.
var ErrSignInMethodExists = errors.New("sign-in method already exists")

// ErrIdentityTokenInvalid is returned when a third-party identity token
// fails verification. Always a caller error, never retried.
var ErrIdentityTokenInvalid = errors.New("identity token invalid")

// Session token verification failure kinds. Each is terminal; callers
// dispatch with errors.Is.
var (
	// ErrTokenExpired is returned when a session token is past its expiry
	// beyond the configured leeway.
	ErrTokenExpired = errors.New("session token expired")

	// ErrTokenSignature is returned when a session token's signature does
	// not verify against the service key.
	ErrTokenSignature = errors.New("session token signature invalid")

	// ErrTokenMalformed is returned for any other structural problem with
	// a presented session token.
	ErrTokenMalformed = errors.New("session token malformed")

	// ErrTokenMissing is returned when no session token was presented.
	ErrTokenMissing = errors.New("session token missing")
)
