// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

// Package identity provides player identity and session primitives for GameHub.
//
// # Domain Types
//
// Domain types (Player, SignInMethod, SessionClaims) should be created
// using their respective constructors:
//   - NewPlayer - creates a Player with a fresh ID, generated screen name,
//     and join timestamp
//   - NewSignInMethod - creates a SignInMethod from a provider and the
//     verified external user ID
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - sign-in orchestration (verify, find-or-create, issue token)
//   - TokenService - session token issuance and verification
//
// Services are created with New*Service constructors that validate
// dependencies. Persistence lives behind the Store interface with a
// PostgreSQL implementation in the postgres subpackage; third-party ID
// token verification lives behind the Verifier interface with a Google
// implementation in the google subpackage.
package identity
