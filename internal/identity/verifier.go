// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package identity

import "context"

// ExternalClaims carries the verified claims of a third-party identity
// token. Only the subject is consumed by sign-in; profile claims are
// informational.
type ExternalClaims struct {
	// Subject is the provider-issued stable user identifier.
	Subject string

	// Email is the asserted email address, if the provider supplied one.
	Email string
}

// Verifier validates a third-party identity token and returns its claims.
// Implementations own signature checking, issuer and audience validation;
// callers treat any failure as a point-in-time fact and never retry.
type Verifier interface {
	VerifyIDToken(ctx context.Context, rawToken string) (*ExternalClaims, error)
}
