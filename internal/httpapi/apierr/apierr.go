// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

// Package apierr defines the public API error envelope.
package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gamehub/gamehub/internal/identity"
	"github.com/gamehub/gamehub/pkg/errutil"
)

// ModulePlayers is the module tag for player/identity errors.
const ModulePlayers = "players"

// Stable error IDs. Consumers switch on these values; the numbering is a
// published contract and must not change across versions.
const (
	IDInvalidIdentityToken = 0
	IDPlayerNotFound       = 1
	IDInvalidSessionToken  = 2
	IDSessionTokenMissing  = 3
	IDInternal             = 4
)

// APIError is the wire shape of an error response.
type APIError struct {
	Module     string `json:"module"`
	ID         int    `json:"id"`
	DevMessage string `json:"dev_message"`
}

// Error implements the error interface so handlers can wrap and return
// APIErrors directly.
func (e APIError) Error() string { return e.DevMessage }

// FromError maps an error to its HTTP status and wire envelope.
// Caller-input failures keep their descriptive message; internal failures
// collapse to a fixed message so backend details (connection strings,
// key material) can never reach a client.
func FromError(err error) (int, APIError) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return statusFor(apiErr.ID), apiErr
	}

	switch {
	case errors.Is(err, identity.ErrIdentityTokenInvalid):
		return http.StatusBadRequest, APIError{
			Module:     ModulePlayers,
			ID:         IDInvalidIdentityToken,
			DevMessage: "identity token rejected",
		}
	case errors.Is(err, identity.ErrNotFound):
		return http.StatusUnauthorized, APIError{
			Module:     ModulePlayers,
			ID:         IDPlayerNotFound,
			DevMessage: "player not found",
		}
	case errors.Is(err, identity.ErrTokenExpired),
		errors.Is(err, identity.ErrTokenSignature),
		errors.Is(err, identity.ErrTokenMalformed):
		return http.StatusUnauthorized, APIError{
			Module:     ModulePlayers,
			ID:         IDInvalidSessionToken,
			DevMessage: "session token invalid",
		}
	case errors.Is(err, identity.ErrTokenMissing):
		return http.StatusUnauthorized, APIError{
			Module:     ModulePlayers,
			ID:         IDSessionTokenMissing,
			DevMessage: "session token missing",
		}
	default:
		return http.StatusInternalServerError, APIError{
			Module:     ModulePlayers,
			ID:         IDInternal,
			DevMessage: "internal error",
		}
	}
}

// statusFor returns the HTTP status paired with a stable error ID.
func statusFor(id int) int {
	switch id {
	case IDInvalidIdentityToken:
		return http.StatusBadRequest
	case IDPlayerNotFound, IDInvalidSessionToken, IDSessionTokenMissing:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as a JSON error response. Internal errors are logged
// as system failures; caller-input errors are not.
func Write(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, apiErr := FromError(err)
	if status >= http.StatusInternalServerError && logger != nil {
		errutil.LogError(logger, "request failed", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiErr) //nolint:errcheck // response already committed
}

// NewBadRequest returns a caller error for an unparseable sign-in payload.
func NewBadRequest(message string) error {
	return APIError{
		Module:     ModulePlayers,
		ID:         IDInvalidIdentityToken,
		DevMessage: message,
	}
}
