// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

// Package handler implements the public API endpoints.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gamehub/gamehub/internal/httpapi/apierr"
	"github.com/gamehub/gamehub/internal/httpapi/middleware"
	"github.com/gamehub/gamehub/internal/identity"
	"github.com/gamehub/gamehub/internal/observability"
)

// SignInRequest is the POST /players/sign_in payload.
type SignInRequest struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
}

// SignInResponse carries the issued session token.
type SignInResponse struct {
	SessionToken string `json:"session_token"`
}

// PlayerInfoResponse describes the authenticated player.
type PlayerInfoResponse struct {
	PlayerID   string    `json:"player_id"`
	ScreenName string    `json:"screen_name"`
	JoinedAt   time.Time `json:"joined_at"`
}

// PlayerHandler handles player identity endpoints.
type PlayerHandler struct {
	identity *identity.Service
	logger   *slog.Logger
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(svc *identity.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		identity: svc,
		logger:   logger,
	}
}

// SignIn handles POST /players/sign_in.
func (h *PlayerHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.logger, apierr.NewBadRequest("invalid request body"))
		return
	}
	if req.Provider == "" {
		apierr.Write(w, h.logger, apierr.NewBadRequest("provider is required"))
		return
	}
	if req.IDToken == "" {
		apierr.Write(w, h.logger, apierr.NewBadRequest("id_token is required"))
		return
	}

	provider := identity.Provider(req.Provider)
	token, err := h.identity.SignIn(r.Context(), identity.SignInRequest{
		Provider: provider,
		IDToken:  req.IDToken,
	})
	if err != nil {
		observability.RecordSignIn(providerLabel(provider), signInOutcome(err))
		apierr.Write(w, h.logger, err)
		return
	}

	observability.RecordSignIn(providerLabel(provider), "success")
	writeJSON(w, http.StatusOK, SignInResponse{SessionToken: string(token)})
}

// PlayerInfo handles GET /players/player_info.
func (h *PlayerHandler) PlayerInfo(w http.ResponseWriter, r *http.Request) {
	player := middleware.PlayerFrom(r.Context())
	if player == nil {
		// Auth middleware guarantees a player; reaching here is a wiring bug.
		apierr.Write(w, h.logger, identity.ErrTokenMissing)
		return
	}

	writeJSON(w, http.StatusOK, PlayerInfoResponse{
		PlayerID:   player.ID.String(),
		ScreenName: player.ScreenName,
		JoinedAt:   player.JoinedAt,
	})
}

// signInOutcome classifies a sign-in failure for metrics: caller-input
// rejections versus backend errors.
func signInOutcome(err error) string {
	if status, _ := apierr.FromError(err); status < http.StatusInternalServerError {
		return "rejected"
	}
	return "error"
}

// providerLabel constrains the metric label to the known provider set.
// Request bodies carry arbitrary strings and must not mint new series.
func providerLabel(p identity.Provider) string {
	if p.Valid() {
		return string(p)
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // response already committed
}
