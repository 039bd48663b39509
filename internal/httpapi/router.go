// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

// Package httpapi assembles the public HTTP API.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamehub/gamehub/internal/httpapi/handler"
	"github.com/gamehub/gamehub/internal/httpapi/middleware"
	"github.com/gamehub/gamehub/internal/identity"
)

// RouterConfig holds the collaborators the API routes depend on.
type RouterConfig struct {
	Logger   *slog.Logger
	Identity *identity.Service
	Tokens   identity.TokenVerifier
}

// NewRouter creates the API router with all routes configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.Identity, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.Tokens, cfg.Identity, cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Sign-in is the unauthenticated entry point
	r.HandleFunc("/players/sign_in", playerHandler.SignIn).Methods(http.MethodPost)

	// Authenticated player routes
	protected := r.PathPrefix("/players").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/player_info", playerHandler.PlayerInfo).Methods(http.MethodGet)

	return r
}
