// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/samber/oops"

	"github.com/gamehub/gamehub/internal/httpapi/apierr"
)

// Recovery converts handler panics into internal-error responses instead
// of tearing down the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "handler panic",
						slog.Any("panic", rec),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					apierr.Write(w, nil, oops.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
