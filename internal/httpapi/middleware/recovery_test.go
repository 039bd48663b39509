// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehub/gamehub/internal/httpapi/apierr"
	"github.com/gamehub/gamehub/internal/httpapi/middleware"
)

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/players/player_info", nil)
	rr := httptest.NewRecorder()

	middleware.Recovery(testLogger())(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var apiErr apierr.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, apierr.IDInternal, apiErr.ID)
	// Panic detail stays in the log, not the response
	assert.NotContains(t, rr.Body.String(), "boom")
}

func TestRecovery_PassesThroughNormally(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/players/sign_in", nil)
	rr := httptest.NewRecorder()

	middleware.Recovery(testLogger())(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
