// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
)

// nodeAuth is an HTTP middleware that enforces node token authentication on
// the change-feed API.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// with [utils.ValidateNodeToken] against the configured key and issuer and,
// on success, stores the node ID in the request context under
// [utils.NodeIDCtxKey] and on the request logger.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the header
// is absent, is not a bearer token, or the token is expired or invalid.
func (h *Handler) nodeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateNodeToken(tokenString, h.tokenKey, h.tokenIssuer)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing node token")
			http.Error(w, app.MsgUnauthorizedNode, http.StatusUnauthorized)
			return
		}

		nodeLog := log.With().Str("node_id", token.NodeID).Logger()
		ctx := nodeLog.WithContext(r.Context())
		ctx = context.WithValue(ctx, utils.NodeIDCtxKey, token.NodeID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
