// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-API-key authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer key,
// resolves it to a registered client via
// [service.ClientRegistryService.Authenticate], and — on success — stores
// the authenticated client's ID in the request context under
// [utils.ClientIDCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the
// header is absent, malformed, or resolves to no active client.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		bearerKey, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		client, err := h.services.ClientRegistryService.Authenticate(ctx, bearerKey)
		if err != nil {
			resp := responseFromError(err)
			log.Err(err).Msg("bearer key authentication failed")
			http.Error(w, resp.message, resp.status)
			return
		}

		ctx = context.WithValue(ctx, utils.ClientIDCtxKey, client.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer key string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <api-key>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the key is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	key := parts[1]
	if key == "" {
		return "", ErrEmptyToken
	}

	return key, nil
}
