// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/seesee/jottery/internal/app"
)

// withMaxPayloadSize is an HTTP middleware that rejects request bodies
// larger than h.maxPayloadSize.
//
// It wraps the request body in [http.MaxBytesReader], so a handler's
// subsequent read fails once the limit is exceeded rather than the
// middleware buffering the whole body up front. If the body is already
// known to be too large via Content-Length, the request is rejected
// immediately with HTTP 413 Payload Too Large.
func (h *Handler) withMaxPayloadSize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > h.maxPayloadSize {
			http.Error(w, app.MsgPayloadTooLarge, http.StatusRequestEntityTooLarge)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxPayloadSize)
		next.ServeHTTP(w, r)
	})
}
