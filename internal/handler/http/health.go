// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// health handles GET /health, a public liveness probe used by load
// balancers and orchestrators. It performs no downstream checks: a 200
// response only confirms the process is accepting connections.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
