// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// version handles GET /api/v1/version, a public endpoint returning the
// running server's version string.
func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Write([]byte(serverVersion))
}
