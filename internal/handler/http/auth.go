// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/utils"
	"github.com/seesee/jottery/models"
)

// register handles POST /api/v1/auth/register. It is public: a new device
// registers itself and receives a bearer API key exactly once, in the
// response body. The key is never returned by any other endpoint.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		errResp := responseFromError(err)
		log.Err(err).Msg("registration request failed validation")
		http.Error(w, errResp.message, errResp.status)
		return
	}

	resp, err := h.services.ClientRegistryService.Register(ctx, req)
	if err != nil {
		errResp := responseFromError(err)
		log.Err(err).Msg("device registration failed")
		http.Error(w, errResp.message, errResp.status)
		return
	}

	utils.WriteJSON(w, resp, http.StatusCreated)
}
