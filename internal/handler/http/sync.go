// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/utils"
	"github.com/seesee/jottery/models"
)

// push handles POST /api/v1/sync/push. The authenticated client submits a
// batch of opaque, client-encrypted notes; the server applies them under
// optimistic concurrency control and reports per-note accept/reject
// results. It never inspects note content.
func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clientID, ok := utils.GetClientIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.push").Msg("no client ID in context")
		http.Error(w, "no client ID was given", http.StatusUnauthorized)
		return
	}

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		errResp := responseFromError(err)
		log.Err(err).Msg("push request failed validation")
		http.Error(w, errResp.message, errResp.status)
		return
	}

	resp, err := h.services.NoteSyncService.Push(ctx, clientID, req)
	if err != nil {
		errResp := responseFromError(err)
		log.Err(err).Msg("push failed")
		http.Error(w, errResp.message, errResp.status)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// pull handles POST /api/v1/sync/pull. It returns every note modified
// since req.LastSyncAt (or all notes, if nil), split into live notes and
// deletion tombstones.
func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clientID, ok := utils.GetClientIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.pull").Msg("no client ID in context")
		http.Error(w, "no client ID was given", http.StatusUnauthorized)
		return
	}

	var req models.PullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.NoteSyncService.Pull(ctx, clientID, req)
	if err != nil {
		errResp := responseFromError(err)
		log.Err(err).Msg("pull failed")
		http.Error(w, errResp.message, errResp.status)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// status handles GET /api/v1/sync/status, reporting the server's view of
// the authenticated client's sync state.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clientID, ok := utils.GetClientIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.status").Msg("no client ID in context")
		http.Error(w, "no client ID was given", http.StatusUnauthorized)
		return
	}

	resp, err := h.services.NoteSyncService.Status(ctx, clientID)
	if err != nil {
		errResp := responseFromError(err)
		log.Err(err).Msg("status failed")
		http.Error(w, errResp.message, errResp.status)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// deleteNote handles DELETE /api/v1/sync/notes/{id}. It hard-deletes a
// single note for administrative/compliance use, bypassing the regular
// soft-delete tombstone pathway used by push.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clientID, ok := utils.GetClientIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteNote").Msg("no client ID in context")
		http.Error(w, "no client ID was given", http.StatusUnauthorized)
		return
	}

	noteID := chi.URLParam(r, "id")
	if noteID == "" {
		http.Error(w, "note id is required", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteSyncService.Delete(ctx, clientID, noteID); err != nil {
		errResp := responseFromError(err)
		log.Err(err).Msg("delete failed")
		http.Error(w, errResp.message, errResp.status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
