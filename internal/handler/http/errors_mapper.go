// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/seesee/jottery/internal/app"
	"github.com/seesee/jottery/internal/server/store"
	"github.com/seesee/jottery/internal/service"
	"github.com/seesee/jottery/internal/validators"
)

type errorResponse struct {
	message string
	status  int
}

var errorStatusMap = map[error]errorResponse{
	service.ErrUnauthorized:      {message: app.MsgUnauthorized, status: http.StatusUnauthorized},
	service.ErrServerNoteNotFound: {message: app.MsgNoteNotFound, status: http.StatusNotFound},

	store.ErrClientNotFound:    {message: app.MsgClientNotFound, status: http.StatusUnauthorized},
	store.ErrDuplicateAPIKey:   {message: app.MsgDuplicateAPIKey, status: http.StatusConflict},
	store.ErrNoteNotFound:      {message: app.MsgNoteNotFound, status: http.StatusNotFound},
	store.ErrVersionConflict:   {message: app.MsgVersionConflict, status: http.StatusConflict},
	store.ErrLockTimeout:       {message: app.MsgLockTimeout, status: http.StatusServiceUnavailable},
	store.ErrAttachmentNotFound: {message: app.MsgNoteNotFound, status: http.StatusNotFound},

	validators.ErrUnsupportedType:  {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	validators.ErrUnknownField:     {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	validators.ErrInvalidNoteID:    {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	validators.ErrEmptyContent:     {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	validators.ErrInvalidVersion:   {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	validators.ErrEmptyNotes:       {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	validators.ErrEmptyDeviceName:  {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	validators.ErrEmptyAttachmentID: {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{message: app.MsgInternalServerError, status: http.StatusInternalServerError}
}
