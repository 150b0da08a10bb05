// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/seesee/jottery/internal/logger"
	"github.com/seesee/jottery/internal/utils"
	"github.com/seesee/jottery/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	apiKey string
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] pointed at baseAddress. requestTimeout bounds every
// outbound request; if zero, a 15-second default is used.
//
// Returns an error if baseAddress cannot be parsed as a valid URL.
func NewHTTPServerAdapter(baseAddress string, requestTimeout time.Duration, log *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(baseAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetAPIKey implements [ServerAdapter].
func (h *httpServerAdapter) SetAPIKey(key string) {
	h.apiKey = strings.TrimSpace(key)
}

// APIKey implements [ServerAdapter].
func (h *httpServerAdapter) APIKey() string {
	return h.apiKey
}

// Register implements [ServerAdapter]. It POSTs to
// POST /api/v1/auth/register. On success the returned API key is stored
// via SetAPIKey.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	var out models.RegisterResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/v1/auth/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	h.SetAPIKey(out.APIKey)
	return out, nil
}

// Push implements [ServerAdapter]. It POSTs to POST /api/v1/sync/push.
// Per-note version conflicts arrive in PushResponse.Rejected with a 200
// status and a nil error; outright transport/auth failures surface
// through mapHTTPError.
func (h *httpServerAdapter) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	var out models.PushResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/v1/sync/push")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}
	return out, nil
}

// Pull implements [ServerAdapter]. It POSTs to POST /api/v1/sync/pull.
func (h *httpServerAdapter) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	var out models.PullResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/v1/sync/pull")
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("pull request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}
	return out, nil
}

// Status implements [ServerAdapter]. It GETs GET /api/v1/sync/status.
func (h *httpServerAdapter) Status(ctx context.Context) (models.SyncStatusResponse, error) {
	var out models.SyncStatusResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/api/v1/sync/status")
	if err != nil {
		return models.SyncStatusResponse{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncStatusResponse{}, err
	}
	return out, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if key := h.APIKey(); key != "" {
		req.SetHeader("Authorization", "Bearer "+key)
	}
	return req
}
