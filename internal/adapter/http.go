// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/go-resty/resty/v2"
)

// tokenRefreshMargin is how long before expiry a cached node token is
// replaced.
const tokenRefreshMargin = time.Minute

const (
	pingPath    = "/api/ping"
	tablesPath  = "/api/tables"
	changesPath = "/api/changes/{table}"
)

type httpCloudAdapter struct {
	client *utils.HTTPClient
	probe  *utils.HTTPClient
	app    config.NodeApp

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	logger *logger.Logger
}

// NewHTTPCloudAdapter constructs an HTTP/REST implementation of
// [CloudAdapter]. The base URL is taken from adapterCfg.HTTPAddress; requests
// are signed with node tokens minted from appCfg.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPCloudAdapter(adapterCfg config.NodeAdapter, appCfg config.NodeApp, logger *logger.Logger) (CloudAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(2)
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("X-Node-ID", appCfg.NodeID)

	probe := utils.NewHTTPClient(0)
	probe.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("X-Node-ID", appCfg.NodeID)

	return &httpCloudAdapter{client: client, probe: probe, app: appCfg, logger: logger}, nil
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

// Ping implements [CloudAdapter]. It is not retried, so a probe reflects
// the link state at the moment it runs.
func (h *httpCloudAdapter) Ping(ctx context.Context) error {
	resp, err := h.probe.R().
		SetContext(ctx).
		Get(pingPath)
	if err != nil {
		return fmt.Errorf("%w: ping request: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}

// ListTables implements [CloudAdapter].
func (h *httpCloudAdapter) ListTables(ctx context.Context) ([]string, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var result models.TablesResponse
	resp, err := req.SetResult(&result).Get(tablesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: list tables request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return result.Tables, nil
}

// PullChanges implements [CloudAdapter]. It GETs
// /api/changes/{table}?after=N&limit=M.
func (h *httpCloudAdapter) PullChanges(ctx context.Context, table string, after int64, limit int) (models.ChangesResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.ChangesResponse{}, err
	}

	var result models.ChangesResponse
	resp, err := req.
		SetPathParam("table", table).
		SetQueryParam("after", strconv.FormatInt(after, 10)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&result).
		Get(changesPath)
	if err != nil {
		return models.ChangesResponse{}, fmt.Errorf("%w: pull changes request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangesResponse{}, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "httpCloudAdapter.PullChanges").
		Str("table", table).
		Int64("after", after).
		Int("changes", len(result.Changes)).
		Int64("high_watermark", result.HighWatermark).
		Msg("pulled cloud changes")
	return result, nil
}

// PushChanges implements [CloudAdapter]. It POSTs the batch to
// /api/changes/{table}.
func (h *httpCloudAdapter) PushChanges(ctx context.Context, table string, pushReq models.PushRequest) (models.PushResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.PushResponse{}, err
	}

	body, err := json.Marshal(pushReq)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: encode push request: %w", ErrTransport, err)
	}

	var result models.PushResponse
	resp, err := req.
		SetPathParam("table", table).
		SetHeader("Content-Type", "application/json").
		SetHeader(utils.BodyChecksumHeader, utils.BodyChecksum(body)).
		SetBody(body).
		SetResult(&result).
		Post(changesPath)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: push changes request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	return result, nil
}

func (h *httpCloudAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := h.nodeToken()
	if err != nil {
		return nil, err
	}
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

// nodeToken returns the cached node token, minting a new one when it is
// missing or close to expiry.
func (h *httpCloudAdapter) nodeToken() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.token != "" && time.Until(h.expiresAt) > tokenRefreshMargin {
		return h.token, nil
	}

	token, err := utils.GenerateNodeToken(h.app.TokenIssuer, h.app.NodeID, h.app.TokenDuration, h.app.TokenKey)
	if err != nil {
		h.logger.Err(err).Str("func", "httpCloudAdapter.nodeToken").Msg("failed to mint node token")
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	h.token = token.SignedString
	h.expiresAt = time.Now().Add(h.app.TokenDuration)
	return h.token, nil
}
