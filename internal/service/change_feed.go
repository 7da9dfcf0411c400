// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/validators"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

const defaultMaxPageSize = 1000

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type changeFeedService struct {
	changes     store.CloudRepository
	pinger      Pinger
	validator   validators.Validator
	maxPageSize int

	logger *logger.Logger
}

// NewChangeFeedService returns the cloud change-feed service. Pull limits
// above maxPageSize are clamped to it.
func NewChangeFeedService(changes store.CloudRepository, pinger Pinger, validator validators.Validator, maxPageSize int, logger *logger.Logger) ChangeFeedService {
	if maxPageSize <= 0 {
		maxPageSize = defaultMaxPageSize
	}
	return &changeFeedService{
		changes:     changes,
		pinger:      pinger,
		validator:   validator,
		maxPageSize: maxPageSize,
		logger:      logger,
	}
}

func (s *changeFeedService) Ping(ctx context.Context) error {
	return s.pinger.Ping(ctx)
}

func (s *changeFeedService) Tables(ctx context.Context) ([]string, error) {
	tables, err := s.changes.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if tables == nil {
		tables = []string{}
	}
	return tables, nil
}

func (s *changeFeedService) Pull(ctx context.Context, nodeID, table string, after int64, limit int) (models.ChangesResponse, error) {
	if err := validateTable(table); err != nil {
		return models.ChangesResponse{}, err
	}
	if after < 0 {
		return models.ChangesResponse{}, fmt.Errorf("%w: negative revision", ErrInvalidRequest)
	}
	if limit <= 0 || limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	resp, err := s.changes.ChangesSince(ctx, table, after, limit, nodeID)
	if err != nil {
		return models.ChangesResponse{}, err
	}
	if resp.Changes == nil {
		resp.Changes = []models.ChangeEntry{}
	}
	return resp, nil
}

func (s *changeFeedService) Push(ctx context.Context, nodeID, table string, req models.PushRequest) (models.PushResponse, error) {
	if err := validateTable(table); err != nil {
		return models.PushResponse{}, err
	}
	if err := s.validator.Validate(validators.WithTable(ctx, table), req); err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	resp, err := s.changes.ApplyChanges(ctx, table, nodeID, req)
	if err != nil {
		return models.PushResponse{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "changeFeedService.Push").
		Str("node_id", nodeID).
		Str("table", table).
		Int("received", len(req.Changes)).
		Int("applied", resp.Applied).
		Int64("watermark", resp.Watermark).
		Msg("node changes applied")
	return resp, nil
}

func validateTable(table string) error {
	if table == "" || len(table) > 128 {
		return fmt.Errorf("%w: table name must be 1..128 characters", ErrInvalidRequest)
	}
	return nil
}
