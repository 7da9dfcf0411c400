// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the field node's client for the central cloud
// store.
//
// [CloudAdapter] decouples the sync engine from the transport. The package
// ships an HTTP/REST implementation ([NewHTTPCloudAdapter]) that signs every
// request with a node token.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling. [IsUnreachable] tells connectivity failures apart from
// request rejections.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-hybrid-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cloud_adapter_mock.go -package=mock

// CloudAdapter defines communication with the central cloud store.
type CloudAdapter interface {
	// Ping checks that the cloud store is reachable and healthy.
	Ping(ctx context.Context) error

	// ListTables returns the tables the cloud store knows about.
	ListTables(ctx context.Context) ([]string, error)

	// PullChanges fetches up to limit cloud change-log entries of table
	// after the given revision. Entries written by this node are filtered
	// out by the cloud, but still advance the returned high watermark.
	PullChanges(ctx context.Context, table string, after int64, limit int) (models.ChangesResponse, error)

	// PushChanges sends a batch of local changes of table. The batch is
	// applied atomically; re-sending an applied batch is a no-op.
	PushChanges(ctx context.Context, table string, req models.PushRequest) (models.PushResponse, error)
}
