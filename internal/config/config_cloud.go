// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// CloudConfig is the cloud store service configuration assembled from
// [StructuredConfig].
type CloudConfig struct {
	// DSN is the Postgres connection string of the central store.
	DSN string
	// HTTPAddress is the change-feed API listen address.
	HTTPAddress string
	// RequestTimeout bounds a single inbound request.
	RequestTimeout time.Duration
	// TokenKey verifies node tokens.
	TokenKey string
	// TokenIssuer is the expected "iss" claim of node tokens.
	TokenIssuer string
	// MaxPageSize caps the limit accepted by the change feed.
	MaxPageSize int
	Version     string
}

// GetCloudConfig builds and validates the cloud config view.
func GetCloudConfig(args []string) (*CloudConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	cloudCfg := NewCloudConfig(cfg)
	return cloudCfg, cloudCfg.validate()
}

// NewCloudConfig maps the fields relevant to the cloud runtime.
func NewCloudConfig(cfg *StructuredConfig) *CloudConfig {
	return &CloudConfig{
		DSN:            cfg.Storage.DB.DSN,
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		TokenKey:       cfg.App.NodeTokenKey,
		TokenIssuer:    cfg.App.NodeTokenIssuer,
		MaxPageSize:    cfg.Sync.ChangePageSize,
		Version:        cfg.App.Version,
	}
}
