// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the transport servers managed by
// this package.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down gracefully.
	// It returns nil after a clean shutdown.
	Run(ctx context.Context) error

	// Addr reports the bound listen address once Run has started listening.
	Addr() string
}
