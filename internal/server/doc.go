// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP listener of a field node or the cloud store.
//
// A server is started with [Server.Run] and stops gracefully when the context
// passed to it is cancelled, draining in-flight requests first.
package server
