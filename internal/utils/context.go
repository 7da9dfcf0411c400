// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides helpers shared by the field node and the cloud
// service: context keys, record checksums, HTTP response writing, the
// resty client, node tokens, disk usage and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// NodeIDCtxKey stores the authenticated node identifier in a request context.
//
//	ctx := context.WithValue(ctx, utils.NodeIDCtxKey, "clinic-07")
var NodeIDCtxKey = contextKey("nodeID")

// GetNodeIDFromContext returns the node identifier stored under
// NodeIDCtxKey. ok is false when the value is missing, empty or not a string.
func GetNodeIDFromContext(ctx context.Context) (string, bool) {
	nodeID, ok := ctx.Value(NodeIDCtxKey).(string)
	return nodeID, ok && nodeID != ""
}
