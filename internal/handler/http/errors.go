// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the change-feed handlers and middleware. Callers can
// match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the node auth middleware
	// when the incoming request does not include an "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidQueryParam is returned when "after" or "limit" cannot be
	// parsed as a non-negative integer.
	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrBodyChecksumMismatch is returned when the X-Body-Checksum header
	// does not match the received body.
	ErrBodyChecksumMismatch = errors.New("body checksum mismatch")
)
