// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("node unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrInternalServerError = errors.New("cloud internal error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnavailable         = errors.New("cloud unavailable")

	// ErrTransport wraps failures below HTTP: DNS, refused connections,
	// timeouts.
	ErrTransport = errors.New("cloud transport failure")
)

// IsUnreachable reports whether err means the cloud could not be reached or
// could not serve the request right now, as opposed to rejecting it.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrBadGateway) ||
		errors.Is(err, ErrUnavailable)
}
