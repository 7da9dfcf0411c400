// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidTable     = errors.New("invalid table name")
	ErrInvalidChange    = errors.New("invalid change entry")
	ErrEmptyBatch       = errors.New("changes list cannot be empty")
	ErrMissingPayload   = errors.New("insert and update require a JSON payload")
	ErrChecksumMismatch = errors.New("checksum does not match payload")
	ErrRevisionOrder    = errors.New("change revisions must not decrease")
	ErrInvalidSettings  = errors.New("invalid settings update")
	ErrInvalidRecord    = errors.New("invalid record write")
)
