// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks change batches and operator input before they
// reach the stores.
//
// Struct tags are enforced with go-playground/validator. Rules that span the
// entries of a push batch, such as revision order, are checked by hand.
package validators

import "context"

// Validator validates a value. When fields are given only those fields are
// checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
