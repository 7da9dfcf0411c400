// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/go-playground/validator/v10"
)

// Field name constants used to restrict validation to a subset of checks.
const (
	// FieldStruct runs the struct tag rules.
	FieldStruct = "struct"

	// FieldTable requires every change of a batch to belong to the named
	// table. The table is passed through [WithTable].
	FieldTable = "table"

	// FieldPayload requires a JSON payload on inserts and updates.
	FieldPayload = "payload"

	// FieldChecksum requires a present checksum to match the payload.
	FieldChecksum = "checksum"

	// FieldOrder requires non-decreasing revisions within a batch.
	FieldOrder = "order"
)

type tableKey struct{}

// WithTable attaches the table a batch is addressed to.
func WithTable(ctx context.Context, table string) context.Context {
	return context.WithValue(ctx, tableKey{}, table)
}

func tableFrom(ctx context.Context) (string, bool) {
	table, ok := ctx.Value(tableKey{}).(string)
	return table, ok
}

// ChangeValidator validates change-feed and node API bodies: PushRequest,
// ChangeEntry, RecordWrite and SettingsUpdate.
type ChangeValidator struct {
	validate *validator.Validate
}

// NewChangeValidator constructs a ChangeValidator with the custom
// "jsonpayload" rule registered.
func NewChangeValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("jsonpayload", validateJSONPayload)
	return &ChangeValidator{validate: v}
}

// validateJSONPayload accepts an empty or syntactically valid JSON byte
// slice.
func validateJSONPayload(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.Uint8 {
		return false
	}
	b := field.Bytes()
	return len(b) == 0 || json.Valid(b)
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted.
func (v *ChangeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.ChangeEntry:
		return v.validateChange(ctx, value, fields...)
	case *models.ChangeEntry:
		return v.validateChange(ctx, *value, fields...)

	case models.RecordWrite:
		return v.structErr(ctx, value, ErrInvalidRecord)
	case *models.RecordWrite:
		return v.structErr(ctx, *value, ErrInvalidRecord)

	case models.SettingsUpdate:
		return v.structErr(ctx, value, ErrInvalidSettings)
	case *models.SettingsUpdate:
		return v.structErr(ctx, *value, ErrInvalidSettings)

	default:
		return ErrUnsupportedType
	}
}

func (v *ChangeValidator) validatePushRequest(ctx context.Context, req models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStruct, FieldTable, FieldPayload, FieldChecksum, FieldOrder}
	}

	if len(req.Changes) == 0 {
		return ErrEmptyBatch
	}

	for _, f := range fields {
		switch f {
		case FieldStruct:
			if err := v.structErr(ctx, req, ErrInvalidChange); err != nil {
				return err
			}
		case FieldOrder:
			var prev int64
			for _, c := range req.Changes {
				if c.Revision < prev {
					return fmt.Errorf("%w: record %s revision %d after %d", ErrRevisionOrder, c.RecordID, c.Revision, prev)
				}
				prev = c.Revision
			}
		case FieldTable, FieldPayload, FieldChecksum:
			for _, c := range req.Changes {
				if err := v.validateChange(ctx, c, f); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *ChangeValidator) validateChange(ctx context.Context, c models.ChangeEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStruct, FieldTable, FieldPayload, FieldChecksum}
	}

	for _, f := range fields {
		switch f {
		case FieldStruct:
			if err := v.structErr(ctx, c, ErrInvalidChange); err != nil {
				return err
			}
		case FieldTable:
			table, ok := tableFrom(ctx)
			if !ok {
				continue
			}
			if table == "" || len(table) > 128 {
				return ErrInvalidTable
			}
			if c.Table != table {
				return fmt.Errorf("%w: record %s belongs to %q, not %q", ErrInvalidTable, c.RecordID, c.Table, table)
			}
		case FieldPayload:
			if c.IsDelete() {
				continue
			}
			if len(c.Payload) == 0 || !json.Valid(c.Payload) {
				return fmt.Errorf("%w: record %s", ErrMissingPayload, c.RecordID)
			}
		case FieldChecksum:
			if c.Checksum != "" && c.Checksum != utils.Checksum(c.Payload, c.IsDelete()) {
				return fmt.Errorf("%w: record %s", ErrChecksumMismatch, c.RecordID)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// structErr runs the struct tag rules and wraps a failure with sentinel.
func (v *ChangeValidator) structErr(ctx context.Context, obj any, sentinel error) error {
	err := v.validate.StructCtx(ctx, obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed on %q", sentinel, fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
