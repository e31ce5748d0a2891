// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks trips, vehicles, segments and user input
// against the `validate` tags of the models package with
// go-playground/validator. Errors name fields by their JSON names so the
// API can return them as they are.
package validators

import "context"

// Validator validates v. When fields are given only those struct fields are
// checked, which lets partial updates skip absent values.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
