// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks what crosses a trust boundary: vault records and
// devices arriving at the server, and export files read by the client.
//
// Two implementations exist:
//   - the vault validator checks records, versions and devices field by field;
//     the optional names restrict it to those fields;
//   - the export validator checks an export file against its JSON schema
//     before any signature or decryption work is done.
package validators

import "context"

// Validator validates one value. An unsupported value type is an error.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
