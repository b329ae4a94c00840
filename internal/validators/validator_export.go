// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Documents the export validator knows. Pass one of them as the field
// argument of Validate; the export file is the default.
const (
	FieldExportFile      = "export"
	FieldEmergencyBundle = "emergency"
)

const schemaBaseURL = "https://life-os.local/schemas/"

//go:embed schemas/*.json
var schemaFS embed.FS

// ExportValidator checks the structure of export files before anything is
// decrypted. It accepts raw JSON as []byte, json.RawMessage or string.
type ExportValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewExportValidator compiles the embedded schemas.
func NewExportValidator() (Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read embedded schemas: %w", err)
	}
	for _, e := range entries {
		raw, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if err = c.AddResource(schemaBaseURL+e.Name(), bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("export schema load failed: %w", err)
		}
	}

	v := &ExportValidator{schemas: make(map[string]*jsonschema.Schema, 2)}
	for field, name := range map[string]string{
		FieldExportFile:      "export.schema.json",
		FieldEmergencyBundle: "emergency.schema.json",
	} {
		compiled, err := c.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("export schema compile failed: %w", err)
		}
		v.schemas[field] = compiled
	}

	return v, nil
}

func (v *ExportValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var raw []byte
	switch value := obj.(type) {
	case []byte:
		raw = value
	case json.RawMessage:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = []string{FieldExportFile}
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return err
	}

	for _, f := range fields {
		schema, ok := v.schemas[f]
		if !ok {
			return ErrUnknownField
		}
		if err = schema.Validate(doc); err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
	}

	return nil
}

func decodeDocument(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedDocument)
	}
	return doc, nil
}
