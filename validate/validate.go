// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package validate checks JSON wire values against the schemas that payload
// types document.
//
// The schema of a type is projected to OpenAPI 3.1 (a JSON Schema 2020-12
// dialect), every registered component is embedded under $defs, and the
// result is compiled with santhosh-tekuri/jsonschema. This lets tests and
// servers confirm that what a type encodes is what its documentation
// promises.
//
//	reg := registry.New()
//	outcome := apitype.ResultOf(apitype.Int64(), apitype.String())
//	outcome.Register(reg)
//
//	err := validate.New().Validate(ctx, reg, outcome.SchemaRef(), tree)
package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/apitype/export"
	"rivaas.dev/apitype/model"
	"rivaas.dev/apitype/registry"
)

const (
	draft2020  = "https://json-schema.org/draft/2020-12/schema"
	defsPrefix = "#/$defs/"
	resource   = "apitype.json"
)

// Engine validates wire values against projected schemas.
//
// An Engine is safe for concurrent use: every call compiles its own schema.
type Engine struct {
	formatAssertions bool
	maxErrors        int
}

// Option configures an [Engine].
type Option func(*Engine)

// WithFormatAssertions makes "format" an assertion instead of an
// annotation. The integer formats int32, int64 and uint64 are checked for
// range.
func WithFormatAssertions() Option {
	return func(e *Engine) {
		e.formatAssertions = true
	}
}

// WithMaxErrors caps the number of reported violations. Zero means no cap.
func WithMaxErrors(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxErrors = n
		}
	}
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Validate checks value, a JSON tree as produced by an encoder, against the
// schema ref points at. Named schemas are resolved through reg.
//
// It returns nil when value matches, a [*Error] wrapping [ErrValidation]
// when it does not, and another error when the schema cannot be built.
func (e *Engine) Validate(ctx context.Context, reg *registry.Registry, ref model.SchemaRef, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	schema, err := e.compile(reg, ref)
	if err != nil {
		return err
	}

	inst, err := canonical(value)
	if err != nil {
		return fmt.Errorf("validate: encode value: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	result := &Error{}
	e.collect(verr, result)
	result.sort()

	return result
}

// ValidateJSON is Validate for raw JSON bytes.
func (e *Engine) ValidateJSON(ctx context.Context, reg *registry.Registry, ref model.SchemaRef, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return fmt.Errorf("validate: invalid JSON: %w", err)
	}
	if !json.Valid(data) {
		return errors.New("validate: invalid JSON: unexpected data after top-level value")
	}

	return e.Validate(ctx, reg, ref, tree)
}

func (e *Engine) compile(reg *registry.Registry, ref model.SchemaRef) (*jsonschema.Schema, error) {
	if reg == nil {
		reg = registry.New()
	}
	cfg := export.Config{Version: export.V31, RefPrefix: defsPrefix}

	defs, _, err := export.Schemas(reg, cfg)
	if err != nil {
		return nil, err
	}
	root, _, err := export.Schema(ref.Schema(), cfg)
	if err != nil {
		return nil, err
	}

	doc, err := canonical(map[string]any{
		"$schema": draft2020,
		"$defs":   defs,
		"allOf":   []any{root},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	c := jsonschema.NewCompiler()
	if e.formatAssertions {
		c.AssertFormat()
		registerFormats(c)
	}
	if err := c.AddResource(resource, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	schema, err := c.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	return schema, nil
}

// canonical round-trips v through JSON so the validator sees the value
// shapes it expects, whatever numeric types the encoder produced.
func canonical(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}

// collect flattens the leaves of the error tree into result.
func (e *Engine) collect(verr *jsonschema.ValidationError, result *Error) {
	if verr == nil || result.Truncated {
		return
	}

	if len(verr.Causes) == 0 {
		if e.maxErrors > 0 && len(result.Fields) >= e.maxErrors {
			result.Truncated = true
			return
		}
		result.add(pointer(verr.InstanceLocation), code(verr), verr.Error())

		return
	}

	for _, cause := range verr.Causes {
		e.collect(cause, result)
	}
}

func code(verr *jsonschema.ValidationError) string {
	if verr.ErrorKind == nil {
		return "schema"
	}
	kp := verr.ErrorKind.KeywordPath()
	if len(kp) == 0 {
		return "schema"
	}

	return "schema." + strings.Join(kp, ".")
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func pointer(loc []string) string {
	var b strings.Builder
	for _, seg := range loc {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(seg))
	}

	return b.String()
}
