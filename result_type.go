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

package apitype

import (
	"fmt"

	"rivaas.dev/apitype/model"
	"rivaas.dev/apitype/registry"
)

// Wire keys of the two result variants.
const (
	OkKey  = "ok"
	ErrKey = "err"
)

// ResultType adapts [Result] to the [Type] capability set, delegating to the
// payload types for everything payload specific.
type ResultType[T, E any] struct {
	ok  Type[T]
	err Type[E]
}

var _ Type[Result[int64, string]] = ResultType[int64, string]{}

// ResultOf returns the type of results whose success payload is described by
// okType and failure payload by errType.
func ResultOf[T, E any](okType Type[T], errType Type[E]) ResultType[T, E] {
	return ResultType[T, E]{ok: okType, err: errType}
}

// Name returns "result<T, E>" built from the payload names.
func (t ResultType[T, E]) Name() string {
	return "result<" + t.ok.Name() + ", " + t.err.Name() + ">"
}

// SchemaRef returns an inline object schema with an anyOf of two
// alternatives: the success payload's annotations plus a required "ok"
// property, and the failure payload's annotations plus a required "err"
// property. No discriminator is declared. Only the payload's annotations
// are lifted onto an alternative; its constraint keywords stay on the
// "ok"/"err" property.
func (t ResultType[T, E]) SchemaRef() model.SchemaRef {
	return model.InlineRef(&model.Schema{
		Kind: model.KindObject,
		AnyOf: []*model.Schema{
			variantSchema(t.ok.SchemaRef(), OkKey),
			variantSchema(t.err.SchemaRef(), ErrKey),
		},
	})
}

func variantSchema(payload model.SchemaRef, key string) *model.Schema {
	var base *model.Schema
	if !payload.IsReference() {
		base = payload.Inline.Annotations()
	}

	return base.Merge(&model.Schema{
		Kind:       model.KindObject,
		Properties: map[string]*model.Schema{key: payload.Schema()},
		Required:   []string{key},
	})
}

// Register registers both payload types. The result itself is always
// inline and gets no entry.
func (t ResultType[T, E]) Register(reg *registry.Registry) {
	t.ok.Register(reg)
	t.err.Register(reg)
}

// IsRequired returns false: an object field holding a result may be omitted
// at the schema level.
func (t ResultType[T, E]) IsRequired() bool {
	return false
}

// Encode returns {"ok": payload} or {"err": payload}. A payload whose
// encoder reports absence is written as null.
func (t ResultType[T, E]) Encode(r Result[T, E]) (any, bool) {
	if r.ok {
		return map[string]any{OkKey: encodeOrNull(t.ok, r.value)}, true
	}

	return map[string]any{ErrKey: encodeOrNull(t.err, r.err)}, true
}

// Decode parses {"ok": ...} or {"err": ...}. When both keys are present
// "ok" wins and "err" is ignored. The input map is only read.
func (t ResultType[T, E]) Decode(in Field) (Result[T, E], error) {
	var zero Result[T, E]

	v, ok := in.Get()
	if !ok {
		return zero, missingInput(t.Name())
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return zero, newParseError(t.Name(), KindInvalidShape, "expected an object", v)
	}

	if raw, found := obj[OkKey]; found {
		p, err := t.ok.Decode(Present(raw))
		if err != nil {
			return zero, payloadError(err)
		}

		return Ok[T, E](p), nil
	}

	if raw, found := obj[ErrKey]; found {
		p, err := t.err.Decode(Present(raw))
		if err != nil {
			return zero, payloadError(err)
		}

		return Err[T](p), nil
	}

	return zero, newParseError(t.Name(), KindUnrecognizedShape,
		fmt.Sprintf("expected an object with key %q or %q, found %s", OkKey, ErrKey, renderValue(obj)), obj)
}

func encodeOrNull[T any](t Type[T], v T) any {
	out, ok := t.Encode(v)
	if !ok {
		return nil
	}

	return out
}
