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
	"maps"
	"slices"
	"strconv"

	"rivaas.dev/apitype/model"
	"rivaas.dev/apitype/registry"
)

// SliceType is the type of JSON arrays whose elements share one type.
type SliceType[T any] struct {
	elem Type[T]
}

// SliceOf returns the array type with elements of type elem.
func SliceOf[T any](elem Type[T]) SliceType[T] {
	return SliceType[T]{elem: elem}
}

// Name returns "[elem]".
func (t SliceType[T]) Name() string {
	return "[" + t.elem.Name() + "]"
}

// SchemaRef returns an inline array schema.
func (t SliceType[T]) SchemaRef() model.SchemaRef {
	return model.InlineRef(&model.Schema{
		Kind:  model.KindArray,
		Items: t.elem.SchemaRef().Schema(),
	})
}

// Register registers the element type.
func (t SliceType[T]) Register(reg *registry.Registry) {
	t.elem.Register(reg)
}

// IsRequired returns true.
func (t SliceType[T]) IsRequired() bool {
	return true
}

// Encode encodes every element. Absent elements become null.
func (t SliceType[T]) Encode(v []T) (any, bool) {
	out := make([]any, len(v))
	for i, e := range v {
		out[i] = encodeOrNull(t.elem, e)
	}

	return out, true
}

// Decode decodes a JSON array. Element errors carry the element index in
// their path.
func (t SliceType[T]) Decode(in Field) ([]T, error) {
	v, ok := in.Get()
	if !ok {
		return nil, missingInput(t.Name())
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, invalidType(t.Name(), v)
	}

	out := make([]T, 0, len(arr))
	for i, raw := range arr {
		e, err := t.elem.Decode(Present(raw))
		if err != nil {
			return nil, withPath(err, strconv.Itoa(i))
		}
		out = append(out, e)
	}

	return out, nil
}

// OptionalType is the type of values that may be absent or null,
// represented as a pointer.
type OptionalType[T any] struct {
	inner Type[T]
}

// OptionalOf returns the optional variant of inner.
func OptionalOf[T any](inner Type[T]) OptionalType[T] {
	return OptionalType[T]{inner: inner}
}

// Name returns the inner type's name: optionality is not part of the
// identity of a type.
func (t OptionalType[T]) Name() string {
	return t.inner.Name()
}

// SchemaRef returns the inner schema. Inline schemas are marked nullable.
func (t OptionalType[T]) SchemaRef() model.SchemaRef {
	ref := t.inner.SchemaRef()
	if ref.IsReference() {
		return ref
	}
	s := ref.Schema()
	s.Nullable = true

	return model.InlineRef(s)
}

// Register registers the inner type.
func (t OptionalType[T]) Register(reg *registry.Registry) {
	t.inner.Register(reg)
}

// IsRequired returns false.
func (t OptionalType[T]) IsRequired() bool {
	return false
}

// Encode reports nil as absent.
func (t OptionalType[T]) Encode(v *T) (any, bool) {
	if v == nil {
		return nil, false
	}

	return t.inner.Encode(*v)
}

// Decode returns nil for absent input and JSON null.
func (t OptionalType[T]) Decode(in Field) (*T, error) {
	if !in.IsPresent() || in.IsNull() {
		return nil, nil
	}
	v, err := t.inner.Decode(in)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// MapType is the type of JSON objects with arbitrary keys and values of one
// type.
type MapType[T any] struct {
	value Type[T]
}

// MapOf returns the string-keyed map type with values of type value.
func MapOf[T any](value Type[T]) MapType[T] {
	return MapType[T]{value: value}
}

// Name returns "map<string, value>".
func (t MapType[T]) Name() string {
	return "map<string, " + t.value.Name() + ">"
}

// SchemaRef returns an inline object schema with additionalProperties.
func (t MapType[T]) SchemaRef() model.SchemaRef {
	return model.InlineRef(&model.Schema{
		Kind:       model.KindObject,
		Additional: model.AdditionalPropsSchema(t.value.SchemaRef().Schema()),
	})
}

// Register registers the value type.
func (t MapType[T]) Register(reg *registry.Registry) {
	t.value.Register(reg)
}

// IsRequired returns true.
func (t MapType[T]) IsRequired() bool {
	return true
}

// Encode encodes every entry. Absent values are dropped.
func (t MapType[T]) Encode(v map[string]T) (any, bool) {
	out := make(map[string]any, len(v))
	for k, e := range v {
		if enc, ok := t.value.Encode(e); ok {
			out[k] = enc
		}
	}

	return out, true
}

// Decode decodes a JSON object. Entries are visited in key order so the
// reported error is deterministic.
func (t MapType[T]) Decode(in Field) (map[string]T, error) {
	v, ok := in.Get()
	if !ok {
		return nil, missingInput(t.Name())
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType(t.Name(), v)
	}

	out := make(map[string]T, len(obj))
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		e, err := t.value.Decode(Present(obj[k]))
		if err != nil {
			return nil, withPath(err, k)
		}
		out[k] = e
	}

	return out, nil
}
