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
	"rivaas.dev/apitype/model"
	"rivaas.dev/apitype/registry"
)

// Type is the capability set every payload type provides.
//
// The JSON tree exchanged by Encode and Decode uses the shapes produced by a
// JSON decoder: nil, bool, string, numbers (json.Number, float64 or Go
// integers), []any and map[string]any.
type Type[T any] interface {
	// Name returns a stable identifier, unique per type.
	Name() string

	// SchemaRef describes the type, either by registered name or inline.
	SchemaRef() model.SchemaRef

	// Register inserts every named schema reachable from the type.
	// It must be idempotent.
	Register(reg *registry.Registry)

	// IsRequired reports whether an enclosing object must list the field
	// as required.
	IsRequired() bool

	// Encode converts v to the JSON tree. A false result means the value is
	// absent and an enclosing object omits it.
	Encode(v T) (any, bool)

	// Decode parses a JSON tree, which may be absent.
	Decode(in Field) (T, error)
}

// Field is a JSON value that may be absent from its enclosing object.
// A present field may still hold JSON null.
type Field struct {
	value   any
	present bool
}

// Present returns a field holding v. A nil v is JSON null.
func Present(v any) Field {
	return Field{value: v, present: true}
}

// Absent returns a field that was not supplied.
func Absent() Field {
	return Field{}
}

// Get returns the value and whether it was supplied.
func (f Field) Get() (any, bool) {
	return f.value, f.present
}

// IsPresent reports whether the field was supplied.
func (f Field) IsPresent() bool {
	return f.present
}

// IsNull reports whether the field was supplied as JSON null.
func (f Field) IsNull() bool {
	return f.present && f.value == nil
}
