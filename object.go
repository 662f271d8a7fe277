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

// Object is a named object type built from Go struct fields. Its schema is
// registered under its name and referenced by other types.
//
// Example:
//
//	type User struct {
//	    ID    int64
//	    Email *string
//	}
//
//	users := apitype.NewObject[User]("User", apitype.WithDescription("A user"))
//	apitype.AddField(users, "id", apitype.Int64(), func(u *User) *int64 { return &u.ID })
//	apitype.AddField(users, "email", apitype.OptionalOf(apitype.String()), func(u *User) **string { return &u.Email })
type Object[T any] struct {
	name   string
	meta   model.Schema
	fields []objectField[T]
}

type objectField[T any] struct {
	name     string
	required bool
	ref      func() model.SchemaRef
	register func(reg *registry.Registry)
	encode   func(v *T) (any, bool)
	decode   func(v *T, in Field) error
}

// ObjectOption configures the schema annotations of an [Object].
type ObjectOption func(*model.Schema)

// WithTitle sets the schema title.
func WithTitle(title string) ObjectOption {
	return func(s *model.Schema) {
		s.Title = title
	}
}

// WithDescription sets the schema description.
func WithDescription(desc string) ObjectOption {
	return func(s *model.Schema) {
		s.Description = desc
	}
}

// WithDeprecated marks the schema as deprecated.
func WithDeprecated() ObjectOption {
	return func(s *model.Schema) {
		s.Deprecated = true
	}
}

// NewObject returns an object type named name with no fields.
func NewObject[T any](name string, opts ...ObjectOption) *Object[T] {
	o := &Object[T]{name: name}
	for _, opt := range opts {
		opt(&o.meta)
	}

	return o
}

// AddField adds a field stored at get(v) and described by ty. Fields are
// encoded and documented in the order they are added. AddField returns o.
func AddField[T, F any](o *Object[T], name string, ty Type[F], get func(v *T) *F) *Object[T] {
	o.fields = append(o.fields, objectField[T]{
		name:     name,
		required: ty.IsRequired(),
		ref:      ty.SchemaRef,
		register: ty.Register,
		encode: func(v *T) (any, bool) {
			return ty.Encode(*get(v))
		},
		decode: func(v *T, in Field) error {
			f, err := ty.Decode(in)
			if err != nil {
				return err
			}
			*get(v) = f

			return nil
		},
	})

	return o
}

// Name returns the object name.
func (o *Object[T]) Name() string {
	return o.name
}

// SchemaRef returns a reference to the registered schema.
func (o *Object[T]) SchemaRef() model.SchemaRef {
	return model.Reference(o.name)
}

// Register adds the object schema under its name, then the field types.
func (o *Object[T]) Register(reg *registry.Registry) {
	reg.Create(o.name, func(reg *registry.Registry) *model.Schema {
		s := o.meta.Clone()
		s.Kind = model.KindObject
		s.Properties = make(map[string]*model.Schema, len(o.fields))
		for _, f := range o.fields {
			f.register(reg)
			s.Properties[f.name] = f.ref().Schema()
			if f.required {
				s.Required = append(s.Required, f.name)
			}
		}

		return s
	})
}

// IsRequired returns true.
func (o *Object[T]) IsRequired() bool {
	return true
}

// Encode writes every field whose type does not report it absent.
func (o *Object[T]) Encode(v T) (any, bool) {
	out := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		if enc, ok := f.encode(&v); ok {
			out[f.name] = enc
		}
	}

	return out, true
}

// Decode reads every field. Unknown keys are ignored. Field errors carry
// the field name in their path.
func (o *Object[T]) Decode(in Field) (T, error) {
	var out T

	v, ok := in.Get()
	if !ok {
		return out, missingInput(o.name)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return out, newParseError(o.name, KindInvalidShape, "expected an object", v)
	}

	for _, f := range o.fields {
		field := Absent()
		if raw, found := obj[f.name]; found {
			field = Present(raw)
		}
		if err := f.decode(&out, field); err != nil {
			var zero T
			return zero, withPath(err, f.name)
		}
	}

	return out, nil
}
