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

// Package model defines the version-agnostic schema representation shared by
// payload types, the registry and the OpenAPI projectors.
package model

import (
	"maps"
	"slices"
)

// Schema represents a version-agnostic JSON Schema in the intermediate representation.
//
// This IR is a superset of features needed for both OpenAPI 3.0.x and 3.1.x.
// Version-specific differences are handled by projectors in the export package.
type Schema struct {
	// Ref is a logical reference to a component schema, holding its
	// registered name. Projectors resolve it to the appropriate $ref format.
	Ref string

	// Kind is the JSON Schema type kind.
	Kind Kind

	// Nullable indicates if the value can be null.
	// In 3.0: represented as nullable: true
	// In 3.1: represented as type: ["T", "null"]
	Nullable bool

	Title       string
	Description string

	// Format provides additional type information (e.g., "date-time", "int64").
	Format string

	Deprecated bool
	ReadOnly   bool
	WriteOnly  bool

	// Example provides a single example value (3.0 style).
	Example any

	// Examples provides multiple example values (3.1 style).
	Examples []any

	Pattern   string
	MinLength *int
	MaxLength *int

	Minimum    *Bound
	Maximum    *Bound
	MultipleOf *float64

	Items       *Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// Properties defines object properties.
	Properties map[string]*Schema

	// Required lists required property names (for type "object").
	Required []string

	// Additional controls additionalProperties behavior.
	Additional *Additional

	// PatternProps defines pattern-based properties (3.1 feature).
	PatternProps map[string]*Schema

	// Unevaluated defines unevaluatedProperties schema (3.1 feature).
	Unevaluated *Schema

	MinProperties *int
	MaxProperties *int

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Enum []any

	// Const is a constant value (3.1 feature).
	// In 3.0, this will be converted to enum: [const] with a warning.
	Const any

	Default any

	// Discriminator is used for polymorphism (optional).
	Discriminator *Discriminator

	ExternalDocs *ExternalDocs

	// Extensions contains specification extensions (fields prefixed with x-).
	Extensions map[string]any
}

// Discriminator is used for polymorphism in oneOf/anyOf compositions.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string
}

// ExternalDocs provides external documentation links.
type ExternalDocs struct {
	Description string
	URL         string
}

// Clone returns a deep copy of s. Scalar values stored in Example, Default,
// Const and Enum are copied by reference.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}

	out := *s
	out.Examples = slices.Clone(s.Examples)
	out.Enum = slices.Clone(s.Enum)
	out.Required = slices.Clone(s.Required)
	out.MinLength = clonePtr(s.MinLength)
	out.MaxLength = clonePtr(s.MaxLength)
	out.Minimum = clonePtr(s.Minimum)
	out.Maximum = clonePtr(s.Maximum)
	out.MultipleOf = clonePtr(s.MultipleOf)
	out.MinItems = clonePtr(s.MinItems)
	out.MaxItems = clonePtr(s.MaxItems)
	out.MinProperties = clonePtr(s.MinProperties)
	out.MaxProperties = clonePtr(s.MaxProperties)
	out.Items = s.Items.Clone()
	out.Unevaluated = s.Unevaluated.Clone()
	out.Not = s.Not.Clone()
	out.Additional = s.Additional.clone()
	out.Properties = cloneSchemaMap(s.Properties)
	out.PatternProps = cloneSchemaMap(s.PatternProps)
	out.AllOf = cloneSchemaList(s.AllOf)
	out.AnyOf = cloneSchemaList(s.AnyOf)
	out.OneOf = cloneSchemaList(s.OneOf)
	out.Extensions = maps.Clone(s.Extensions)

	if s.Discriminator != nil {
		out.Discriminator = &Discriminator{
			PropertyName: s.Discriminator.PropertyName,
			Mapping:      maps.Clone(s.Discriminator.Mapping),
		}
	}
	if s.ExternalDocs != nil {
		docs := *s.ExternalDocs
		out.ExternalDocs = &docs
	}

	return &out
}

// Merge returns a copy of s with every keyword set in other applied on top.
//
// Scalar keywords set in other replace those of s, boolean flags are OR'd,
// properties and required names are unioned (other wins on a property
// conflict) and composition lists are appended. Neither input is modified.
func (s *Schema) Merge(other *Schema) *Schema {
	out := s.Clone()
	if out == nil {
		out = &Schema{}
	}
	if other == nil {
		return out
	}
	o := other.Clone()

	if o.Ref != "" {
		out.Ref = o.Ref
	}
	if o.Kind != KindUnknown {
		out.Kind = o.Kind
	}

	out.Nullable = out.Nullable || o.Nullable
	out.Deprecated = out.Deprecated || o.Deprecated
	out.ReadOnly = out.ReadOnly || o.ReadOnly
	out.WriteOnly = out.WriteOnly || o.WriteOnly
	out.UniqueItems = out.UniqueItems || o.UniqueItems

	mergeString(&out.Title, o.Title)
	mergeString(&out.Description, o.Description)
	mergeString(&out.Format, o.Format)
	mergeString(&out.Pattern, o.Pattern)

	mergePtr(&out.MinLength, o.MinLength)
	mergePtr(&out.MaxLength, o.MaxLength)
	mergePtr(&out.Minimum, o.Minimum)
	mergePtr(&out.Maximum, o.Maximum)
	mergePtr(&out.MultipleOf, o.MultipleOf)
	mergePtr(&out.Items, o.Items)
	mergePtr(&out.MinItems, o.MinItems)
	mergePtr(&out.MaxItems, o.MaxItems)
	mergePtr(&out.Additional, o.Additional)
	mergePtr(&out.Unevaluated, o.Unevaluated)
	mergePtr(&out.MinProperties, o.MinProperties)
	mergePtr(&out.MaxProperties, o.MaxProperties)
	mergePtr(&out.Not, o.Not)
	mergePtr(&out.Discriminator, o.Discriminator)
	mergePtr(&out.ExternalDocs, o.ExternalDocs)

	if o.Example != nil {
		out.Example = o.Example
	}
	if o.Const != nil {
		out.Const = o.Const
	}
	if o.Default != nil {
		out.Default = o.Default
	}
	if len(o.Examples) > 0 {
		out.Examples = o.Examples
	}
	if len(o.Enum) > 0 {
		out.Enum = o.Enum
	}

	if len(o.Properties) > 0 {
		if out.Properties == nil {
			out.Properties = make(map[string]*Schema, len(o.Properties))
		}
		maps.Copy(out.Properties, o.Properties)
	}
	if len(o.PatternProps) > 0 {
		if out.PatternProps == nil {
			out.PatternProps = make(map[string]*Schema, len(o.PatternProps))
		}
		maps.Copy(out.PatternProps, o.PatternProps)
	}
	for _, name := range o.Required {
		if !slices.Contains(out.Required, name) {
			out.Required = append(out.Required, name)
		}
	}

	out.AllOf = append(out.AllOf, o.AllOf...)
	out.AnyOf = append(out.AnyOf, o.AnyOf...)
	out.OneOf = append(out.OneOf, o.OneOf...)

	if len(o.Extensions) > 0 {
		if out.Extensions == nil {
			out.Extensions = make(map[string]any, len(o.Extensions))
		}
		maps.Copy(out.Extensions, o.Extensions)
	}

	return out
}

// Annotations returns a schema carrying only the descriptive keywords of s:
// title, description, deprecated, readOnly, writeOnly, externalDocs and
// extensions. Structural and validation keywords are left out.
func (s *Schema) Annotations() *Schema {
	if s == nil {
		return &Schema{}
	}
	c := s.Clone()

	return &Schema{
		Title:        c.Title,
		Description:  c.Description,
		Deprecated:   c.Deprecated,
		ReadOnly:     c.ReadOnly,
		WriteOnly:    c.WriteOnly,
		ExternalDocs: c.ExternalDocs,
		Extensions:   c.Extensions,
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergePtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}

func cloneSchemaMap(in map[string]*Schema) map[string]*Schema {
	if in == nil {
		return nil
	}
	out := make(map[string]*Schema, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}

	return out
}

func cloneSchemaList(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}

	return out
}
