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

package model

// SchemaRef points at a schema either by registered name or inline.
//
// Exactly one of Name and Inline is set. The zero value is an inline empty
// schema, which accepts any JSON value.
type SchemaRef struct {
	// Name is the stable name the schema is registered under.
	Name string

	// Inline embeds the schema directly.
	Inline *Schema
}

// Reference returns a SchemaRef to the schema registered under name.
func Reference(name string) SchemaRef {
	return SchemaRef{Name: name}
}

// InlineRef returns a SchemaRef embedding s.
func InlineRef(s *Schema) SchemaRef {
	return SchemaRef{Inline: s}
}

// IsReference reports whether r points at a registered schema.
func (r SchemaRef) IsReference() bool {
	return r.Name != ""
}

// Schema materializes r as a schema: a logical reference holding the name,
// or a copy of the inline schema.
func (r SchemaRef) Schema() *Schema {
	if r.IsReference() {
		return &Schema{Ref: r.Name}
	}
	if r.Inline == nil {
		return &Schema{}
	}

	return r.Inline.Clone()
}
