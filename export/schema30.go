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

package export

import (
	"maps"
	"slices"

	"rivaas.dev/apitype/diag"
	"rivaas.dev/apitype/model"
)

// SchemaV30 represents an OpenAPI 3.0.4 schema.
type SchemaV30 struct {
	Ref              string                `json:"$ref,omitempty"`
	Title            string                `json:"title,omitempty"`
	Type             string                `json:"type,omitempty"`
	Format           string                `json:"format,omitempty"`
	Description      string                `json:"description,omitempty"`
	Example          any                   `json:"example,omitempty"`
	Deprecated       bool                  `json:"deprecated,omitempty"`
	ReadOnly         bool                  `json:"readOnly,omitempty"`
	WriteOnly        bool                  `json:"writeOnly,omitempty"`
	Nullable         bool                  `json:"nullable,omitempty"`
	Discriminator    *Discriminator        `json:"discriminator,omitempty"`
	ExternalDocs     *ExternalDocs         `json:"externalDocs,omitempty"`
	Enum             []any                 `json:"enum,omitempty"`
	MultipleOf       *float64              `json:"multipleOf,omitempty"`
	Maximum          *float64              `json:"maximum,omitempty"`
	ExclusiveMaximum *bool                 `json:"exclusiveMaximum,omitempty"`
	Minimum          *float64              `json:"minimum,omitempty"`
	ExclusiveMinimum *bool                 `json:"exclusiveMinimum,omitempty"`
	Pattern          string                `json:"pattern,omitempty"`
	MaxLength        *int                  `json:"maxLength,omitempty"`
	MinLength        *int                  `json:"minLength,omitempty"`
	Items            *SchemaV30            `json:"items,omitempty"`
	MaxItems         *int                  `json:"maxItems,omitempty"`
	MinItems         *int                  `json:"minItems,omitempty"`
	UniqueItems      bool                  `json:"uniqueItems,omitempty"`
	Properties       map[string]*SchemaV30 `json:"properties,omitempty"`
	Required         []string              `json:"required,omitempty"`
	AdditionalProps  any                   `json:"additionalProperties,omitempty"` // bool or *SchemaV30
	MinProperties    *int                  `json:"minProperties,omitempty"`
	MaxProperties    *int                  `json:"maxProperties,omitempty"`
	AllOf            []*SchemaV30          `json:"allOf,omitempty"`
	AnyOf            []*SchemaV30          `json:"anyOf,omitempty"`
	OneOf            []*SchemaV30          `json:"oneOf,omitempty"`
	Not              *SchemaV30            `json:"not,omitempty"`
	Default          any                   `json:"default,omitempty"`
	Extensions       map[string]any        `json:"-"`
}

// Discriminator is the discriminator object shared by both versions.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// ExternalDocs is the external documentation object shared by both versions.
type ExternalDocs struct {
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// schema30 projects a schema to OpenAPI 3.0.4.
//
// Key transformations:
//   - Nullable: nullable: true
//   - Exclusive bounds: boolean exclusiveMinimum/Maximum flags
//   - Const: enum: [const] with a warning
//   - patternProperties, unevaluatedProperties: dropped with a warning
//   - Multiple examples: first one becomes example
func (p *projector) schema30(s *model.Schema, path string) *SchemaV30 {
	if s == nil {
		return nil
	}

	if s.Ref != "" {
		return &SchemaV30{Ref: p.ref(s.Ref)}
	}

	out := &SchemaV30{
		Title:         s.Title,
		Type:          kindToString(s.Kind),
		Format:        s.Format,
		Description:   s.Description,
		Example:       s.Example,
		Deprecated:    s.Deprecated,
		ReadOnly:      s.ReadOnly,
		WriteOnly:     s.WriteOnly,
		Nullable:      s.Nullable,
		Enum:          slices.Clone(s.Enum),
		MultipleOf:    s.MultipleOf,
		Pattern:       s.Pattern,
		MaxLength:     s.MaxLength,
		MinLength:     s.MinLength,
		MaxItems:      s.MaxItems,
		MinItems:      s.MinItems,
		UniqueItems:   s.UniqueItems,
		Required:      slices.Clone(s.Required),
		MinProperties: s.MinProperties,
		MaxProperties: s.MaxProperties,
		Default:       s.Default,
		Discriminator: discriminator(s.Discriminator),
		ExternalDocs:  externalDocs(s.ExternalDocs),
		Extensions:    copyExtensions(s.Extensions, V30),
	}

	if s.Maximum != nil {
		out.Maximum = &s.Maximum.Value
		if s.Maximum.Exclusive {
			out.ExclusiveMaximum = new(bool)
			*out.ExclusiveMaximum = true
		}
	}
	if s.Minimum != nil {
		out.Minimum = &s.Minimum.Value
		if s.Minimum.Exclusive {
			out.ExclusiveMinimum = new(bool)
			*out.ExclusiveMinimum = true
		}
	}

	out.Items = p.schema30(s.Items, path+"/items")

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*SchemaV30, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = p.schema30(v, path+"/properties/"+escapePointer(k))
		}
	}

	if s.Additional != nil {
		switch {
		case s.Additional.Schema != nil:
			out.AdditionalProps = p.schema30(s.Additional.Schema, path+"/additionalProperties")
		case s.Additional.Allow != nil:
			out.AdditionalProps = *s.Additional.Allow
		}
	}

	out.AllOf = p.list30(s.AllOf, path+"/allOf")
	out.AnyOf = p.list30(s.AnyOf, path+"/anyOf")
	out.OneOf = p.list30(s.OneOf, path+"/oneOf")
	out.Not = p.schema30(s.Not, path+"/not")

	if s.Const != nil {
		if len(out.Enum) == 0 {
			out.Enum = []any{s.Const}
			p.warn(diag.WarnDownlevelConstToEnum, path,
				"const keyword not supported in 3.0; converted to enum")
		} else {
			p.warn(diag.WarnDownlevelConstToEnumConflict, path,
				"const with enum under 3.0: kept enum, ignored const")
		}
	}

	if len(s.PatternProps) > 0 {
		p.warn(diag.WarnDownlevelPatternProperties, path,
			"patternProperties not supported in OpenAPI 3.0; dropped")
	}

	if s.Unevaluated != nil {
		p.warn(diag.WarnDownlevelUnevaluatedProperties, path,
			"unevaluatedProperties not supported in OpenAPI 3.0; dropped")
	}

	if len(s.Examples) > 0 {
		out.Example = s.Examples[0]
		if len(s.Examples) > 1 {
			p.warn(diag.WarnDownlevelMultipleExamples, path,
				"multiple examples not supported in 3.0; using first only")
		}
	}

	return out
}

func (p *projector) list30(in []*model.Schema, path string) []*SchemaV30 {
	if len(in) == 0 {
		return nil
	}
	out := make([]*SchemaV30, len(in))
	for i, s := range in {
		out[i] = p.schema30(s, path+"/"+itoa(i))
	}

	return out
}

// MarshalJSON inlines extensions.
func (s *SchemaV30) MarshalJSON() ([]byte, error) {
	type plain SchemaV30
	return marshalWithExtensions((*plain)(s), s.Extensions)
}

// kindToString converts a Kind to an OpenAPI type string.
func kindToString(k model.Kind) string {
	switch k {
	case model.KindBoolean:
		return "boolean"
	case model.KindInteger:
		return "integer"
	case model.KindNumber:
		return "number"
	case model.KindString:
		return "string"
	case model.KindObject:
		return "object"
	case model.KindArray:
		return "array"
	default:
		return ""
	}
}

func discriminator(d *model.Discriminator) *Discriminator {
	if d == nil {
		return nil
	}

	return &Discriminator{PropertyName: d.PropertyName, Mapping: maps.Clone(d.Mapping)}
}

func externalDocs(d *model.ExternalDocs) *ExternalDocs {
	if d == nil {
		return nil
	}

	return &ExternalDocs{Description: d.Description, URL: d.URL}
}
