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
	"slices"
	"strconv"

	"rivaas.dev/apitype/model"
)

// SchemaV31 represents an OpenAPI 3.1.x schema.
type SchemaV31 struct {
	Ref               string                `json:"$ref,omitempty"`
	Title             string                `json:"title,omitempty"`
	Type              any                   `json:"type,omitempty"` // string or []string
	Format            string                `json:"format,omitempty"`
	Description       string                `json:"description,omitempty"`
	Examples          []any                 `json:"examples,omitempty"`
	Deprecated        bool                  `json:"deprecated,omitempty"`
	ReadOnly          bool                  `json:"readOnly,omitempty"`
	WriteOnly         bool                  `json:"writeOnly,omitempty"`
	Discriminator     *Discriminator        `json:"discriminator,omitempty"`
	ExternalDocs      *ExternalDocs         `json:"externalDocs,omitempty"`
	Enum              []any                 `json:"enum,omitempty"`
	Const             any                   `json:"const,omitempty"`
	MultipleOf        *float64              `json:"multipleOf,omitempty"`
	Maximum           *float64              `json:"maximum,omitempty"`
	ExclusiveMaximum  *float64              `json:"exclusiveMaximum,omitempty"`
	Minimum           *float64              `json:"minimum,omitempty"`
	ExclusiveMinimum  *float64              `json:"exclusiveMinimum,omitempty"`
	Pattern           string                `json:"pattern,omitempty"`
	MaxLength         *int                  `json:"maxLength,omitempty"`
	MinLength         *int                  `json:"minLength,omitempty"`
	Items             *SchemaV31            `json:"items,omitempty"`
	MaxItems          *int                  `json:"maxItems,omitempty"`
	MinItems          *int                  `json:"minItems,omitempty"`
	UniqueItems       bool                  `json:"uniqueItems,omitempty"`
	Properties        map[string]*SchemaV31 `json:"properties,omitempty"`
	Required          []string              `json:"required,omitempty"`
	AdditionalProps   any                   `json:"additionalProperties,omitempty"` // bool or *SchemaV31
	PatternProperties map[string]*SchemaV31 `json:"patternProperties,omitempty"`
	UnevaluatedProps  *SchemaV31            `json:"unevaluatedProperties,omitempty"`
	MinProperties     *int                  `json:"minProperties,omitempty"`
	MaxProperties     *int                  `json:"maxProperties,omitempty"`
	AllOf             []*SchemaV31          `json:"allOf,omitempty"`
	AnyOf             []*SchemaV31          `json:"anyOf,omitempty"`
	OneOf             []*SchemaV31          `json:"oneOf,omitempty"`
	Not               *SchemaV31            `json:"not,omitempty"`
	Default           any                   `json:"default,omitempty"`
	Extensions        map[string]any        `json:"-"`
}

// schema31 projects a schema to OpenAPI 3.1.x. Every keyword is native:
// nullable becomes a type union with "null", exclusive bounds are numeric
// and a single example becomes examples: [example].
func (p *projector) schema31(s *model.Schema, path string) *SchemaV31 {
	if s == nil {
		return nil
	}

	if s.Ref != "" {
		return &SchemaV31{Ref: p.ref(s.Ref)}
	}

	out := &SchemaV31{
		Title:         s.Title,
		Format:        s.Format,
		Description:   s.Description,
		Examples:      slices.Clone(s.Examples),
		Deprecated:    s.Deprecated,
		ReadOnly:      s.ReadOnly,
		WriteOnly:     s.WriteOnly,
		Enum:          slices.Clone(s.Enum),
		Const:         s.Const,
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
		Extensions:    copyExtensions(s.Extensions, V31),
	}

	if t := kindToString(s.Kind); t != "" {
		if s.Nullable {
			out.Type = []string{t, "null"}
		} else {
			out.Type = t
		}
	}

	if s.Maximum != nil {
		if s.Maximum.Exclusive {
			out.ExclusiveMaximum = &s.Maximum.Value
		} else {
			out.Maximum = &s.Maximum.Value
		}
	}
	if s.Minimum != nil {
		if s.Minimum.Exclusive {
			out.ExclusiveMinimum = &s.Minimum.Value
		} else {
			out.Minimum = &s.Minimum.Value
		}
	}

	out.Items = p.schema31(s.Items, path+"/items")

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*SchemaV31, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = p.schema31(v, path+"/properties/"+escapePointer(k))
		}
	}

	if s.Additional != nil {
		switch {
		case s.Additional.Schema != nil:
			out.AdditionalProps = p.schema31(s.Additional.Schema, path+"/additionalProperties")
		case s.Additional.Allow != nil:
			out.AdditionalProps = *s.Additional.Allow
		}
	}

	if len(s.PatternProps) > 0 {
		out.PatternProperties = make(map[string]*SchemaV31, len(s.PatternProps))
		for rx, v := range s.PatternProps {
			out.PatternProperties[rx] = p.schema31(v, path+"/patternProperties/"+escapePointer(rx))
		}
	}
	out.UnevaluatedProps = p.schema31(s.Unevaluated, path+"/unevaluatedProperties")

	out.AllOf = p.list31(s.AllOf, path+"/allOf")
	out.AnyOf = p.list31(s.AnyOf, path+"/anyOf")
	out.OneOf = p.list31(s.OneOf, path+"/oneOf")
	out.Not = p.schema31(s.Not, path+"/not")

	if len(out.Examples) == 0 && s.Example != nil {
		out.Examples = []any{s.Example}
	}

	return out
}

func (p *projector) list31(in []*model.Schema, path string) []*SchemaV31 {
	if len(in) == 0 {
		return nil
	}
	out := make([]*SchemaV31, len(in))
	for i, s := range in {
		out[i] = p.schema31(s, path+"/"+itoa(i))
	}

	return out
}

// MarshalJSON inlines extensions.
func (s *SchemaV31) MarshalJSON() ([]byte, error) {
	type plain SchemaV31
	return marshalWithExtensions((*plain)(s), s.Extensions)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
