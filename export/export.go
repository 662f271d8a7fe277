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

// Package export projects registered schemas to OpenAPI 3.0.x and 3.1.x
// documents, down-leveling 3.1-only keywords when targeting 3.0.
package export

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"rivaas.dev/apitype/diag"
	"rivaas.dev/apitype/model"
	"rivaas.dev/apitype/registry"
)

// Version represents an OpenAPI specification version.
type Version string

const (
	// V30 represents OpenAPI 3.0.4.
	V30 Version = "3.0.4"
	// V31 represents OpenAPI 3.1.2.
	V31 Version = "3.1.2"
)

// DefaultRefPrefix is where component schemas live in an OpenAPI document.
const DefaultRefPrefix = "#/components/schemas/"

// Export errors.
var (
	// ErrUnknownVersion indicates Config.Version is neither V30 nor V31.
	ErrUnknownVersion = errors.New("export: unknown OpenAPI version")

	// ErrStrictDownlevel indicates a 3.1-only keyword could not be expressed
	// in 3.0 while Config.StrictDownlevel was set.
	ErrStrictDownlevel = errors.New("export: 3.1-only feature used with 3.0 target")

	// ErrNilRegistry indicates Components was called without a registry.
	ErrNilRegistry = errors.New("export: nil registry")
)

// Config configures schema projection.
type Config struct {
	// Version is the target OpenAPI version.
	Version Version

	// StrictDownlevel causes projection to error (instead of warn) when
	// 3.1-only features are used with a 3.0 target.
	StrictDownlevel bool

	// RefPrefix is prepended to registered names when emitting $ref.
	// Empty means DefaultRefPrefix.
	RefPrefix string
}

func (c Config) refPrefix() string {
	if c.RefPrefix == "" {
		return DefaultRefPrefix
	}

	return c.RefPrefix
}

// Result contains the output of a components export.
type Result struct {
	// JSON is the {"components":{"schemas":...}} document as indented JSON.
	JSON []byte

	// YAML is the same document as YAML.
	YAML []byte

	// Warnings lists keywords lost while down-leveling to 3.0.
	Warnings diag.Warnings
}

// projector carries projection state shared by both versions.
type projector struct {
	cfg   Config
	warns diag.Warnings
	err   error
}

func newProjector(cfg Config) (*projector, error) {
	if cfg.Version != V30 && cfg.Version != V31 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, cfg.Version)
	}

	return &projector{cfg: cfg}, nil
}

// warn records a downlevel loss. In strict mode the first loss also
// becomes the projection error.
func (p *projector) warn(code diag.WarningCode, path, msg string) {
	p.warns = append(p.warns, diag.New(code, path, msg))
	if p.cfg.StrictDownlevel && p.err == nil {
		p.err = fmt.Errorf("%w: %s at %s", ErrStrictDownlevel, code, path)
	}
}

func (p *projector) ref(name string) string {
	return p.cfg.refPrefix() + url.PathEscape(escapePointer(name))
}

func (p *projector) schema(s *model.Schema, path string) any {
	if p.cfg.Version == V30 {
		return p.schema30(s, path)
	}

	return p.schema31(s, path)
}

// Schema projects a single schema. The result is a *SchemaV30 or a
// *SchemaV31 depending on cfg.Version.
func Schema(s *model.Schema, cfg Config) (any, diag.Warnings, error) {
	p, err := newProjector(cfg)
	if err != nil {
		return nil, nil, err
	}

	out := p.schema(s, "#")
	if p.err != nil {
		return nil, p.warns, p.err
	}

	return out, p.warns, nil
}

// Schemas projects every schema held by reg, keyed by registered name.
func Schemas(reg *registry.Registry, cfg Config) (map[string]any, diag.Warnings, error) {
	if reg == nil {
		return nil, nil, ErrNilRegistry
	}
	p, err := newProjector(cfg)
	if err != nil {
		return nil, nil, err
	}

	out := make(map[string]any, reg.Len())
	for _, name := range reg.Names() {
		s, _ := reg.Lookup(name)
		out[name] = p.schema(s, "#/components/schemas/"+escapePointer(name))
	}
	if p.err != nil {
		return nil, p.warns, p.err
	}

	return out, p.warns, nil
}

// Components renders every schema held by reg as an OpenAPI components
// document in JSON and YAML.
func Components(reg *registry.Registry, cfg Config) (Result, error) {
	schemas, warns, err := Schemas(reg, cfg)
	if err != nil {
		return Result{Warnings: warns}, err
	}

	doc := map[string]any{
		"components": map[string]any{"schemas": schemas},
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Result{Warnings: warns}, fmt.Errorf("failed to marshal components to JSON: %w", err)
	}

	yamlBytes, err := toYAML(jsonBytes)
	if err != nil {
		return Result{Warnings: warns}, fmt.Errorf("failed to marshal components to YAML: %w", err)
	}

	return Result{
		JSON:     jsonBytes,
		YAML:     yamlBytes,
		Warnings: warns,
	}, nil
}

// toYAML re-encodes JSON so the YAML output uses the same keys, including
// inlined extensions.
func toYAML(jsonBytes []byte) ([]byte, error) {
	var tree any
	if err := json.Unmarshal(jsonBytes, &tree); err != nil {
		return nil, err
	}

	return yaml.Marshal(tree)
}
