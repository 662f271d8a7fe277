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

// Package registry holds the named component schemas collected while
// documentation is generated.
//
// Types register themselves by stable name. Registration is idempotent: the
// first registration of a name wins and later ones are ignored, so composite
// types can delegate to their parts without tracking what was already seen.
//
// A Registry is not safe for concurrent use. One documentation pass owns one
// Registry; independent passes use independent registries.
package registry

import (
	"log/slog"
	"maps"
	"slices"

	"rivaas.dev/apitype/model"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration debug records.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry maps stable type names to component schemas.
type Registry struct {
	schemas map[string]*model.Schema
	logger  *slog.Logger
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		schemas: make(map[string]*model.Schema),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create registers the schema built by build under name unless name is
// already present.
//
// A placeholder is stored before build runs, so a type that refers to
// itself (directly or through its fields) sees its own name as registered
// and stops recursing. build receives the registry so it can register the
// types it refers to.
func (r *Registry) Create(name string, build func(*Registry) *model.Schema) {
	if _, ok := r.schemas[name]; ok {
		r.logger.Debug("schema already registered", "name", name)
		return
	}

	r.schemas[name] = &model.Schema{}
	s := build(r)
	if s == nil {
		s = &model.Schema{}
	}
	r.schemas[name] = s

	r.logger.Debug("schema registered", "name", name, "total", len(r.schemas))
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*model.Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.schemas))
}

// Schemas returns a shallow copy of the name to schema map.
func (r *Registry) Schemas() map[string]*model.Schema {
	return maps.Clone(r.schemas)
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	return len(r.schemas)
}
