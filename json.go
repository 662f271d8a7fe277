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
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Marshal encodes v with t and renders the tree as JSON. A value t reports
// as absent is rendered as null.
func Marshal[T any](t Type[T], v T) ([]byte, error) {
	tree, ok := t.Encode(v)
	if !ok {
		tree = nil
	}

	b, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("apitype: marshal %q: %w", t.Name(), err)
	}

	return b, nil
}

// Unmarshal parses data and decodes it with t. Empty or whitespace-only
// input is treated as an absent value. Numbers are kept as json.Number so
// 64-bit integers survive.
func Unmarshal[T any](t Type[T], data []byte) (T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return t.Decode(Absent())
	}

	tree, err := parseTree(data)
	if err != nil {
		var zero T
		return zero, newParseError(t.Name(), KindSyntax, err.Error(), nil)
	}

	return t.Decode(Present(tree))
}

func parseTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, errors.New("unexpected data after top-level value")
	}

	return tree, nil
}
