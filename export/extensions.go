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
	"strings"

	"github.com/goccy/go-json"
)

// validExtensionKey reports whether key may appear as an extension.
// Keys must start with "x-"; 3.1 reserves "x-oai-" and "x-oas-".
func validExtensionKey(key string, version Version) bool {
	if !strings.HasPrefix(key, "x-") {
		return false
	}
	if version == V31 && (strings.HasPrefix(key, "x-oai-") || strings.HasPrefix(key, "x-oas-")) {
		return false
	}

	return true
}

// copyExtensions returns the valid extensions of in, or nil if none remain.
// Invalid keys are dropped silently.
func copyExtensions(in map[string]any, version Version) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if validExtensionKey(k, version) {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// marshalWithExtensions marshals v and inlines extensions at the top level.
// v must not implement json.Marshaler itself, or this recurses.
func marshalWithExtensions(v any, extensions map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		return data, nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	maps.Copy(m, extensions)

	return json.Marshal(m)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string {
	return pointerEscaper.Replace(s)
}
