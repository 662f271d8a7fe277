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

package diag

import (
	"fmt"
	"strings"
)

// WarningCode identifies a specific warning type.
type WarningCode string

// String returns the code as a string.
func (c WarningCode) String() string {
	return string(c)
}

// Category returns the code's category, derived from its prefix.
func (c WarningCode) Category() WarningCategory {
	if strings.HasPrefix(string(c), "DOWNLEVEL_") {
		return CategoryDownlevel
	}

	return CategoryUnknown
}

// Downlevel warnings: 3.1 schema keywords that 3.0 cannot express.
const (
	// WarnDownlevelConstToEnum indicates const was rewritten as enum: [const].
	WarnDownlevelConstToEnum WarningCode = "DOWNLEVEL_CONST_TO_ENUM"

	// WarnDownlevelConstToEnumConflict indicates const conflicted with an
	// existing enum and the enum was kept.
	WarnDownlevelConstToEnumConflict WarningCode = "DOWNLEVEL_CONST_TO_ENUM_CONFLICT"

	// WarnDownlevelPatternProperties indicates patternProperties was dropped.
	WarnDownlevelPatternProperties WarningCode = "DOWNLEVEL_PATTERN_PROPERTIES"

	// WarnDownlevelUnevaluatedProperties indicates unevaluatedProperties was dropped.
	WarnDownlevelUnevaluatedProperties WarningCode = "DOWNLEVEL_UNEVALUATED_PROPERTIES"

	// WarnDownlevelMultipleExamples indicates examples were collapsed to one example.
	WarnDownlevelMultipleExamples WarningCode = "DOWNLEVEL_MULTIPLE_EXAMPLES"
)

// WarningCategory groups related warning types.
type WarningCategory string

const (
	// CategoryUnknown for unrecognized warning codes.
	CategoryUnknown WarningCategory = "unknown"

	// CategoryDownlevel for 3.1 → 3.0 conversion losses.
	// The document is still valid, just less precise.
	CategoryDownlevel WarningCategory = "downlevel"
)

// String returns the category as a string.
func (c WarningCategory) String() string {
	return string(c)
}

// Warning is one advisory finding. Path is a JSON pointer into the exported
// document, e.g. "#/components/schemas/User/properties/kind".
type Warning struct {
	Code    WarningCode
	Path    string
	Message string
}

// New returns a Warning.
func New(code WarningCode, path, message string) Warning {
	return Warning{Code: code, Path: path, Message: message}
}

// Category returns the category of the warning's code.
func (w Warning) Category() WarningCategory {
	return w.Code.Category()
}

// String renders the warning as "[category] CODE at path: message".
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s at %s: %s", w.Category(), w.Code, w.Path, w.Message)
}

// Warnings is a collection of Warning with helper methods.
type Warnings []Warning

// Has returns true if any warning matches code.
func (ws Warnings) Has(code WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}

	return false
}

// HasCategory returns true if any warning is in cat.
func (ws Warnings) HasCategory(cat WarningCategory) bool {
	for _, w := range ws {
		if w.Category() == cat {
			return true
		}
	}

	return false
}

// Filter returns the warnings matching any of codes.
func (ws Warnings) Filter(codes ...WarningCode) Warnings {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[WarningCode]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}

	var out Warnings
	for _, w := range ws {
		if _, ok := set[w.Code]; ok {
			out = append(out, w)
		}
	}

	return out
}

// FilterCategory returns the warnings in cat.
func (ws Warnings) FilterCategory(cat WarningCategory) Warnings {
	var out Warnings
	for _, w := range ws {
		if w.Category() == cat {
			out = append(out, w)
		}
	}

	return out
}

// Codes returns the unique codes in order of first appearance.
func (ws Warnings) Codes() []WarningCode {
	seen := make(map[WarningCode]struct{}, len(ws))
	codes := make([]WarningCode, 0, len(ws))
	for _, w := range ws {
		if _, ok := seen[w.Code]; !ok {
			seen[w.Code] = struct{}{}
			codes = append(codes, w.Code)
		}
	}

	return codes
}

// String returns a formatted listing of all warnings.
func (ws Warnings) String() string {
	if len(ws) == 0 {
		return "no warnings"
	}
	var s strings.Builder
	fmt.Fprintf(&s, "%d warning(s):", len(ws))
	for i, w := range ws {
		fmt.Fprintf(&s, "\n  [%d] %s", i+1, w)
	}

	return s.String()
}
