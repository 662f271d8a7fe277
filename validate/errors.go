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

package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation is wrapped by every [*Error]; use errors.Is to detect a
	// value that does not match its schema.
	ErrValidation = errors.New("validate: value does not match schema")

	// ErrCompile indicates the projected schema could not be compiled,
	// usually because it references a name missing from the registry.
	ErrCompile = errors.New("validate: schema compile failed")
)

// FieldError is one schema violation.
type FieldError struct {
	Path    string `json:"path"`    // JSON pointer into the value, "" for the value itself
	Code    string `json:"code"`    // "schema." plus the failing keyword path, e.g. "schema.required"
	Message string `json:"message"` // Human-readable message
}

// Error returns "path: message", or only the message at the root.
func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return e.Path + ": " + e.Message
}

// Error collects the violations of one validation.
type Error struct {
	Fields    []FieldError `json:"errors"`
	Truncated bool         `json:"truncated,omitempty"`
}

// Error joins the field errors.
func (v *Error) Error() string {
	switch len(v.Fields) {
	case 0:
		return ErrValidation.Error()
	case 1:
		return v.Fields[0].Error()
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Error())
	}
	suffix := ""
	if v.Truncated {
		suffix = " (truncated)"
	}

	return fmt.Sprintf("validation failed: %s%s", strings.Join(msgs, "; "), suffix)
}

// Unwrap returns [ErrValidation].
func (v *Error) Unwrap() error {
	return ErrValidation
}

// HTTPStatus implements rivaas.dev/errors.ErrorType.
func (v *Error) HTTPStatus() int {
	return 422 // Unprocessable Entity
}

// Code implements rivaas.dev/errors.ErrorCode.
func (v *Error) Code() string {
	return "validation_error"
}

// Details implements rivaas.dev/errors.ErrorDetails.
func (v *Error) Details() any {
	return v.Fields
}

// Has reports whether any violation is located at path.
func (v *Error) Has(path string) bool {
	for _, f := range v.Fields {
		if f.Path == path {
			return true
		}
	}

	return false
}

// HasCode reports whether any violation has code.
func (v *Error) HasCode(code string) bool {
	for _, f := range v.Fields {
		if f.Code == code {
			return true
		}
	}

	return false
}

func (v *Error) add(path, code, message string) {
	v.Fields = append(v.Fields, FieldError{Path: path, Code: code, Message: message})
}

// sort orders violations by path, then code.
func (v *Error) sort() {
	sort.SliceStable(v.Fields, func(i, j int) bool {
		if v.Fields[i].Path != v.Fields[j].Path {
			return v.Fields[i].Path < v.Fields[j].Path
		}

		return v.Fields[i].Code < v.Fields[j].Code
	})
}
