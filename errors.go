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
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Decode errors. A [*ParseError] unwraps to the sentinel matching its kind,
// so callers can use errors.Is.
var (
	// ErrMissingInput indicates a required value was absent.
	ErrMissingInput = errors.New("apitype: missing input")

	// ErrInvalidShape indicates a value was present but not a JSON object.
	ErrInvalidShape = errors.New("apitype: invalid shape")

	// ErrUnrecognizedShape indicates an object matched none of the expected shapes.
	ErrUnrecognizedShape = errors.New("apitype: unrecognized shape")

	// ErrPayloadDecode indicates a nested payload failed to decode.
	ErrPayloadDecode = errors.New("apitype: payload decode failed")

	// ErrInvalidType indicates a scalar or array had the wrong JSON type or range.
	ErrInvalidType = errors.New("apitype: invalid type")

	// ErrSyntax indicates the input bytes were not valid JSON.
	ErrSyntax = errors.New("apitype: invalid JSON")
)

// ErrorKind classifies a [ParseError].
type ErrorKind uint8

const (
	KindMissingInput ErrorKind = iota + 1
	KindInvalidShape
	KindUnrecognizedShape
	KindPayload
	KindInvalidType
	KindSyntax
)

// String returns the stable code of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindMissingInput:
		return "missing_input"
	case KindInvalidShape:
		return "invalid_shape"
	case KindUnrecognizedShape:
		return "unrecognized_shape"
	case KindPayload:
		return "payload_decode"
	case KindInvalidType:
		return "invalid_type"
	case KindSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMissingInput:
		return ErrMissingInput
	case KindInvalidShape:
		return ErrInvalidShape
	case KindUnrecognizedShape:
		return ErrUnrecognizedShape
	case KindPayload:
		return ErrPayloadDecode
	case KindInvalidType:
		return ErrInvalidType
	case KindSyntax:
		return ErrSyntax
	default:
		return nil
	}
}

// ParseError is a recoverable decode failure.
//
// Path is a JSON pointer to the failing value relative to the value passed to
// Decode; it is empty for the value itself. Types that decode nested values
// (objects, arrays, maps) prefix the path of their children's errors. A
// result does not: a failing payload is reported with its message only.
//
// ParseError implements the optional rivaas.dev/errors interfaces, so it
// renders as a 422 response with code and details.
type ParseError struct {
	Kind    ErrorKind
	Path    string
	Message string

	// Value is the offending JSON value when it is useful for diagnostics.
	Value any
}

// Error returns "path: message", or only the message at the root.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return e.Path + ": " + e.Message
}

// Unwrap returns the sentinel error matching Kind.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

// HTTPStatus implements rivaas.dev/errors.ErrorType.
func (e *ParseError) HTTPStatus() int {
	return 422 // Unprocessable Entity
}

// Code implements rivaas.dev/errors.ErrorCode.
func (e *ParseError) Code() string {
	return e.Kind.String()
}

// Details implements rivaas.dev/errors.ErrorDetails.
func (e *ParseError) Details() any {
	d := map[string]any{
		"kind":    e.Kind.String(),
		"message": e.Message,
	}
	if e.Path != "" {
		d["path"] = e.Path
	}

	return d
}

func newParseError(typeName string, kind ErrorKind, msg string, value any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf("failed to parse %q: %s", typeName, msg),
		Value:   value,
	}
}

func missingInput(typeName string) *ParseError {
	return newParseError(typeName, KindMissingInput, "expected input", nil)
}

func invalidType(typeName string, value any) *ParseError {
	return newParseError(typeName, KindInvalidType,
		fmt.Sprintf("expected type %q, found %s", typeName, describeValue(value)), value)
}

// payloadError carries the message of a failed payload decode and nothing
// else; which variant failed is not recorded.
func payloadError(err error) *ParseError {
	return &ParseError{Kind: KindPayload, Message: err.Error()}
}

// withPath prefixes err's path with segment. Errors that are not
// *ParseError are converted so the location survives.
func withPath(err error, segment string) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return &ParseError{Kind: KindPayload, Path: "/" + escapePointer(segment), Message: err.Error()}
	}
	out := *pe
	out.Path = "/" + escapePointer(segment) + pe.Path

	return &out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string {
	return pointerEscaper.Replace(s)
}

// describeValue renders v for error messages: JSON type names for
// containers, compact JSON for scalars.
func describeValue(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}

	return renderValue(v)
}

func renderValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(b)
}
