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
	"math"
	"strconv"

	"rivaas.dev/apitype/model"
	"rivaas.dev/apitype/registry"
)

// scalar implements Type for JSON scalars. Scalars are always inline and
// register nothing.
type scalar[T any] struct {
	name   string
	schema model.Schema
	decode func(v any) (T, bool)
	encode func(v T) any
}

func (s scalar[T]) Name() string {
	return s.name
}

func (s scalar[T]) SchemaRef() model.SchemaRef {
	return model.InlineRef(s.schema.Clone())
}

func (scalar[T]) Register(*registry.Registry) {}

func (scalar[T]) IsRequired() bool {
	return true
}

func (s scalar[T]) Encode(v T) (any, bool) {
	return s.encode(v), true
}

func (s scalar[T]) Decode(in Field) (T, error) {
	var zero T

	v, ok := in.Get()
	if !ok {
		return zero, missingInput(s.name)
	}
	out, ok := s.decode(v)
	if !ok {
		return zero, invalidType(s.name, v)
	}

	return out, nil
}

// Int64 returns the type of 64-bit signed integers.
func Int64() Type[int64] {
	return scalar[int64]{
		name:   "integer_int64",
		schema: model.Schema{Kind: model.KindInteger, Format: "int64"},
		decode: func(v any) (int64, bool) { return toInt64(v, math.MinInt64, math.MaxInt64) },
		encode: func(v int64) any { return v },
	}
}

// Int32 returns the type of 32-bit signed integers. Values outside the
// int32 range are rejected.
func Int32() Type[int32] {
	return scalar[int32]{
		name:   "integer_int32",
		schema: model.Schema{Kind: model.KindInteger, Format: "int32"},
		decode: func(v any) (int32, bool) {
			n, ok := toInt64(v, math.MinInt32, math.MaxInt32)
			return int32(n), ok
		},
		encode: func(v int32) any { return v },
	}
}

// Uint64 returns the type of 64-bit unsigned integers.
func Uint64() Type[uint64] {
	return scalar[uint64]{
		name: "integer_uint64",
		schema: model.Schema{
			Kind:    model.KindInteger,
			Format:  "uint64",
			Minimum: &model.Bound{Value: 0},
		},
		decode: toUint64,
		encode: func(v uint64) any { return v },
	}
}

// Float64 returns the type of double precision numbers.
func Float64() Type[float64] {
	return scalar[float64]{
		name:   "number_double",
		schema: model.Schema{Kind: model.KindNumber, Format: "double"},
		decode: toFloat64,
		encode: func(v float64) any { return v },
	}
}

// String returns the type of strings.
func String() Type[string] {
	return scalar[string]{
		name:   "string",
		schema: model.Schema{Kind: model.KindString},
		decode: func(v any) (string, bool) {
			s, ok := v.(string)
			return s, ok
		},
		encode: func(v string) any { return v },
	}
}

// Bool returns the type of booleans.
func Bool() Type[bool] {
	return scalar[bool]{
		name:   "boolean",
		schema: model.Schema{Kind: model.KindBoolean},
		decode: func(v any) (bool, bool) {
			b, ok := v.(bool)
			return b, ok
		},
		encode: func(v bool) any { return v },
	}
}

// Any returns the type of arbitrary JSON values, passed through unchanged.
// JSON null is accepted; absence is not.
func Any() Type[any] {
	return scalar[any]{
		name:   "any",
		schema: model.Schema{},
		decode: func(v any) (any, bool) { return v, true },
		encode: func(v any) any { return v },
	}
}

// number is satisfied by json.Number from both encoding/json and
// github.com/goccy/go-json.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

func toInt64(v any, lo, hi int64) (int64, bool) {
	var n int64

	switch x := v.(type) {
	case number:
		i, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return 0, false
			}
			return floatToInt64(f, lo, hi)
		}
		n = i
	case float64:
		return floatToInt64(x, lo, hi)
	case float32:
		return floatToInt64(float64(x), lo, hi)
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		n = int64(x)
	default:
		return 0, false
	}

	if n < lo || n > hi {
		return 0, false
	}

	return n, true
}

func floatToInt64(f float64, lo, hi int64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, so the upper check is >=.
	if f < float64(lo) || f >= float64(hi)+1 {
		return 0, false
	}

	return int64(f), true
}

func toUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case number:
		u, err := strconv.ParseUint(x.String(), 10, 64)
		if err == nil {
			return u, true
		}
		f, ferr := x.Float64()
		if ferr != nil {
			return 0, false
		}
		return floatToUint64(f)
	case float64:
		return floatToUint64(x)
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	}

	n, ok := toInt64(v, 0, math.MaxInt64)
	return uint64(n), ok
}

func floatToUint64(f float64) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
		return 0, false
	}

	return uint64(f), true
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}

	n, ok := toInt64(v, math.MinInt64, math.MaxInt64)
	return float64(n), ok
}
