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

import "fmt"

// Result holds either a success payload of type T or a failure payload of
// type E, never both.
//
// Build values with [Ok] and [Err]. The zero value is a failure holding the
// zero E.
type Result[T, E any] struct {
	ok    bool
	value T
	err   E
}

// Ok returns a successful result holding v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: true, value: v}
}

// Err returns a failed result holding e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk reports whether r holds a success payload.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// IsErr reports whether r holds a failure payload.
func (r Result[T, E]) IsErr() bool {
	return !r.ok
}

// Value returns the success payload and true, or the zero T and false.
func (r Result[T, E]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}

	return r.value, true
}

// Failure returns the failure payload and true, or the zero E and false.
func (r Result[T, E]) Failure() (E, bool) {
	if r.ok {
		var zero E
		return zero, false
	}

	return r.err, true
}

// UnwrapOr returns the success payload, or def for a failure.
func (r Result[T, E]) UnwrapOr(def T) T {
	if r.ok {
		return r.value
	}

	return def
}

// String renders the result as Ok(v) or Err(e).
func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}

	return fmt.Sprintf("Err(%v)", r.err)
}

// Match calls onOk or onErr with the payload of r and returns its result.
func Match[T, E, R any](r Result[T, E], onOk func(T) R, onErr func(E) R) R {
	if r.ok {
		return onOk(r.value)
	}

	return onErr(r.err)
}
