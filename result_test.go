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

//go:build !integration

package apitype

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Ok(t *testing.T) {
	t.Parallel()

	r := Ok[int64, string](10)

	assert.True(t, r.IsOk())
	assert.False(t, r.IsErr())

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, int64(10), v)

	e, ok := r.Failure()
	assert.False(t, ok)
	assert.Empty(t, e)

	assert.Equal(t, int64(10), r.UnwrapOr(7))
	assert.Equal(t, "Ok(10)", r.String())
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	r := Err[int64]("invalid")

	assert.False(t, r.IsOk())
	assert.True(t, r.IsErr())

	v, ok := r.Value()
	assert.False(t, ok)
	assert.Zero(t, v)

	e, ok := r.Failure()
	assert.True(t, ok)
	assert.Equal(t, "invalid", e)

	assert.Equal(t, int64(7), r.UnwrapOr(7))
	assert.Equal(t, "Err(invalid)", r.String())
}

func TestResult_ZeroValueIsErr(t *testing.T) {
	t.Parallel()

	var r Result[int64, string]

	assert.True(t, r.IsErr())
	e, ok := r.Failure()
	assert.True(t, ok)
	assert.Empty(t, e)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	render := func(r Result[int64, string]) string {
		return Match(r,
			func(v int64) string { return "value " + strconv.FormatInt(v, 10) },
			func(e string) string { return "error " + e },
		)
	}

	assert.Equal(t, "value 3", render(Ok[int64, string](3)))
	assert.Equal(t, "error boom", render(Err[int64]("boom")))
}
