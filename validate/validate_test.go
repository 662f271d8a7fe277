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

package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apitype"
	"rivaas.dev/apitype/model"
	"rivaas.dev/apitype/registry"
	"rivaas.dev/apitype/validate"
)

type account struct {
	ID   int64
	Name string
}

func accountType() *apitype.Object[account] {
	accounts := apitype.NewObject[account]("Account")
	apitype.AddField(accounts, "id", apitype.Int64(), func(a *account) *int64 { return &a.ID })
	apitype.AddField(accounts, "name", apitype.String(), func(a *account) *string { return &a.Name })

	return accounts
}

func TestValidate_EncodedResultsMatchSchema(t *testing.T) {
	t.Parallel()

	ty := apitype.ResultOf[account, string](accountType(), apitype.String())
	reg := registry.New()
	ty.Register(reg)

	engine := validate.New()

	for _, r := range []apitype.Result[account, string]{
		apitype.Ok[account, string](account{ID: 1, Name: "main"}),
		apitype.Err[account]("not found"),
	} {
		tree, ok := ty.Encode(r)
		require.True(t, ok)
		require.NoError(t, engine.Validate(context.Background(), reg, ty.SchemaRef(), tree), r.String())
	}
}

func TestValidate_RejectsMalformedResults(t *testing.T) {
	t.Parallel()

	ty := apitype.ResultOf(apitype.Int64(), apitype.String())
	engine := validate.New()

	tests := []struct {
		name  string
		input string
	}{
		{name: "neither key", input: `{"foo":1}`},
		{name: "not an object", input: `42`},
		{name: "wrong ok payload", input: `{"ok":"ten"}`},
		{name: "wrong err payload", input: `{"err":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := engine.ValidateJSON(context.Background(), registry.New(), ty.SchemaRef(), []byte(tt.input))
			require.ErrorIs(t, err, validate.ErrValidation)

			var verr *validate.Error
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields)
		})
	}
}

func TestValidate_BothKeysMatchSchema(t *testing.T) {
	t.Parallel()

	ty := apitype.ResultOf(apitype.Int64(), apitype.String())

	err := validate.New().ValidateJSON(context.Background(), registry.New(), ty.SchemaRef(), []byte(`{"ok":1,"err":"x"}`))
	require.NoError(t, err)
}

func TestValidate_FieldPaths(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	accounts := accountType()
	accounts.Register(reg)

	err := validate.New().ValidateJSON(context.Background(), reg, accounts.SchemaRef(), []byte(`{"id":"x"}`))

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("/id"), verr.Error())
	assert.True(t, verr.HasCode("schema.required"), verr.Error())
}

func TestValidate_MaxErrors(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	accounts := accountType()
	accounts.Register(reg)

	err := validate.New(validate.WithMaxErrors(1)).
		ValidateJSON(context.Background(), reg, accounts.SchemaRef(), []byte(`{"id":"x","name":3}`))

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 1)
	assert.True(t, verr.Truncated)
}

func TestValidate_FormatAssertions(t *testing.T) {
	t.Parallel()

	ty := apitype.ResultOf(apitype.Int32(), apitype.String())
	data := []byte(`{"ok":3000000000}`)

	err := validate.New().ValidateJSON(context.Background(), registry.New(), ty.SchemaRef(), data)
	require.NoError(t, err, "formats are annotations by default")

	err = validate.New(validate.WithFormatAssertions()).
		ValidateJSON(context.Background(), registry.New(), ty.SchemaRef(), data)
	require.ErrorIs(t, err, validate.ErrValidation)

	err = validate.New(validate.WithFormatAssertions()).
		ValidateJSON(context.Background(), registry.New(), ty.SchemaRef(), []byte(`{"ok":7}`))
	require.NoError(t, err)
}

func TestValidate_UnknownReference(t *testing.T) {
	t.Parallel()

	err := validate.New().Validate(context.Background(), registry.New(), model.Reference("Missing"), map[string]any{})
	require.ErrorIs(t, err, validate.ErrCompile)
}

func TestValidateJSON_RejectsTrailingData(t *testing.T) {
	t.Parallel()

	ty := apitype.ResultOf(apitype.Int64(), apitype.String())
	reg := registry.New()
	ty.Register(reg)

	engine := validate.New()
	require.NoError(t, engine.ValidateJSON(context.Background(), reg, ty.SchemaRef(), []byte(`{"ok":1} `)))

	for _, in := range []string{`{"ok":1} garbage`, `{"ok":1} {"err":"x"}`} {
		err := engine.ValidateJSON(context.Background(), reg, ty.SchemaRef(), []byte(in))
		require.Error(t, err, in)
		assert.NotErrorIs(t, err, validate.ErrValidation, in)
		assert.Contains(t, err.Error(), "unexpected data after top-level value", in)
	}
}

func TestValidate_NamesNeedingURIEscapes(t *testing.T) {
	t.Parallel()

	type pct struct {
		ID int64
	}

	odd := apitype.NewObject[pct]("a%b c")
	apitype.AddField(odd, "id", apitype.Int64(), func(p *pct) *int64 { return &p.ID })

	ty := apitype.ResultOf[pct, string](odd, apitype.String())
	reg := registry.New()
	ty.Register(reg)

	engine := validate.New()
	require.NoError(t, engine.ValidateJSON(context.Background(), reg, ty.SchemaRef(), []byte(`{"ok":{"id":1}}`)))

	err := engine.ValidateJSON(context.Background(), reg, ty.SchemaRef(), []byte(`{"ok":{"id":"x"}}`))
	require.ErrorIs(t, err, validate.ErrValidation)
}

func TestValidate_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := validate.New().Validate(ctx, registry.New(), apitype.Int64().SchemaRef(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestError_Interfaces(t *testing.T) {
	t.Parallel()

	err := &validate.Error{Fields: []validate.FieldError{
		{Path: "/ok", Code: "schema.type", Message: "got string, want integer"},
		{Code: "schema.required", Message: "missing property"},
	}}

	assert.Equal(t, 422, err.HTTPStatus())
	assert.Equal(t, "validation_error", err.Code())
	assert.Len(t, err.Details(), 2)
	assert.Equal(t, "validation failed: /ok: got string, want integer; missing property", err.Error())
	assert.ErrorIs(t, err, validate.ErrValidation)
}
