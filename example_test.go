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

package apitype_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rivaas.dev/apitype"
	"rivaas.dev/apitype/export"
	"rivaas.dev/apitype/registry"
	"rivaas.dev/apitype/validate"
)

// ExampleResultOf demonstrates the wire format of a result.
func ExampleResultOf() {
	ty := apitype.ResultOf(apitype.Int64(), apitype.String())

	ok, err := apitype.Marshal(ty, apitype.Ok[int64, string](42))
	if err != nil {
		log.Fatal(err)
	}
	failed, err := apitype.Marshal(ty, apitype.Err[int64]("not found"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(ty.Name())
	fmt.Println(string(ok))
	fmt.Println(string(failed))
	// Output:
	// result<integer_int64, string>
	// {"ok":42}
	// {"err":"not found"}
}

// ExampleUnmarshal demonstrates decoding and the errors it reports.
func ExampleUnmarshal() {
	ty := apitype.ResultOf(apitype.Int64(), apitype.String())

	r, err := apitype.Unmarshal(ty, []byte(`{"ok":7}`))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(r.UnwrapOr(0))

	_, err = apitype.Unmarshal(ty, []byte(`{"foo":1}`))
	fmt.Println(errors.Is(err, apitype.ErrUnrecognizedShape))
	fmt.Println(err)
	// Output:
	// 7
	// true
	// failed to parse "result<integer_int64, string>": expected an object with key "ok" or "err", found {"foo":1}
}

// ExampleMatch demonstrates branching on a result.
func ExampleMatch() {
	r := apitype.Err[int64]("quota exceeded")

	fmt.Println(apitype.Match(r,
		func(v int64) string { return fmt.Sprint("value ", v) },
		func(e string) string { return "error " + e },
	))
	// Output: error quota exceeded
}

type exampleUser struct {
	ID   int64
	Name string
}

// Example_components demonstrates exporting and validating against registered schemas.
func Example_components() {
	users := apitype.NewObject[exampleUser]("User")
	apitype.AddField(users, "id", apitype.Int64(), func(u *exampleUser) *int64 { return &u.ID })
	apitype.AddField(users, "name", apitype.String(), func(u *exampleUser) *string { return &u.Name })

	lookup := apitype.ResultOf[exampleUser, string](users, apitype.String())

	reg := registry.New()
	lookup.Register(reg)

	res, err := export.Components(reg, export.Config{Version: export.V31})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reg.Names(), len(res.Warnings))

	err = validate.New().ValidateJSON(context.Background(), reg, lookup.SchemaRef(), []byte(`{"ok":{"id":1}}`))
	fmt.Println(errors.Is(err, validate.ErrValidation))
	// Output:
	// [User] 0
	// true
}
