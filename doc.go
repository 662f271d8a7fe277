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

// Package apitype describes API payload types once and uses that description
// for OpenAPI schema documentation, JSON encoding and validated JSON decoding.
//
// Every payload type is represented by a [Type] value: a small capability set
// giving a stable name, a schema reference, registration of named schemas in
// a [registry.Registry], an encoder to the untyped JSON tree and a decoder
// back from it. Types compose: [SliceOf], [OptionalOf], [MapOf], [NewObject]
// and [ResultOf] build new types from existing ones without reflection.
//
// # Result
//
// [Result] holds either a success payload or a failure payload. [ResultOf]
// adapts it to the capability set. On the wire a result is an object with
// exactly one key:
//
//	Ok(10)          -> {"ok": 10}
//	Err("invalid")  -> {"err": "invalid"}
//
// The schema is an inline anyOf of two object shapes, one requiring "ok" and
// one requiring "err". No discriminator is declared: consumers tell the
// variants apart by which key is present.
//
// Decoding rejects missing input, non-object input and objects carrying
// neither key with a [*ParseError]. When both keys are present "ok" wins and
// "err" is ignored.
//
// # Quick Start
//
//	outcome := apitype.ResultOf(apitype.Int64(), apitype.String())
//
//	data, _ := apitype.Marshal(outcome, apitype.Ok[int64, string](10))
//	// data == {"ok":10}
//
//	v, err := apitype.Unmarshal(outcome, []byte(`{"err":"invalid"}`))
//	// v == apitype.Err[int64]("invalid")
//
//	reg := registry.New()
//	outcome.Register(reg)
//	schema := outcome.SchemaRef().Schema()
//
// The export package projects schemas to OpenAPI 3.0 and 3.1 documents and
// the validate package checks wire values against them.
package apitype
