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

//go:build integration

package apitype_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	rerrors "rivaas.dev/errors"

	"rivaas.dev/apitype"
	"rivaas.dev/apitype/export"
	"rivaas.dev/apitype/registry"
	"rivaas.dev/apitype/validate"
)

type order struct {
	ID      int64
	Items   []string
	Payment apitype.Result[receipt, string]
}

type receipt struct {
	Amount float64
	Ref    *string
}

func receiptType() *apitype.Object[receipt] {
	receipts := apitype.NewObject[receipt]("Receipt", apitype.WithDescription("Settled payment"))
	apitype.AddField(receipts, "amount", apitype.Float64(), func(r *receipt) *float64 { return &r.Amount })
	apitype.AddField(receipts, "ref", apitype.OptionalOf(apitype.String()), func(r *receipt) **string { return &r.Ref })

	return receipts
}

func orderType() *apitype.Object[order] {
	orders := apitype.NewObject[order]("Order")
	apitype.AddField(orders, "id", apitype.Int64(), func(o *order) *int64 { return &o.ID })
	apitype.AddField(orders, "items", apitype.SliceOf(apitype.String()), func(o *order) *[]string { return &o.Items })
	apitype.AddField(orders, "payment", apitype.ResultOf[receipt, string](receiptType(), apitype.String()),
		func(o *order) *apitype.Result[receipt, string] { return &o.Payment })

	return orders
}

var _ = Describe("APIType Integration", Label("integration"), func() {
	var (
		orders *apitype.Object[order]
		reg    *registry.Registry
	)

	BeforeEach(func() {
		orders = orderType()
		reg = registry.New()
		orders.Register(reg)
	})

	Describe("Schema Registration", func() {
		It("should register the object and its result payload", func() {
			Expect(reg.Names()).To(Equal([]string{"Order", "Receipt"}))
		})

		It("should stay stable across repeated registration", func() {
			before := reg.Schemas()
			orders.Register(reg)
			apitype.ResultOf[receipt, string](receiptType(), apitype.String()).Register(reg)

			Expect(reg.Len()).To(Equal(2))
			Expect(reg.Schemas()).To(Equal(before))
		})
	})

	Describe("Documentation Export", func() {
		DescribeTable("should document the result as a discriminator-free anyOf",
			func(version export.Version) {
				res, err := export.Components(reg, export.Config{Version: version})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Warnings).To(BeEmpty())

				var doc map[string]any
				Expect(json.Unmarshal(res.JSON, &doc)).To(Succeed())

				payment := doc["components"].(map[string]any)["schemas"].(map[string]any)["Order"].(map[string]any)["properties"].(map[string]any)["payment"].(map[string]any)
				Expect(payment).NotTo(HaveKey("discriminator"))
				Expect(payment["anyOf"]).To(HaveLen(2))

				required := map[string]bool{}
				for _, alt := range payment["anyOf"].([]any) {
					for _, key := range alt.(map[string]any)["required"].([]any) {
						required[key.(string)] = true
					}
				}
				Expect(required).To(Equal(map[string]bool{"ok": true, "err": true}))

				Expect(string(res.YAML)).To(ContainSubstring("anyOf:"))
			},
			Entry("OpenAPI 3.0", export.V30),
			Entry("OpenAPI 3.1", export.V31),
		)
	})

	Describe("Encode, Validate, Decode", func() {
		ref := "R-1"

		DescribeTable("should round-trip values that match their documentation",
			func(in order) {
				tree, ok := orders.Encode(in)
				Expect(ok).To(BeTrue())

				Expect(validate.New().Validate(context.Background(), reg, orders.SchemaRef(), tree)).To(Succeed())

				data, err := apitype.Marshal(orders, in)
				Expect(err).NotTo(HaveOccurred())

				out, err := apitype.Unmarshal(orders, data)
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(Equal(in))
			},
			Entry("settled", order{ID: 1, Items: []string{"book"}, Payment: apitype.Ok[receipt, string](receipt{Amount: 9.5, Ref: &ref})}),
			Entry("settled without ref", order{ID: 2, Items: []string{}, Payment: apitype.Ok[receipt, string](receipt{Amount: 1})}),
			Entry("declined", order{ID: 3, Items: []string{"pen", "ink"}, Payment: apitype.Err[receipt]("card declined")}),
		)

		It("should reject an unrecognized result in both decoder and validator", func() {
			data := []byte(`{"id":1,"items":[],"payment":{"pending":true}}`)

			Expect(validate.New().ValidateJSON(context.Background(), reg, orders.SchemaRef(), data)).
				To(MatchError(validate.ErrValidation))

			_, err := apitype.Unmarshal(orders, data)
			Expect(err).To(MatchError(apitype.ErrUnrecognizedShape))

			var pe *apitype.ParseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Path).To(Equal("/payment"))
		})

		It("should prefer ok when both keys are present", func() {
			data := []byte(`{"id":1,"items":[],"payment":{"ok":{"amount":3},"err":"ignored"}}`)

			out, err := apitype.Unmarshal(orders, data)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Payment.IsOk()).To(BeTrue())

			Expect(validate.New().ValidateJSON(context.Background(), reg, orders.SchemaRef(), data)).To(Succeed())
		})
	})

	Describe("HTTP Error Rendering", func() {
		It("should render decode failures as 422 responses", func() {
			_, err := apitype.Unmarshal(orders, []byte(`{"id":1,"items":[],"payment":{"ok":{"amount":"free"}}}`))
			Expect(err).To(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/orders", nil)
			resp := rerrors.NewRFC9457("https://example.com/problems").Format(req, err)

			Expect(resp.Status).To(Equal(http.StatusUnprocessableEntity))
			Expect(resp.ContentType).To(ContainSubstring("json"))
		})
	})

	Describe("Concurrency", func() {
		It("should encode and decode concurrently with shared types", func() {
			ty := apitype.ResultOf(apitype.Int64(), apitype.String())

			const workers = 32
			var wg sync.WaitGroup
			errs := make(chan error, workers)

			for i := range workers {
				wg.Go(func() {
					defer GinkgoRecover()

					in := apitype.Ok[int64, string](int64(i))
					if i%2 == 1 {
						in = apitype.Err[int64]("odd")
					}
					data, err := apitype.Marshal(ty, in)
					if err != nil {
						errs <- err
						return
					}
					out, err := apitype.Unmarshal(ty, data)
					if err != nil {
						errs <- err
						return
					}
					Expect(out).To(Equal(in))
				})
			}

			wg.Wait()
			close(errs)

			for err := range errs {
				Fail("concurrent round trip failed: " + err.Error())
			}
		})
	})
})
