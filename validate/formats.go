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
	"fmt"
	"math"
	"math/big"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

func registerFormats(c *jsonschema.Compiler) {
	c.RegisterFormat(&jsonschema.Format{Name: "int32", Validate: intRange(math.MinInt32, big.NewInt(math.MaxInt32))})
	c.RegisterFormat(&jsonschema.Format{Name: "int64", Validate: intRange(math.MinInt64, big.NewInt(math.MaxInt64))})
	c.RegisterFormat(&jsonschema.Format{Name: "uint64", Validate: intRange(0, new(big.Int).SetUint64(math.MaxUint64))})
}

// intRange returns a format check accepting integral numbers in [lo, hi].
// Non-numbers pass: formats only constrain values of their own type.
func intRange(lo int64, hi *big.Int) func(v any) error {
	floor := big.NewInt(lo)

	return func(v any) error {
		n, ok := v.(fmt.Stringer)
		if !ok {
			return nil
		}
		r, ok := new(big.Rat).SetString(n.String())
		if !ok {
			return nil
		}
		if !r.IsInt() {
			return fmt.Errorf("%s is not an integer", n)
		}
		if i := r.Num(); i.Cmp(floor) < 0 || i.Cmp(hi) > 0 {
			return fmt.Errorf("%s is out of range [%s, %s]", n, floor, hi)
		}

		return nil
	}
}
