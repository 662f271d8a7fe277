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

/*
Package diag provides diagnostic types for schema export.

Warnings are informational, non-fatal issues found while projecting schemas
to a specific OpenAPI version. They never stop an export; use
export.Config.StrictDownlevel to turn downlevel losses into errors.

# Type-Safe Warning Checks

	res, _ := export.Components(reg, export.Config{Version: export.V30})

	if res.Warnings.Has(diag.WarnDownlevelConstToEnum) {
	    logger.Warn("const was rewritten as a single-value enum")
	}

	downlevel := res.Warnings.FilterCategory(diag.CategoryDownlevel)

Validation issues are ERRORS, not warnings.
*/
package diag
