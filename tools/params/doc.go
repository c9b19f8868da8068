/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package params extracts typed values from decoded tool-call arguments.

Tool arguments arrive as map[string]any decoded from JSON, so every number is a
float64. Extract bridges that gap with type safety:

	owner, err := params.Extract[string](args, "repo_owner")
	number, err := params.Extract[int](args, "pr_number")   // 42.0 -> 42, 4.5 -> error
	token, err := params.ExtractOptional(args, "confirmation_token", "")

Failures are *params.Error values naming the offending argument; missing
required arguments additionally match errors.Is(err, params.ErrMissing).
*/
package params
