/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package chunk splits analysis text into bounded windows.

Document stores limit how much text a single block may carry. Split cuts a
string into an ordered sequence of windows that each respect such a ceiling
while preserving the input exactly:

	chunks, err := chunk.Split(report, chunk.DefaultMaxLength)
	if err != nil {
		return err // only for a non-positive window
	}
	// chunk.Join(chunks) == report

Split is pure and safe for concurrent use.
*/
package chunk
