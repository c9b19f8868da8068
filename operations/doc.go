/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package operations implements the two tool operations of the server.
//
// FetchPR returns a pull request's changes followed by ConfirmationPrompt.
// CreatePage chunks an analysis into paragraph blocks and creates a single page
// under Config.TargetPageID.
//
// Both operations resolve internally to an outcome.Result so that absence and
// failure stay distinguishable in traces, metrics and tests. Only at the
// operation boundary are they flattened into the caller-facing shapes: an empty
// mapping for fetch and an error status line for publish.
//
// Confirmation between fetch and publish is stateless. By default the caller's
// conversation is trusted; a confirm.Gate passed with WithGate can instead issue
// a token with each fetch and require it on publish.
package operations
