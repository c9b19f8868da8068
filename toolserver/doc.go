/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package toolserver exposes the tool operations over the Model Context Protocol.
//
// The set of operations is closed: each Operation has a name, a description and
// an input schema generated from its argument struct, and Dispatch is the single
// place that maps an Operation to the Operator method that runs it.
package toolserver
