/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolserver

import (
	"fmt"

	"chainguard.dev/prpublish/operations"
)

// Operation enumerates the tools the server exposes.
type Operation int

const (
	OpFetchPR Operation = iota + 1
	OpCreateNotionPage
)

// All lists every operation in registration order.
func All() []Operation {
	return []Operation{OpFetchPR, OpCreateNotionPage}
}

// String returns the tool name.
func (o Operation) String() string {
	switch o {
	case OpFetchPR:
		return operations.FetchName
	case OpCreateNotionPage:
		return operations.PublishName
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// Description is the tool description shown to callers.
func (o Operation) Description() string {
	switch o {
	case OpFetchPR:
		return "Fetch changes from a GitHub pull request."
	case OpCreateNotionPage:
		return "Create a Notion page with PR analysis."
	default:
		return ""
	}
}

// ParseOperation returns the operation named name.
func ParseOperation(name string) (Operation, error) {
	for _, op := range All() {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}
