/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolserver

import (
	"encoding/json"
	"fmt"

	"chainguard.dev/prpublish/operations"
	"chainguard.dev/prpublish/tools/params"
	"chainguard.dev/prpublish/tools/schema"
)

// FetchArgs are the arguments of fetch_pr.
type FetchArgs struct {
	RepoOwner string `json:"repo_owner" jsonschema:"required,description=Owner of the GitHub repository"`
	RepoName  string `json:"repo_name" jsonschema:"required,description=Name of the GitHub repository"`
	PRNumber  int    `json:"pr_number" jsonschema:"required,minimum=1,description=Pull request number"`
}

// PublishArgs are the arguments of create_notion_page.
type PublishArgs struct {
	Title             string `json:"title" jsonschema:"required,description=Title of the new page"`
	Content           string `json:"content" jsonschema:"required,description=Analysis text to publish"`
	ConfirmationToken string `json:"confirmation_token,omitempty" jsonschema:"description=Token returned by fetch_pr when confirmation tokens are enabled"`
}

func fetchRequest(args map[string]any) (operations.FetchRequest, error) {
	owner, err := params.Extract[string](args, "repo_owner")
	if err != nil {
		return operations.FetchRequest{}, err
	}
	repo, err := params.Extract[string](args, "repo_name")
	if err != nil {
		return operations.FetchRequest{}, err
	}
	number, err := params.Extract[int](args, "pr_number")
	if err != nil {
		return operations.FetchRequest{}, err
	}
	return operations.FetchRequest{Owner: owner, Repo: repo, Number: number}, nil
}

func publishRequest(args map[string]any) (operations.PublishRequest, error) {
	title, err := params.Extract[string](args, "title")
	if err != nil {
		return operations.PublishRequest{}, err
	}
	content, err := params.Extract[string](args, "content")
	if err != nil {
		return operations.PublishRequest{}, err
	}
	token, err := params.ExtractOptional(args, "confirmation_token", "")
	if err != nil {
		return operations.PublishRequest{}, err
	}
	return operations.PublishRequest{Title: title, Content: content, ConfirmationToken: token}, nil
}

// InputSchema returns the JSON schema of op's arguments.
func (o Operation) InputSchema() (json.RawMessage, error) {
	switch o {
	case OpFetchPR:
		return schema.InputSchema[FetchArgs]()
	case OpCreateNotionPage:
		return schema.InputSchema[PublishArgs]()
	default:
		return nil, fmt.Errorf("no schema for %v", o)
	}
}
