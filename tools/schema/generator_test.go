/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"encoding/json"
	"sort"
	"testing"

	"chainguard.dev/prpublish/tools/schema"
	"github.com/google/go-cmp/cmp"
)

type lookupArgs struct {
	Owner  string `json:"repo_owner" jsonschema:"required,description=Repository owner"`
	Number int    `json:"pr_number" jsonschema:"required,description=Pull request number"`
	Note   string `json:"note,omitempty" jsonschema:"description=Optional note"`
}

type decoded struct {
	Schema               string                    `json:"$schema"`
	Type                 string                    `json:"type"`
	Properties           map[string]map[string]any `json:"properties"`
	Required             []string                  `json:"required"`
	AdditionalProperties *bool                     `json:"additionalProperties"`
}

func TestInputSchema(t *testing.T) {
	raw, err := schema.InputSchema[lookupArgs]()
	if err != nil {
		t.Fatalf("InputSchema() error = %v", err)
	}

	var got decoded
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	if got.Schema != "" {
		t.Errorf("$schema: got = %q, wanted it stripped", got.Schema)
	}
	if got.Type != "object" {
		t.Errorf("type: got = %q, wanted = object", got.Type)
	}
	if got.AdditionalProperties == nil || *got.AdditionalProperties {
		t.Errorf("additionalProperties: got = %v, wanted = false", got.AdditionalProperties)
	}

	sort.Strings(got.Required)
	if diff := cmp.Diff([]string{"pr_number", "repo_owner"}, got.Required); diff != "" {
		t.Errorf("required (-want +got):\n%s", diff)
	}

	wantTypes := map[string]string{"repo_owner": "string", "pr_number": "integer", "note": "string"}
	for name, typ := range wantTypes {
		prop, ok := got.Properties[name]
		if !ok {
			t.Errorf("property %q missing", name)
			continue
		}
		if prop["type"] != typ {
			t.Errorf("property %q type: got = %v, wanted = %s", name, prop["type"], typ)
		}
	}
	if desc := got.Properties["repo_owner"]["description"]; desc != "Repository owner" {
		t.Errorf("repo_owner description: got = %v", desc)
	}
}
