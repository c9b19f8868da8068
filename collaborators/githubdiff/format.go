/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubdiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v84/github"

	"chainguard.dev/prpublish/report/render"
)

var reportTemplate = render.Must(render.New(`# {{title}}

{{metadata}}

## Description

{{description}}

## Changed files

{{files}}

## Patches

{{patches}}`))

// metadata is marshaled as YAML in field order.
type metadata struct {
	Repository   string `yaml:"repository"`
	Number       int    `yaml:"number"`
	Author       string `yaml:"author,omitempty"`
	State        string `yaml:"state,omitempty"`
	Base         string `yaml:"base,omitempty"`
	Head         string `yaml:"head,omitempty"`
	Additions    int    `yaml:"additions"`
	Deletions    int    `yaml:"deletions"`
	ChangedFiles int    `yaml:"changed_files"`
	URL          string `yaml:"url,omitempty"`
}

// Format renders a pull request and its changed files as markdown text.
func Format(pr *github.PullRequest, files []*github.CommitFile) (string, error) {
	meta := metadata{
		Repository:   pr.GetBase().GetRepo().GetFullName(),
		Number:       pr.GetNumber(),
		Author:       pr.GetUser().GetLogin(),
		State:        pr.GetState(),
		Base:         pr.GetBase().GetRef(),
		Head:         pr.GetHead().GetRef(),
		ChangedFiles: len(files),
		URL:          pr.GetHTMLURL(),
	}

	rows := make([][]string, 0, len(files))
	var patches strings.Builder
	for i, f := range files {
		meta.Additions += f.GetAdditions()
		meta.Deletions += f.GetDeletions()
		rows = append(rows, []string{
			f.GetFilename(),
			f.GetStatus(),
			"+" + strconv.Itoa(f.GetAdditions()),
			"-" + strconv.Itoa(f.GetDeletions()),
		})

		if i > 0 {
			patches.WriteString("\n\n")
		}
		fmt.Fprintf(&patches, "### %s\n\n", f.GetFilename())
		if patch := f.GetPatch(); patch != "" {
			fmt.Fprintf(&patches, "```diff\n%s\n```", strings.TrimRight(patch, "\n"))
		} else {
			patches.WriteString("(no textual patch)")
		}
	}

	description := strings.TrimSpace(pr.GetBody())
	if description == "" {
		description = "(no description)"
	}

	t, err := reportTemplate.BindText("title", pr.GetTitle())
	if err != nil {
		return "", err
	}
	if t, err = t.BindYAML("metadata", meta); err != nil {
		return "", err
	}
	if t, err = t.BindText("description", description); err != nil {
		return "", err
	}
	if t, err = t.BindTable("files", []string{"File", "Status", "Additions", "Deletions"}, rows); err != nil {
		return "", err
	}
	if t, err = t.BindText("patches", patches.String()); err != nil {
		return "", err
	}
	return t.Build()
}
