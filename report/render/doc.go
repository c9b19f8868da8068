/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package render builds report text from developer-owned templates.

Templates use {{name}} placeholders and are parsed from string literals only.
Values are substituted in a single pass, so text taken from a pull request (which
may itself contain "{{") is never interpreted as a placeholder.

	var header = render.Must(render.New("# {{title}}\n\n{{meta}}\n\n{{files}}"))

	t, err := header.BindText("title", pr.GetTitle())
	t, err = t.BindYAML("meta", map[string]any{"author": "octocat"})
	t, err = t.BindTable("files", []string{"File", "Status"}, rows)
	out, err := t.Build()

Templates are immutable; every Bind returns a new Template, and binding the same
placeholder twice is an error.
*/
package render
