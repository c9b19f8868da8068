/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewParsesPlaceholders(t *testing.T) {
	tmpl, err := New("# {{title}}\n{{ body }}\n{{title}}")
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if diff := cmp.Diff([]string{"body", "title"}, tmpl.Placeholders()); diff != "" {
		t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		text stringLiteral
	}{{
		name: "unclosed",
		text: "hello {{name",
	}, {
		name: "empty name",
		text: "hello {{}}",
	}, {
		name: "leading digit",
		text: "hello {{1abc}}",
	}, {
		name: "punctuation",
		text: "hello {{a-b}}",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.text); err == nil {
				t.Errorf("New(%q) = nil error, wanted error", tt.text)
			}
		})
	}
}

func TestBuildSubstitutesOnce(t *testing.T) {
	tmpl := Must(New("a={{a}} b={{b}}"))

	bound, err := tmpl.BindText("a", "{{b}}")
	if err != nil {
		t.Fatalf("BindText() = %v", err)
	}
	bound, err = bound.BindLiteral("b", "bee")
	if err != nil {
		t.Fatalf("BindLiteral() = %v", err)
	}

	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if want := "a={{b}} b=bee"; got != want {
		t.Errorf("Build() = %q, wanted %q", got, want)
	}
}

func TestBindIsImmutable(t *testing.T) {
	tmpl := Must(New("{{x}}"))

	first, err := tmpl.BindText("x", "one")
	if err != nil {
		t.Fatalf("BindText() = %v", err)
	}
	second, err := tmpl.BindText("x", "two")
	if err != nil {
		t.Fatalf("BindText() on parent template = %v", err)
	}

	if _, err := tmpl.Build(); err == nil {
		t.Error("Build() on parent template = nil error, wanted unbound error")
	}
	if got, _ := first.Build(); got != "one" {
		t.Errorf("first.Build() = %q, wanted %q", got, "one")
	}
	if got, _ := second.Build(); got != "two" {
		t.Errorf("second.Build() = %q, wanted %q", got, "two")
	}
}

func TestBindErrors(t *testing.T) {
	tmpl := Must(New("{{x}}"))

	if _, err := tmpl.BindText("missing", "v"); err == nil {
		t.Error("BindText(missing) = nil error, wanted error")
	}

	bound, err := tmpl.BindText("x", "v")
	if err != nil {
		t.Fatalf("BindText() = %v", err)
	}
	if _, err := bound.BindText("x", "again"); err == nil {
		t.Error("BindText() twice = nil error, wanted error")
	}
}

func TestBindYAML(t *testing.T) {
	tmpl := Must(New("meta:\n{{meta}}\nend"))

	bound, err := tmpl.BindYAML("meta", map[string]any{
		"author":    "octocat",
		"additions": 3,
	})
	if err != nil {
		t.Fatalf("BindYAML() = %v", err)
	}
	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	want := "meta:\nadditions: 3\nauthor: octocat\nend"
	if got != want {
		t.Errorf("Build() = %q, wanted %q", got, want)
	}
}

func TestBindTable(t *testing.T) {
	tmpl := Must(New("{{files}}"))

	bound, err := tmpl.BindTable("files", []string{"File", "Status"}, [][]string{
		{"main.go", "modified"},
		{"README.md", "added"},
	})
	if err != nil {
		t.Fatalf("BindTable() = %v", err)
	}
	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	for _, want := range []string{"File", "Status", "main.go", "modified", "README.md", "added", "|"} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() = %q, wanted it to contain %q", got, want)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("Build() = %q, wanted no trailing newline", got)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(New("{{"))
}
