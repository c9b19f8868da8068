/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package render

import (
	"fmt"
	"maps"
	"slices"
)

// stringLiteral only accepts untyped string constants from callers, keeping
// templates in the hands of developers.
type stringLiteral string

// Template is an immutable text template with {{name}} placeholders.
// Every Bind method returns a new Template.
type Template struct {
	text     string
	bindings map[string]binding
}

// New parses text and records its placeholders as unbound.
func New(text stringLiteral) (*Template, error) {
	bindings := make(map[string]binding)
	parsed, err := walk(string(text), func(name string) (string, error) {
		if _, ok := bindings[name]; !ok {
			bindings[name] = &unbound{name: name}
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Template{text: parsed, bindings: bindings}, nil
}

// Placeholders returns the sorted placeholder names in the template.
func (t *Template) Placeholders() []string {
	return slices.Sorted(maps.Keys(t.bindings))
}

func (t *Template) bind(name string, b binding) (*Template, error) {
	if err := existsAndUnbound(t.bindings, name); err != nil {
		return nil, err
	}
	next := &Template{text: t.text, bindings: maps.Clone(t.bindings)}
	next.bindings[name] = b
	return next, nil
}

// BindLiteral binds developer-controlled text.
func (t *Template) BindLiteral(name string, value stringLiteral) (*Template, error) {
	return t.bind(name, &textBinding{val: string(value)})
}

// BindText binds runtime text verbatim. Placeholders inside value are not
// expanded, so diff content containing "{{" is reproduced as-is.
func (t *Template) BindText(name, value string) (*Template, error) {
	return t.bind(name, &textBinding{val: value})
}

// BindYAML binds data marshaled as YAML.
func (t *Template) BindYAML(name string, data any) (*Template, error) {
	return t.bind(name, &yamlBinding{data: data})
}

// BindTable binds rows rendered as a markdown table under headers.
func (t *Template) BindTable(name string, headers []string, rows [][]string) (*Template, error) {
	return t.bind(name, &tableBinding{headers: headers, rows: rows})
}

// Build renders the template. It fails if any placeholder is unbound.
func (t *Template) Build() (string, error) {
	values := make(map[string]string, len(t.bindings))
	for name, b := range t.bindings {
		v, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = v
	}

	return walk(t.text, func(name string) (string, error) {
		if v, ok := values[name]; ok {
			return v, nil
		}
		return "", fmt.Errorf("internal error: binding %q not found in values", name)
	})
}

// Must panics if err is non-nil. It is meant for package-level templates.
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}
