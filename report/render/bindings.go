/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package render

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

type binding interface {
	value() (string, error)
}

type unbound struct {
	name string
}

func (u *unbound) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

type textBinding struct {
	val string
}

func (b *textBinding) value() (string, error) {
	return b.val, nil
}

type yamlBinding struct {
	data any
}

func (b *yamlBinding) value() (string, error) {
	out, err := yaml.Marshal(b.data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

type tableBinding struct {
	headers []string
	rows    [][]string
}

func (b *tableBinding) value() (string, error) {
	var sb strings.Builder
	table := tablewriter.NewTable(&sb,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader(b.headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
	for _, row := range b.rows {
		if err := table.Append(row); err != nil {
			return "", fmt.Errorf("appending table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("rendering table: %w", err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func existsAndUnbound(bindings map[string]binding, name string) error {
	b, ok := bindings[name]
	if !ok {
		return fmt.Errorf("binding %q not found in template", name)
	}
	if _, isUnbound := b.(*unbound); !isUnbound {
		return fmt.Errorf("binding %q already bound", name)
	}
	return nil
}
