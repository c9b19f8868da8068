/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package render

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// walk scans text once, replacing each {{name}} with resolve(name).
// Replacements are never rescanned.
func walk(text string, resolve func(name string) (string, error)) (string, error) {
	var out strings.Builder

	for len(text) > 0 {
		start := strings.Index(text, "{{")
		if start == -1 {
			out.WriteString(text)
			break
		}
		out.WriteString(text[:start])

		end := strings.Index(text[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed placeholder: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(text[start+2 : end-2])
		if !isIdentifier(name) {
			return "", fmt.Errorf("invalid placeholder name %q", name)
		}
		replacement, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(replacement)

		text = text[end:]
	}

	return out.String(), nil
}

// isIdentifier reports whether s is a letter followed by letters, digits or underscores.
func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}
