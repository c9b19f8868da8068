/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package chunk

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the largest number of characters Notion accepts in a
// single rich text object.
const DefaultMaxLength = 2000

// ErrInvalidArgument is returned when Split is called with a non-positive window.
var ErrInvalidArgument = errors.New("invalid argument")

// Split partitions text into consecutive, non-overlapping windows of maxLen
// characters. Every window but the last holds exactly maxLen characters and the
// last holds the remainder. Empty text yields no windows.
//
// Windows are measured in runes, so a multi-byte character is never split
// across two chunks. Invalid UTF-8 bytes count as one character each.
func Split(text string, maxLen int) ([]string, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: max length must be positive, got %d", ErrInvalidArgument, maxLen)
	}
	if text == "" {
		return nil, nil
	}

	chunks := make([]string, 0, utf8.RuneCountInString(text)/maxLen+1)
	start, n := 0, 0
	for i := range text {
		if n == maxLen {
			chunks = append(chunks, text[start:i])
			start, n = i, 0
		}
		n++
	}
	return append(chunks, text[start:]), nil
}

// Join reassembles chunks produced by Split.
func Join(chunks []string) string {
	return strings.Join(chunks, "")
}
