/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"errors"
	"fmt"

	"chainguard.dev/prpublish/report/chunk"
)

// Config is the read-only configuration shared by every tool invocation.
type Config struct {
	// TargetPageID is the parent page new pages are created under.
	TargetPageID string
	// ChunkSize is the maximum number of characters per paragraph block.
	ChunkSize int
}

// DefaultConfig returns a Config for targetPageID with the default chunk size.
func DefaultConfig(targetPageID string) Config {
	return Config{
		TargetPageID: targetPageID,
		ChunkSize:    chunk.DefaultMaxLength,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if c.TargetPageID == "" {
		errs = append(errs, errors.New("target page id is required"))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: chunk size must be positive, got %d", chunk.ErrInvalidArgument, c.ChunkSize))
	}
	return errors.Join(errs...)
}
