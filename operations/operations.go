/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/prpublish/collaborators/notionpages"
	"chainguard.dev/prpublish/observability/metrics"
	"chainguard.dev/prpublish/tools/confirm"
)

// ErrConfirmationRequired is returned when a publish request lacks a valid
// confirmation token and the gate demands one.
var ErrConfirmationRequired = errors.New("confirmation required")

// DiffSource fetches the changes of a pull request.
// It reports false with a nil error when the pull request has no changes.
type DiffSource interface {
	FetchDiff(ctx context.Context, owner, repo string, number int) (string, bool, error)
}

// PageCreator creates a document page in one call.
type PageCreator interface {
	CreatePage(ctx context.Context, page notionpages.Page) (notionpages.Ref, error)
}

// Operations implements the fetch and publish tool operations.
type Operations struct {
	cfg     Config
	diffs   DiffSource
	pages   PageCreator
	gate    confirm.Gate
	metrics *metrics.Operations
}

// Option configures Operations.
type Option func(*Operations)

// WithGate sets the confirmation gate. The default is confirm.Open.
func WithGate(g confirm.Gate) Option {
	return func(o *Operations) {
		o.gate = g
	}
}

// WithMetrics sets the metric instruments. The default uses the global meter provider.
func WithMetrics(m *metrics.Operations) Option {
	return func(o *Operations) {
		o.metrics = m
	}
}

// New validates cfg and returns Operations using the given collaborators.
func New(cfg Config, diffs DiffSource, pages PageCreator, opts ...Option) (*Operations, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if diffs == nil {
		return nil, errors.New("diff source is required")
	}
	if pages == nil {
		return nil, errors.New("page creator is required")
	}

	o := &Operations{
		cfg:   cfg,
		diffs: diffs,
		pages: pages,
		gate:  confirm.Open(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = metrics.NewOperations()
	}
	return o, nil
}

// Config returns a copy of the configuration.
func (o *Operations) Config() Config {
	return o.cfg
}

// TokenRequired reports whether publish requests must carry a confirmation token.
func (o *Operations) TokenRequired() bool {
	return o.gate.Required()
}
