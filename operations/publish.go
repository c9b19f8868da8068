/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/prpublish/collaborators/notionpages"
	"chainguard.dev/prpublish/observability/optrace"
	"chainguard.dev/prpublish/report/block"
	"chainguard.dev/prpublish/report/chunk"
	"chainguard.dev/prpublish/tools/outcome"
)

// PublishName is the tool name of the publish operation.
const PublishName = "create_notion_page"

// PublishRequest is an analysis to publish as a page.
type PublishRequest struct {
	Title   string
	Content string
	// ConfirmationToken is the token returned by a prior fetch. It is only
	// checked when the gate requires tokens.
	ConfirmationToken string
}

// CreatePage splits the content into paragraph blocks and creates one page under
// the configured parent. The result is a human-readable status line; failures
// are reported in the returned string and logged.
func (o *Operations) CreatePage(ctx context.Context, req PublishRequest) string {
	log := clog.FromContext(ctx).With("title", req.Title)
	log.Infof("Creating Notion page: %s", req.Title)

	trace := optrace.Start[notionpages.Ref](ctx, PublishName, map[string]any{
		"title":          req.Title,
		"content_length": utf8.RuneCountInString(req.Content),
	})
	res := o.publish(trace, req)

	state := res.State().String()
	trace.SetOutcome(state)
	o.metrics.RecordCall(ctx, PublishName, state)

	ref, _ := res.Value()
	trace.Complete(ref, res.Err())

	return outcome.Fold(res,
		func(ref notionpages.Ref) string {
			log.With("page_id", ref.ID, "url", ref.URL).Info("Notion page created")
			return fmt.Sprintf("Notion page '%s' created successfully!", req.Title)
		},
		func() string {
			// publish never reports absence.
			return fmt.Sprintf("Error creating Notion page: no page returned for '%s'", req.Title)
		},
		func(err error) string {
			msg := fmt.Sprintf("Error creating Notion page: %v", err)
			log.Error(msg)
			return msg
		},
	)
}

func (o *Operations) publish(trace *optrace.Trace[notionpages.Ref], req PublishRequest) outcome.Result[notionpages.Ref] {
	ctx := trace.Context()

	if err := o.gate.Verify(req.ConfirmationToken); err != nil {
		return outcome.Err[notionpages.Ref](fmt.Errorf("%w: %w", ErrConfirmationRequired, err))
	}

	step := trace.StartStep("chunk", map[string]any{"max_length": o.cfg.ChunkSize})
	chunks, err := chunk.Split(req.Content, o.cfg.ChunkSize)
	step.Complete(len(chunks), err)
	if err != nil {
		return outcome.Err[notionpages.Ref](err)
	}
	blocks := block.Build(chunks)
	clog.FromContext(ctx).Debugf("Creating %d blocks", len(blocks))

	step = trace.StartStep("create_page", map[string]any{"parent": o.cfg.TargetPageID, "blocks": len(blocks)})
	ref, err := o.pages.CreatePage(ctx, notionpages.Page{
		ParentID: o.cfg.TargetPageID,
		Title:    req.Title,
		Blocks:   blocks,
	})
	step.Complete(ref, err)
	if err != nil {
		return outcome.Err[notionpages.Ref](err)
	}

	o.metrics.RecordPage(ctx, len(blocks), utf8.RuneCountInString(req.Content))
	return outcome.OK(ref)
}
