/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package notionpages

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/jomei/notionapi"

	"chainguard.dev/prpublish/report/block"
)

// Page is a page to create under ParentID.
type Page struct {
	ParentID string
	Title    string
	Blocks   []block.Block
}

// Ref identifies a created page.
type Ref struct {
	ID  string
	URL string
}

// Creator creates pages through the Notion API.
type Creator struct {
	client *notionapi.Client
}

// New returns a Creator backed by client.
func New(client *notionapi.Client) *Creator {
	return &Creator{client: client}
}

// NewClient returns a Notion API client authenticated with token.
func NewClient(token string, opts ...notionapi.ClientOption) *notionapi.Client {
	return notionapi.NewClient(notionapi.Token(token), opts...)
}

// CreatePage creates p with a single API call.
func (c *Creator) CreatePage(ctx context.Context, p Page) (Ref, error) {
	if p.ParentID == "" {
		return Ref{}, errors.New("parent page id is required")
	}
	log := clog.FromContext(ctx).With("parent", p.ParentID, "blocks", len(p.Blocks))

	page, err := c.client.Page.Create(ctx, Request(p))
	if err != nil {
		return Ref{}, fmt.Errorf("creating page: %w", err)
	}

	ref := Ref{ID: page.ID.String(), URL: page.URL}
	log.With("page_id", ref.ID).Debug("Created Notion page")
	return ref, nil
}

// Request converts p into a Notion create-page request.
func Request(p Page) *notionapi.PageCreateRequest {
	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(p.ParentID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{{
					Text: &notionapi.Text{Content: p.Title},
				}},
			},
		},
		Children: Children(p.Blocks),
	}
}

// Children converts blocks into Notion paragraph blocks, one rich text run each.
func Children(blocks []block.Block) []notionapi.Block {
	if len(blocks) == 0 {
		return nil
	}
	children := make([]notionapi.Block, 0, len(blocks))
	for _, b := range blocks {
		children = append(children, &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: []notionapi.RichText{{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{Content: b.Text},
				}},
			},
		})
	}
	return children
}
