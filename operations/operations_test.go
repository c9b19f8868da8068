/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainguard.dev/prpublish/collaborators/notionpages"
	"chainguard.dev/prpublish/observability/optrace"
	"chainguard.dev/prpublish/report/block"
	"chainguard.dev/prpublish/tools/confirm"
)

type fakeDiffs struct {
	fetch func(ctx context.Context, owner, repo string, number int) (string, bool, error)
}

func (f fakeDiffs) FetchDiff(ctx context.Context, owner, repo string, number int) (string, bool, error) {
	return f.fetch(ctx, owner, repo, number)
}

type fakePages struct {
	calls []notionpages.Page
	err   error
}

func (f *fakePages) CreatePage(_ context.Context, page notionpages.Page) (notionpages.Ref, error) {
	f.calls = append(f.calls, page)
	if f.err != nil {
		return notionpages.Ref{}, f.err
	}
	return notionpages.Ref{ID: "page-1", URL: "https://notion.so/page-1"}, nil
}

func staticDiff(text string, ok bool, err error) fakeDiffs {
	return fakeDiffs{fetch: func(context.Context, string, string, int) (string, bool, error) {
		return text, ok, err
	}}
}

func newOps(t *testing.T, diffs DiffSource, pages PageCreator, opts ...Option) *Operations {
	t.Helper()
	ops, err := New(DefaultConfig("parent-page"), diffs, pages, opts...)
	require.NoError(t, err)
	return ops
}

// captureFetch installs a tracer that records fetch traces.
func captureFetch(ctx context.Context) (context.Context, *[]*optrace.Trace[string]) {
	var traces []*optrace.Trace[string]
	return optrace.WithTracer[string](ctx, optrace.ByCode[string](func(tr *optrace.Trace[string]) {
		traces = append(traces, tr)
	})), &traces
}

func TestNewValidatesConfig(t *testing.T) {
	pages := &fakePages{}
	diffs := staticDiff("", false, nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing page", cfg: Config{ChunkSize: 2000}},
		{name: "zero chunk size", cfg: Config{TargetPageID: "p"}},
		{name: "negative chunk size", cfg: Config{TargetPageID: "p", ChunkSize: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, diffs, pages)
			assert.Error(t, err)
		})
	}

	_, err := New(DefaultConfig("p"), nil, pages)
	assert.Error(t, err, "nil diff source")
	_, err = New(DefaultConfig("p"), diffs, nil)
	assert.Error(t, err, "nil page creator")
}

func TestFetchPRPassesIdentifiers(t *testing.T) {
	var gotOwner, gotRepo string
	var gotNumber int
	diffs := fakeDiffs{fetch: func(_ context.Context, owner, repo string, number int) (string, bool, error) {
		gotOwner, gotRepo, gotNumber = owner, repo, number
		return "diff", true, nil
	}}

	newOps(t, diffs, &fakePages{}).FetchPR(context.Background(), FetchRequest{Owner: "acme", Repo: "factory", Number: 42})

	assert.Equal(t, "acme", gotOwner)
	assert.Equal(t, "factory", gotRepo)
	assert.Equal(t, 42, gotNumber)
}

func TestFetchPRAppendsPrompt(t *testing.T) {
	const diff = "diff --git a/x b/x\n+{{not a placeholder}}"
	ctx, traces := captureFetch(context.Background())

	got := newOps(t, staticDiff(diff, true, nil), &fakePages{}).FetchPR(ctx, FetchRequest{Owner: "o", Repo: "r", Number: 1})

	want := FetchResult{"content": diff + "\n\n" + ConfirmationPrompt}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("FetchPR() mismatch (-want +got):\n%s", d)
	}
	require.Len(t, *traces, 1)
	assert.Equal(t, "ok", (*traces)[0].Outcome)
	assert.Equal(t, []string{"fetch_diff", "compose_response"}, (*traces)[0].StepNames())
}

func TestFetchPRAbsentAndErrorFlattenToEmpty(t *testing.T) {
	tests := []struct {
		name        string
		diffs       fakeDiffs
		wantOutcome string
	}{{
		name:        "absent",
		diffs:       staticDiff("", false, nil),
		wantOutcome: "absent",
	}, {
		name:        "collaborator error",
		diffs:       staticDiff("", false, errors.New("github unavailable")),
		wantOutcome: "error",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, traces := captureFetch(context.Background())

			got := newOps(t, tt.diffs, &fakePages{}).FetchPR(ctx, FetchRequest{Owner: "o", Repo: "r", Number: 1})

			assert.Empty(t, got)
			assert.NotNil(t, got)
			require.Len(t, *traces, 1)
			assert.Equal(t, tt.wantOutcome, (*traces)[0].Outcome)
		})
	}
}

func TestFetchOutcomeDistinguishesAbsenceFromError(t *testing.T) {
	ops := newOps(t, staticDiff("", false, nil), &fakePages{})
	res := ops.fetch(optrace.Start[string](context.Background(), FetchName, nil), FetchRequest{})
	assert.True(t, res.IsAbsent())

	boom := errors.New("boom")
	ops = newOps(t, staticDiff("", false, boom), &fakePages{})
	res = ops.fetch(optrace.Start[string](context.Background(), FetchName, nil), FetchRequest{})
	assert.True(t, res.IsErr())
	assert.ErrorIs(t, res.Err(), boom)
}

func TestCreatePageChunksIntoBlocks(t *testing.T) {
	pages := &fakePages{}
	content := strings.Repeat("a", 2000) + strings.Repeat("b", 2000) + strings.Repeat("c", 500)

	got := newOps(t, staticDiff("", false, nil), pages).CreatePage(context.Background(), PublishRequest{
		Title:   "Report",
		Content: content,
	})

	assert.Equal(t, "Notion page 'Report' created successfully!", got)
	require.Len(t, pages.calls, 1)
	call := pages.calls[0]
	assert.Equal(t, "parent-page", call.ParentID)
	assert.Equal(t, "Report", call.Title)
	want := []block.Block{
		{Kind: block.Paragraph, Text: strings.Repeat("a", 2000)},
		{Kind: block.Paragraph, Text: strings.Repeat("b", 2000)},
		{Kind: block.Paragraph, Text: strings.Repeat("c", 500)},
	}
	if d := cmp.Diff(want, call.Blocks); d != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", d)
	}
}

func TestCreatePageHonorsChunkSize(t *testing.T) {
	pages := &fakePages{}
	ops, err := New(Config{TargetPageID: "p", ChunkSize: 3}, staticDiff("", false, nil), pages)
	require.NoError(t, err)

	ops.CreatePage(context.Background(), PublishRequest{Title: "t", Content: "abcdefg"})

	require.Len(t, pages.calls, 1)
	assert.Equal(t, []string{"abc", "def", "g"}, block.Texts(pages.calls[0].Blocks))
}

func TestCreatePageEmptyContent(t *testing.T) {
	pages := &fakePages{}

	got := newOps(t, staticDiff("", false, nil), pages).CreatePage(context.Background(), PublishRequest{Title: "Empty"})

	assert.Equal(t, "Notion page 'Empty' created successfully!", got)
	require.Len(t, pages.calls, 1)
	assert.Empty(t, pages.calls[0].Blocks)
}

func TestCreatePageErrorCallsOnce(t *testing.T) {
	pages := &fakePages{err: errors.New("unauthorized")}

	got := newOps(t, staticDiff("", false, nil), pages).CreatePage(context.Background(), PublishRequest{
		Title:   "Report",
		Content: "analysis",
	})

	assert.Equal(t, "Error creating Notion page: unauthorized", got)
	assert.Len(t, pages.calls, 1)
}

func TestCreatePageTraceOutcome(t *testing.T) {
	var traces []*optrace.Trace[notionpages.Ref]
	ctx := optrace.WithTracer[notionpages.Ref](context.Background(), optrace.ByCode[notionpages.Ref](func(tr *optrace.Trace[notionpages.Ref]) {
		traces = append(traces, tr)
	}))

	newOps(t, staticDiff("", false, nil), &fakePages{}).CreatePage(ctx, PublishRequest{Title: "t", Content: "x"})

	require.Len(t, traces, 1)
	assert.Equal(t, "ok", traces[0].Outcome)
	assert.Equal(t, "page-1", traces[0].Result.ID)
	assert.Equal(t, []string{"chunk", "create_page"}, traces[0].StepNames())
}

func TestConfirmationGate(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	gate, err := confirm.NewHMAC([]byte("secret"), confirm.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	pages := &fakePages{}
	ops := newOps(t, staticDiff("diff", true, nil), pages, WithGate(gate))
	assert.True(t, ops.TokenRequired())

	t.Run("missing token", func(t *testing.T) {
		got := ops.CreatePage(context.Background(), PublishRequest{Title: "t", Content: "x"})
		assert.True(t, strings.HasPrefix(got, "Error creating Notion page: confirmation required"), got)
		assert.Empty(t, pages.calls)
	})

	t.Run("forged token", func(t *testing.T) {
		got := ops.CreatePage(context.Background(), PublishRequest{Title: "t", Content: "x", ConfirmationToken: "bm9wZQ.bm9wZQ"})
		assert.True(t, strings.HasPrefix(got, "Error creating Notion page: confirmation required"), got)
		assert.Empty(t, pages.calls)
	})

	t.Run("token from fetch", func(t *testing.T) {
		fetched := ops.FetchPR(context.Background(), FetchRequest{Owner: "o", Repo: "r", Number: 1})
		token, ok := fetched["confirmation_token"].(string)
		require.True(t, ok, "fetch result carries no token: %v", fetched)

		got := ops.CreatePage(context.Background(), PublishRequest{Title: "t", Content: "x", ConfirmationToken: token})
		assert.Equal(t, "Notion page 't' created successfully!", got)
		assert.Len(t, pages.calls, 1)
	})
}

func TestOpenGateIgnoresToken(t *testing.T) {
	pages := &fakePages{}
	ops := newOps(t, staticDiff("diff", true, nil), pages)
	assert.False(t, ops.TokenRequired())

	fetched := ops.FetchPR(context.Background(), FetchRequest{Owner: "o", Repo: "r", Number: 1})
	_, hasToken := fetched["confirmation_token"]
	assert.False(t, hasToken)

	got := ops.CreatePage(context.Background(), PublishRequest{Title: "t", Content: "x", ConfirmationToken: "anything"})
	assert.Equal(t, "Notion page 't' created successfully!", got)
}

func TestCreatePageConfirmationErrorIs(t *testing.T) {
	gate, err := confirm.NewHMAC([]byte("secret"))
	require.NoError(t, err)
	ops := newOps(t, staticDiff("", false, nil), &fakePages{}, WithGate(gate))

	res := ops.publish(optrace.Start[notionpages.Ref](context.Background(), PublishName, nil), PublishRequest{Title: "t"})
	assert.ErrorIs(t, res.Err(), ErrConfirmationRequired)
	assert.ErrorIs(t, res.Err(), confirm.ErrInvalidToken)
}
