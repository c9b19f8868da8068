/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/prpublish/observability/optrace"
	"chainguard.dev/prpublish/report/render"
	"chainguard.dev/prpublish/tools/confirm"
	"chainguard.dev/prpublish/tools/outcome"
)

// FetchName is the tool name of the fetch operation.
const FetchName = "fetch_pr"

// ConfirmationPrompt follows every fetched analysis, asking the user whether to publish it.
const ConfirmationPrompt = "📄 **Would you like me to create a Notion page for this analysis?**\nReply with **yes** or **no**."

var fetchResponse = render.Must(render.Must(render.New("{{analysis}}\n\n{{prompt}}")).BindLiteral("prompt", ConfirmationPrompt))

// FetchRequest identifies a pull request.
type FetchRequest struct {
	Owner  string
	Repo   string
	Number int
}

func (r FetchRequest) ref() confirm.Ref {
	return confirm.Ref{Owner: r.Owner, Repo: r.Repo, Number: r.Number}
}

// FetchResult is the mapping returned to the caller: {"content": ...} or empty.
type FetchResult map[string]any

// FetchPR fetches the changes of a pull request and appends the confirmation prompt.
// Absence and failure both yield an empty mapping; failures are logged.
func (o *Operations) FetchPR(ctx context.Context, req FetchRequest) FetchResult {
	log := clog.FromContext(ctx).With("owner", req.Owner, "repo", req.Repo, "pr", req.Number)
	log.Infof("Fetching PR #%d from %s/%s", req.Number, req.Owner, req.Repo)

	trace := optrace.Start[string](ctx, FetchName, map[string]any{
		"repo_owner": req.Owner,
		"repo_name":  req.Repo,
		"pr_number":  req.Number,
	})
	res := o.fetch(trace, req)

	state := res.State().String()
	trace.SetOutcome(state)
	o.metrics.RecordCall(ctx, FetchName, state)

	content, _ := res.Value()
	trace.Complete(content, res.Err())

	return outcome.Fold(res,
		func(content string) FetchResult {
			log.Info("Successfully fetched PR information")
			out := FetchResult{"content": content}
			if token := o.gate.Issue(req.ref()); token != "" {
				out["confirmation_token"] = token
			}
			return out
		},
		func() FetchResult {
			log.Info("No changes returned for pull request")
			return FetchResult{}
		},
		func(err error) FetchResult {
			log.With("error", err).Error("Error fetching PR")
			return FetchResult{}
		},
	)
}

// fetch resolves the pull request to the response content.
func (o *Operations) fetch(trace *optrace.Trace[string], req FetchRequest) outcome.Result[string] {
	ctx := trace.Context()

	step := trace.StartStep("fetch_diff", nil)
	text, ok, err := o.diffs.FetchDiff(ctx, req.Owner, req.Repo, req.Number)
	step.Complete(map[string]any{"found": ok, "bytes": len(text)}, err)
	switch {
	case err != nil:
		return outcome.Err[string](err)
	case !ok:
		return outcome.Absent[string]()
	}
	o.metrics.RecordDiff(ctx, len(text))

	step = trace.StartStep("compose_response", nil)
	content, err := composeFetchResponse(text)
	step.Complete(len(content), err)
	if err != nil {
		return outcome.Err[string](err)
	}
	return outcome.OK(content)
}

func composeFetchResponse(analysis string) (string, error) {
	t, err := fetchResponse.BindText("analysis", analysis)
	if err != nil {
		return "", err
	}
	return t.Build()
}
