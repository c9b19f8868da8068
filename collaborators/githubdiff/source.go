/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubdiff

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"golang.org/x/sync/errgroup"
)

// filesPerPage is the maximum page size the pull request files API accepts.
const filesPerPage = 100

// Source fetches pull request changes from the GitHub REST API.
type Source struct {
	client *github.Client
}

// New returns a Source backed by client.
func New(client *github.Client) *Source {
	return &Source{client: client}
}

// FetchDiff returns the formatted changes of owner/repo#number.
// The boolean is false when the pull request does not exist or changes no files.
func (s *Source) FetchDiff(ctx context.Context, owner, repo string, number int) (string, bool, error) {
	log := clog.FromContext(ctx).With("owner", owner, "repo", repo, "pr", number)

	var (
		pr    *github.PullRequest
		files []*github.CommitFile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, _, err := s.client.PullRequests.Get(gctx, owner, repo, number)
		if err != nil {
			return fmt.Errorf("getting pull request: %w", err)
		}
		pr = p
		return nil
	})
	g.Go(func() error {
		f, err := s.listFiles(gctx, owner, repo, number)
		if err != nil {
			return err
		}
		files = f
		return nil
	})
	if err := g.Wait(); err != nil {
		if isNotFound(err) {
			log.Debug("Pull request not found")
			return "", false, nil
		}
		return "", false, err
	}

	if len(files) == 0 {
		log.Debug("Pull request changes no files")
		return "", false, nil
	}

	text, err := Format(pr, files)
	if err != nil {
		return "", false, fmt.Errorf("formatting pull request: %w", err)
	}
	log.With("files", len(files), "bytes", len(text)).Debug("Fetched pull request changes")
	return text, true, nil
}

func (s *Source) listFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
	var all []*github.CommitFile
	opts := &github.ListOptions{PerPage: filesPerPage}
	for {
		page, resp, err := s.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing pull request files (page %d): %w", opts.Page, err)
		}
		all = append(all, page...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
