/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sethvargo/go-envconfig"

	"chainguard.dev/prpublish/collaborators/githubdiff"
	"chainguard.dev/prpublish/collaborators/notionpages"
	"chainguard.dev/prpublish/observability/metrics"
	"chainguard.dev/prpublish/operations"
	"chainguard.dev/prpublish/tools/confirm"
)

type logConfig struct {
	Level slog.Level `env:"LOG_LEVEL,default=info"`
}

type config struct {
	// Notion
	NotionAPIKey string `env:"NOTION_API_KEY,required"`
	NotionPageID string `env:"NOTION_PAGE_ID,required"`

	// GitHub token or GitHub App authentication
	GitHubToken          string `env:"GITHUB_TOKEN"`
	GitHubAppID          int64  `env:"GITHUB_APP_ID"`
	GitHubInstallationID int64  `env:"GITHUB_INSTALLATION_ID"`
	GitHubPrivateKeyPath string `env:"GITHUB_PRIVATE_KEY_PATH"`
	GitHubBaseURL        string `env:"GITHUB_BASE_URL"`

	ChunkSize          int    `env:"CHUNK_SIZE,default=2000"`
	ConfirmationSecret string `env:"CONFIRMATION_SECRET"`
	MetricsPort        int    `env:"METRICS_PORT,default=0"`
}

func loadConfig(ctx context.Context) (*config, error) {
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	return &cfg, nil
}

func (c *config) githubAuth() githubdiff.Auth {
	return githubdiff.Auth{
		Token:          c.GitHubToken,
		AppID:          c.GitHubAppID,
		InstallationID: c.GitHubInstallationID,
		PrivateKeyPath: c.GitHubPrivateKeyPath,
		BaseURL:        c.GitHubBaseURL,
	}
}

func (c *config) gate() (confirm.Gate, error) {
	if c.ConfirmationSecret == "" {
		return confirm.Open(), nil
	}
	return confirm.NewHMAC([]byte(c.ConfirmationSecret))
}

// newOperations wires the collaborators described by cfg.
func newOperations(ctx context.Context, cfg *config) (*operations.Operations, error) {
	gh, err := githubdiff.NewClient(ctx, cfg.githubAuth())
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}
	gate, err := cfg.gate()
	if err != nil {
		return nil, fmt.Errorf("creating confirmation gate: %w", err)
	}

	return operations.New(
		operations.Config{
			TargetPageID: cfg.NotionPageID,
			ChunkSize:    cfg.ChunkSize,
		},
		githubdiff.New(gh),
		notionpages.New(notionpages.NewClient(cfg.NotionAPIKey)),
		operations.WithGate(gate),
		operations.WithMetrics(metrics.NewOperations()),
	)
}
