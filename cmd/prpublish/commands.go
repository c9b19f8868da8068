/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"chainguard.dev/prpublish/observability/metrics"
	"chainguard.dev/prpublish/operations"
	"chainguard.dev/prpublish/report/block"
	"chainguard.dev/prpublish/report/chunk"
	"chainguard.dev/prpublish/toolserver"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prpublish",
		Short: "GitHub pull request analysis tools for MCP clients",
		Long: `prpublish serves two MCP tools over stdio:

  fetch_pr            fetch a pull request's changes for analysis
  create_notion_page  publish an analysis as a Notion page

Configuration is read from the environment (NOTION_API_KEY, NOTION_PAGE_ID,
GITHUB_TOKEN, ...). The fetch, publish and chunk subcommands run the same
operations once from the command line.`,
		Version:       toolserver.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newFetchCmd(),
		newPublishCmd(),
		newChunkCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx)
			if err != nil {
				clog.FatalContextf(ctx, "%v", err)
			}
			clog.InfoContextf(ctx, "Using Notion page ID: %s", cfg.NotionPageID)

			if cfg.MetricsPort > 0 {
				shutdown, err := startMetrics(ctx, cfg.MetricsPort)
				if err != nil {
					return err
				}
				defer func() {
					if err := shutdown(context.WithoutCancel(ctx)); err != nil {
						clog.WarnContextf(ctx, "shutting down meter provider: %v", err)
					}
				}()
			}

			ops, err := newOperations(ctx, cfg)
			if err != nil {
				clog.FatalContextf(ctx, "initializing operations: %v", err)
			}
			srv, err := toolserver.New(ops)
			if err != nil {
				return fmt.Errorf("creating tool server: %w", err)
			}
			return srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func startMetrics(ctx context.Context, port int) (func(context.Context) error, error) {
	handler, shutdown, err := metrics.SetupPrometheus()
	if err != nil {
		return nil, err
	}
	go func() {
		if err := metrics.ServeMetrics(ctx, port, handler); err != nil {
			clog.ErrorContextf(ctx, "%v", err)
		}
	}()
	return shutdown, nil
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch OWNER REPO NUMBER",
		Short: "Fetch a pull request and print the fetch_pr result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			number, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid pull request number %q: %w", args[2], err)
			}
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			ops, err := newOperations(ctx, cfg)
			if err != nil {
				return err
			}

			result := ops.FetchPR(ctx, operations.FetchRequest{Owner: args[0], Repo: args[1], Number: number})
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func newPublishCmd() *cobra.Command {
	var title, file, token string
	cmd := &cobra.Command{
		Use:   "publish --title TITLE [--file PATH]",
		Short: "Publish an analysis as a Notion page",
		Long:  "Publish reads the analysis from --file, or from stdin when --file is - or unset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			content, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			ops, err := newOperations(ctx, cfg)
			if err != nil {
				return err
			}

			status := ops.CreatePage(ctx, operations.PublishRequest{
				Title:             title,
				Content:           content,
				ConfirmationToken: token,
			})
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().StringVar(&file, "file", "-", "analysis file, - for stdin")
	cmd.Flags().StringVar(&token, "confirmation-token", "", "token returned by fetch when confirmation tokens are enabled")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newChunkCmd() *cobra.Command {
	var (
		size int
		file string
	)
	cmd := &cobra.Command{
		Use:   "chunk [--size N] [--file PATH]",
		Short: "Print the paragraph blocks an analysis would be published as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			chunks, err := chunk.Split(content, size)
			if err != nil {
				return err
			}
			if chunk.Join(chunks) != content {
				return errors.New("chunks do not reproduce the input")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(block.Build(chunks))
		},
	}
	cmd.Flags().IntVar(&size, "size", chunk.DefaultMaxLength, "maximum characters per block")
	cmd.Flags().StringVar(&file, "file", "-", "analysis file, - for stdin")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}
