/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements prpublish, an MCP server that fetches GitHub pull
// request changes for analysis and publishes the analysis as a Notion page.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// stdout carries the MCP transport, so logs go to stderr.
	var lc logConfig
	if err := envconfig.Process(ctx, &lc); err != nil {
		clog.FatalContextf(ctx, "processing log config: %v", err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lc.Level})
	slog.SetDefault(slog.New(handler))
	ctx = clog.WithLogger(ctx, clog.New(handler))

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		clog.ErrorContextf(ctx, "%v", err)
		os.Exit(1)
	}
}
