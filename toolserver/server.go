/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/chainguard-dev/clog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chainguard.dev/prpublish/operations"
)

const (
	// Name is the server name announced during initialization.
	Name = "github_pr_analysis"
	// Version is the server version announced during initialization.
	Version = "1.0.0"
)

// Operator runs the tool operations.
type Operator interface {
	FetchPR(ctx context.Context, req operations.FetchRequest) operations.FetchResult
	CreatePage(ctx context.Context, req operations.PublishRequest) string
}

// Server binds an Operator to the MCP protocol.
type Server struct {
	ops Operator
	mcp *server.MCPServer
}

// New registers every operation with a new MCP server.
func New(ops Operator) (*Server, error) {
	s := &Server{
		ops: ops,
		mcp: server.NewMCPServer(Name, Version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
	}
	for _, op := range All() {
		tool, err := newTool(op)
		if err != nil {
			return nil, err
		}
		s.mcp.AddTool(tool, s.handler(op))
	}
	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

func newTool(op Operation) (mcp.Tool, error) {
	raw, err := op.InputSchema()
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("building schema for %s: %w", op, err)
	}
	tool := mcp.NewToolWithRawSchema(op.String(), op.Description(), raw)

	switch op {
	case OpFetchPR:
		tool.Annotations = mcp.ToolAnnotation{
			Title:           "Fetch pull request",
			ReadOnlyHint:    mcp.ToBoolPtr(true),
			DestructiveHint: mcp.ToBoolPtr(false),
			IdempotentHint:  mcp.ToBoolPtr(true),
			OpenWorldHint:   mcp.ToBoolPtr(true),
		}
	case OpCreateNotionPage:
		tool.Annotations = mcp.ToolAnnotation{
			Title:           "Create Notion page",
			ReadOnlyHint:    mcp.ToBoolPtr(false),
			DestructiveHint: mcp.ToBoolPtr(false),
			IdempotentHint:  mcp.ToBoolPtr(false),
			OpenWorldHint:   mcp.ToBoolPtr(true),
		}
	}
	return tool, nil
}

// Dispatch runs op with raw JSON arguments. The returned error reports
// malformed arguments only; operation failures are part of the result.
func (s *Server) Dispatch(ctx context.Context, op Operation, args map[string]any) (any, error) {
	switch op {
	case OpFetchPR:
		req, err := fetchRequest(args)
		if err != nil {
			return nil, err
		}
		return s.ops.FetchPR(ctx, req), nil

	case OpCreateNotionPage:
		req, err := publishRequest(args)
		if err != nil {
			return nil, err
		}
		return s.ops.CreatePage(ctx, req), nil

	default:
		return nil, fmt.Errorf("unknown operation %v", op)
	}
}

func (s *Server) handler(op Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := clog.FromContext(ctx).With("tool", op.String())

		result, err := s.Dispatch(ctx, op, req.GetArguments())
		if err != nil {
			log.With("error", err).Warn("Rejected tool call")
			return mcp.NewToolResultError(err.Error()), nil
		}

		switch v := result.(type) {
		case string:
			return mcp.NewToolResultText(v), nil
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encoding %s result: %w", op, err)
			}
			return mcp.NewToolResultText(string(b)), nil
		}
	}
}

// ServeStdio serves the protocol over in and out until in is closed or ctx is done.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))

	clog.FromContext(ctx).Info("Running MCP server for GitHub PR analysis")
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}
