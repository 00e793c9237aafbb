package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func newMCPServer(session *Session) *server.MCPServer {
	s := server.NewMCPServer(
		appName,
		Version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("scheme_eval",
			mcp.WithDescription("Evaluate Scheme source in the persistent session. Returns one printed result per top-level form; definitions persist across calls."),
			mcp.WithString("source",
				mcp.Required(),
				mcp.Description("One or more top-level forms, e.g. (define sq (lambda (x) (* x x))) (sq 4)"),
			),
		),
		session.handleEval,
	)

	s.AddTool(
		mcp.NewTool("scheme_reset",
			mcp.WithDescription("Discard every definition and start over with only the primitives bound."),
		),
		session.handleReset,
	)

	return s
}

func cmdMCP(args []string) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	level := logLevelFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := newLogger(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}

	session := NewSession(logger)
	session.log.Info("serving MCP on stdio")
	if err := server.ServeStdio(newMCPServer(session)); err != nil {
		session.log.WithError(err).Error("mcp server stopped")
		return 1
	}
	return 0
}

func (s *Session) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := s.EvalSource(source)
	var lines []string
	for _, val := range results {
		if out := Print(val); out != "" {
			lines = append(lines, out)
		}
	}

	if err != nil {
		var sb strings.Builder
		reportError(&sb, err)
		lines = append(lines, strings.TrimSuffix(sb.String(), "\n"))
		return mcp.NewToolResultError(strings.Join(lines, "\n")), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Session) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.Reset()
	return mcp.NewToolResultText("session reset"), nil
}
