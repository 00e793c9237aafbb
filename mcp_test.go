package main

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func evalRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "scheme_eval"
	req.Params.Arguments = args
	return req
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func callEval(t *testing.T, session *Session, source string) *mcp.CallToolResult {
	t.Helper()
	res, err := session.handleEval(context.Background(), evalRequest(map[string]any{"source": source}))
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestMCPEval(t *testing.T) {
	session := NewSession(testLogger())

	res := callEval(t, session, "(define sq (lambda (x) (* x x))) (sq 4)")
	if res.IsError {
		t.Fatalf("unexpected error %q", resultText(res))
	}
	if text := resultText(res); text != "16" {
		t.Errorf("expected 16, got %q", text)
	}

	res = callEval(t, session, "(sq 5) '(a b)")
	if text := resultText(res); res.IsError || text != "25\n(a b)" {
		t.Errorf("expected definitions to persist, got %q", text)
	}
}

func TestMCPEvalError(t *testing.T) {
	session := NewSession(testLogger())

	res := callEval(t, session, "(+ 1 2) (car 5)")
	if !res.IsError {
		t.Fatal("expected an error result")
	}
	text := resultText(res)
	if !strings.HasPrefix(text, "3\n") || !strings.Contains(text, "Evaluation error: TypeError") {
		t.Errorf("unexpected text %q", text)
	}

	res = callEval(t, session, "(+ 1")
	if !res.IsError || !strings.Contains(resultText(res), "Syntax error") {
		t.Errorf("unexpected result %q", resultText(res))
	}
}

func TestMCPEvalMissingSource(t *testing.T) {
	session := NewSession(testLogger())
	res, err := session.handleEval(context.Background(), evalRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected an error result without source")
	}
}

func TestMCPReset(t *testing.T) {
	session := NewSession(testLogger())
	callEval(t, session, "(define sq (lambda (x) (* x x)))")

	res, err := session.handleReset(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resultText(res) != "session reset" {
		t.Errorf("unexpected text %q", resultText(res))
	}

	res = callEval(t, session, "(sq 2)")
	if !res.IsError || !strings.Contains(resultText(res), "UnboundSymbol") {
		t.Errorf("expected sq to be gone, got %q", resultText(res))
	}
}

func TestNewMCPServer(t *testing.T) {
	if newMCPServer(NewSession(testLogger())) == nil {
		t.Fatal("expected a server")
	}
}
