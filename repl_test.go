package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"
)

type promptResult struct {
	line string
	err  error
}

// scriptedPrompter replays canned input and records the prompts it was shown.
type scriptedPrompter struct {
	inputs  []promptResult
	prompts []string
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.inputs) == 0 {
		return "", io.EOF
	}
	next := p.inputs[0]
	p.inputs = p.inputs[1:]
	return next.line, next.err
}

func lines(ls ...string) *scriptedPrompter {
	p := &scriptedPrompter{}
	for _, l := range ls {
		p.inputs = append(p.inputs, promptResult{line: l})
	}
	return p
}

func TestReadByParseProbe(t *testing.T) {
	p := lines("(define x", "  5)", "x")

	code, ok := readByParseProbe(p)
	if !ok || code != "(define x\n  5)" {
		t.Fatalf("unexpected input %q %v", code, ok)
	}
	if len(p.prompts) != 2 || p.prompts[0] != promptMain || p.prompts[1] != promptCont {
		t.Errorf("unexpected prompts %q", p.prompts)
	}

	code, ok = readByParseProbe(p)
	if !ok || code != "x" {
		t.Errorf("unexpected input %q %v", code, ok)
	}

	if _, ok := readByParseProbe(p); ok {
		t.Error("expected EOF to end input")
	}
}

func TestReadByParseProbeSyntaxError(t *testing.T) {
	// a closed paren too many is an error, not a reason to keep reading
	code, ok := readByParseProbe(lines("1)"))
	if !ok || code != "1)" {
		t.Errorf("unexpected input %q %v", code, ok)
	}
}

func TestReadByParseProbeAborted(t *testing.T) {
	p := &scriptedPrompter{inputs: []promptResult{
		{line: "(+ 1"},
		{err: liner.ErrPromptAborted},
	}}
	code, ok := readByParseProbe(p)
	if !ok || code != "" {
		t.Errorf("an aborted prompt should discard the input, got %q %v", code, ok)
	}
}

func TestReplLoop(t *testing.T) {
	var out, errOut bytes.Buffer
	var remembered []string

	p := lines(
		"(define x",
		"  5)",
		"(* x 2)",
		"",
		"(car '())",
		"x",
		":help",
		":bogus",
	)
	replLoop(p, NewSession(testLogger()), &out, &errOut, func(code string) {
		remembered = append(remembered, code)
	})

	if !strings.Contains(out.String(), "10\n5\n") {
		t.Errorf("unexpected output %q", out.String())
	}
	if !strings.Contains(out.String(), "REPL commands") {
		t.Errorf("missing help in %q", out.String())
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("missing unknown command notice in %q", out.String())
	}
	if !strings.HasPrefix(errOut.String(), "Evaluation error: TypeError") {
		t.Errorf("unexpected diagnostics %q", errOut.String())
	}
	if len(remembered) != 4 {
		t.Errorf("expected 4 history entries, got %q", remembered)
	}
}

func TestReplLoopQuit(t *testing.T) {
	var out, errOut bytes.Buffer
	p := lines("1", ":quit", "2")
	replLoop(p, NewSession(testLogger()), &out, &errOut, func(string) {})

	if out.String() != "1\n" {
		t.Errorf("expected input after :quit to be ignored, got %q", out.String())
	}
	if len(p.inputs) != 1 {
		t.Errorf("expected one unread line, got %d", len(p.inputs))
	}
}

func TestReplLoopEnv(t *testing.T) {
	var out, errOut bytes.Buffer
	replLoop(lines("(define answer 42)", ":env"), NewSession(testLogger()), &out, &errOut, func(string) {})

	listed := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(listed) == 0 || listed[0] != "answer" {
		t.Errorf("expected answer listed first, got %q", out.String())
	}
	if !strings.Contains(out.String(), "\ncar\n") {
		t.Errorf("expected primitives listed, got %q", out.String())
	}
}
