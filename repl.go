package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	historyFile = ".goscheme_history"
	promptMain  = "scheme> "
	promptCont  = "...> "
)

var replHelp = `REPL commands:
  :env     List global bindings
  :help    Show this help
  :quit    Exit the REPL
`

// prompter is the part of *liner.State the REPL loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	level := logLevelFlag(fs)
	histPath := fs.String("history", envOr("GOSCHEME_HISTORY", defaultHistoryPath()), "history file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := newLogger(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}

	fmt.Printf("goscheme %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(*histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(*histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := NewSession(logger)
	session.log.Info("repl started")
	replLoop(ln, session, os.Stdout, os.Stderr, func(code string) {
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	})
	return 0
}

// replLoop reads inputs until EOF or :quit. An error ends the current input
// only; the session and its bindings survive.
func replLoop(p prompter, session *Session, out, errOut io.Writer, remember func(string)) {
	for {
		code, ok := readByParseProbe(p)
		if !ok {
			fmt.Fprintln(out)
			return
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return
			case ":help":
				fmt.Fprint(out, replHelp)
			case ":env":
				for _, sym := range session.Globals() {
					fmt.Fprintln(out, sym)
				}
			default:
				fmt.Fprintln(out, "unknown command. Type :help for commands.")
			}
			continue
		}

		remember(code)
		results, err := session.EvalSource(code)
		for _, val := range results {
			printResult(out, val)
		}
		if err != nil {
			reportError(errOut, err)
		}
	}
}

// readByParseProbe keeps prompting until the accumulated input no longer
// ends inside a list or string.
func readByParseProbe(p prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := ReadAll(strings.NewReader(src)); IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
