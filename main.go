package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	appName = "goscheme"
	Version = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		if isInputRedirected() {
			os.Exit(cmdRun([]string{"-"}))
		}
		os.Exit(cmdRepl(nil))
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "mcp":
		os.Exit(cmdMCP(os.Args[2:]))
	case "version":
		fmt.Println(Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`goscheme %s

Usage:
  %s run [-log-level L] <file.scm | ->     Evaluate a program, printing each result.
  %s repl [-log-level L] [-history F]      Start the REPL.
  %s mcp [-log-level L]                    Serve evaluation over MCP on stdio.
  %s version                               Print the version.

`, Version, appName, appName, appName, appName)
}

func isInputRedirected() bool {
	fi, _ := os.Stdin.Stat()
	return (fi.Mode() & os.ModeCharDevice) == 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func logLevelFlag(fs *flag.FlagSet) *string {
	return fs.String("log-level", envOr("GOSCHEME_LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")
}

// newLogger builds the stderr logger shared by every front end. Stdout is
// reserved for results and the MCP protocol.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	return logger, nil
}

// reportError prints the diagnostic for a failed read or evaluation.
func reportError(w io.Writer, err error) {
	if _, ok := KindOf(err); ok {
		fmt.Fprintf(w, "Evaluation error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Syntax error: %v\n", err)
}

// printResult writes val unless it has no printable form.
func printResult(w io.Writer, val Datum) {
	if out := Print(val); out != "" {
		fmt.Fprintln(w, out)
	}
}

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	level := logLevelFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.scm | ->\n", appName)
		return 2
	}

	logger, err := newLogger(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}

	var in io.Reader = os.Stdin
	if path := fs.Arg(0); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
			return 1
		}
		defer f.Close()
		in = f
	}

	return runProgram(NewSession(logger), in, os.Stdout, os.Stderr)
}

// runProgram reads the whole program, then evaluates it form by form. The
// first error ends the run with status 1.
func runProgram(session *Session, in io.Reader, out, errOut io.Writer) int {
	root, err := ReadAll(in)
	if err != nil {
		reportError(errOut, err)
		return 1
	}

	err = session.Run(root, func(val Datum) {
		printResult(out, val)
	})
	if err != nil {
		reportError(errOut, err)
		return 1
	}
	return 0
}
