// Package main implements the hydronet command: solve, validate and serve
// pipe-network discharge problems with the Hardy-Cross method.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/hydronet/internal/config"
)

var version = "dev"

const usage = `usage: hydronet <command> [flags]

commands:
  reference   print the reference network
  validate    check a network file
  solve       solve a network (reference network when -f is omitted)
  serve       start the HTTP API
  version     print the version
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	slog.SetDefault(logger)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "reference":
		err = cmdReference(rest, stdout)
	case "validate":
		err = cmdValidate(rest, stdout)
	case "solve":
		err = cmdSolve(rest, cfg, logger, stdout)
	case "serve":
		err = cmdServe(cfg, logger)
	case "version":
		fmt.Fprintln(stdout, version)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	if err != nil {
		if !errors.Is(err, errInvalidNetwork) {
			logger.Error(cmd+" failed", "err", err)
		}
		return 1
	}

	return 0
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}

	return slog.New(slog.NewTextHandler(w, hopts)), nil
}
