// enhancers-cli renders, serves and interactively drives searchable selects
// built from option catalogs.
//
// Usage:
//
//	enhancers-cli render --catalogs catalogs/ [--catalog country] [-o page.html]
//	enhancers-cli tui    --catalogs catalogs.yaml
//	enhancers-cli serve  --catalogs api.yaml --openapi --addr :8080
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

type command func(ctx context.Context, args []string, stdout io.Writer, logger *slog.Logger) error

var commands = map[string]command{
	"render": runRender,
	"tui":    runTUI,
	"serve":  runServe,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var verbose bool
	global := pflag.NewFlagSet("enhancers-cli", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(stderr)
	global.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	global.Usage = func() { printUsage(stderr, global) }
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr, global)
		return fmt.Errorf("missing command")
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		printUsage(stderr, global)
		return fmt.Errorf("unknown command %q", rest[0])
	}
	logger := newCommandLogger(stderr, verbose).With(slog.String("command", rest[0]))
	return cmd(ctx, rest[1:], stdout, logger)
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `enhancers-cli: searchable selects from option catalogs.

Usage:
  enhancers-cli [--verbose] <command> [flags]

Commands:
  render   write an enhanced HTML page for the catalogs
  tui      pick values in the terminal
  serve    host enhanced pages over HTTP

Global flags:
%s`, flagSet.FlagUsages())
}
