// Package main is the entry point for the macrorec input recorder.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/macrorec/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:], os.Stderr)
	if done {
		return code
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// parseFlags returns the options, or an exit code with done set when the
// process should exit without running.
func parseFlags(args []string, stderr io.Writer) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("macrorec", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion bool
	var showHelp bool

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable debug mode")
	fs.BoolVar(&opts.Debug, "d", false, "Enable debug mode (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.Loop, "loop", false, "Start with looping enabled")
	fs.BoolVar(&opts.Watch, "watch", true, "Reload hotkeys when the configuration file changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "macrorec - record and replay keyboard and mouse input\n\n")
		fmt.Fprintf(out, "Usage: macrorec [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nHotkeys (defaults):\n")
		fmt.Fprintf(out, "  F4  start recording\n")
		fmt.Fprintf(out, "  F2  stop recording or playback\n")
		fmt.Fprintf(out, "  F3  toggle looping\n")
		fmt.Fprintf(out, "  F1  play, pause, resume\n")
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  macrorec                     Run with default hotkeys\n")
		fmt.Fprintf(out, "  macrorec -c macrorec.toml    Run with a configuration file\n")
		fmt.Fprintf(out, "  macrorec -loop -d            Loop playback, debug logging\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showHelp {
		fs.Usage()
		return opts, 0, true
	}

	if showVersion {
		fmt.Printf("macrorec %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}

	// Validate log level
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, 1, true
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		return opts, 2, true
	}

	return opts, 0, false
}
