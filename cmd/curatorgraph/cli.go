// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/metrics"
)

// Commands
const (
	cmdRun     = "run"
	cmdServe   = "serve"
	cmdVersion = "version"
)

// errUsage marks argument errors; the usage text has already been printed.
var errUsage = errors.New("usage")

// options are the parsed command line arguments.
type options struct {
	command    string
	configPath string
	seed       bool
	save       bool
	pretty     bool
}

// parseArgs parses the subcommand and its flags. No subcommand means serve.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	opts := options{command: cmdServe}
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		opts.command = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("curatorgraph "+opts.command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	switch opts.command {
	case cmdRun:
		fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
		fs.BoolVar(&opts.seed, "seed", false, "seed the demo network into an empty database")
		fs.BoolVar(&opts.save, "save", false, "also write the report to the report store")
		fs.BoolVar(&opts.pretty, "pretty", false, "indent the JSON report")
	case cmdServe:
		fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
		fs.BoolVar(&opts.seed, "seed", false, "seed the demo network into an empty database")
	case cmdVersion:
	default:
		fmt.Fprintf(stderr, "unknown command %q (want %s, %s or %s)\n", opts.command, cmdRun, cmdServe, cmdVersion)
		return options{}, errUsage
	}

	if err := fs.Parse(args); err != nil {
		return options{}, errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return options{}, errUsage
	}
	return opts, nil
}

// runMain executes the command line and returns the process exit code.
func runMain(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return 2
	}

	if opts.command == cmdVersion {
		fmt.Fprintf(stdout, "curatorgraph %s (%s)\n", Version, runtime.Version())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	logging.Init(cfg.Logging)
	metrics.AppInfo.WithLabelValues(Version, runtime.Version()).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch opts.command {
	case cmdRun:
		err = runCommand(ctx, cfg, opts, stdout)
	default:
		err = serveCommand(ctx, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Str("command", opts.command).Msg("Command failed")
		return 1
	}
	return 0
}

// loadConfig loads the layered configuration and applies command line overrides.
func loadConfig(opts options) (*config.Config, error) {
	if opts.configPath != "" {
		if _, err := os.Stat(opts.configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := os.Setenv(config.ConfigPathEnvVar, opts.configPath); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.seed {
		cfg.Database.SeedDemoData = true
	}
	// A one-shot run does not hold the report store open
	if opts.command == cmdRun && !opts.save {
		cfg.Store.InMemory = true
	}
	return cfg, nil
}
