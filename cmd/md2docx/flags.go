package main

import (
	"errors"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag parsing.
var ErrNoInput = errors.New("usage: md2docx [flags] <input.md|input.docx> [more inputs...]")

// cliFlags holds all parsed command-line options.
type cliFlags struct {
	inputs     []string
	output     string
	config     string
	workers    int
	polishCmd  string
	noPolish   bool
	verbose    bool
	version    bool
	initConfig bool
}

// parseFlags parses args (without the program name) into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("md2docx", flag.ContinueOnError)
	fs.StringVarP(&flags.output, "output", "o", "", "output file or directory (default: next to input)")
	fs.StringVarP(&flags.config, "config", "c", "", "path to YAML config file")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel conversions for batch input (default: config or 1)")
	fs.StringVar(&flags.polishCmd, "polish-cmd", "", "pipe extracted markdown through this command (fail-open)")
	fs.BoolVar(&flags.noPolish, "no-polish", false, "disable polishing even when configured")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log all conversion events to stderr")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")
	fs.BoolVar(&flags.initConfig, "init-config", false, "write a default config file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	flags.inputs = fs.Args()
	if len(flags.inputs) == 0 && !flags.version && !flags.initConfig {
		return nil, ErrNoInput
	}
	return flags, nil
}
