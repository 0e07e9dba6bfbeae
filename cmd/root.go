package cmd

import (
	"fmt"
	"os"

	"debuggee/internal/config"
	"debuggee/internal/errors"
	"debuggee/internal/testcase"

	"github.com/spf13/cobra"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "debuggee [flags] <testcase>",
		Short: "Fixture program for debugger adapter tests",
		Long: `Debuggee is launched under a debugger by an external test suite. The first
argument selects a canned behavior: stdio, panic, spawn, sleep or inf_loop.
Any other value runs the value-shape exercises used for variable inspection.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebuggee(cmd, cfg, args)
		},
	}

	// Flags must precede the testcase. Everything from the testcase on is
	// positional, so "debuggee stdio --list" runs stdio.
	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	flags.DurationVar(&cfg.SleepFor, "sleep-for", config.DefaultSleepFor, "How long the sleep testcase blocks (0 selects the default)")
	flags.DurationVar(&cfg.Tick, "tick", config.DefaultTick, "Pause between inf_loop counter updates (0 selects the default)")
	flags.BoolVar(&cfg.Debug, "debug", false, "Write diagnostic logs to stderr")
	flags.StringVar(&cfg.LogFile, "log", "", "Write diagnostic logs to this file as JSON lines")
	flags.BoolVar(&cfg.List, "list", false, "Print the testcase catalog and exit")
	flags.Var((*listFormatFlag)(&cfg.ListFormat), "format", "Catalog format (text, json, yaml)")

	return rootCmd
}

// Execute runs the root command and exits with the status the harness
// expects: -1 when no testcase is given, 1 on any other failure.
func Execute() {
	cfg := &config.Config{}
	if err := newRootCmd(cfg).Execute(); err != nil {
		if errors.IsUsage(err) {
			fmt.Fprintln(os.Stdout, errors.Message(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", errors.Message(err))
		}
		os.Exit(errors.ExitCode(err))
	}
}

func runDebuggee(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		cfg.Testcase = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.List {
		return listTestcases(cmd.OutOrStdout(), cfg.ListFormat)
	}

	if len(args) == 0 {
		return errors.NewUsageError(testcase.NoTestcaseMessage)
	}

	return executeTestcase(cmd.Context(), cfg)
}

type listFormatFlag config.ListFormat

func (f *listFormatFlag) String() string {
	return string(*f)
}

func (f *listFormatFlag) Set(v string) error {
	switch config.ListFormat(v) {
	case config.ListFormatText, config.ListFormatJSON, config.ListFormatYAML:
		*f = listFormatFlag(v)
		return nil
	default:
		return fmt.Errorf("must be 'text', 'json' or 'yaml'")
	}
}

func (f *listFormatFlag) Type() string {
	return "string"
}
