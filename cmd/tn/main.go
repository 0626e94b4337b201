// Package main is the entry point for the tn CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jacksmith/tn/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	logLevelFlag string
	noColorFlag  bool

	// logLevel is shared by every handler so the workspace config can
	// lower or raise it after flags are parsed.
	logLevel = new(slog.LevelVar)
	logger   = slog.New(slog.DiscardHandler)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tn",
	Short: "tn - todos and notes with freehand drawings",
	Long: `tn keeps a todo list and a collection of notes in a local .tn/ directory.

Notes can carry a drawing made from freehand strokes with undo and redo.
Draw from the command line with "tn draw" or in the browser with "tn serve".`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("tn version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error (default from .tnconfig.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

func setupGlobals(cmd *cobra.Command, args []string) error {
	if noColorFlag {
		cli.SetColorEnabled(false)
	}
	if logLevelFlag != "" {
		if err := setLogLevel(logLevelFlag); err != nil {
			return err
		}
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	return nil
}

func setLogLevel(s string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return &cli.ValidationError{Field: "log level", Message: fmt.Sprintf("%q (expected debug, info, warn or error)", s)}
	}
	logLevel.Set(lvl)
	return nil
}
