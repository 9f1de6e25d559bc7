// Package cli implements the gears command line: encoding transition
// system models into GR(1) specifications, rendering formula trees,
// combining specifications, and browsing the run archive.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gears CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gears",
		Short: "gears - GR(1) specification tooling",
		Long: `Compile labeled transition system models into GR(1) specifications,
render formula trees into solver dialects, and archive encoding runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewCombineCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger builds the slog logger handed to library code. Diagnostics
// go to the command's error stream so JSON output stays parseable.
func newLogger(opts *RootOptions, errWriter io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	if opts.Format == "json" {
		return slog.New(slog.NewJSONHandler(errWriter, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(errWriter, &slog.HandlerOptions{Level: level}))
}
