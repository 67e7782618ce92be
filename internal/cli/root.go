// Package cli provides the Cobra command structure for grim.
package cli

import (
	"errors"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/yaklabco/grim/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root grim command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "grim",
		Short: "Live Markdown decorations for editors and terminals",
		Long: heredoc.Doc(`
			grim computes the decorations a live Markdown editor draws over raw
			source: rendered emphasis, headings and list markers, typeset inline
			and block math, and labelled code fences.

			Constructs touching the caret or a selection stay raw so they can be
			edited. Use decorate to inspect decorations, preview to render a
			document, and watch to re-render it on every save.
		`),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		Annotations: map[string]string{
			annotationExitCodes: heredoc.Doc(`
				0   success
				1   some files could not be read or decorated
				2   math fell back to literal source (with --strict)
				64  invalid flags or arguments
				65  invalid configuration
				70  internal error
				74  i/o error`),
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newDecorateCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newMatchersCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
