package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	full    bool
	restore bool
	format  string
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new grim configuration file",
		Long: heredoc.Doc(`
			Create a new .grim.yml configuration file in the current directory
			with sensible defaults. The file can be customized to enable or disable
			matchers, change their priority, and tune code and math handling.

			An existing file is only replaced with --force, and is kept next to the
			new one with a .grim.bak suffix. --restore puts that backup back.
		`),
		Example: heredoc.Doc(`
			grim init                       # Create minimal .grim.yml
			grim init --full                # Document every matcher
			grim init --format json         # Create .grim.json instead
			grim init --output custom.yml   # Write to a custom file path
			grim init --restore             # Undo the last --force
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.restore, "restore", false, "restore the configuration file from its backup")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate a full template with all matchers documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .grim.yml or .grim.json)")

	return cmd
}

func restoreConfig(ctx context.Context, absPath, outputPath string, logger *log.Logger) error {
	restored, err := fsutil.RestoreBackup(ctx, absPath)
	if err != nil {
		return errors.Join(ErrIO, fmt.Errorf("restore %s: %w", outputPath, err))
	}
	if !restored {
		return errors.Join(ErrUsage, fmt.Errorf("no backup found at %s", fsutil.BackupPath(outputPath)))
	}
	logger.Info("restored configuration file", logging.FieldPath, outputPath)
	return nil
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return errors.Join(ErrUsage, fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = ".grim.json"
		} else {
			outputPath = ".grim.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if flags.restore {
		return restoreConfig(ctx, absPath, outputPath, logger)
	}

	if _, _, err := fsutil.ReadFile(ctx, absPath); err == nil {
		if !flags.force {
			return errors.Join(ErrUsage, fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		backup, err := fsutil.Backup(ctx, absPath)
		if err != nil {
			return errors.Join(ErrIO, fmt.Errorf("back up %s: %w", outputPath, err))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath, logging.FieldOutput, backup)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return errors.Join(ErrIO, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template includes all matchers with documentation")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'grim matchers' to see all available matchers")

	return nil
}
