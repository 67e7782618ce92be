package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/reporter"
	"github.com/yaklabco/grim/pkg/runner"
)

type decorateFlags struct {
	state         stateFlags
	format        string
	flavor        string
	ignore        []string
	jobs          int
	strict        bool
	context       bool
	compact       bool
	perFile       bool
	flat          bool
	matcherFormat string
	summaryOrder  string
}

func newDecorateCommand() *cobra.Command {
	flags := &decorateFlags{}

	cmd := &cobra.Command{
		Use:   "decorate [paths...]",
		Short: "List the decorations computed for Markdown files",
		Long: heredoc.Doc(`
			Compute the decoration set for each Markdown file and report it.

			By default, decorates all .md and .markdown files in the current
			directory and subdirectories. The editor state every file is decorated
			under is simulated with --cursor, --selection and --viewport; constructs
			touching a caret or selection stay raw, and inline constructs are only
			scanned inside the visible ranges.
		`),
		Example: heredoc.Doc(`
			grim decorate                          # Decorate current directory
			grim decorate docs/                    # Decorate docs directory
			grim decorate README.md --cursor 12    # Caret at byte 12
			grim decorate --viewport 0:400         # Only the first 400 bytes visible
			grim decorate --format json            # Output as JSON
			grim decorate --strict                 # Exit 2 when math falls back
		`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecorate(cmd, args, flags)
		},
	}

	addStateFlags(cmd, &flags.state)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor used to locate code: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when any math falls back to literal source")
	cmd.Flags().BoolVar(&flags.context, "context", false, "show the source line under each decoration")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate table for each file (table format)")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "list decorations without grouping by file (text format)")
	cmd.Flags().StringVar(&flags.matcherFormat, "matcher-format", "name",
		"matcher identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "matchers",
		"order of tables in summary output: matchers, files")

	return cmd
}

func runDecorate(cmd *cobra.Command, args []string, flags *decorateFlags) error {
	sel, err := flags.state.selection()
	if err != nil {
		return err
	}
	viewport, err := flags.state.viewport()
	if err != nil {
		return err
	}

	cliCfg := &config.Config{
		Jobs:   flags.jobs,
		Ignore: flags.ignore,
	}
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return errors.Join(ErrUsage, err)
		}
		cliCfg.Format = format
	}
	if cmd.Flags().Changed("matcher-format") {
		cliCfg.MatcherFormat = config.MatcherFormat(flags.matcherFormat)
	}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Decorate.Flavor = config.Flavor(flags.flavor)
	}
	flags.state.apply(cmd, cliCfg)

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.cfg
	logger := loaded.logger

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	logger.Debug("configuration loaded",
		logging.FieldJobs, cfg.Jobs,
		logging.FieldSkipCode, cfg.SkipCode(),
		logging.FieldFormat, format,
	)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   loaded.workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
		Selection:    sel,
		Viewport:     viewport,
	}

	logger.Debug("starting decorate run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	ctx := logging.WithLogger(cmd.Context(), logger)
	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("decorate run failed"), err)
	}

	logger.Debug("decorate run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDecorationsTotal, result.Stats.DecorationsTotal,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         colorMode(cmd),
		ShowContext:   flags.context,
		ShowSummary:   true,
		GroupByFile:   !flags.flat,
		Compact:       flags.compact,
		PerFile:       flags.perFile,
		MatcherFormat: cfg.MatcherFormat,
		SummaryOrder:  config.SummaryOrder(flags.summaryOrder),
		WorkingDir:    loaded.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return errors.Join(ErrIO, fmt.Errorf("report results: %w", err))
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitFileErrors:
		return ErrFilesFailed
	case ExitMathFallbacks:
		return ErrMathFallbacks
	default:
		return nil
	}
}
