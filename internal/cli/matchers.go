package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/compositor"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/runner"
	"github.com/yaklabco/grim/pkg/scanner"
)

type matchersFlags struct {
	matcherFormat string
	format        string
	disable       []string
	enable        []string
}

const formatJSON = "json"

// matcherInfo represents a matcher in JSON output.
type matcherInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Enabled     bool   `json:"enabled"`
}

func newMatchersCommand() *cobra.Command {
	flags := &matchersFlags{}

	cmd := &cobra.Command{
		Use:   "matchers",
		Short: "List the inline pattern matchers",
		Long: heredoc.Doc(`
			List the pattern matchers with their IDs, effective priority and whether
			they are enabled once configuration and --enable/--disable are applied.

			When two decorations cover the same text, the matcher with the lower
			priority number wins.
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatchers(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.matcherFormat, "matcher-format", "name",
		"matcher identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "matcher IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "matcher IDs or names to enable")

	return cmd
}

func runMatchers(cmd *cobra.Command, flags *matchersFlags) error {
	loaded, err := loadConfig(cmd, &config.Config{
		EnableMatchers:  flags.enable,
		DisableMatchers: flags.disable,
	})
	if err != nil {
		return err
	}

	sc := compositor.New(runner.CompositorOptions(loaded.cfg, loaded.logger)...).Scanner()
	infos := effectiveMatchers(sc)

	if flags.format == formatJSON {
		return outputMatchersJSON(cmd.OutOrStdout(), infos)
	}

	logger := logging.NewInteractive()
	logger.SetOutput(cmd.OutOrStdout())
	logger.SetReportTimestamp(false)

	if len(infos) == 0 {
		logger.Info("no matchers registered")
		return nil
	}

	logger.Info("available matchers")

	matcherFormat := config.MatcherFormat(flags.matcherFormat)
	for _, info := range infos {
		logger.Info(config.FormatMatcherID(matcherFormat, info.ID, info.Name),
			logging.FieldPriority, info.Priority,
			logging.FieldEnabled, info.Enabled,
			logging.FieldDescription, info.Description,
		)
	}

	return nil
}

// effectiveMatchers lists every registered matcher in registry order with
// the scanner's overrides applied.
func effectiveMatchers(sc *scanner.Scanner) []matcherInfo {
	matchers := sc.Registry().Matchers()
	infos := make([]matcherInfo, 0, len(matchers))
	for _, m := range matchers {
		infos = append(infos, matcherInfo{
			ID:          m.ID(),
			Name:        m.Name(),
			Description: m.Description(),
			Priority:    sc.Priority(m),
			Enabled:     sc.Enabled(m),
		})
	}
	return infos
}

// outputMatchersJSON outputs matchers as a JSON array.
func outputMatchersJSON(w io.Writer, infos []matcherInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding matchers: %w", err)
	}
	return nil
}
