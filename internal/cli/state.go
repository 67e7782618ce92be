package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/grim/internal/configloader"
	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/selection"
)

// ErrInvalidRange is returned for malformed --selection or --viewport values.
var ErrInvalidRange = errors.New("invalid range")

// stateFlags are the editor-state flags shared by decorate, preview and watch.
type stateFlags struct {
	cursors       []int
	selections    []string
	viewports     []string
	viewportLines int
	skipCode      bool
	disable       []string
	enable        []string
	strictMath    bool
}

func addStateFlags(cmd *cobra.Command, flags *stateFlags) {
	cmd.Flags().IntSliceVar(&flags.cursors, "cursor", nil, "caret byte offset (repeatable)")
	cmd.Flags().StringSliceVar(&flags.selections, "selection", nil, "selected range as anchor:head (repeatable)")
	cmd.Flags().StringSliceVar(&flags.viewports, "viewport", nil, "visible range as from:to (repeatable)")
	cmd.Flags().IntVar(&flags.viewportLines, "viewport-lines", 0, "lines visible from the top when --viewport is unset (0 = all)")
	cmd.Flags().BoolVar(&flags.skipCode, "skip-code", false, "keep inline decorations out of code spans and fenced code")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "matcher IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "matcher IDs or names to enable")
	cmd.Flags().BoolVar(&flags.strictMath, "strict-math", false, "reject non-ASCII characters inside math")
}

// selection builds the selection from --cursor and --selection.
func (f *stateFlags) selection() (selection.Selection, error) {
	ranges := make([]selection.Range, 0, len(f.cursors)+len(f.selections))
	for _, pos := range f.cursors {
		if pos < 0 {
			return selection.Selection{}, fmt.Errorf("%w: cursor %d is negative", ErrInvalidRange, pos)
		}
		ranges = append(ranges, selection.Range{Anchor: pos, Head: pos})
	}
	for _, value := range f.selections {
		anchor, head, err := parseRange(value)
		if err != nil {
			return selection.Selection{}, fmt.Errorf("selection: %w", err)
		}
		ranges = append(ranges, selection.Range{Anchor: anchor, Head: head})
	}
	if len(ranges) == 0 {
		return selection.Empty(), nil
	}
	return selection.Create(ranges...), nil
}

// viewport builds the visible ranges from --viewport.
func (f *stateFlags) viewport() ([]document.Range, error) {
	ranges := make([]document.Range, 0, len(f.viewports))
	for _, value := range f.viewports {
		from, to, err := parseRange(value)
		if err != nil {
			return nil, fmt.Errorf("viewport: %w", err)
		}
		ranges = append(ranges, document.Range{From: from, To: to}.Normalize())
	}
	return ranges, nil
}

// apply copies explicitly set flags onto the CLI config layer.
func (f *stateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("skip-code") {
		cfg.Decorate.SkipCode = config.Bool(f.skipCode)
	}
	if cmd.Flags().Changed("strict-math") {
		cfg.Math.Strict = config.Bool(f.strictMath)
	}
	if cmd.Flags().Changed("viewport-lines") {
		cfg.Decorate.ViewportLines = f.viewportLines
	}
	cfg.EnableMatchers = f.enable
	cfg.DisableMatchers = f.disable
}

// parseRange parses "from:to" into two non-negative byte offsets.
func parseRange(value string) (int, int, error) {
	left, right, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q (want from:to)", ErrInvalidRange, value)
	}
	from, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil || from < 0 {
		return 0, 0, fmt.Errorf("%w: %q (bad start)", ErrInvalidRange, value)
	}
	to, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil || to < 0 {
		return 0, 0, fmt.Errorf("%w: %q (bad end)", ErrInvalidRange, value)
	}
	return from, to, nil
}

// loadedConfig is the resolved configuration plus the context it came from.
type loadedConfig struct {
	cfg     *config.Config
	workDir string
	logger  *log.Logger
}

// loadConfig resolves configuration for a command with cliCfg as the
// highest-precedence layer, and logs loader warnings.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	if cfg.LogLevel != "" && !debugEnabled(cmd) {
		logging.SetLevel(cfg.LogLevel)
	}

	return &loadedConfig{cfg: cfg, workDir: workDir, logger: logger}, nil
}

func debugEnabled(cmd *cobra.Command) bool {
	debug, err := cmd.Flags().GetBool("debug")
	return err == nil && debug
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}
