package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/grim/pkg/codefence"
	"github.com/yaklabco/grim/pkg/compositor"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/parser/goldmark"
	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
)

// CompositorOptions translates a resolved configuration into compositor
// options. A nil cfg yields the defaults.
func CompositorOptions(cfg *config.Config, logger *log.Logger) []compositor.Option {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	enabled, priorities := cfg.MatcherOverrides()

	flavor := string(cfg.Decorate.Flavor)
	if flavor == "" {
		flavor = goldmark.FlavorGFM
	}

	opts := []compositor.Option{
		compositor.WithScannerOptions(scanner.Options{
			Enabled:    enabled,
			Priorities: priorities,
		}),
		compositor.WithMathOptions(render.MathOptions{Strict: cfg.StrictMath()}),
		compositor.WithSkipCode(cfg.SkipCode()),
		compositor.WithCodeFenceOptions(
			codefence.WithParser(goldmark.New(flavor)),
			codefence.WithLabels(cfg.FenceLabels()),
		),
	}
	if logger != nil {
		opts = append(opts, compositor.WithLogger(logger))
	}
	return opts
}
