// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/scanner"

	// Register the built-in matchers so matcher keys can be resolved.
	_ "github.com/yaklabco/grim/pkg/scanner/matchers"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves matcher names and aliases. Defaults to scanner.DefaultRegistry.
	Registry *scanner.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GRIM_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.grim.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/grim/config.yaml)
//  6. System config (/etc/grim/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = scanner.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Accept matcher names and aliases such as "emphasis" in config.
	normalizeMatcherKeys(cfg, registry, result)

	validation := ValidateWith(cfg, registry)
	if !validation.Valid() {
		return nil, validation.Err()
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// normalizeMatcherKeys converts matcher names and aliases to canonical IDs,
// in the Matchers map and in the enable/disable lists.
// If a matcher is configured under two keys, the last one wins with a warning.
func normalizeMatcherKeys(cfg *config.Config, registry *scanner.Registry, result *LoadResult) {
	cfg.EnableMatchers = canonicalIDs(cfg.EnableMatchers, registry)
	cfg.DisableMatchers = canonicalIDs(cfg.DisableMatchers, registry)

	if len(cfg.Matchers) == 0 {
		return
	}

	normalized := make(map[string]config.MatcherConfig, len(cfg.Matchers))
	seenIDs := make(map[string]string)

	for key, matcherCfg := range cfg.Matchers {
		canonicalID, _, found := registry.Resolve(key)
		if !found {
			// Unknown matcher, validation warns about it.
			normalized[key] = matcherCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate matcher configuration: %q and %q both refer to %s; using last value",
					originalKey, key, canonicalID))
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = matcherCfg
	}

	cfg.Matchers = normalized
}

func canonicalIDs(keys []string, registry *scanner.Registry) []string {
	if keys == nil {
		return nil
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		if id, _, found := registry.Resolve(key); found {
			key = id
		}
		ids = append(ids, key)
	}
	return ids
}
