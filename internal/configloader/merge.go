package configloader

import "github.com/yaklabco/grim/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base.Clone()

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.MatcherFormat != "" {
		result.MatcherFormat = override.MatcherFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Decorate.SkipCode != nil {
		result.Decorate.SkipCode = override.Decorate.SkipCode
	}
	if override.Decorate.FenceLabels != nil {
		result.Decorate.FenceLabels = override.Decorate.FenceLabels
	}
	if override.Decorate.ViewportLines != 0 {
		result.Decorate.ViewportLines = override.Decorate.ViewportLines
	}
	if override.Decorate.Flavor != "" {
		result.Decorate.Flavor = override.Decorate.Flavor
	}
	if override.Math.Strict != nil {
		result.Math.Strict = override.Math.Strict
	}

	result.Matchers = mergeMatchers(base.Matchers, override.Matchers)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableMatchers != nil {
		result.EnableMatchers = override.EnableMatchers
	}
	if override.DisableMatchers != nil {
		result.DisableMatchers = override.DisableMatchers
	}

	return &result
}

// mergeMatchers performs a deep merge of matcher configurations.
func mergeMatchers(base, override map[string]config.MatcherConfig) map[string]config.MatcherConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.MatcherConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}

	for key, val := range override {
		existing, ok := result[key]
		if !ok {
			result[key] = val
			continue
		}
		if val.Enabled != nil {
			existing.Enabled = val.Enabled
		}
		if val.Priority != nil {
			existing.Priority = val.Priority
		}
		result[key] = existing
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
