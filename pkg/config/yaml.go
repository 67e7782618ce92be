package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a config file. JSON files go through the same path since
// JSON is a YAML subset. Unknown keys are errors so a misspelt option such
// as "skip-code" is reported instead of silently ignored. An empty file
// yields an empty config.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Matchers == nil {
		cfg.Matchers = make(map[string]MatcherConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy, so merging layers never shares pointers or
// slices between them.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Decorate.SkipCode = clonePtr(c.Decorate.SkipCode)
	clone.Decorate.FenceLabels = clonePtr(c.Decorate.FenceLabels)
	clone.Math.Strict = clonePtr(c.Math.Strict)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.EnableMatchers = slices.Clone(c.EnableMatchers)
	clone.DisableMatchers = slices.Clone(c.DisableMatchers)

	if c.Matchers != nil {
		clone.Matchers = make(map[string]MatcherConfig, len(c.Matchers))
		for id, mc := range maps.All(c.Matchers) {
			clone.Matchers[id] = MatcherConfig{
				Enabled:  clonePtr(mc.Enabled),
				Priority: clonePtr(mc.Priority),
			}
		}
	}
	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
