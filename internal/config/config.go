// Package config loads phenolint.toml: which rules are enabled and where
// to find the HPO ontology on disk. A direct, unremarkable use of
// BurntSushi/toml.
package config

import (
	"github.com/BurntSushi/toml"
)

// Config is the on-disk shape of phenolint.toml.
type Config struct {
	HPOPath      string   `toml:"hpo_path"`
	EnabledRules []string `toml:"enabled_rules"`
	Quiet        bool     `toml:"quiet"`
}

// DefaultEnabledRules lists every shipped rule except the disabled-by-
// default CURIE999 smoke-test rule.
var DefaultEnabledRules = []string{
	"CURIE001",
	"INTER001",
	"INTER002",
	"HPO001",
	"HPO002",
	"HPO003",
}

// Default returns a Config with every non-smoke-test rule enabled and no
// HPO path configured.
func Default() Config {
	rules := make([]string, len(DefaultEnabledRules))
	copy(rules, DefaultEnabledRules)
	return Config{EnabledRules: rules}
}

// Load decodes path into a Config, starting from Default() so an on-disk
// file only needs to override what it cares about.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
