// Copyright 2024 The lintsql Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads a project's YAML lint configuration, analogous to
// how sqlfluff reads a ".sqlfluff" project file but in YAML rather than
// INI (the teacher's own project config format). Precedence, lowest to
// highest: built-in defaults, the project config file, CLI flags.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the resolved set of options a Linter is built from.
type Config struct {
	Dialect      string   `yaml:"dialect"`
	Rules        []string `yaml:"rules"`
	Fix          bool     `yaml:"fix"`
	RunawayLimit int      `yaml:"runaway_limit"`
}

// Default returns the built-in defaults, used when no project config
// file exists and no CLI flag overrides a field.
func Default() Config {
	return Config{
		Dialect:      "generic",
		Rules:        nil, // nil/empty selects every registered rule
		Fix:          false,
		RunawayLimit: 10,
	}
}

// Load reads and parses the YAML project config at path, merging it over
// Default(). A missing file is not an error — it just means the project
// has no config file, so Default() alone applies.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Overrides carries CLI-flag-level values. A nil field means "the flag
// was not set", so Apply leaves the corresponding Config field alone;
// pointers (rather than Config's own zero values) are what let a flag
// distinguish "not passed" from "passed as false/empty".
type Overrides struct {
	Dialect      *string
	Rules        []string
	Fix          *bool
	RunawayLimit *int
}

// Apply layers o over cfg, returning the result. Rules is replaced
// wholesale when o.Rules is non-empty, matching how a single repeated
// "--rules" flag is meant to override the project file's rule list
// rather than merge with it.
func (cfg Config) Apply(o Overrides) Config {
	if o.Dialect != nil {
		cfg.Dialect = *o.Dialect
	}
	if len(o.Rules) > 0 {
		cfg.Rules = o.Rules
	}
	if o.Fix != nil {
		cfg.Fix = *o.Fix
	}
	if o.RunawayLimit != nil {
		cfg.RunawayLimit = *o.RunawayLimit
	}
	return cfg
}

// RuleCodes projects Rules into the set shape rules.Registry.Select
// expects: nil/empty selects every registered rule.
func (cfg Config) RuleCodes() map[string]bool {
	if len(cfg.Rules) == 0 {
		return nil
	}
	out := make(map[string]bool, len(cfg.Rules))
	for _, code := range cfg.Rules {
		out[code] = true
	}
	return out
}
