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

package cmd

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/pflag"

	"github.com/lintsql/lintsql/config"
	"github.com/lintsql/lintsql/internal/cache"
	"github.com/lintsql/lintsql/internal/demosql"
	"github.com/lintsql/lintsql/linter"
	"github.com/lintsql/lintsql/rules"
)

// Flags shared by every subcommand, registered once on the root command's
// persistent flag set (mirroring the teacher's own addGlobalFlags split
// between the root command and per-subcommand flags).
var (
	flagConfigPath       string
	flagDialect          string
	flagRules            []string
	flagRunawayLimit     int
	flagTemplaterContext string
	flagPretty           bool
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.StringVar(&flagConfigPath, "config", ".lintsql.yml", "path to the project config file")
	f.StringVar(&flagDialect, "dialect", "", "dialect name override (default: the project config's, or \"generic\")")
	f.StringSliceVar(&flagRules, "rules", nil, "rule codes to run (default: every registered rule)")
	f.IntVar(&flagRunawayLimit, "runaway-limit", 0, "fix loop runaway iteration limit override")
	f.StringVar(&flagTemplaterContext, "templater-context", "", "shell-lexed key=value pairs forwarded to the templater's context map")
	f.BoolVar(&flagPretty, "pretty", false, "pretty-print result records instead of compact JSON")
}

// loadConfig loads the project config file and layers the global flags
// over it (built-in defaults < project config file < CLI flags).
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading %s: %w", flagConfigPath, err)
	}

	var o config.Overrides
	if flagDialect != "" {
		o.Dialect = &flagDialect
	}
	if len(flagRules) > 0 {
		o.Rules = flagRules
	}
	if flagRunawayLimit > 0 {
		o.RunawayLimit = &flagRunawayLimit
	}
	return cfg.Apply(o), nil
}

// parseTemplaterContext splits --templater-context the way a shell would
// (so a value can itself contain spaces if quoted) into a key=value map.
func parseTemplaterContext() (map[string]string, error) {
	if strings.TrimSpace(flagTemplaterContext) == "" {
		return nil, nil
	}
	fields, err := shlex.Split(flagTemplaterContext)
	if err != nil {
		return nil, fmt.Errorf("parsing --templater-context: %w", err)
	}
	ctx := make(map[string]string, len(fields))
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --templater-context entry %q, want key=value", f)
		}
		ctx[k] = v
	}
	return ctx, nil
}

// pipeline builds a Linter wired to the demo templater/lexer/parser and
// an empty rule registry — SPEC_FULL.md's Non-goal is explicit that no
// particular rule ships with this module, so `lintsql rules` on a fresh
// checkout is always empty until a caller registers rules of their own.
func pipeline(cfg config.Config) (*linter.Linter, error) {
	reg := rules.NewRegistry()

	c, err := cache.New(128)
	if err != nil {
		return nil, fmt.Errorf("building parse cache: %w", err)
	}

	lt := linter.New(demosql.Templater{}, demosql.Lexer{}, demosql.Parser{Filename: "lintsql"}, reg, linter.Config{
		Dialect:            cfg.Dialect,
		RuleCodes:          cfg.RuleCodes(),
		RespectLiteralOnly: true,
		RunawayLimit:       cfg.RunawayLimit,
	})
	lt.Cache = c
	return lt, nil
}
