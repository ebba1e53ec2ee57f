/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/rulego/transsql/logger"
	"github.com/rulego/transsql/types"
)

const defaultPriority = 100

// Engine holds the compiled, priority-ordered rule set. Engines are
// immutable after construction and safe for concurrent use.
type Engine struct {
	rules    []*compiledRule
	settings types.Settings
	log      logger.Logger
}

// NewEngine compiles a configuration into an engine. Validation is
// exhaustive: every offending rule is reported in one ErrConfig error
// rather than stopping at the first.
func NewEngine(cfg *Config, log logger.Logger) (*Engine, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	if cfg == nil {
		cfg = &Config{}
	}

	var problems []string
	fail := func(name, format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf("rule %q: %s", name, fmt.Sprintf(format, args...)))
	}

	seen := map[string]bool{}
	var compiled []*compiledRule
	for i, rc := range cfg.CustomRules {
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("Rule_%d", i+1)
		}
		if seen[name] {
			fail(name, "duplicate rule name")
			continue
		}
		seen[name] = true

		enabled := true
		if rc.Enabled != nil {
			v, err := cast.ToBoolE(rc.Enabled)
			if err != nil {
				fail(name, "invalid enabled value %v", rc.Enabled)
				continue
			}
			enabled = v
		}
		priority := defaultPriority
		if rc.Priority != nil {
			v, err := cast.ToIntE(rc.Priority)
			if err != nil {
				fail(name, "invalid priority value %v", rc.Priority)
				continue
			}
			priority = v
		}
		var flags []string
		if rc.Flags != nil {
			v, err := cast.ToStringSliceE(rc.Flags)
			if err != nil {
				fail(name, "invalid flags value %v", rc.Flags)
				continue
			}
			flags = v
		}
		if rc.Pattern == "" {
			fail(name, "missing required pattern")
			continue
		}
		if rc.Replacement == nil {
			fail(name, "missing required replacement")
			continue
		}

		re, err := compilePattern(rc.Pattern, flags)
		if err != nil {
			fail(name, "invalid pattern: %v", err)
			continue
		}
		replacement, maxRef := convertReplacement(*rc.Replacement)

		r := &compiledRule{
			name:        name,
			description: rc.Description,
			re:          re,
			replacement: replacement,
			maxRef:      maxRef,
			priority:    priority,
		}
		if rc.Condition != "" {
			guard, err := compileGuard(rc.Condition)
			if err != nil {
				fail(name, "invalid condition: %v", err)
				continue
			}
			r.guard = guard
		}
		if enabled {
			compiled = append(compiled, r)
		}
	}
	settingBool := func(field string, v interface{}, def bool) bool {
		if v == nil {
			return def
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("settings: invalid %s value %v", field, v))
			return def
		}
		return b
	}
	settings := types.Settings{
		ApplyBeforeDefault: settingBool("apply_before_default", cfg.Settings.ApplyBeforeDefault, true),
		ContinueOnError:    settingBool("continue_on_error", cfg.Settings.ContinueOnError, true),
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrConfig, strings.Join(problems, "; "))
	}

	// Higher priority first; stable so equal priorities keep their
	// configuration order.
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].priority > compiled[j].priority
	})

	return &Engine{
		rules:    compiled,
		settings: settings,
		log:      log,
	}, nil
}

// Settings returns the pipeline settings resolved from the configuration.
func (e *Engine) Settings() types.Settings {
	return e.settings
}

// Len reports the number of enabled rules.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Apply runs every rule in priority order over the statement, feeding
// each rule the previous rule's output. Only rules that change the text
// enter the applied-rule trace. A failing rule is recorded on the result;
// with ContinueOnError off it also halts the run and marks the result
// incomplete.
func (e *Engine) Apply(sql string, result *types.TranslationResult) string {
	current := sql
	for _, r := range e.rules {
		out, changed, err := r.apply(current)
		if err != nil {
			result.Fail(r.name, "%v", err)
			if !e.settings.ContinueOnError {
				e.log.Warn("rule %s failed, halting pipeline: %v", r.name, err)
				result.IsComplete = false
				return current
			}
			e.log.Warn("rule %s failed, continuing: %v", r.name, err)
			continue
		}
		if changed {
			e.log.Debug("rule %s rewrote statement", r.name)
			result.AppliedRules = append(result.AppliedRules, r.name)
			current = out
		}
	}
	return current
}
