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

package transsql

import (
	"errors"
	"os"
	"strings"

	"github.com/rulego/transsql/hierarchy"
	"github.com/rulego/transsql/logger"
	"github.com/rulego/transsql/mapper"
	"github.com/rulego/transsql/osql"
	"github.com/rulego/transsql/rules"
	"github.com/rulego/transsql/types"
)

// Translator converts Oracle SQL statements to Databricks SQL. It runs
// three stages: user pattern rules, a hierarchical query rewrite, and the
// table-driven structural mapping, in the order the rule settings choose.
// A Translator is immutable after construction and safe for concurrent
// use.
type Translator struct {
	engine *rules.Engine
	mapper *mapper.Mapper
	strict bool
	log    logger.Logger
}

// New builds a Translator. Without options it translates with an empty
// rule set and default settings. Configuration problems are the only
// errors New returns.
func New(opts ...Option) (*Translator, error) {
	o := &options{logLevel: logger.INFO}
	for _, opt := range opts {
		opt(o)
	}

	var log logger.Logger
	if o.discardLog {
		log = logger.NewDiscardLogger()
	} else {
		log = logger.NewLogger(o.logLevel, os.Stdout)
	}

	cfg := o.ruleConfig
	if o.configPath != "" {
		loaded, err := rules.LoadConfigFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	engine, err := rules.NewEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Translator{
		engine: engine,
		mapper: mapper.New(log),
		strict: o.strict,
		log:    log,
	}, nil
}

// Translate converts one Oracle statement. All diagnostics accumulate on
// the result; Translate itself never fails. An input that is empty after
// comment stripping yields an empty, complete result.
func (t *Translator) Translate(sql string) *types.TranslationResult {
	result := &types.TranslationResult{
		OriginalSQL: sql,
		IsComplete:  true,
	}

	current := strings.TrimSpace(stripComments(sql))
	if current == "" {
		result.Output = ""
		return result
	}
	detectUnsupported(current, result)

	settings := t.engine.Settings()
	if settings.ApplyBeforeDefault {
		current = t.engine.Apply(current, result)
		if !result.IsComplete {
			result.Output = current
			return result
		}
		current = t.structural(current, result)
	} else {
		current = t.structural(current, result)
		if result.IsComplete {
			current = t.engine.Apply(current, result)
		}
	}
	result.Output = current

	if connectByRe.MatchString(current) {
		result.Warn("translator", "output still contains CONNECT BY; manual conversion required")
		result.UnsupportedFeatures = append(result.UnsupportedFeatures, "CONNECT BY (untranslated)")
	}
	return result
}

// structural parses the statement, rewrites any hierarchy clause and runs
// the mapping tables. A query that fails to parse marks the result
// incomplete; statement kinds outside the grammar (MERGE, PL/SQL bodies,
// DDL) pass through unchanged with a warning, since pattern rules have
// already had their chance at the text.
func (t *Translator) structural(sql string, result *types.TranslationResult) string {
	stmt, err := osql.ParseStatement(sql)
	if err != nil {
		if leadingSelect(sql) {
			t.log.Debug("parse failed: %v", err)
			result.Fail("parser", "%v", err)
			result.IsComplete = false
			return sql
		}
		t.log.Debug("statement not parsed: %v", err)
		result.Warn("parser", "%v; statement passed through unchanged", err)
		return sql
	}

	if sel, ok := stmt.(*osql.SelectStatement); ok {
		sel, warnings, err := hierarchy.Rewrite(sel)
		if err != nil {
			if errors.Is(err, hierarchy.ErrUnsupportedHierarchyShape) {
				if t.strict {
					result.Fail("hierarchy", "%v", err)
					result.IsComplete = false
				} else {
					result.Warn("hierarchy", "%v; query left unchanged", err)
				}
				return sql
			}
			result.Fail("hierarchy", "%v", err)
			result.IsComplete = false
			return sql
		}
		for _, w := range warnings {
			result.Warn("hierarchy", "%s", w)
		}
		stmt = sel
	}

	t.mapper.Map(stmt, result)
	return osql.FormatNode(stmt)
}

func leadingSelect(sql string) bool {
	fields := strings.Fields(sql)
	return len(fields) > 0 && strings.EqualFold(fields[0], "SELECT")
}

// TranslateScript splits a multi-statement script and translates each
// statement. Results carry the 1-based line number the statement started
// on; comment-only fragments are skipped.
func (t *Translator) TranslateScript(script string) []*types.TranslationResult {
	var results []*types.TranslationResult
	for _, stmt := range splitScript(script) {
		if strings.TrimSpace(stripComments(stmt.text)) == "" {
			continue
		}
		result := t.Translate(stmt.text)
		result.LineNumber = stmt.line
		results = append(results, result)
	}
	return results
}
