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

package mapper

import (
	"strconv"
	"strings"

	"github.com/rulego/transsql/logger"
	"github.com/rulego/transsql/osql"
	"github.com/rulego/transsql/types"
)

const component = "mapper"

// Mapper rewrites a parsed Oracle statement into Databricks form using the
// translation tables. Constructs without a mapping are left unchanged and
// reported as warnings on the result; the mapper never fails a translation.
type Mapper struct {
	log logger.Logger
}

func New(log logger.Logger) *Mapper {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Mapper{log: log}
}

// MapStatement rewrites one query block in place, descending into
// subqueries. Hierarchical clauses are not handled here; callers route
// blocks with CONNECT BY through the hierarchy rewriter first.
func (m *Mapper) MapStatement(s *osql.SelectStatement, result *types.TranslationResult) {
	if s == nil {
		return
	}
	if s.With != nil {
		for _, cte := range s.With.CTEs {
			m.mapNode(cte.Query, result)
		}
	}

	for _, w := range convertOuterJoins(s) {
		m.log.Debug("outer join conversion: %s", w)
		result.Warn(component, "%s", w)
	}
	m.removeDual(s)

	osql.RewriteStatement(s, func(e osql.Expression) osql.Expression {
		return m.rewriteExpr(e, result)
	})
}

// Map rewrites any supported statement kind in place.
func (m *Mapper) Map(st osql.Statement, result *types.TranslationResult) {
	m.mapNode(st, result)
}

// mapNode dispatches on statement shape; set operations map both arms and
// DML statements map their expression sites.
func (m *Mapper) mapNode(st osql.Statement, result *types.TranslationResult) {
	rw := func(e osql.Expression) osql.Expression {
		return m.rewriteExpr(e, result)
	}
	switch v := st.(type) {
	case *osql.SelectStatement:
		m.MapStatement(v, result)
	case *osql.Union:
		m.mapNode(v.Left, result)
		m.mapNode(v.Right, result)
	case *osql.UpdateStatement:
		for i := range v.Set {
			v.Set[i].Value = osql.RewriteExpr(v.Set[i].Value, rw)
		}
		v.Where = osql.RewriteExpr(v.Where, rw)
	case *osql.DeleteStatement:
		v.Where = osql.RewriteExpr(v.Where, rw)
	case *osql.InsertStatement:
		for i := range v.Values {
			v.Values[i] = osql.RewriteExpr(v.Values[i], rw)
		}
		if v.Query != nil {
			m.mapNode(v.Query, result)
		}
	}
}

// removeDual drops the DUAL placeholder table when it is the only source.
func (m *Mapper) removeDual(s *osql.SelectStatement) {
	if len(s.From) == 1 && len(s.Joins) == 0 &&
		strings.EqualFold(s.From[0].Name, "DUAL") && s.From[0].Alias == "" {
		s.From = nil
	}
}

func (m *Mapper) rewriteExpr(e osql.Expression, result *types.TranslationResult) osql.Expression {
	switch v := e.(type) {
	case *osql.FuncCall:
		return m.rewriteCall(v, result)
	case *osql.Ident:
		if v.Qualifier == "" {
			if target, ok := identMappings[strings.ToUpper(v.Name)]; ok {
				return &osql.FuncCall{Name: target}
			}
		}
	case *osql.CastExpr:
		mapped, ok := MapDataType(v.Type)
		if !ok {
			result.Warn(component, "no mapping for data type %s; left unchanged", v.Type.Name)
			result.UnsupportedFeatures = append(result.UnsupportedFeatures, "data type "+strings.ToUpper(v.Type.Name))
			return v
		}
		v.Type = mapped
	case *osql.ExistsExpr:
		m.mapNode(v.Query, result)
	}
	return e
}

func (m *Mapper) rewriteCall(call *osql.FuncCall, result *types.TranslationResult) osql.Expression {
	name := strings.ToUpper(call.Name)

	if reason, ok := unsupportedFunctions[name]; ok {
		result.Warn(component, "function %s has no mapping: %s", name, reason)
		result.UnsupportedFeatures = append(result.UnsupportedFeatures, "function "+name)
		return call
	}
	entry, ok := lookupFunction(name)
	if !ok {
		// Package calls like DBMS_OUTPUT.PUT_LINE land here along with
		// user functions; both pass through untouched.
		result.Warn(component, "no mapping for function %s; left unchanged", name)
		return call
	}

	argc := len(call.Args)
	if argc < entry.minArgs || (entry.maxArgs >= 0 && argc > entry.maxArgs) {
		result.Warn(component, "function %s called with %d argument(s), expected %s; left unchanged",
			name, argc, arityRange(entry))
		return call
	}

	if entry.rewrite != nil {
		return entry.rewrite(call)
	}
	call.Name = entry.target
	return call
}

func arityRange(entry *mapping) string {
	switch {
	case entry.maxArgs < 0:
		return "at least " + strconv.Itoa(entry.minArgs)
	case entry.minArgs == entry.maxArgs:
		return strconv.Itoa(entry.minArgs)
	default:
		return strconv.Itoa(entry.minArgs) + " to " + strconv.Itoa(entry.maxArgs)
	}
}
