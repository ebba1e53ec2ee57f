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

package hierarchy

import (
	"fmt"
	"strings"

	"github.com/rulego/transsql/osql"
)

const (
	cteName    = "hierarchy_cte"
	depthCol   = "level"
	visitedCol = "visited_keys"
	siblingCol = "sibling_path"
	leafAlias  = "leaf_check"
)

// Rewrite translates a CONNECT BY query block into a recursive CTE,
// mutating the block in place. Blocks without a CONNECT BY clause pass
// through unchanged. Returned warnings describe approximations; an
// ErrUnsupportedHierarchyShape error means the block was left untouched.
func Rewrite(s *osql.SelectStatement) (*osql.SelectStatement, []string, error) {
	if s == nil || s.ConnectBy == nil {
		return s, nil, nil
	}
	if rewriteSequence(s) {
		return s, nil, nil
	}
	d, err := analyze(s)
	if err != nil {
		return s, nil, err
	}

	var warnings []string
	srcQ := d.source.Alias
	if srcQ == "" {
		srcQ = bareName(d.source.Name)
	}

	anchor := buildAnchor(d, s, srcQ)
	recursive := buildRecursive(d, s, srcQ)
	union := &osql.Union{All: true, Left: anchor, Right: recursive}

	s.With = &osql.WithClause{
		Recursive: true,
		CTEs:      []*osql.CTE{{Name: cteName, Query: union}},
	}
	s.From = []osql.TableRef{{Name: cteName, Alias: d.source.Alias}}
	s.StartWith = nil
	s.ConnectBy = nil

	correlQ := d.source.Alias
	if correlQ == "" {
		correlQ = cteName
	}

	// The CTE carries level, path and ordering columns alongside the
	// source columns; a star projection cannot filter them back out.
	for _, f := range s.Fields {
		if _, ok := f.Expr.(*osql.StarExpr); ok {
			warnings = append(warnings,
				"star select list exposes the synthesized hierarchy columns; list source columns explicitly to exclude them")
			break
		}
	}

	if d.usesLeaf {
		warnings = append(warnings,
			"CONNECT_BY_ISLEAF computed with a correlated NOT EXISTS against the recursive result")
		for i := range s.Fields {
			if p, ok := s.Fields[i].Expr.(*osql.PseudoCol); ok &&
				p.Kind == osql.PseudoIsLeaf && s.Fields[i].Alias == "" {
				s.Fields[i].Alias = "is_leaf"
			}
		}
	}
	if d.noCycle {
		warnings = append(warnings, "NOCYCLE emulated with an accumulated visited-keys column")
	}

	osql.RewriteStatement(s, func(e osql.Expression) osql.Expression {
		return rewriteOuter(d, e, srcQ, correlQ)
	})

	if s.OrderSiblings {
		warnings = append(warnings,
			"ORDER SIBLINGS BY approximated with a synthesized path ordering key")
		items := make([]osql.OrderItem, len(s.OrderBy))
		for i, o := range s.OrderBy {
			items[i] = osql.OrderItem{
				Expr: &osql.Ident{Name: siblingCol + suffix(i)},
				Desc: o.Desc,
			}
		}
		s.OrderBy = items
		s.OrderSiblings = false
	}

	return s, warnings, nil
}

// buildAnchor assembles the CTE arm that seeds root rows: the anchor
// predicate filters the source, depth starts at 1, every root column is
// the row's own value and every path starts with its own element.
func buildAnchor(d *descriptor, s *osql.SelectStatement, srcQ string) *osql.SelectStatement {
	anchor := &osql.SelectStatement{
		Fields: []osql.SelectField{{Expr: &osql.StarExpr{Qualifier: srcQ}}},
		From:   []osql.TableRef{d.source},
		Where:  d.anchor,
	}
	anchor.Fields = append(anchor.Fields,
		osql.SelectField{Expr: &osql.NumberLit{Value: "1"}, Alias: depthCol})
	for _, r := range d.roots {
		anchor.Fields = append(anchor.Fields,
			osql.SelectField{Expr: osql.CloneExpr(r.expr), Alias: r.col})
	}
	for _, p := range d.paths {
		anchor.Fields = append(anchor.Fields, osql.SelectField{
			Expr:  concat(strLit(p.delim), castString(osql.CloneExpr(p.expr))),
			Alias: p.col,
		})
	}
	if s.OrderSiblings {
		for i, o := range s.OrderBy {
			anchor.Fields = append(anchor.Fields, osql.SelectField{
				Expr:  concat(strLit("/"), castString(osql.CloneExpr(o.Expr))),
				Alias: siblingCol + suffix(i),
			})
		}
	}
	if d.noCycle {
		anchor.Fields = append(anchor.Fields, osql.SelectField{
			Expr:  concat(strLit(","), castString(ident(srcQ, d.priorCol)), strLit(",")),
			Alias: visitedCol,
		})
	}
	return anchor
}

// buildRecursive assembles the CTE arm that extends the traversal one
// step: the source joins the CTE on the decomposed parent predicate and
// each synthetic column is derived from the parent row.
func buildRecursive(d *descriptor, s *osql.SelectStatement, srcQ string) *osql.SelectStatement {
	rec := &osql.SelectStatement{
		Fields: []osql.SelectField{{Expr: &osql.StarExpr{Qualifier: srcQ}}},
		From:   []osql.TableRef{d.source},
	}
	rec.Fields = append(rec.Fields, osql.SelectField{
		Expr: &osql.Binary{
			Op:    "+",
			Left:  ident(cteName, depthCol),
			Right: &osql.NumberLit{Value: "1"},
		},
		Alias: depthCol,
	})
	for _, r := range d.roots {
		rec.Fields = append(rec.Fields,
			osql.SelectField{Expr: ident(cteName, r.col), Alias: r.col})
	}
	for _, p := range d.paths {
		rec.Fields = append(rec.Fields, osql.SelectField{
			Expr:  concat(ident(cteName, p.col), strLit(p.delim), castString(qualify(osql.CloneExpr(p.expr), srcQ))),
			Alias: p.col,
		})
	}
	if s.OrderSiblings {
		for i, o := range s.OrderBy {
			rec.Fields = append(rec.Fields, osql.SelectField{
				Expr:  concat(ident(cteName, siblingCol+suffix(i)), strLit("/"), castString(qualify(osql.CloneExpr(o.Expr), srcQ))),
				Alias: siblingCol + suffix(i),
			})
		}
	}

	on := osql.Expression(&osql.Binary{
		Op:    "=",
		Left:  ident(srcQ, d.childCol),
		Right: ident(cteName, d.priorCol),
	})
	if d.noCycle {
		rec.Fields = append(rec.Fields, osql.SelectField{
			Expr:  concat(ident(cteName, visitedCol), castString(ident(srcQ, d.priorCol)), strLit(",")),
			Alias: visitedCol,
		})
		on = &osql.Binary{
			Op:   "AND",
			Left: on,
			Right: &osql.LikeExpr{
				Expr:    ident(cteName, visitedCol),
				Not:     true,
				Pattern: concat(strLit("%,"), castString(ident(srcQ, d.priorCol)), strLit(",%")),
			},
		}
	}
	rec.Joins = []osql.Join{{Type: osql.JoinInner, Table: osql.TableRef{Name: cteName}, On: on}}
	return rec
}

// rewriteOuter replaces pseudo-column references in the outer query with
// the CTE's synthetic columns.
func rewriteOuter(d *descriptor, e osql.Expression, srcQ, correlQ string) osql.Expression {
	switch v := e.(type) {
	case *osql.PseudoCol:
		switch v.Kind {
		case osql.PseudoLevel:
			return &osql.Ident{Name: depthCol}
		case osql.PseudoIsLeaf:
			return leafCheck(d, correlQ)
		}
	case *osql.RootExpr:
		if r := d.rootFor(v.Expr); r != nil {
			return &osql.Ident{Name: r.col}
		}
	case *osql.FuncCall:
		if strings.EqualFold(v.Name, "SYS_CONNECT_BY_PATH") && len(v.Args) == 2 {
			if lit, ok := v.Args[1].(*osql.StringLit); ok {
				if p := d.pathFor(v.Args[0], lit.Text()); p != nil {
					return &osql.Ident{Name: p.col}
				}
			}
		}
	case *osql.Ident:
		// An unaliased source table no longer exists in the outer FROM;
		// its qualifier must go.
		if d.source.Alias == "" && strings.EqualFold(v.Qualifier, srcQ) {
			v.Qualifier = ""
		}
	}
	return e
}

// leafCheck builds the correlated non-existence test: a row is a leaf
// when no row of the recursive result names it as parent.
func leafCheck(d *descriptor, correlQ string) osql.Expression {
	sub := &osql.SelectStatement{
		Fields: []osql.SelectField{{Expr: &osql.NumberLit{Value: "1"}}},
		From:   []osql.TableRef{{Name: cteName, Alias: leafAlias}},
		Where: &osql.Binary{
			Op:    "=",
			Left:  ident(leafAlias, d.childCol),
			Right: ident(correlQ, d.priorCol),
		},
	}
	return &osql.CaseExpr{
		Whens: []osql.WhenClause{{
			When: &osql.ExistsExpr{Not: true, Query: sub},
			Then: &osql.NumberLit{Value: "1"},
		}},
		Else: &osql.NumberLit{Value: "0"},
	}
}

// rewriteSequence handles the row-generator idiom
// SELECT ... FROM DUAL CONNECT BY LEVEL <= N, which becomes a range()
// table function with LEVEL renamed to range's id column.
func rewriteSequence(s *osql.SelectStatement) bool {
	if s.StartWith != nil || len(s.From) != 1 || len(s.Joins) > 0 ||
		!strings.EqualFold(s.From[0].Name, "DUAL") {
		return false
	}
	bin, ok := unwrap(s.ConnectBy.Cond).(*osql.Binary)
	if !ok || (bin.Op != "<=" && bin.Op != "<") {
		return false
	}
	p, ok := unwrap(bin.Left).(*osql.PseudoCol)
	if !ok || p.Kind != osql.PseudoLevel {
		return false
	}
	lit, ok := unwrap(bin.Right).(*osql.NumberLit)
	if !ok {
		return false
	}
	n, ok := lit.Int()
	if !ok {
		return false
	}
	if bin.Op == "<=" {
		n++
	}

	s.From = []osql.TableRef{{Name: fmt.Sprintf("range(1, %d)", n)}}
	s.ConnectBy = nil
	osql.RewriteStatement(s, func(e osql.Expression) osql.Expression {
		if pc, ok := e.(*osql.PseudoCol); ok && pc.Kind == osql.PseudoLevel {
			return &osql.Ident{Name: "id"}
		}
		return e
	})
	return true
}

func ident(qualifier, name string) *osql.Ident {
	return &osql.Ident{Qualifier: qualifier, Name: name}
}

func strLit(text string) *osql.StringLit {
	return &osql.StringLit{Value: "'" + strings.ReplaceAll(text, "'", "''") + "'"}
}

func castString(e osql.Expression) osql.Expression {
	return &osql.CastExpr{Expr: e, Type: osql.DataType{Name: "STRING"}}
}

func concat(args ...osql.Expression) osql.Expression {
	return &osql.FuncCall{Name: "CONCAT", Args: args}
}

// qualify attaches a table qualifier to bare column references so they
// resolve against the source table rather than the CTE in the recursive
// arm's join scope.
func qualify(e osql.Expression, q string) osql.Expression {
	return osql.RewriteExpr(e, func(x osql.Expression) osql.Expression {
		if id, ok := x.(*osql.Ident); ok && id.Qualifier == "" {
			id.Qualifier = q
		}
		return x
	})
}

func bareName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
