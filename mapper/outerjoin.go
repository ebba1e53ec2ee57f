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
	"fmt"
	"strings"

	"github.com/rulego/transsql/osql"
)

// joinPred is one (+) equality predicate resolved to the two tables it
// connects. marked is the nullable side.
type joinPred struct {
	marked string
	other  string
	cond   osql.Expression
	used   bool
}

// convertOuterJoins rewrites Oracle (+) outer-join shorthand into explicit
// LEFT/RIGHT OUTER JOIN clauses. Predicates that cannot be resolved to a
// table pair are left in the WHERE clause with their markers intact and
// reported as warnings.
func convertOuterJoins(s *osql.SelectStatement) []string {
	if !hasMarker(s) {
		return nil
	}
	if len(s.From) < 2 {
		return []string{"outer join marker requires at least two tables in FROM; left unchanged"}
	}

	var warnings []string
	tables := tableKeys(s.From)

	var preds []*joinPred
	var rest []osql.Expression
	for _, conjunct := range splitAnd(s.Where) {
		p, warn := resolvePred(conjunct, tables)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if p == nil {
			rest = append(rest, conjunct)
			continue
		}
		preds = append(preds, p)
	}
	if len(preds) == 0 {
		return warnings
	}

	// Place tables left to right. The first table anchors the join chain;
	// each later table joins to an already placed one when a predicate
	// connects them, otherwise it stays comma-joined in FROM.
	placed := map[string]bool{}
	newFrom := []osql.TableRef{s.From[0]}
	for _, k := range refKeys(s.From[0]) {
		placed[k] = true
	}
	joins := s.Joins
	for _, ref := range s.From[1:] {
		keys := refKeys(ref)
		group, joinType := matchPreds(preds, keys, placed)
		if group == nil {
			newFrom = append(newFrom, ref)
		} else {
			joins = append(joins, osql.Join{Type: joinType, Table: ref, On: group})
		}
		for _, k := range keys {
			placed[k] = true
		}
	}
	for _, p := range preds {
		if !p.used {
			warnings = append(warnings, fmt.Sprintf(
				"outer join predicate connects unknown tables %q and %q; left unchanged", p.marked, p.other))
			rest = append(rest, p.cond)
		}
	}

	s.From = newFrom
	s.Joins = joins
	s.Where = joinAnd(rest)
	return warnings
}

func hasMarker(s *osql.SelectStatement) bool {
	found := false
	osql.WalkExpr(s.Where, func(e osql.Expression) bool {
		if id, ok := e.(*osql.Ident); ok && id.Marker {
			found = true
		}
		return !found
	})
	return found
}

// splitAnd flattens a conjunction into its conjuncts, looking through
// parentheses around nested ANDs.
func splitAnd(e osql.Expression) []osql.Expression {
	switch v := e.(type) {
	case nil:
		return nil
	case *osql.Binary:
		if strings.EqualFold(v.Op, "AND") {
			return append(splitAnd(v.Left), splitAnd(v.Right)...)
		}
	case *osql.Paren:
		if b, ok := v.Expr.(*osql.Binary); ok && strings.EqualFold(b.Op, "AND") {
			return splitAnd(v.Expr)
		}
	}
	return []osql.Expression{e}
}

func joinAnd(conjuncts []osql.Expression) osql.Expression {
	if len(conjuncts) == 0 {
		return nil
	}
	out := conjuncts[0]
	for _, c := range conjuncts[1:] {
		out = &osql.Binary{Op: "AND", Left: out, Right: c}
	}
	return out
}

// resolvePred classifies one conjunct. It returns a joinPred when the
// conjunct is a marked equality between exactly two tables, or nil with
// an optional warning otherwise.
func resolvePred(e osql.Expression, tables map[string]bool) (*joinPred, string) {
	marked := false
	osql.WalkExpr(e, func(x osql.Expression) bool {
		if id, ok := x.(*osql.Ident); ok && id.Marker {
			marked = true
		}
		return true
	})
	if !marked {
		return nil, ""
	}

	bin, ok := e.(*osql.Binary)
	if !ok || bin.Op != "=" {
		return nil, fmt.Sprintf("cannot convert outer join marker in non-equality predicate %q", osql.FormatNode(e))
	}
	leftTables, leftMarked := sideTables(bin.Left)
	rightTables, rightMarked := sideTables(bin.Right)
	if len(leftTables) != 1 || len(rightTables) != 1 ||
		!tables[leftTables[0]] || !tables[rightTables[0]] ||
		leftTables[0] == rightTables[0] ||
		leftMarked == rightMarked {
		return nil, fmt.Sprintf("cannot resolve outer join predicate %q to a table pair", osql.FormatNode(e))
	}

	p := &joinPred{cond: e}
	if leftMarked {
		p.marked, p.other = leftTables[0], rightTables[0]
	} else {
		p.marked, p.other = rightTables[0], leftTables[0]
	}
	clearMarkers(e)
	return p, ""
}

// sideTables lists the distinct table qualifiers one side of a predicate
// references and whether the side carries a (+) marker.
func sideTables(e osql.Expression) ([]string, bool) {
	seen := map[string]bool{}
	var out []string
	marked := false
	osql.WalkExpr(e, func(x osql.Expression) bool {
		if id, ok := x.(*osql.Ident); ok {
			q := strings.ToUpper(id.Qualifier)
			if q != "" && !seen[q] {
				seen[q] = true
				out = append(out, q)
			}
			if id.Marker {
				marked = true
			}
		}
		return true
	})
	return out, marked
}

func clearMarkers(e osql.Expression) {
	osql.WalkExpr(e, func(x osql.Expression) bool {
		if id, ok := x.(*osql.Ident); ok {
			id.Marker = false
		}
		return true
	})
}

// matchPreds collects all predicates connecting a candidate table to the
// already placed set, ANDing them into a single ON condition. The join
// type follows the marked side: the nullable table goes on the outer side.
func matchPreds(preds []*joinPred, keys []string, placed map[string]bool) (osql.Expression, osql.JoinType) {
	keySet := map[string]bool{}
	for _, k := range keys {
		keySet[k] = true
	}
	var conds []osql.Expression
	joinType := osql.JoinLeftOuter
	for _, p := range preds {
		if p.used {
			continue
		}
		switch {
		case keySet[p.marked] && placed[p.other]:
			// Candidate is the nullable side.
			p.used = true
			joinType = osql.JoinLeftOuter
			conds = append(conds, p.cond)
		case keySet[p.other] && placed[p.marked]:
			// The already placed table is the nullable side.
			p.used = true
			joinType = osql.JoinRightOuter
			conds = append(conds, p.cond)
		}
	}
	return joinAnd(conds), joinType
}

func tableKeys(from []osql.TableRef) map[string]bool {
	out := map[string]bool{}
	for _, ref := range from {
		for _, k := range refKeys(ref) {
			out[k] = true
		}
	}
	return out
}

// refKeys lists the qualifiers a predicate may use for a table: its alias
// when present, or its name plus the name's last dotted component.
func refKeys(ref osql.TableRef) []string {
	if ref.Alias != "" {
		return []string{strings.ToUpper(ref.Alias)}
	}
	name := strings.ToUpper(ref.Name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return []string{name, name[i+1:]}
	}
	return []string{name}
}
