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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rulego/transsql/osql"
)

// ErrUnsupportedHierarchyShape reports a CONNECT BY query the rewriter
// cannot decompose. Callers decide whether the condition is fatal; the
// query block itself is always left untouched.
var ErrUnsupportedHierarchyShape = errors.New("unsupported hierarchy shape")

func shapeErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedHierarchyShape, fmt.Sprintf(format, args...))
}

// rootUse is one distinct CONNECT_BY_ROOT expression and its synthetic
// column in the recursive CTE.
type rootUse struct {
	expr osql.Expression
	col  string
}

// pathUse is one distinct SYS_CONNECT_BY_PATH (expression, delimiter)
// pair and its synthetic column.
type pathUse struct {
	expr  osql.Expression
	delim string
	col   string
}

// descriptor is the decomposed form of a hierarchical query block: the
// traversal direction, the join columns, and every pseudo-column family
// the outer query references.
type descriptor struct {
	source  osql.TableRef
	anchor  osql.Expression
	noCycle bool

	// priorCol belongs to the parent row (the CTE side of the recursive
	// join); childCol belongs to the row being added.
	priorCol string
	childCol string
	topDown  bool

	usesLevel bool
	usesLeaf  bool
	roots     []*rootUse
	paths     []*pathUse
}

// analyze decomposes a query block with a CONNECT BY clause. It returns
// ErrUnsupportedHierarchyShape when the block does not fit the
// single-table, single-equality form the rewriter handles.
func analyze(s *osql.SelectStatement) (*descriptor, error) {
	if len(s.From) != 1 || len(s.Joins) > 0 {
		return nil, shapeErr("hierarchical query must read exactly one table")
	}
	if s.StartWith == nil {
		return nil, shapeErr("CONNECT BY without START WITH has no anchor predicate")
	}

	d := &descriptor{
		source:  s.From[0],
		anchor:  s.StartWith,
		noCycle: s.ConnectBy.NoCycle,
	}
	if err := d.decomposeJoin(s.ConnectBy.Cond); err != nil {
		return nil, err
	}
	if err := d.collectPseudoUses(s); err != nil {
		return nil, err
	}
	return d, nil
}

// decomposeJoin splits the recursive predicate into a single
// column-to-column equality with PRIOR on exactly one side.
func (d *descriptor) decomposeJoin(cond osql.Expression) error {
	bin, ok := unwrap(cond).(*osql.Binary)
	if !ok || bin.Op != "=" {
		return shapeErr("recursive predicate %q is not a single equality", osql.FormatNode(cond))
	}
	left, leftPrior := stripPrior(bin.Left)
	right, rightPrior := stripPrior(bin.Right)
	if leftPrior == rightPrior {
		return shapeErr("recursive predicate %q needs PRIOR on exactly one side", osql.FormatNode(cond))
	}
	leftID, lok := unwrap(left).(*osql.Ident)
	rightID, rok := unwrap(right).(*osql.Ident)
	if !lok || !rok {
		return shapeErr("recursive predicate %q does not compare two columns", osql.FormatNode(cond))
	}
	if leftPrior {
		d.priorCol, d.childCol = leftID.Name, rightID.Name
		d.topDown = true
	} else {
		d.priorCol, d.childCol = rightID.Name, leftID.Name
	}
	return nil
}

// collectPseudoUses records every pseudo-column family referenced outside
// the hierarchy clauses, deduplicated by serialized form.
func (d *descriptor) collectPseudoUses(s *osql.SelectStatement) error {
	var walkErr error
	seen := map[string]bool{}

	visit := func(e osql.Expression) bool {
		if walkErr != nil {
			return false
		}
		switch v := e.(type) {
		case *osql.PseudoCol:
			switch v.Kind {
			case osql.PseudoLevel:
				d.usesLevel = true
			case osql.PseudoIsLeaf:
				d.usesLeaf = true
			}
		case *osql.RootExpr:
			key := "root|" + osql.FormatNode(v.Expr)
			if !seen[key] {
				seen[key] = true
				d.roots = append(d.roots, &rootUse{expr: v.Expr, col: d.rootColName(v.Expr)})
			}
			return false
		case *osql.FuncCall:
			if strings.EqualFold(v.Name, "SYS_CONNECT_BY_PATH") {
				if len(v.Args) != 2 {
					walkErr = shapeErr("SYS_CONNECT_BY_PATH takes an expression and a delimiter")
					return false
				}
				lit, ok := v.Args[1].(*osql.StringLit)
				if !ok {
					walkErr = shapeErr("SYS_CONNECT_BY_PATH delimiter must be a string literal")
					return false
				}
				key := "path|" + lit.Text() + "|" + osql.FormatNode(v.Args[0])
				if !seen[key] {
					seen[key] = true
					d.paths = append(d.paths, &pathUse{
						expr:  v.Args[0],
						delim: lit.Text(),
						col:   "path" + suffix(len(d.paths)),
					})
				}
				return false
			}
		case *osql.Prior:
			walkErr = shapeErr("PRIOR outside the CONNECT BY clause is not supported")
			return false
		}
		return true
	}

	for _, f := range s.Fields {
		osql.WalkExpr(f.Expr, visit)
	}
	osql.WalkExpr(s.Where, visit)
	for _, g := range s.GroupBy {
		osql.WalkExpr(g, visit)
	}
	osql.WalkExpr(s.Having, visit)
	for _, o := range s.OrderBy {
		osql.WalkExpr(o.Expr, visit)
	}
	return walkErr
}

func (d *descriptor) rootColName(e osql.Expression) string {
	if id, ok := unwrap(e).(*osql.Ident); ok {
		return "root_" + strings.ToLower(id.Name)
	}
	return "root_expr" + suffix(len(d.roots))
}

// pathFor finds the synthetic column for a path call already collected.
func (d *descriptor) pathFor(expr osql.Expression, delim string) *pathUse {
	key := osql.FormatNode(expr)
	for _, p := range d.paths {
		if p.delim == delim && osql.FormatNode(p.expr) == key {
			return p
		}
	}
	return nil
}

func (d *descriptor) rootFor(expr osql.Expression) *rootUse {
	key := osql.FormatNode(expr)
	for _, r := range d.roots {
		if osql.FormatNode(r.expr) == key {
			return r
		}
	}
	return nil
}

func suffix(n int) string {
	if n == 0 {
		return ""
	}
	return "_" + strconv.Itoa(n+1)
}

func unwrap(e osql.Expression) osql.Expression {
	for {
		p, ok := e.(*osql.Paren)
		if !ok {
			return e
		}
		e = p.Expr
	}
}

// stripPrior removes a PRIOR wrapper, looking through parentheses.
func stripPrior(e osql.Expression) (osql.Expression, bool) {
	switch v := unwrap(e).(type) {
	case *osql.Prior:
		return v.Expr, true
	default:
		return e, false
	}
}
