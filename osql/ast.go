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

// ast.go defines the typed statement tree and its serialization.
// The parser only ever produces the Oracle-side constructs (PRIOR markers,
// CONNECT BY, the "(+)" marker); the CTE and union nodes exist for the
// rewriters' output and are serialized but never parsed.

package osql

import (
	"bytes"
	"strconv"
	"strings"
)

// Node is the base interface of the tree; every node serializes itself.
type Node interface {
	Format(buf *bytes.Buffer)
}

// Statement marks nodes usable as a full statement.
type Statement interface {
	Node
	statement()
}

// Expression marks nodes usable inside clauses.
type Expression interface {
	Node
	expression()
}

// FormatNode serializes any node to a string.
func FormatNode(n Node) string {
	var buf bytes.Buffer
	n.Format(&buf)
	return buf.String()
}

// SelectStatement is a single query block. StartWith/ConnectBy carry the
// hierarchical clauses on the input side; With carries synthesized CTEs on
// the output side.
type SelectStatement struct {
	With          *WithClause
	Distinct      bool
	Fields        []SelectField
	From          []TableRef
	Joins         []Join
	Where         Expression
	StartWith     Expression
	ConnectBy     *ConnectByClause
	GroupBy       []Expression
	Having        Expression
	OrderBy       []OrderItem
	OrderSiblings bool
}

func (s *SelectStatement) statement() {}

type SelectField struct {
	Expr  Expression
	Alias string
}

type TableRef struct {
	Name  string
	Alias string
}

// JoinType enumerates explicit join forms on the output side.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeftOuter
	JoinRightOuter
	JoinFullOuter
	JoinCross
)

func (jt JoinType) String() string {
	switch jt {
	case JoinLeftOuter:
		return "LEFT OUTER JOIN"
	case JoinRightOuter:
		return "RIGHT OUTER JOIN"
	case JoinFullOuter:
		return "FULL OUTER JOIN"
	case JoinCross:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

type Join struct {
	Type  JoinType
	Table TableRef
	On    Expression
}

type ConnectByClause struct {
	NoCycle bool
	Cond    Expression
}

type OrderItem struct {
	Expr Expression
	Desc bool
}

// WithClause holds common table expressions prepended to a query block.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

type CTE struct {
	Name    string
	Columns []string
	Query   Statement
}

// Union is a two-arm set operation; the hierarchy rewriter emits
// anchor UNION ALL recursive.
type Union struct {
	All   bool
	Left  Statement
	Right Statement
}

func (u *Union) statement() {}

func (u *Union) Format(buf *bytes.Buffer) {
	u.Left.Format(buf)
	if u.All {
		buf.WriteString(" UNION ALL ")
	} else {
		buf.WriteString(" UNION ")
	}
	u.Right.Format(buf)
}

func (s *SelectStatement) Format(buf *bytes.Buffer) {
	if s.With != nil {
		s.With.Format(buf)
		buf.WriteByte(' ')
	}
	buf.WriteString("SELECT ")
	if s.Distinct {
		buf.WriteString("DISTINCT ")
	}
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		f.Expr.Format(buf)
		if f.Alias != "" {
			buf.WriteString(" AS ")
			buf.WriteString(f.Alias)
		}
	}
	if len(s.From) > 0 {
		buf.WriteString(" FROM ")
		for i, t := range s.From {
			if i > 0 {
				buf.WriteString(", ")
			}
			formatTableRef(buf, t)
		}
	}
	for _, j := range s.Joins {
		buf.WriteByte(' ')
		buf.WriteString(j.Type.String())
		buf.WriteByte(' ')
		formatTableRef(buf, j.Table)
		if j.On != nil {
			buf.WriteString(" ON ")
			j.On.Format(buf)
		}
	}
	if s.Where != nil {
		buf.WriteString(" WHERE ")
		s.Where.Format(buf)
	}
	if s.StartWith != nil {
		buf.WriteString(" START WITH ")
		s.StartWith.Format(buf)
	}
	if s.ConnectBy != nil {
		buf.WriteString(" CONNECT BY ")
		if s.ConnectBy.NoCycle {
			buf.WriteString("NOCYCLE ")
		}
		s.ConnectBy.Cond.Format(buf)
	}
	if len(s.GroupBy) > 0 {
		buf.WriteString(" GROUP BY ")
		for i, e := range s.GroupBy {
			if i > 0 {
				buf.WriteString(", ")
			}
			e.Format(buf)
		}
	}
	if s.Having != nil {
		buf.WriteString(" HAVING ")
		s.Having.Format(buf)
	}
	if len(s.OrderBy) > 0 {
		if s.OrderSiblings {
			buf.WriteString(" ORDER SIBLINGS BY ")
		} else {
			buf.WriteString(" ORDER BY ")
		}
		for i, o := range s.OrderBy {
			if i > 0 {
				buf.WriteString(", ")
			}
			o.Expr.Format(buf)
			if o.Desc {
				buf.WriteString(" DESC")
			}
		}
	}
}

func formatTableRef(buf *bytes.Buffer, t TableRef) {
	buf.WriteString(t.Name)
	if t.Alias != "" {
		buf.WriteString(" AS ")
		buf.WriteString(t.Alias)
	}
}

func (w *WithClause) Format(buf *bytes.Buffer) {
	buf.WriteString("WITH ")
	if w.Recursive {
		buf.WriteString("RECURSIVE ")
	}
	for i, cte := range w.CTEs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(cte.Name)
		if len(cte.Columns) > 0 {
			buf.WriteString(" (")
			buf.WriteString(strings.Join(cte.Columns, ", "))
			buf.WriteByte(')')
		}
		buf.WriteString(" AS (")
		cte.Query.Format(buf)
		buf.WriteByte(')')
	}
}

// Assignment is one "column = value" pair of an UPDATE SET list.
type Assignment struct {
	Column *Ident
	Value  Expression
}

// UpdateStatement is UPDATE table SET assignments [WHERE cond].
type UpdateStatement struct {
	Table TableRef
	Set   []Assignment
	Where Expression
}

func (s *UpdateStatement) statement() {}

func (s *UpdateStatement) Format(buf *bytes.Buffer) {
	buf.WriteString("UPDATE ")
	formatTableRef(buf, s.Table)
	buf.WriteString(" SET ")
	for i, a := range s.Set {
		if i > 0 {
			buf.WriteString(", ")
		}
		a.Column.Format(buf)
		buf.WriteString(" = ")
		a.Value.Format(buf)
	}
	if s.Where != nil {
		buf.WriteString(" WHERE ")
		s.Where.Format(buf)
	}
}

// DeleteStatement is DELETE FROM table [WHERE cond]. The optional FROM of
// the source form is always serialized.
type DeleteStatement struct {
	Table TableRef
	Where Expression
}

func (s *DeleteStatement) statement() {}

func (s *DeleteStatement) Format(buf *bytes.Buffer) {
	buf.WriteString("DELETE FROM ")
	formatTableRef(buf, s.Table)
	if s.Where != nil {
		buf.WriteString(" WHERE ")
		s.Where.Format(buf)
	}
}

// InsertStatement is INSERT INTO table [(columns)] with either a VALUES
// row or a query source; exactly one of Values and Query is set.
type InsertStatement struct {
	Table   TableRef
	Columns []string
	Values  []Expression
	Query   Statement
}

func (s *InsertStatement) statement() {}

func (s *InsertStatement) Format(buf *bytes.Buffer) {
	buf.WriteString("INSERT INTO ")
	formatTableRef(buf, s.Table)
	if len(s.Columns) > 0 {
		buf.WriteString(" (")
		buf.WriteString(strings.Join(s.Columns, ", "))
		buf.WriteByte(')')
	}
	if s.Query != nil {
		buf.WriteByte(' ')
		s.Query.Format(buf)
		return
	}
	buf.WriteString(" VALUES (")
	for i, v := range s.Values {
		if i > 0 {
			buf.WriteString(", ")
		}
		v.Format(buf)
	}
	buf.WriteByte(')')
}

// Ident is a possibly qualified column or table reference. Marker is the
// legacy "(+)" outer-join annotation.
type Ident struct {
	Qualifier string
	Name      string
	Marker    bool
	Pos       int
}

func (e *Ident) expression() {}

func (e *Ident) Format(buf *bytes.Buffer) {
	if e.Qualifier != "" {
		buf.WriteString(e.Qualifier)
		buf.WriteByte('.')
	}
	buf.WriteString(e.Name)
	if e.Marker {
		buf.WriteString(" (+)")
	}
}

// StarExpr is "*" or "alias.*".
type StarExpr struct {
	Qualifier string
}

func (e *StarExpr) expression() {}

func (e *StarExpr) Format(buf *bytes.Buffer) {
	if e.Qualifier != "" {
		buf.WriteString(e.Qualifier)
		buf.WriteByte('.')
	}
	buf.WriteByte('*')
}

type NumberLit struct {
	Value string
}

func (e *NumberLit) expression() {}

func (e *NumberLit) Format(buf *bytes.Buffer) { buf.WriteString(e.Value) }

// Int returns the literal as an int, or false when it is not integral.
func (e *NumberLit) Int() (int, bool) {
	n, err := strconv.Atoi(e.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// StringLit keeps the original quoting so literals round-trip untouched.
type StringLit struct {
	Value string
}

func (e *StringLit) expression() {}

func (e *StringLit) Format(buf *bytes.Buffer) { buf.WriteString(e.Value) }

// Text returns the literal content without quotes, with doubled quotes
// collapsed.
func (e *StringLit) Text() string {
	v := e.Value
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		v = v[1 : len(v)-1]
	}
	return strings.ReplaceAll(v, "''", "'")
}

type NullLit struct{}

func (e *NullLit) expression() {}

func (e *NullLit) Format(buf *bytes.Buffer) { buf.WriteString("NULL") }

// FuncCall is a function invocation. Name keeps the source spelling; the
// structural mapper rewrites it case-insensitively.
type FuncCall struct {
	Name string
	Args []Expression
	Pos  int
}

func (e *FuncCall) expression() {}

func (e *FuncCall) Format(buf *bytes.Buffer) {
	buf.WriteString(e.Name)
	buf.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		a.Format(buf)
	}
	buf.WriteByte(')')
}

// Binary is an infix operation, including AND/OR and "||".
type Binary struct {
	Op    string
	Left  Expression
	Right Expression
}

func (e *Binary) expression() {}

func (e *Binary) Format(buf *bytes.Buffer) {
	e.Left.Format(buf)
	buf.WriteByte(' ')
	buf.WriteString(e.Op)
	buf.WriteByte(' ')
	e.Right.Format(buf)
}

// Prefix is a unary operation: NOT or arithmetic "-".
type Prefix struct {
	Op   string
	Expr Expression
}

func (e *Prefix) expression() {}

func (e *Prefix) Format(buf *bytes.Buffer) {
	buf.WriteString(e.Op)
	if e.Op == "NOT" {
		buf.WriteByte(' ')
	}
	e.Expr.Format(buf)
}

type Paren struct {
	Expr Expression
}

func (e *Paren) expression() {}

func (e *Paren) Format(buf *bytes.Buffer) {
	buf.WriteByte('(')
	e.Expr.Format(buf)
	buf.WriteByte(')')
}

// Prior marks the operand of a recursive-parent predicate referring to the
// previous iteration's row.
type Prior struct {
	Expr Expression
}

func (e *Prior) expression() {}

func (e *Prior) Format(buf *bytes.Buffer) {
	buf.WriteString("PRIOR ")
	e.Expr.Format(buf)
}

// RootExpr is CONNECT_BY_ROOT expr: the value of expr on the traversal's
// root row.
type RootExpr struct {
	Expr Expression
}

func (e *RootExpr) expression() {}

func (e *RootExpr) Format(buf *bytes.Buffer) {
	buf.WriteString("CONNECT_BY_ROOT ")
	e.Expr.Format(buf)
}

// PseudoKind enumerates the context-dependent pseudo-columns.
type PseudoKind int

const (
	PseudoLevel PseudoKind = iota
	PseudoRownum
	PseudoIsLeaf
)

func (k PseudoKind) String() string {
	switch k {
	case PseudoRownum:
		return "ROWNUM"
	case PseudoIsLeaf:
		return "CONNECT_BY_ISLEAF"
	default:
		return "LEVEL"
	}
}

type PseudoCol struct {
	Kind PseudoKind
	Pos  int
}

func (e *PseudoCol) expression() {}

func (e *PseudoCol) Format(buf *bytes.Buffer) { buf.WriteString(e.Kind.String()) }

// DataType is a parameterized type reference inside CAST.
type DataType struct {
	Name         string
	Precision    int
	Scale        int
	HasPrecision bool
	HasScale     bool
}

func (t DataType) Format(buf *bytes.Buffer) {
	buf.WriteString(t.Name)
	if t.HasPrecision {
		buf.WriteByte('(')
		buf.WriteString(strconv.Itoa(t.Precision))
		if t.HasScale {
			buf.WriteString(", ")
			buf.WriteString(strconv.Itoa(t.Scale))
		}
		buf.WriteByte(')')
	}
}

type CastExpr struct {
	Expr Expression
	Type DataType
}

func (e *CastExpr) expression() {}

func (e *CastExpr) Format(buf *bytes.Buffer) {
	buf.WriteString("CAST(")
	e.Expr.Format(buf)
	buf.WriteString(" AS ")
	e.Type.Format(buf)
	buf.WriteByte(')')
}

type IsNull struct {
	Expr Expression
	Not  bool
}

func (e *IsNull) expression() {}

func (e *IsNull) Format(buf *bytes.Buffer) {
	e.Expr.Format(buf)
	if e.Not {
		buf.WriteString(" IS NOT NULL")
	} else {
		buf.WriteString(" IS NULL")
	}
}

type InExpr struct {
	Expr Expression
	Not  bool
	List []Expression
}

func (e *InExpr) expression() {}

func (e *InExpr) Format(buf *bytes.Buffer) {
	e.Expr.Format(buf)
	if e.Not {
		buf.WriteString(" NOT")
	}
	buf.WriteString(" IN (")
	for i, item := range e.List {
		if i > 0 {
			buf.WriteString(", ")
		}
		item.Format(buf)
	}
	buf.WriteByte(')')
}

type LikeExpr struct {
	Expr    Expression
	Not     bool
	Pattern Expression
	// Op lets the mapper retarget REGEXP_LIKE to RLIKE.
	Op string
}

func (e *LikeExpr) expression() {}

func (e *LikeExpr) Format(buf *bytes.Buffer) {
	e.Expr.Format(buf)
	if e.Not {
		buf.WriteString(" NOT")
	}
	op := e.Op
	if op == "" {
		op = "LIKE"
	}
	buf.WriteByte(' ')
	buf.WriteString(op)
	buf.WriteByte(' ')
	e.Pattern.Format(buf)
}

type Between struct {
	Expr Expression
	Not  bool
	Low  Expression
	High Expression
}

func (e *Between) expression() {}

func (e *Between) Format(buf *bytes.Buffer) {
	e.Expr.Format(buf)
	if e.Not {
		buf.WriteString(" NOT")
	}
	buf.WriteString(" BETWEEN ")
	e.Low.Format(buf)
	buf.WriteString(" AND ")
	e.High.Format(buf)
}

// ExistsExpr is [NOT] EXISTS (subquery); the hierarchy rewriter uses it for
// leaf detection.
type ExistsExpr struct {
	Not   bool
	Query Statement
}

func (e *ExistsExpr) expression() {}

func (e *ExistsExpr) Format(buf *bytes.Buffer) {
	if e.Not {
		buf.WriteString("NOT ")
	}
	buf.WriteString("EXISTS (")
	e.Query.Format(buf)
	buf.WriteByte(')')
}

type WhenClause struct {
	When Expression
	Then Expression
}

// CaseExpr covers both simple (Operand != nil) and searched CASE.
type CaseExpr struct {
	Operand Expression
	Whens   []WhenClause
	Else    Expression
}

func (e *CaseExpr) expression() {}

func (e *CaseExpr) Format(buf *bytes.Buffer) {
	buf.WriteString("CASE")
	if e.Operand != nil {
		buf.WriteByte(' ')
		e.Operand.Format(buf)
	}
	for _, w := range e.Whens {
		buf.WriteString(" WHEN ")
		w.When.Format(buf)
		buf.WriteString(" THEN ")
		w.Then.Format(buf)
	}
	if e.Else != nil {
		buf.WriteString(" ELSE ")
		e.Else.Format(buf)
	}
	buf.WriteString(" END")
}
