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

package osql

// RewriteExpr rebuilds an expression bottom-up: children are rewritten
// first, then fn is applied to the node itself. fn must return its argument
// unchanged for nodes it does not care about.
func RewriteExpr(e Expression, fn func(Expression) Expression) Expression {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *Binary:
		v.Left = RewriteExpr(v.Left, fn)
		v.Right = RewriteExpr(v.Right, fn)
	case *Prefix:
		v.Expr = RewriteExpr(v.Expr, fn)
	case *Paren:
		v.Expr = RewriteExpr(v.Expr, fn)
	case *Prior:
		v.Expr = RewriteExpr(v.Expr, fn)
	case *RootExpr:
		v.Expr = RewriteExpr(v.Expr, fn)
	case *FuncCall:
		for i := range v.Args {
			v.Args[i] = RewriteExpr(v.Args[i], fn)
		}
	case *CastExpr:
		v.Expr = RewriteExpr(v.Expr, fn)
	case *IsNull:
		v.Expr = RewriteExpr(v.Expr, fn)
	case *InExpr:
		v.Expr = RewriteExpr(v.Expr, fn)
		for i := range v.List {
			v.List[i] = RewriteExpr(v.List[i], fn)
		}
	case *LikeExpr:
		v.Expr = RewriteExpr(v.Expr, fn)
		v.Pattern = RewriteExpr(v.Pattern, fn)
	case *Between:
		v.Expr = RewriteExpr(v.Expr, fn)
		v.Low = RewriteExpr(v.Low, fn)
		v.High = RewriteExpr(v.High, fn)
	case *CaseExpr:
		v.Operand = RewriteExpr(v.Operand, fn)
		for i := range v.Whens {
			v.Whens[i].When = RewriteExpr(v.Whens[i].When, fn)
			v.Whens[i].Then = RewriteExpr(v.Whens[i].Then, fn)
		}
		v.Else = RewriteExpr(v.Else, fn)
	}
	return fn(e)
}

// RewriteStatement applies fn to every expression site of a query block,
// bottom-up. Subqueries inside EXISTS are not descended into; the mapper
// handles nested blocks explicitly.
func RewriteStatement(s *SelectStatement, fn func(Expression) Expression) {
	for i := range s.Fields {
		s.Fields[i].Expr = RewriteExpr(s.Fields[i].Expr, fn)
	}
	for i := range s.Joins {
		s.Joins[i].On = RewriteExpr(s.Joins[i].On, fn)
	}
	s.Where = RewriteExpr(s.Where, fn)
	s.StartWith = RewriteExpr(s.StartWith, fn)
	if s.ConnectBy != nil {
		s.ConnectBy.Cond = RewriteExpr(s.ConnectBy.Cond, fn)
	}
	for i := range s.GroupBy {
		s.GroupBy[i] = RewriteExpr(s.GroupBy[i], fn)
	}
	s.Having = RewriteExpr(s.Having, fn)
	for i := range s.OrderBy {
		s.OrderBy[i].Expr = RewriteExpr(s.OrderBy[i].Expr, fn)
	}
}

// WalkExpr visits an expression tree pre-order; returning false from fn
// stops descent into the node's children.
func WalkExpr(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch v := e.(type) {
	case *Binary:
		WalkExpr(v.Left, fn)
		WalkExpr(v.Right, fn)
	case *Prefix:
		WalkExpr(v.Expr, fn)
	case *Paren:
		WalkExpr(v.Expr, fn)
	case *Prior:
		WalkExpr(v.Expr, fn)
	case *RootExpr:
		WalkExpr(v.Expr, fn)
	case *FuncCall:
		for _, a := range v.Args {
			WalkExpr(a, fn)
		}
	case *CastExpr:
		WalkExpr(v.Expr, fn)
	case *IsNull:
		WalkExpr(v.Expr, fn)
	case *InExpr:
		WalkExpr(v.Expr, fn)
		for _, item := range v.List {
			WalkExpr(item, fn)
		}
	case *LikeExpr:
		WalkExpr(v.Expr, fn)
		WalkExpr(v.Pattern, fn)
	case *Between:
		WalkExpr(v.Expr, fn)
		WalkExpr(v.Low, fn)
		WalkExpr(v.High, fn)
	case *CaseExpr:
		WalkExpr(v.Operand, fn)
		for _, w := range v.Whens {
			WalkExpr(w.When, fn)
			WalkExpr(w.Then, fn)
		}
		WalkExpr(v.Else, fn)
	}
}

// WalkStatement visits every expression site of a query block pre-order.
func WalkStatement(s *SelectStatement, fn func(Expression) bool) {
	for _, f := range s.Fields {
		WalkExpr(f.Expr, fn)
	}
	for _, j := range s.Joins {
		WalkExpr(j.On, fn)
	}
	WalkExpr(s.Where, fn)
	WalkExpr(s.StartWith, fn)
	if s.ConnectBy != nil {
		WalkExpr(s.ConnectBy.Cond, fn)
	}
	for _, g := range s.GroupBy {
		WalkExpr(g, fn)
	}
	WalkExpr(s.Having, fn)
	for _, o := range s.OrderBy {
		WalkExpr(o.Expr, fn)
	}
}
