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

// CloneExpr deep-copies an expression tree. Subqueries inside EXISTS are
// shared, not copied; rewriters that duplicate expressions never reuse
// them across query blocks.
func CloneExpr(e Expression) Expression {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *Ident:
		c := *v
		return &c
	case *StarExpr:
		c := *v
		return &c
	case *NumberLit:
		c := *v
		return &c
	case *StringLit:
		c := *v
		return &c
	case *NullLit:
		return &NullLit{}
	case *FuncCall:
		c := &FuncCall{Name: v.Name, Pos: v.Pos}
		for _, a := range v.Args {
			c.Args = append(c.Args, CloneExpr(a))
		}
		return c
	case *Binary:
		return &Binary{Op: v.Op, Left: CloneExpr(v.Left), Right: CloneExpr(v.Right)}
	case *Prefix:
		return &Prefix{Op: v.Op, Expr: CloneExpr(v.Expr)}
	case *Paren:
		return &Paren{Expr: CloneExpr(v.Expr)}
	case *Prior:
		return &Prior{Expr: CloneExpr(v.Expr)}
	case *RootExpr:
		return &RootExpr{Expr: CloneExpr(v.Expr)}
	case *PseudoCol:
		c := *v
		return &c
	case *CastExpr:
		return &CastExpr{Expr: CloneExpr(v.Expr), Type: v.Type}
	case *IsNull:
		return &IsNull{Expr: CloneExpr(v.Expr), Not: v.Not}
	case *InExpr:
		c := &InExpr{Expr: CloneExpr(v.Expr), Not: v.Not}
		for _, item := range v.List {
			c.List = append(c.List, CloneExpr(item))
		}
		return c
	case *LikeExpr:
		return &LikeExpr{Expr: CloneExpr(v.Expr), Not: v.Not, Pattern: CloneExpr(v.Pattern), Op: v.Op}
	case *Between:
		return &Between{Expr: CloneExpr(v.Expr), Not: v.Not, Low: CloneExpr(v.Low), High: CloneExpr(v.High)}
	case *ExistsExpr:
		return &ExistsExpr{Not: v.Not, Query: v.Query}
	case *CaseExpr:
		c := &CaseExpr{Operand: CloneExpr(v.Operand), Else: CloneExpr(v.Else)}
		for _, w := range v.Whens {
			c.Whens = append(c.Whens, WhenClause{When: CloneExpr(w.When), Then: CloneExpr(w.Then)})
		}
		return c
	default:
		return e
	}
}
