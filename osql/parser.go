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

import (
	"strconv"
	"strings"
)

// Parser builds a statement tree from Oracle SQL text.
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// prime cur and peek
	p.next()
	p.next()
	return p
}

// Parse parses a single SELECT statement, tolerating a trailing semicolon.
func Parse(input string) (*SelectStatement, error) {
	return NewParser(input).Parse()
}

// ParseStatement parses one statement of any supported kind: SELECT,
// UPDATE, INSERT or DELETE. A trailing semicolon is tolerated.
func ParseStatement(input string) (Statement, error) {
	return NewParser(input).ParseStatement()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) expect(tt TokenType, what string) error {
	if p.cur.Type != tt {
		return newParseError(ErrorTypeMissingToken, "expected "+what, p.cur, what)
	}
	p.next()
	return nil
}

// operator precedence, loosest first
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precCompare
	precAdditive
	precMultiplicative
	precUnary
)

func tokenPrecedence(tt TokenType) int {
	switch tt {
	case TokenOR:
		return precOr
	case TokenAND:
		return precAnd
	case TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE,
		TokenIS, TokenIN, TokenLIKE, TokenBETWEEN, TokenNOT:
		return precCompare
	case TokenPlus, TokenMinus, TokenConcat:
		return precAdditive
	case TokenAsterisk, TokenSlash:
		return precMultiplicative
	default:
		return precLowest
	}
}

func (p *Parser) Parse() (*SelectStatement, error) {
	if p.cur.Type != TokenSELECT {
		return nil, newParseError(ErrorTypeSyntax, "statement must begin with SELECT", p.cur, "SELECT")
	}
	stmt, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ParseStatement dispatches on the leading keyword.
func (p *Parser) ParseStatement() (Statement, error) {
	var stmt Statement
	var err error
	switch p.cur.Type {
	case TokenSELECT:
		stmt, err = p.parseSelect()
	case TokenUPDATE:
		stmt, err = p.parseUpdate()
	case TokenINSERT:
		stmt, err = p.parseInsert()
	case TokenDELETE:
		stmt, err = p.parseDelete()
	default:
		return nil, newParseError(ErrorTypeSyntax, "unsupported statement kind", p.cur, "SELECT, UPDATE, INSERT or DELETE")
	}
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// finish consumes an optional trailing semicolon and demands EOF.
func (p *Parser) finish() error {
	if p.cur.Type == TokenSemicolon {
		p.next()
	}
	if p.cur.Type != TokenEOF {
		return newParseError(ErrorTypeUnexpectedToken, "unexpected trailing input", p.cur)
	}
	return nil
}

func (p *Parser) parseUpdate() (*UpdateStatement, error) {
	p.next() // consume UPDATE
	ref, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	stmt := &UpdateStatement{Table: ref}
	if err := p.expect(TokenSET, "SET"); err != nil {
		return nil, err
	}
	for {
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenEQ, "="); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Set = append(stmt.Set, Assignment{Column: col, Value: val})
		if p.cur.Type != TokenComma {
			break
		}
		p.next()
	}
	if p.cur.Type == TokenWHERE {
		p.next()
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Where = cond
	}
	return stmt, nil
}

func (p *Parser) parseDelete() (*DeleteStatement, error) {
	p.next() // consume DELETE
	if p.cur.Type == TokenFROM {
		p.next()
	}
	ref, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	stmt := &DeleteStatement{Table: ref}
	if p.cur.Type == TokenWHERE {
		p.next()
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Where = cond
	}
	return stmt, nil
}

func (p *Parser) parseInsert() (*InsertStatement, error) {
	p.next() // consume INSERT
	if err := p.expect(TokenINTO, "INTO"); err != nil {
		return nil, err
	}
	ref, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	stmt := &InsertStatement{Table: ref}

	if p.cur.Type == TokenLParen {
		p.next()
		for {
			if p.cur.Type != TokenIdent && p.cur.Type != TokenQuotedIdent {
				return nil, newParseError(ErrorTypeMissingToken, "expected column name", p.cur, "identifier")
			}
			stmt.Columns = append(stmt.Columns, p.cur.Value)
			p.next()
			if p.cur.Type != TokenComma {
				break
			}
			p.next()
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
	}

	switch p.cur.Type {
	case TokenVALUES:
		p.next()
		if err := p.expect(TokenLParen, "("); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			stmt.Values = append(stmt.Values, e)
			if p.cur.Type != TokenComma {
				break
			}
			p.next()
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
	case TokenSELECT:
		q, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		stmt.Query = q
	default:
		return nil, newParseError(ErrorTypeMissingToken, "expected VALUES or a query", p.cur, "VALUES")
	}
	return stmt, nil
}

// parseColumnRef parses a possibly qualified column identifier.
func (p *Parser) parseColumnRef() (*Ident, error) {
	if p.cur.Type != TokenIdent && p.cur.Type != TokenQuotedIdent {
		return nil, newParseError(ErrorTypeMissingToken, "expected column name", p.cur, "identifier")
	}
	id := &Ident{Name: p.cur.Value, Pos: p.cur.Pos}
	p.next()
	if p.cur.Type == TokenDot {
		p.next()
		if p.cur.Type != TokenIdent && p.cur.Type != TokenQuotedIdent {
			return nil, newParseError(ErrorTypeMissingToken, "expected name after '.'", p.cur, "identifier")
		}
		id.Qualifier = id.Name
		id.Name = p.cur.Value
		p.next()
	}
	return id, nil
}

// parseSelect parses one query block; it stops at RPAREN, semicolon or EOF
// so it can also be used for subqueries.
func (p *Parser) parseSelect() (*SelectStatement, error) {
	stmt := &SelectStatement{}
	p.next() // consume SELECT

	if p.cur.Type == TokenDISTINCT {
		stmt.Distinct = true
		p.next()
	}

	if err := p.parseSelectList(stmt); err != nil {
		return nil, err
	}
	if p.cur.Type == TokenFROM {
		if err := p.parseFrom(stmt); err != nil {
			return nil, err
		}
	}
	if p.cur.Type == TokenWHERE {
		p.next()
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Where = cond
	}
	// START WITH and CONNECT BY may appear in either order.
	for p.cur.Type == TokenSTART || p.cur.Type == TokenCONNECT {
		if p.cur.Type == TokenSTART {
			p.next()
			if err := p.expect(TokenWITH, "WITH"); err != nil {
				return nil, err
			}
			cond, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			stmt.StartWith = cond
		} else {
			p.next()
			if err := p.expect(TokenBY, "BY"); err != nil {
				return nil, err
			}
			cb := &ConnectByClause{}
			if p.cur.Type == TokenNOCYCLE {
				cb.NoCycle = true
				p.next()
			}
			cond, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			cb.Cond = cond
			stmt.ConnectBy = cb
		}
	}
	if p.cur.Type == TokenGROUP {
		p.next()
		if err := p.expect(TokenBY, "BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			stmt.GroupBy = append(stmt.GroupBy, e)
			if p.cur.Type != TokenComma {
				break
			}
			p.next()
		}
	}
	if p.cur.Type == TokenHAVING {
		p.next()
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Having = cond
	}
	if p.cur.Type == TokenORDER {
		p.next()
		if p.cur.Type == TokenSIBLINGS {
			stmt.OrderSiblings = true
			p.next()
		}
		if err := p.expect(TokenBY, "BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			item := OrderItem{Expr: e}
			if p.cur.Type == TokenASC {
				p.next()
			} else if p.cur.Type == TokenDESC {
				item.Desc = true
				p.next()
			}
			stmt.OrderBy = append(stmt.OrderBy, item)
			if p.cur.Type != TokenComma {
				break
			}
			p.next()
		}
	}
	return stmt, nil
}

const maxFields = 256

func (p *Parser) parseSelectList(stmt *SelectStatement) error {
	for i := 0; ; i++ {
		if i > maxFields {
			return newParseError(ErrorTypeMaxIterations, "select list exceeded maximum fields", p.cur)
		}
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return err
		}
		field := SelectField{Expr: expr}
		if alias, ok := p.parseAlias(); ok {
			field.Alias = alias
		}
		stmt.Fields = append(stmt.Fields, field)
		if p.cur.Type != TokenComma {
			return nil
		}
		p.next()
	}
}

// parseAlias consumes "[AS] ident" when present.
func (p *Parser) parseAlias() (string, bool) {
	if p.cur.Type == TokenAS {
		p.next()
		name := p.cur.Value
		if p.cur.Type == TokenQuotedIdent {
			name = strings.Trim(name, "\"")
		}
		p.next()
		return name, true
	}
	if p.cur.Type == TokenIdent {
		name := p.cur.Value
		p.next()
		return name, true
	}
	if p.cur.Type == TokenQuotedIdent {
		name := strings.Trim(p.cur.Value, "\"")
		p.next()
		return name, true
	}
	return "", false
}

func (p *Parser) parseFrom(stmt *SelectStatement) error {
	p.next() // consume FROM
	for {
		ref, err := p.parseTableRef()
		if err != nil {
			return err
		}
		stmt.From = append(stmt.From, ref)
		if p.cur.Type != TokenComma {
			break
		}
		p.next()
	}
	for {
		jt, ok := p.parseJoinType()
		if !ok {
			return nil
		}
		ref, err := p.parseTableRef()
		if err != nil {
			return err
		}
		join := Join{Type: jt, Table: ref}
		if p.cur.Type == TokenON {
			p.next()
			cond, err := p.parseExpression(precLowest)
			if err != nil {
				return err
			}
			join.On = cond
		}
		stmt.Joins = append(stmt.Joins, join)
	}
}

func (p *Parser) parseJoinType() (JoinType, bool) {
	switch p.cur.Type {
	case TokenJOIN:
		p.next()
		return JoinInner, true
	case TokenINNER:
		p.next()
		if p.cur.Type == TokenJOIN {
			p.next()
		}
		return JoinInner, true
	case TokenCROSS:
		p.next()
		if p.cur.Type == TokenJOIN {
			p.next()
		}
		return JoinCross, true
	case TokenLEFT, TokenRIGHT, TokenFULL:
		jt := JoinLeftOuter
		if p.cur.Type == TokenRIGHT {
			jt = JoinRightOuter
		} else if p.cur.Type == TokenFULL {
			jt = JoinFullOuter
		}
		p.next()
		if p.cur.Type == TokenOUTER {
			p.next()
		}
		if p.cur.Type == TokenJOIN {
			p.next()
		}
		return jt, true
	default:
		return JoinInner, false
	}
}

func (p *Parser) parseTableRef() (TableRef, error) {
	if p.cur.Type != TokenIdent && p.cur.Type != TokenQuotedIdent {
		return TableRef{}, newParseError(ErrorTypeMissingToken, "expected table name", p.cur, "identifier")
	}
	name := p.cur.Value
	p.next()
	for p.cur.Type == TokenDot {
		p.next()
		if p.cur.Type != TokenIdent && p.cur.Type != TokenQuotedIdent {
			return TableRef{}, newParseError(ErrorTypeMissingToken, "expected name after '.'", p.cur, "identifier")
		}
		name += "." + p.cur.Value
		p.next()
	}
	ref := TableRef{Name: name}
	if p.cur.Type == TokenAS {
		p.next()
	}
	if p.cur.Type == TokenIdent {
		ref.Alias = p.cur.Value
		p.next()
	}
	return ref, nil
}

const maxExprDepth = 200

func (p *Parser) parseExpression(minPrec int) (Expression, error) {
	return p.parseExpressionDepth(minPrec, 0)
}

func (p *Parser) parseExpressionDepth(minPrec, depth int) (Expression, error) {
	if depth > maxExprDepth {
		return nil, newParseError(ErrorTypeMaxIterations, "expression nesting too deep", p.cur)
	}
	left, err := p.parsePrimary(depth)
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur.Type {
		case TokenIS:
			if precCompare <= minPrec {
				return left, nil
			}
			p.next()
			not := false
			if p.cur.Type == TokenNOT {
				not = true
				p.next()
			}
			if err := p.expect(TokenNULL, "NULL"); err != nil {
				return nil, err
			}
			left = &IsNull{Expr: left, Not: not}
		case TokenNOT:
			// NOT here is infix-ish: NOT IN / NOT LIKE / NOT BETWEEN
			switch p.peek.Type {
			case TokenIN, TokenLIKE, TokenBETWEEN:
				if precCompare <= minPrec {
					return left, nil
				}
				p.next()
				e, err := p.parseNegatablePostfix(left, true, depth)
				if err != nil {
					return nil, err
				}
				left = e
			default:
				return left, nil
			}
		case TokenIN, TokenLIKE, TokenBETWEEN:
			if precCompare <= minPrec {
				return left, nil
			}
			e, err := p.parseNegatablePostfix(left, false, depth)
			if err != nil {
				return nil, err
			}
			left = e
		case TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE,
			TokenPlus, TokenMinus, TokenConcat, TokenAsterisk, TokenSlash,
			TokenAND, TokenOR:
			prec := tokenPrecedence(p.cur.Type)
			if prec <= minPrec {
				return left, nil
			}
			op := p.cur.Value
			p.next()
			right, err := p.parseExpressionDepth(prec, depth+1)
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: op, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

// parseNegatablePostfix parses IN/LIKE/BETWEEN with the operator as the
// current token.
func (p *Parser) parseNegatablePostfix(left Expression, not bool, depth int) (Expression, error) {
	switch p.cur.Type {
	case TokenIN:
		p.next()
		if err := p.expect(TokenLParen, "("); err != nil {
			return nil, err
		}
		in := &InExpr{Expr: left, Not: not}
		for {
			item, err := p.parseExpressionDepth(precLowest, depth+1)
			if err != nil {
				return nil, err
			}
			in.List = append(in.List, item)
			if p.cur.Type != TokenComma {
				break
			}
			p.next()
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return in, nil
	case TokenLIKE:
		p.next()
		pattern, err := p.parseExpressionDepth(precCompare, depth+1)
		if err != nil {
			return nil, err
		}
		return &LikeExpr{Expr: left, Not: not, Pattern: pattern}, nil
	case TokenBETWEEN:
		p.next()
		low, err := p.parseExpressionDepth(precCompare, depth+1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenAND, "AND"); err != nil {
			return nil, err
		}
		high, err := p.parseExpressionDepth(precCompare, depth+1)
		if err != nil {
			return nil, err
		}
		return &Between{Expr: left, Not: not, Low: low, High: high}, nil
	}
	return nil, newParseError(ErrorTypeUnexpectedToken, "unexpected operator", p.cur)
}

func (p *Parser) parsePrimary(depth int) (Expression, error) {
	switch p.cur.Type {
	case TokenNumber:
		lit := &NumberLit{Value: p.cur.Value}
		p.next()
		return lit, nil
	case TokenString:
		lit := &StringLit{Value: p.cur.Value}
		p.next()
		return lit, nil
	case TokenNULL:
		p.next()
		return &NullLit{}, nil
	case TokenAsterisk:
		p.next()
		return &StarExpr{}, nil
	case TokenMinus:
		p.next()
		e, err := p.parsePrimary(depth + 1)
		if err != nil {
			return nil, err
		}
		return &Prefix{Op: "-", Expr: e}, nil
	case TokenNOT:
		p.next()
		e, err := p.parseExpressionDepth(precNot, depth+1)
		if err != nil {
			return nil, err
		}
		return &Prefix{Op: "NOT", Expr: e}, nil
	case TokenPRIOR:
		p.next()
		e, err := p.parsePrimary(depth + 1)
		if err != nil {
			return nil, err
		}
		return &Prior{Expr: e}, nil
	case TokenConnectByRoot:
		p.next()
		e, err := p.parsePrimary(depth + 1)
		if err != nil {
			return nil, err
		}
		return &RootExpr{Expr: e}, nil
	case TokenLEVEL:
		col := &PseudoCol{Kind: PseudoLevel, Pos: p.cur.Pos}
		p.next()
		return col, nil
	case TokenROWNUM:
		col := &PseudoCol{Kind: PseudoRownum, Pos: p.cur.Pos}
		p.next()
		return col, nil
	case TokenConnectByIsLeaf:
		col := &PseudoCol{Kind: PseudoIsLeaf, Pos: p.cur.Pos}
		p.next()
		return col, nil
	case TokenLParen:
		p.next()
		e, err := p.parseExpressionDepth(precLowest, depth+1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return &Paren{Expr: e}, nil
	case TokenEXISTS:
		p.next()
		if err := p.expect(TokenLParen, "("); err != nil {
			return nil, err
		}
		if p.cur.Type != TokenSELECT {
			return nil, newParseError(ErrorTypeMissingToken, "expected subquery", p.cur, "SELECT")
		}
		sub, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return &ExistsExpr{Query: sub}, nil
	case TokenCASE:
		return p.parseCase(depth)
	case TokenCAST:
		return p.parseCast(depth)
	case TokenIdent, TokenQuotedIdent:
		return p.parseIdentOrCall(depth)
	}
	return nil, newParseError(ErrorTypeInvalidExpression, "unexpected token in expression", p.cur)
}

func (p *Parser) parseCase(depth int) (Expression, error) {
	p.next() // CASE
	c := &CaseExpr{}
	if p.cur.Type != TokenWHEN {
		operand, err := p.parseExpressionDepth(precLowest, depth+1)
		if err != nil {
			return nil, err
		}
		c.Operand = operand
	}
	for p.cur.Type == TokenWHEN {
		p.next()
		when, err := p.parseExpressionDepth(precLowest, depth+1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenTHEN, "THEN"); err != nil {
			return nil, err
		}
		then, err := p.parseExpressionDepth(precLowest, depth+1)
		if err != nil {
			return nil, err
		}
		c.Whens = append(c.Whens, WhenClause{When: when, Then: then})
	}
	if p.cur.Type == TokenELSE {
		p.next()
		e, err := p.parseExpressionDepth(precLowest, depth+1)
		if err != nil {
			return nil, err
		}
		c.Else = e
	}
	if err := p.expect(TokenEND, "END"); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseCast(depth int) (Expression, error) {
	p.next() // CAST
	if err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	e, err := p.parseExpressionDepth(precLowest, depth+1)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenAS, "AS"); err != nil {
		return nil, err
	}
	dt, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	return &CastExpr{Expr: e, Type: dt}, nil
}

func (p *Parser) parseDataType() (DataType, error) {
	if p.cur.Type != TokenIdent {
		return DataType{}, newParseError(ErrorTypeMissingToken, "expected type name", p.cur, "identifier")
	}
	dt := DataType{Name: strings.ToUpper(p.cur.Value)}
	p.next()
	if p.cur.Type == TokenLParen {
		p.next()
		if p.cur.Type != TokenNumber {
			return DataType{}, newParseError(ErrorTypeMissingToken, "expected type precision", p.cur, "number")
		}
		n, _ := strconv.Atoi(p.cur.Value)
		dt.Precision = n
		dt.HasPrecision = true
		p.next()
		if p.cur.Type == TokenComma {
			p.next()
			if p.cur.Type != TokenNumber {
				return DataType{}, newParseError(ErrorTypeMissingToken, "expected type scale", p.cur, "number")
			}
			s, _ := strconv.Atoi(p.cur.Value)
			dt.Scale = s
			dt.HasScale = true
			p.next()
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return DataType{}, err
		}
	}
	return dt, nil
}

// parseIdentOrCall parses a possibly qualified identifier, a function call,
// or "alias.*". A trailing "(+)" marker attaches to the identifier.
func (p *Parser) parseIdentOrCall(depth int) (Expression, error) {
	pos := p.cur.Pos
	name := p.cur.Value
	p.next()

	var parts []string
	parts = append(parts, name)
	for p.cur.Type == TokenDot {
		p.next()
		if p.cur.Type == TokenAsterisk {
			p.next()
			return &StarExpr{Qualifier: strings.Join(parts, ".")}, nil
		}
		if p.cur.Type != TokenIdent && p.cur.Type != TokenQuotedIdent {
			return nil, newParseError(ErrorTypeMissingToken, "expected name after '.'", p.cur, "identifier")
		}
		parts = append(parts, p.cur.Value)
		p.next()
	}

	if p.cur.Type == TokenLParen {
		// function call; the full dotted name is the callee (packages keep
		// their qualifier, e.g. DBMS_RANDOM.VALUE)
		p.next()
		call := &FuncCall{Name: strings.Join(parts, "."), Pos: pos}
		if p.cur.Type == TokenRParen {
			p.next()
			return call, nil
		}
		for {
			if p.cur.Type == TokenAsterisk {
				call.Args = append(call.Args, &StarExpr{})
				p.next()
			} else {
				arg, err := p.parseExpressionDepth(precLowest, depth+1)
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
			}
			if p.cur.Type != TokenComma {
				break
			}
			p.next()
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return call, nil
	}

	ident := &Ident{Name: parts[len(parts)-1], Pos: pos}
	if len(parts) > 1 {
		ident.Qualifier = strings.Join(parts[:len(parts)-1], ".")
	}
	if p.cur.Type == TokenOuterJoin {
		ident.Marker = true
		p.next()
	}
	return ident, nil
}
