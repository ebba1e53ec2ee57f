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

// Lexer splits Oracle SQL text into tokens. Comments are consumed as
// whitespace; string literals keep their quotes in Value so they can be
// re-serialized verbatim.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekCharAt(offset int) byte {
	idx := l.readPos + offset
	if idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()
	pos := l.pos

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Pos: pos}
	case ',':
		l.readChar()
		return Token{Type: TokenComma, Value: ",", Pos: pos}
	case '.':
		l.readChar()
		return Token{Type: TokenDot, Value: ".", Pos: pos}
	case ';':
		l.readChar()
		return Token{Type: TokenSemicolon, Value: ";", Pos: pos}
	case '(':
		// "(+)" is the legacy outer-join marker, lexed as one token.
		if l.peekChar() == '+' && l.peekCharAt(1) == ')' {
			l.readChar()
			l.readChar()
			l.readChar()
			return Token{Type: TokenOuterJoin, Value: "(+)", Pos: pos}
		}
		l.readChar()
		return Token{Type: TokenLParen, Value: "(", Pos: pos}
	case ')':
		l.readChar()
		return Token{Type: TokenRParen, Value: ")", Pos: pos}
	case '+':
		l.readChar()
		return Token{Type: TokenPlus, Value: "+", Pos: pos}
	case '-':
		l.readChar()
		return Token{Type: TokenMinus, Value: "-", Pos: pos}
	case '*':
		l.readChar()
		return Token{Type: TokenAsterisk, Value: "*", Pos: pos}
	case '/':
		l.readChar()
		return Token{Type: TokenSlash, Value: "/", Pos: pos}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenConcat, Value: "||", Pos: pos}
		}
		l.readChar()
		return Token{Type: TokenIllegal, Value: "|", Pos: pos}
	case '=':
		l.readChar()
		return Token{Type: TokenEQ, Value: "=", Pos: pos}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenNE, Value: "!=", Pos: pos}
		}
		l.readChar()
		return Token{Type: TokenIllegal, Value: "!", Pos: pos}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			l.readChar()
			return Token{Type: TokenLE, Value: "<=", Pos: pos}
		case '>':
			l.readChar()
			l.readChar()
			return Token{Type: TokenNE, Value: "<>", Pos: pos}
		}
		l.readChar()
		return Token{Type: TokenLT, Value: "<", Pos: pos}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenGE, Value: ">=", Pos: pos}
		}
		l.readChar()
		return Token{Type: TokenGT, Value: ">", Pos: pos}
	case '\'':
		return l.readString()
	case '"':
		return l.readQuotedIdent()
	}

	if isLetter(l.ch) {
		ident := l.readIdentifier()
		return Token{Type: lookupIdent(ident), Value: ident, Pos: pos}
	}
	if isDigit(l.ch) {
		return Token{Type: TokenNumber, Value: l.readNumber(), Pos: pos}
	}

	ch := l.ch
	l.readChar()
	return Token{Type: TokenIllegal, Value: string(ch), Pos: pos}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		// single-line comment
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		// block comment
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
			continue
		}
		return
	}
}

// readString reads a single-quoted literal, honoring the doubled-quote
// escape. The returned Value includes the surrounding quotes.
func (l *Lexer) readString() Token {
	pos := l.pos
	l.readChar() // consume opening quote
	for {
		if l.ch == 0 {
			return Token{Type: TokenIllegal, Value: l.input[pos:l.pos], Pos: pos}
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		l.readChar()
	}
	return Token{Type: TokenString, Value: l.input[pos:l.pos], Pos: pos}
}

// readQuotedIdent reads a double-quoted identifier, quotes included.
func (l *Lexer) readQuotedIdent() Token {
	pos := l.pos
	l.readChar()
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return Token{Type: TokenIllegal, Value: l.input[pos:l.pos], Pos: pos}
	}
	l.readChar()
	return Token{Type: TokenQuotedIdent, Value: l.input[pos:l.pos], Pos: pos}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch == '$' || ch == '#'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
