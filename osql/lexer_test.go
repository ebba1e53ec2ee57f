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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(input)
	var out []Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == TokenEOF {
			return out
		}
		require.Less(t, len(out), 1000, "lexer did not terminate")
	}
}

func TestLexerBasicTokens(t *testing.T) {
	toks := collectTokens(t, "SELECT a, b FROM t WHERE a = 1")
	types := make([]TokenType, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{
		TokenSELECT, TokenIdent, TokenComma, TokenIdent, TokenFROM,
		TokenIdent, TokenWHERE, TokenIdent, TokenEQ, TokenNumber, TokenEOF,
	}, types)
}

func TestLexerKeywordsAreCaseInsensitive(t *testing.T) {
	toks := collectTokens(t, "select Connect by prior Level")
	assert.Equal(t, TokenSELECT, toks[0].Type)
	assert.Equal(t, TokenCONNECT, toks[1].Type)
	assert.Equal(t, TokenBY, toks[2].Type)
	assert.Equal(t, TokenPRIOR, toks[3].Type)
	assert.Equal(t, TokenLEVEL, toks[4].Type)
}

func TestLexerOuterJoinMarker(t *testing.T) {
	toks := collectTokens(t, "d.id (+)")
	assert.Equal(t, TokenIdent, toks[0].Type)
	assert.Equal(t, TokenDot, toks[1].Type)
	assert.Equal(t, TokenIdent, toks[2].Type)
	assert.Equal(t, TokenOuterJoin, toks[3].Type)
	assert.Equal(t, "(+)", toks[3].Value)

	// A parenthesized expression beginning with + is not a marker.
	toks = collectTokens(t, "(+1)")
	assert.Equal(t, TokenLParen, toks[0].Type)
}

func TestLexerStringLiterals(t *testing.T) {
	toks := collectTokens(t, "'it''s here'")
	require.Equal(t, TokenString, toks[0].Type)
	assert.Equal(t, "'it''s here'", toks[0].Value)

	// Unterminated literal is illegal, not an infinite loop.
	toks = collectTokens(t, "'oops")
	assert.Equal(t, TokenIllegal, toks[0].Type)
}

func TestLexerQuotedIdent(t *testing.T) {
	toks := collectTokens(t, `"Mixed Case"`)
	require.Equal(t, TokenQuotedIdent, toks[0].Type)
	assert.Equal(t, `"Mixed Case"`, toks[0].Value)
}

func TestLexerNumbers(t *testing.T) {
	toks := collectTokens(t, "42 3.14")
	assert.Equal(t, "42", toks[0].Value)
	assert.Equal(t, "3.14", toks[1].Value)
}

func TestLexerOperators(t *testing.T) {
	toks := collectTokens(t, "<> != <= >= || < >")
	types := []TokenType{toks[0].Type, toks[1].Type, toks[2].Type, toks[3].Type, toks[4].Type, toks[5].Type, toks[6].Type}
	assert.Equal(t, []TokenType{TokenNE, TokenNE, TokenLE, TokenGE, TokenConcat, TokenLT, TokenGT}, types)
}

func TestLexerSkipsComments(t *testing.T) {
	toks := collectTokens(t, "SELECT -- everything here\n a /* and\nthis */ FROM t")
	types := make([]TokenType, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{TokenSELECT, TokenIdent, TokenFROM, TokenIdent, TokenEOF}, types)
}

func TestLexerTokenPositions(t *testing.T) {
	toks := collectTokens(t, "SELECT a")
	assert.Equal(t, 0, toks[0].Pos)
	assert.Equal(t, 7, toks[1].Pos)
}
