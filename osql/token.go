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

import "strings"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal
	TokenIdent
	TokenQuotedIdent
	TokenNumber
	TokenString
	TokenComma
	TokenDot
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenConcat
	TokenEQ
	TokenNE
	TokenGT
	TokenLT
	TokenGE
	TokenLE
	// TokenOuterJoin is the legacy Oracle outer-join marker "(+)".
	TokenOuterJoin

	// Keywords
	TokenSELECT
	TokenDISTINCT
	TokenFROM
	TokenWHERE
	TokenGROUP
	TokenHAVING
	TokenORDER
	TokenSIBLINGS
	TokenBY
	TokenASC
	TokenDESC
	TokenAS
	TokenAND
	TokenOR
	TokenNOT
	TokenIN
	TokenIS
	TokenNULL
	TokenLIKE
	TokenBETWEEN
	TokenEXISTS
	TokenCASE
	TokenWHEN
	TokenTHEN
	TokenELSE
	TokenEND
	TokenCAST
	TokenSTART
	TokenWITH
	TokenCONNECT
	TokenNOCYCLE
	TokenPRIOR
	TokenLEVEL
	TokenROWNUM
	TokenConnectByRoot
	TokenConnectByIsLeaf
	TokenJOIN
	TokenLEFT
	TokenRIGHT
	TokenFULL
	TokenINNER
	TokenOUTER
	TokenCROSS
	TokenON
	TokenUPDATE
	TokenINSERT
	TokenDELETE
	TokenSET
	TokenINTO
	TokenVALUES
)

// Token is one lexical unit. Pos is the byte offset of the token's first
// character in the input, kept for diagnostics.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

var keywords = map[string]TokenType{
	"SELECT":            TokenSELECT,
	"DISTINCT":          TokenDISTINCT,
	"FROM":              TokenFROM,
	"WHERE":             TokenWHERE,
	"GROUP":             TokenGROUP,
	"HAVING":            TokenHAVING,
	"ORDER":             TokenORDER,
	"SIBLINGS":          TokenSIBLINGS,
	"BY":                TokenBY,
	"ASC":               TokenASC,
	"DESC":              TokenDESC,
	"AS":                TokenAS,
	"AND":               TokenAND,
	"OR":                TokenOR,
	"NOT":               TokenNOT,
	"IN":                TokenIN,
	"IS":                TokenIS,
	"NULL":              TokenNULL,
	"LIKE":              TokenLIKE,
	"BETWEEN":           TokenBETWEEN,
	"EXISTS":            TokenEXISTS,
	"CASE":              TokenCASE,
	"WHEN":              TokenWHEN,
	"THEN":              TokenTHEN,
	"ELSE":              TokenELSE,
	"END":               TokenEND,
	"CAST":              TokenCAST,
	"START":             TokenSTART,
	"WITH":              TokenWITH,
	"CONNECT":           TokenCONNECT,
	"NOCYCLE":           TokenNOCYCLE,
	"PRIOR":             TokenPRIOR,
	"LEVEL":             TokenLEVEL,
	"ROWNUM":            TokenROWNUM,
	"CONNECT_BY_ROOT":   TokenConnectByRoot,
	"CONNECT_BY_ISLEAF": TokenConnectByIsLeaf,
	"JOIN":              TokenJOIN,
	"LEFT":              TokenLEFT,
	"RIGHT":             TokenRIGHT,
	"FULL":              TokenFULL,
	"INNER":             TokenINNER,
	"OUTER":             TokenOUTER,
	"CROSS":             TokenCROSS,
	"ON":                TokenON,
	"UPDATE":            TokenUPDATE,
	"INSERT":            TokenINSERT,
	"DELETE":            TokenDELETE,
	"SET":               TokenSET,
	"INTO":              TokenINTO,
	"VALUES":            TokenVALUES,
}

// lookupIdent maps an identifier to its keyword token type, falling back to
// TokenIdent. Oracle keywords are case-insensitive.
func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[strings.ToUpper(ident)]; ok {
		return tt
	}
	return TokenIdent
}
