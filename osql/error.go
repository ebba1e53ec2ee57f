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
	"fmt"
	"strings"
)

// ErrorType classifies parse failures.
type ErrorType int

const (
	ErrorTypeSyntax ErrorType = iota
	ErrorTypeLexical
	ErrorTypeUnexpectedToken
	ErrorTypeMissingToken
	ErrorTypeInvalidExpression
	ErrorTypeMaxIterations
)

// ParseError reports a front-end failure with position context.
type ParseError struct {
	Type     ErrorType
	Message  string
	Position int
	Token    string
	Expected []string
}

func (e *ParseError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s", e.typeName(), e.Message))
	if e.Position >= 0 {
		builder.WriteString(fmt.Sprintf(" at position %d", e.Position))
	}
	if e.Token != "" {
		builder.WriteString(fmt.Sprintf(" (found '%s')", e.Token))
	}
	if len(e.Expected) > 0 {
		builder.WriteString(fmt.Sprintf(", expected: %s", strings.Join(e.Expected, ", ")))
	}
	return builder.String()
}

func (e *ParseError) typeName() string {
	switch e.Type {
	case ErrorTypeLexical:
		return "LEXICAL_ERROR"
	case ErrorTypeUnexpectedToken:
		return "UNEXPECTED_TOKEN"
	case ErrorTypeMissingToken:
		return "MISSING_TOKEN"
	case ErrorTypeInvalidExpression:
		return "INVALID_EXPRESSION"
	case ErrorTypeMaxIterations:
		return "MAX_ITERATIONS"
	default:
		return "SYNTAX_ERROR"
	}
}

func newParseError(errType ErrorType, message string, tok Token, expected ...string) *ParseError {
	return &ParseError{
		Type:     errType,
		Message:  message,
		Position: tok.Pos,
		Token:    tok.Value,
		Expected: expected,
	}
}
