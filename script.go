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

package transsql

import (
	"regexp"
	"strings"
)

// stripComments removes -- and /* */ comments while preserving string
// literals and line structure, so positions in diagnostics stay usable.
func stripComments(sql string) string {
	var b strings.Builder
	i := 0
	n := len(sql)
	for i < n {
		c := sql[i]
		switch {
		case c == '\'' || c == '"':
			quote := c
			b.WriteByte(c)
			i++
			for i < n {
				b.WriteByte(sql[i])
				if sql[i] == quote {
					i++
					// Doubled quote stays inside the literal.
					if i < n && sql[i] == quote {
						b.WriteByte(sql[i])
						i++
						continue
					}
					break
				}
				i++
			}
		case c == '-' && i+1 < n && sql[i+1] == '-':
			for i < n && sql[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && sql[i+1] == '*':
			i += 2
			for i+1 < n && !(sql[i] == '*' && sql[i+1] == '/') {
				if sql[i] == '\n' {
					b.WriteByte('\n')
				}
				i++
			}
			if i+1 < n {
				i += 2
			} else {
				i = n
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// statement is one script fragment with its 1-based starting line.
type statement struct {
	text string
	line int
}

type plsqlKind int

const (
	plsqlNone plsqlKind = iota
	plsqlAnonymous
	plsqlNamed
	plsqlPackage
)

var (
	pkgBodyRe = regexp.MustCompile(`(?i)CREATE\s+(?:OR\s+REPLACE\s+)?PACKAGE\s+BODY\s+(\w+)`)
	pkgRe     = regexp.MustCompile(`(?i)CREATE\s+(?:OR\s+REPLACE\s+)?PACKAGE\s+(\w+)`)
	procRe    = regexp.MustCompile(`(?i)CREATE\s+(?:OR\s+REPLACE\s+)?(?:PROCEDURE|FUNCTION|TRIGGER)\s+(\w+)`)
	beginRe   = regexp.MustCompile(`\bBEGIN\b`)
	endRe     = regexp.MustCompile(`\bEND\s*(\w*)\s*;`)
	endAnonRe = regexp.MustCompile(`\bEND\s*;\s*$`)
)

// countBlockEnds counts END closers that terminate a BEGIN block.
// END LOOP; / END IF; / END CASE; close constructs whose openers are not
// tracked, so they must not drain the block depth.
func countBlockEnds(upper string) int {
	n := 0
	for _, m := range endRe.FindAllStringSubmatch(upper, -1) {
		switch m[1] {
		case "LOOP", "IF", "CASE":
		default:
			n++
		}
	}
	return n
}

// splitScript cuts a script into statements. Regular SQL splits on
// semicolons; PL/SQL blocks (CREATE PROCEDURE/FUNCTION/TRIGGER/PACKAGE,
// DECLARE, BEGIN) run until their closing END or a SQL*Plus / terminator,
// with nested BEGIN/END depth tracked.
func splitScript(script string) []statement {
	var out []statement
	var current []string
	startLine := 0
	kind := plsqlNone
	blockName := ""
	beginDepth := 0

	flush := func(line int, trimSemicolon bool) {
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if trimSemicolon {
			text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
		}
		if text != "" {
			if startLine == 0 {
				startLine = line
			}
			out = append(out, statement{text: text, line: startLine})
		}
		current = nil
		startLine = 0
		kind = plsqlNone
		blockName = ""
		beginDepth = 0
	}

	lines := strings.Split(script, "\n")
	for idx, line := range lines {
		lineNo := idx + 1
		trimmed := strings.TrimSpace(line)

		if trimmed == "/" {
			flush(lineNo, false)
			continue
		}

		bare := strings.TrimSpace(stripComments(trimmed))
		upper := strings.ToUpper(bare)

		if bare == "" {
			// Comment-only and blank lines belong to the statement
			// being built, never start one.
			if len(current) > 0 {
				current = append(current, line)
			}
			continue
		}
		if len(current) == 0 {
			startLine = lineNo
		}

		if kind == plsqlNone {
			switch {
			case pkgBodyRe.MatchString(upper):
				kind = plsqlNamed
				blockName = pkgBodyRe.FindStringSubmatch(upper)[1]
			case pkgRe.MatchString(upper) && !strings.Contains(upper, "BODY"):
				kind = plsqlPackage
				blockName = pkgRe.FindStringSubmatch(upper)[1]
			case procRe.MatchString(upper):
				kind = plsqlNamed
				blockName = procRe.FindStringSubmatch(upper)[1]
			case strings.HasPrefix(upper, "DECLARE") || upper == "BEGIN":
				kind = plsqlAnonymous
			}
		}

		current = append(current, line)

		if kind != plsqlNone {
			beginDepth += len(beginRe.FindAllString(upper, -1))
			beginDepth -= countBlockEnds(upper)

			terminated := false
			switch kind {
			case plsqlPackage:
				terminated = endNamed(upper, blockName)
			case plsqlNamed:
				terminated = beginDepth <= 0 && endNamed(upper, blockName)
			case plsqlAnonymous:
				terminated = beginDepth <= 0 && endAnonRe.MatchString(upper)
			}
			if terminated {
				flush(lineNo, false)
			}
			continue
		}

		if strings.HasSuffix(bare, ";") {
			flush(lineNo, true)
		}
	}

	if len(current) > 0 {
		text := strings.TrimSpace(strings.Join(current, "\n"))
		text = strings.TrimSpace(strings.TrimSuffix(text, "/"))
		text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
		if text != "" {
			out = append(out, statement{text: text, line: startLine})
		}
	}
	return out
}

func endNamed(upper, name string) bool {
	re := regexp.MustCompile(`\bEND\s+` + regexp.QuoteMeta(name) + `\s*;\s*$`)
	return re.MatchString(upper)
}
