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

package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// compiledRule is the immutable runtime form of one pattern rule.
type compiledRule struct {
	name        string
	description string
	re          *regexp.Regexp
	replacement string
	// maxRef is the highest capture group the replacement references;
	// checked against the pattern at apply time so a bad backreference
	// surfaces as a rule application error, not a config error.
	maxRef   int
	priority int
	guard    *vm.Program
}

// flagPrefixes maps configuration flag names to regexp mode prefixes.
// VERBOSE has no mode flag; it is handled by pre-stripping the pattern.
var flagPrefixes = map[string]string{
	"IGNORECASE": "i",
	"I":          "i",
	"MULTILINE":  "m",
	"M":          "m",
	"DOTALL":     "s",
	"S":          "s",
}

// compilePattern builds the regexp for a pattern with the given flags.
func compilePattern(pattern string, flags []string) (*regexp.Regexp, error) {
	var modes string
	verbose := false
	for _, f := range flags {
		upper := strings.ToUpper(strings.TrimSpace(f))
		if upper == "VERBOSE" || upper == "X" {
			verbose = true
			continue
		}
		mode, ok := flagPrefixes[upper]
		if !ok {
			return nil, fmt.Errorf("unknown flag %q", f)
		}
		if !strings.Contains(modes, mode) {
			modes += mode
		}
	}
	if verbose {
		pattern = stripVerbose(pattern)
	}
	if modes != "" {
		pattern = "(?" + modes + ")" + pattern
	}
	return regexp.Compile(pattern)
}

// stripVerbose removes insignificant whitespace and # comments from a
// verbose-mode pattern. Whitespace inside character classes and escaped
// characters survive.
func stripVerbose(pattern string) string {
	var b strings.Builder
	inClass := false
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			b.WriteByte(pattern[i+1])
			i += 2
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case !inClass && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			i++
			continue
		case !inClass && c == '#':
			for i < len(pattern) && pattern[i] != '\n' {
				i++
			}
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// convertReplacement translates backslash-numbered backreferences to the
// ${N} form the regexp package expands, and reports the highest group
// referenced. A doubled backslash becomes a literal one; a lone $ is
// escaped so it stays literal.
func convertReplacement(replacement string) (string, int) {
	var b strings.Builder
	maxRef := 0
	i := 0
	for i < len(replacement) {
		c := replacement[i]
		switch {
		case c == '$':
			b.WriteString("$$")
			i++
		case c == '\\' && i+1 < len(replacement) && replacement[i+1] == '\\':
			b.WriteByte('\\')
			i += 2
		case c == '\\' && i+1 < len(replacement) && isDigit(replacement[i+1]):
			j := i + 1
			for j < len(replacement) && isDigit(replacement[j]) {
				j++
			}
			n := 0
			for _, d := range replacement[i+1 : j] {
				n = n*10 + int(d-'0')
			}
			if n > maxRef {
				maxRef = n
			}
			b.WriteString("${")
			b.WriteString(replacement[i+1 : j])
			b.WriteString("}")
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), maxRef
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// compileGuard builds the optional condition program. The guard sees the
// current statement text as sql, its leading keyword as statement_kind
// and a has_hierarchy flag.
func compileGuard(condition string) (*vm.Program, error) {
	return expr.Compile(condition,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
}

var guardHierarchyRe = regexp.MustCompile(`(?i)\bCONNECT\s+BY\b`)

func statementKind(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "other"
	}
	switch kw := strings.ToLower(fields[0]); kw {
	case "select", "with", "insert", "update", "delete", "merge":
		return kw
	case "begin", "declare", "create":
		return "plsql"
	default:
		return "other"
	}
}

func guardEnv(sql string) map[string]interface{} {
	return map[string]interface{}{
		"sql":            sql,
		"statement_kind": statementKind(sql),
		"has_hierarchy":  guardHierarchyRe.MatchString(sql),
	}
}

// apply runs the rule against one statement. The bool reports whether
// the text changed; errors cover guard evaluation failures and
// backreferences pointing past the pattern's capture groups.
func (r *compiledRule) apply(sql string) (string, bool, error) {
	if r.guard != nil {
		pass, err := expr.Run(r.guard, guardEnv(sql))
		if err != nil {
			return sql, false, fmt.Errorf("condition evaluation failed: %w", err)
		}
		if ok, _ := pass.(bool); !ok {
			return sql, false, nil
		}
	}
	if r.maxRef > r.re.NumSubexp() {
		return sql, false, fmt.Errorf(
			"replacement references group %d but pattern has %d group(s)",
			r.maxRef, r.re.NumSubexp())
	}
	out := r.re.ReplaceAllString(sql, r.replacement)
	return out, out != sql, nil
}
