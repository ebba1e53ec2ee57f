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

// Package types defines the shared data model of the translation engine:
// the translation result, its diagnostics, and the pipeline settings.
package types

import (
	"fmt"
	"strings"
)

// Diagnostic is a single warning or error produced while translating a
// statement. RuleName is empty for diagnostics that are not tied to a
// specific pattern rule (mapper warnings, parse errors).
type Diagnostic struct {
	RuleName string
	Message  string
}

func (d Diagnostic) String() string {
	if d.RuleName == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.RuleName, d.Message)
}

// TranslationResult is the outcome of translating one statement.
// Diagnostics accumulate here instead of being raised: a best-effort Output
// is always present, and IsComplete reports whether the whole pipeline ran.
type TranslationResult struct {
	// OriginalSQL is the statement as supplied by the caller.
	OriginalSQL string
	// Output is the translated statement, or the best-effort intermediate
	// text when the pipeline could not finish.
	Output string
	// AppliedRules lists, in application order, the pattern rules that
	// changed the text.
	AppliedRules []string
	// Warnings are non-fatal findings: unmapped constructs, approximated
	// conversions, unsupported hierarchy shapes in non-strict mode.
	Warnings []Diagnostic
	// Errors are failures: invalid backreferences, guard evaluation
	// failures, parse errors.
	Errors []Diagnostic
	// UnsupportedFeatures lists source constructs known to have no
	// direct target equivalent, for the caller's report generator.
	UnsupportedFeatures []string
	// IsComplete is false when the pipeline halted early (rule failure with
	// ContinueOnError disabled, or a front-end parse failure).
	IsComplete bool
	// LineNumber is the 1-based starting line of the statement within the
	// script it was split from; zero for single-statement translation.
	LineNumber int
}

// Warn appends a warning diagnostic.
func (r *TranslationResult) Warn(ruleName, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Diagnostic{RuleName: ruleName, Message: fmt.Sprintf(format, args...)})
}

// Fail appends an error diagnostic.
func (r *TranslationResult) Fail(ruleName, format string, args ...interface{}) {
	r.Errors = append(r.Errors, Diagnostic{RuleName: ruleName, Message: fmt.Sprintf(format, args...)})
}

// String returns the translated SQL, or a commented failure summary when
// the translation did not complete.
func (r *TranslationResult) String() string {
	if r.IsComplete {
		return r.Output
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.String())
	}
	return fmt.Sprintf("-- translation incomplete: %s\n%s", strings.Join(msgs, "; "), r.Output)
}

// Settings governs pipeline ordering and failure policy.
type Settings struct {
	// ApplyBeforeDefault runs user pattern rules before the structural
	// mapper pass; false runs them after.
	ApplyBeforeDefault bool
	// ContinueOnError records a failed rule and proceeds; false halts the
	// pipeline at the failing rule and marks the result incomplete.
	ContinueOnError bool
	// StrictHierarchy turns unsupported hierarchy shapes into errors that
	// mark the result incomplete instead of warnings.
	StrictHierarchy bool
}

// DefaultSettings matches the documented configuration defaults.
func DefaultSettings() Settings {
	return Settings{ApplyBeforeDefault: true, ContinueOnError: true}
}
