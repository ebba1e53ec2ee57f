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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{RuleName: "fix_sysdate", Message: "pattern did not compile"}
	assert.Equal(t, "fix_sysdate: pattern did not compile", d.String())

	d = Diagnostic{Message: "no mapping for function FOO; left unchanged"}
	assert.Equal(t, "no mapping for function FOO; left unchanged", d.String())
}

func TestResultWarnAndFail(t *testing.T) {
	r := &TranslationResult{OriginalSQL: "SELECT 1"}
	r.Warn("mapper", "function %s left unchanged", "FOO")
	r.Fail("rule_x", "replacement references group %d", 3)

	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "mapper", r.Warnings[0].RuleName)
	assert.Equal(t, "function FOO left unchanged", r.Warnings[0].Message)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "rule_x: replacement references group 3", r.Errors[0].String())
}

func TestResultStringComplete(t *testing.T) {
	r := &TranslationResult{Output: "SELECT COALESCE(a, b) FROM t", IsComplete: true}
	assert.Equal(t, "SELECT COALESCE(a, b) FROM t", r.String())
}

func TestResultStringIncomplete(t *testing.T) {
	r := &TranslationResult{Output: "SELECT NVL(a, b) FROM t"}
	r.Fail("parser", "unexpected token")
	r.Fail("broken", "bad backreference")

	got := r.String()
	assert.Equal(t, "-- translation incomplete: parser: unexpected token; broken: bad backreference\nSELECT NVL(a, b) FROM t", got)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.ApplyBeforeDefault)
	assert.True(t, s.ContinueOnError)
	assert.False(t, s.StrictHierarchy)
}
