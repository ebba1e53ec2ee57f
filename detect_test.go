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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/transsql/types"
)

func detect(sql string) *types.TranslationResult {
	result := &types.TranslationResult{OriginalSQL: sql}
	detectUnsupported(sql, result)
	return result
}

func TestDetectUnsupportedFeatures(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		feature string
	}{
		{"model clause", "SELECT * FROM sales MODEL DIMENSION BY (year) MEASURES (amount) RULES ()", "MODEL clause"},
		{"pivot", "SELECT * FROM t PIVOT (SUM(x) FOR y IN (1, 2))", "PIVOT clause"},
		{"unpivot", "SELECT * FROM t UNPIVOT (val FOR col IN (a, b))", "UNPIVOT clause"},
		{"flashback timestamp", "SELECT * FROM t AS OF TIMESTAMP SYSDATE - 1", "flashback query (AS OF)"},
		{"flashback scn", "SELECT * FROM t AS OF SCN 1234", "flashback query (AS OF)"},
		{"versions between", "SELECT * FROM t VERSIONS BETWEEN SCN MINVALUE AND MAXVALUE", "VERSIONS BETWEEN"},
		{"xmltype", "SELECT XMLTYPE(doc) FROM t", "XML functions"},
		{"xmlagg", "SELECT XMLAGG(XMLELEMENT(e, name)) FROM t", "XML functions"},
		{"autonomous transaction", "PRAGMA AUTONOMOUS_TRANSACTION;", "PRAGMA AUTONOMOUS_TRANSACTION"},
		{"nextval", "SELECT emp_seq.NEXTVAL FROM DUAL", "Oracle sequences (.NEXTVAL/.CURRVAL)"},
		{"currval", "SELECT emp_seq.CURRVAL FROM DUAL", "Oracle sequences (.NEXTVAL/.CURRVAL)"},
		{"rowid", "SELECT ROWID, name FROM t", "ROWID pseudo-column"},
		{"keep dense_rank", "SELECT MAX(sal) KEEP (DENSE_RANK FIRST ORDER BY hiredate) FROM emp", "KEEP (DENSE_RANK FIRST/LAST)"},
		{"sample", "SELECT * FROM t SAMPLE (10)", "SAMPLE clause"},
		{"lowercase input", "select * from t sample (10)", "SAMPLE clause"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := detect(tt.sql)
			assert.Contains(t, result.UnsupportedFeatures, tt.feature)
			require.NotEmpty(t, result.Warnings)
			assert.Equal(t, "detector", result.Warnings[0].RuleName)
		})
	}
}

func TestDetectCleanStatement(t *testing.T) {
	result := detect("SELECT a, b FROM t WHERE a = 1")
	assert.Empty(t, result.UnsupportedFeatures)
	assert.Empty(t, result.Warnings)
}

func TestDetectDbmsPackages(t *testing.T) {
	result := detect("BEGIN DBMS_LOCK.SLEEP(1); DBMS_LOCK.SLEEP(2); END;")
	assert.Equal(t, []string{"DBMS_LOCK.SLEEP"}, result.UnsupportedFeatures)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "DBMS package not available")
}

func TestDetectDbmsOutputPutLineExempt(t *testing.T) {
	result := detect("BEGIN DBMS_OUTPUT.PUT_LINE('hi'); END;")
	assert.Empty(t, result.UnsupportedFeatures)
	assert.Empty(t, result.Warnings)
}

func TestDetectUtlPackages(t *testing.T) {
	result := detect("SELECT UTL_RAW.CAST_TO_VARCHAR2(x) FROM t")
	assert.Equal(t, []string{"UTL_RAW.CAST_TO_VARCHAR2"}, result.UnsupportedFeatures)
}

func TestDetectMultipleFeatures(t *testing.T) {
	result := detect("SELECT ROWID, s.NEXTVAL FROM t SAMPLE (5)")
	assert.Contains(t, result.UnsupportedFeatures, "ROWID pseudo-column")
	assert.Contains(t, result.UnsupportedFeatures, "Oracle sequences (.NEXTVAL/.CURRVAL)")
	assert.Contains(t, result.UnsupportedFeatures, "SAMPLE clause")
	assert.Len(t, result.Warnings, 3)
}
