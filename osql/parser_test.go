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

// TestParseRoundTrip feeds statements through Parse and FormatNode. The
// serializer normalizes spacing and implicit aliases, so want differs from
// the input where noted.
func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple select",
			input: "SELECT a, b FROM t WHERE a = 1",
			want:  "SELECT a, b FROM t WHERE a = 1",
		},
		{
			name:  "implicit alias normalized",
			input: "SELECT a b FROM t x",
			want:  "SELECT a AS b FROM t AS x",
		},
		{
			name:  "star and qualified star",
			input: "SELECT *, e.* FROM emp e",
			want:  "SELECT *, e.* FROM emp AS e",
		},
		{
			name:  "distinct",
			input: "SELECT DISTINCT dept FROM emp",
			want:  "SELECT DISTINCT dept FROM emp",
		},
		{
			name:  "arithmetic precedence",
			input: "SELECT 1 + 2 * 3, (1 + 2) * 3 FROM t",
			want:  "SELECT 1 + 2 * 3, (1 + 2) * 3 FROM t",
		},
		{
			name:  "concat and unary",
			input: "SELECT a || b, -c FROM t",
			want:  "SELECT a || b, -c FROM t",
		},
		{
			name:  "in like between",
			input: "SELECT a FROM t WHERE a IN (1, 2) AND b NOT LIKE 'x%' AND c BETWEEN 1 AND 10",
			want:  "SELECT a FROM t WHERE a IN (1, 2) AND b NOT LIKE 'x%' AND c BETWEEN 1 AND 10",
		},
		{
			name:  "is null and not",
			input: "SELECT a FROM t WHERE a IS NOT NULL AND NOT b = 1",
			want:  "SELECT a FROM t WHERE a IS NOT NULL AND NOT b = 1",
		},
		{
			name:  "case searched",
			input: "SELECT CASE WHEN a = 1 THEN 'one' ELSE 'other' END AS tag FROM t",
			want:  "SELECT CASE WHEN a = 1 THEN 'one' ELSE 'other' END AS tag FROM t",
		},
		{
			name:  "case simple",
			input: "SELECT CASE a WHEN 1 THEN 'x' WHEN 2 THEN 'y' END FROM t",
			want:  "SELECT CASE a WHEN 1 THEN 'x' WHEN 2 THEN 'y' END FROM t",
		},
		{
			name:  "cast with precision",
			input: "SELECT CAST(a AS NUMBER(10,2)) FROM t",
			want:  "SELECT CAST(a AS NUMBER(10, 2)) FROM t",
		},
		{
			name:  "function calls",
			input: "SELECT NVL(a, b), COUNT(*), SYS_GUID() FROM t",
			want:  "SELECT NVL(a, b), COUNT(*), SYS_GUID() FROM t",
		},
		{
			name:  "qualified function keeps package",
			input: "SELECT DBMS_RANDOM.VALUE(1, 10) FROM DUAL",
			want:  "SELECT DBMS_RANDOM.VALUE(1, 10) FROM DUAL",
		},
		{
			name:  "explicit joins",
			input: "SELECT a FROM t1 LEFT JOIN t2 ON t1.id = t2.id INNER JOIN t3 ON t2.id = t3.id",
			want:  "SELECT a FROM t1 LEFT OUTER JOIN t2 ON t1.id = t2.id INNER JOIN t3 ON t2.id = t3.id",
		},
		{
			name:  "outer join marker",
			input: "SELECT e.name FROM emp e, dept d WHERE e.dept_id = d.id (+)",
			want:  "SELECT e.name FROM emp AS e, dept AS d WHERE e.dept_id = d.id (+)",
		},
		{
			name:  "hierarchical clauses",
			input: "SELECT id, LEVEL FROM emp START WITH mgr IS NULL CONNECT BY PRIOR id = mgr",
			want:  "SELECT id, LEVEL FROM emp START WITH mgr IS NULL CONNECT BY PRIOR id = mgr",
		},
		{
			name:  "connect by before start with",
			input: "SELECT id FROM emp CONNECT BY NOCYCLE PRIOR id = mgr START WITH mgr IS NULL",
			want:  "SELECT id FROM emp START WITH mgr IS NULL CONNECT BY NOCYCLE PRIOR id = mgr",
		},
		{
			name:  "hierarchy pseudo columns",
			input: "SELECT CONNECT_BY_ROOT name, SYS_CONNECT_BY_PATH(name, '/'), CONNECT_BY_ISLEAF, ROWNUM FROM t CONNECT BY PRIOR id = pid",
			want:  "SELECT CONNECT_BY_ROOT name, SYS_CONNECT_BY_PATH(name, '/'), CONNECT_BY_ISLEAF, ROWNUM FROM t CONNECT BY PRIOR id = pid",
		},
		{
			name:  "group having order",
			input: "SELECT dept, COUNT(*) FROM emp GROUP BY dept HAVING COUNT(*) > 1 ORDER BY dept DESC",
			want:  "SELECT dept, COUNT(*) FROM emp GROUP BY dept HAVING COUNT(*) > 1 ORDER BY dept DESC",
		},
		{
			name:  "order siblings by",
			input: "SELECT name FROM org CONNECT BY PRIOR id = pid START WITH pid IS NULL ORDER SIBLINGS BY name",
			want:  "SELECT name FROM org START WITH pid IS NULL CONNECT BY PRIOR id = pid ORDER SIBLINGS BY name",
		},
		{
			name:  "exists subquery",
			input: "SELECT a FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",
			want:  "SELECT a FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",
		},
		{
			name:  "trailing semicolon dropped",
			input: "SELECT 1;",
			want:  "SELECT 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatNode(stmt))
		})
	}
}

func TestParseStatementRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"update", "UPDATE t SET a = 1, b = 'x' WHERE c = 2",
			"UPDATE t SET a = 1, b = 'x' WHERE c = 2"},
		{"update with alias", "UPDATE emp e SET sal = sal * 1.1",
			"UPDATE emp AS e SET sal = sal * 1.1"},
		{"update qualified column", "UPDATE emp e SET e.sal = 0",
			"UPDATE emp AS e SET e.sal = 0"},
		{"delete", "DELETE FROM t WHERE a = 1",
			"DELETE FROM t WHERE a = 1"},
		{"delete without from", "DELETE t",
			"DELETE FROM t"},
		{"insert values", "INSERT INTO t (a, b) VALUES (1, 'x')",
			"INSERT INTO t (a, b) VALUES (1, 'x')"},
		{"insert without columns", "INSERT INTO t VALUES (1)",
			"INSERT INTO t VALUES (1)"},
		{"insert select", "INSERT INTO t SELECT a FROM s WHERE a > 0",
			"INSERT INTO t SELECT a FROM s WHERE a > 0"},
		{"select via statement entry", "SELECT a FROM t",
			"SELECT a FROM t"},
		{"trailing semicolon", "UPDATE t SET a = 1;",
			"UPDATE t SET a = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseStatement(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatNode(stmt))
		})
	}
}

func TestParseStatementErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"merge unsupported", "MERGE INTO t USING s ON (t.id = s.id)"},
		{"plsql block", "BEGIN NULL; END;"},
		{"insert missing into", "INSERT t VALUES (1)"},
		{"update missing set", "UPDATE t a = 1"},
		{"insert missing source", "INSERT INTO t (a)"},
		{"delete missing table", "DELETE FROM WHERE a = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatement(tt.input)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a select", "UPDATE t SET a = 1"},
		{"missing table", "SELECT a FROM"},
		{"trailing input", "SELECT a b c"},
		{"unbalanced paren", "SELECT (a FROM t"},
		{"dangling comparison", "SELECT a FROM t WHERE a ="},
		{"case without end", "SELECT CASE WHEN a THEN b FROM t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.NotEmpty(t, perr.Error())
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("SELECT a FROM")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorTypeMissingToken, perr.Type)
	assert.Contains(t, perr.Error(), "position")
}

func TestParseDataTypeShapes(t *testing.T) {
	stmt, err := Parse("SELECT CAST(a AS number(5)), CAST(b AS varchar2(100)), CAST(c AS date) FROM t")
	require.NoError(t, err)

	want := []DataType{
		{Name: "NUMBER", Precision: 5, HasPrecision: true},
		{Name: "VARCHAR2", Precision: 100, HasPrecision: true},
		{Name: "DATE"},
	}
	require.Len(t, stmt.Fields, 3)
	for i, f := range stmt.Fields {
		cast, ok := f.Expr.(*CastExpr)
		require.True(t, ok)
		assert.Equal(t, want[i], cast.Type)
	}
}

func TestParseMarkerAttachment(t *testing.T) {
	stmt, err := Parse("SELECT 1 FROM a, b WHERE a.x = b.y (+)")
	require.NoError(t, err)
	bin, ok := stmt.Where.(*Binary)
	require.True(t, ok)
	left := bin.Left.(*Ident)
	right := bin.Right.(*Ident)
	assert.False(t, left.Marker)
	assert.True(t, right.Marker)
	assert.Equal(t, "b", right.Qualifier)
	assert.Equal(t, "y", right.Name)
}
