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

package hierarchy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/transsql/osql"
)

func rewriteSQL(t *testing.T, sql string) (string, []string, error) {
	t.Helper()
	stmt, err := osql.Parse(sql)
	require.NoError(t, err)
	out, warnings, rerr := Rewrite(stmt)
	if rerr != nil {
		return sql, warnings, rerr
	}
	return osql.FormatNode(out), warnings, nil
}

func TestRewritePassthroughWithoutConnectBy(t *testing.T) {
	got, warnings, err := rewriteSQL(t, "SELECT a FROM t WHERE a = 1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t WHERE a = 1", got)
	assert.Empty(t, warnings)
}

func TestRewriteBasicTraversal(t *testing.T) {
	got, warnings, err := rewriteSQL(t,
		"SELECT id, name, LEVEL FROM employees e START WITH manager_id IS NULL CONNECT BY PRIOR id = manager_id ORDER BY id")
	require.NoError(t, err)
	want := "WITH RECURSIVE hierarchy_cte AS (" +
		"SELECT e.*, 1 AS level FROM employees AS e WHERE manager_id IS NULL" +
		" UNION ALL " +
		"SELECT e.*, hierarchy_cte.level + 1 AS level FROM employees AS e" +
		" INNER JOIN hierarchy_cte ON e.manager_id = hierarchy_cte.id" +
		") SELECT id, name, level FROM hierarchy_cte AS e ORDER BY id"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rewrite mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, warnings)
}

func TestRewriteStarSelectWarns(t *testing.T) {
	got, warnings, err := rewriteSQL(t,
		"SELECT * FROM employees START WITH manager_id IS NULL CONNECT BY PRIOR id = manager_id")
	require.NoError(t, err)
	assert.Contains(t, got, "WITH RECURSIVE hierarchy_cte")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "synthesized hierarchy columns")
}

func TestRewriteBottomUpTraversal(t *testing.T) {
	// PRIOR on the right side walks from children to ancestors; the CTE
	// join still extends on the prior column.
	got, _, err := rewriteSQL(t,
		"SELECT id FROM emp START WITH id = 42 CONNECT BY id = PRIOR mgr")
	require.NoError(t, err)
	assert.Contains(t, got, "INNER JOIN hierarchy_cte ON emp.id = hierarchy_cte.mgr")
	assert.Contains(t, got, "WHERE id = 42")
}

func TestRewritePath(t *testing.T) {
	got, warnings, err := rewriteSQL(t,
		"SELECT SYS_CONNECT_BY_PATH(name, '/') AS full_path FROM org START WITH parent_id IS NULL CONNECT BY PRIOR id = parent_id")
	require.NoError(t, err)
	want := "WITH RECURSIVE hierarchy_cte AS (" +
		"SELECT org.*, 1 AS level, CONCAT('/', CAST(name AS STRING)) AS path FROM org WHERE parent_id IS NULL" +
		" UNION ALL " +
		"SELECT org.*, hierarchy_cte.level + 1 AS level," +
		" CONCAT(hierarchy_cte.path, '/', CAST(org.name AS STRING)) AS path FROM org" +
		" INNER JOIN hierarchy_cte ON org.parent_id = hierarchy_cte.id" +
		") SELECT path AS full_path FROM hierarchy_cte"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rewrite mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, warnings)
}

func TestRewriteConnectByRoot(t *testing.T) {
	got, _, err := rewriteSQL(t,
		"SELECT name, CONNECT_BY_ROOT name AS origin FROM emp START WITH mgr IS NULL CONNECT BY PRIOR id = mgr")
	require.NoError(t, err)
	assert.Contains(t, got, "name AS root_name FROM emp WHERE mgr IS NULL")
	assert.Contains(t, got, "hierarchy_cte.root_name AS root_name")
	assert.Contains(t, got, "SELECT name, root_name AS origin FROM hierarchy_cte")
}

func TestRewriteIsLeaf(t *testing.T) {
	got, warnings, err := rewriteSQL(t,
		"SELECT id, CONNECT_BY_ISLEAF FROM emp e START WITH mgr IS NULL CONNECT BY PRIOR id = mgr")
	require.NoError(t, err)
	assert.Contains(t, got,
		"CASE WHEN NOT EXISTS (SELECT 1 FROM hierarchy_cte AS leaf_check WHERE leaf_check.mgr = e.id) THEN 1 ELSE 0 END AS is_leaf")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "CONNECT_BY_ISLEAF")
}

func TestRewriteNoCycle(t *testing.T) {
	got, warnings, err := rewriteSQL(t,
		"SELECT id FROM emp START WITH mgr IS NULL CONNECT BY NOCYCLE PRIOR id = mgr")
	require.NoError(t, err)
	assert.Contains(t, got, "AS visited_keys")
	assert.Contains(t, got, "hierarchy_cte.visited_keys NOT LIKE")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "NOCYCLE")
}

func TestRewriteOrderSiblings(t *testing.T) {
	got, warnings, err := rewriteSQL(t,
		"SELECT name FROM org START WITH pid IS NULL CONNECT BY PRIOR id = pid ORDER SIBLINGS BY name")
	require.NoError(t, err)
	assert.Contains(t, got, "AS sibling_path")
	assert.Contains(t, got, "ORDER BY sibling_path")
	assert.NotContains(t, got, "SIBLINGS")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "ORDER SIBLINGS BY")
}

func TestRewriteWherePredicateStaysOuter(t *testing.T) {
	// WHERE filters after traversal, so it must not leak into the anchor.
	got, _, err := rewriteSQL(t,
		"SELECT id FROM emp WHERE active = 1 START WITH mgr IS NULL CONNECT BY PRIOR id = mgr")
	require.NoError(t, err)
	assert.Contains(t, got, "SELECT id FROM hierarchy_cte WHERE active = 1")
	assert.Contains(t, got, "FROM emp WHERE mgr IS NULL")
}

func TestRewriteSequenceGenerator(t *testing.T) {
	got, warnings, err := rewriteSQL(t, "SELECT LEVEL FROM DUAL CONNECT BY LEVEL <= 5")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM range(1, 6)", got)
	assert.Empty(t, warnings)

	got, _, err = rewriteSQL(t, "SELECT LEVEL AS n FROM DUAL CONNECT BY LEVEL < 4")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id AS n FROM range(1, 4)", got)
}

func TestRewriteUnsupportedShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no start with", "SELECT id FROM emp CONNECT BY PRIOR id = mgr"},
		{"two tables", "SELECT 1 FROM a, b START WITH a.x IS NULL CONNECT BY PRIOR a.id = a.pid"},
		{"non equality", "SELECT id FROM emp START WITH mgr IS NULL CONNECT BY PRIOR id > mgr"},
		{"prior both sides", "SELECT id FROM emp START WITH mgr IS NULL CONNECT BY PRIOR id = PRIOR mgr"},
		{"no prior", "SELECT id FROM emp START WITH mgr IS NULL CONNECT BY id = mgr"},
		{"prior in select list", "SELECT PRIOR id FROM emp START WITH mgr IS NULL CONNECT BY PRIOR id = mgr"},
		{"path delimiter not literal", "SELECT SYS_CONNECT_BY_PATH(name, delim) FROM t START WITH pid IS NULL CONNECT BY PRIOR id = pid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := osql.Parse(tt.input)
			require.NoError(t, err)
			_, _, rerr := Rewrite(stmt)
			require.Error(t, rerr)
			assert.ErrorIs(t, rerr, ErrUnsupportedHierarchyShape)
		})
	}
}
