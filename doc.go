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

/*
Package transsql translates Oracle SQL to Databricks SQL.

A Translator runs three stages over each statement:

 1. User pattern rules: priority-ordered regex rewrites loaded from a
    JSON or YAML configuration, for in-house constructs no static table
    can know about.
 2. Hierarchical query rewriting: CONNECT BY / START WITH queries become
    recursive CTEs, including LEVEL, CONNECT_BY_ROOT,
    SYS_CONNECT_BY_PATH, CONNECT_BY_ISLEAF, NOCYCLE and ORDER SIBLINGS
    BY handling.
 3. Structural mapping: table-driven translation of function calls,
    (+) outer join shorthand, Oracle data types and the DUAL table.

Queries and DML statements (UPDATE, INSERT, DELETE) are parsed and mapped
structurally; statement kinds outside the grammar, such as MERGE or PL/SQL
bodies, pass through the pattern stage only and are flagged with a warning.

Diagnostics never abort a translation; warnings, errors, the applied-rule
trace and a completeness flag accumulate on the TranslationResult.

Basic usage:

	t, err := transsql.New(
		transsql.WithRuleConfigFile("rules.json"),
	)
	if err != nil {
		log.Fatal(err)
	}
	result := t.Translate("SELECT NVL(name, 'n/a') FROM employees WHERE ROWNUM <= 10")
	fmt.Println(result.Output)

Scripts containing several statements, SQL*Plus terminators and PL/SQL
blocks go through TranslateScript, which returns one result per
statement with its starting line number.
*/
package transsql
