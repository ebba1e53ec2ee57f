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

// Package osql provides lexing, parsing and serialization for the Oracle
// SQL dialect subset handled by the translator.
//
// The parser produces a SelectStatement tree that keeps Oracle-specific
// constructs intact: (+) outer join markers, START WITH / CONNECT BY
// clauses, PRIOR and CONNECT_BY_ROOT operators, and the LEVEL, ROWNUM and
// CONNECT_BY_ISLEAF pseudo columns. Downstream packages rewrite the tree
// into Databricks form and rely on Format to serialize it back to text
// with normalized keyword casing and spacing.
//
// Parse handles a single query block; ParseStatement additionally accepts
// UPDATE, INSERT and DELETE.
//
// Basic usage:
//
//	stmt, err := osql.Parse("SELECT NVL(a, 0) FROM t WHERE b = 1")
//	if err != nil {
//		return err
//	}
//	sql := osql.FormatNode(stmt)
package osql
