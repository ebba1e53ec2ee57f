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

// Package hierarchy rewrites Oracle CONNECT BY queries into recursive
// common table expressions. The rewriter decomposes the recursive
// predicate into a parent/child column pair, seeds an anchor arm from the
// START WITH condition, and synthesizes one CTE column per pseudo-column
// family the query uses: traversal depth for LEVEL, a carried root value
// per CONNECT_BY_ROOT expression, a concatenated path per
// SYS_CONNECT_BY_PATH call, and a visited-keys column under NOCYCLE.
// CONNECT_BY_ISLEAF becomes a correlated non-existence check on the
// recursive result.
//
// Queries whose shape cannot be decomposed are left untouched and
// reported with ErrUnsupportedHierarchyShape. The row-generator idiom
// CONNECT BY LEVEL <= N over DUAL is rewritten to the range() table
// function instead of a CTE.
package hierarchy
