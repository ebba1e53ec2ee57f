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

// Package mapper performs the table-driven structural rewrite from Oracle
// to Databricks SQL: function call translation, (+) outer join expansion,
// data type mapping and DUAL removal. The mapper is deliberately
// non-fatal; anything it does not recognize passes through unchanged and
// is surfaced as a warning on the translation result.
package mapper
