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

// Package rules implements the user-authored pattern rule stage: a
// priority-ordered set of regex rewrite rules loaded from JSON or YAML
// configuration, applied sequentially so each rule sees the previous
// rule's output. Rules may carry an optional expression guard deciding
// per statement whether the rule fires.
//
// The stage is deliberately text-in/text-out and independent of the
// structural rewrite; it exists for in-house constructs the translation
// tables cannot know about.
package rules
