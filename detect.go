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
	"regexp"
	"strings"

	"github.com/rulego/transsql/types"
)

var connectByRe = regexp.MustCompile(`(?i)\bCONNECT\s+BY\b`)

// featureCheck flags an Oracle construct the pipeline cannot translate.
// CONNECT BY is absent: the hierarchy rewriter handles it, and leftovers
// are detected on the output instead.
type featureCheck struct {
	re      *regexp.Regexp
	feature string
	hint    string
}

var featureChecks = []featureCheck{
	{regexp.MustCompile(`\bMODEL\s+`), "MODEL clause",
		"no Databricks equivalent, requires manual rewrite"},
	{regexp.MustCompile(`\bPIVOT\s*\(`), "PIVOT clause",
		"Databricks syntax differs, may need adjustment"},
	{regexp.MustCompile(`\bUNPIVOT\s*\(`), "UNPIVOT clause",
		"Databricks syntax differs, may need adjustment"},
	{regexp.MustCompile(`\bAS\s+OF\s+(?:TIMESTAMP|SCN)\b`), "flashback query (AS OF)",
		"use Delta Lake time travel instead"},
	{regexp.MustCompile(`\bVERSIONS\s+BETWEEN\b`), "VERSIONS BETWEEN",
		"use Delta Lake history instead"},
	{regexp.MustCompile(`\bXML(?:TYPE|ELEMENT|FOREST|AGG)\b`), "XML functions",
		"use from_xml/to_xml in Databricks"},
	{regexp.MustCompile(`\bPRAGMA\s+AUTONOMOUS_TRANSACTION\b`), "PRAGMA AUTONOMOUS_TRANSACTION",
		"not supported in Databricks"},
	{regexp.MustCompile(`\.(?:NEXTVAL|CURRVAL)\b`), "Oracle sequences (.NEXTVAL/.CURRVAL)",
		"use IDENTITY columns or custom sequence tables"},
	{regexp.MustCompile(`\bROWID\b`), "ROWID pseudo-column",
		"no Databricks equivalent"},
	{regexp.MustCompile(`\bKEEP\s*\(\s*DENSE_RANK\s+(?:FIRST|LAST)\b`), "KEEP (DENSE_RANK FIRST/LAST)",
		"use window functions with FIRST_VALUE/LAST_VALUE"},
	{regexp.MustCompile(`\bSAMPLE\s*\(`), "SAMPLE clause",
		"use TABLESAMPLE in Databricks"},
}

var (
	dbmsPkgRe = regexp.MustCompile(`\bDBMS_\w+\.\w+`)
	utlPkgRe  = regexp.MustCompile(`\bUTL_\w+\.\w+`)
)

// detectUnsupported scans the comment-stripped input and records every
// recognized untranslatable construct as a warning plus an entry in the
// unsupported feature list.
func detectUnsupported(sql string, result *types.TranslationResult) {
	upper := strings.ToUpper(sql)

	for _, check := range featureChecks {
		if check.re.MatchString(upper) {
			result.Warn("detector", "%s: %s", check.feature, check.hint)
			result.UnsupportedFeatures = append(result.UnsupportedFeatures, check.feature)
		}
	}

	seen := map[string]bool{}
	for _, pkg := range dbmsPkgRe.FindAllString(upper, -1) {
		if pkg == "DBMS_OUTPUT.PUT_LINE" || seen[pkg] {
			continue
		}
		seen[pkg] = true
		result.Warn("detector", "%s: Oracle DBMS package not available in Databricks", pkg)
		result.UnsupportedFeatures = append(result.UnsupportedFeatures, pkg)
	}
	for _, pkg := range utlPkgRe.FindAllString(upper, -1) {
		if seen[pkg] {
			continue
		}
		seen[pkg] = true
		result.Warn("detector", "%s: Oracle UTL package not available in Databricks", pkg)
		result.UnsupportedFeatures = append(result.UnsupportedFeatures, pkg)
	}
}
