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

package mapper

import (
	"strings"

	"github.com/rulego/transsql/osql"
)

// rewriteFunc turns an Oracle function call into its Databricks form.
// A nil rewrite means the mapping is a plain rename.
type rewriteFunc func(call *osql.FuncCall) osql.Expression

// mapping describes one Oracle function and its Databricks target.
// maxArgs of -1 means the function is variadic.
type mapping struct {
	target  string
	minArgs int
	maxArgs int
	rewrite rewriteFunc
}

// functionMappings is the translation table for function calls. Lookup is
// case-insensitive; keys are upper case.
var functionMappings = map[string]*mapping{
	// String functions.
	"NVL":            {target: "COALESCE", minArgs: 2, maxArgs: 2},
	"NVL2":           {minArgs: 3, maxArgs: 3, rewrite: rewriteNVL2},
	"DECODE":         {minArgs: 3, maxArgs: -1, rewrite: rewriteDecode},
	"SUBSTR":         {target: "SUBSTRING", minArgs: 2, maxArgs: 3},
	"SUBSTRB":        {target: "SUBSTRING", minArgs: 2, maxArgs: 3},
	"INSTR":          {target: "INSTR", minArgs: 2, maxArgs: 4},
	"INSTRB":         {target: "INSTR", minArgs: 2, maxArgs: 4},
	"LENGTH":         {target: "LENGTH", minArgs: 1, maxArgs: 1},
	"LENGTHB":        {target: "LENGTH", minArgs: 1, maxArgs: 1},
	"LENGTHC":        {target: "LENGTH", minArgs: 1, maxArgs: 1},
	"UPPER":          {target: "UPPER", minArgs: 1, maxArgs: 1},
	"LOWER":          {target: "LOWER", minArgs: 1, maxArgs: 1},
	"INITCAP":        {target: "INITCAP", minArgs: 1, maxArgs: 1},
	"NLS_UPPER":      {target: "UPPER", minArgs: 1, maxArgs: 2},
	"NLS_LOWER":      {target: "LOWER", minArgs: 1, maxArgs: 2},
	"NLS_INITCAP":    {target: "INITCAP", minArgs: 1, maxArgs: 2},
	"TRIM":           {target: "TRIM", minArgs: 1, maxArgs: 1},
	"LTRIM":          {target: "LTRIM", minArgs: 1, maxArgs: 2},
	"RTRIM":          {target: "RTRIM", minArgs: 1, maxArgs: 2},
	"LPAD":           {target: "LPAD", minArgs: 2, maxArgs: 3},
	"RPAD":           {target: "RPAD", minArgs: 2, maxArgs: 3},
	"REPLACE":        {target: "REPLACE", minArgs: 2, maxArgs: 3},
	"TRANSLATE":      {target: "TRANSLATE", minArgs: 3, maxArgs: 3},
	"CONCAT":         {target: "CONCAT", minArgs: 2, maxArgs: -1},
	"CHR":            {target: "CHR", minArgs: 1, maxArgs: 1},
	"NCHR":           {target: "CHR", minArgs: 1, maxArgs: 1},
	"ASCII":          {target: "ASCII", minArgs: 1, maxArgs: 1},
	"REVERSE":        {target: "REVERSE", minArgs: 1, maxArgs: 1},
	"SOUNDEX":        {target: "SOUNDEX", minArgs: 1, maxArgs: 1},
	"REGEXP_REPLACE": {target: "REGEXP_REPLACE", minArgs: 2, maxArgs: 6},
	"REGEXP_SUBSTR":  {target: "REGEXP_EXTRACT", minArgs: 2, maxArgs: 4},
	"REGEXP_LIKE":    {minArgs: 2, maxArgs: 3, rewrite: rewriteRegexpLike},
	"REGEXP_COUNT":   {target: "REGEXP_COUNT", minArgs: 2, maxArgs: 4},

	// Numeric functions.
	"ABS":       {target: "ABS", minArgs: 1, maxArgs: 1},
	"CEIL":      {target: "CEIL", minArgs: 1, maxArgs: 1},
	"CEILING":   {target: "CEIL", minArgs: 1, maxArgs: 1},
	"FLOOR":     {target: "FLOOR", minArgs: 1, maxArgs: 1},
	"ROUND":     {target: "ROUND", minArgs: 1, maxArgs: 2},
	"TRUNC":     {target: "TRUNC", minArgs: 1, maxArgs: 2},
	"TRUNCATE":  {target: "TRUNC", minArgs: 1, maxArgs: 2},
	"MOD":       {target: "MOD", minArgs: 2, maxArgs: 2},
	"REMAINDER": {target: "MOD", minArgs: 2, maxArgs: 2},
	"POWER":     {target: "POWER", minArgs: 2, maxArgs: 2},
	"SQRT":      {target: "SQRT", minArgs: 1, maxArgs: 1},
	"SIGN":      {target: "SIGN", minArgs: 1, maxArgs: 1},
	"EXP":       {target: "EXP", minArgs: 1, maxArgs: 1},
	"LN":        {target: "LN", minArgs: 1, maxArgs: 1},
	"LOG":       {target: "LOG", minArgs: 1, maxArgs: 2},
	"SIN":       {target: "SIN", minArgs: 1, maxArgs: 1},
	"COS":       {target: "COS", minArgs: 1, maxArgs: 1},
	"TAN":       {target: "TAN", minArgs: 1, maxArgs: 1},
	"ASIN":      {target: "ASIN", minArgs: 1, maxArgs: 1},
	"ACOS":      {target: "ACOS", minArgs: 1, maxArgs: 1},
	"ATAN":      {target: "ATAN", minArgs: 1, maxArgs: 1},
	"ATAN2":     {target: "ATAN2", minArgs: 2, maxArgs: 2},
	"BITAND":    {target: "BITAND", minArgs: 2, maxArgs: 2},

	// Date and time functions.
	"ADD_MONTHS":     {target: "ADD_MONTHS", minArgs: 2, maxArgs: 2},
	"MONTHS_BETWEEN": {target: "MONTHS_BETWEEN", minArgs: 2, maxArgs: 2},
	"LAST_DAY":       {target: "LAST_DAY", minArgs: 1, maxArgs: 1},
	"NEXT_DAY":       {target: "NEXT_DAY", minArgs: 2, maxArgs: 2},
	"EXTRACT":        {target: "EXTRACT", minArgs: 1, maxArgs: 2},
	"FROM_TZ":        {target: "FROM_UTC_TIMESTAMP", minArgs: 2, maxArgs: 2},

	// Conversion functions.
	"TO_CHAR":          {target: "TO_CHAR", minArgs: 1, maxArgs: 3},
	"TO_DATE":          {target: "TO_DATE", minArgs: 1, maxArgs: 3},
	"TO_TIMESTAMP":     {target: "TO_TIMESTAMP", minArgs: 1, maxArgs: 2},
	"TO_TIMESTAMP_TZ":  {target: "TO_TIMESTAMP", minArgs: 1, maxArgs: 2},
	"TO_NUMBER":        {minArgs: 1, maxArgs: 3, rewrite: castRewrite("DECIMAL", 38, 10)},
	"TO_BINARY_FLOAT":  {minArgs: 1, maxArgs: 1, rewrite: castRewrite("FLOAT", 0, 0)},
	"TO_BINARY_DOUBLE": {minArgs: 1, maxArgs: 1, rewrite: castRewrite("DOUBLE", 0, 0)},
	"TO_CLOB":          {minArgs: 1, maxArgs: 1, rewrite: castRewrite("STRING", 0, 0)},
	"TO_NCHAR":         {minArgs: 1, maxArgs: 1, rewrite: castRewrite("STRING", 0, 0)},
	"TO_NCLOB":         {minArgs: 1, maxArgs: 1, rewrite: castRewrite("STRING", 0, 0)},
	"RAWTOHEX":         {target: "HEX", minArgs: 1, maxArgs: 1},
	"HEXTORAW":         {target: "UNHEX", minArgs: 1, maxArgs: 1},

	// Aggregates.
	"COUNT":       {target: "COUNT", minArgs: 1, maxArgs: 1},
	"SUM":         {target: "SUM", minArgs: 1, maxArgs: 1},
	"AVG":         {target: "AVG", minArgs: 1, maxArgs: 1},
	"MIN":         {target: "MIN", minArgs: 1, maxArgs: 1},
	"MAX":         {target: "MAX", minArgs: 1, maxArgs: 1},
	"STDDEV":      {target: "STDDEV", minArgs: 1, maxArgs: 1},
	"STDDEV_POP":  {target: "STDDEV_POP", minArgs: 1, maxArgs: 1},
	"STDDEV_SAMP": {target: "STDDEV_SAMP", minArgs: 1, maxArgs: 1},
	"VARIANCE":    {target: "VARIANCE", minArgs: 1, maxArgs: 1},
	"VAR_POP":     {target: "VAR_POP", minArgs: 1, maxArgs: 1},
	"VAR_SAMP":    {target: "VAR_SAMP", minArgs: 1, maxArgs: 1},
	"CORR":        {target: "CORR", minArgs: 2, maxArgs: 2},
	"COVAR_POP":   {target: "COVAR_POP", minArgs: 2, maxArgs: 2},
	"COVAR_SAMP":  {target: "COVAR_SAMP", minArgs: 2, maxArgs: 2},
	"MEDIAN":      {minArgs: 1, maxArgs: 1, rewrite: rewriteMedian},
	"LISTAGG":     {minArgs: 1, maxArgs: 2, rewrite: rewriteListAgg},
	"WM_CONCAT":   {minArgs: 1, maxArgs: 1, rewrite: rewriteListAgg},
	"COLLECT":     {target: "COLLECT_LIST", minArgs: 1, maxArgs: 1},

	// Window functions.
	"ROW_NUMBER":      {target: "ROW_NUMBER", minArgs: 0, maxArgs: 0},
	"RANK":            {target: "RANK", minArgs: 0, maxArgs: 0},
	"DENSE_RANK":      {target: "DENSE_RANK", minArgs: 0, maxArgs: 0},
	"NTILE":           {target: "NTILE", minArgs: 1, maxArgs: 1},
	"LEAD":            {target: "LEAD", minArgs: 1, maxArgs: 3},
	"LAG":             {target: "LAG", minArgs: 1, maxArgs: 3},
	"FIRST_VALUE":     {target: "FIRST_VALUE", minArgs: 1, maxArgs: 1},
	"LAST_VALUE":      {target: "LAST_VALUE", minArgs: 1, maxArgs: 1},
	"PERCENTILE_CONT": {target: "PERCENTILE_CONT", minArgs: 1, maxArgs: 1},
	"PERCENTILE_DISC": {target: "PERCENTILE_DISC", minArgs: 1, maxArgs: 1},

	// Null handling and conditionals.
	"NULLIF":   {target: "NULLIF", minArgs: 2, maxArgs: 2},
	"COALESCE": {target: "COALESCE", minArgs: 2, maxArgs: -1},
	"GREATEST": {target: "GREATEST", minArgs: 2, maxArgs: -1},
	"LEAST":    {target: "LEAST", minArgs: 2, maxArgs: -1},
	"IFNULL":   {target: "COALESCE", minArgs: 2, maxArgs: 2},

	// Miscellaneous.
	"SYS_GUID":   {target: "UUID", minArgs: 0, maxArgs: 0},
	"ORA_HASH":   {target: "HASH", minArgs: 1, maxArgs: 3},
	"JSON_VALUE": {target: "GET_JSON_OBJECT", minArgs: 2, maxArgs: 2},
	"JSON_QUERY": {target: "GET_JSON_OBJECT", minArgs: 2, maxArgs: 2},
}

// unsupportedFunctions have no Databricks equivalent. Calls are left in
// place and reported through the unsupported-feature list.
var unsupportedFunctions = map[string]string{
	"ROWIDTOCHAR":      "ROWID has no Databricks equivalent",
	"CHARTOROWID":      "ROWID has no Databricks equivalent",
	"NLSSORT":          "NLS collation has no Databricks equivalent",
	"COMPOSE":          "Unicode composition has no Databricks equivalent",
	"DECOMPOSE":        "Unicode decomposition has no Databricks equivalent",
	"TZ_OFFSET":        "time zone offset lookup has no Databricks equivalent",
	"NEW_TIME":         "NEW_TIME is deprecated and has no Databricks equivalent",
	"BFILENAME":        "BFILE storage has no Databricks equivalent",
	"SCN_TO_TIMESTAMP": "system change numbers have no Databricks equivalent",
	"TIMESTAMP_TO_SCN": "system change numbers have no Databricks equivalent",
	"DBMS_RANDOM.VALUE": "use RAND() manually; argument semantics differ",
}

// identMappings rewrites bare Oracle pseudo functions that parse as plain
// identifiers. Values are emitted as zero-argument calls.
var identMappings = map[string]string{
	"SYSDATE":         "CURRENT_TIMESTAMP",
	"SYSTIMESTAMP":    "CURRENT_TIMESTAMP",
	"LOCALTIMESTAMP":  "CURRENT_TIMESTAMP",
	"SESSIONTIMEZONE": "CURRENT_TIMEZONE",
	"DBTIMEZONE":      "CURRENT_TIMEZONE",
	"USER":            "CURRENT_USER",
	"SESSION_USER":    "CURRENT_USER",
}

func lookupFunction(name string) (*mapping, bool) {
	m, ok := functionMappings[strings.ToUpper(name)]
	return m, ok
}

func rewriteNVL2(call *osql.FuncCall) osql.Expression {
	return &osql.FuncCall{
		Name: "IF",
		Args: []osql.Expression{
			&osql.IsNull{Expr: call.Args[0], Not: true},
			call.Args[1],
			call.Args[2],
		},
	}
}

func rewriteMedian(call *osql.FuncCall) osql.Expression {
	return &osql.FuncCall{
		Name: "PERCENTILE",
		Args: []osql.Expression{call.Args[0], &osql.NumberLit{Value: "0.5"}},
	}
}

// rewriteListAgg covers LISTAGG and WM_CONCAT. A missing delimiter
// defaults to a comma, matching WM_CONCAT behavior.
func rewriteListAgg(call *osql.FuncCall) osql.Expression {
	delim := osql.Expression(&osql.StringLit{Value: "','"})
	if len(call.Args) > 1 {
		delim = call.Args[1]
	}
	return &osql.FuncCall{
		Name: "ARRAY_JOIN",
		Args: []osql.Expression{
			&osql.FuncCall{Name: "COLLECT_LIST", Args: []osql.Expression{call.Args[0]}},
			delim,
		},
	}
}

func rewriteRegexpLike(call *osql.FuncCall) osql.Expression {
	return &osql.LikeExpr{Expr: call.Args[0], Pattern: call.Args[1], Op: "RLIKE"}
}

// rewriteDecode expands DECODE(expr, s1, r1, ..., default) into a simple
// CASE expression. Pairs are consumed left to right; a trailing odd
// argument becomes the ELSE branch.
func rewriteDecode(call *osql.FuncCall) osql.Expression {
	c := &osql.CaseExpr{Operand: call.Args[0]}
	rest := call.Args[1:]
	for len(rest) >= 2 {
		c.Whens = append(c.Whens, osql.WhenClause{When: rest[0], Then: rest[1]})
		rest = rest[2:]
	}
	if len(rest) == 1 {
		c.Else = rest[0]
	}
	return c
}

func castRewrite(typeName string, precision, scale int) rewriteFunc {
	return func(call *osql.FuncCall) osql.Expression {
		dt := osql.DataType{Name: typeName}
		if precision > 0 {
			dt.Precision = precision
			dt.Scale = scale
			dt.HasPrecision = true
			dt.HasScale = true
		}
		return &osql.CastExpr{Expr: call.Args[0], Type: dt}
	}
}
