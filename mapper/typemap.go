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

// dataTypeMappings maps Oracle type names to Databricks type names.
// NUMBER is absent because its translation depends on precision and scale.
var dataTypeMappings = map[string]string{
	"VARCHAR2":      "STRING",
	"NVARCHAR2":     "STRING",
	"VARCHAR":       "STRING",
	"CHAR":          "STRING",
	"NCHAR":         "STRING",
	"CLOB":          "STRING",
	"NCLOB":         "STRING",
	"LONG":          "STRING",
	"BINARY_FLOAT":  "FLOAT",
	"BINARY_DOUBLE": "DOUBLE",
	"INTEGER":       "INT",
	"INT":           "INT",
	"SMALLINT":      "SMALLINT",
	"FLOAT":         "DOUBLE",
	"REAL":          "FLOAT",
	"DATE":          "TIMESTAMP",
	"TIMESTAMP":     "TIMESTAMP",
	"RAW":           "BINARY",
	"BLOB":          "BINARY",
	"BFILE":         "STRING",
	"ROWID":         "STRING",
	"UROWID":        "STRING",
	"BOOLEAN":       "BOOLEAN",
	"XMLTYPE":       "STRING",
	"DECIMAL":       "DECIMAL",
	"NUMERIC":       "DECIMAL",
	"STRING":        "STRING",
	"BIGINT":        "BIGINT",
	"DOUBLE":        "DOUBLE",
	"BINARY":        "BINARY",
	"TINYINT":       "TINYINT",
}

// MapDataType converts an Oracle data type to its Databricks form.
// The second result reports whether the type was recognized; unknown
// types come back unchanged.
func MapDataType(t osql.DataType) (osql.DataType, bool) {
	name := strings.ToUpper(t.Name)
	if name == "NUMBER" {
		return mapNumber(t), true
	}
	target, ok := dataTypeMappings[name]
	if !ok {
		return t, false
	}
	out := osql.DataType{Name: target}
	// Length modifiers on character and binary types are dropped; the
	// Databricks targets are unparameterized.
	if target == "DECIMAL" {
		out.Precision = t.Precision
		out.Scale = t.Scale
		out.HasPrecision = t.HasPrecision
		out.HasScale = t.HasScale
	}
	return out, true
}

// mapNumber chooses the narrowest Databricks numeric type that holds a
// NUMBER(p,s) value. Scale zero collapses to INT or BIGINT when the
// precision fits; a bare NUMBER gets a wide default.
func mapNumber(t osql.DataType) osql.DataType {
	switch {
	case t.HasPrecision && t.HasScale:
		if t.Scale == 0 {
			if t.Precision <= 9 {
				return osql.DataType{Name: "INT"}
			}
			if t.Precision <= 18 {
				return osql.DataType{Name: "BIGINT"}
			}
			return decimalType(t.Precision, 0)
		}
		return decimalType(t.Precision, t.Scale)
	case t.HasPrecision:
		return decimalType(t.Precision, 0)
	default:
		return decimalType(38, 10)
	}
}

func decimalType(precision, scale int) osql.DataType {
	return osql.DataType{
		Name:         "DECIMAL",
		Precision:    precision,
		Scale:        scale,
		HasPrecision: true,
		HasScale:     true,
	}
}
