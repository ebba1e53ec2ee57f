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

package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/transsql/logger"
	"github.com/rulego/transsql/types"
)

const sampleJSON = `{
  "settings": {
    "apply_before_default": false,
    "continue_on_error": false
  },
  "custom_rules": [
    {
      "name": "sysdate",
      "description": "replace SYSDATE",
      "pattern": "\\bSYSDATE\\b",
      "replacement": "CURRENT_TIMESTAMP",
      "flags": ["IGNORECASE"],
      "priority": 150
    },
    {
      "name": "disabled",
      "pattern": "X",
      "replacement": "Y",
      "enabled": false
    }
  ]
}`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleJSON))
	require.NoError(t, err)
	require.Len(t, cfg.CustomRules, 2)

	r := cfg.CustomRules[0]
	assert.Equal(t, "sysdate", r.Name)
	assert.Equal(t, "replace SYSDATE", r.Description)
	assert.Equal(t, `\bSYSDATE\b`, r.Pattern)
	require.NotNil(t, r.Replacement)
	assert.Equal(t, "CURRENT_TIMESTAMP", *r.Replacement)

	e, err := NewEngine(cfg, logger.NewDiscardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, e.Len())
	assert.False(t, e.Settings().ApplyBeforeDefault)
	assert.False(t, e.Settings().ContinueOnError)
}

func TestParseConfigInvalidJSON(t *testing.T) {
	_, err := ParseConfig([]byte("{not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfig)
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeConfigFile(t, "rules.json", sampleJSON)
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.CustomRules, 2)
	assert.Equal(t, "sysdate", cfg.CustomRules[0].Name)

	e, err := NewEngine(cfg, logger.NewDiscardLogger())
	require.NoError(t, err)
	result := &types.TranslationResult{IsComplete: true}
	assert.Equal(t, "SELECT CURRENT_TIMESTAMP", e.Apply("SELECT sysdate", result))
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfigFile(t, "rules.yaml", `
settings:
  apply_before_default: true
custom_rules:
  - name: nvl
    pattern: "\\bNVL\\b"
    replacement: COALESCE
    priority: 120
`)
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.CustomRules, 1)
	assert.Equal(t, "nvl", cfg.CustomRules[0].Name)

	e, err := NewEngine(cfg, logger.NewDiscardLogger())
	require.NoError(t, err)
	result := &types.TranslationResult{IsComplete: true}
	assert.Equal(t, "SELECT COALESCE(a, b)", e.Apply("SELECT NVL(a, b)", result))
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfig)
}
