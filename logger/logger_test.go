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

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "OFF", OFF.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WARN, &buf)

	l.Debug("applied rule %s", "fix_sysdate")
	l.Info("translation done")
	assert.Empty(t, buf.String())

	l.Warn("rule %s skipped", "broken")
	l.Error("parse failed")
	out := buf.String()
	assert.Contains(t, out, "[WARN] rule broken skipped")
	assert.Contains(t, out, "[ERROR] parse failed")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(ERROR, &buf)

	l.Warn("dropped")
	assert.Empty(t, buf.String())

	l.SetLevel(DEBUG)
	l.Debug("visible now")
	assert.Contains(t, buf.String(), "[DEBUG] visible now")
}

func TestOffDiscardsEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(OFF, &buf)

	l.Error("nothing at all")
	assert.Empty(t, buf.String())
}

func TestDiscardLogger(t *testing.T) {
	l := NewDiscardLogger()
	l.SetLevel(DEBUG)
	l.Debug("dropped")
	l.Error("dropped too")
}

func TestDefaultLoggerSwap(t *testing.T) {
	old := GetDefault()
	defer SetDefault(old)

	var buf bytes.Buffer
	SetDefault(NewLogger(INFO, &buf))

	Info("hello %d", 7)
	assert.Contains(t, buf.String(), "[INFO] hello 7")

	Debug("filtered")
	assert.NotContains(t, buf.String(), "filtered")
}
