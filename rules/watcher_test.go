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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/transsql/logger"
)

const oneRuleJSON = `{"custom_rules": [
  {"name": "a", "pattern": "X", "replacement": "Y"}
]}`

const twoRulesJSON = `{"custom_rules": [
  {"name": "a", "pattern": "X", "replacement": "Y"},
  {"name": "b", "pattern": "Y", "replacement": "Z"}
]}`

func TestWatcherInitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(oneRuleJSON), 0o644))

	w, err := NewWatcher(path, logger.NewDiscardLogger())
	require.NoError(t, err)
	defer w.Stop()

	require.NotNil(t, w.Engine())
	assert.Equal(t, 1, w.Engine().Len())
}

func TestWatcherRejectsInvalidInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"custom_rules": [{"name": "a"}]}`), 0o644))

	_, err := NewWatcher(path, logger.NewDiscardLogger())
	require.Error(t, err)
}

func TestWatcherReloadSwapsEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(oneRuleJSON), 0o644))

	reloaded := make(chan *Engine, 1)
	w, err := NewWatcher(path, logger.NewDiscardLogger(),
		WithDebounceDelay(10*time.Millisecond),
		WithOnReload(func(e *Engine) { reloaded <- e }),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	old := w.Engine()
	require.NoError(t, os.WriteFile(path, []byte(twoRulesJSON), 0o644))

	select {
	case e := <-reloaded:
		assert.Equal(t, 2, e.Len())
		assert.Same(t, e, w.Engine())
		assert.NotSame(t, old, w.Engine())
	case <-time.After(5 * time.Second):
		t.Fatal("reload did not happen")
	}
}

func TestWatcherKeepsEngineOnBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(oneRuleJSON), 0o644))

	w, err := NewWatcher(path, logger.NewDiscardLogger(),
		WithDebounceDelay(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	old := w.Engine()
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	// Give the debounced reload a chance to run, then confirm the
	// previous engine is still active.
	time.Sleep(500 * time.Millisecond)
	assert.Same(t, old, w.Engine())
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(oneRuleJSON), 0o644))

	w, err := NewWatcher(path, logger.NewDiscardLogger())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcherStopAfterFailedStart(t *testing.T) {
	sub := filepath.Join(t.TempDir(), "cfg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	path := filepath.Join(sub, "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(oneRuleJSON), 0o644))

	w, err := NewWatcher(path, logger.NewDiscardLogger())
	require.NoError(t, err)

	// Removing the directory makes the watch registration fail.
	require.NoError(t, os.RemoveAll(sub))
	require.Error(t, w.Start())

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after a failed Start")
	}
}
