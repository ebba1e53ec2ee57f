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
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rulego/transsql/logger"
)

// Watcher keeps an engine in sync with a rule configuration file. The
// active engine is swapped atomically, so translators read a consistent
// rule set without locking; a configuration that fails to reload keeps
// the previous engine active.
type Watcher struct {
	mu sync.Mutex

	path   string
	log    logger.Logger
	engine atomic.Pointer[Engine]

	fsWatcher *fsnotify.Watcher

	// Debouncing: editors often emit several events per save.
	debounceDelay time.Duration
	reloadTimer   *time.Timer

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// onReload, when set, observes every successful engine swap.
	onReload func(*Engine)
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounceDelay sets the delay for batching file events. Default is
// 100ms.
func WithDebounceDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounceDelay = d
	}
}

// WithOnReload sets a callback invoked after each successful reload.
func WithOnReload(fn func(*Engine)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher loads the configuration file and builds the initial engine.
// The file must be valid at construction time; later reload failures are
// only logged.
func NewWatcher(path string, log logger.Logger, opts ...WatcherOption) (*Watcher, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:          path,
		log:           log,
		fsWatcher:     fsw,
		debounceDelay: 100 * time.Millisecond,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
	w.engine.Store(engine)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Engine returns the currently active engine.
func (w *Watcher) Engine() *Engine {
	return w.engine.Load()
}

// Start begins watching the configuration file. The parent directory is
// watched rather than the file itself so atomic-rename saves still
// produce events.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	// running flips only once the watch is registered, so a Stop after a
	// failed Start is a no-op instead of waiting on a goroutine that was
	// never launched.
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	w.log.Info("rule watcher started, config=%s", w.path)
	go w.processEvents()
	return nil
}

// Stop stops the watcher and releases its file handles.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.log.Info("rule watcher stopped")
	return w.fsWatcher.Close()
}

func (w *Watcher) processEvents() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			w.mu.Lock()
			if w.reloadTimer != nil {
				w.reloadTimer.Stop()
			}
			w.mu.Unlock()
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error("rule watcher error: %v", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reloadTimer != nil {
		w.reloadTimer.Stop()
	}
	w.reloadTimer = time.AfterFunc(w.debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadConfigFile(w.path)
	if err != nil {
		w.log.Error("rule reload failed, keeping previous rules: %v", err)
		return
	}
	engine, err := NewEngine(cfg, w.log)
	if err != nil {
		w.log.Error("rule reload failed, keeping previous rules: %v", err)
		return
	}
	w.engine.Store(engine)
	w.log.Info("rule configuration reloaded, %d rule(s) active", engine.Len())
	if w.onReload != nil {
		w.onReload(engine)
	}
}
