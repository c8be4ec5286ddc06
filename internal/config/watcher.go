// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// Watcher reloads the config file when it changes on disk and delivers the
// parsed result through a callback. Editors replace files rather than write
// in place, so the parent directory is watched and events are debounced.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Config)
	done     chan struct{}
}

// NewWatcher starts watching path. onReload is called from a background
// goroutine with each successfully parsed config; parse failures are logged
// and skipped so a mid-edit file never clobbers live settings.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	const debounce = 200 * time.Millisecond

	reload := func() {
		cfg, err := Load(w.path)
		if err != nil {
			slog.Warn("config reload failed", "path", w.path, "err", err)
			return
		}
		w.onReload(cfg)
	}

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "err", err)
		}
	}
}
