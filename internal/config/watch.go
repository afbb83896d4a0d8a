// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events one editor save produces.
const reloadDebounce = 200 * time.Millisecond

// ReloadFunc receives the freshly loaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the config file at path whenever it changes and hands the
// result to fn. The parent directory is watched so that editors which
// save by rename are still seen. Watching stops when ctx is cancelled.
//
// fn runs on a background goroutine.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	go watchLoop(ctx, watcher, target, fn)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, fn ReloadFunc) {
	defer watcher.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, func() {
			if ctx.Err() != nil {
				return
			}
			fn(Load(target))
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				schedule()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fn(nil, fmt.Errorf("config watcher: %w", err))
		}
	}
}
