/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/records"
)

// recordGrid is implemented by grids over plain records.
type recordGrid interface {
	SetColumns(cols []columns.Column[records.Record])
	SetData(data []records.Record)
}

// ReloadCSV re-imports the CSV dataset name and pushes the new columns and
// rows into every live grid showing it. It returns the number of grids updated.
func (s *Server) ReloadCSV(name string) (int, error) {
	d, ok := s.dataset(name).(*CSVDataset)
	if !ok {
		return 0, fmt.Errorf("no CSV dataset named %q", name)
	}
	data, err := d.Reload()
	if err != nil {
		return 0, fmt.Errorf("failed to reload %s: %w", name, err)
	}
	rows := data.Rows
	n := 0
	for _, g := range s.grids(name) {
		if rg, ok := g.(recordGrid); ok {
			rg.SetColumns(data.Columns())
			rg.SetData(rows)
			n++
		}
	}
	s.log.WithField("table", name).Infof("Reloaded %d rows into %d grids", len(rows), n)
	return n, nil
}

// WatchCSV reloads the CSV dataset name whenever its backing file is
// written or replaced. It blocks until ctx is done or the watcher fails.
func (s *Server) WatchCSV(ctx context.Context, name string) error {
	d, ok := s.dataset(name).(*CSVDataset)
	if !ok || d.Path() == "" {
		return fmt.Errorf("no file-backed CSV dataset named %q", name)
	}
	path, err := filepath.Abs(d.Path())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	s.log.WithField("path", path).Infof("Watching %s for changes", name)

	mask := fsnotify.Create | fsnotify.Write | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Op&mask == 0 || filepath.Clean(evt.Name) != path {
				continue
			}
			if _, err := s.ReloadCSV(name); err != nil {
				s.log.WithField("path", path).Warnf("%v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.WithField("path", path).Errorf("Watcher error: %v", err)
		}
	}
}
