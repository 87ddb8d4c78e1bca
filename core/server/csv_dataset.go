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
	"errors"
	"fmt"
	"sync"

	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/records"
	"github.com/google/tabula/core/tables"
)

// ErrNotReloadable is returned when reloading a dataset that has no backing
// file.
var ErrNotReloadable = errors.New("dataset has no backing file")

// CSVDataset serves an imported CSV file. Rows are plain records, so every
// column is editable unless marked read-only in the import options.
type CSVDataset struct {
	name        string
	displayName string
	description string
	path        string
	options     csvimport.ImportOptions

	mu   sync.RWMutex
	data *csvimport.Dataset
	// fixedInfo keeps Reload from rewriting a caller supplied description.
	fixedInfo bool
}

// NewCSVDataset wraps an already imported dataset.
func NewCSVDataset(name, displayName, description string, data *csvimport.Dataset) *CSVDataset {
	return &CSVDataset{name: name, displayName: displayName, description: description, data: data}
}

// LoadCSVDataset imports the file at path. The dataset can later be
// refreshed from the same file with Reload.
func LoadCSVDataset(name, path string, options csvimport.ImportOptions) (*CSVDataset, error) {
	data, err := csvimport.ImportFromFile(path, options)
	if err != nil {
		return nil, err
	}
	return &CSVDataset{
		name:        name,
		displayName: name,
		description: fmt.Sprintf("%s (%d rows)", path, len(data.Rows)),
		path:        path,
		options:     options,
		data:        data,
	}, nil
}

func (d *CSVDataset) Name() string { return d.name }

func (d *CSVDataset) DisplayName() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.displayName
}

func (d *CSVDataset) Description() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.description
}

// SetInfo replaces the landing page name and description.
func (d *CSVDataset) SetInfo(displayName, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if displayName != "" {
		d.displayName = displayName
	}
	if description != "" {
		d.description = description
		d.fixedInfo = true
	}
}

// Path returns the backing file, or "" for in-memory data.
func (d *CSVDataset) Path() string { return d.path }

// Rows returns the current records.
func (d *CSVDataset) Rows() []records.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.Rows
}

// NewGrid creates a grid over the current records.
func (d *CSVDataset) NewGrid(env GridEnv) tables.Interactive {
	d.mu.RLock()
	data := d.data
	d.mu.RUnlock()

	var logger logging.Logger
	if env.Logger != nil {
		logger = env.Logger.WithField("table", d.name)
	}
	return tables.NewStandalone(tables.Config[records.Record, records.Record]{
		Data:         data.Rows,
		Columns:      data.Columns(),
		FormatHeader: d.formatHeader,
		Measurer:     env.Measurer,
		Clock:        env.Clock,
		Logger:       logger,
		Limits:       env.Limits,
		OnInvalidate: env.OnInvalidate,
	})
}

// formatHeader resolves display names against the latest import.
func (d *CSVDataset) formatHeader(name string) string {
	d.mu.RLock()
	data := d.data
	d.mu.RUnlock()
	return data.FormatHeader(name)
}

// Reload re-imports the backing file and returns the new import. Its
// headers may differ from the previous one.
func (d *CSVDataset) Reload() (*csvimport.Dataset, error) {
	if d.path == "" {
		return nil, ErrNotReloadable
	}
	data, err := csvimport.ImportFromFile(d.path, d.options)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.data = data
	if !d.fixedInfo {
		d.description = fmt.Sprintf("%s (%d rows)", d.path, len(data.Rows))
	}
	d.mu.Unlock()
	return data, nil
}
