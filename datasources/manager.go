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

package datasources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/google/tabula/core/server"
)

// Manager handles loading and caching of data sources.
// Annotations are loaded eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Annotations indexed by annotations_id - loaded eagerly
	annotations map[string]*ColumnAnnotations

	// Source metadata indexed by name - loaded eagerly
	sources map[string]*DataSource

	// Loaded datasets indexed by source name - populated lazily
	datasets map[string]server.Dataset

	// Registered loaders indexed by source_type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a new data source manager with the CSV loader
// registered.
func NewManager() *Manager {
	m := &Manager{
		annotations: make(map[string]*ColumnAnnotations),
		sources:     make(map[string]*DataSource),
		datasets:    make(map[string]server.Dataset),
		loaders:     make(map[string]DataSourceLoader),
	}
	m.RegisterLoader(NewCsvLoader())
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// LoadConfig loads a DataSourcesConfig from a YAML file. Relative paths in
// source configs resolve against the file's directory.
func (m *Manager) LoadConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := &DataSourcesConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	m.SetBaseDir(filepath.Dir(configPath))
	return m.AddConfig(config)
}

// AddConfig registers the annotations and sources of config.
func (m *Manager) AddConfig(config *DataSourcesConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ann := range config.Annotations {
		m.annotations[ann.AnnotationsID] = ann
	}
	for _, source := range config.Sources {
		if source.Name == "" {
			return fmt.Errorf("data source without a name")
		}
		if _, ok := m.sources[source.Name]; ok {
			return fmt.Errorf("duplicate data source %q", source.Name)
		}
		m.sources[source.Name] = source
	}
	return nil
}

// SetBaseDir sets the base directory for resolving relative paths in config.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// GetAnnotations returns the annotations for a given annotations_id.
// Returns nil if the annotations are not found.
func (m *Manager) GetAnnotations(annotationsID string) *ColumnAnnotations {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.annotations[annotationsID]
}

// GetSourceNames returns all registered source names, sorted.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSource returns the source metadata for a given name.
// Returns nil if the source is not found.
func (m *Manager) GetSource(name string) *DataSource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sources[name]
}

// LoadData loads the dataset for a source by name.
// Returns the cached dataset if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(sourceName string) (server.Dataset, error) {
	m.mu.RLock()
	if d, ok := m.datasets[sourceName]; ok {
		m.mu.RUnlock()
		return d, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	annotations := m.annotations[source.AnnotationsID]
	loader, hasLoader := m.loaders[source.SourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", source.SourceType)
	}
	if source.AnnotationsID != "" && annotations == nil {
		return nil, fmt.Errorf("source %q references unknown annotations %q", sourceName, source.AnnotationsID)
	}

	config := resolveConfigPaths(source.Config, baseDir)
	d, err := loader.Load(source, config, annotations)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another caller may have loaded it meanwhile; keep the first.
	if cached, ok := m.datasets[sourceName]; ok {
		return cached, nil
	}
	m.datasets[sourceName] = d
	return d, nil
}

// Datasets loads every registered source in name order.
func (m *Manager) Datasets() ([]server.Dataset, error) {
	var out []server.Dataset
	for _, name := range m.GetSourceNames() {
		d, err := m.LoadData(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// resolveConfigPaths resolves relative file paths in config to absolute paths.
func resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	if baseDir == "" {
		return config
	}

	resolved := make(map[string]string, len(config))
	for k, v := range config {
		if k == "file_path" && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache removes a source from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.datasets, sourceName)
}

// IsLoaded returns whether data for a source is currently cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.datasets[sourceName]
	return ok
}
