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

// Package datasources loads grid datasets described in a YAML file, with
// support for reusable column annotations.
package datasources

import (
	"fmt"
	"strings"

	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/server"
)

// DataSourcesConfig is the top level of a data sources file.
type DataSourcesConfig struct {
	Annotations []*ColumnAnnotations `yaml:"annotations"`
	Sources     []*DataSource        `yaml:"sources"`
}

// ColumnAnnotations is a named, reusable set of column annotations.
type ColumnAnnotations struct {
	AnnotationsID string              `yaml:"annotations_id"`
	Columns       []*ColumnAnnotation `yaml:"columns"`
}

// ColumnAnnotation overrides how one column is imported and shown.
type ColumnAnnotation struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name,omitempty"`
	// Type is one of auto, string, int64, float64, bool, datetime or duration.
	Type     string `yaml:"type,omitempty"`
	ReadOnly bool   `yaml:"read_only,omitempty"`
	// Layout is the Go time layout datetime cells are shown in.
	Layout string `yaml:"layout,omitempty"`
}

// DataSource describes one dataset and how to load it.
type DataSource struct {
	Name          string            `yaml:"name"`
	DisplayName   string            `yaml:"display_name,omitempty"`
	Description   string            `yaml:"description,omitempty"`
	SourceType    string            `yaml:"source_type"`
	AnnotationsID string            `yaml:"annotations_id,omitempty"`
	Config        map[string]string `yaml:"config"`
}

// DataSourceLoader loads datasets of one source type.
type DataSourceLoader interface {
	// SourceType returns the source_type this loader handles.
	SourceType() string
	// Load reads the source. config has relative paths already resolved and
	// annotations may be nil.
	Load(source *DataSource, config map[string]string, annotations *ColumnAnnotations) (server.Dataset, error)
}

// ParseColumnType maps an annotation type name to a CSV column type.
func ParseColumnType(name string) (csvimport.CsvColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return csvimport.CsvColumnTypeAuto, nil
	case "string":
		return csvimport.CsvColumnTypeString, nil
	case "int64", "int":
		return csvimport.CsvColumnTypeInt64, nil
	case "float64", "float":
		return csvimport.CsvColumnTypeFloat64, nil
	case "bool":
		return csvimport.CsvColumnTypeBool, nil
	case "datetime", "date", "timestamp":
		return csvimport.CsvColumnTypeDatetime, nil
	case "duration":
		return csvimport.CsvColumnTypeDuration, nil
	}
	return csvimport.CsvColumnTypeAuto, fmt.Errorf("unknown column type %q", name)
}
