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

	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/server"
)

// CsvLoader implements DataSourceLoader for CSV files.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load imports the CSV file with column types, display names and read-only
// flags taken from the annotations.
func (l *CsvLoader) Load(source *DataSource, config map[string]string, annotations *ColumnAnnotations) (server.Dataset, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	options := csvimport.DefaultOptions()
	if h := config["has_header"]; h == "false" {
		options.HasHeader = false
	}
	if d := config["delimiter"]; d != "" {
		options.Delimiter = []rune(d)[0]
	}
	if annotations != nil {
		for _, col := range annotations.Columns {
			typ, err := ParseColumnType(col.Type)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			options.ColumnSources[col.Name] = csvimport.CsvColumnSource{
				DisplayName: col.DisplayName,
				Type:        typ,
				ReadOnly:    col.ReadOnly,
				Layout:      col.Layout,
			}
		}
	}

	d, err := server.LoadCSVDataset(source.Name, filePath, options)
	if err != nil {
		return nil, err
	}
	d.SetInfo(source.DisplayName, source.Description)
	return d, nil
}
