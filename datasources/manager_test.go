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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/tabula/core/clock"
	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/measure"
	"github.com/google/tabula/core/server"
)

const sourcesYAML = `
annotations:
  - annotations_id: cities
    columns:
      - name: population
        display_name: Inhabitants
        type: float64
      - name: code
        read_only: true
sources:
  - name: cities
    display_name: Cities
    description: Large cities
    source_type: csv
    annotations_id: cities
    config:
      file_path: data/cities.csv
  - name: ports
    source_type: csv
    config:
      file_path: data/ports.tsv
      delimiter: "\t"
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"sources.yaml":    sourcesYAML,
		"data/cities.csv": "code,name,population\nTYO,Tokyo,37400068\nDEL,Delhi,28514000\n",
		"data/ports.tsv":  "port\tcountry\nRotterdam\tNL\nSingapore\tSG\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "sources.yaml")
}

func TestManagerLoadConfig(t *testing.T) {
	manager := NewManager()
	if err := manager.LoadConfig(writeFixture(t)); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if diff := cmp.Diff([]string{"cities", "ports"}, manager.GetSourceNames()); diff != "" {
		t.Errorf("source names mismatch (-want +got):\n%s", diff)
	}
	if manager.GetAnnotations("cities") == nil {
		t.Fatal("annotations not found")
	}

	// Verify data is not loaded yet
	if manager.IsLoaded("cities") {
		t.Error("cities should not be loaded yet")
	}

	d, err := manager.LoadData("cities")
	if err != nil {
		t.Fatalf("failed to load data: %v", err)
	}
	if !manager.IsLoaded("cities") {
		t.Error("cities should be loaded now")
	}
	if d.DisplayName() != "Cities" || d.Description() != "Large cities" {
		t.Errorf("info = %q, %q", d.DisplayName(), d.Description())
	}

	csv, ok := d.(*server.CSVDataset)
	if !ok {
		t.Fatalf("dataset is %T, want *server.CSVDataset", d)
	}
	if got := csv.Rows()[0]["population"]; got != float64(37400068) {
		t.Errorf("population = %#v, want float64", got)
	}

	grid := d.NewGrid(server.GridEnv{Measurer: measure.Fixed{PerRune: 7}, Clock: clock.NewFake(), Logger: logging.NewNoOp()})
	defer grid.Close()
	v := grid.View()
	if v.Headers[2].Text != "Inhabitants" {
		t.Errorf("header = %q, want Inhabitants", v.Headers[2].Text)
	}
	if v.Headers[0].Editable {
		t.Error("read-only code column is editable")
	}

	again, err := manager.LoadData("cities")
	if err != nil {
		t.Fatalf("failed to load cached data: %v", err)
	}
	if again != d {
		t.Error("expected same dataset instance from cache")
	}

	manager.InvalidateCache("cities")
	if manager.IsLoaded("cities") {
		t.Error("cities should not be loaded after invalidation")
	}
}

func TestManagerDatasets(t *testing.T) {
	manager := NewManager()
	if err := manager.LoadConfig(writeFixture(t)); err != nil {
		t.Fatal(err)
	}
	datasets, err := manager.Datasets()
	if err != nil {
		t.Fatalf("Datasets() error = %v", err)
	}
	if len(datasets) != 2 {
		t.Fatalf("got %d datasets, want 2", len(datasets))
	}
	ports := datasets[1].(*server.CSVDataset)
	if got := ports.Rows()[1]["country"]; got != "SG" {
		t.Errorf("tab-delimited row = %v", ports.Rows()[1])
	}
	if ports.DisplayName() != "ports" {
		t.Errorf("display name = %q, want the source name", ports.DisplayName())
	}
}

func TestManagerErrors(t *testing.T) {
	manager := NewManager()
	err := manager.AddConfig(&DataSourcesConfig{Sources: []*DataSource{
		{Name: "nodata", SourceType: "csv"},
		{Name: "weird", SourceType: "parquet"},
		{Name: "orphan", SourceType: "csv", AnnotationsID: "missing", Config: map[string]string{"file_path": "x.csv"}},
	}})
	if err != nil {
		t.Fatalf("AddConfig() error = %v", err)
	}

	tests := []struct {
		source string
		want   string
	}{
		{"nodata", "file_path is required"},
		{"weird", "no loader registered"},
		{"orphan", "unknown annotations"},
		{"absent", "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := manager.LoadData(tt.source)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadData(%s) error = %v, want %q", tt.source, err, tt.want)
			}
		})
	}

	if err := manager.AddConfig(&DataSourcesConfig{Sources: []*DataSource{{Name: "weird"}}}); err == nil {
		t.Error("duplicate source accepted")
	}
}

func TestParseColumnType(t *testing.T) {
	tests := map[string]csvimport.CsvColumnType{
		"":         csvimport.CsvColumnTypeAuto,
		"String":   csvimport.CsvColumnTypeString,
		"int":      csvimport.CsvColumnTypeInt64,
		"float64":  csvimport.CsvColumnTypeFloat64,
		"bool":     csvimport.CsvColumnTypeBool,
		"date":     csvimport.CsvColumnTypeDatetime,
		"duration": csvimport.CsvColumnTypeDuration,
	}
	for in, want := range tests {
		got, err := ParseColumnType(in)
		if err != nil || got != want {
			t.Errorf("ParseColumnType(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseColumnType("decimal"); err == nil {
		t.Error("unknown type accepted")
	}
}
