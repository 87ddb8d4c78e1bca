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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/tabula/core/tables"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	dump := newDumpCommand()
	dump.SetOut(&out)
	dump.SetErr(&errOut)
	dump.SetArgs(args)
	err := dump.Execute()
	return out.String(), err
}

func TestDumpSorted(t *testing.T) {
	out, err := runCommand(t, "--config", "", "--dataset", "people", "--sort", "age", "--desc")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.Contains(out, "Age v") {
		t.Errorf("sort indicator missing:\n%s", out)
	}
	first := strings.Index(out, "Katherine Johnson")
	second := strings.Index(out, "Frances Allen")
	if first < 0 || second < 0 || first > second {
		t.Errorf("rows not sorted by age descending:\n%s", out)
	}
}

func TestDumpUnknownInputs(t *testing.T) {
	if _, err := runCommand(t, "--config", "", "--dataset", "nope"); err == nil {
		t.Error("unknown dataset accepted")
	}
	if _, err := runCommand(t, "--config", "", "--sort", "shoe_size"); err == nil {
		t.Error("unknown column accepted")
	}
}

func TestDumpDeclaredSource(t *testing.T) {
	dir := t.TempDir()
	sources := `
annotations:
  - annotations_id: cities
    columns:
      - name: population
        display_name: Inhabitants
        type: float64
sources:
  - name: cities
    source_type: csv
    annotations_id: cities
    config:
      file_path: cities.csv
`
	if err := os.WriteFile(filepath.Join(dir, "sources.yaml"), []byte(sources), 0o644); err != nil {
		t.Fatal(err)
	}
	csv := "name,population\nDelhi,28514000\nTokyo,37400068\n"
	if err := os.WriteFile(filepath.Join(dir, "cities.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", "", "--sources", filepath.Join(dir, "sources.yaml"),
		"--dataset", "cities", "--sort", "Inhabitants", "--desc")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	tokyo, delhi := strings.Index(out, "Tokyo"), strings.Index(out, "Delhi")
	if tokyo < 0 || delhi < 0 || tokyo > delhi {
		t.Errorf("rows not sorted by population descending:\n%s", out)
	}
}

func TestColumnIndex(t *testing.T) {
	headers := []tables.HeaderView{{Key: "order_id", Text: "Order #"}, {Key: "customer", Text: "Customer"}}
	tests := []struct {
		name string
		want int
	}{
		{"order_id", 0},
		{"Order #", 0},
		{"customer", 1},
		{"1", 1},
	}
	for _, tt := range tests {
		got, err := columnIndex(headers, tt.name)
		if err != nil || got != tt.want {
			t.Errorf("columnIndex(%q) = %d, %v, want %d", tt.name, got, err, tt.want)
		}
	}
	if _, err := columnIndex(headers, "2"); err == nil {
		t.Error("out of range index accepted")
	}
}

func TestServeRequiresCSVForWatch(t *testing.T) {
	serve := newServeCommand()
	serve.SetArgs([]string{"--watch"})
	serve.SetOut(&bytes.Buffer{})
	serve.SetErr(&bytes.Buffer{})
	if err := serve.Execute(); err == nil || !strings.Contains(err.Error(), "--csv") {
		t.Errorf("Execute() error = %v, want --csv requirement", err)
	}
}
