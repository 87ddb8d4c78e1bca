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

package measure

import "testing"

func TestFontMeasurer(t *testing.T) {
	m := NewFontMeasurer(nil)

	// basicfont.Face7x13 has a fixed 7px advance.
	if got := m.Measure("abcd"); got != 28 {
		t.Errorf("Expected 28px for 4 runes, got %v", got)
	}
	if got := m.Measure(""); got != 0 {
		t.Errorf("Expected 0px for empty text, got %v", got)
	}
}

func TestCellMeasurerWideRunes(t *testing.T) {
	m := CellMeasurer{CellWidth: 8}

	if got := m.Measure("abc"); got != 24 {
		t.Errorf("Expected 24px, got %v", got)
	}
	// Two wide runes take four cells.
	if got := m.Measure("日本"); got != 32 {
		t.Errorf("Expected 32px for wide runes, got %v", got)
	}
	if got := m.Cells(50); got != 6 {
		t.Errorf("Expected 6 cells for 50px, got %d", got)
	}
	if got := m.Cells(3); got != 1 {
		t.Errorf("Expected at least one cell, got %d", got)
	}
}

func TestFitWidth(t *testing.T) {
	m := Fixed{PerRune: 10}

	tests := []struct {
		name   string
		header string
		cells  []string
		want   float64
	}{
		{"header wins", "Description", []string{"a", "bb"}, 126},
		{"cell wins", "Id", []string{"a", "a much longer cell"}, 196},
		{"clamped to min", "", []string{"x"}, 50},
		{"clamped to max", "h", []string{"this text is far too long to fit in a column"}, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitWidth(m, tt.header, tt.cells, 16, 50, 300)
			if got != tt.want {
				t.Errorf("FitWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}
