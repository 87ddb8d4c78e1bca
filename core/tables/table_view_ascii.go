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

package tables

import (
	"strings"

	"github.com/olekukonko/tablewriter"
)

// ToAscii returns a text rendering of the current view with ASCII borders.
// Selected rows are marked with '*' and the active sort column with an
// arrow after its header.
func (t *Table[T, D]) ToAscii() string {
	return RenderAscii(t.View())
}

// RenderAscii renders a view snapshot as an ASCII table.
func RenderAscii(v View) string {
	var sb strings.Builder
	w := tablewriter.NewWriter(&sb)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	w.SetAlignment(tablewriter.ALIGN_LEFT)

	header := []string{" "}
	for _, h := range v.Headers {
		text := h.Text
		if h.Sorted {
			if h.Direction == Descending {
				text += " v"
			} else {
				text += " ^"
			}
		}
		header = append(header, text)
	}
	w.SetHeader(header)

	for r, row := range v.Rows {
		mark := " "
		if row.Selected {
			mark = "*"
		}
		line := []string{mark}
		for c, cell := range row.Cells {
			if v.Editing != nil && v.Editing.Row == r && v.Editing.Col == c {
				line = append(line, "["+v.EditBuffer+"]")
				continue
			}
			line = append(line, cell.Text)
		}
		w.Append(line)
	}
	w.Render()
	return sb.String()
}
