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

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/google/tabula/core/tables"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Foreground(lipgloss.Color("212"))
	cursorStyle   = cellStyle.Reverse(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m Model) View() string {
	v := m.grid.View()

	widths := make([]int, len(v.Headers))
	headers := make([]string, 0, len(v.Headers)+1)
	headers = append(headers, " ")
	for i, h := range v.Headers {
		widths[i] = m.cells.Cells(h.Width)
		text := h.Text
		if h.Sorted {
			if h.Direction == tables.Descending {
				text += " ▼"
			} else {
				text += " ▲"
			}
		}
		headers = append(headers, fit(text, widths[i]))
	}

	rows := make([][]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		mark := " "
		if row.Selected {
			mark = "✓"
		}
		line := []string{mark}
		for c, cell := range row.Cells {
			if m.editing && cell.Editing {
				line = append(line, fit(m.input.Value()+"▏", widths[c]))
				continue
			}
			line = append(line, fit(cell.Text, widths[c]))
		}
		rows = append(rows, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == m.row && col == m.col+1:
				return cursorStyle
			case row >= 0 && row < len(v.Rows) && v.Rows[row].Selected:
				return selectedStyle
			}
			return cellStyle
		})

	var sb strings.Builder
	if m.title != "" {
		sb.WriteString(titleStyle.Render(m.title))
		sb.WriteString("\n")
	}
	sb.WriteString(t.Render())
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status(v)))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(helpLine(keys.help())))
	return sb.String()
}

// fit pads or truncates text to exactly w terminal cells.
func fit(text string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > w {
		text = runewidth.Truncate(text, w, "…")
	}
	return runewidth.FillRight(text, w)
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
