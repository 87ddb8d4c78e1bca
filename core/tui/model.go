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

// Package tui drives a grid from the terminal. The grid owns all state; the
// model only tracks the keyboard cursor and the text input of an edit.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/google/tabula/core/measure"
	"github.com/google/tabula/core/tables"
)

// Model is the bubbletea model of a terminal grid.
type Model struct {
	title    string
	grid     tables.Interactive
	notifier *Notifier
	cells    measure.CellMeasurer

	row, col int
	editing  bool
	input    textinput.Model

	width, height int
}

// New creates a model over grid. The grid must have been built with a
// measure.CellMeasurer of the same cell width so pixel widths map back to
// whole cells. notifier may be nil when the grid runs no timers.
func New(title string, grid tables.Interactive, cells measure.CellMeasurer, notifier *Notifier) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	return Model{
		title:    title,
		grid:     grid,
		notifier: notifier,
		cells:    cells,
		input:    ti,
	}
}

// Cursor returns the cursor position as view row and column.
func (m Model) Cursor() (row, col int) {
	return m.row, m.col
}

// Editing reports whether the text input is active.
func (m Model) Editing() bool {
	return m.editing
}

func (m Model) Init() tea.Cmd {
	if m.notifier == nil {
		return nil
	}
	return m.notifier.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case InvalidateMsg:
		// The grid changed on its own; redraw and keep listening.
		m.clamp()
		return m, m.Init()

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Edit):
		m.grid.EditInput(m.input.Value())
		m.grid.CommitEdit()
		m.stopEditing()
		return m, nil
	case key.Matches(msg, keys.Cancel):
		m.grid.CancelEdit()
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.grid.EditInput(m.input.Value())
	return m, cmd
}

func (m Model) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		m.row--
	case key.Matches(msg, keys.Down):
		m.row++
	case key.Matches(msg, keys.Left):
		m.col--
	case key.Matches(msg, keys.Right):
		m.col++
	case key.Matches(msg, keys.Toggle):
		m.grid.ToggleRowSelection(m.row, false)
	case key.Matches(msg, keys.ShiftToggle):
		m.grid.ToggleRowSelection(m.row, true)
	case key.Matches(msg, keys.SelectAll):
		m.grid.SelectAll()
	case key.Matches(msg, keys.Sort):
		m.grid.SortBy(m.col)
	case key.Matches(msg, keys.Widen):
		m.grid.Resize(m.col, m.cells.CellWidth)
	case key.Matches(msg, keys.Narrow):
		m.grid.Resize(m.col, -m.cells.CellWidth)
	case key.Matches(msg, keys.Click):
		m.grid.ClickCell(m.row, m.col)
		return m.syncEditing()
	case key.Matches(msg, keys.Edit):
		m.grid.BeginEdit(m.row, m.col)
		return m.syncEditing()
	case key.Matches(msg, keys.Cancel):
		m.grid.LeaveRow()
		return m, nil
	default:
		if r := msg.Runes; len(r) == 1 && r[0] >= '1' && r[0] <= '9' {
			m.runAction(int(r[0] - '1'))
		}
		return m, nil
	}
	m.clamp()
	m.hover()
	return m, nil
}

// syncEditing opens the text input when the grid entered edit mode.
func (m Model) syncEditing() (tea.Model, tea.Cmd) {
	v := m.grid.View()
	if v.Editing == nil {
		return m, nil
	}
	m.editing = true
	m.row, m.col = v.Editing.Row, v.Editing.Col
	m.input.SetValue(v.EditBuffer)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
	m.clamp()
}

// hover points the grid's hover at the cursor row so its actions and
// tooltip show in the status line.
func (m Model) hover() {
	if m.grid.Len() == 0 {
		return
	}
	m.grid.HoverRow(m.row, tables.Point{X: float64(m.col), Y: float64(m.row)})
	m.grid.EnterAffordance()
}

func (m Model) runAction(i int) {
	v := m.grid.View()
	if v.Hover == nil || i >= len(v.Hover.Actions) {
		return
	}
	m.grid.RunAction(v.Hover.Row, v.Hover.Actions[i].ID)
}

func (m *Model) clamp() {
	n := m.grid.Len()
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	cols := len(m.grid.View().Headers)
	if m.col >= cols {
		m.col = cols - 1
	}
	if m.col < 0 {
		m.col = 0
	}
}

func (m Model) status(v tables.View) string {
	s := fmt.Sprintf("%d of %d selected", v.SelectedCount, len(v.Rows))
	if v.Sort != nil && v.Sort.Column < len(v.Headers) {
		s += fmt.Sprintf(" · sorted by %s %s", v.Headers[v.Sort.Column].Text, v.Sort.Direction)
	}
	if v.Hover != nil {
		for i, a := range v.Hover.Actions {
			s += fmt.Sprintf(" · [%d] %s", i+1, a.Label)
		}
		if tip := v.Rows[v.Hover.Row].Tooltip; tip != "" {
			s += " · " + tip
		}
	}
	return s
}
