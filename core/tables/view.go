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

// HeaderView is one rendered column header.
type HeaderView struct {
	Key      string
	Text     string
	Width    float64
	Sortable bool
	Editable bool
	// Sorted is set on the active sort column.
	Sorted    bool
	Direction Direction
}

// CellView is one rendered cell.
type CellView struct {
	Text     string
	Editing  bool
	Editable bool
}

// RowView is one rendered row in view order.
type RowView struct {
	// Index is the row's position in the host data.
	Index    int
	Cells    []CellView
	Selected bool
	Hovered  bool
	Tooltip  string
}

// HoverView is the floating action affordance of the hovered row.
type HoverView struct {
	Row     int
	Anchor  Point
	Actions []ActionView
}

// ActionView is a row action without its callback.
type ActionView struct {
	ID    string
	Label string
}

// View is an immutable snapshot of everything a host needs to draw the
// grid. It holds no references into the table.
type View struct {
	Headers []HeaderView
	Rows    []RowView
	Sort    *SortState

	SelectedCount int
	AllSelected   bool
	// Hover is nil when no row is hovered or a pointer button is held.
	Hover *HoverView
	// Editing is nil outside of edit mode.
	Editing    *CellRef
	EditBuffer string
	// Resizing is the column being dragged, or -1.
	Resizing int
}

// View derives the current snapshot. Table state is copied under the lock
// and Tooltip and Actions run after it is released.
func (t *Table[T, D]) View() View {
	t.mu.Lock()
	v := View{Resizing: -1}
	cols := t.cols
	formatHeader := t.cfg.FormatHeader
	tooltip, actions := t.cfg.Tooltip, t.cfg.Actions
	for i, c := range cols {
		h := HeaderView{
			Key:      c.Header,
			Width:    t.widths[i],
			Sortable: c.IsSortable(),
			Editable: c.IsEditable(),
		}
		if t.sort != nil && t.sort.Column == i {
			h.Sorted = true
			h.Direction = t.sort.Direction
		}
		v.Headers = append(v.Headers, h)
	}
	if t.sort != nil {
		s := *t.sort
		v.Sort = &s
	}

	ref, editing := t.editingRefLocked()
	if editing {
		v.Editing = &ref
		v.EditBuffer = t.editor.Buffer()
	}

	hovered := -1
	if !t.hover.held && t.validRow(t.hover.row) {
		hovered = t.hover.row
	}

	items := make([]T, len(t.order))
	disp := make([]D, len(t.order))
	v.Rows = make([]RowView, 0, len(t.order))
	for vr, i := range t.order {
		items[vr], disp[vr] = t.data[i], t.disp[i]
		v.Rows = append(v.Rows, RowView{
			Index:    i,
			Selected: t.isSelectedLocked(t.data[i]),
			Hovered:  vr == hovered,
		})
	}
	v.SelectedCount = len(t.selected)
	v.AllSelected = len(t.data) > 0 && len(t.selected) == len(t.data)
	if hovered >= 0 {
		v.Hover = &HoverView{Row: hovered, Anchor: t.hover.anchor}
	}
	if t.resize != nil {
		v.Resizing = t.resize.col
	}
	t.mu.Unlock()

	for i := range v.Headers {
		v.Headers[i].Text = v.Headers[i].Key
		if formatHeader != nil {
			v.Headers[i].Text = formatHeader(v.Headers[i].Key)
		}
	}
	for vr := range v.Rows {
		row := &v.Rows[vr]
		if tooltip != nil {
			row.Tooltip = tooltip(items[vr])
		}
		row.Cells = make([]CellView, 0, len(cols))
		for ci, c := range cols {
			row.Cells = append(row.Cells, CellView{
				Text:     c.Text(disp[vr]),
				Editing:  editing && ref.Row == vr && ref.Col == ci,
				Editable: c.IsEditable(),
			})
		}
	}
	if v.Hover != nil && actions != nil {
		for _, a := range actions(items[v.Hover.Row]) {
			v.Hover.Actions = append(v.Hover.Actions, ActionView{ID: a.ID, Label: a.Label})
		}
	}
	return v
}

// Interactive is the non-generic face of a Table used by hosts that drive
// grids of different record types.
type Interactive interface {
	View() View
	ToAscii() string
	Len() int

	SortBy(col int)
	ToggleRowSelection(viewRow int, shift bool)
	SelectAll()

	Resize(col int, delta float64)
	BeginResize(col int, x float64)
	ResizeMove(x float64)
	EndResize()

	HoverRow(viewRow int, anchor Point)
	LeaveRow()
	EnterAffordance()
	LeaveAffordance()
	PointerDown()
	PointerUp()
	RunAction(viewRow int, id string) bool

	ClickRow(viewRow int) bool
	ClickCell(viewRow, col int) bool

	BeginEdit(viewRow, col int)
	EditInput(text string)
	CommitEdit()
	CancelEdit()
	Blur()

	Close()
}

var _ Interactive = (*Table[int, int])(nil)
