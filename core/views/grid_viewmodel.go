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

package views

import (
	"fmt"

	"github.com/google/safehtml"

	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/tables"
)

// Pixel step used by the header widen/narrow links.
const resizeStep = 20

// GridViewModel contains the grid state formatted for template consumption
type GridViewModel struct {
	Title      string
	Subtitle   string
	Table      string
	CurrentURL safehtml.URL // Current URL without its action

	Headers []HeaderCell
	Rows    []GridRow

	// Selection summary
	SelectAllURL  safehtml.URL
	AllSelected   bool
	SomeSelected  bool // Selected but not all, for the indeterminate checkbox
	SelectedCount int

	// Pagination info
	TotalRows     int  // Total number of rows in the table
	DisplayedRows int  // Number of rows actually displayed
	HasMoreRows   bool // True if there are more rows than displayed
	CurrentLimit  int  // Current row limit
	ShowAllURL    safehtml.URL

	Hover *HoverMenu
	Edit  *EditForm

	// Timing information
	RenderTimeMs    string
	TimingBreakdown []TimingEntry
}

// HeaderCell is one column header
type HeaderCell struct {
	Text          string
	Style         safehtml.Style
	Sortable      bool
	SortURL       safehtml.URL
	SortIndicator string // "▲", "▼" or empty
	WidenURL      safehtml.URL
	NarrowURL     safehtml.URL
}

// GridRow is one rendered row
type GridRow struct {
	Index          int // View row
	Selected       bool
	Hovered        bool
	Tooltip        string
	ToggleURL      safehtml.URL
	ShiftToggleURL safehtml.URL
	HoverURL       safehtml.URL
	Cells          []GridCell
}

// GridCell is one rendered cell
type GridCell struct {
	Text     string
	Style    safehtml.Style
	Editing  bool
	Editable bool
	ClickURL safehtml.URL
	EditURL  safehtml.URL
}

// HoverMenu is the floating action menu of the hovered row
type HoverMenu struct {
	Row      int
	Actions  []MenuAction
	LeaveURL safehtml.URL
}

// MenuAction is a link in the hover menu
type MenuAction struct {
	Label string
	URL   safehtml.URL
}

// EditForm carries the fields of the inline editor form. The form submits
// with GET, so everything the server needs travels as an input field.
type EditForm struct {
	Action    safehtml.URL
	Table     string
	Limit     int
	Row       int
	Col       int
	Value     string
	CancelURL safehtml.URL
}

// TimingEntry represents a single timing measurement
type TimingEntry struct {
	Operation  string
	DurationMs string
}

// TableInfo describes a dataset on the landing page
type TableInfo struct {
	Name        string
	DisplayName string
	Description string
	URL         safehtml.URL
}

// LandingViewModel contains the data for the landing page
type LandingViewModel struct {
	Title    string
	Subtitle string
	Tables   []TableInfo
}

// BuildViewModel builds the template model for a grid snapshot
func BuildViewModel(v tables.View, title string, q *query.Query) GridViewModel {
	base := q.Base()
	vm := GridViewModel{
		Title:         title,
		Table:         q.Table,
		CurrentURL:    base.ToSafeURL(),
		SelectAllURL:  base.WithSelectAll(),
		AllSelected:   v.AllSelected,
		SomeSelected:  v.SelectedCount > 0 && !v.AllSelected,
		SelectedCount: v.SelectedCount,
		TotalRows:     len(v.Rows),
		CurrentLimit:  q.Limit,
		ShowAllURL:    base.WithLimit(0),
	}

	styles := make([]safehtml.Style, len(v.Headers))
	for i, h := range v.Headers {
		styles[i] = WidthStyle(h.Width)
		cell := HeaderCell{
			Text:      h.Text,
			Style:     styles[i],
			Sortable:  h.Sortable,
			WidenURL:  base.WithResize(i, resizeStep),
			NarrowURL: base.WithResize(i, -resizeStep),
		}
		if h.Sortable {
			cell.SortURL = base.WithSort(i)
		}
		if h.Sorted {
			cell.SortIndicator = "▲"
			if h.Direction == tables.Descending {
				cell.SortIndicator = "▼"
			}
		}
		vm.Headers = append(vm.Headers, cell)
	}

	rows := v.Rows
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
		vm.HasMoreRows = true
	}
	vm.DisplayedRows = len(rows)

	for r, row := range rows {
		gr := GridRow{
			Index:          r,
			Selected:       row.Selected,
			Hovered:        row.Hovered,
			Tooltip:        row.Tooltip,
			ToggleURL:      base.WithToggle(r, false),
			ShiftToggleURL: base.WithToggle(r, true),
			HoverURL:       base.WithHover(r),
		}
		for c, cell := range row.Cells {
			gc := GridCell{
				Text:     cell.Text,
				Editing:  cell.Editing,
				Editable: cell.Editable,
				ClickURL: base.WithClick(r, c),
			}
			if c < len(styles) {
				gc.Style = styles[c]
			}
			if cell.Editable {
				gc.EditURL = base.WithEdit(r, c)
			}
			gr.Cells = append(gr.Cells, gc)
		}
		vm.Rows = append(vm.Rows, gr)
	}

	if v.Hover != nil && v.Hover.Row < len(rows) {
		menu := &HoverMenu{Row: v.Hover.Row, LeaveURL: base.WithLeave()}
		for _, a := range v.Hover.Actions {
			menu.Actions = append(menu.Actions, MenuAction{Label: a.Label, URL: base.WithRun(v.Hover.Row, a.ID)})
		}
		vm.Hover = menu
	}

	if v.Editing != nil {
		vm.Edit = &EditForm{
			Action:    safehtml.URLSanitized(q.Path),
			Table:     q.Table,
			Limit:     q.Limit,
			Row:       v.Editing.Row,
			Col:       v.Editing.Col,
			Value:     v.EditBuffer,
			CancelURL: base.WithCancel(),
		}
	}

	return vm
}

// WidthStyle is the inline style fixing a column to w pixels.
func WidthStyle(w float64) safehtml.Style {
	return safehtml.StyleFromProperties(safehtml.StyleProperties{
		Width: fmt.Sprintf("%.0fpx", w),
	})
}
