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

package query

import (
	"net/url"
	"strconv"

	"github.com/google/safehtml"
)

// Action is a grid interaction encoded in a URL.
type Action string

const (
	ActionNone      Action = ""
	ActionSort      Action = "sort"
	ActionToggle    Action = "toggle"
	ActionSelectAll Action = "selectall"
	ActionClick     Action = "click"
	ActionEdit      Action = "edit"
	ActionCommit    Action = "commit"
	ActionCancel    Action = "cancel"
	ActionResize    Action = "resize"
	ActionHover     Action = "hover"
	ActionLeave     Action = "leave"
	ActionRun       Action = "run"
)

// Known reports whether a is one of the defined actions.
func (a Action) Known() bool {
	switch a {
	case ActionNone, ActionSort, ActionToggle, ActionSelectAll, ActionClick, ActionEdit,
		ActionCommit, ActionCancel, ActionResize, ActionHover, ActionLeave, ActionRun:
		return true
	}
	return false
}

// Query represents the parsed state of a grid URL
type Query struct {
	// Base path (e.g., "/grid")
	Path string

	// Core parameters
	Table string // The dataset being viewed
	Limit int    // Number of rows to display (0 = show all)

	// Action parameters
	Action Action
	Row    int // View row, -1 when absent
	Col    int // Column index, -1 when absent
	Shift  bool
	Value  string  // Committed editor text
	Delta  float64 // Resize delta in pixels
	X, Y   float64 // Hover anchor
	ID     string  // Row action id
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	// The URL comes from http.Request and is only used to extract parameters.
	q := u.Query()

	state := &Query{
		Path:   u.Path,
		Table:  q.Get("table"),
		Action: Action(q.Get("action")),
		Row:    intParam(q, "row", -1),
		Col:    intParam(q, "col", -1),
		Value:  q.Get("value"),
		Delta:  floatParam(q, "delta"),
		X:      floatParam(q, "x"),
		Y:      floatParam(q, "y"),
		ID:     q.Get("id"),
	}

	// Extract limit parameter
	if limit := intParam(q, "limit", 0); limit >= 0 {
		state.Limit = limit
	}

	if shift, err := strconv.ParseBool(q.Get("shift")); err == nil {
		state.Shift = shift
	}
	return state
}

func intParam(q url.Values, key string, def int) int {
	s := q.Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func floatParam(q url.Values, key string) float64 {
	f, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return 0
	}
	return f
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// Base returns a copy of the Query without its action.
func (s *Query) Base() *Query {
	return &Query{Path: s.Path, Table: s.Table, Limit: s.Limit, Row: -1, Col: -1}
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	// Add table parameter
	if s.Table != "" {
		q.Set("table", s.Table)
	}
	if s.Limit > 0 {
		q.Set("limit", strconv.Itoa(s.Limit))
	}

	if s.Action != ActionNone {
		q.Set("action", string(s.Action))
	}
	if s.Row >= 0 {
		q.Set("row", strconv.Itoa(s.Row))
	}
	if s.Col >= 0 {
		q.Set("col", strconv.Itoa(s.Col))
	}
	if s.Shift {
		q.Set("shift", "true")
	}
	if s.Value != "" {
		q.Set("value", s.Value)
	}
	if s.Delta != 0 {
		q.Set("delta", strconv.FormatFloat(s.Delta, 'f', -1, 64))
	}
	if s.X != 0 || s.Y != 0 {
		q.Set("x", strconv.FormatFloat(s.X, 'f', -1, 64))
		q.Set("y", strconv.FormatFloat(s.Y, 'f', -1, 64))
	}
	if s.ID != "" {
		q.Set("id", s.ID)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	urlStr := s.ToURL()
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(urlStr)
}

func (s *Query) with(a Action, row, col int) *Query {
	next := s.Base()
	next.Action = a
	next.Row = row
	next.Col = col
	return next
}

// WithSort returns a URL that clicks a column header
func (s *Query) WithSort(col int) safehtml.URL {
	return s.with(ActionSort, -1, col).ToSafeURL()
}

// WithToggle returns a URL that toggles a row's selection
func (s *Query) WithToggle(row int, shift bool) safehtml.URL {
	next := s.with(ActionToggle, row, -1)
	next.Shift = shift
	return next.ToSafeURL()
}

// WithSelectAll returns a URL for the select-all checkbox
func (s *Query) WithSelectAll() safehtml.URL {
	return s.with(ActionSelectAll, -1, -1).ToSafeURL()
}

// WithClick returns a URL that clicks a cell
func (s *Query) WithClick(row, col int) safehtml.URL {
	return s.with(ActionClick, row, col).ToSafeURL()
}

// WithEdit returns a URL that opens a cell's editor
func (s *Query) WithEdit(row, col int) safehtml.URL {
	return s.with(ActionEdit, row, col).ToSafeURL()
}

// WithCancel returns a URL that discards the open editor
func (s *Query) WithCancel() safehtml.URL {
	return s.with(ActionCancel, -1, -1).ToSafeURL()
}

// WithResize returns a URL that widens or narrows a column by delta pixels
func (s *Query) WithResize(col int, delta float64) safehtml.URL {
	next := s.with(ActionResize, -1, col)
	next.Delta = delta
	return next.ToSafeURL()
}

// WithHover returns a URL that shows a row's action menu
func (s *Query) WithHover(row int) safehtml.URL {
	return s.with(ActionHover, row, -1).ToSafeURL()
}

// WithLeave returns a URL that hides the action menu
func (s *Query) WithLeave() safehtml.URL {
	return s.with(ActionLeave, -1, -1).ToSafeURL()
}

// WithRun returns a URL that runs a row action
func (s *Query) WithRun(row int, id string) safehtml.URL {
	next := s.with(ActionRun, row, -1)
	next.ID = id
	return next.ToSafeURL()
}

// WithLimit returns a URL showing at most limit rows
func (s *Query) WithLimit(limit int) safehtml.URL {
	next := s.Base()
	next.Limit = limit
	return next.ToSafeURL()
}
