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

// Package tables implements the grid controller: a generic table over host
// row records that owns sort, selection anchor, column width, hover, click
// and edit state. All operations are synchronous and never fail; bad input
// degrades to a no-op and a logged warning.
//
// Event callbacks (OnRowClick, OnRowDoubleClick, OnRowSelect, OnCellChange,
// OnSortChange, OnInvalidate), row actions, Tooltip and Actions run after
// the table's lock has been released, so they may call back into the
// table. Every other hook runs with the table locked and must not: Format,
// Clone, Equal, SetField, the Measurer and the columns' Render, SortValue
// and FormatHeader, which widths and sorting are derived from.
package tables

import (
	"sync"
	"time"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/clock"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/measure"
	"github.com/google/tabula/core/records"
)

// Limits bounds column widths and sets the interaction delays.
type Limits struct {
	MinColumnWidth float64
	MaxColumnWidth float64
	CellPadding    float64
	ClickDelay     time.Duration
	HoverGrace     time.Duration
}

// DefaultLimits returns the stock bounds: widths auto-fit to [50, 300],
// clicks disambiguated within 200ms and hover kept for 100ms after leaving.
func DefaultLimits() Limits {
	return Limits{
		MinColumnWidth: 50,
		MaxColumnWidth: 300,
		CellPadding:    16,
		ClickDelay:     200 * time.Millisecond,
		HoverGrace:     100 * time.Millisecond,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MinColumnWidth <= 0 {
		l.MinColumnWidth = d.MinColumnWidth
	}
	if l.MaxColumnWidth <= 0 {
		l.MaxColumnWidth = d.MaxColumnWidth
	}
	if l.MaxColumnWidth < l.MinColumnWidth {
		l.MaxColumnWidth = l.MinColumnWidth
	}
	if l.CellPadding < 0 {
		l.CellPadding = 0
	}
	if l.ClickDelay <= 0 {
		l.ClickDelay = d.ClickDelay
	}
	if l.HoverGrace <= 0 {
		l.HoverGrace = d.HoverGrace
	}
	return l
}

// Action is one entry of the floating per-row action menu.
type Action struct {
	ID    string
	Label string
	Run   func()
}

// Point is a position in host coordinates.
type Point struct {
	X, Y float64
}

// PointerCapture registers global pointer listeners for the duration of a
// column resize drag. The returned release func unregisters them and is
// always called exactly once per Capture.
type PointerCapture interface {
	Capture(onMove func(x float64), onUp func()) (release func())
}

type noCapture struct{}

func (noCapture) Capture(func(float64), func()) func() { return func() {} }

// Config is everything a Table needs from its host.
type Config[T, D any] struct {
	Data []T
	// Format projects the whole row slice to display records. When nil,
	// T must also be D.
	Format       func(items []T) []D
	FormatHeader func(raw string) string
	Selected     []T
	Columns      []columns.Column[D]

	OnRowClick       func(item T)
	OnRowDoubleClick func(item T)
	OnRowSelect      func(selection []T)
	OnCellChange     func(row, col int, value string)
	OnSortChange     func(state SortState)
	// OnInvalidate runs after every state transition, including those
	// driven by timers.
	OnInvalidate func()

	Actions func(item T) []Action
	Tooltip func(item T) string

	// Clone, Equal and SetField are called with the table locked.
	Clone    func(item T) T
	Equal    func(a, b T) bool
	SetField func(item T, key string, value any) (T, error)

	Measurer measure.Measurer
	Clock    clock.Clock
	Logger   logging.Logger
	Limits   Limits
	Capture  PointerCapture
}

// CellRef addresses one cell by view row and column.
type CellRef struct {
	Row, Col int
}

// Row pairs a host record with its display record.
type Row[T, D any] struct {
	// Index is the position of the record in the host's data.
	Index int
	Orig  T
	Disp  D
}

// Table is the grid controller. The zero value is not usable; use NewTable.
type Table[T, D any] struct {
	mu sync.Mutex

	cfg    Config[T, D]
	limits Limits
	log    logging.Logger
	clock  clock.Clock

	data     []T
	work     []T
	disp     []D
	order    []int
	selected []T

	cols      []columns.Column[D]
	signature string
	widths    map[int]float64

	sort   *SortState
	anchor int

	hover  hoverState
	click  clickState
	resize *resizeSession

	editor  cells.Editor
	editing *editRef

	closed bool
}

// NewTable initializes a grid: it clones the data into the working copy,
// projects it and auto-fits column widths.
func NewTable[T, D any](cfg Config[T, D]) *Table[T, D] {
	if cfg.Clone == nil {
		cfg.Clone = records.Clone[T]
	}
	if cfg.Equal == nil {
		cfg.Equal = records.Equal[T]
	}
	if cfg.SetField == nil {
		cfg.SetField = records.SetField[T]
	}
	if cfg.Measurer == nil {
		cfg.Measurer = measure.NewFontMeasurer(nil)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New(logging.Options{Level: "warn"})
	}
	if cfg.Capture == nil {
		cfg.Capture = noCapture{}
	}

	t := &Table[T, D]{
		cfg:      cfg,
		limits:   cfg.Limits.withDefaults(),
		log:      cfg.Logger,
		clock:    cfg.Clock,
		selected: append([]T(nil), cfg.Selected...),
		cols:     append([]columns.Column[D](nil), cfg.Columns...),
		anchor:   -1,
		hover:    hoverState{row: -1},
	}
	t.loadLocked(cfg.Data)
	t.signature = columns.HeaderSignature(t.cols)
	t.fitWidthsLocked()
	return t
}

// NewStandalone creates a table for hosts that keep no selection of their
// own: every emitted selection is fed straight back through SetSelection
// before the host's OnRowSelect runs.
func NewStandalone[T, D any](cfg Config[T, D]) *Table[T, D] {
	var t *Table[T, D]
	onSelect := cfg.OnRowSelect
	cfg.OnRowSelect = func(selection []T) {
		t.SetSelection(selection)
		if onSelect != nil {
			onSelect(selection)
		}
	}
	t = NewTable(cfg)
	return t
}

// SetData replaces the dataset. The working copy is re-cloned, which drops
// local edits, and the edit session and selection anchor are reset. Sort
// state and column widths are kept.
func (t *Table[T, D]) SetData(data []T) {
	var ev events
	t.mu.Lock()
	if t.editing != nil {
		t.editor = cells.Editor{}
		t.editing = nil
	}
	t.anchor = -1
	t.clearHoverLocked()
	t.loadLocked(data)
	t.invalidateLocked(&ev)
	t.mu.Unlock()
	ev.fire()
}

// SetColumns replaces the column descriptors. Widths are re-measured only
// when the header strings changed.
func (t *Table[T, D]) SetColumns(cols []columns.Column[D]) {
	var ev events
	t.mu.Lock()
	t.cols = append([]columns.Column[D](nil), cols...)
	if t.sort != nil && t.sort.Column >= len(t.cols) {
		t.sort = nil
	}
	if t.editing != nil && t.editing.col >= len(t.cols) {
		t.editor = cells.Editor{}
		t.editing = nil
	}
	if sig := columns.HeaderSignature(t.cols); sig != t.signature {
		t.signature = sig
		t.fitWidthsLocked()
	}
	t.reorderLocked()
	t.invalidateLocked(&ev)
	t.mu.Unlock()
	ev.fire()
}

// SetSelection feeds back the selection owned by the host.
func (t *Table[T, D]) SetSelection(selection []T) {
	var ev events
	t.mu.Lock()
	t.selected = append([]T(nil), selection...)
	t.invalidateLocked(&ev)
	t.mu.Unlock()
	ev.fire()
}

// Len returns the number of rows.
func (t *Table[T, D]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// Rows returns the (host record, display record) pairs in view order.
func (t *Table[T, D]) Rows() []Row[T, D] {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]Row[T, D], 0, len(t.order))
	for _, i := range t.order {
		rows = append(rows, Row[T, D]{Index: i, Orig: t.data[i], Disp: t.disp[i]})
	}
	return rows
}

// Working returns a snapshot of the working copy in data order.
func (t *Table[T, D]) Working() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.work...)
}

// Close stops pending timers and releases any resize listeners. The table
// ignores timer callbacks after Close.
func (t *Table[T, D]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.disarmClickLocked()
	t.stopHoverTimerLocked()
	t.endResizeLocked()
}

// loadLocked installs a new dataset and derives everything from it.
func (t *Table[T, D]) loadLocked(data []T) {
	t.data = data
	t.work = make([]T, len(data))
	for i, item := range data {
		t.work[i] = t.cfg.Clone(item)
	}
	t.projectLocked()
}

// projectLocked re-derives display records from the working copy. A
// projection that fails leaves the table empty.
func (t *Table[T, D]) projectLocked() {
	disp, err := columns.Project(t.work, t.cfg.Format)
	if err != nil {
		t.log.Errorf("Projection failed, rendering no rows: %v", err)
		t.disp = nil
		t.order = nil
		return
	}
	t.disp = disp
	t.reorderLocked()
}

func (t *Table[T, D]) header(col int) string {
	raw := t.cols[col].Header
	if t.cfg.FormatHeader != nil {
		return t.cfg.FormatHeader(raw)
	}
	return raw
}

func (t *Table[T, D]) validRow(viewRow int) bool {
	return viewRow >= 0 && viewRow < len(t.order)
}

func (t *Table[T, D]) validCol(col int) bool {
	return col >= 0 && col < len(t.cols)
}

// events collects host callbacks while the lock is held.
type events []func()

func (e *events) add(f func()) {
	*e = append(*e, f)
}

func (e events) fire() {
	for _, f := range e {
		f()
	}
}

func (t *Table[T, D]) invalidateLocked(ev *events) {
	if t.cfg.OnInvalidate != nil {
		ev.add(t.cfg.OnInvalidate)
	}
}
