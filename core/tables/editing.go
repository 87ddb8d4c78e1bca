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
	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/records"
)

// editRef points at the cell being edited by data index, so the session
// survives a re-sort.
type editRef struct {
	index int
	col   int
}

// BeginEdit puts a cell into edit mode with the buffer seeded from the
// record field under the column's header. Read-only columns and the cell already being edited are
// ignored. Editing another cell first commits the current one.
func (t *Table[T, D]) BeginEdit(viewRow, col int) {
	var ev events
	t.mu.Lock()
	t.beginEditLocked(viewRow, col, &ev)
	t.mu.Unlock()
	ev.fire()
}

func (t *Table[T, D]) beginEditLocked(viewRow, col int, ev *events) {
	if !t.validRow(viewRow) || !t.validCol(col) {
		t.log.Warnf("Ignoring edit of unknown cell (%d, %d)", viewRow, col)
		return
	}
	c := t.cols[col]
	if !c.IsEditable() {
		return
	}
	index := t.order[viewRow]
	if t.editing != nil {
		if t.editing.index == index && t.editing.col == col {
			return
		}
		t.commitLocked(ev)
		// The commit may have re-sorted the view.
		if !t.validRow(viewRow) {
			return
		}
		index = t.order[viewRow]
	}

	t.editor.Begin(t.editValueLocked(index, c), c.Input)
	t.editing = &editRef{index: index, col: col}
	t.invalidateLocked(ev)
}

// editValueLocked seeds the editor from the working record field that a
// commit writes to, so the input is inferred from the stored type rather
// than from the rendered text. Columns without a matching field fall back
// to their rendered value.
func (t *Table[T, D]) editValueLocked(index int, c columns.Column[D]) any {
	if c.Header != "" && index < len(t.work) {
		if v, ok := records.Get(t.work[index], c.Header); ok {
			return v
		}
	}
	return c.Value(t.disp[index])
}

// EditInput replaces the uncommitted buffer.
func (t *Table[T, D]) EditInput(text string) {
	var ev events
	t.mu.Lock()
	if t.editing != nil {
		t.editor.SetBuffer(text)
		t.invalidateLocked(&ev)
	}
	t.mu.Unlock()
	ev.fire()
}

// CommitEdit commits the buffer (Enter).
func (t *Table[T, D]) CommitEdit() {
	var ev events
	t.mu.Lock()
	t.commitLocked(&ev)
	t.mu.Unlock()
	ev.fire()
}

// Blur commits the buffer when focus leaves the editor.
func (t *Table[T, D]) Blur() {
	t.CommitEdit()
}

// CancelEdit discards the buffer (Escape).
func (t *Table[T, D]) CancelEdit() {
	var ev events
	t.mu.Lock()
	if t.editing != nil {
		_ = t.editor.Cancel()
		t.editing = nil
		t.invalidateLocked(&ev)
	}
	t.mu.Unlock()
	ev.fire()
}

// Editing returns the cell being edited in view coordinates.
func (t *Table[T, D]) Editing() (CellRef, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.editingRefLocked()
}

func (t *Table[T, D]) editingRefLocked() (CellRef, bool) {
	if t.editing == nil {
		return CellRef{}, false
	}
	for v, i := range t.order {
		if i == t.editing.index {
			return CellRef{Row: v, Col: t.editing.col}, true
		}
	}
	return CellRef{}, false
}

// commitLocked writes the parsed buffer into the working copy under the
// column's header key. Parse failures, a missing header and records that
// reject the key are logged and the edit is dropped.
func (t *Table[T, D]) commitLocked(ev *events) {
	ref := t.editing
	if ref == nil {
		return
	}
	t.editing = nil
	t.invalidateLocked(ev)

	value, err := t.editor.Commit()
	if err != nil {
		t.log.Warnf("Dropping edit of row %d column %d: %v", ref.index, ref.col, err)
		return
	}
	if ref.index >= len(t.work) || !t.validCol(ref.col) {
		t.log.Warnf("Dropping edit of row %d column %d: cell no longer exists", ref.index, ref.col)
		return
	}
	key := t.cols[ref.col].Header
	if key == "" {
		t.log.Warnf("Dropping edit of row %d column %d: column has no header key", ref.index, ref.col)
		return
	}
	rec, err := t.cfg.SetField(t.work[ref.index], key, value)
	if err != nil {
		t.log.WithField("header", key).Warnf("Dropping edit of row %d: %v", ref.index, err)
		return
	}
	t.work[ref.index] = rec
	t.projectLocked()

	if t.cfg.OnCellChange != nil {
		cb, row, col, text := t.cfg.OnCellChange, ref.index, ref.col, cells.Serialize(value)
		ev.add(func() { cb(row, col, text) })
	}
}
