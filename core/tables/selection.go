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

// ToggleRowSelection handles a row checkbox click at a view position.
//
// Without shift, or before any plain click, the row's membership is flipped
// and the row becomes the anchor. With shift the inclusive range between
// the anchor and the row in the current view order is deselected when every
// item in it is already selected, otherwise its unselected items are added.
// A shift click leaves the anchor in place. The new selection is emitted
// through OnRowSelect; the table's own copy only changes via SetSelection.
func (t *Table[T, D]) ToggleRowSelection(viewRow int, shift bool) {
	var ev events
	t.mu.Lock()
	t.toggleLocked(viewRow, shift, &ev)
	t.mu.Unlock()
	ev.fire()
}

func (t *Table[T, D]) toggleLocked(viewRow int, shift bool, ev *events) {
	if !t.validRow(viewRow) {
		t.log.Warnf("Ignoring selection of unknown row %d", viewRow)
		return
	}

	var next []T
	if shift && t.validRow(t.anchor) {
		lo, hi := t.anchor, viewRow
		if lo > hi {
			lo, hi = hi, lo
		}
		span := make([]T, 0, hi-lo+1)
		for v := lo; v <= hi; v++ {
			span = append(span, t.data[t.order[v]])
		}
		all := true
		for _, item := range span {
			if !t.isSelectedLocked(item) {
				all = false
				break
			}
		}
		if all {
			next = t.withoutLocked(t.selected, span)
		} else {
			next = append([]T(nil), t.selected...)
			for _, item := range span {
				if !t.contains(next, item) {
					next = append(next, item)
				}
			}
		}
	} else {
		item := t.data[t.order[viewRow]]
		if t.isSelectedLocked(item) {
			next = t.withoutLocked(t.selected, []T{item})
		} else {
			next = append(append([]T(nil), t.selected...), item)
		}
		t.anchor = viewRow
	}

	t.emitSelectionLocked(next, ev)
}

// SelectAll toggles between no selection and the whole dataset, depending
// on whether the selection is as long as the data.
func (t *Table[T, D]) SelectAll() {
	var ev events
	t.mu.Lock()
	var next []T
	if len(t.selected) != len(t.data) {
		next = append([]T(nil), t.data...)
	} else {
		next = []T{}
	}
	t.emitSelectionLocked(next, &ev)
	t.mu.Unlock()
	ev.fire()
}

// Selection returns the selection last fed by the host.
func (t *Table[T, D]) Selection() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.selected...)
}

func (t *Table[T, D]) emitSelectionLocked(next []T, ev *events) {
	if t.cfg.OnRowSelect != nil {
		cb := t.cfg.OnRowSelect
		ev.add(func() { cb(next) })
	}
	t.invalidateLocked(ev)
}

// isSelectedLocked reports membership by host equality. Selected items that
// are not part of the data are tolerated and never match a row.
func (t *Table[T, D]) isSelectedLocked(item T) bool {
	return t.contains(t.selected, item)
}

func (t *Table[T, D]) contains(set []T, item T) bool {
	for _, s := range set {
		if t.cfg.Equal(s, item) {
			return true
		}
	}
	return false
}

func (t *Table[T, D]) withoutLocked(set, drop []T) []T {
	out := make([]T, 0, len(set))
	for _, s := range set {
		if !t.contains(drop, s) {
			out = append(out, s)
		}
	}
	return out
}
