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
	"sort"

	"github.com/google/tabula/core/columns"
)

// Direction is the sort direction of the active column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState is the active sort column and direction.
type SortState struct {
	Column    int
	Direction Direction
}

// SortBy handles a header click. Clicking a new column sorts it ascending
// and clicking the active column flips the direction; there is no way back
// to the unsorted order. Non-sortable columns and columns whose first row
// has no comparable key are ignored without any callback.
func (t *Table[T, D]) SortBy(col int) {
	var ev events
	t.mu.Lock()
	t.sortByLocked(col, &ev)
	t.mu.Unlock()
	ev.fire()
}

func (t *Table[T, D]) sortByLocked(col int, ev *events) {
	if !t.validCol(col) {
		t.log.Warnf("Ignoring sort on unknown column %d", col)
		return
	}
	c := t.cols[col]
	if !c.IsSortable() {
		return
	}
	if len(t.disp) == 0 || !columns.DeriveSortKey(c, t.disp[0]).Comparable() {
		t.log.Debugf("Column %q has no comparable values, not sorting", c.Header)
		return
	}

	next := SortState{Column: col, Direction: Ascending}
	if t.sort != nil && t.sort.Column == col && t.sort.Direction == Ascending {
		next.Direction = Descending
	}
	t.sort = &next
	t.reorderLocked()

	if t.cfg.OnSortChange != nil {
		cb := t.cfg.OnSortChange
		ev.add(func() { cb(next) })
	}
	t.invalidateLocked(ev)
}

// Sort returns the active sort state, or nil before the first sort.
func (t *Table[T, D]) Sort() *SortState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sort == nil {
		return nil
	}
	s := *t.sort
	return &s
}

// reorderLocked recomputes the view order from data order. The sort is
// stable in both directions: rows with equal keys keep their data order.
func (t *Table[T, D]) reorderLocked() {
	order := make([]int, len(t.disp))
	for i := range order {
		order[i] = i
	}
	if t.sort == nil || !t.validCol(t.sort.Column) {
		t.order = order
		return
	}

	c := t.cols[t.sort.Column]
	keys := make([]columns.SortKey, len(t.disp))
	for i, d := range t.disp {
		keys[i] = columns.DeriveSortKey(c, d)
	}
	descending := t.sort.Direction == Descending
	sort.SliceStable(order, func(i, j int) bool {
		cmp := columns.CompareKeys(keys[order[i]], keys[order[j]])
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	t.order = order
}
