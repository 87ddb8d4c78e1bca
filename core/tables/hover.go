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
	"github.com/google/tabula/core/clock"
)

type hoverState struct {
	row    int
	anchor Point
	held   bool
	timer  clock.Timer
	seq    int
}

// HoverRow marks a view row as hovered, anchoring the floating action
// affordance at the given point. Ignored while a pointer button is held.
func (t *Table[T, D]) HoverRow(viewRow int, anchor Point) {
	var ev events
	t.mu.Lock()
	if !t.hover.held && t.validRow(viewRow) {
		t.stopHoverTimerLocked()
		if t.hover.row != viewRow || t.hover.anchor != anchor {
			t.hover.row = viewRow
			t.hover.anchor = anchor
			t.invalidateLocked(&ev)
		}
	}
	t.mu.Unlock()
	ev.fire()
}

// LeaveRow schedules the hover to clear after the grace delay, giving the
// pointer time to travel into the affordance.
func (t *Table[T, D]) LeaveRow() {
	t.mu.Lock()
	t.scheduleHoverClearLocked()
	t.mu.Unlock()
}

// EnterAffordance keeps the hover alive while the pointer is over the
// floating action menu.
func (t *Table[T, D]) EnterAffordance() {
	t.mu.Lock()
	t.stopHoverTimerLocked()
	t.mu.Unlock()
}

// LeaveAffordance behaves like leaving the row.
func (t *Table[T, D]) LeaveAffordance() {
	t.LeaveRow()
}

// PointerDown records that a pointer button is held anywhere in the grid.
// The hover affordance is hidden until PointerUp.
func (t *Table[T, D]) PointerDown() {
	var ev events
	t.mu.Lock()
	if !t.hover.held {
		t.hover.held = true
		t.invalidateLocked(&ev)
	}
	t.mu.Unlock()
	ev.fire()
}

// PointerUp releases the hover suppression.
func (t *Table[T, D]) PointerUp() {
	var ev events
	t.mu.Lock()
	if t.hover.held {
		t.hover.held = false
		t.invalidateLocked(&ev)
	}
	t.mu.Unlock()
	ev.fire()
}

// Hovered returns the hovered view row, or -1. A row hovered while the
// pointer is held is reported as -1.
func (t *Table[T, D]) Hovered() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hover.held {
		return -1
	}
	return t.hover.row
}

// RunAction invokes a row action from the floating menu by id.
func (t *Table[T, D]) RunAction(viewRow int, id string) bool {
	t.mu.Lock()
	if !t.validRow(viewRow) || t.cfg.Actions == nil {
		t.mu.Unlock()
		return false
	}
	item := t.data[t.order[viewRow]]
	actions := t.cfg.Actions
	t.mu.Unlock()

	for _, a := range actions(item) {
		if a.ID == id && a.Run != nil {
			a.Run()
			return true
		}
	}
	t.log.Warnf("No action %q on row %d", id, viewRow)
	return false
}

func (t *Table[T, D]) scheduleHoverClearLocked() {
	if t.hover.row < 0 || t.closed {
		return
	}
	t.stopHoverTimerLocked()
	t.hover.seq++
	seq := t.hover.seq
	t.hover.timer = t.clock.AfterFunc(t.limits.HoverGrace, func() {
		var ev events
		t.mu.Lock()
		if !t.closed && t.hover.seq == seq && t.hover.timer != nil {
			t.hover.timer = nil
			t.hover.row = -1
			t.invalidateLocked(&ev)
		}
		t.mu.Unlock()
		ev.fire()
	})
}

func (t *Table[T, D]) stopHoverTimerLocked() {
	if t.hover.timer != nil {
		t.hover.timer.Stop()
		t.hover.timer = nil
	}
	t.hover.seq++
}

func (t *Table[T, D]) clearHoverLocked() {
	t.stopHoverTimerLocked()
	t.hover.row = -1
}
