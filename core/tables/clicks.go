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

// clickState is the click disambiguation machine:
//
//	IDLE --click--> ARMED --delay elapsed--> IDLE (single click fires)
//	                ARMED --click same row--> IDLE (double click fires)
//	                ARMED --click other row--> ARMED (pending single click fires)
type clickState struct {
	armed bool
	index int
	timer clock.Timer
	seq   int
}

// ClickRow handles a click on a view row. It reports whether the click
// completed a double click.
func (t *Table[T, D]) ClickRow(viewRow int) bool {
	var ev events
	t.mu.Lock()
	double := t.clickLocked(viewRow, &ev)
	t.mu.Unlock()
	ev.fire()
	return double
}

// ClickCell is ClickRow for a specific cell. A double click also starts
// editing that cell.
func (t *Table[T, D]) ClickCell(viewRow, col int) bool {
	var ev events
	t.mu.Lock()
	double := t.clickLocked(viewRow, &ev)
	if double {
		t.beginEditLocked(viewRow, col, &ev)
	}
	t.mu.Unlock()
	ev.fire()
	return double
}

func (t *Table[T, D]) clickLocked(viewRow int, ev *events) bool {
	if !t.validRow(viewRow) {
		t.log.Warnf("Ignoring click on unknown row %d", viewRow)
		return false
	}
	index := t.order[viewRow]

	if t.click.armed {
		pending := t.click.index
		t.disarmClickLocked()
		if pending == index {
			if t.cfg.OnRowDoubleClick != nil {
				cb, item := t.cfg.OnRowDoubleClick, t.data[index]
				ev.add(func() { cb(item) })
			}
			return true
		}
		t.emitClickLocked(pending, ev)
	}

	if t.closed {
		return false
	}
	t.click.armed = true
	t.click.index = index
	t.click.seq++
	seq := t.click.seq
	t.click.timer = t.clock.AfterFunc(t.limits.ClickDelay, func() {
		var ev events
		t.mu.Lock()
		if t.click.armed && t.click.seq == seq && !t.closed {
			t.disarmClickLocked()
			t.emitClickLocked(index, &ev)
		}
		t.mu.Unlock()
		ev.fire()
	})
	return false
}

func (t *Table[T, D]) emitClickLocked(index int, ev *events) {
	if t.cfg.OnRowClick == nil || index >= len(t.data) {
		return
	}
	cb, item := t.cfg.OnRowClick, t.data[index]
	ev.add(func() { cb(item) })
}

func (t *Table[T, D]) disarmClickLocked() {
	if t.click.timer != nil {
		t.click.timer.Stop()
		t.click.timer = nil
	}
	t.click.armed = false
	t.click.seq++
}
