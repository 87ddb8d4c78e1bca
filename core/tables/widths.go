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
	"github.com/google/tabula/core/measure"
)

type resizeSession struct {
	col        int
	startX     float64
	startWidth float64
	release    func()
}

// fitWidthsLocked measures every column without an explicit width: the
// widest of its header and rendered cells plus padding, clamped to the
// auto-fit bounds.
func (t *Table[T, D]) fitWidthsLocked() {
	widths := make(map[int]float64, len(t.cols))
	for i, c := range t.cols {
		if c.Width > 0 {
			widths[i] = c.Width
			continue
		}
		texts := make([]string, len(t.disp))
		for j, d := range t.disp {
			texts[j] = c.Text(d)
		}
		widths[i] = measure.FitWidth(t.cfg.Measurer, t.header(i), texts,
			t.limits.CellPadding, t.limits.MinColumnWidth, t.limits.MaxColumnWidth)
	}
	t.widths = widths
}

// Widths returns the current pixel width of every column.
func (t *Table[T, D]) Widths() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]float64, len(t.cols))
	for i := range t.cols {
		out[i] = t.widths[i]
	}
	return out
}

// Resize changes a column width by delta pixels. The result is floored at
// the minimum width; there is no upper bound.
func (t *Table[T, D]) Resize(col int, delta float64) {
	var ev events
	t.mu.Lock()
	if t.validCol(col) {
		t.setWidthLocked(col, t.widths[col]+delta)
		t.invalidateLocked(&ev)
	} else {
		t.log.Warnf("Ignoring resize of unknown column %d", col)
	}
	t.mu.Unlock()
	ev.fire()
}

// BeginResize starts a drag on a column's resize handle at pointer x.
// Global pointer listeners are registered until EndResize or Close.
func (t *Table[T, D]) BeginResize(col int, x float64) {
	t.mu.Lock()
	if !t.validCol(col) {
		t.mu.Unlock()
		t.log.Warnf("Ignoring resize of unknown column %d", col)
		return
	}
	t.endResizeLocked()
	s := &resizeSession{col: col, startX: x, startWidth: t.widths[col]}
	t.resize = s
	t.mu.Unlock()

	// Capture may deliver events synchronously, so it runs unlocked.
	release := t.cfg.Capture.Capture(t.ResizeMove, t.EndResize)

	t.mu.Lock()
	if t.resize == s && !t.closed {
		s.release = release
		release = nil
	}
	t.mu.Unlock()
	if release != nil {
		release()
	}
}

// ResizeMove applies the accumulated drag delta since BeginResize.
func (t *Table[T, D]) ResizeMove(x float64) {
	var ev events
	t.mu.Lock()
	if s := t.resize; s != nil {
		t.setWidthLocked(s.col, s.startWidth+(x-s.startX))
		t.invalidateLocked(&ev)
	}
	t.mu.Unlock()
	ev.fire()
}

// EndResize finishes the drag and unregisters the pointer listeners.
func (t *Table[T, D]) EndResize() {
	var ev events
	t.mu.Lock()
	if t.resize != nil {
		t.endResizeLocked()
		t.invalidateLocked(&ev)
	}
	t.mu.Unlock()
	ev.fire()
}

// Resizing returns the column being dragged, or -1.
func (t *Table[T, D]) Resizing() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.resize == nil {
		return -1
	}
	return t.resize.col
}

func (t *Table[T, D]) endResizeLocked() {
	s := t.resize
	if s == nil {
		return
	}
	t.resize = nil
	if s.release != nil {
		s.release()
	}
}

func (t *Table[T, D]) setWidthLocked(col int, w float64) {
	if w < t.limits.MinColumnWidth {
		w = t.limits.MinColumnWidth
	}
	t.widths[col] = w
}
