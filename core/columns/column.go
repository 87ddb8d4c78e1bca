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

// Package columns interprets column descriptors: display text, sort keys and
// the projection from row records to display records. Everything here is a
// pure function of its inputs.
package columns

import (
	"fmt"

	"github.com/google/tabula/core/cells"
)

// Column describes how one grid column renders, sorts and edits a display
// record of type D. The zero values of DisableSort and ReadOnly give a
// sortable, editable column.
type Column[D any] struct {
	// Header is the raw header key. It is also the field key used to write
	// committed edits back into the row record.
	Header string
	// Render produces the cell content.
	Render func(d D) any
	// SortValue optionally overrides the sort key derived from Render.
	SortValue func(d D) any
	// Width is an explicit pixel width; values > 0 skip measurement.
	Width float64

	DisableSort bool
	ReadOnly    bool

	// Input optionally replaces the editor inferred from the cell value.
	Input cells.Input
}

// IsSortable reports whether header clicks may sort by this column.
func (c Column[D]) IsSortable() bool {
	return !c.DisableSort
}

// IsEditable reports whether cells of this column may enter edit mode.
func (c Column[D]) IsEditable() bool {
	return !c.ReadOnly
}

// Value returns the rendered content of d, or nil without a Render func.
func (c Column[D]) Value(d D) any {
	if c.Render == nil {
		return nil
	}
	return c.Render(d)
}

// Text is the display string of d in this column.
func (c Column[D]) Text(d D) string {
	return DisplayText(c.Value(d))
}

// DisplayText stringifies rendered content.
func DisplayText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	if cells.IsNumber(v) {
		return cells.Serialize(v)
	}
	return fmt.Sprint(v)
}

// HeaderSignature identifies a column set by its header strings only.
// Width measurement is redone when the signature changes.
func HeaderSignature[D any](cols []Column[D]) string {
	sig := make([]byte, 0, 16*len(cols))
	for _, c := range cols {
		sig = append(sig, c.Header...)
		sig = append(sig, 0)
	}
	return string(sig)
}
