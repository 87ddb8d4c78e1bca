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

// Package cells implements the inline cell editor: a transient text buffer
// that is independent of the committed value until Enter or blur.
package cells

import "errors"

// State is the editor mode.
type State int

const (
	Display State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "display"
}

// ErrNotEditing is returned by Commit and Cancel outside of edit mode.
var ErrNotEditing = errors.New("cell is not being edited")

// Editor is the state machine for one cell:
//
//	Display --Begin--> Editing --Commit--> Display
//	                   Editing --Cancel--> Display
//
// OnChange runs exactly once per successful commit and OnCancel exactly once
// per cancel. Neither runs on buffer updates.
type Editor struct {
	OnChange func(value any)
	OnCancel func()

	state  State
	input  Input
	buffer string
}

// State returns the current mode.
func (e *Editor) State() State {
	return e.state
}

// Buffer returns the uncommitted text.
func (e *Editor) Buffer() string {
	return e.buffer
}

// Begin enters edit mode with the buffer initialized from value. A nil input
// is inferred from the value's type. Calling Begin while editing restarts the
// session and discards the buffer.
func (e *Editor) Begin(value any, input Input) {
	if input == nil {
		input = InputFor(value)
	}
	e.input = input
	e.buffer = input.Format(value)
	e.state = Editing
}

// SetBuffer replaces the uncommitted text. Ignored outside edit mode.
func (e *Editor) SetBuffer(text string) {
	if e.state != Editing {
		return
	}
	e.buffer = text
}

// Commit parses the buffer and returns to display mode. On a parse error the
// editor still leaves edit mode but OnChange is not called.
func (e *Editor) Commit() (any, error) {
	if e.state != Editing {
		return nil, ErrNotEditing
	}
	e.state = Display
	value, err := e.input.Parse(e.buffer)
	e.buffer = ""
	if err != nil {
		return nil, err
	}
	if e.OnChange != nil {
		e.OnChange(value)
	}
	return value, nil
}

// Cancel discards the buffer and returns to display mode.
func (e *Editor) Cancel() error {
	if e.state != Editing {
		return ErrNotEditing
	}
	e.state = Display
	e.buffer = ""
	if e.OnCancel != nil {
		e.OnCancel()
	}
	return nil
}
