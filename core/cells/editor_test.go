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

package cells

import (
	"errors"
	"testing"
)

type recorder struct {
	changes []any
	cancels int
}

func (r *recorder) editor() *Editor {
	return &Editor{
		OnChange: func(v any) { r.changes = append(r.changes, v) },
		OnCancel: func() { r.cancels++ },
	}
}

func TestEscapeKeepsValue(t *testing.T) {
	r := &recorder{}
	e := r.editor()

	e.Begin("foo", nil)
	if e.Buffer() != "foo" {
		t.Fatalf("Expected buffer foo, got %q", e.Buffer())
	}
	e.SetBuffer("b")
	e.SetBuffer("ba")
	e.SetBuffer("bar")
	if err := e.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if len(r.changes) != 0 {
		t.Errorf("Cancel must not call OnChange, got %v", r.changes)
	}
	if r.cancels != 1 {
		t.Errorf("Expected exactly one OnCancel, got %d", r.cancels)
	}
	if e.State() != Display {
		t.Errorf("Expected display state, got %v", e.State())
	}
}

func TestEnterCommitsOnce(t *testing.T) {
	r := &recorder{}
	e := r.editor()

	e.Begin("foo", nil)
	e.SetBuffer("b")
	e.SetBuffer("bar")
	v, err := e.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if v != "bar" {
		t.Errorf("Expected bar, got %v", v)
	}
	if len(r.changes) != 1 || r.changes[0] != "bar" {
		t.Errorf("Expected one change to bar, got %v", r.changes)
	}
	if r.cancels != 0 {
		t.Errorf("Commit must not call OnCancel")
	}
	if e.State() != Display {
		t.Errorf("Expected display state after commit")
	}

	// A second Enter outside edit mode does nothing.
	if _, err := e.Commit(); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Expected ErrNotEditing, got %v", err)
	}
	if len(r.changes) != 1 {
		t.Errorf("Expected still one change, got %d", len(r.changes))
	}
}

func TestNumericCellParsesAtCommit(t *testing.T) {
	r := &recorder{}
	e := r.editor()

	e.Begin(12, nil)
	if e.Buffer() != "12" {
		t.Fatalf("Expected buffer 12, got %q", e.Buffer())
	}
	e.SetBuffer(" 12.5 ")
	v, err := e.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if v != 12.5 {
		t.Errorf("Expected float 12.5, got %#v", v)
	}
}

func TestNumericCellRejectsGarbage(t *testing.T) {
	r := &recorder{}
	e := r.editor()

	e.Begin(3.0, nil)
	e.SetBuffer("three")
	if _, err := e.Commit(); err == nil {
		t.Fatal("Expected parse error")
	}
	if len(r.changes) != 0 {
		t.Errorf("OnChange must not run for rejected input")
	}
	if e.State() != Display {
		t.Errorf("Expected editor to leave edit mode")
	}
}

func TestSetBufferIgnoredOutsideEditing(t *testing.T) {
	e := &Editor{}
	e.SetBuffer("x")
	if e.Buffer() != "" {
		t.Errorf("Expected empty buffer, got %q", e.Buffer())
	}
	if err := e.Cancel(); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Expected ErrNotEditing, got %v", err)
	}
}

func TestCustomInput(t *testing.T) {
	e := &Editor{}
	e.Begin("a,b", upperInput{})
	e.SetBuffer("x")
	v, _ := e.Commit()
	if v != "X" {
		t.Errorf("Expected custom parse result X, got %v", v)
	}
}

type upperInput struct{}

func (upperInput) Format(v any) string { return Serialize(v) }
func (upperInput) Parse(s string) (any, error) {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
	}
	return string(out), nil
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{12.0, "12"},
		{0.1, "0.1"},
		{int64(7), "7"},
		{true, "true"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Serialize(tt.in); got != tt.want {
			t.Errorf("Serialize(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
