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

package query

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, raw string) *Query {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return NewQuery(u)
}

func TestNewQueryDefaults(t *testing.T) {
	q := parse(t, "/grid?table=people")
	want := &Query{Path: "/grid", Table: "people", Row: -1, Col: -1}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestNewQueryIgnoresMalformedNumbers(t *testing.T) {
	q := parse(t, "/grid?table=people&row=x&col=&limit=-4&delta=wide&shift=maybe")
	if q.Row != -1 || q.Col != -1 || q.Limit != 0 || q.Delta != 0 || q.Shift {
		t.Errorf("malformed parameters leaked into %+v", q)
	}
}

func TestActionURLsRoundTrip(t *testing.T) {
	base := parse(t, "/grid?table=people&limit=10&action=sort&col=3")

	tests := []struct {
		name string
		url  string
		want *Query
	}{
		{
			"sort",
			base.WithSort(1).String(),
			&Query{Path: "/grid", Table: "people", Limit: 10, Action: ActionSort, Row: -1, Col: 1},
		},
		{
			"shift toggle",
			base.WithToggle(4, true).String(),
			&Query{Path: "/grid", Table: "people", Limit: 10, Action: ActionToggle, Row: 4, Col: -1, Shift: true},
		},
		{
			"select all",
			base.WithSelectAll().String(),
			&Query{Path: "/grid", Table: "people", Limit: 10, Action: ActionSelectAll, Row: -1, Col: -1},
		},
		{
			"edit",
			base.WithEdit(2, 0).String(),
			&Query{Path: "/grid", Table: "people", Limit: 10, Action: ActionEdit, Row: 2, Col: 0},
		},
		{
			"resize",
			base.WithResize(0, -25.5).String(),
			&Query{Path: "/grid", Table: "people", Limit: 10, Action: ActionResize, Row: -1, Col: 0, Delta: -25.5},
		},
		{
			"run",
			base.WithRun(1, "email me").String(),
			&Query{Path: "/grid", Table: "people", Limit: 10, Action: ActionRun, Row: 1, Col: -1, ID: "email me"},
		},
		{
			"limit",
			base.WithLimit(5).String(),
			&Query{Path: "/grid", Table: "people", Limit: 5, Row: -1, Col: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parse(t, tt.url)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToURLKeepsCommitValue(t *testing.T) {
	q := &Query{Path: "/grid", Table: "t", Action: ActionCommit, Row: 0, Col: 1, Value: "a&b=c", X: 1, Y: 2}
	got := parse(t, q.ToURL())
	if diff := cmp.Diff(q, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	q := parse(t, "/grid?table=people")
	c := q.Clone()
	c.Table = "products"
	if q.Table != "people" {
		t.Error("Clone shares state with the original")
	}
}

func TestActionKnown(t *testing.T) {
	if !ActionCommit.Known() || !ActionNone.Known() {
		t.Error("defined actions must be known")
	}
	if Action("explode").Known() {
		t.Error("undefined action reported as known")
	}
}
