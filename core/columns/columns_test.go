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

package columns

import (
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type person struct {
	Name string
	Age  int
}

type label string

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want SortKey
	}{
		{"string", "abc", SortKey{Kind: KindString, Str: "abc"}},
		{"named string", label("x"), SortKey{Kind: KindString, Str: "x"}},
		{"int", 3, SortKey{Kind: KindNumber, Num: 3}},
		{"uint32", uint32(9), SortKey{Kind: KindNumber, Num: 9}},
		{"float", 2.5, SortKey{Kind: KindNumber, Num: 2.5}},
		{"nil", nil, SortKey{}},
		{"struct", person{}, SortKey{}},
		{"time", time.Time{}, SortKey{}},
		{"bool", true, SortKey{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, KeyOf(tt.in)); diff != "" {
				t.Errorf("KeyOf(%#v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestDeriveSortKeyPrefersSortValue(t *testing.T) {
	col := Column[person]{
		Header:    "Name",
		Render:    func(p person) any { return "Mr. " + p.Name },
		SortValue: func(p person) any { return p.Name },
	}
	if got := DeriveSortKey(col, person{Name: "B"}); got.Str != "B" {
		t.Errorf("Expected SortValue key B, got %v", got)
	}

	col.SortValue = nil
	if got := DeriveSortKey(col, person{Name: "B"}); got.Str != "Mr. B" {
		t.Errorf("Expected rendered key, got %v", got)
	}
}

func TestCompareKeys(t *testing.T) {
	keys := []SortKey{
		{},
		KeyOf("b"),
		KeyOf(math.NaN()),
		KeyOf(10),
		KeyOf("a"),
		KeyOf(2),
	}
	sort.SliceStable(keys, func(i, j int) bool { return CompareKeys(keys[i], keys[j]) < 0 })

	var got []string
	for _, k := range keys {
		got = append(got, k.String())
	}
	want := []string{"2", "10", "NaN", "a", "b", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaults(t *testing.T) {
	var col Column[person]
	if !col.IsSortable() || !col.IsEditable() {
		t.Error("zero Column must be sortable and editable")
	}
	if col.Text(person{}) != "" {
		t.Error("Column without Render must render empty text")
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{3, "3"},
		{2.50, "2.5"},
		{nil, ""},
		{time.Duration(90) * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := DisplayText(tt.in); got != tt.want {
			t.Errorf("DisplayText(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProjectIdentity(t *testing.T) {
	items := []person{{Name: "A"}, {Name: "B"}}
	got, err := Project[person, person](items, nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("identity projection mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectWholeSlice(t *testing.T) {
	calls := 0
	format := func(ps []person) []string {
		calls++
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}
	got, err := Project([]person{{Name: "A"}, {Name: "B"}}, format)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected format to run once for the whole slice, ran %d times", calls)
	}
	if diff := cmp.Diff([]string{"A", "B"}, got); diff != "" {
		t.Errorf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectErrors(t *testing.T) {
	if _, err := Project[person, string]([]person{{}}, nil); err == nil {
		t.Error("Expected error for identity projection with mismatched types")
	}
	short := func(ps []person) []string { return nil }
	if _, err := Project([]person{{}}, short); err == nil {
		t.Error("Expected error for misaligned projection")
	}
}

func TestTitleHeader(t *testing.T) {
	tests := map[string]string{
		"unit_price": "Unit Price",
		"name":       "Name",
		"in-stock":   "In Stock",
		"SKU":        "SKU",
		"":           "",
	}
	for in, want := range tests {
		if got := TitleHeader(in); got != want {
			t.Errorf("TitleHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleHeaderConcurrent(t *testing.T) {
	const workers, calls = 8, 2000
	var wg sync.WaitGroup
	bad := make(chan string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				if got := TitleHeader("unit_price_total"); got != "Unit Price Total" {
					bad <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(bad)
	for got := range bad {
		t.Errorf("TitleHeader(%q) = %q under concurrent use, want %q", "unit_price_total", got, "Unit Price Total")
	}
}

func TestHeaderSignature(t *testing.T) {
	a := []Column[person]{{Header: "Name"}, {Header: "Age"}}
	b := []Column[person]{{Header: "Name", Width: 80}, {Header: "Age"}}
	c := []Column[person]{{Header: "NameAge"}}

	if HeaderSignature(a) != HeaderSignature(b) {
		t.Error("signature must only depend on headers")
	}
	if HeaderSignature(a) == HeaderSignature(c) {
		t.Error("signature must separate headers")
	}
}
