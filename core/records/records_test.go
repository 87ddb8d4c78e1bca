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

package records

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type product struct {
	SKU   string  `grid:"sku"`
	Name  string
	Price float64 `grid:"price"`
	Stock uint32
	Tags  []string
	hidden int
}

func TestCloneRecordIsDeep(t *testing.T) {
	orig := Record{"name": "A", "tags": []any{"x"}, "nested": map[string]any{"k": 1}}
	c := Clone(orig)

	c["name"] = "B"
	c["tags"].([]any)[0] = "y"
	c["nested"].(map[string]any)["k"] = 2

	want := Record{"name": "A", "tags": []any{"x"}, "nested": map[string]any{"k": 1}}
	if diff := cmp.Diff(want, orig); diff != "" {
		t.Errorf("original mutated through clone (-want +got):\n%s", diff)
	}
}

func TestClonePointerToStruct(t *testing.T) {
	orig := &product{SKU: "p1", Name: "Lamp"}
	c := Clone(orig)
	if c == orig {
		t.Fatal("Expected a new pointer")
	}
	c.Name = "Desk"
	if orig.Name != "Lamp" {
		t.Errorf("original mutated: %q", orig.Name)
	}
}

func TestEqual(t *testing.T) {
	a := &product{SKU: "p1"}
	b := &product{SKU: "p1"}

	if !Equal(a, a) {
		t.Error("pointer must equal itself")
	}
	if Equal(a, b) {
		t.Error("distinct pointers are distinct records")
	}
	r := Record{"a": 1}
	if !Equal(r, r) {
		t.Error("map must equal itself")
	}
	if Equal(r, Record{"a": 1}) {
		t.Error("distinct maps with equal contents are distinct records")
	}
	if Equal(Record{"a": 1}, Record{"a": 2}) {
		t.Error("different maps must differ")
	}
	s := []int{1, 2, 3}
	if !Equal(s, s) || Equal(s, s[:2]) || Equal(s, []int{1, 2, 3}) {
		t.Error("slices compare by backing array and length")
	}
	if Equal[any](1, int64(1)) {
		t.Error("values of different types must differ")
	}
	if !Equal[any](nil, nil) {
		t.Error("nil equals nil")
	}
}

func TestSetFieldMap(t *testing.T) {
	rec := Record{"name": "A"}
	got, err := SetField(rec, "name", "B")
	if err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if got["name"] != "B" {
		t.Errorf("Expected B, got %v", got["name"])
	}
}

func TestSetFieldStruct(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		check   func(p *product) bool
		wantErr bool
	}{
		{"tag match", "price", 9.5, func(p *product) bool { return p.Price == 9.5 }, false},
		{"name match ignores case", "NAME", "Desk", func(p *product) bool { return p.Name == "Desk" }, false},
		{"string to uint", "stock", "12", func(p *product) bool { return p.Stock == 12 }, false},
		{"float to uint", "stock", float64(7), func(p *product) bool { return p.Stock == 7 }, false},
		{"number to string", "sku", 42.0, func(p *product) bool { return p.SKU == "42" }, false},
		{"unknown key", "color", "red", nil, true},
		{"unexported field", "hidden", 1, nil, true},
		{"negative uint", "stock", -1.0, nil, true},
		{"bad number", "price", "cheap", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &product{}
			got, err := SetField(p, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetField() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(got) {
				t.Errorf("field not updated: %+v", got)
			}
		})
	}
}

func TestSetFieldStructValue(t *testing.T) {
	orig := product{Name: "Lamp"}
	got, err := SetField(orig, "name", "Desk")
	if err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if got.Name != "Desk" || orig.Name != "Lamp" {
		t.Errorf("Expected copy updated and original kept, got %q / %q", got.Name, orig.Name)
	}
}

func TestGet(t *testing.T) {
	if v, ok := Get(Record{"a": 1}, "a"); !ok || v != 1 {
		t.Errorf("Get(map) = %v, %v", v, ok)
	}
	if v, ok := Get(&product{Price: 3}, "price"); !ok || v != 3.0 {
		t.Errorf("Get(struct) = %v, %v", v, ok)
	}
	if _, ok := Get(&product{}, "missing"); ok {
		t.Error("Expected missing field to report false")
	}
	if _, ok := Get(42, "x"); ok {
		t.Error("Expected scalar to report false")
	}
}
