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

// Package demo provides the sample datasets served by the tabula command.
package demo

import (
	"github.com/google/tabula/core/server"
)

// DefaultTransactions is the size of the generated transactions dataset.
const DefaultTransactions = 10_000

// NewProduct builds the demo product: two embedded CSV files, a typed
// inventory and a generated transactions table. Extra datasets, such as a
// CSV file named on the command line, are added after the built-in ones.
func NewProduct(extra ...server.Dataset) (*Product, error) {
	p := &Product{
		Name:     "demo",
		Title:    "Tabula Demo Grids",
		Subtitle: "Sort, select, resize and edit in place",
	}

	people, err := NewPeopleDataset()
	if err != nil {
		return nil, err
	}
	orders, err := NewOrdersDataset()
	if err != nil {
		return nil, err
	}
	p.Add(people)
	p.Add(orders)
	p.Add(NewInventory(DefaultItems()).Dataset())
	p.Add(NewTransactionsDataset(DefaultTransactions))
	for _, d := range extra {
		p.Add(d)
	}
	return p, nil
}
