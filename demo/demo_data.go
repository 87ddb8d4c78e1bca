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

package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/server"
)

//go:embed data/people.csv
var peopleCSV string

//go:embed data/orders.csv
var ordersCSV string

var tableOptions = map[string]csvimport.ImportOptions{
	"people": withSources(map[string]csvimport.CsvColumnSource{
		"email":  {DisplayName: "E-mail", ReadOnly: true},
		"salary": {Type: csvimport.CsvColumnTypeFloat64},
	}),
	"orders": withSources(map[string]csvimport.CsvColumnSource{
		"order_id":  {DisplayName: "Order #", ReadOnly: true},
		"amount":    {Type: csvimport.CsvColumnTypeFloat64},
		"placed":    {Type: csvimport.CsvColumnTypeDatetime, Layout: "Jan 2, 2006 15:04"},
		"lead_time": {Type: csvimport.CsvColumnTypeDuration},
	}),
}

func withSources(sources map[string]csvimport.CsvColumnSource) csvimport.ImportOptions {
	opts := csvimport.DefaultOptions()
	opts.ColumnSources = sources
	return opts
}

// importTable imports one embedded CSV with its column options.
func importTable(name, csv string) (*csvimport.Dataset, error) {
	options, ok := tableOptions[name]
	if !ok {
		return nil, fmt.Errorf("no column options for table %s", name)
	}
	data, err := csvimport.ImportFromReader(strings.NewReader(csv), options)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s CSV: %w", name, err)
	}
	return data, nil
}

// NewPeopleDataset returns the embedded staff directory.
func NewPeopleDataset() (*server.CSVDataset, error) {
	data, err := importTable("people", peopleCSV)
	if err != nil {
		return nil, err
	}
	return server.NewCSVDataset("people", "People",
		fmt.Sprintf("Staff directory, %d rows from an embedded CSV", len(data.Rows)), data), nil
}

// NewOrdersDataset returns the embedded order book.
func NewOrdersDataset() (*server.CSVDataset, error) {
	data, err := importTable("orders", ordersCSV)
	if err != nil {
		return nil, err
	}
	return server.NewCSVDataset("orders", "Orders",
		fmt.Sprintf("Customer orders, %d rows from an embedded CSV", len(data.Rows)), data), nil
}
