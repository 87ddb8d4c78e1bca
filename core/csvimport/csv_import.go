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

package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/records"
)

// CsvColumnType specifies the data type for a column
type CsvColumnType int

const (
	// CsvColumnTypeAuto auto-detects type from data (default)
	CsvColumnTypeAuto CsvColumnType = iota
	// CsvColumnTypeString forces string type
	CsvColumnTypeString
	// CsvColumnTypeBool forces bool type
	CsvColumnTypeBool
	// CsvColumnTypeFloat64 forces float64 type
	CsvColumnTypeFloat64
	// CsvColumnTypeInt64 forces int64 type
	CsvColumnTypeInt64
	// CsvColumnTypeDatetime parses time.Time values; never auto-detected
	CsvColumnTypeDatetime
	// CsvColumnTypeDuration parses time.Duration values; never auto-detected
	CsvColumnTypeDuration
)

func (t CsvColumnType) String() string {
	switch t {
	case CsvColumnTypeString:
		return "string"
	case CsvColumnTypeBool:
		return "bool"
	case CsvColumnTypeFloat64:
		return "float64"
	case CsvColumnTypeInt64:
		return "int64"
	case CsvColumnTypeDatetime:
		return "datetime"
	case CsvColumnTypeDuration:
		return "duration"
	}
	return "auto"
}

// CsvColumnSource defines source metadata for how a column is imported
type CsvColumnSource struct {
	// Name is the record key (defaults to header name if not specified)
	Name string
	// DisplayName is the header shown in the grid
	DisplayName string
	// Type specifies the data type for this column (default: auto-detect)
	Type CsvColumnType
	// ReadOnly disables inline editing of the column
	ReadOnly bool
	// Layout is the display layout of datetime columns
	// (default: columns.DatetimeFormatDateTime)
	Layout string
}

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnSources provides configuration for specific columns by header name
	ColumnSources map[string]CsvColumnSource
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:     true,
		Delimiter:     ',',
		ColumnSources: make(map[string]CsvColumnSource),
		SampleSize:    100,
	}
}

// Dataset is an imported CSV file: one record per data row, keyed by the
// column names in Headers.
type Dataset struct {
	Headers      []string
	DisplayNames map[string]string
	Types        []CsvColumnType
	ReadOnly     map[string]bool
	Layouts      map[string]string
	Rows         []records.Record
}

// ImportFromFile imports a CSV file
func ImportFromFile(filepath string, options ImportOptions) (*Dataset, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options)
}

// ImportFromReader imports CSV data from an io.Reader
func ImportFromReader(reader io.Reader, options ImportOptions) (*Dataset, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}

	// Read all records
	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	// Extract headers
	var headers []string
	var dataRows [][]string

	if options.HasHeader {
		headers = rows[0]
		dataRows = rows[1:]
	} else {
		// Generate column names if no header
		numCols := len(rows[0])
		headers = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
		dataRows = rows
	}

	if len(dataRows) == 0 {
		return nil, fmt.Errorf("CSV file has no data rows")
	}

	// Detect column types
	sampleSize := options.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}
	columnTypes := detectColumnTypes(headers, dataRows, sampleSize, options.ColumnSources)

	ds := &Dataset{
		Headers:      make([]string, len(headers)),
		DisplayNames: make(map[string]string),
		Types:        columnTypes,
		ReadOnly:     make(map[string]bool),
		Layouts:      make(map[string]string),
		Rows:         make([]records.Record, 0, len(dataRows)),
	}
	for i, header := range headers {
		header = strings.TrimSpace(header)
		source := getColumnSource(header, options.ColumnSources)
		name := header
		if source.Name != "" {
			name = source.Name
		}
		ds.Headers[i] = name
		if source.DisplayName != "" {
			ds.DisplayNames[name] = source.DisplayName
		}
		if source.ReadOnly {
			ds.ReadOnly[name] = true
		}
		if source.Layout != "" {
			ds.Layouts[name] = source.Layout
		}
	}

	// Populate the records
	for _, row := range dataRows {
		rec := make(records.Record, len(headers))
		for i, name := range ds.Headers {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			rec[name] = parseValue(value, columnTypes[i])
		}
		ds.Rows = append(ds.Rows, rec)
	}

	return ds, nil
}

// parseValue converts one field. Values that do not parse fall back to the
// zero value of the column type, NaN for floats.
func parseValue(value string, typ CsvColumnType) any {
	switch typ {
	case CsvColumnTypeInt64:
		if value == "" {
			return int64(0)
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return int64(0)
		}
		return n
	case CsvColumnTypeFloat64:
		if value == "" {
			return float64(0)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case CsvColumnTypeBool:
		b, err := parseBool(value)
		if err != nil {
			return false
		}
		return b
	case CsvColumnTypeDatetime:
		t, err := columns.ParseDatetime(value, time.UTC)
		if err != nil {
			return time.Time{}
		}
		return t
	case CsvColumnTypeDuration:
		d, err := columns.ParseDuration(value)
		if err != nil {
			return time.Duration(0)
		}
		return d
	}
	return value
}

// detectColumnTypes samples data to determine the type of every column.
// A column is int64 if every non-empty sampled value is an integer, float64
// if every value is a number, bool if every value is a truth word and
// string otherwise.
func detectColumnTypes(headers []string, dataRows [][]string, sampleSize int, configs map[string]CsvColumnSource) []CsvColumnType {
	types := make([]CsvColumnType, len(headers))

	// Sample rows for type detection
	rowsToSample := sampleSize
	if rowsToSample > len(dataRows) {
		rowsToSample = len(dataRows)
	}

	for i, header := range headers {
		// Check if type is explicitly set
		if config, ok := configs[strings.TrimSpace(header)]; ok && config.Type != CsvColumnTypeAuto {
			types[i] = config.Type
			continue
		}

		isInt, isFloat, isBool := true, true, true
		hasNonEmpty := false

		for j := 0; j < rowsToSample; j++ {
			if i >= len(dataRows[j]) {
				continue
			}

			value := strings.TrimSpace(dataRows[j][i])
			if value == "" {
				continue
			}

			hasNonEmpty = true

			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				isInt = false
			}
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				isFloat = false
			}
			if _, err := parseBool(value); err != nil {
				isBool = false
			}
			if !isInt && !isFloat && !isBool {
				break
			}
		}

		switch {
		case !hasNonEmpty:
			types[i] = CsvColumnTypeString
		case isInt:
			types[i] = CsvColumnTypeInt64
		case isFloat:
			types[i] = CsvColumnTypeFloat64
		case isBool:
			types[i] = CsvColumnTypeBool
		default:
			types[i] = CsvColumnTypeString
		}
	}

	return types
}

// parseBool accepts the usual spellings of a truth value. Digits are left
// to the numeric types.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "t":
		return true, nil
	case "false", "no", "n", "f":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value: %q", value)
}

// getColumnSource returns the config for a column, or an empty config if not specified
func getColumnSource(header string, configs map[string]CsvColumnSource) CsvColumnSource {
	if configs == nil {
		return CsvColumnSource{}
	}
	if config, ok := configs[header]; ok {
		return config
	}
	return CsvColumnSource{}
}

// Columns returns one grid column per CSV column. Cells render the record
// value stored under the column name, so committed edits land in the same key.
func (d *Dataset) Columns() []columns.Column[records.Record] {
	cols := make([]columns.Column[records.Record], 0, len(d.Headers))
	for i, name := range d.Headers {
		name := name
		col := columns.Column[records.Record]{
			Header:   name,
			ReadOnly: d.ReadOnly[name],
			Render: func(r records.Record) any {
				return r[name]
			},
		}
		switch d.Types[i] {
		case CsvColumnTypeBool:
			col.Input = boolInput{}
			col.SortValue = func(r records.Record) any {
				if b, _ := r[name].(bool); b {
					return 1
				}
				return 0
			}
		case CsvColumnTypeInt64:
			col.Input = intInput{}
		case CsvColumnTypeDatetime:
			layout := d.Layouts[name]
			col.Render = func(r records.Record) any {
				return columns.DatetimeText(r[name], layout)
			}
			col.SortValue = func(r records.Record) any {
				return columns.DatetimeSortValue(r[name])
			}
			col.Input = columns.DatetimeInput{Layout: layout, Location: time.UTC}
		case CsvColumnTypeDuration:
			col.Render = func(r records.Record) any {
				return columns.DurationText(r[name], columns.DurationFormatCompact)
			}
			col.SortValue = func(r records.Record) any {
				return columns.DurationSortValue(r[name])
			}
			col.Input = columns.DurationInput{}
		}
		cols = append(cols, col)
	}
	return cols
}

// intInput keeps integer columns integral after an edit.
type intInput struct{}

func (intInput) Format(value any) string {
	return fmt.Sprint(value)
}

func (intInput) Parse(buffer string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(buffer), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", buffer)
	}
	return n, nil
}

type boolInput struct{}

func (boolInput) Format(value any) string {
	return fmt.Sprint(value)
}

func (boolInput) Parse(buffer string) (any, error) {
	return parseBool(buffer)
}

// FormatHeader maps a column name to its display name, title-casing names
// without one.
func (d *Dataset) FormatHeader(name string) string {
	if display, ok := d.DisplayNames[name]; ok {
		return display
	}
	return columns.TitleHeader(name)
}
