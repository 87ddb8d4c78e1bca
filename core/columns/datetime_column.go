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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/tabula/core/cells"
)

// Common datetime display layouts
const (
	DatetimeFormatISO      = time.RFC3339          // 2006-01-02T15:04:05Z07:00
	DatetimeFormatDate     = "2006-01-02"          // Date only
	DatetimeFormatDateTime = "2006-01-02 15:04:05" // Date and time
	DatetimeFormatTime     = "15:04:05"            // Time only
)

// dateParseFormats lists the layouts ParseDatetime tries, in order of preference.
var dateParseFormats = []string{
	time.RFC3339Nano,          // 2006-01-02T15:04:05.999999999Z07:00
	time.RFC3339,              // 2006-01-02T15:04:05Z07:00
	"2006-01-02T15:04:05",     // ISO without timezone
	"2006-01-02 15:04:05",     // Space separator
	"2006-01-02",              // Date only (midnight)
	"2006/01/02",              // YYYY/MM/DD
	"02-Jan-2006",             // DD-Mon-YYYY
	"Jan 2, 2006",             // Natural format
	"January 2, 2006",         // Full month name
	"2006-01-02T15:04:05.000", // ISO with milliseconds no TZ
	"2006-01-02 15:04:05.000", // Space with milliseconds
}

// DatetimeInput edits time.Time cells. The buffer is seeded in Layout and
// accepts every format ParseDatetime understands.
type DatetimeInput struct {
	Layout   string
	Location *time.Location
}

func (in DatetimeInput) Format(value any) string {
	switch v := value.(type) {
	case time.Time:
		return FormatDatetime(v, in.Layout, in.Location)
	case string:
		return v
	}
	return cells.Serialize(value)
}

func (in DatetimeInput) Parse(buffer string) (any, error) {
	return ParseDatetime(buffer, in.Location)
}

// FormatDatetime renders t in layout, DatetimeFormatDateTime when empty.
// The zero time renders as an empty cell.
func FormatDatetime(t time.Time, layout string, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DatetimeFormatDateTime
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

// DatetimeText renders a record value holding a time.Time. Other values are
// passed through unchanged.
func DatetimeText(v any, layout string) any {
	if t, ok := v.(time.Time); ok {
		return FormatDatetime(t, layout, nil)
	}
	return v
}

// DatetimeSortValue orders time.Time values chronologically. Zero times sort
// before every real instant; anything else is not comparable.
func DatetimeSortValue(v any) any {
	t, ok := v.(time.Time)
	if !ok {
		return nil
	}
	if t.IsZero() {
		return int64(-1 << 63)
	}
	return t.UnixNano()
}

// ParseDatetime attempts to parse a string as a datetime value.
// Tries multiple formats and returns the first successful parse.
func ParseDatetime(s string, defaultLoc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if s == "" || s == "null" || s == "nil" || s == "NULL" {
		return time.Time{}, nil
	}

	if defaultLoc == nil {
		defaultLoc = time.UTC
	}

	if isNumericString(s) {
		return parseUnixTimestamp(s)
	}

	for _, format := range dateParseFormats {
		if t, err := time.ParseInLocation(format, s, defaultLoc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime: %q", s)
}

// isNumericString checks if a string contains only digits and optional leading minus.
func isNumericString(s string) bool {
	if len(s) == 0 {
		return false
	}
	start := 0
	if s[0] == '-' {
		start = 1
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return start < len(s)
}

// parseUnixTimestamp parses a numeric string as a Unix timestamp in UTC.
// The unit is picked by magnitude:
//   - Seconds: up to 1e11
//   - Milliseconds: from 1e11 to 1e16
//   - Nanoseconds: above 1e16
func parseUnixTimestamp(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	absN := n
	if absN < 0 {
		absN = -absN
	}

	switch {
	case absN > 1e16:
		return time.Unix(0, n).UTC(), nil
	case absN > 1e11:
		return time.Unix(n/1000, (n%1000)*1e6).UTC(), nil
	default:
		return time.Unix(n, 0).UTC(), nil
	}
}
