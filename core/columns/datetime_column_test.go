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
	"testing"
	"time"
)

func TestParseDatetime(t *testing.T) {
	testCases := []struct {
		input   string
		wantErr bool
		check   func(time.Time) bool
	}{
		{"2024-01-15", false, func(t time.Time) bool { return t.Year() == 2024 && t.Month() == 1 && t.Day() == 15 }},
		{"2024-01-15T10:30:00Z", false, func(t time.Time) bool { return t.Hour() == 10 && t.Minute() == 30 }},
		{"2024-01-15 14:45:30", false, func(t time.Time) bool { return t.Hour() == 14 && t.Minute() == 45 }},
		{"2024/06/20", false, func(t time.Time) bool { return t.Month() == 6 && t.Day() == 20 }},
		{"", false, func(t time.Time) bool { return t.IsZero() }},
		{"null", false, func(t time.Time) bool { return t.IsZero() }},
		{"invalid", true, nil},
		// Unix timestamp (seconds)
		{"1704067200", false, func(t time.Time) bool { return t.Year() == 2024 && t.Month() == 1 && t.Day() == 1 }},
		// Unix timestamp (milliseconds)
		{"1704067200000", false, func(t time.Time) bool { return t.Year() == 2024 && t.Month() == 1 && t.Day() == 1 }},
	}

	for _, tc := range testCases {
		got, err := ParseDatetime(tc.input, time.UTC)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDatetime(%q) expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDatetime(%q) error: %v", tc.input, err)
			continue
		}
		if tc.check != nil && !tc.check(got) {
			t.Errorf("ParseDatetime(%q) = %v, failed check", tc.input, got)
		}
	}
}

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2024, 7, 15, 14, 30, 45, 0, time.UTC)
	tests := []struct {
		layout string
		want   string
	}{
		{"", "2024-07-15 14:30:45"},
		{DatetimeFormatDate, "2024-07-15"},
		{DatetimeFormatISO, "2024-07-15T14:30:45Z"},
		{DatetimeFormatTime, "14:30:45"},
	}
	for _, tc := range tests {
		if got := FormatDatetime(ts, tc.layout, time.UTC); got != tc.want {
			t.Errorf("FormatDatetime(%q) = %q, want %q", tc.layout, got, tc.want)
		}
	}
	if got := FormatDatetime(time.Time{}, DatetimeFormatDate, nil); got != "" {
		t.Errorf("zero time rendered as %q", got)
	}
}

func TestDatetimeInput(t *testing.T) {
	in := DatetimeInput{Layout: DatetimeFormatDate, Location: time.UTC}
	if got := in.Format(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)); got != "2024-02-29" {
		t.Errorf("Format = %q", got)
	}
	if got := in.Format("2024-02-29"); got != "2024-02-29" {
		t.Errorf("Format(string) = %q", got)
	}
	v, err := in.Parse("Mar 1, 2024")
	if err != nil {
		t.Fatal(err)
	}
	if ts, ok := v.(time.Time); !ok || ts.Month() != time.March || ts.Day() != 1 {
		t.Errorf("Parse = %v", v)
	}
	if _, err := in.Parse("someday"); err == nil {
		t.Error("Parse accepted garbage")
	}
}

func TestDatetimeSortValue(t *testing.T) {
	col := Column[time.Time]{
		Header:    "placed",
		Render:    func(ts time.Time) any { return DatetimeText(ts, "Jan 2, 2006") },
		SortValue: func(ts time.Time) any { return DatetimeSortValue(ts) },
	}
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	// "Apr 1, 2024" < "Mar 1, 2024" as text; the key must be chronological.
	if CompareKeys(DeriveSortKey(col, mar), DeriveSortKey(col, apr)) >= 0 {
		t.Error("March does not sort before April")
	}
	if CompareKeys(DeriveSortKey(col, time.Time{}), DeriveSortKey(col, mar)) >= 0 {
		t.Error("zero time does not sort first")
	}
	if DatetimeSortValue("2024-01-01") != nil {
		t.Error("non-time got a sort value")
	}
}
