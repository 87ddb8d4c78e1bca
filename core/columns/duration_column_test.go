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

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		// Standard Go format
		{"1h", time.Hour, false},
		{"30m", 30 * time.Minute, false},
		{"45s", 45 * time.Second, false},
		{"1h30m", 90 * time.Minute, false},
		{"2h30m45s", 2*time.Hour + 30*time.Minute + 45*time.Second, false},

		// Extended format with days
		{"1d", 24 * time.Hour, false},
		{"3d", 72 * time.Hour, false},
		{"1d12h", 36 * time.Hour, false},
		{"2d3h30m", 2*24*time.Hour + 3*time.Hour + 30*time.Minute, false},

		// Negative durations
		{"-1h", -time.Hour, false},
		{"-2d", -48 * time.Hour, false},
		{"-1d12h", -36 * time.Hour, false},

		// Edge cases
		{"0s", 0, false},
		{"", 0, false},
		{"  1h  ", time.Hour, false},

		// Invalid input
		{"invalid", 0, true},
		{"1x", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			result, err := ParseDuration(tc.input)
			if tc.hasError {
				if err == nil {
					t.Errorf("Expected error for input '%s', got nil", tc.input)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for input '%s': %v", tc.input, err)
				}
				if result != tc.expected {
					t.Errorf("For input '%s': expected %v, got %v", tc.input, tc.expected, result)
				}
			}
		})
	}
}

func TestFormatDurationCompact(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0s"},
		{time.Second, "1s"},
		{time.Minute, "1m0s"},
		{time.Hour, "1h0m0s"},
		{90 * time.Minute, "1h30m0s"},
		{24 * time.Hour, "1d"},
		{25 * time.Hour, "1d1h0m0s"},
		{48*time.Hour + 2*time.Hour + 30*time.Minute, "2d2h30m0s"},
		{-time.Hour, "-1h0m0s"},
		{-24 * time.Hour, "-1d"},
		{500 * time.Millisecond, "500ms"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			result := formatDurationCompact(tc.input)
			if result != tc.expected {
				t.Errorf("For duration %v: expected '%s', got '%s'", tc.input, tc.expected, result)
			}
		})
	}
}

func TestFormatDurationVerbose(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0 seconds"},
		{time.Second, "1 second"},
		{2 * time.Second, "2 seconds"},
		{time.Minute, "1 minute"},
		{2 * time.Minute, "2 minutes"},
		{time.Hour, "1 hour"},
		{2 * time.Hour, "2 hours"},
		{24 * time.Hour, "1 day"},
		{48 * time.Hour, "2 days"},
		{90 * time.Minute, "1 hour 30 minutes"},
		{2*time.Hour + 30*time.Minute + 45*time.Second, "2 hours 30 minutes 45 seconds"},
		{-time.Hour, "-1 hour"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			result := formatDurationVerbose(tc.input)
			if result != tc.expected {
				t.Errorf("For duration %v: expected '%s', got '%s'", tc.input, tc.expected, result)
			}
		})
	}
}

func TestDurationFromUnit(t *testing.T) {
	tests := []struct {
		value    float64
		unit     string
		expected time.Duration
		hasError bool
	}{
		{1, "nanosecond", time.Nanosecond, false},
		{1, "nanoseconds", time.Nanosecond, false},
		{1, "ns", time.Nanosecond, false},
		{1, "microsecond", time.Microsecond, false},
		{1, "us", time.Microsecond, false},
		{1, "millisecond", time.Millisecond, false},
		{1, "ms", time.Millisecond, false},
		{1, "second", time.Second, false},
		{1, "seconds", time.Second, false},
		{1, "s", time.Second, false},
		{1, "minute", time.Minute, false},
		{1, "minutes", time.Minute, false},
		{1, "m", time.Minute, false},
		{1, "hour", time.Hour, false},
		{1, "hours", time.Hour, false},
		{1, "h", time.Hour, false},
		{1, "day", 24 * time.Hour, false},
		{1, "days", 24 * time.Hour, false},
		{1, "d", 24 * time.Hour, false},
		{1, "week", 7 * 24 * time.Hour, false},
		{1, "weeks", 7 * 24 * time.Hour, false},
		{1, "w", 7 * 24 * time.Hour, false},

		// Fractional values
		{1.5, "hours", time.Hour + 30*time.Minute, false},
		{2.5, "days", 60 * time.Hour, false},

		// Case insensitivity
		{1, "HOUR", time.Hour, false},
		{1, "Hour", time.Hour, false},

		// Invalid unit
		{1, "invalid", 0, true},
		{1, "xyz", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.unit, func(t *testing.T) {
			result, err := DurationFromUnit(tc.value, tc.unit)
			if tc.hasError {
				if err == nil {
					t.Errorf("Expected error for unit '%s', got nil", tc.unit)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for unit '%s': %v", tc.unit, err)
				}
				if result != tc.expected {
					t.Errorf("For %f %s: expected %v, got %v", tc.value, tc.unit, tc.expected, result)
				}
			}
		})
	}
}

func TestParseDurationBareSeconds(t *testing.T) {
	got, err := ParseDuration("90")
	if err != nil || got != 90*time.Second {
		t.Errorf("ParseDuration(\"90\") = %v, %v, want 1m30s", got, err)
	}
}

func TestDurationInputRoundTrip(t *testing.T) {
	in := DurationInput{}
	buffer := in.Format(26 * time.Hour)
	if buffer != "1d2h0m0s" {
		t.Fatalf("Format = %q, want 1d2h0m0s", buffer)
	}
	v, err := in.Parse(buffer)
	if err != nil {
		t.Fatal(err)
	}
	if v != 26*time.Hour {
		t.Errorf("Parse(%q) = %v, want 26h", buffer, v)
	}
	if _, err := in.Parse("soon"); err == nil {
		t.Error("Parse accepted garbage")
	}
}

func TestDurationColumnSorts(t *testing.T) {
	col := Column[time.Duration]{
		Header:    "elapsed",
		Render:    func(d time.Duration) any { return DurationText(d, DurationFormatCompact) },
		SortValue: func(d time.Duration) any { return DurationSortValue(d) },
	}
	short, long := 90*time.Second, 25*time.Hour
	// "1d1h0m0s" < "1m30s" as text; the sort key must follow length.
	if CompareKeys(DeriveSortKey(col, short), DeriveSortKey(col, long)) >= 0 {
		t.Error("shorter duration does not sort first")
	}
	if got := col.Text(long); got != "1d1h0m0s" {
		t.Errorf("Text = %q", got)
	}
	if DurationSortValue("1h") != nil {
		t.Error("non-duration got a sort value")
	}
}
