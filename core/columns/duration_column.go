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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/tabula/core/cells"
)

// DurationFormat specifies how durations are displayed.
type DurationFormat int

const (
	// DurationFormatCompact renders "3d4h0m0s".
	DurationFormatCompact DurationFormat = iota
	// DurationFormatVerbose renders "3 days 4 hours".
	DurationFormatVerbose
)

// DurationInput edits time.Duration cells. The buffer accepts Go duration
// syntax with an optional leading day count, e.g. "2d3h30m".
type DurationInput struct{}

func (DurationInput) Format(value any) string {
	switch v := value.(type) {
	case time.Duration:
		return FormatDuration(v, DurationFormatCompact)
	case string:
		return v
	}
	return cells.Serialize(value)
}

func (DurationInput) Parse(buffer string) (any, error) {
	return ParseDuration(buffer)
}

// FormatDuration renders d in the given format.
func FormatDuration(d time.Duration, format DurationFormat) string {
	if format == DurationFormatVerbose {
		return formatDurationVerbose(d)
	}
	return formatDurationCompact(d)
}

// DurationText renders a record value holding a time.Duration. Other values
// are passed through unchanged.
func DurationText(v any, format DurationFormat) any {
	if d, ok := v.(time.Duration); ok {
		return FormatDuration(d, format)
	}
	return v
}

// DurationSortValue orders time.Duration values by length; anything else is
// not comparable.
func DurationSortValue(v any) any {
	if d, ok := v.(time.Duration); ok {
		return int64(d)
	}
	return nil
}

// formatDurationCompact returns a compact representation like "2h30m0s" or "3d4h0m0s".
func formatDurationCompact(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	negative := d < 0
	if negative {
		d = -d
	}

	var result strings.Builder
	if negative {
		result.WriteString("-")
	}

	// Days are not part of the standard Go duration syntax.
	days := d / (24 * time.Hour)
	d = d % (24 * time.Hour)

	if days > 0 {
		result.WriteString(strconv.FormatInt(int64(days), 10))
		result.WriteString("d")
	}
	if d > 0 || days == 0 {
		result.WriteString(d.String())
	}

	return result.String()
}

// formatDurationVerbose returns a human-readable representation like "2 hours 30 minutes".
func formatDurationVerbose(d time.Duration) string {
	if d == 0 {
		return "0 seconds"
	}

	negative := d < 0
	if negative {
		d = -d
	}

	var parts []string
	unit := func(n time.Duration, singular string) {
		switch {
		case n == 1:
			parts = append(parts, "1 "+singular)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", n, singular))
		}
	}

	unit(d/(24*time.Hour), "day")
	d = d % (24 * time.Hour)
	unit(d/time.Hour, "hour")
	d = d % time.Hour
	unit(d/time.Minute, "minute")
	d = d % time.Minute

	seconds := d / time.Second
	d = d % time.Second
	if seconds > 0 || d > 0 || len(parts) == 0 {
		switch {
		case d > 0:
			total := float64(seconds) + float64(d)/float64(time.Second)
			parts = append(parts, fmt.Sprintf("%.3f seconds", total))
		case seconds == 1:
			parts = append(parts, "1 second")
		default:
			parts = append(parts, fmt.Sprintf("%d seconds", seconds))
		}
	}

	result := strings.Join(parts, " ")
	if negative {
		return "-" + result
	}
	return result
}

// ParseDuration parses a duration string, supporting Go format plus days.
// Bare numbers are read as seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return DurationFromUnit(f, "s")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	var total time.Duration

	if idx := strings.Index(s, "d"); idx != -1 {
		daysStr := s[:idx]
		days, err := strconv.ParseInt(daysStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid days in duration: %q", daysStr)
		}
		total = time.Duration(days) * 24 * time.Hour
		s = s[idx+1:]
	}

	if s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %w", err)
		}
		total += d
	}

	if negative {
		total = -total
	}

	return total, nil
}

// DurationFromUnit creates a duration from a value and unit string.
// Supported units: "nanoseconds", "microseconds", "milliseconds", "seconds", "minutes", "hours", "days", "weeks"
func DurationFromUnit(value float64, unit string) (time.Duration, error) {
	unit = strings.ToLower(strings.TrimSpace(unit))

	var multiplier time.Duration
	switch unit {
	case "nanosecond", "nanoseconds", "ns":
		multiplier = time.Nanosecond
	case "microsecond", "microseconds", "us", "µs":
		multiplier = time.Microsecond
	case "millisecond", "milliseconds", "ms":
		multiplier = time.Millisecond
	case "second", "seconds", "s":
		multiplier = time.Second
	case "minute", "minutes", "m":
		multiplier = time.Minute
	case "hour", "hours", "h":
		multiplier = time.Hour
	case "day", "days", "d":
		multiplier = 24 * time.Hour
	case "week", "weeks", "w":
		multiplier = 7 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}

	nanos := value * float64(multiplier)
	if math.IsInf(nanos, 0) || math.IsNaN(nanos) || math.Abs(nanos) > math.MaxInt64 {
		return 0, fmt.Errorf("duration overflow or invalid value")
	}

	return time.Duration(nanos), nil
}
