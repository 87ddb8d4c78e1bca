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

package cells

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Input converts between a committed cell value and the editor's text buffer.
type Input interface {
	// Format renders value into the initial buffer.
	Format(value any) string
	// Parse turns the buffer into the committed value.
	Parse(buffer string) (any, error)
}

// TextInput commits the raw buffer.
type TextInput struct{}

func (TextInput) Format(value any) string {
	if value == nil {
		return ""
	}
	return Serialize(value)
}

func (TextInput) Parse(buffer string) (any, error) {
	return buffer, nil
}

// NumberInput parses the buffer as a float64 at commit time.
type NumberInput struct{}

func (NumberInput) Format(value any) string {
	if value == nil {
		return ""
	}
	return Serialize(value)
}

func (NumberInput) Parse(buffer string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(buffer), 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", buffer)
	}
	return f, nil
}

// InputFor infers an input from the Go kind of value: numbers get a
// NumberInput, everything else a TextInput.
func InputFor(value any) Input {
	if IsNumber(value) {
		return NumberInput{}
	}
	return TextInput{}
}

// IsNumber reports whether v has an integer or floating point kind.
func IsNumber(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Serialize is the string form of a committed value as reported to hosts.
// Floats use the shortest representation that round-trips.
func Serialize(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return strconv.FormatFloat(x, 'g', -1, 64)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
