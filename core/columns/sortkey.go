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
	"reflect"
	"strconv"
)

// KeyKind classifies a sort key.
type KeyKind int

const (
	// KindNone marks content that cannot be compared, e.g. structured
	// renderables. Sorting by such a column is a silent no-op.
	KindNone KeyKind = iota
	KindNumber
	KindString
)

// SortKey is the comparable projection of a cell.
type SortKey struct {
	Kind KeyKind
	Num  float64
	Str  string
}

// Comparable reports whether the key can take part in sorting.
func (k SortKey) Comparable() bool {
	return k.Kind != KindNone
}

func (k SortKey) String() string {
	switch k.Kind {
	case KindNumber:
		return strconv.FormatFloat(k.Num, 'f', -1, 64)
	case KindString:
		return k.Str
	}
	return ""
}

// KeyOf maps a value to a sort key. Values of any string kind become string
// keys and values of any integer or float kind become number keys.
func KeyOf(v any) SortKey {
	if v == nil {
		return SortKey{}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return SortKey{Kind: KindString, Str: rv.String()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return SortKey{Kind: KindNumber, Num: float64(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return SortKey{Kind: KindNumber, Num: float64(rv.Uint())}
	case reflect.Float32, reflect.Float64:
		return SortKey{Kind: KindNumber, Num: rv.Float()}
	}
	return SortKey{}
}

// DeriveSortKey returns the column's SortValue for d when present, otherwise
// the key of the rendered value.
func DeriveSortKey[D any](c Column[D], d D) SortKey {
	if c.SortValue != nil {
		return KeyOf(c.SortValue(d))
	}
	return KeyOf(c.Value(d))
}
