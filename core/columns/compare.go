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
	"math"
	"strings"
)

// CompareKeys compares two sort keys.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Numbers sort before strings and non-comparable keys sort last.
func CompareKeys(a, b SortKey) int {
	if a.Kind != b.Kind {
		return compareKinds(a.Kind, b.Kind)
	}
	switch a.Kind {
	case KindNumber:
		return compareFloat64s(a.Num, b.Num)
	case KindString:
		return strings.Compare(a.Str, b.Str)
	}
	return 0
}

// compareKinds orders mixed keys: number < string < none
func compareKinds(a, b KeyKind) int {
	rank := func(k KeyKind) int {
		switch k {
		case KindNumber:
			return 0
		case KindString:
			return 1
		}
		return 2
	}
	ra, rb := rank(a), rank(b)
	if ra < rb {
		return -1
	}
	if ra > rb {
		return 1
	}
	return 0
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
