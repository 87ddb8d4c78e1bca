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
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Project derives the display records for items. A non-nil format is applied
// once to the whole slice; it must keep positional alignment with items.
// Without format the identity projection is used, which requires every item
// to also be a D.
func Project[T, D any](items []T, format func([]T) []D) ([]D, error) {
	if format != nil {
		out := format(items)
		if len(out) != len(items) {
			return nil, fmt.Errorf("projection returned %d records for %d items", len(out), len(items))
		}
		return out, nil
	}

	out := make([]D, len(items))
	for i, item := range items {
		d, ok := any(item).(D)
		if !ok {
			return nil, fmt.Errorf("row %d: %T is not a display record and no projection was given", i, item)
		}
		out[i] = d
	}
	return out, nil
}

// TitleHeader is a header formatter turning "unit_price" into
// "Unit Price". Headers that already contain upper case letters are kept.
// It is safe for concurrent use; a Caser carries state between calls, so
// each call builds its own.
func TitleHeader(raw string) string {
	for _, r := range raw {
		if unicode.IsUpper(r) {
			return raw
		}
	}
	words := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}
