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

// Package measure provides the text width capability used to auto-fit
// column widths. Widths are always reported in pixels.
package measure

import (
	"math"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the natural, unwrapped width of a line of text.
type Measurer interface {
	Measure(text string) float64
}

// FontMeasurer measures text with a bitmap font face.
type FontMeasurer struct {
	face font.Face
}

// NewFontMeasurer returns a measurer for face. A nil face selects the
// built-in 7x13 face.
func NewFontMeasurer(face font.Face) *FontMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FontMeasurer{face: face}
}

// Measure returns the advance width of text in pixels.
func (m *FontMeasurer) Measure(text string) float64 {
	return float64(font.MeasureString(m.face, text).Ceil())
}

// CellMeasurer measures text laid out on a character grid, such as a
// terminal, where each cell is CellWidth pixels wide.
type CellMeasurer struct {
	CellWidth float64
}

// Measure returns the display width of text in cells times the cell width.
// East Asian wide runes occupy two cells.
func (m CellMeasurer) Measure(text string) float64 {
	return float64(runewidth.StringWidth(text)) * m.CellWidth
}

// Cells converts a pixel width back to a whole number of cells, rounding down
// and never below one.
func (m CellMeasurer) Cells(px float64) int {
	if m.CellWidth <= 0 {
		return int(px)
	}
	n := int(math.Floor(px / m.CellWidth))
	if n < 1 {
		return 1
	}
	return n
}

// Fixed charges PerRune pixels for every rune.
type Fixed struct {
	PerRune float64
}

func (f Fixed) Measure(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * f.PerRune
}

// FitWidth computes an auto-fit column width: the widest of the header and
// the cell texts plus padding, clamped to [min, max].
func FitWidth(m Measurer, header string, cells []string, padding, min, max float64) float64 {
	widest := m.Measure(header)
	for _, c := range cells {
		if w := m.Measure(c); w > widest {
			widest = w
		}
	}
	return Clamp(widest+padding, min, max)
}

// Clamp bounds v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
