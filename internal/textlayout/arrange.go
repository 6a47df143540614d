/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"

	"mediaskin/internal/vector"
)

// Align holds the alignment flags of a draw call.
type Align uint32

const (
	AlignLeft      Align = 0
	AlignRight     Align = 1
	AlignCenterX   Align = 2
	AlignCenterY   Align = 4
	AlignTruncated Align = 8
	AlignJustified Align = 0x10
)

func (a Align) Has(f Align) bool { return a&f != 0 }

// ParseAlign reads the skin align/aligny attributes plus optional flags
// ("truncated", "justify") from the horizontal value.
func ParseAlign(horizontal, vertical string) Align {
	var a Align
	for _, w := range strings.Fields(strings.ToLower(horizontal)) {
		switch w {
		case "right":
			a |= AlignRight
		case "center":
			a |= AlignCenterX
		case "justify", "justified":
			a |= AlignJustified
		case "truncated", "truncate":
			a |= AlignTruncated
		}
	}
	if strings.EqualFold(strings.TrimSpace(vertical), "center") {
		a |= AlignCenterY
	}
	return a
}

// Glyph is one placed character. X and Y are the top-left of its cell.
type Glyph struct {
	X, Y    float32
	Advance float32
	Char    Char
	Color   vector.Color
}

// Arrange places the characters of one line starting at (x, y). Right and
// centered lines are shifted left by their width (or half of it). With a
// positive maxWidth, justified lines spread the free width over their spaces
// and truncated lines end in "..." once the next character would not fit.
// Characters starting beyond maxWidth are dropped. Color indices outside
// colors fall back to entry 0.
func Arrange(m Metrics, x, y float32, colors []vector.Color, text Text, align Align, maxWidth float32) []Glyph {
	if m == nil || len(text) == 0 {
		return nil
	}
	if align.Has(AlignTruncated) {
		if maxWidth <= 0 || m.TextWidth(text) <= maxWidth {
			align &^= AlignTruncated
		}
	} else if align.Has(AlignJustified) && maxWidth <= 0 {
		align &^= AlignJustified
	}

	if align.Has(AlignCenterY) {
		y -= m.LineHeight() * 0.5
	}
	if align.Has(AlignRight | AlignCenterX) {
		w := m.TextWidth(text)
		if align.Has(AlignTruncated) && w > maxWidth+0.5 {
			w = maxWidth
		}
		if align.Has(AlignCenterX) {
			w *= 0.5
		}
		x -= w
	}

	var spacePerSpace float32
	if align.Has(AlignJustified) {
		var linePixels float32
		spaces := 0
		for _, c := range text {
			linePixels += m.CharWidth(c)
			if isSpace(c.Rune) {
				spaces++
			}
		}
		if spaces > 0 {
			spacePerSpace = (maxWidth - linePixels) / float32(spaces)
		}
	}

	glyphs := make([]Glyph, 0, len(text))
	var cursor float32
	for _, c := range text {
		col := colorAt(colors, c.Color)
		adv := m.CharWidth(c)
		if align.Has(AlignTruncated) {
			period := Char{Rune: '.', Style: c.Style, Color: c.Color}
			pw := m.CharWidth(period)
			if cursor+adv+3*pw > maxWidth {
				for i := 0; i < 3; i++ {
					glyphs = append(glyphs, Glyph{X: x + cursor, Y: y, Advance: pw, Char: period, Color: col})
					cursor += pw
				}
				break
			}
		} else if maxWidth > 0 && cursor > maxWidth {
			break
		}
		glyphs = append(glyphs, Glyph{X: x + cursor, Y: y, Advance: adv, Char: c, Color: col})
		cursor += adv
		if isSpace(c.Rune) {
			cursor += spacePerSpace
		}
	}
	return glyphs
}

func colorAt(colors []vector.Color, idx uint8) vector.Color {
	if len(colors) == 0 {
		return vector.Color{}
	}
	if int(idx) >= len(colors) {
		idx = 0
	}
	return colors[idx]
}
