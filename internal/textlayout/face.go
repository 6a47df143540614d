/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FaceMetrics implements Metrics over x/image font faces, one per style.
// Missing styled faces fall back to Regular; a missing bold face widens
// every bold glyph by SyntheticBold pixels, matching a double-strike draw.
type FaceMetrics struct {
	Regular    font.Face
	Bold       font.Face
	Italic     font.Face
	BoldItalic font.Face

	SyntheticBold float32
}

// BasicMetrics measures with the fixed 7x13 bitmap face. It is the fallback
// when no font file can be loaded and the oracle used by tests.
func BasicMetrics() *FaceMetrics {
	return &FaceMetrics{Regular: basicfont.Face7x13, SyntheticBold: 1}
}

// FaceFor returns the face used for a style and whether bold is synthesized.
func (m *FaceMetrics) FaceFor(s Style) (font.Face, bool) {
	bold, italic := s.Has(StyleBold), s.Has(StyleItalic)
	switch {
	case bold && italic && m.BoldItalic != nil:
		return m.BoldItalic, false
	case bold && m.Bold != nil:
		return m.Bold, false
	case italic && m.Italic != nil:
		return m.Italic, bold
	default:
		return m.Regular, bold
	}
}

func (m *FaceMetrics) CharWidth(ch Char) float32 {
	f, synth := m.FaceFor(ch.Style)
	if f == nil {
		return 0
	}
	w := advance(f, ch.Rune)
	if synth {
		w += m.SyntheticBold
	}
	return w
}

// TextWidth sums the character advances. Kerning is not applied so that
// widths agree with the per-glyph placement used when drawing.
func (m *FaceMetrics) TextWidth(text Text) float32 {
	var w float32
	for _, c := range text {
		w += m.CharWidth(c)
	}
	return w
}

func (m *FaceMetrics) LineHeight() float32 {
	if m.Regular == nil {
		return 0
	}
	return fixedToFloat(m.Regular.Metrics().Height)
}

// Ascent is the distance from the top of a line to the baseline.
func (m *FaceMetrics) Ascent() float32 {
	if m.Regular == nil {
		return 0
	}
	return fixedToFloat(m.Regular.Metrics().Ascent)
}

func advance(f font.Face, r rune) float32 {
	a, ok := f.GlyphAdvance(r)
	if !ok {
		a, _ = f.GlyphAdvance('?')
	}
	return fixedToFloat(a)
}

func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }
