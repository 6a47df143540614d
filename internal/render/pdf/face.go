/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pdf

import (
	"strings"

	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

const (
	lineFactor   = 1.2
	ascentFactor = 0.9
)

// NewFace implements textlayout.FaceFactory with the PDF core fonts.
// Families containing "mono" or "courier" map to Courier, "serif" or
// "times" to Times, everything else to Helvetica.
func (d *Document) NewFace(def textlayout.FontDef) (textlayout.FontFace, error) {
	size := def.Size
	if size <= 0 {
		size = 20
	}
	return &face{d: d, family: coreFamily(def.Family), size: size, widths: map[textlayout.Char]float32{}}, nil
}

func coreFamily(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono"), strings.Contains(f, "courier"):
		return "Courier"
	case strings.Contains(f, "sans"):
		return "Helvetica"
	case strings.Contains(f, "serif"), strings.Contains(f, "times"):
		return "Times"
	default:
		return "Helvetica"
	}
}

func styleString(s textlayout.Style) string {
	out := ""
	if s.Has(textlayout.StyleBold) {
		out += "B"
	}
	if s.Has(textlayout.StyleItalic) {
		out += "I"
	}
	return out
}

type face struct {
	d      *Document
	family string
	size   float32
	widths map[textlayout.Char]float32
}

func (f *face) use(s textlayout.Style) {
	f.d.pdf.SetFont(f.family, styleString(s), float64(f.size))
}

func (f *face) CharWidth(ch textlayout.Char) float32 {
	key := textlayout.Char{Rune: ch.Rune, Style: ch.Style}
	if w, ok := f.widths[key]; ok {
		return w
	}
	f.use(ch.Style)
	w := float32(f.d.pdf.GetStringWidth(f.d.tr(string(ch.Rune))))
	f.widths[key] = w
	return w
}

func (f *face) TextWidth(text textlayout.Text) float32 {
	var w float32
	for _, c := range text {
		w += f.CharWidth(c)
	}
	return w
}

func (f *face) LineHeight() float32 { return f.size * lineFactor }

func (f *face) Begin() {}
func (f *face) End()   {}

// DrawRun writes runs of equally styled and colored glyphs as single Text
// operations.
func (f *face) DrawRun(x, y float32, colors []vector.Color, text textlayout.Text, align textlayout.Align, maxWidth float32) {
	glyphs := textlayout.Arrange(f, x, y, colors, text, align, maxWidth)
	if len(glyphs) == 0 || f.d.pdf.PageNo() == 0 {
		return
	}
	f.d.transformBegin()
	defer f.d.transformEnd()
	baseline := f.size * ascentFactor
	for i := 0; i < len(glyphs); {
		g := glyphs[i]
		j := i + 1
		var sb strings.Builder
		sb.WriteRune(g.Char.Rune)
		for j < len(glyphs) && glyphs[j].Color == g.Color && glyphs[j].Char.Style == g.Char.Style && !justified(glyphs[j-1], glyphs[j]) {
			sb.WriteRune(glyphs[j].Char.Rune)
			j++
		}
		if g.Color.Visible() {
			f.use(g.Char.Style)
			c := g.Color
			f.d.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
			setFill(f.d.pdf, c)
			f.d.pdf.Text(float64(g.X), float64(g.Y+baseline), f.d.tr(sb.String()))
		}
		i = j
	}
}

// justified reports whether b does not directly follow a, as happens after
// spaces of justified lines; such glyphs start a new text operation.
func justified(a, b textlayout.Glyph) bool {
	d := b.X - (a.X + a.Advance)
	return d > 0.01 || d < -0.01
}
