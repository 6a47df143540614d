/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"math"

	"mediaskin/internal/vector"
)

// TextLayout holds the parsed and wrapped lines of one label. Lines and the
// color table are rebuilt wholesale on each update and never edited in place.
type TextLayout struct {
	font      *Font
	colors    ColorResolver
	wrap      bool
	maxHeight float32

	lines      []Line
	colorTable []vector.Color
	lastText   string

	textWidth  float32
	textHeight float32
}

// NewTextLayout creates a layout drawing with font. maxHeight > 0 limits
// the number of lines to what fits; colors resolves [COLOR] arguments.
func NewTextLayout(font *Font, wrap bool, maxHeight float32, colors ColorResolver) *TextLayout {
	return &TextLayout{font: font, wrap: wrap, maxHeight: maxHeight, colors: colors}
}

func (l *TextLayout) Font() *Font { return l.font }

// SetFont swaps the font. The caller must force the next Update.
func (l *TextLayout) SetFont(f *Font)            { l.font = f }
func (l *TextLayout) SetWrap(wrap bool)          { l.wrap = wrap }
func (l *TextLayout) SetMaxHeight(h float32)     { l.maxHeight = h }
func (l *TextLayout) Lines() []Line              { return l.lines }
func (l *TextLayout) Colors() []vector.Color     { return l.colorTable }
func (l *TextLayout) TextExtent() (w, h float32) { return l.textWidth, l.textHeight }

// Update reparses and rewraps text unless it is byte-identical to the last
// text and force is false. It reports whether the layout was rebuilt.
func (l *TextLayout) Update(text string, maxWidth float32, force bool) bool {
	if text == l.lastText && !force {
		return false
	}
	l.lastText = text
	var def vector.Color
	if l.font != nil {
		def = l.font.TextColor()
	}
	parsed, table := ParseMarkup(text, l.font.Style(), def, l.colors)
	l.SetStyledText(parsed, table, maxWidth)
	return true
}

// SetStyledText lays out already parsed text, bypassing the update cache.
func (l *TextLayout) SetStyledText(text Text, colors []vector.Color, maxWidth float32) {
	l.colorTable = append([]vector.Color(nil), colors...)
	if len(l.colorTable) == 0 {
		l.colorTable = []vector.Color{{}}
	}
	if !l.font.ok() {
		l.lines = nil
	} else if l.wrap && maxWidth > 0 {
		l.lines = WrapText(l.font, text, maxWidth, l.maxLines())
	} else {
		l.lines = LineBreakText(text, l.maxLines())
	}
	for len(l.lines) > 0 && len(l.lines[len(l.lines)-1].Text) == 0 {
		l.lines = l.lines[:len(l.lines)-1]
	}
	l.calcTextExtent()
}

// Reset forgets the cached text so the next Update always rebuilds.
func (l *TextLayout) Reset() {
	l.lines = nil
	l.colorTable = nil
	l.lastText = ""
	l.textWidth, l.textHeight = 0, 0
}

// Text returns the laid out text with one newline between lines.
func (l *TextLayout) Text() string {
	var t Text
	for i, line := range l.lines {
		if i > 0 {
			t = append(t, Char{Rune: '\n'})
		}
		t = append(t, line.Text...)
	}
	return t.String()
}

// Width measures a single line of plain text in the layout font.
func (l *TextLayout) Width(text string) float32 {
	if !l.font.ok() {
		return 0
	}
	t := Plain(text)
	for i := range t {
		t[i].Style = l.font.Style() & glyphStyles
	}
	return l.font.TextWidth(t)
}

func (l *TextLayout) maxLines() int {
	lh := l.font.LineHeight()
	if l.maxHeight > 0 && lh > 0 {
		return int(math.Ceil(float64(l.maxHeight / lh)))
	}
	return 0
}

func (l *TextLayout) calcTextExtent() {
	l.textWidth, l.textHeight = 0, 0
	if !l.font.ok() {
		return
	}
	for _, line := range l.lines {
		l.textWidth = max(l.textWidth, l.font.TextWidth(line.Text))
	}
	l.textHeight = l.font.TextHeight(len(l.lines))
}

// Render draws every line from (x, y) downwards. A nonzero angle (degrees)
// rotates the block about (x, y). solid draws all runs in color alone,
// otherwise color replaces entry 0 of the color table.
func (l *TextLayout) Render(x, y, angle float32, color, shadow vector.Color, align Align, maxWidth float32, solid bool) {
	if !l.font.ok() {
		return
	}
	if len(l.colorTable) > 0 {
		l.colorTable[0] = color
	}
	gfx := l.font.gfx
	if angle != 0 {
		gfx.PushTransform(vector.ZRotation(angle*vector.DegToRad, x, y, gfx.ScalingPixelRatio()))
	}
	if align.Has(AlignCenterY) {
		y -= l.font.TextHeight(len(l.lines)) * 0.5
		align &^= AlignCenterY
	}
	solidColors := []vector.Color{color}
	l.font.Begin()
	for _, line := range l.lines {
		a := align
		if line.CarriageReturn {
			a &^= AlignJustified
		}
		if solid {
			l.font.DrawText(x, y, solidColors, shadow, line.Text, a, maxWidth)
		} else {
			l.font.DrawText(x, y, l.colorTable, shadow, line.Text, a, maxWidth)
		}
		y += l.font.LineHeight()
	}
	l.font.End()
	if angle != 0 {
		gfx.PopTransform()
	}
}

// RenderScrolling draws the lines as a marquee. Only the first line moves
// the scroller; later lines are drawn at the same offset.
func (l *TextLayout) RenderScrolling(x, y, angle float32, color, shadow vector.Color, align Align, maxWidth float32, scroll *ScrollInfo) {
	if !l.font.ok() || scroll == nil {
		return
	}
	if len(l.colorTable) > 0 {
		l.colorTable[0] = color
	}
	gfx := l.font.gfx
	if angle != 0 {
		gfx.PushTransform(vector.ZRotation(angle*vector.DegToRad, x, y, gfx.ScalingPixelRatio()))
	}
	if align.Has(AlignCenterY) {
		y -= l.font.TextHeight(len(l.lines)) * 0.5
		align &^= AlignCenterY
	}
	l.font.Begin()
	speed := scroll.PixelSpeed
	for _, line := range l.lines {
		l.font.DrawScrollingText(x, y, l.colorTable, shadow, line.Text, align, maxWidth, scroll)
		y += l.font.LineHeight()
		scroll.PixelSpeed = 0
	}
	scroll.PixelSpeed = speed
	l.font.End()
	if angle != 0 {
		gfx.PopTransform()
	}
}

// DrawLabel draws text once without markup or caching.
func DrawLabel(font *Font, x, y float32, color, shadow vector.Color, text string, align Align) {
	if !font.ok() {
		return
	}
	font.DrawText(x, y, []vector.Color{color}, shadow, Plain(text), align, 0)
}
