/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "mediaskin/internal/vector"

// GlyphRenderer draws lines of styled text. Begin and End bracket a render
// pass so backends can batch. DrawRun places text with Arrange semantics.
type GlyphRenderer interface {
	Begin()
	End()
	DrawRun(x, y float32, colors []vector.Color, text Text, align Align, maxWidth float32)
}

// FontFace is a sized font on a concrete backend.
type FontFace interface {
	Metrics
	GlyphRenderer
}

// Graphics is the subset of the render context used by text drawing.
// SetClipRegion returns false when the region is empty or offscreen; the
// caller then skips drawing and must not call RestoreClipRegion.
type Graphics interface {
	SetClipRegion(x, y, w, h float32) bool
	RestoreClipRegion()
	PushTransform(m vector.TransformMatrix)
	PopTransform()
	MergeAlpha(c vector.Color) vector.Color
	ScalingPixelRatio() float32
	FrameTime() uint32
}

// Font binds a face to its skin definition (default style, colors, line
// spacing) and a graphics context. A nil *Font, or one without a face or
// graphics context, measures as zero and draws nothing.
type Font struct {
	name        string
	face        FontFace
	gfx         Graphics
	style       Style
	textColor   vector.Color
	shadowColor vector.Color
	lineSpacing float32
}

// NewFont creates a font from a definition. A zero LineSpacing means 1.
func NewFont(def FontDef, face FontFace, gfx Graphics) *Font {
	ls := def.LineSpacing
	if ls <= 0 {
		ls = 1
	}
	return &Font{
		name:        def.Name,
		face:        face,
		gfx:         gfx,
		style:       def.Style,
		textColor:   def.Color,
		shadowColor: def.Shadow,
		lineSpacing: ls,
	}
}

func (f *Font) ok() bool { return f != nil && f.face != nil && f.gfx != nil }

func (f *Font) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

func (f *Font) Style() Style {
	if f == nil {
		return 0
	}
	return f.style
}

func (f *Font) TextColor() vector.Color {
	if f == nil {
		return vector.Color{}
	}
	return f.textColor
}

func (f *Font) ShadowColor() vector.Color {
	if f == nil {
		return vector.Color{}
	}
	return f.shadowColor
}

func (f *Font) Face() FontFace {
	if f == nil {
		return nil
	}
	return f.face
}

func (f *Font) TextWidth(text Text) float32 {
	if !f.ok() {
		return 0
	}
	return f.face.TextWidth(text)
}

func (f *Font) CharWidth(ch Char) float32 {
	if !f.ok() {
		return 0
	}
	return f.face.CharWidth(ch)
}

// LineHeight is the face line height scaled by the line spacing.
func (f *Font) LineHeight() float32 {
	if !f.ok() {
		return 0
	}
	return f.face.LineHeight() * f.lineSpacing
}

// TextHeight is the height of n lines.
func (f *Font) TextHeight(n int) float32 { return f.LineHeight() * float32(n) }

func (f *Font) Begin() {
	if f.ok() {
		f.face.Begin()
	}
}

func (f *Font) End() {
	if f.ok() {
		f.face.End()
	}
}

// DrawText draws one line. Zero entries of colors use the font text color;
// all colors get the context alpha merged in. A zero shadow uses the font
// shadow color; a visible shadow is drawn first, offset by one pixel, for
// every visible entry of the color table. A positive maxWidth clips.
func (f *Font) DrawText(x, y float32, colors []vector.Color, shadow vector.Color, text Text, align Align, maxWidth float32) {
	if !f.ok() {
		return
	}
	clip := maxWidth > 0
	if clip && f.clippedRegionIsEmpty(x, y, maxWidth, align) {
		return
	}
	render := f.renderColors(colors)
	if sc := f.shadowColors(shadow, render); sc != nil {
		f.face.DrawRun(x+1, y+1, sc, text, align, maxWidth)
	}
	f.face.DrawRun(x, y, render, text, align, maxWidth)
	if clip {
		f.gfx.RestoreClipRegion()
	}
}

// DrawScrollingText draws one line as a marquee: the anchor of scroll
// advances by this frame's pixels and the text is drawn rotated so that it
// starts at the anchor, with the scroll suffix spliced in at the end.
func (f *Font) DrawScrollingText(x, y float32, colors []vector.Color, shadow vector.Color, text Text, align Align, maxWidth float32, scroll *ScrollInfo) {
	if !f.ok() || scroll == nil || len(text) == 0 {
		return
	}
	if f.clippedRegionIsEmpty(x, y, maxWidth, align) {
		return
	}
	cycle := scroll.cycleLen(text)
	maxChars := cycle
	if sw := f.face.CharWidth(Char{Rune: ' '}); sw > 0 {
		maxChars = min(cycle, int(maxWidth*1.05/sw))
	}

	offset := scroll.advance(f.face, text, f.gfx.FrameTime())

	rotated := make(Text, 0, maxChars)
	pos := scroll.CharacterPos
	for i := 0; i < maxChars; i++ {
		if pos >= cycle {
			pos = 0
		}
		rotated = append(rotated, scroll.at(text, pos))
		pos++
	}

	render := f.renderColors(colors)
	width := maxWidth + scroll.PixelPos + f.face.LineHeight()*2
	if sc := f.shadowColors(shadow, render); sc != nil {
		f.face.DrawRun(x-offset+1, y+1, sc, rotated, align, width)
	}
	f.face.DrawRun(x-offset, y, render, rotated, align, width)
	f.gfx.RestoreClipRegion()
}

// renderColors merges the frame alpha into the color table. A zero entry 0
// takes the font color (white when the font has none); any other zero entry,
// such as an unresolved [COLOR], takes entry 0 so the run stays readable.
func (f *Font) renderColors(colors []vector.Color) []vector.Color {
	base := f.textColor
	if base.IsZero() {
		base = vector.White
	}
	if len(colors) > 0 && !colors[0].IsZero() {
		base = colors[0]
	}
	out := make([]vector.Color, max(len(colors), 1))
	for i := range out {
		c := base
		if i < len(colors) && !colors[i].IsZero() {
			c = colors[i]
		}
		out[i] = f.gfx.MergeAlpha(c)
	}
	return out
}

func (f *Font) shadowColors(shadow vector.Color, render []vector.Color) []vector.Color {
	if shadow.IsZero() {
		shadow = f.shadowColor
	}
	if shadow.IsZero() {
		return nil
	}
	shadow = f.gfx.MergeAlpha(shadow)
	out := make([]vector.Color, len(render))
	for i, c := range render {
		if c.Visible() {
			out[i] = shadow
		}
	}
	return out
}

// clippedRegionIsEmpty sets a clip region two lines high around the text
// origin and reports whether nothing of it is visible.
func (f *Font) clippedRegionIsEmpty(x, y, width float32, align Align) bool {
	if align.Has(AlignCenterX) {
		x -= width * 0.5
	} else if align.Has(AlignRight) {
		x -= width
	}
	if align.Has(AlignCenterY) {
		y -= f.LineHeight()
	}
	return !f.gfx.SetClipRegion(x, y, width, f.TextHeight(2))
}
