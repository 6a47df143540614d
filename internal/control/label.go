/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package control

import (
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

// LabelStyle is the static look of a label.
type LabelStyle struct {
	Font        *textlayout.Font
	TextColor   vector.Color
	ShadowColor vector.Color
	Align       textlayout.Align
	Angle       float32 // degrees
	Wrap        bool
	// Scroll makes text that is wider than the label run as a marquee.
	Scroll bool
}

// Label draws a piece of skin text inside its rectangle.
type Label struct {
	Base
	style  LabelStyle
	layout *textlayout.TextLayout
	scroll *textlayout.ScrollInfo
	text   string
}

// NewLabel creates a label. colors resolves [COLOR] names in its text;
// scroll is used when style.Scroll is set and may be nil for defaults.
func NewLabel(id int, rect vector.Rect, style LabelStyle, colors textlayout.ColorResolver, scroll *textlayout.ScrollInfo) *Label {
	if style.Scroll && scroll == nil {
		scroll = textlayout.DefaultScrollInfo()
	}
	l := &Label{
		Base:   NewBase(id, rect),
		style:  style,
		layout: textlayout.NewTextLayout(style.Font, style.Wrap, rect.H, colors),
		scroll: scroll,
	}
	return l
}

func (l *Label) Text() string                   { return l.text }
func (l *Label) Layout() *textlayout.TextLayout { return l.layout }
func (l *Label) Scroll() *textlayout.ScrollInfo { return l.scroll }
func (l *Label) Style() LabelStyle              { return l.style }

// SetText changes the label text. Changing text restarts the marquee.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	l.text = text
	if l.layout.Update(text, l.rect.W, false) && l.scroll != nil {
		l.scroll.Reset()
	}
}

// SetRect moves the label and relays out the text for the new width.
func (l *Label) SetRect(r vector.Rect) {
	l.Base.SetRect(r)
	l.layout.SetMaxHeight(r.H)
	l.layout.Update(l.text, r.W, true)
	if l.scroll != nil {
		l.scroll.Reset()
	}
}

// SetFont replaces the font and relays out the text.
func (l *Label) SetFont(f *textlayout.Font) {
	l.style.Font = f
	l.layout.SetFont(f)
	l.layout.Update(l.text, l.rect.W, true)
}

// scrolling reports whether the text currently overflows a scrolling label.
func (l *Label) scrolling() bool {
	if !l.style.Scroll || l.scroll == nil {
		return false
	}
	w, _ := l.layout.TextExtent()
	return w > l.rect.W
}

// anchor returns the text origin inside the rectangle for the alignment.
func (l *Label) anchor() (x, y float32) {
	r := l.rect
	x, y = r.X, r.Y
	switch {
	case l.style.Align.Has(textlayout.AlignCenterX):
		x += r.W / 2
	case l.style.Align.Has(textlayout.AlignRight):
		x += r.W
	}
	if l.style.Align.Has(textlayout.AlignCenterY) {
		y += r.H / 2
	}
	return x, y
}

// Render draws the label under its animation transform.
func (l *Label) Render(gfx textlayout.Graphics) {
	if !l.IsVisible() || gfx == nil {
		return
	}
	gfx.PushTransform(l.transform)
	defer gfx.PopTransform()
	x, y := l.anchor()
	s := l.style
	if l.scrolling() {
		// a marquee always runs left to right from the label's left edge
		align := s.Align &^ (textlayout.AlignRight | textlayout.AlignCenterX)
		l.layout.RenderScrolling(l.rect.X, y, s.Angle, s.TextColor, s.ShadowColor, align, l.rect.W, l.scroll)
		return
	}
	if l.scroll != nil && l.scroll.PixelPos != 0 {
		l.scroll.Reset()
	}
	l.layout.Render(x, y, s.Angle, s.TextColor, s.ShadowColor, s.Align, l.rect.W, false)
}
