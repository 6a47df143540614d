/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package control

import (
	"strings"
	"testing"

	"mediaskin/internal/anim"
	"mediaskin/internal/condition"
	"mediaskin/internal/render/term"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

func near(a, b float32) bool { d := a - b; return d > -1e-3 && d < 1e-3 }

// screen is a 20x4 cell grid with 10x20 pixel cells.
func screen() (*term.Screen, *textlayout.FontManager) {
	s := term.New(20, 4, 10, 20)
	return s, textlayout.NewFontManager(s.Context(), s, nil)
}

func fadeAnim(t anim.Type, from, to float32) *anim.Animation {
	return anim.New(anim.Params{Type: t, Effect: anim.EffectFade, Length: 100, Start: vector.Pt{X: from}, End: vector.Pt{X: to}, Reversible: true})
}

func TestLabelRenders(t *testing.T) {
	s, fonts := screen()
	l := NewLabel(1, vector.R(20, 20, 100, 20), LabelStyle{Font: fonts.Font("font13")}, nil, nil)
	l.SetText("hi [B]there[/B]")
	w := NewWindow(100, vector.R(0, 0, 200, 80), nil)
	w.Add(l)
	w.Open()
	s.BeginFrame(0)
	w.Frame(s.Context(), 0)
	if got := s.Lines()[1]; !strings.HasPrefix(got, "  hi there") {
		t.Fatalf("row 1 = %q", got)
	}
	if c := s.Cell(5, 1); !c.Style.Has(textlayout.StyleBold) {
		t.Fatalf("bold lost: %+v", c)
	}
}

func TestLabelAlignment(t *testing.T) {
	s, fonts := screen()
	l := NewLabel(1, vector.R(0, 0, 200, 80), LabelStyle{Font: fonts.Font("font13"), Align: textlayout.AlignRight | textlayout.AlignCenterY}, nil, nil)
	l.SetText("end")
	s.BeginFrame(0)
	l.Animate(0, nil, 0)
	l.Render(s.Context())
	// 80px high, one 20px line centered: top at 30, sampled at y=40 in row 2
	if got := s.Lines()[2]; got != strings.Repeat(" ", 17)+"end" {
		t.Fatalf("row 2 = %q", got)
	}
}

func TestLabelScrolls(t *testing.T) {
	s, fonts := screen()
	scroll := textlayout.NewScrollInfo(0, 0, 600, "|")
	l := NewLabel(1, vector.R(0, 0, 50, 20), LabelStyle{Font: fonts.Font("font13"), Scroll: true}, nil, scroll)
	l.SetText("abcdefghij")
	for now := uint32(0); now <= 80; now += 20 {
		s.BeginFrame(now)
		l.Animate(now, nil, 0)
		l.Render(s.Context())
	}
	if scroll.CharacterPos == 0 && scroll.PixelPos == 0 {
		t.Fatalf("marquee did not move")
	}
	row := strings.TrimRight(s.Lines()[0], " ")
	if len(row) == 0 || len(row) > 6 || strings.HasPrefix(row, "abcde") {
		t.Fatalf("row = %q", row)
	}
	// text that fits does not scroll
	l.SetText("ab")
	s.BeginFrame(300)
	l.Render(s.Context())
	if got := strings.TrimRight(s.Lines()[0], " "); got != "ab" {
		t.Fatalf("short text row = %q", got)
	}
}

func TestLabelSetRectRewraps(t *testing.T) {
	_, fonts := screen()
	l := NewLabel(1, vector.R(0, 0, 400, 200), LabelStyle{Font: fonts.Font("font13"), Wrap: true}, nil, nil)
	l.SetText("one two three four five six")
	if n := len(l.Layout().Lines()); n != 1 {
		t.Fatalf("wide label lines = %d", n)
	}
	l.SetRect(vector.R(0, 0, 60, 200))
	if n := len(l.Layout().Lines()); n != 6 {
		t.Fatalf("narrow label lines = %d", n)
	}
	if w, _ := l.Layout().TextExtent(); w > 60 {
		t.Fatalf("extent width = %v", w)
	}
	if r := l.Rect(); r.W != 60 {
		t.Fatalf("rect = %+v", r)
	}
	// the new height caps the line count
	l.SetRect(vector.R(0, 0, 60, 40))
	if n := len(l.Layout().Lines()); n != 2 {
		t.Fatalf("short label lines = %d", n)
	}
}

func TestHiddenAnimationDelaysHide(t *testing.T) {
	b := NewBase(1, vector.R(0, 0, 10, 10))
	b.AddAnimation(fadeAnim(anim.TypeHidden, 100, 0))
	b.Animate(0, nil, 0)
	b.SetVisible(false)
	b.Animate(100, nil, 0)
	b.Animate(150, nil, 0)
	if !b.IsVisible() || !near(b.Transform().Alpha, 0.5) {
		t.Fatalf("mid hide: visible=%v alpha=%v", b.IsVisible(), b.Transform().Alpha)
	}
	b.Animate(200, nil, 0)
	if b.IsVisible() {
		t.Fatalf("still visible after hide finished")
	}
	b.Animate(250, nil, 0)
	if b.IsVisible() {
		t.Fatalf("visible again after hide")
	}
}

func TestShowDuringHideReverses(t *testing.T) {
	b := NewBase(1, vector.R(0, 0, 10, 10))
	hide := fadeAnim(anim.TypeHidden, 100, 0)
	b.AddAnimation(hide)
	b.Animate(0, nil, 0)
	b.SetVisible(false)
	b.Animate(100, nil, 0)
	b.Animate(150, nil, 0)
	b.SetVisible(true)
	b.Animate(160, nil, 0)
	if hide.Process() != anim.ProcessReverse || !near(hide.Amount(), 0.5) {
		t.Fatalf("hide not reversed: %v %v", hide.Process(), hide.Amount())
	}
	b.Animate(220, nil, 0)
	if !b.IsVisible() || !near(b.Transform().Alpha, 1) {
		t.Fatalf("after reverse: visible=%v alpha=%v", b.IsVisible(), b.Transform().Alpha)
	}
}

func TestImmediateVisibilityWithoutAnimations(t *testing.T) {
	b := NewBase(1, vector.R(0, 0, 10, 10))
	b.SetVisible(false)
	if b.IsVisible() {
		t.Fatalf("hide without animation should be immediate")
	}
	b.SetVisible(true)
	if !b.IsVisible() {
		t.Fatalf("show without animation should be immediate")
	}
}

func TestVisibleDelayNotDrawn(t *testing.T) {
	b := NewBase(1, vector.R(0, 0, 10, 10))
	b.AddAnimation(anim.New(anim.Params{Type: anim.TypeVisible, Effect: anim.EffectFade, Delay: 50, Length: 100, End: vector.Pt{X: 100}}))
	b.SetVisible(false)
	b.Animate(0, nil, 0)
	b.SetVisible(true)
	b.Animate(10, nil, 0)
	if b.IsVisible() {
		t.Fatalf("drawn during the visible delay")
	}
	b.Animate(70, nil, 0)
	if !b.IsVisible() {
		t.Fatalf("not drawn after the delay")
	}
}

func TestConditionalVisibilityAndAnimation(t *testing.T) {
	flags := condition.NewFlags(nil)
	reg := condition.NewRegistry(flags)
	vis, _ := reg.Register("menu.open")
	slide, _ := reg.Register("menu.expanded")

	_, fonts := screen()
	l := NewLabel(7, vector.R(0, 0, 100, 20), LabelStyle{Font: fonts.Font("font13")}, nil, nil)
	l.SetVisibleCondition(vis)
	l.AddAnimation(anim.New(anim.Params{Type: anim.TypeConditional, Effect: anim.EffectSlide, Length: 100, End: vector.Pt{X: 40}, Condition: slide}))
	w := NewWindow(1, vector.R(0, 0, 200, 80), reg)
	w.Add(l)
	w.Open()
	if l.IsVisible() {
		t.Fatalf("visible with condition false")
	}
	flags.Set("menu.open", true)
	w.Frame(nil, 0)
	if !l.IsVisible() {
		t.Fatalf("not visible after condition became true")
	}
	flags.Set("menu.expanded", true)
	w.Frame(nil, 10)
	w.Frame(nil, 60)
	if p := l.Transform().Apply(vector.Pt{}); !near(p.X, 20) {
		t.Fatalf("conditional slide at %+v", p)
	}
}

func TestWindowOpenClose(t *testing.T) {
	w := NewWindow(1, vector.R(0, 0, 100, 100), nil)
	w.AddAnimation(fadeAnim(anim.TypeWindowOpen, 0, 100), fadeAnim(anim.TypeWindowClose, 100, 0))
	w.Open()
	// the first frame only primes the clock; the animation starts on the next
	w.Frame(nil, 0)
	w.Frame(nil, 10)
	w.Frame(nil, 60)
	if !near(w.Transform().Alpha, 0.5) || !w.Busy() {
		t.Fatalf("opening alpha = %v busy=%v", w.Transform().Alpha, w.Busy())
	}
	w.Frame(nil, 110)
	if w.Busy() {
		t.Fatalf("busy after open finished")
	}
	w.Close()
	if w.IsClosed() {
		t.Fatalf("closed before animating")
	}
	w.Frame(nil, 200)
	w.Frame(nil, 300)
	w.Frame(nil, 310)
	if !w.IsClosed() {
		t.Fatalf("not closed after close animation")
	}
}

func TestFocusNext(t *testing.T) {
	_, fonts := screen()
	style := LabelStyle{Font: fonts.Font("font13")}
	a := NewLabel(1, vector.R(0, 0, 10, 10), style, nil, nil)
	b := NewLabel(2, vector.R(0, 0, 10, 10), style, nil, nil)
	focus := anim.New(anim.Params{Type: anim.TypeFocus, Effect: anim.EffectZoom, Length: 100, Start: vector.Pt{X: 100, Y: 100}, End: vector.Pt{X: 120, Y: 120}})
	b.AddAnimation(focus)
	w := NewWindow(1, vector.R(0, 0, 100, 100), nil)
	w.Add(a, b)
	if c := w.FocusNext(); c != Control(a) || !a.HasFocus() {
		t.Fatalf("first focus = %v", c)
	}
	if c := w.FocusNext(); c != Control(b) || a.HasFocus() || !b.HasFocus() {
		t.Fatalf("second focus = %v", c)
	}
	if focus.QueuedProcess() != anim.ProcessNormal {
		t.Fatalf("focus animation not queued")
	}
	if w.FocusNext() != Control(a) || w.Focused() != Control(a) {
		t.Fatalf("focus did not wrap")
	}
	if w.Control(2) != Control(b) || w.Control(9) != nil {
		t.Fatalf("Control lookup failed")
	}
}
