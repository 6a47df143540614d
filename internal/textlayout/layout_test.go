/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"testing"

	"mediaskin/internal/vector"
)

func TestTextLayout_UpdateCache(t *testing.T) {
	l := NewTextLayout(testFont(newMonoFace(), newFakeGfx()), true, 0, nil)
	if !l.Update("abc\nde", 100, false) {
		t.Fatalf("first update should rebuild")
	}
	if l.Update("abc\nde", 100, false) {
		t.Fatalf("identical text should hit the cache")
	}
	if !l.Update("abc\nde", 100, true) {
		t.Fatalf("forced update should rebuild")
	}
	if w, h := l.TextExtent(); w != 30 || h != 40 {
		t.Fatalf("extent = %v x %v, want 30 x 40", w, h)
	}
	l.SetStyledText(Plain("xy"), nil, 100)
	if l.Text() != "xy" || len(l.Colors()) != 1 {
		t.Fatalf("styled text = %q colors=%v", l.Text(), l.Colors())
	}
	l.Reset()
	if !l.Update("abc\nde", 100, false) {
		t.Fatalf("reset should drop the cache")
	}
}

func TestTextLayout_TrailingBlankLinesAndMaxHeight(t *testing.T) {
	f := testFont(newMonoFace(), newFakeGfx())
	l := NewTextLayout(f, true, 0, nil)
	l.Update("a\n\n[CR]", 100, false)
	if len(l.Lines()) != 1 {
		t.Fatalf("trailing blank lines kept: %q", l.Text())
	}
	l = NewTextLayout(f, true, 30, nil)
	l.Update("a\nb\nc", 100, false)
	if l.Text() != "a\nb" {
		t.Fatalf("max height 30 at line height 20 allows 2 lines, got %q", l.Text())
	}
	l = NewTextLayout(f, false, 0, nil)
	l.Update("The quick brown fox", 50, false)
	if len(l.Lines()) != 1 {
		t.Fatalf("wrap disabled should not wrap: %q", l.Text())
	}
	if w := l.Width("abc"); w != 30 {
		t.Fatalf("Width = %v", w)
	}
}

func TestTextLayout_RenderClearsJustifyOnHardBreaks(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	l := NewTextLayout(testFont(face, gfx), true, 0, nil)
	l.Update("aaaa bbbb cccc", 100, false)
	l.Render(0, 0, 0, blue, vector.Color{}, AlignJustified, 100, false)
	if len(face.runs) != 2 {
		t.Fatalf("runs = %+v", face.runs)
	}
	if !face.runs[0].align.Has(AlignJustified) {
		t.Fatalf("wrapped line should stay justified")
	}
	if face.runs[1].align.Has(AlignJustified) {
		t.Fatalf("hard broken line must not be justified")
	}
	if face.runs[1].y != 20 {
		t.Fatalf("second line y = %v", face.runs[1].y)
	}
	if face.runs[0].colors[0] != blue {
		t.Fatalf("entry 0 should be the render color: %v", face.runs[0].colors)
	}
	if face.begins != 1 || face.ends != 1 || gfx.clips != 2 || gfx.restores != 2 {
		t.Fatalf("begin=%d end=%d clips=%d restores=%d", face.begins, face.ends, gfx.clips, gfx.restores)
	}
}

func TestTextLayout_SolidAndColorTable(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	l := NewTextLayout(testFont(face, gfx), false, 0, mapColors{"red": red})
	l.Update("[COLOR red]x[/COLOR]y", 0, false)

	l.Render(0, 0, 0, blue, vector.Color{}, AlignLeft, 0, true)
	if got := face.runs[0].colors; len(got) != 1 || got[0] != blue {
		t.Fatalf("solid colors = %v", got)
	}
	l.Render(0, 0, 0, blue, vector.Color{}, AlignLeft, 0, false)
	if got := face.runs[1].colors; len(got) != 2 || got[0] != blue || got[1] != red {
		t.Fatalf("table colors = %v", got)
	}
	l.Render(0, 0, 0, vector.Color{}, vector.Color{}, AlignLeft, 0, false)
	if got := face.runs[2].colors[0]; got != vector.White {
		t.Fatalf("zero color should use the font color, got %v", got)
	}
	if gfx.clips != 0 {
		t.Fatalf("no max width means no clipping, got %d clips", gfx.clips)
	}
}

func TestTextLayout_UnknownColorKeepsRunVisible(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	f := NewFont(FontDef{Name: "bare"}, face, gfx)
	l := NewTextLayout(f, false, 0, mapColors{"red": red})
	l.Update("hello [COLOR nosuch]world[/COLOR]", 0, false)

	l.Render(0, 0, 0, blue, vector.Color{}, AlignLeft, 0, false)
	if got := face.runs[0].colors; len(got) != 2 || got[0] != blue || got[1] != blue {
		t.Fatalf("unresolved color should follow the render color: %v", got)
	}
	l.Render(0, 0, 0, vector.Color{}, vector.Color{}, AlignLeft, 0, false)
	if got := face.runs[1].colors; got[0] != vector.White || got[1] != vector.White {
		t.Fatalf("colorless font should draw white: %v", got)
	}
}

func TestFont_ShadowAndAlpha(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	gfx.alpha = 0.5
	hidden := vector.Color{R: 1}
	f := NewFont(FontDef{Name: "s", Color: vector.White, Shadow: vector.Black}, face, gfx)
	f.DrawText(10, 20, []vector.Color{red, hidden}, vector.Color{}, Plain("x"), AlignLeft, 0)
	if len(face.runs) != 2 {
		t.Fatalf("expected shadow and text runs, got %d", len(face.runs))
	}
	sh, tx := face.runs[0], face.runs[1]
	if sh.x != 11 || sh.y != 21 || tx.x != 10 || tx.y != 20 {
		t.Fatalf("positions shadow=(%v,%v) text=(%v,%v)", sh.x, sh.y, tx.x, tx.y)
	}
	if sh.colors[0] != vector.Black.WithAlpha(0.5) || !sh.colors[1].IsZero() {
		t.Fatalf("shadow colors = %v", sh.colors)
	}
	if tx.colors[0].A != 128 {
		t.Fatalf("alpha not merged: %v", tx.colors[0])
	}
}

func TestTextLayout_RotationAndCenterY(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	l := NewTextLayout(testFont(face, gfx), false, 0, nil)
	l.Update("a\nb", 0, false)
	l.Render(0, 100, 90, vector.White, vector.Color{}, AlignCenterY, 0, false)
	if len(gfx.pushes) != 1 || gfx.pops != 1 {
		t.Fatalf("pushes=%d pops=%d", len(gfx.pushes), gfx.pops)
	}
	p := gfx.pushes[0].Apply(vector.Pt{X: 10, Y: 100})
	if !near(p.X, 0) || !near(p.Y, 110) {
		t.Fatalf("rotation about origin moved (10,100) to %+v", p)
	}
	if face.runs[0].y != 80 || face.runs[0].align.Has(AlignCenterY) {
		t.Fatalf("centered run = %+v", face.runs[0])
	}
}

func TestTextLayout_ClipRejected(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	gfx.clipOK = false
	l := NewTextLayout(testFont(face, gfx), false, 0, nil)
	l.Update("abc", 0, false)
	l.Render(0, 0, 0, vector.White, vector.Color{}, AlignLeft, 50, false)
	if len(face.runs) != 0 || gfx.restores != 0 {
		t.Fatalf("rejected clip should skip drawing: runs=%d restores=%d", len(face.runs), gfx.restores)
	}
}

func TestTextLayout_NilFontIsNoop(t *testing.T) {
	l := NewTextLayout(nil, true, 0, nil)
	if !l.Update("abc", 100, false) {
		t.Fatalf("update should still record the text")
	}
	if w, h := l.TextExtent(); w != 0 || h != 0 || len(l.Lines()) != 0 {
		t.Fatalf("nil font should lay out nothing: %v %v %v", w, h, l.Lines())
	}
	l.Render(0, 0, 45, vector.White, vector.Color{}, AlignLeft, 100, false)
	l.RenderScrolling(0, 0, 0, vector.White, vector.Color{}, AlignLeft, 100, DefaultScrollInfo())
	if l.Width("abc") != 0 {
		t.Fatalf("width without font")
	}
	var f *Font
	f.DrawText(0, 0, nil, vector.Color{}, Plain("x"), 0, 0)
	if f.LineHeight() != 0 || f.TextWidth(Plain("x")) != 0 {
		t.Fatalf("nil font should measure zero")
	}
	faceless := NewFont(FontDef{Name: "x"}, nil, newFakeGfx())
	faceless.DrawScrollingText(0, 0, nil, vector.Color{}, Plain("x"), 0, 100, DefaultScrollInfo())
	DrawLabel(nil, 0, 0, vector.White, vector.Color{}, "x", 0)
}

func TestTextLayout_ScrollingMovesFirstLineOnly(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	l := NewTextLayout(testFont(face, gfx), true, 0, nil)
	l.Update("ab\ncd", 100, false)
	scroll := NewScrollInfo(0, 0, 60, " | ")
	scroll.PixelSpeed = 0.72

	l.RenderScrolling(0, 0, 0, vector.White, vector.Color{}, AlignLeft, 100, scroll)
	if len(face.runs) != 2 {
		t.Fatalf("runs = %+v", face.runs)
	}
	if face.runs[0].text != "b | a" || face.runs[1].text != "d | c" {
		t.Fatalf("rotated texts = %q, %q", face.runs[0].text, face.runs[1].text)
	}
	if !near(face.runs[0].x, -2) || !near(face.runs[1].x, -2) {
		t.Fatalf("both lines share the offset: %v %v", face.runs[0].x, face.runs[1].x)
	}
	if scroll.CharacterPos != 1 || scroll.PixelSpeed != 0.72 {
		t.Fatalf("scroll state after pass: %+v", scroll)
	}
	if gfx.restores != 2 {
		t.Fatalf("restores = %d", gfx.restores)
	}
}

func TestDrawLabel(t *testing.T) {
	face, gfx := newMonoFace(), newFakeGfx()
	DrawLabel(testFont(face, gfx), 5, 6, red, vector.Color{}, "[B]x", AlignLeft)
	if len(face.runs) != 1 || face.runs[0].text != "[B]x" || face.runs[0].colors[0] != red {
		t.Fatalf("DrawLabel runs = %+v", face.runs)
	}
}
