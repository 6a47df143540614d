/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "mediaskin/internal/vector"

// monoFace measures every character as width pixels unless overridden and
// records draw calls.
type monoFace struct {
	width  float32
	height float32
	widths map[rune]float32

	runs         []drawnRun
	begins, ends int
}

type drawnRun struct {
	x, y     float32
	colors   []vector.Color
	text     string
	align    Align
	maxWidth float32
}

func newMonoFace() *monoFace { return &monoFace{width: 10, height: 20} }

func (f *monoFace) CharWidth(c Char) float32 {
	if w, ok := f.widths[c.Rune]; ok {
		return w
	}
	return f.width
}

func (f *monoFace) TextWidth(t Text) float32 {
	var w float32
	for _, c := range t {
		w += f.CharWidth(c)
	}
	return w
}

func (f *monoFace) LineHeight() float32 { return f.height }
func (f *monoFace) Begin()              { f.begins++ }
func (f *monoFace) End()                { f.ends++ }

func (f *monoFace) DrawRun(x, y float32, colors []vector.Color, text Text, align Align, maxWidth float32) {
	f.runs = append(f.runs, drawnRun{
		x: x, y: y,
		colors:   append([]vector.Color(nil), colors...),
		text:     text.String(),
		align:    align,
		maxWidth: maxWidth,
	})
}

type fakeGfx struct {
	now      uint32
	clipOK   bool
	clips    int
	restores int
	pushes   []vector.TransformMatrix
	pops     int
	alpha    float32
}

func newFakeGfx() *fakeGfx { return &fakeGfx{clipOK: true, alpha: 1} }

func (g *fakeGfx) SetClipRegion(x, y, w, h float32) bool {
	g.clips++
	return g.clipOK
}

func (g *fakeGfx) RestoreClipRegion()                     { g.restores++ }
func (g *fakeGfx) PushTransform(m vector.TransformMatrix) { g.pushes = append(g.pushes, m) }
func (g *fakeGfx) PopTransform()                          { g.pops++ }
func (g *fakeGfx) MergeAlpha(c vector.Color) vector.Color { return c.WithAlpha(g.alpha) }
func (g *fakeGfx) ScalingPixelRatio() float32             { return 1 }
func (g *fakeGfx) FrameTime() uint32                      { return g.now }

type mapColors map[string]vector.Color

func (m mapColors) ResolveColor(name string) vector.Color { return m[name] }

var (
	red  = vector.Color{R: 255, A: 255}
	blue = vector.Color{B: 255, A: 255}
)

func testFont(face *monoFace, gfx *fakeGfx) *Font {
	return NewFont(FontDef{Name: "test", Color: vector.White}, face, gfx)
}
