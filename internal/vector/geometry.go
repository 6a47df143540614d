/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package vector holds the small geometry, color and transform types shared by
// the text layout core, the animation engine and the draw backends.
//
// All coordinates are float32 skin pixels.
package vector

// Pt is a point in skin coordinates.
type Pt struct{ X, Y float32 }

// Rect is a control or clip area: top-left corner plus size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// rectFrom builds a Rect from two corners; a reversed pair yields zero size.
func rectFrom(p0, p1 Pt) Rect {
	return Rect{X: p0.X, Y: p0.Y, W: max(p1.X-p0.X, 0), H: max(p1.Y-p0.Y, 0)}
}

func (r Rect) Min() Pt    { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt    { return Pt{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Pt { return Pt{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether nothing can be drawn inside r.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains includes the right and bottom edges.
func (r Rect) Contains(p Pt) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Intersect clips r against o. Disjoint rects give an Empty result anchored
// at the overlap's would-be corner.
func (r Rect) Intersect(o Rect) Rect {
	a0, a1 := r.Min(), r.Max()
	b0, b1 := o.Min(), o.Max()
	return rectFrom(
		Pt{max(a0.X, b0.X), max(a0.Y, b0.Y)},
		Pt{min(a1.X, b1.X), min(a1.Y, b1.Y)},
	)
}
