/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render holds the drawing context shared by every backend: the
// transform stack that animations push onto, the clip stack that text
// drawing uses, and the frame clock.
package render

import (
	"math"

	"mediaskin/internal/vector"
)

// Surface is the backend side of a Context. The context calls SetClip
// whenever the effective clip rectangle changes; viewport-sized clips mean
// "no clipping".
type Surface interface {
	SetClip(r vector.Rect)
}

// Context implements textlayout.Graphics over a Surface. Coordinates are
// skin pixels; the viewport is (0, 0, width, height).
type Context struct {
	surface    Surface
	viewport   vector.Rect
	transforms []vector.TransformMatrix
	clips      []vector.Rect
	frameTime  uint32
	pixelRatio float32
}

// NewContext creates a context for a width x height viewport. surface may
// be nil for measuring only.
func NewContext(width, height int, surface Surface) *Context {
	c := &Context{
		surface:    surface,
		viewport:   vector.R(0, 0, float32(width), float32(height)),
		pixelRatio: 1,
	}
	c.reset()
	return c
}

func (c *Context) reset() {
	c.transforms = append(c.transforms[:0], vector.NewIdentity())
	c.clips = append(c.clips[:0], c.viewport)
}

// BeginFrame sets the frame clock and drops any transforms or clips left
// over from the previous frame.
func (c *Context) BeginFrame(now uint32) {
	c.frameTime = now
	c.reset()
	if c.surface != nil {
		c.surface.SetClip(c.viewport)
	}
}

func (c *Context) FrameTime() uint32                 { return c.frameTime }
func (c *Context) SetFrameTime(now uint32)           { c.frameTime = now }
func (c *Context) Viewport() vector.Rect             { return c.viewport }
func (c *Context) ScalingPixelRatio() float32        { return c.pixelRatio }
func (c *Context) Transform() vector.TransformMatrix { return c.transforms[len(c.transforms)-1] }
func (c *Context) Clip() vector.Rect                 { return c.clips[len(c.clips)-1] }

// SetPixelRatio sets the pixel aspect ratio used for screen-plane rotations.
func (c *Context) SetPixelRatio(r float32) {
	if r <= 0 {
		r = 1
	}
	c.pixelRatio = r
}

// PushTransform composes m under the current transform: points go through
// m first, then through everything pushed before it.
func (c *Context) PushTransform(m vector.TransformMatrix) {
	c.transforms = append(c.transforms, c.Transform().Multiply(m))
}

// PopTransform drops the last pushed transform. The base identity stays.
func (c *Context) PopTransform() {
	if len(c.transforms) > 1 {
		c.transforms = c.transforms[:len(c.transforms)-1]
	}
}

// MergeAlpha fades c by the alpha of the current transform.
func (c *Context) MergeAlpha(col vector.Color) vector.Color {
	return col.WithAlpha(c.Transform().Alpha)
}

// SetClipRegion intersects the current clip with the screen bounds of the
// given rectangle under the current transform. It returns false, pushing
// nothing, when the result is empty.
func (c *Context) SetClipRegion(x, y, w, h float32) bool {
	r := c.Clip().Intersect(c.screenBounds(vector.R(x, y, w, h)))
	if r.Empty() {
		return false
	}
	c.clips = append(c.clips, r)
	if c.surface != nil {
		c.surface.SetClip(r)
	}
	return true
}

// RestoreClipRegion undoes the last successful SetClipRegion.
func (c *Context) RestoreClipRegion() {
	if len(c.clips) > 1 {
		c.clips = c.clips[:len(c.clips)-1]
	}
	if c.surface != nil {
		c.surface.SetClip(c.Clip())
	}
}

// ToScreen maps a skin point through the current transform.
func (c *Context) ToScreen(p vector.Pt) vector.Pt { return c.Transform().Apply(p) }

// screenBounds returns the axis-aligned box around r's transformed corners.
func (c *Context) screenBounds(r vector.Rect) vector.Rect {
	m := c.Transform()
	if m.IsIdentity() {
		return r
	}
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, p := range []vector.Pt{r.Min(), {X: r.X + r.W, Y: r.Y}, {X: r.X, Y: r.Y + r.H}, r.Max()} {
		q := m.Apply(p)
		minX, minY = min(minX, q.X), min(minY, q.Y)
		maxX, maxY = max(maxX, q.X), max(maxY, q.Y)
	}
	return vector.R(minX, minY, maxX-minX, maxY-minY)
}
