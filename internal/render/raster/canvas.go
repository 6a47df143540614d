/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster draws frames into an RGBA image with fogleman/gg.
package raster

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"mediaskin/internal/render"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

// Canvas is a gg drawing context bound to a render.Context. It is the
// Surface of that context and the FaceFactory for its fonts.
type Canvas struct {
	dc  *gg.Context
	ctx *render.Context
	lib *textlayout.FontLibrary
	bg  vector.Color
}

// New creates a width x height canvas. lib supplies font families named
// by skin fonts; it may be nil, leaving only the Go fonts.
func New(width, height int, lib *textlayout.FontLibrary) *Canvas {
	c := &Canvas{dc: gg.NewContext(width, height), lib: lib, bg: vector.Black}
	c.ctx = render.NewContext(width, height, c)
	return c
}

func (c *Canvas) Context() *render.Context { return c.ctx }
func (c *Canvas) Image() image.Image       { return c.dc.Image() }

// SetBackground sets the color BeginFrame clears to.
func (c *Canvas) SetBackground(bg vector.Color) { c.bg = bg }

// BeginFrame clears the canvas and starts a frame at time now.
func (c *Canvas) BeginFrame(now uint32) {
	c.ctx.BeginFrame(now)
	c.dc.SetColor(c.bg.NRGBA())
	c.dc.Clear()
}

// SetClip implements render.Surface.
func (c *Canvas) SetClip(r vector.Rect) {
	c.dc.ResetClip()
	if r == c.ctx.Viewport() {
		return
	}
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	c.dc.Clip()
}

// FillRect fills r under the current transform.
func (c *Canvas) FillRect(r vector.Rect, col vector.Color) {
	col = c.ctx.MergeAlpha(col)
	if !col.Visible() {
		return
	}
	c.dc.Push()
	if !c.applyTransform() {
		c.dc.Pop()
		return
	}
	c.dc.SetColor(col.NRGBA())
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	c.dc.Fill()
	c.dc.Pop()
}

// SavePNG writes the current frame.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// applyTransform loads the context transform into gg. It reports false
// for degenerate transforms that draw nothing.
func (c *Canvas) applyTransform() bool {
	m := c.ctx.Transform().Affine()
	c.dc.Identity()
	if m.IsTranslation() {
		c.dc.Translate(float64(m.E), float64(m.F))
		return true
	}
	angle, sx, sy, shear := m.Decompose()
	if sx == 0 || sy == 0 {
		return false
	}
	c.dc.Translate(float64(m.E), float64(m.F))
	c.dc.Rotate(float64(angle))
	c.dc.Shear(float64(shear), 0)
	c.dc.Scale(float64(sx), float64(sy))
	return true
}
