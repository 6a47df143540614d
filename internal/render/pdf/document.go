/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pdf renders frames as pages of a PDF document with gofpdf.
// Each frame becomes one page; text stays vector text in the PDF core fonts.
package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"mediaskin/internal/render"
	"mediaskin/internal/vector"
)

// Document is a gofpdf document bound to a render.Context. Units are
// points, one point per skin pixel.
type Document struct {
	pdf     *gofpdf.Fpdf
	ctx     *render.Context
	size    gofpdf.SizeType
	tr      func(string) string
	bg      vector.Color
	clipped bool
}

// New creates an empty document with width x height pages.
func New(width, height int, title string) *Document {
	size := gofpdf.SizeType{Wd: float64(width), Ht: float64(height)}
	p := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	p.SetTitle(title, true)
	p.SetCreator("mediaskin", false)
	p.SetAutoPageBreak(false, 0)
	p.SetMargins(0, 0, 0)
	p.SetFont("Helvetica", "", 12)
	d := &Document{pdf: p, size: size, tr: p.UnicodeTranslatorFromDescriptor(""), bg: vector.Black}
	d.ctx = render.NewContext(width, height, d)
	return d
}

func (d *Document) Context() *render.Context { return d.ctx }
func (d *Document) PageCount() int           { return d.pdf.PageCount() }
func (d *Document) Err() error               { return d.pdf.Error() }

// SetBackground sets the page fill color.
func (d *Document) SetBackground(bg vector.Color) { d.bg = bg }

// BeginFrame starts a new page for the frame at time now.
func (d *Document) BeginFrame(now uint32) {
	d.endClip()
	d.pdf.AddPageFormat("", d.size)
	if d.bg.Visible() {
		setFill(d.pdf, d.bg)
		d.pdf.Rect(0, 0, d.size.Wd, d.size.Ht, "F")
	}
	d.ctx.BeginFrame(now)
}

// SetClip implements render.Surface.
func (d *Document) SetClip(r vector.Rect) {
	d.endClip()
	if r == d.ctx.Viewport() || d.pdf.PageNo() == 0 {
		return
	}
	d.pdf.ClipRect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), false)
	d.clipped = true
}

func (d *Document) endClip() {
	if d.clipped {
		d.pdf.ClipEnd()
		d.clipped = false
	}
}

// FillRect fills r under the current transform.
func (d *Document) FillRect(r vector.Rect, col vector.Color) {
	col = d.ctx.MergeAlpha(col)
	if !col.Visible() || d.pdf.PageNo() == 0 {
		return
	}
	d.transformBegin()
	setFill(d.pdf, col)
	d.pdf.Rect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), "F")
	d.transformEnd()
}

// transformBegin loads the context transform. gofpdf matrices work in the
// PDF's y-up space, so the y-down skin transform is conjugated with a flip
// about the page height.
func (d *Document) transformBegin() {
	m := d.ctx.Transform().Affine()
	h := d.size.Ht
	d.pdf.TransformBegin()
	if m == vector.Identity {
		return
	}
	d.pdf.Transform(pageMatrix(m, h))
}

// pageMatrix returns flip * m * flip, where flip maps y to h-y.
func pageMatrix(m vector.Affine2D, h float64) gofpdf.TransformMatrix {
	a, b, c, d, e, f := float64(m.A), float64(m.B), float64(m.C), float64(m.D), float64(m.E), float64(m.F)
	return gofpdf.TransformMatrix{A: a, B: -b, C: -c, D: d, E: c*h + e, F: h - d*h - f}
}

func (d *Document) transformEnd() {
	d.pdf.SetAlpha(1, "Normal")
	d.pdf.TransformEnd()
}

// Write finishes the document into w.
func (d *Document) Write(w io.Writer) error {
	d.endClip()
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Save finishes the document into a file, creating its directory.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	d.endClip()
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setFill(p *gofpdf.Fpdf, c vector.Color) {
	p.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.SetAlpha(float64(c.A)/255, "Normal")
}
