/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	applog "mediaskin/internal/log"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

// syntheticItalic is the x-shear applied to glyphs of italic text when the
// family has no italic face.
const syntheticItalic = -0.2

var (
	goFontsOnce sync.Once
	goFonts     [4]*truetype.Font
	goFontsErr  error
)

func loadGoFonts() ([4]*truetype.Font, error) {
	goFontsOnce.Do(func() {
		for i, data := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				goFontsErr = fmt.Errorf("parse go font: %w", err)
				return
			}
			goFonts[i] = f
		}
	})
	return goFonts, goFontsErr
}

// GoMetrics returns metrics for the bundled Go fonts at size pixels.
func GoMetrics(size float32) (*textlayout.FaceMetrics, error) {
	fonts, err := loadGoFonts()
	if err != nil {
		return nil, err
	}
	opts := &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull}
	return &textlayout.FaceMetrics{
		Regular:       truetype.NewFace(fonts[0], opts),
		Bold:          truetype.NewFace(fonts[1], opts),
		Italic:        truetype.NewFace(fonts[2], opts),
		BoldItalic:    truetype.NewFace(fonts[3], opts),
		SyntheticBold: max(1, size/24),
	}, nil
}

// NewFace implements textlayout.FaceFactory. A def naming a family loaded
// in the library uses it; a def with a font file loads the file first.
// Everything else falls back to the Go fonts.
func (c *Canvas) NewFace(def textlayout.FontDef) (textlayout.FontFace, error) {
	size := def.Size
	if size <= 0 {
		size = 20
	}
	family := def.Family
	if def.File != "" && c.lib != nil {
		if family == "" {
			family = strings.TrimSuffix(filepath.Base(def.File), filepath.Ext(def.File))
		}
		if c.lib.Find(family, 0) == nil {
			if err := c.lib.LoadTTF(family, 0, def.File); err != nil {
				return nil, fmt.Errorf("font %s: %w", def.Name, err)
			}
		}
	}
	if family != "" && c.lib != nil {
		m, ok, err := c.lib.Metrics(family, size)
		if err != nil {
			return nil, err
		}
		if ok {
			return &face{FaceMetrics: m, c: c}, nil
		}
		applog.WithComponent("raster").Warn("font family not loaded, using Go fonts", "font", def.Name, "family", family)
	}
	m, err := GoMetrics(size)
	if err != nil {
		return nil, err
	}
	return &face{FaceMetrics: m, c: c}, nil
}

type face struct {
	*textlayout.FaceMetrics
	c *Canvas
}

func (f *face) Begin() {}
func (f *face) End()   {}

func (f *face) DrawRun(x, y float32, colors []vector.Color, text textlayout.Text, align textlayout.Align, maxWidth float32) {
	glyphs := textlayout.Arrange(f, x, y, colors, text, align, maxWidth)
	if len(glyphs) == 0 {
		return
	}
	dc := f.c.dc
	dc.Push()
	defer dc.Pop()
	if !f.c.applyTransform() {
		return
	}
	ascent := float64(f.Ascent())
	for _, g := range glyphs {
		if !g.Color.Visible() || g.Char.Rune == ' ' {
			continue
		}
		ff, bold := f.FaceFor(g.Char.Style)
		if ff == nil {
			continue
		}
		italic := g.Char.Style.Has(textlayout.StyleItalic) && f.Italic == nil
		dc.Push()
		dc.Translate(float64(g.X), float64(g.Y)+ascent)
		if italic {
			dc.Shear(syntheticItalic, 0)
		}
		dc.SetFontFace(ff)
		dc.SetColor(g.Color.NRGBA())
		s := string(g.Char.Rune)
		dc.DrawString(s, 0, 0)
		if bold {
			dc.DrawString(s, float64(f.SyntheticBold), 0)
		}
		dc.Pop()
	}
}
