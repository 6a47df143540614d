/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package term renders frames onto a character-cell grid for terminals.
// Skin pixels map to cells of a fixed size, so a skin laid out for
// 1280x720 fits 128x36 cells at the default 10x20 cell size.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mediaskin/internal/render"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

const (
	DefaultCellWidth  = 10
	DefaultCellHeight = 20

	// colors with less alpha than this render faint
	faintAlpha = 160
)

// Cell is one character cell. Rune 0 marks the right half of a wide rune.
type Cell struct {
	Rune  rune
	Style textlayout.Style
	Color vector.Color
}

// Screen is a cell grid bound to a render.Context.
type Screen struct {
	cols, rows   int
	cellW, cellH float32
	cells        []Cell
	clip         vector.Rect
	ctx          *render.Context
}

// New creates a cols x rows screen. Non-positive cell sizes use the defaults.
func New(cols, rows int, cellW, cellH float32) *Screen {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	s := &Screen{cols: cols, rows: rows, cellW: cellW, cellH: cellH, cells: make([]Cell, cols*rows)}
	s.ctx = render.NewContext(int(float32(cols)*cellW), int(float32(rows)*cellH), s)
	s.clip = s.ctx.Viewport()
	return s
}

// ForViewport sizes a screen so that a width x height skin fits.
func ForViewport(width, height int, cellW, cellH float32) *Screen {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	cols := int(math.Ceil(float64(float32(width) / cellW)))
	rows := int(math.Ceil(float64(float32(height) / cellH)))
	return New(cols, rows, cellW, cellH)
}

func (s *Screen) Context() *render.Context { return s.ctx }
func (s *Screen) Size() (cols, rows int)   { return s.cols, s.rows }

// BeginFrame blanks the grid and starts a frame at time now.
func (s *Screen) BeginFrame(now uint32) {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' '}
	}
	s.ctx.BeginFrame(now)
}

// SetClip implements render.Surface.
func (s *Screen) SetClip(r vector.Rect) { s.clip = r }

// Cell returns the cell at col, row.
func (s *Screen) Cell(col, row int) Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return Cell{}
	}
	return s.cells[row*s.cols+col]
}

// put writes r into the cell whose area contains the skin point (x, y)
// after transformation. Points outside the clip are dropped.
func (s *Screen) put(x, y float32, r rune, style textlayout.Style, c vector.Color) {
	p := s.ctx.ToScreen(vector.Pt{X: x, Y: y})
	if !s.clip.Contains(p) {
		return
	}
	col := int(math.Floor(float64(p.X / s.cellW)))
	row := int(math.Floor(float64(p.Y / s.cellH)))
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	s.cells[row*s.cols+col] = Cell{Rune: r, Style: style, Color: c}
	if runewidth.RuneWidth(r) == 2 && col+1 < s.cols {
		s.cells[row*s.cols+col+1] = Cell{Style: style, Color: c}
	}
}

// Lines returns the grid as plain text, one string per row.
func (s *Screen) Lines() []string {
	out := make([]string, s.rows)
	var sb strings.Builder
	for row := 0; row < s.rows; row++ {
		sb.Reset()
		for _, c := range s.cells[row*s.cols : (row+1)*s.cols] {
			if c.Rune != 0 {
				sb.WriteRune(c.Rune)
			}
		}
		out[row] = sb.String()
	}
	return out
}

// Render returns the grid with lipgloss styling: foreground color, bold,
// italic and faint for translucent text.
func (s *Screen) Render() string {
	var out strings.Builder
	for row := 0; row < s.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		line := s.cells[row*s.cols : (row+1)*s.cols]
		for i := 0; i < len(line); {
			j := i
			var run strings.Builder
			for j < len(line) && sameLook(line[i], line[j]) {
				if line[j].Rune != 0 {
					run.WriteRune(line[j].Rune)
				}
				j++
			}
			out.WriteString(styleFor(line[i]).Render(run.String()))
			i = j
		}
	}
	return out.String()
}

func sameLook(a, b Cell) bool {
	return a.Style == b.Style && a.Color == b.Color
}

func styleFor(c Cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.Color.Visible() {
		st = st.Foreground(lipgloss.Color(c.Color.Hex()))
		if c.Color.A < faintAlpha {
			st = st.Faint(true)
		}
	}
	if c.Style.Has(textlayout.StyleBold) {
		st = st.Bold(true)
	}
	if c.Style.Has(textlayout.StyleItalic) {
		st = st.Italic(true)
	}
	return st
}

// NewFace implements textlayout.FaceFactory. Every font measures in whole
// cells regardless of its size.
func (s *Screen) NewFace(textlayout.FontDef) (textlayout.FontFace, error) {
	return &face{s: s}, nil
}

type face struct{ s *Screen }

func (f *face) CharWidth(ch textlayout.Char) float32 {
	return float32(runewidth.RuneWidth(ch.Rune)) * f.s.cellW
}

func (f *face) TextWidth(text textlayout.Text) float32 {
	var w float32
	for _, c := range text {
		w += f.CharWidth(c)
	}
	return w
}

func (f *face) LineHeight() float32 { return f.s.cellH }

func (f *face) Begin() {}
func (f *face) End()   {}

// DrawRun samples each glyph at the middle of its cell, so the +1 pixel
// shadow pass lands in the same cell and is overwritten by the text.
func (f *face) DrawRun(x, y float32, colors []vector.Color, text textlayout.Text, align textlayout.Align, maxWidth float32) {
	for _, g := range textlayout.Arrange(f, x, y, colors, text, align, maxWidth) {
		if !g.Color.Visible() || g.Advance == 0 {
			continue
		}
		f.s.put(g.X+f.s.cellW/2, g.Y+f.s.cellH/2, g.Char.Rune, g.Char.Style, g.Color)
	}
}
