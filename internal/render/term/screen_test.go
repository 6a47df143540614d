/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package term

import (
	"strings"
	"testing"

	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

func setup(cols, rows int) (*Screen, *textlayout.Font) {
	s := New(cols, rows, 0, 0)
	s.BeginFrame(0)
	fonts := textlayout.NewFontManager(s.Context(), s, nil)
	return s, fonts.Font("font13")
}

func TestDrawText(t *testing.T) {
	s, f := setup(20, 3)
	f.DrawText(0, 0, nil, vector.Color{}, textlayout.Plain("Hello"), 0, 0)
	lines := s.Lines()
	if !strings.HasPrefix(lines[0], "Hello ") || strings.TrimSpace(lines[1]) != "" {
		t.Fatalf("lines = %q", lines)
	}
	if c := s.Cell(0, 0); c.Color != vector.White {
		t.Fatalf("cell color = %+v", c.Color)
	}
	if !strings.Contains(s.Render(), "Hello") {
		t.Fatalf("render lost text: %q", s.Render())
	}
}

func TestClipAndTransform(t *testing.T) {
	s, f := setup(20, 3)
	f.DrawText(0, 0, nil, vector.Color{}, textlayout.Plain("Hello"), 0, 30)
	if got := strings.TrimRight(s.Lines()[0], " "); got != "Hel" {
		t.Fatalf("clipped line = %q", got)
	}
	s.Context().PushTransform(vector.Translation(20, 20))
	f.DrawText(0, 0, nil, vector.Color{}, textlayout.Plain("ab"), 0, 0)
	s.Context().PopTransform()
	if got := s.Lines()[1]; got[2:4] != "ab" {
		t.Fatalf("translated line = %q", got)
	}
}

func TestRightAlignAndFaint(t *testing.T) {
	s, f := setup(10, 1)
	var fade vector.TransformMatrix
	fade.SetFader(0.4)
	s.Context().PushTransform(fade)
	f.DrawText(100, 0, nil, vector.Color{}, textlayout.Plain("end"), textlayout.AlignRight, 0)
	s.Context().PopTransform()
	if got := s.Lines()[0]; got != "       end" {
		t.Fatalf("right aligned = %q", got)
	}
	if c := s.Cell(9, 0); c.Color.A >= faintAlpha || c.Rune != 'd' {
		t.Fatalf("faded cell = %+v", c)
	}
}

func TestWideRunes(t *testing.T) {
	s, f := setup(10, 1)
	f.DrawText(0, 0, nil, vector.Color{}, textlayout.Plain("日本x"), 0, 0)
	if got := strings.TrimRight(s.Lines()[0], " "); got != "日本x" {
		t.Fatalf("wide line = %q", got)
	}
	if s.Cell(1, 0).Rune != 0 || s.Cell(4, 0).Rune != 'x' {
		t.Fatalf("wide cells = %+v %+v", s.Cell(1, 0), s.Cell(4, 0))
	}
}

func TestForViewport(t *testing.T) {
	s := ForViewport(1280, 720, 0, 0)
	if c, r := s.Size(); c != 128 || r != 36 {
		t.Fatalf("size = %dx%d", c, r)
	}
}
