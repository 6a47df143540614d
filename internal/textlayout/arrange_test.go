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

func glyphText(gs []Glyph) string {
	var t Text
	for _, g := range gs {
		t = append(t, g.Char)
	}
	return t.String()
}

func TestArrange_Alignment(t *testing.T) {
	m := newMonoFace()
	colors := []vector.Color{vector.White}
	cases := []struct {
		align Align
		x0    float32
	}{
		{AlignLeft, 100},
		{AlignRight, 70},
		{AlignCenterX, 85},
	}
	for _, tc := range cases {
		gs := Arrange(m, 100, 0, colors, Plain("abc"), tc.align, 0)
		if len(gs) != 3 || gs[0].X != tc.x0 {
			t.Errorf("align %v: first glyph at %v, want %v", tc.align, gs[0].X, tc.x0)
		}
	}
	gs := Arrange(m, 0, 50, colors, Plain("a"), AlignCenterY, 0)
	if gs[0].Y != 40 {
		t.Fatalf("center y = %v, want 40", gs[0].Y)
	}
}

func TestArrange_Truncated(t *testing.T) {
	gs := Arrange(newMonoFace(), 0, 0, nil, Plain("abcdefghij"), AlignTruncated, 50)
	if got := glyphText(gs); got != "ab..." {
		t.Fatalf("truncated = %q", got)
	}
	// fits: no ellipsis
	gs = Arrange(newMonoFace(), 0, 0, nil, Plain("abcde"), AlignTruncated, 50)
	if got := glyphText(gs); got != "abcde" {
		t.Fatalf("fitting text = %q", got)
	}
	// right aligned truncated text is shifted by maxWidth only
	gs = Arrange(newMonoFace(), 100, 0, nil, Plain("abcdefghij"), AlignTruncated|AlignRight, 50)
	if gs[0].X != 50 {
		t.Fatalf("right truncated start = %v", gs[0].X)
	}
}

func TestArrange_Justified(t *testing.T) {
	gs := Arrange(newMonoFace(), 0, 0, nil, Plain("a b c"), AlignJustified, 90)
	want := []float32{0, 10, 40, 50, 80}
	for i, g := range gs {
		if g.X != want[i] {
			t.Fatalf("glyph %d at %v, want %v", i, g.X, want[i])
		}
	}
	// no width: justification is ignored
	gs = Arrange(newMonoFace(), 0, 0, nil, Plain("a b"), AlignJustified, 0)
	if gs[2].X != 20 {
		t.Fatalf("unjustified glyph at %v", gs[2].X)
	}
}

func TestArrange_StopsPastMaxWidth(t *testing.T) {
	gs := Arrange(newMonoFace(), 0, 0, nil, Plain("abcdefghij"), AlignLeft, 25)
	if got := glyphText(gs); got != "abc" {
		t.Fatalf("clipped = %q", got)
	}
}

func TestArrange_ColorFallback(t *testing.T) {
	text := Text{{Rune: 'a', Color: 1}, {Rune: 'b', Color: 7}}
	gs := Arrange(newMonoFace(), 0, 0, []vector.Color{vector.White, red}, text, AlignLeft, 0)
	if gs[0].Color != red || gs[1].Color != vector.White {
		t.Fatalf("colors = %v %v", gs[0].Color, gs[1].Color)
	}
	if Arrange(nil, 0, 0, nil, text, 0, 0) != nil {
		t.Fatalf("nil metrics should arrange nothing")
	}
}

func TestParseAlign(t *testing.T) {
	if got := ParseAlign("center truncated", "center"); got != AlignCenterX|AlignTruncated|AlignCenterY {
		t.Fatalf("ParseAlign = %v", got)
	}
	if got := ParseAlign("", ""); got != AlignLeft {
		t.Fatalf("default align = %v", got)
	}
}
