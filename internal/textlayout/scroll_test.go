/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"math"
	"testing"
)

func TestScrollInfo_Defaults(t *testing.T) {
	s := DefaultScrollInfo()
	if !near(s.PixelSpeed, 0.06) {
		t.Fatalf("speed = %v px/ms", s.PixelSpeed)
	}
	if s.WaitTime != 50 || s.Suffix != " | " {
		t.Fatalf("defaults = %+v", s)
	}
	if z := NewScrollInfo(0, 12, 0, ""); !near(z.PixelSpeed, 0.06) || z.PixelPos != -12 {
		t.Fatalf("zero speed should select default, initial pos should be negated: %+v", z)
	}
}

func TestScrollInfo_EMAConverges(t *testing.T) {
	s := NewScrollInfo(0, 0, 60, "")
	now := uint32(1000)
	var px float32
	for i := 0; i < 500; i++ {
		now += 40
		px = s.PixelsThisFrame(now)
	}
	if d := math.Abs(float64(s.AverageFrameTime() - 40)); d > 0.25 {
		t.Fatalf("average frame time = %v after 500 frames", s.AverageFrameTime())
	}
	if math.Abs(float64(px-s.PixelSpeed*s.AverageFrameTime())) > 1e-6 {
		t.Fatalf("pixels = %v", px)
	}
}

func TestScrollInfo_FirstFrameUsesAverage(t *testing.T) {
	s := NewScrollInfo(0, 0, 60, "")
	before := s.AverageFrameTime()
	s.PixelsThisFrame(5000)
	if s.AverageFrameTime() != before {
		t.Fatalf("first frame moved the average: %v -> %v", before, s.AverageFrameTime())
	}
	s.PixelSpeed = 0
	if got := s.PixelsThisFrame(6000); got != 0 {
		t.Fatalf("stopped scroller moved %v", got)
	}
}

func TestScrollInfo_CurrentChar(t *testing.T) {
	s := NewScrollInfo(0, 0, 60, " | ")
	text := Plain("ab")
	for pos, want := range map[int]rune{0: 'a', 1: 'b', 2: ' ', 3: '|', 4: ' ', 5: 'a'} {
		s.CharacterPos = pos
		if got := s.CurrentChar(text).Rune; got != want {
			t.Errorf("pos %d: %q, want %q", pos, got, want)
		}
	}
}

func TestScrollInfo_AdvanceForwardWraps(t *testing.T) {
	m := newMonoFace()
	s := NewScrollInfo(0, 0, 60, "|")
	s.PixelSpeed = 0.72 // 12px per frame at the initial 16.67ms average
	text := Plain("ab")

	// frame time stays 0 so every frame uses the average as delta
	if off := s.advance(m, text, 0); s.CharacterPos != 1 || !near(off, 2) {
		t.Fatalf("frame 1: pos=%d off=%v", s.CharacterPos, off)
	}
	if off := s.advance(m, text, 0); s.CharacterPos != 2 || !near(off, 4) {
		t.Fatalf("frame 2: pos=%d off=%v", s.CharacterPos, off)
	}
	s.advance(m, text, 0)
	if s.CharacterPos != 0 || s.PixelPos != 0 {
		t.Fatalf("frame 3 should wrap and reset: %+v", s)
	}
}

func TestScrollInfo_AdvanceReverseWraps(t *testing.T) {
	m := newMonoFace()
	s := NewScrollInfo(0, 0, 60, "|")
	s.PixelSpeed = -0.72
	off := s.advance(m, Plain("ab"), 0)
	if s.CharacterPos != 2 {
		t.Fatalf("reverse wrap should land on the last suffix char, pos=%d", s.CharacterPos)
	}
	if off != 10 {
		t.Fatalf("offset = %v", off)
	}
}

func TestScrollInfo_WaitFrames(t *testing.T) {
	s := NewScrollInfo(2, 0, 60, "")
	m := newMonoFace()
	for i := 0; i < 2; i++ {
		s.advance(m, Plain("abc"), 0)
	}
	if s.WaitTime != 0 || s.CharacterPos != 0 || s.PixelPos != 0 {
		t.Fatalf("waiting scroller moved: %+v", s)
	}
	s.advance(m, Plain("abc"), 0)
	if s.PixelPos <= 0 {
		t.Fatalf("scroller should move after the wait: %+v", s)
	}
}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }
