/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "math"

// DefaultScrollSpeed is the marquee speed in pixels per second.
const DefaultScrollSpeed = 60

// DefaultScrollSuffix separates the end of a scrolling text from its restart.
const DefaultScrollSuffix = " | "

// frameTimeSmoothing is the weight of the newest frame time in the average.
const frameTimeSmoothing = 0.01

// ScrollInfo is the per-label state of a marquee. PixelPos is the offset
// into the character at CharacterPos; a negative value means the text has
// not entered the viewport yet.
type ScrollInfo struct {
	PixelPos     float32
	PixelSpeed   float32 // px per ms, negative scrolls right to left
	CharacterPos int
	WaitTime     uint // frames left before scrolling (re)starts
	InitialWait  uint
	InitialPos   float32
	Suffix       string

	suffix           Text
	averageFrameTime float32
	lastFrameTime    uint32
}

// NewScrollInfo returns a reset scroller. speed is in pixels per second;
// zero selects DefaultScrollSpeed.
func NewScrollInfo(wait uint, pos float32, speed int, suffix string) *ScrollInfo {
	s := &ScrollInfo{InitialWait: wait, InitialPos: pos}
	s.SetSpeed(speed)
	s.SetSuffix(suffix)
	s.Reset()
	return s
}

// DefaultScrollInfo matches the stock label marquee: 50 frame wait, no
// initial offset, default speed and suffix.
func DefaultScrollInfo() *ScrollInfo {
	return NewScrollInfo(50, 0, DefaultScrollSpeed, DefaultScrollSuffix)
}

// SetSpeed sets the speed in pixels per second; zero selects the default.
func (s *ScrollInfo) SetSpeed(speed int) {
	if speed == 0 {
		speed = DefaultScrollSpeed
	}
	s.PixelSpeed = float32(speed) * 0.001
}

func (s *ScrollInfo) SetSuffix(suffix string) {
	s.Suffix = suffix
	s.suffix = Plain(suffix)
}

// Reset rewinds to the initial wait and position and restarts frame timing.
func (s *ScrollInfo) Reset() {
	s.WaitTime = s.InitialWait
	s.CharacterPos = 0
	s.PixelPos = -s.InitialPos
	s.averageFrameTime = 1000.0 / DefaultScrollSpeed
	s.lastFrameTime = 0
	if s.suffix == nil && s.Suffix != "" {
		s.suffix = Plain(s.Suffix)
	}
}

// AverageFrameTime is the smoothed frame time in ms.
func (s *ScrollInfo) AverageFrameTime() float32 { return s.averageFrameTime }

// PixelsThisFrame advances the frame time average with the frame clock now
// (ms) and returns how far the marquee moves this frame. The first call after
// Reset uses the current average as the frame delta.
func (s *ScrollInfo) PixelsThisFrame(now uint32) float32 {
	if s.PixelSpeed == 0 {
		return 0
	}
	delta := s.averageFrameTime
	if s.lastFrameTime != 0 {
		delta = float32(now - s.lastFrameTime)
	}
	s.lastFrameTime = now
	s.averageFrameTime += (delta - s.averageFrameTime) * frameTimeSmoothing
	return s.PixelSpeed * s.averageFrameTime
}

// CurrentChar returns the anchor character within text followed by the
// suffix. text must not be empty.
func (s *ScrollInfo) CurrentChar(text Text) Char {
	switch {
	case s.CharacterPos < len(text):
		return text[s.CharacterPos]
	case s.CharacterPos < len(text)+len(s.suffix):
		return s.suffix[s.CharacterPos-len(text)]
	default:
		return text[0]
	}
}

// cycleLen is the length of text plus suffix.
func (s *ScrollInfo) cycleLen(text Text) int { return len(text) + len(s.suffix) }

// at returns the character i positions into the endless text+suffix loop.
func (s *ScrollInfo) at(text Text, i int) Char {
	if i < len(text) {
		return text[i]
	}
	return s.suffix[i-len(text)]
}

// advance moves the anchor by the pixels this frame and returns the x offset
// at which the rotated text must be drawn.
func (s *ScrollInfo) advance(m Metrics, text Text, now uint32) float32 {
	if s.WaitTime > 0 {
		s.WaitTime--
		return s.PixelPos
	}
	amount := float32(math.Abs(float64(s.PixelsThisFrame(now))))
	switch {
	case s.PixelSpeed > 0:
		charWidth := m.CharWidth(s.CurrentChar(text))
		if s.PixelPos+amount < charWidth {
			s.PixelPos += amount
		} else {
			for s.PixelPos+amount >= charWidth {
				amount -= charWidth - s.PixelPos
				s.PixelPos = 0
				s.CharacterPos++
				if s.CharacterPos >= s.cycleLen(text) {
					s.Reset()
					amount = 0
					break
				}
				charWidth = m.CharWidth(s.CurrentChar(text))
			}
			s.PixelPos += amount
		}
		return s.PixelPos
	case s.PixelSpeed < 0:
		charWidth := m.CharWidth(s.CurrentChar(text))
		if s.PixelPos+amount < charWidth {
			s.PixelPos += amount
		} else {
			for s.PixelPos+amount >= charWidth {
				amount -= charWidth - s.PixelPos
				s.PixelPos = 0
				if s.CharacterPos == 0 {
					s.Reset()
					s.CharacterPos = s.cycleLen(text) - 1
					amount = 0
					break
				}
				s.CharacterPos--
				charWidth = m.CharWidth(s.CurrentChar(text))
			}
			s.PixelPos += amount
		}
		return charWidth - s.PixelPos
	}
	return s.PixelPos
}
