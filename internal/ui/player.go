/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui holds the interactive front-ends: a terminal marquee built on
// bubbletea and, in fyne builds, a desktop preview window.
package ui

import (
	"sort"
	"time"

	"mediaskin/internal/condition"
	"mediaskin/internal/control"
	"mediaskin/internal/render"
)

// Target is a draw backend a window can be played on.
type Target interface {
	BeginFrame(now uint32)
	Context() *render.Context
}

// Player drives a window on a target with a wall clock. Frame times are
// milliseconds since Start and wrap like the skin clock does.
type Player struct {
	Window *control.Window
	Target Target
	Flags  *condition.Flags

	names  []string
	start  time.Time
	now    uint32
	paused bool
	frames int
}

// NewPlayer creates a player. flagNames are the toggles offered to the
// user, sorted for stable key bindings.
func NewPlayer(w *control.Window, t Target, flags *condition.Flags, flagNames []string) *Player {
	names := append([]string(nil), flagNames...)
	sort.Strings(names)
	return &Player{Window: w, Target: t, Flags: flags, names: names}
}

// Start opens the window and anchors the clock at t.
func (p *Player) Start(t time.Time) {
	p.start = t
	p.now = 0
	p.Window.Open()
}

// Tick advances to wall time t and draws a frame. A paused player draws
// nothing, so the target keeps the frame it paused on and marquees hold
// their position.
func (p *Player) Tick(t time.Time) {
	if p.paused {
		return
	}
	p.Step(uint32(t.Sub(p.start).Milliseconds()))
}

// Step draws the frame at skin time now.
func (p *Player) Step(now uint32) {
	p.now = now
	p.Target.BeginFrame(now)
	p.Window.Frame(p.Target.Context(), now)
	p.frames++
}

// TogglePause freezes or resumes the clock. Resuming shifts the anchor so
// that time continues from the paused frame.
func (p *Player) TogglePause(t time.Time) {
	if p.paused {
		p.start = t.Add(-time.Duration(p.now) * time.Millisecond)
	}
	p.paused = !p.paused
}

// Toggle flips the i-th user flag and reports its name and new value.
func (p *Player) Toggle(i int) (string, bool, bool) {
	if p.Flags == nil || i < 0 || i >= len(p.names) {
		return "", false, false
	}
	name := p.names[i]
	return name, p.Flags.Toggle(name), true
}

// FlagNames returns the toggles in key order.
func (p *Player) FlagNames() []string { return append([]string(nil), p.names...) }

func (p *Player) Now() uint32  { return p.now }
func (p *Player) Paused() bool { return p.paused }
func (p *Player) Frames() int  { return p.frames }
