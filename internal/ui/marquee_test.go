/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mediaskin/internal/anim"
	"mediaskin/internal/condition"
	"mediaskin/internal/control"
	"mediaskin/internal/render/term"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

func testPlayer(t *testing.T) (*Player, *term.Screen) {
	t.Helper()
	s := term.New(20, 3, 10, 20)
	fonts := textlayout.NewFontManager(s.Context(), s, nil)
	flags := condition.NewFlags(map[string]bool{"b": false, "a": true})
	reg := condition.NewRegistry(flags)
	w := control.NewWindow(0, vector.R(0, 0, 200, 60), reg)
	w.AddAnimation(anim.New(anim.Params{Type: anim.TypeWindowClose, Effect: anim.EffectFade, Length: 100, Start: vector.Pt{X: 100}, End: vector.Pt{X: 0}}))
	l := control.NewLabel(1, vector.R(0, 0, 200, 20), control.LabelStyle{Font: fonts.Font("font13"), TextColor: vector.White}, nil, nil)
	l.SetText("now playing")
	h, err := reg.Register("a")
	if err != nil {
		t.Fatal(err)
	}
	l.SetVisibleCondition(h)
	w.Add(l)
	return NewPlayer(w, s, flags, []string{"b", "a"}), s
}

func TestPlayerClockAndPause(t *testing.T) {
	p, s := testPlayer(t)
	t0 := time.Unix(1000, 0)
	p.Start(t0)
	p.Tick(t0.Add(50 * time.Millisecond))
	if p.Now() != 50 {
		t.Fatalf("now = %d", p.Now())
	}
	if got := s.Lines()[0]; !strings.HasPrefix(got, "now playing") {
		t.Fatalf("row 0 = %q", got)
	}
	p.TogglePause(t0.Add(60 * time.Millisecond))
	p.Tick(t0.Add(500 * time.Millisecond))
	if p.Now() != 50 || !p.Paused() {
		t.Fatalf("paused clock moved to %d", p.Now())
	}
	p.TogglePause(t0.Add(1000 * time.Millisecond))
	p.Tick(t0.Add(1010 * time.Millisecond))
	if p.Now() != 60 {
		t.Fatalf("resumed clock = %d", p.Now())
	}
	if p.Frames() != 2 {
		t.Fatalf("frames = %d", p.Frames())
	}
}

func TestPlayerPauseHoldsMarquee(t *testing.T) {
	s := term.New(5, 1, 10, 20)
	fonts := textlayout.NewFontManager(s.Context(), s, nil)
	w := control.NewWindow(0, vector.R(0, 0, 50, 20), condition.NewRegistry(condition.NewFlags(nil)))
	scroll := textlayout.NewScrollInfo(0, 0, 600, "|")
	l := control.NewLabel(1, vector.R(0, 0, 50, 20), control.LabelStyle{Font: fonts.Font("font13"), TextColor: vector.White, Scroll: true}, nil, scroll)
	l.SetText("abcdefghijklmnopqrstuvwxyz")
	w.Add(l)
	p := NewPlayer(w, s, nil, nil)
	t0 := time.Unix(0, 0)
	p.Start(t0)
	for i := 0; i < 5; i++ {
		p.Tick(t0.Add(time.Duration(i*20) * time.Millisecond))
	}
	row, pos, frames := s.Lines()[0], scroll.CharacterPos, p.Frames()
	p.TogglePause(t0.Add(100 * time.Millisecond))
	for i := 5; i < 60; i++ {
		p.Tick(t0.Add(time.Duration(i*20) * time.Millisecond))
	}
	if got := s.Lines()[0]; got != row {
		t.Fatalf("paused row moved: %q -> %q", row, got)
	}
	if scroll.CharacterPos != pos {
		t.Fatalf("paused scroll moved: %d -> %d", pos, scroll.CharacterPos)
	}
	if p.Frames() != frames {
		t.Fatalf("paused player drew %d frames", p.Frames()-frames)
	}
	p.TogglePause(t0.Add(1200 * time.Millisecond))
	for i := 61; i < 70; i++ {
		p.Tick(t0.Add(time.Duration(i*20) * time.Millisecond))
	}
	if scroll.CharacterPos == pos && s.Lines()[0] == row {
		t.Fatalf("resumed marquee did not move")
	}
}

func TestPlayerToggle(t *testing.T) {
	p, s := testPlayer(t)
	if names := p.FlagNames(); len(names) != 2 || names[0] != "a" {
		t.Fatalf("names = %v", names)
	}
	t0 := time.Unix(0, 0)
	p.Start(t0)
	p.Tick(t0)
	name, v, ok := p.Toggle(0)
	if !ok || name != "a" || v {
		t.Fatalf("toggle = %s %v %v", name, v, ok)
	}
	p.Tick(t0.Add(20 * time.Millisecond))
	if got := strings.TrimSpace(s.Lines()[0]); got != "" {
		t.Fatalf("hidden label drawn: %q", got)
	}
	if _, _, ok := p.Toggle(5); ok {
		t.Fatalf("out of range toggle accepted")
	}
}

func TestMarqueeKeys(t *testing.T) {
	p, s := testPlayer(t)
	m := newMarquee(p, s, 50)
	if m.frame != 20*time.Millisecond {
		t.Fatalf("frame = %v", m.frame)
	}
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("Init should schedule a tick")
	}
	t0 := time.Now()
	m.Update(tickMsg(t0))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if !strings.Contains(m.note, "b=true") {
		t.Fatalf("note = %q", m.note)
	}
	if !strings.Contains(m.View(), "2:b=true") {
		t.Fatalf("status missing flag: %q", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quit || !p.Window.Closing() {
		t.Fatalf("q did not start closing")
	}
	_, cmd := m.Update(tickMsg(t0.Add(20 * time.Millisecond)))
	if cmd == nil {
		t.Fatalf("expected next tick while closing")
	}
	var last tea.Cmd
	for i := 2; i < 20; i++ {
		_, last = m.Update(tickMsg(t0.Add(time.Duration(i*20) * time.Millisecond)))
		if p.Window.IsClosed() {
			break
		}
	}
	if !p.Window.IsClosed() {
		t.Fatalf("window never closed")
	}
	if msg := last(); msg != (tea.QuitMsg{}) {
		t.Fatalf("expected quit, got %T", msg)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("ctrl+c = %T", msg)
	}
}
