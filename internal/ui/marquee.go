/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	applog "mediaskin/internal/log"
	"mediaskin/internal/render/term"
)

// MarqueeOptions tune the terminal player.
type MarqueeOptions struct {
	FPS       int
	AltScreen bool
}

type tickMsg time.Time

var statusStyle = lipgloss.NewStyle().Faint(true)

// marquee is the bubbletea model around a Player on a term.Screen.
type marquee struct {
	p      *Player
	screen *term.Screen
	frame  time.Duration
	width  int
	note   string
	quit   bool
}

func newMarquee(p *Player, screen *term.Screen, fps int) *marquee {
	if fps <= 0 {
		fps = 30
	}
	return &marquee{p: p, screen: screen, frame: time.Second / time.Duration(fps)}
}

func (m *marquee) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *marquee) Init() tea.Cmd {
	m.p.Start(time.Now())
	return m.tick()
}

func (m *marquee) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.p.Tick(time.Time(msg))
		if m.quit && m.p.Window.IsClosed() {
			return m, tea.Quit
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			// Play the close animations before leaving.
			if !m.quit {
				m.quit = true
				if m.p.Paused() {
					m.p.TogglePause(time.Now())
				}
				m.p.Window.Close()
			}
		case " ":
			m.p.TogglePause(time.Now())
		case "tab":
			if c := m.p.Window.FocusNext(); c != nil {
				m.note = fmt.Sprintf("focus %d", c.ID())
			}
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				if name, v, ok := m.p.Toggle(int(key[0] - '1')); ok {
					m.note = fmt.Sprintf("%s=%v", name, v)
				}
			}
		}
	}
	return m, nil
}

func (m *marquee) View() string {
	var b strings.Builder
	b.WriteString(m.screen.Render())
	b.WriteByte('\n')
	b.WriteString(statusStyle.Render(m.status()))
	return b.String()
}

func (m *marquee) status() string {
	parts := []string{fmt.Sprintf("%6dms", m.p.Now())}
	if m.p.Paused() {
		parts = append(parts, "paused")
	}
	for i, n := range m.p.FlagNames() {
		if i == 9 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d:%s=%v", i+1, n, m.p.Flags.Get(n)))
	}
	parts = append(parts, "space pause", "tab focus", "q quit")
	if m.note != "" {
		parts = append(parts, m.note)
	}
	s := strings.Join(parts, "  ")
	if m.width > 0 && len(s) > m.width {
		s = s[:m.width]
	}
	return s
}

// RunMarquee plays a window on the terminal until the user quits.
func RunMarquee(p *Player, screen *term.Screen, opts MarqueeOptions) error {
	l := applog.WithComponent("ui")
	var popts []tea.ProgramOption
	if opts.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	prog := tea.NewProgram(newMarquee(p, screen, opts.FPS), popts...)
	if _, err := prog.Run(); err != nil {
		l.Error("marquee failed", "err", err)
		return fmt.Errorf("run marquee: %w", err)
	}
	l.Info("marquee finished", "frames", p.Frames())
	return nil
}
