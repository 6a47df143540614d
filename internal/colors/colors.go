/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package colors resolves skin color names. A skin may ship a YAML color
// file that adds to or overrides the builtin names:
//
//	colors:
//	  highlight: FF12B2E7
//	  dim: "#80000000"
package colors

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	applog "mediaskin/internal/log"
	"mediaskin/internal/vector"
)

var builtin = map[string]uint32{
	"white":     0xffffffff,
	"black":     0xff000000,
	"red":       0xffff0000,
	"green":     0xff00ff00,
	"blue":      0xff0000ff,
	"yellow":    0xffffff00,
	"cyan":      0xff00ffff,
	"magenta":   0xffff00ff,
	"orange":    0xffffa500,
	"grey":      0xff808080,
	"gray":      0xff808080,
	"lightgrey": 0xffd3d3d3,
	"darkgrey":  0xff404040,
	"selected":  0xffeb9e17,
	"invalid":   0xffff3333,
	"disabled":  0xff606060,
	"shadow":    0xff000000,
	"none":      0x00000000,
}

// File is the on-disk color file.
type File struct {
	Colors map[string]string `yaml:"colors"`
}

// Manager maps names to colors. The zero value is not usable; call New.
type Manager struct {
	mu    sync.RWMutex
	named map[string]vector.Color
}

// New returns a manager holding the builtin names.
func New() *Manager {
	m := &Manager{named: make(map[string]vector.Color, len(builtin))}
	for k, v := range builtin {
		m.named[k] = vector.ARGB(v)
	}
	return m
}

// Set defines or replaces a named color.
func (m *Manager) Set(name string, c vector.Color) {
	m.mu.Lock()
	m.named[strings.ToLower(strings.TrimSpace(name))] = c
	m.mu.Unlock()
}

// Lookup returns a named color without hex fallback.
func (m *Manager) Lookup(name string) (vector.Color, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.named[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ResolveColor resolves a name or a hex value (AARRGGBB or RRGGBB, with an
// optional '#' or 0x prefix). Names win over hex so that a skin can call a
// color "deadbeef". Unknown values resolve to the zero color.
func (m *Manager) ResolveColor(name string) vector.Color {
	if c, ok := m.Lookup(name); ok {
		return c
	}
	if c, ok := vector.ParseHex(name); ok {
		return c
	}
	return vector.Color{}
}

// Names lists the defined names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.named))
	for k := range m.named {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge adds the colors of a decoded file. Values may reference another
// name. It returns the names it could not resolve.
func (m *Manager) Merge(f File) []string {
	var bad []string
	keys := make([]string, 0, len(f.Colors))
	for k := range f.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := f.Colors[k]
		c, ok := vector.ParseHex(v)
		if !ok {
			c, ok = m.Lookup(v)
		}
		if !ok {
			bad = append(bad, k)
			continue
		}
		m.Set(k, c)
	}
	return bad
}

// Parse decodes YAML color data into m.
func (m *Manager) Parse(data []byte) ([]string, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse colors: %w", err)
	}
	return m.Merge(f), nil
}

// Load reads a YAML color file. Entries with invalid values are skipped
// and logged.
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read colors: %w", err)
	}
	bad, err := m.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	lg := applog.WithComponent("colors")
	for _, name := range bad {
		lg.Warn("invalid color value", "file", path, "name", name)
	}
	lg.Debug("colors loaded", "file", path, "count", len(m.Names()))
	return nil
}
