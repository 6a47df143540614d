/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"

	applog "mediaskin/internal/log"
)

// FaceFactory creates backend faces for font definitions. Each draw backend
// supplies one.
type FaceFactory interface {
	NewFace(def FontDef) (FontFace, error)
}

// FontManager owns the fonts of a running skin. Fonts are created on first
// use from the definitions in its FontSet.
type FontManager struct {
	gfx     Graphics
	factory FaceFactory
	set     *FontSet
	fonts   map[string]*Font
	order   []string
}

func NewFontManager(gfx Graphics, factory FaceFactory, set *FontSet) *FontManager {
	if set == nil {
		set = NewFontSet()
	}
	return &FontManager{gfx: gfx, factory: factory, set: set, fonts: map[string]*Font{}}
}

// SetFontSet replaces the definitions and drops every loaded font.
func (m *FontManager) SetFontSet(set *FontSet) {
	if set == nil {
		set = NewFontSet()
	}
	m.set = set
	m.Clear()
}

func (m *FontManager) FontSet() *FontSet { return m.set }

// LoadFont creates a font from def and registers it under def.Name,
// replacing any font of that name.
func (m *FontManager) LoadFont(def FontDef) (*Font, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("load font: empty name")
	}
	if m.factory == nil {
		return nil, fmt.Errorf("load font %s: no face factory", def.Name)
	}
	face, err := m.factory.NewFace(def)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", def.Name, err)
	}
	f := NewFont(def, face, m.gfx)
	if _, ok := m.fonts[def.Name]; !ok {
		m.order = append(m.order, def.Name)
	}
	m.fonts[def.Name] = f
	applog.WithComponent("fonts").Debug("font loaded", "name", def.Name, "family", def.Family, "size", def.Size, "style", def.Style.String())
	return f, nil
}

// Lookup returns a font that is already loaded.
func (m *FontManager) Lookup(name string) (*Font, bool) {
	f, ok := m.fonts[name]
	return f, ok
}

// Font returns the named font, loading it from the font set if needed.
// Unknown or broken fonts fall back to DefaultFontName and then to any
// loaded font; nil is returned only when nothing can be loaded.
func (m *FontManager) Font(name string) *Font {
	if f := m.load(name); f != nil {
		return f
	}
	if name != DefaultFontName {
		applog.WithComponent("fonts").Warn("font not found, using default", "name", name, "default", DefaultFontName)
		if f := m.load(DefaultFontName); f != nil {
			return f
		}
	}
	if len(m.order) > 0 {
		return m.fonts[m.order[0]]
	}
	return nil
}

func (m *FontManager) load(name string) *Font {
	if f, ok := m.fonts[name]; ok {
		return f
	}
	def, ok := m.set.Resolve(name)
	if !ok {
		return nil
	}
	def.Name = name
	f, err := m.LoadFont(def)
	if err != nil {
		applog.WithComponent("fonts").Error("font load failed", "name", name, "err", err)
		return nil
	}
	return f
}

// Names lists loaded fonts in load order.
func (m *FontManager) Names() []string { return append([]string(nil), m.order...) }

// Clear unloads every font.
func (m *FontManager) Clear() {
	m.fonts = map[string]*Font{}
	m.order = nil
}
