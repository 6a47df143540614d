/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"sort"

	"mediaskin/internal/vector"
)

// DefaultFontName is the font used when a label names an unknown font.
const DefaultFontName = "font13"

// FontDef describes a skin font. Size is in pixels at the skin resolution.
type FontDef struct {
	Name        string
	Family      string // family in the FontLibrary; empty selects the backend default
	File        string // optional font file, loaded into the library on demand
	Size        float32
	Style       Style
	Color       vector.Color // text color used for color table entries left at zero
	Shadow      vector.Color
	LineSpacing float32
	Aspect      float32
}

var builtinFonts = map[string]FontDef{
	"font10":     {Name: "font10", Size: 14, Color: vector.White},
	"font12":     {Name: "font12", Size: 16, Color: vector.White},
	"font13":     {Name: "font13", Size: 20, Color: vector.White},
	"font_caps":  {Name: "font_caps", Size: 18, Style: StyleUppercase, Color: vector.White},
	"font_title": {Name: "font_title", Size: 28, Style: StyleBold, Color: vector.White, Shadow: vector.ARGB(0xff000000)},
}

// BuiltinFont returns a builtin definition by name.
func BuiltinFont(name string) (FontDef, bool) { d, ok := builtinFonts[name]; return d, ok }

// BuiltinFontNames lists the builtin fonts from smallest to largest.
func BuiltinFontNames() []string {
	return []string{"font10", "font12", "font13", "font_caps", "font_title"}
}

// FontSet resolves font definitions by name with the precedence
// Window > Skin > Builtin. Skin fonts come from the skin's font file and
// window fonts from a single scene.
type FontSet struct {
	Skin   map[string]FontDef
	Window map[string]FontDef
}

func NewFontSet() *FontSet {
	return &FontSet{Skin: map[string]FontDef{}, Window: map[string]FontDef{}}
}

// WithSkin returns a copy with the given skin fonts merged in.
func (s *FontSet) WithSkin(defs map[string]FontDef) *FontSet {
	cp := s.clone()
	for k, v := range defs {
		cp.Skin[k] = v
	}
	return cp
}

// WithWindow returns a copy with the given window fonts merged in.
func (s *FontSet) WithWindow(defs map[string]FontDef) *FontSet {
	cp := s.clone()
	for k, v := range defs {
		cp.Window[k] = v
	}
	return cp
}

func (s *FontSet) Resolve(name string) (FontDef, bool) {
	if s != nil {
		if d, ok := s.Window[name]; ok {
			return d, true
		}
		if d, ok := s.Skin[name]; ok {
			return d, true
		}
	}
	return BuiltinFont(name)
}

// Names returns builtin names first, then the remaining names sorted.
func (s *FontSet) Names() []string {
	out := BuiltinFontNames()
	seen := map[string]bool{}
	for _, n := range out {
		seen[n] = true
	}
	var extra []string
	if s != nil {
		for _, m := range []map[string]FontDef{s.Skin, s.Window} {
			for k := range m {
				if !seen[k] {
					seen[k] = true
					extra = append(extra, k)
				}
			}
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func (s *FontSet) clone() *FontSet {
	cp := NewFontSet()
	if s == nil {
		return cp
	}
	for k, v := range s.Skin {
		cp.Skin[k] = v
	}
	for k, v := range s.Window {
		cp.Window[k] = v
	}
	return cp
}
