/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"errors"
	"testing"
)

type fakeFactory struct {
	defs []FontDef
}

func (f *fakeFactory) NewFace(def FontDef) (FontFace, error) {
	f.defs = append(f.defs, def)
	if def.Family == "broken" {
		return nil, errors.New("no such file")
	}
	return newMonoFace(), nil
}

func TestFontManager_LoadsLazilyWithFallback(t *testing.T) {
	ff := &fakeFactory{}
	m := NewFontManager(newFakeGfx(), ff, nil)
	f := m.Font("font12")
	if f == nil || f.Name() != "font12" {
		t.Fatalf("font12 = %v", f)
	}
	if again := m.Font("font12"); again != f || len(ff.defs) != 1 {
		t.Fatalf("font should be cached, factory calls = %d", len(ff.defs))
	}
	if f := m.Font("nope"); f == nil || f.Name() != DefaultFontName {
		t.Fatalf("unknown font should fall back to %s, got %v", DefaultFontName, f)
	}
	if names := m.Names(); len(names) != 2 || names[0] != "font12" || names[1] != DefaultFontName {
		t.Fatalf("Names = %v", names)
	}
	if f, ok := m.Lookup("font10"); ok || f != nil {
		t.Fatalf("font10 was never requested")
	}
	m.Clear()
	if len(m.Names()) != 0 {
		t.Fatalf("Clear left fonts")
	}
}

func TestFontManager_WindowOverridesAndBrokenFonts(t *testing.T) {
	ff := &fakeFactory{}
	set := NewFontSet().
		WithSkin(map[string]FontDef{"big": {Size: 40}, "bad": {Family: "broken"}}).
		WithWindow(map[string]FontDef{"font12": {Size: 99}})
	m := NewFontManager(newFakeGfx(), ff, set)
	m.Font("font12")
	if ff.defs[0].Size != 99 || ff.defs[0].Name != "font12" {
		t.Fatalf("window definition should win: %+v", ff.defs[0])
	}
	if f := m.Font("bad"); f == nil || f.Name() != DefaultFontName {
		t.Fatalf("broken font should fall back, got %v", f)
	}
	if _, err := m.LoadFont(FontDef{}); err == nil {
		t.Fatalf("empty name should fail")
	}
	if names := set.Names(); names[len(names)-1] != "big" || len(names) != 7 {
		t.Fatalf("set names = %v", names)
	}

	none := NewFontManager(newFakeGfx(), nil, nil)
	if none.Font("font13") != nil {
		t.Fatalf("manager without factory cannot load fonts")
	}
}

func TestFontSet_Resolve(t *testing.T) {
	base := NewFontSet()
	if d, ok := base.Resolve("font_caps"); !ok || !d.Style.Has(StyleUppercase) {
		t.Fatalf("builtin font_caps = %+v", d)
	}
	over := base.WithSkin(map[string]FontDef{"font_caps": {Size: 5}})
	if d, _ := over.Resolve("font_caps"); d.Size != 5 {
		t.Fatalf("skin override ignored")
	}
	if d, _ := base.Resolve("font_caps"); d.Size == 5 {
		t.Fatalf("WithSkin must not mutate the receiver")
	}
	if _, ok := base.Resolve("unknown"); ok {
		t.Fatalf("unknown font resolved")
	}
}
