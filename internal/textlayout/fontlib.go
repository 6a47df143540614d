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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	applog "mediaskin/internal/log"
)

// FontLibrary stores parsed OpenType fonts by family and style.
type FontLibrary struct {
	fonts map[fontKey]*opentype.Font
}

type fontKey struct {
	family string
	bold   bool
	italic bool
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[fontKey]*opentype.Font)} }

// Add registers a parsed font. An empty family is read from the font names.
func (fl *FontLibrary) Add(family string, style Style, f *opentype.Font) {
	if fl.fonts == nil {
		fl.fonts = make(map[fontKey]*opentype.Font)
	}
	if family == "" {
		family, style = describe(f)
	}
	fl.fonts[fontKey{family: strings.ToLower(family), bold: style.Has(StyleBold), italic: style.Has(StyleItalic)}] = f
}

// LoadTTF loads a font file into the library. An empty family uses the
// family and subfamily names stored in the file.
func (fl *FontLibrary) LoadTTF(family string, style Style, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	fl.Add(family, style, f)
	return nil
}

// LoadDir loads every .ttf and .otf file in dir. Files that fail to parse
// are logged and skipped; the count of loaded fonts is returned.
func (fl *FontLibrary) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read font dir %s: %w", dir, err)
	}
	lg := applog.WithComponent("fonts")
	n := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := fl.LoadTTF("", 0, p); err != nil {
			lg.Warn("skip font file", "path", p, "err", err)
			continue
		}
		n++
	}
	lg.Debug("font dir loaded", "dir", dir, "fonts", n)
	return n, nil
}

// Families lists the loaded family names.
func (fl *FontLibrary) Families() []string {
	seen := map[string]bool{}
	var out []string
	for k := range fl.fonts {
		if !seen[k.family] {
			seen[k.family] = true
			out = append(out, k.family)
		}
	}
	sort.Strings(out)
	return out
}

// Find returns the font for family and style: an exact match first, then
// the same family in any style.
func (fl *FontLibrary) Find(family string, style Style) *opentype.Font {
	if fl == nil || fl.fonts == nil {
		return nil
	}
	family = strings.ToLower(family)
	if f, ok := fl.fonts[fontKey{family: family, bold: style.Has(StyleBold), italic: style.Has(StyleItalic)}]; ok {
		return f
	}
	if f, ok := fl.fonts[fontKey{family: family}]; ok {
		return f
	}
	for k, f := range fl.fonts {
		if k.family == family {
			return f
		}
	}
	return nil
}

// Metrics builds FaceMetrics for family at size pixels. Styles without their
// own font file reuse the regular face. ok is false when the family is unknown.
func (fl *FontLibrary) Metrics(family string, size float32) (*FaceMetrics, bool, error) {
	if fl.Find(family, 0) == nil {
		return nil, false, nil
	}
	newFace := func(s Style) (font.Face, error) {
		key := fontKey{family: strings.ToLower(family), bold: s.Has(StyleBold), italic: s.Has(StyleItalic)}
		f, ok := fl.fonts[key]
		if !ok {
			return nil, nil
		}
		// 72 DPI makes the point size equal to pixels
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("new face %s %s: %w", family, s, err)
		}
		return face, nil
	}
	m := &FaceMetrics{SyntheticBold: max(1, size/24)}
	var err error
	if m.Regular, err = newFace(0); err != nil {
		return nil, true, err
	}
	if m.Bold, err = newFace(StyleBold); err != nil {
		return nil, true, err
	}
	if m.Italic, err = newFace(StyleItalic); err != nil {
		return nil, true, err
	}
	if m.BoldItalic, err = newFace(StyleBold | StyleItalic); err != nil {
		return nil, true, err
	}
	if m.Regular == nil {
		// only styled files were loaded for this family
		for _, f := range []font.Face{m.Bold, m.Italic, m.BoldItalic} {
			if f != nil {
				m.Regular = f
				break
			}
		}
	}
	return m, true, nil
}

// describe reads family and style from the name table.
func describe(f *opentype.Font) (string, Style) {
	var buf sfnt.Buffer
	family, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil || family == "" {
		family = "unknown"
	}
	sub, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	return family, ParseStyle(sub)
}
