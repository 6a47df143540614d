/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout turns skin label strings into styled, wrapped lines and
// draws them through a font face and a graphics context.
//
// The pipeline is ParseMarkup -> WrapText/LineBreakText -> Font.DrawText.
// TextLayout caches the result of the first two steps per label.
package textlayout

import "strings"

// Style is a set of font style flags. Only bold and italic survive into
// parsed characters; the casing flags apply while parsing.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUppercase
	StyleLowercase
)

const glyphStyles = StyleBold | StyleItalic

func (s Style) Has(f Style) bool { return s&f != 0 }

func (s Style) String() string {
	if s == 0 {
		return "normal"
	}
	var parts []string
	for _, p := range []struct {
		f    Style
		name string
	}{{StyleBold, "bold"}, {StyleItalic, "italic"}, {StyleUppercase, "uppercase"}, {StyleLowercase, "lowercase"}} {
		if s.Has(p.f) {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, " ")
}

// ParseStyle reads a space separated style list such as "bold italic".
// Unknown words are ignored.
func ParseStyle(s string) Style {
	var st Style
	for _, w := range strings.Fields(strings.ToLower(s)) {
		switch w {
		case "bold":
			st |= StyleBold
		case "italics", "italic":
			st |= StyleItalic
		case "uppercase":
			st |= StyleUppercase
		case "lowercase":
			st |= StyleLowercase
		}
	}
	return st
}

// Char is one decoded character with the style and color-table index that
// were active where it was parsed.
type Char struct {
	Rune  rune
	Style Style
	Color uint8
}

// Text is a run of styled characters. A Char with Rune '\n' marks a line break.
type Text []Char

// Plain converts s to unstyled Text without interpreting markup.
func Plain(s string) Text {
	out := make(Text, 0, len(s))
	for _, r := range s {
		out = append(out, Char{Rune: r})
	}
	return out
}

func (t Text) String() string {
	var b strings.Builder
	b.Grow(len(t))
	for _, c := range t {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

func isSpace(r rune) bool { return r == ' ' }

// canWrapAt reports whether a line may be broken at r: spaces and CJK ideographs.
func canWrapAt(r rune) bool { return isSpace(r) || (r >= 0x4e00 && r <= 0x9fff) }
