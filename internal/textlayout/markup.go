/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"

	"mediaskin/internal/vector"
)

// ColorResolver turns the argument of a [COLOR ...] directive into a color.
// Unknown names resolve to the zero color, which renders as the font's text color.
type ColorResolver interface {
	ResolveColor(name string) vector.Color
}

// ParseMarkup decodes text with inline [B] [I] [UPPERCASE] [LOWERCASE] [CR]
// and [COLOR x] directives. defaultStyle seeds the running style (a font may
// be bold or uppercase by definition) and defaultColor becomes entry 0 of the
// returned color table. A nil resolver maps every color name to the zero color.
//
// An opening directive only counts if its closer appears later in the string,
// a closer only counts if the style is active; anything else stays literal.
func ParseMarkup(text string, defaultStyle Style, defaultColor vector.Color, colors ColorResolver) (Text, []vector.Color) {
	table := []vector.Color{defaultColor}
	out := make(Text, 0, len(text))

	currentStyle := defaultStyle
	var currentColor uint8
	colorStack := []uint8{0}

	startPos := 0
	pos := strings.IndexByte(text, '[')
	for pos >= 0 && pos+1 < len(text) {
		var newStyle Style
		newColor := currentColor
		newLine := false
		on := true
		endPos := pos
		pos++
		if text[pos] == '/' {
			on = false
			pos++
		}
		rest := text[pos:]
		switch {
		case strings.HasPrefix(rest, "B]"):
			pos += 2
			newStyle = toggle(text, pos, on, currentStyle, StyleBold, "[/B]")
		case strings.HasPrefix(rest, "I]"):
			pos += 2
			newStyle = toggle(text, pos, on, currentStyle, StyleItalic, "[/I]")
		case strings.HasPrefix(rest, "UPPERCASE]"):
			pos += 10
			newStyle = toggle(text, pos, on, currentStyle, StyleUppercase, "[/UPPERCASE]")
		case strings.HasPrefix(rest, "LOWERCASE]"):
			pos += 10
			newStyle = toggle(text, pos, on, currentStyle, StyleLowercase, "[/LOWERCASE]")
		case on && strings.HasPrefix(rest, "CR]"):
			newLine = true
			pos += 3
		case strings.HasPrefix(rest, "COLOR"):
			rel := strings.IndexByte(text[pos+5:], ']')
			if rel < 0 {
				// unterminated: nothing to switch, keep scanning
				break
			}
			finish := pos + 5 + rel
			switch {
			case on && strings.Contains(text[finish:], "[/COLOR]") && len(table) < 256:
				newColor = uint8(len(table))
				table = append(table, resolve(colors, text[pos+5:finish]))
				colorStack = append(colorStack, newColor)
			case !on && finish == pos+5 && len(colorStack) > 1:
				colorStack = colorStack[:len(colorStack)-1]
				newColor = colorStack[len(colorStack)-1]
			}
			pos = finish + 1
		}

		if newStyle != 0 || newColor != currentColor || newLine {
			out = appendRun(out, text[startPos:endPos], currentStyle, currentColor)
			if newLine {
				out = append(out, Char{Rune: '\n'})
			}
			startPos = pos
			currentColor = newColor
			if on {
				currentStyle |= newStyle
			} else {
				currentStyle &^= newStyle
			}
		}
		next := strings.IndexByte(text[pos:], '[')
		if next < 0 {
			break
		}
		pos += next
	}
	out = appendRun(out, text[startPos:], currentStyle, currentColor)
	return out, table
}

// StripMarkup returns the text of s with every effective directive removed.
func StripMarkup(s string) string {
	t, _ := ParseMarkup(s, 0, vector.Color{}, nil)
	return t.String()
}

func toggle(text string, pos int, on bool, current, flag Style, closer string) Style {
	if on && strings.Contains(text[pos:], closer) {
		return flag
	}
	if !on && current.Has(flag) {
		return flag
	}
	return 0
}

func resolve(colors ColorResolver, name string) vector.Color {
	if colors == nil {
		return vector.Color{}
	}
	return colors.ResolveColor(strings.TrimSpace(name))
}

func appendRun(out Text, run string, style Style, color uint8) Text {
	if style.Has(StyleUppercase) {
		run = strings.ToUpper(run)
	}
	if style.Has(StyleLowercase) {
		run = strings.ToLower(run)
	}
	style &= glyphStyles
	for _, r := range run {
		out = append(out, Char{Rune: r, Style: style, Color: color})
	}
	return out
}
