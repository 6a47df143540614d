/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Line is one laid out line. CarriageReturn is set when the line ended at an
// explicit break (or the end of the text) rather than a wrap; justified
// alignment is never applied to such lines.
type Line struct {
	Text           Text
	CarriageReturn bool
}

// Metrics is the width and height oracle used while wrapping and measuring.
// Implementations must return stable values for the duration of a layout pass.
type Metrics interface {
	CharWidth(ch Char) float32
	TextWidth(text Text) float32
	LineHeight() float32
}

// LineBreakText splits text at newline markers without looking at widths.
// maxLines <= 0 means unlimited.
func LineBreakText(text Text, maxLines int) []Line {
	var lines []Line
	full := func() bool { return maxLines > 0 && len(lines) >= maxLines }
	start := 0
	for i, c := range text {
		if full() {
			return lines
		}
		if c.Rune == '\n' {
			lines = append(lines, Line{Text: text[start:i:i], CarriageReturn: true})
			start = i + 1
		}
	}
	if start < len(text) && !full() {
		lines = append(lines, Line{Text: text[start:len(text):len(text)], CarriageReturn: true})
	}
	return lines
}

// WrapText breaks text greedily so that no line is wider than maxWidth,
// unless it holds a single word that cannot be split. A line is cut only
// when its measured width strictly exceeds maxWidth at a wrap point and an
// earlier wrap point exists on it; the cut point itself is dropped and the
// continuation skips leading spaces. maxLines <= 0 means unlimited; extra
// lines are dropped silently.
func WrapText(m Metrics, text Text, maxWidth float32, maxLines int) []Line {
	if m == nil {
		return nil
	}
	var out []Line
	full := func() bool { return maxLines > 0 && len(out) >= maxLines }

	for _, hard := range LineBreakText(text, maxLines) {
		src := hard.Text
		var cur Text
		lastSpace, lastSpaceInLine := 0, 0
		for pos := 0; pos < len(src); {
			ch := src[pos]
			if canWrapAt(ch.Rune) {
				if m.TextWidth(cur) > maxWidth && lastSpace > 0 && lastSpaceInLine > 0 {
					out = append(out, Line{Text: cloneText(cur[:lastSpaceInLine])})
					if full() {
						return out
					}
					pos = lastSpace
					for pos < len(src) && isSpace(src[pos].Rune) {
						pos++
					}
					cur = cur[:0]
					lastSpace, lastSpaceInLine = 0, 0
					continue
				}
				lastSpace = pos
				lastSpaceInLine = len(cur)
			}
			cur = append(cur, ch)
			pos++
		}
		if m.TextWidth(cur) > maxWidth && lastSpace > 0 && lastSpaceInLine > 0 {
			out = append(out, Line{Text: cloneText(cur[:lastSpaceInLine])})
			if full() {
				return out
			}
			cur = cur[lastSpaceInLine:]
			for len(cur) > 0 && isSpace(cur[0].Rune) {
				cur = cur[1:]
			}
		}
		out = append(out, Line{Text: cloneText(cur), CarriageReturn: true})
		if full() {
			return out
		}
	}
	return out
}

func cloneText(t Text) Text {
	if len(t) == 0 {
		return nil
	}
	return append(Text(nil), t...)
}
