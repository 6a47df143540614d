/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"testing"

	"mediaskin/internal/vector"
)

func TestParseMarkup_BoldRoundTrip(t *testing.T) {
	text, colors := ParseMarkup("[B]x[/B]y", 0, vector.White, nil)
	if text.String() != "xy" {
		t.Fatalf("text = %q", text.String())
	}
	if text[0].Style != StyleBold {
		t.Fatalf("x style = %v, want bold", text[0].Style)
	}
	if text[1].Style != 0 {
		t.Fatalf("y should carry no residual style, got %v", text[1].Style)
	}
	if len(colors) != 1 || colors[0] != vector.White {
		t.Fatalf("color table = %v", colors)
	}
}

func TestParseMarkup_ColorStackBalance(t *testing.T) {
	res := mapColors{"red": red, "blue": blue}
	text, colors := ParseMarkup("a[COLOR red]b[COLOR blue]c[/COLOR]d[/COLOR]e", 0, vector.Color{}, res)
	if text.String() != "abcde" {
		t.Fatalf("text = %q", text.String())
	}
	want := []uint8{0, 1, 2, 1, 0}
	for i, c := range text {
		if c.Color != want[i] {
			t.Errorf("char %q color = %d, want %d", c.Rune, c.Color, want[i])
		}
	}
	if len(colors) != 3 || colors[1] != red || colors[2] != blue {
		t.Fatalf("color table = %v", colors)
	}
}

func TestParseMarkup_LiteralFallbacks(t *testing.T) {
	cases := map[string]string{
		"x[COLOR red":    "x[COLOR red",
		"[B]no closer":   "[B]no closer",
		"[/B]not active": "[/B]not active",
		"[b]lower[/b]":   "[b]lower[/b]",
		"[/COLOR]x":      "[/COLOR]x",
		"[FOO]bar":       "[FOO]bar",
		"trailing [":     "trailing [",
		"[/CR]x":         "[/CR]x",
		"[COLOR red]x":   "[COLOR red]x",
		"[I]a[/I][/I]b":  "a[/I]b",
	}
	for in, want := range cases {
		text, _ := ParseMarkup(in, 0, vector.Color{}, mapColors{"red": red})
		if got := text.String(); got != want {
			t.Errorf("ParseMarkup(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMarkup_ColorNeedsLaterCloser(t *testing.T) {
	res := mapColors{"red": red, "blue": blue}
	text, colors := ParseMarkup("[COLOR red]x", 0, vector.Color{}, res)
	if text.String() != "[COLOR red]x" || len(colors) != 1 {
		t.Fatalf("color without closer should stay literal: %q %v", text.String(), colors)
	}
	// any later closer is enough, so both opens are pushed
	text, colors = ParseMarkup("[COLOR red]x[COLOR blue]y[/COLOR]", 0, vector.Color{}, res)
	if text.String() != "xy" || len(colors) != 3 {
		t.Fatalf("text=%q table=%v", text.String(), colors)
	}
	if text[0].Color != 1 || text[1].Color != 2 {
		t.Fatalf("colors = %d %d", text[0].Color, text[1].Color)
	}
}

func TestParseMarkup_BreaksAndCasing(t *testing.T) {
	text, _ := ParseMarkup("a[CR]b\nc", 0, vector.Color{}, nil)
	if text.String() != "a\nb\nc" {
		t.Fatalf("breaks = %q", text.String())
	}
	text, _ = ParseMarkup("[UPPERCASE]abc[/UPPERCASE]def", 0, vector.Color{}, nil)
	if text.String() != "ABCdef" {
		t.Fatalf("uppercase = %q", text.String())
	}
	for _, c := range text {
		if c.Style != 0 {
			t.Fatalf("casing flags must not reach characters: %+v", c)
		}
	}
	text, _ = ParseMarkup("[LOWERCASE]ÄBC[/LOWERCASE]", 0, vector.Color{}, nil)
	if text.String() != "äbc" {
		t.Fatalf("lowercase = %q", text.String())
	}
}

func TestParseMarkup_DefaultStyle(t *testing.T) {
	text, _ := ParseMarkup("ab[/B]c", StyleBold|StyleUppercase, vector.Color{}, nil)
	if text.String() != "ABC" {
		t.Fatalf("text = %q", text.String())
	}
	if text[0].Style != StyleBold || text[2].Style != 0 {
		t.Fatalf("styles = %v %v", text[0].Style, text[2].Style)
	}
}

func TestStripMarkup(t *testing.T) {
	if got := StripMarkup("[B]Now[/B] [I]playing[/I][CR]x"); got != "Now playing\nx" {
		t.Fatalf("StripMarkup = %q", got)
	}
}

func TestParseStyle(t *testing.T) {
	if got := ParseStyle("Bold  italics"); got != StyleBold|StyleItalic {
		t.Fatalf("ParseStyle = %v", got)
	}
	if (StyleBold | StyleUppercase).String() != "bold uppercase" {
		t.Fatalf("String = %q", (StyleBold | StyleUppercase).String())
	}
}
