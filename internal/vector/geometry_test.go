/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectIntersect(t *testing.T) {
	a := R(0, 0, 100, 50)
	b := R(50, 25, 100, 100)
	got := a.Intersect(b)
	if got != R(50, 25, 50, 25) {
		t.Fatalf("Intersect = %+v", got)
	}
	if !a.Intersect(R(200, 200, 10, 10)).Empty() {
		t.Fatalf("disjoint rects should give an empty intersection")
	}
	if !a.Contains(Pt{0, 0}) || !a.Contains(Pt{100, 50}) {
		t.Fatalf("edge points should be contained")
	}
	if a.Contains(Pt{100.5, 10}) {
		t.Fatalf("point right of the rect contained")
	}
	if c := a.Center(); c != (Pt{50, 25}) {
		t.Fatalf("Center = %+v", c)
	}
}

func TestColorHexAndARGB(t *testing.T) {
	c, ok := ParseHex("80FF0000")
	if !ok || c != (Color{R: 255, A: 0x80}) {
		t.Fatalf("ParseHex = %+v, %v", c, ok)
	}
	if c.ARGB() != 0x80FF0000 {
		t.Fatalf("ARGB = %#x", c.ARGB())
	}
	c, ok = ParseHex("#00ff00")
	if !ok || c != (Color{G: 255, A: 255}) {
		t.Fatalf("6-digit hex should be opaque: %+v", c)
	}
	for _, bad := range []string{"", "red", "12345", "zzzzzzzz"} {
		if _, ok := ParseHex(bad); ok {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
	if got := White.WithAlpha(0.5).A; got != 128 {
		t.Fatalf("WithAlpha(0.5).A = %d", got)
	}
	if White.Hex() != "#ffffff" {
		t.Fatalf("Hex = %s", White.Hex())
	}
}
