/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// DegToRad converts skin angles (degrees) to radians.
const DegToRad = math.Pi / 180

// TransformMatrix is a 3x4 affine transform in 3D (the implied bottom row is
// 0 0 0 1) plus an alpha multiplier. Animations and controls compose these;
// draw backends project them to 2D with Affine.
type TransformMatrix struct {
	M     [3][4]float32
	Alpha float32
}

// NewIdentity returns the identity transform with full alpha.
func NewIdentity() TransformMatrix {
	var t TransformMatrix
	t.Reset()
	return t
}

// Reset sets t to identity with alpha 1.
func (t *TransformMatrix) Reset() {
	t.M = [3][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}
	t.Alpha = 1
}

// IsIdentity reports whether t neither moves points nor fades.
func (t TransformMatrix) IsIdentity() bool { return t == NewIdentity() }

// SetTranslation makes t a pure translation.
func (t *TransformMatrix) SetTranslation(x, y float32) {
	t.Reset()
	t.M[0][3] = x
	t.M[1][3] = y
}

// SetXRotation rotates about the X axis through (y, z).
func (t *TransformMatrix) SetXRotation(angle, y, z float32) {
	c, s := cosSin(angle)
	t.M = [3][4]float32{
		{1, 0, 0, 0},
		{0, c, -s, y*(1-c) + s*z},
		{0, s, c, z*(1-c) - s*y},
	}
	t.Alpha = 1
}

// SetYRotation rotates about the Y axis through (x, z).
func (t *TransformMatrix) SetYRotation(angle, x, z float32) {
	c, s := cosSin(angle)
	t.M = [3][4]float32{
		{c, 0, -s, x*(1-c) + s*z},
		{0, 1, 0, 0},
		{s, 0, c, z*(1-c) - s*x},
	}
	t.Alpha = 1
}

// SetZRotation rotates in the screen plane about (x, y). ar is the pixel
// aspect ratio of the coordinate system; 1 for square pixels.
func (t *TransformMatrix) SetZRotation(angle, x, y, ar float32) {
	if ar == 0 {
		ar = 1
	}
	c, s := cosSin(angle)
	t.M = [3][4]float32{
		{c, -s / ar, 0, x*(1-c) + s/ar*y},
		{s * ar, c, 0, -ar*s*x + y*(1-c)},
		{0, 0, 1, 0},
	}
	t.Alpha = 1
}

// SetScaler scales about (cx, cy).
func (t *TransformMatrix) SetScaler(sx, sy, cx, cy float32) {
	t.M = [3][4]float32{
		{sx, 0, 0, cx * (1 - sx)},
		{0, sy, 0, cy * (1 - sy)},
		{0, 0, 1, 0},
	}
	t.Alpha = 1
}

// SetFader makes t an identity transform with the given alpha.
func (t *TransformMatrix) SetFader(alpha float32) {
	t.Reset()
	t.Alpha = alpha
}

// ZRotation returns a screen-plane rotation about (x, y).
func ZRotation(angle, x, y, ar float32) TransformMatrix {
	var t TransformMatrix
	t.SetZRotation(angle, x, y, ar)
	return t
}

// Translation returns a translation transform.
func Translation(x, y float32) TransformMatrix {
	var t TransformMatrix
	t.SetTranslation(x, y)
	return t
}

// Multiply returns t * o: o is applied first, then t.
func (t TransformMatrix) Multiply(o TransformMatrix) TransformMatrix {
	var r TransformMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			r.M[i][j] = t.M[i][0]*o.M[0][j] + t.M[i][1]*o.M[1][j] + t.M[i][2]*o.M[2][j]
		}
		r.M[i][3] += t.M[i][3]
	}
	r.Alpha = t.Alpha * o.Alpha
	return r
}

// MultiplyAssign sets t = t * o.
func (t *TransformMatrix) MultiplyAssign(o TransformMatrix) { *t = t.Multiply(o) }

// Apply transforms a point lying in the z=0 plane.
func (t TransformMatrix) Apply(p Pt) Pt {
	return Pt{
		X: t.M[0][0]*p.X + t.M[0][1]*p.Y + t.M[0][3],
		Y: t.M[1][0]*p.X + t.M[1][1]*p.Y + t.M[1][3],
	}
}

// Affine projects t onto the screen plane, dropping depth.
func (t TransformMatrix) Affine() Affine2D {
	return Affine2D{
		A: t.M[0][0], B: t.M[1][0],
		C: t.M[0][1], D: t.M[1][1],
		E: t.M[0][3], F: t.M[1][3],
	}
}

func cosSin(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle))
	return float32(c), float32(s)
}
