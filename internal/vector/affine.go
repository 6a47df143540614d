/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Affine2D is the screen-plane projection of a TransformMatrix, in the
// layout the 2D draw libraries expect:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine2D struct{ A, B, C, D, E, F float32 }

var Identity = Affine2D{A: 1, D: 1}

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }

func Rotate(rad float32) Affine2D {
	c, s := cosSin(rad)
	return Affine2D{A: c, B: s, C: -s, D: c}
}

// linear applies only the 2x2 part of m.
func (m Affine2D) linear(x, y float32) (float32, float32) {
	return m.A*x + m.C*y, m.B*x + m.D*y
}

func (m Affine2D) Apply(p Pt) Pt {
	x, y := m.linear(p.X, p.Y)
	return Pt{x + m.E, y + m.F}
}

// Mul returns m * n, so n is applied first.
func (m Affine2D) Mul(n Affine2D) Affine2D {
	a, b := m.linear(n.A, n.B)
	c, d := m.linear(n.C, n.D)
	o := m.Apply(Pt{n.E, n.F})
	return Affine2D{A: a, B: b, C: c, D: d, E: o.X, F: o.Y}
}

func (m Affine2D) IsTranslation() bool { return m.A == 1 && m.B == 0 && m.C == 0 && m.D == 1 }

// Decompose factors the linear part as Rotate(angle) * ShearX(shear) * Scale(sx, sy).
// Backends without a general matrix call (gg) rebuild the transform from these.
func (m Affine2D) Decompose() (angle, sx, sy, shear float32) {
	sx = float32(math.Hypot(float64(m.A), float64(m.B)))
	if sx == 0 {
		return 0, 0, 0, 0
	}
	det := m.A*m.D - m.B*m.C
	angle = float32(math.Atan2(float64(m.B), float64(m.A)))
	sy = det / sx
	if sy == 0 {
		return angle, sx, 0, 0
	}
	return angle, sx, sy, (m.A*m.C + m.B*m.D) / (sx * sy)
}
