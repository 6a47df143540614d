/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tween implements Robert Penner's easing equations.
//
// A Tweener maps elapsed time onto a value between start and start+change.
// Tweeners are immutable after construction and may be shared freely.
package tween

import (
	"fmt"
	"math"
	"strings"
)

// Easing selects which end of the curve is shaped.
type Easing int

const (
	EaseOut Easing = iota
	EaseIn
	EaseInOut
)

func (e Easing) String() string {
	switch e {
	case EaseIn:
		return "in"
	case EaseInOut:
		return "inout"
	default:
		return "out"
	}
}

// Tweener interpolates a value over time.
type Tweener interface {
	Tween(t, start, change, duration float32) float32
}

// Linear ignores the easing direction.
type Linear struct{}

func (Linear) Tween(t, b, c, d float32) float32 { return c*t/d + b }

type Quad struct{ Easing Easing }

func (q Quad) Tween(t, b, c, d float32) float32 {
	switch q.Easing {
	case EaseIn:
		t /= d
		return c*t*t + b
	case EaseInOut:
		t /= d / 2
		if t < 1 {
			return c/2*t*t + b
		}
		t--
		return -c/2*(t*(t-2)-1) + b
	default:
		t /= d
		return -c*t*(t-2) + b
	}
}

type Cubic struct{ Easing Easing }

func (q Cubic) Tween(t, b, c, d float32) float32 {
	switch q.Easing {
	case EaseIn:
		t /= d
		return c*t*t*t + b
	case EaseInOut:
		t /= d / 2
		if t < 1 {
			return c/2*t*t*t + b
		}
		t -= 2
		return c/2*(t*t*t+2) + b
	default:
		t = t/d - 1
		return c*(t*t*t+1) + b
	}
}

type Sine struct{ Easing Easing }

func (q Sine) Tween(t, b, c, d float32) float32 {
	switch q.Easing {
	case EaseIn:
		return -c*cos(t/d*(math.Pi/2)) + c + b
	case EaseInOut:
		return -c/2*(cos(math.Pi*t/d)-1) + b
	default:
		return c*sin(t/d*(math.Pi/2)) + b
	}
}

type Circle struct{ Easing Easing }

func (q Circle) Tween(t, b, c, d float32) float32 {
	switch q.Easing {
	case EaseIn:
		t /= d
		return -c*(sqrt(1-t*t)-1) + b
	case EaseInOut:
		t /= d / 2
		if t < 1 {
			return -c/2*(sqrt(1-t*t)-1) + b
		}
		t -= 2
		return c/2*(sqrt(1-t*t)+1) + b
	default:
		t = t/d - 1
		return c*sqrt(1-t*t) + b
	}
}

// DefaultOvershoot is the Back overshoot giving a 10% dip past the start.
const DefaultOvershoot = 1.70158

// Back overshoots the target before settling. A zero S uses DefaultOvershoot.
type Back struct {
	Easing Easing
	S      float32
}

func (q Back) Tween(t, b, c, d float32) float32 {
	s := q.S
	if s == 0 {
		s = DefaultOvershoot
	}
	switch q.Easing {
	case EaseIn:
		t /= d
		return c*t*t*((s+1)*t-s) + b
	case EaseInOut:
		s *= 1.525
		t /= d / 2
		if t < 1 {
			return c/2*(t*t*((s+1)*t-s)) + b
		}
		t -= 2
		return c/2*(t*t*((s+1)*t+s)+2) + b
	default:
		t = t/d - 1
		return c*(t*t*((s+1)*t+s)+1) + b
	}
}

type Bounce struct{ Easing Easing }

func (q Bounce) Tween(t, b, c, d float32) float32 {
	switch q.Easing {
	case EaseIn:
		return bounceIn(t, b, c, d)
	case EaseInOut:
		if t < d/2 {
			return bounceIn(t*2, 0, c, d)*0.5 + b
		}
		return bounceOut(t*2-d, 0, c, d)*0.5 + c*0.5 + b
	default:
		return bounceOut(t, b, c, d)
	}
}

func bounceIn(t, b, c, d float32) float32 { return c - bounceOut(d-t, 0, c, d) + b }

func bounceOut(t, b, c, d float32) float32 {
	t /= d
	switch {
	case t < 1/2.75:
		return c*(7.5625*t*t) + b
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return c*(7.5625*t*t+0.75) + b
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return c*(7.5625*t*t+0.9375) + b
	default:
		t -= 2.625 / 2.75
		return c*(7.5625*t*t+0.984375) + b
	}
}

// Elastic oscillates around the target. A zero Period uses 0.3 of the
// duration (0.45 for EaseInOut); an Amplitude below |change| is raised to change.
type Elastic struct {
	Easing    Easing
	Amplitude float32
	Period    float32
}

func (q Elastic) Tween(t, b, c, d float32) float32 {
	if t == 0 {
		return b
	}
	p := q.Period
	switch q.Easing {
	case EaseInOut:
		t /= d / 2
		if t == 2 {
			return b + c
		}
		if p == 0 {
			p = d * (0.3 * 1.5)
		}
	default:
		t /= d
		if t == 1 {
			return b + c
		}
		if p == 0 {
			p = d * 0.3
		}
	}
	a, s := q.amplitude(c, p)
	switch q.Easing {
	case EaseIn:
		t--
		return -(a * pow2(10*t) * sin((t*d-s)*(2*math.Pi)/p)) + b
	case EaseInOut:
		t--
		if t < 0 {
			return -0.5*(a*pow2(10*t)*sin((t*d-s)*(2*math.Pi)/p)) + b
		}
		return a*pow2(-10*t)*sin((t*d-s)*(2*math.Pi)/p)*0.5 + c + b
	default:
		return a*pow2(-10*t)*sin((t*d-s)*(2*math.Pi)/p) + c + b
	}
}

func (q Elastic) amplitude(c, p float32) (a, s float32) {
	a = q.Amplitude
	if a == 0 || a < abs(c) {
		return c, p / 4
	}
	return a, p / (2 * math.Pi) * float32(math.Asin(float64(c/a)))
}

// Parse maps skin tween and easing names onto a Tweener. An empty name
// yields Linear; an empty easing defaults to "out".
func Parse(name, easing string) (Tweener, error) {
	var e Easing
	switch strings.ToLower(strings.TrimSpace(easing)) {
	case "", "out":
		e = EaseOut
	case "in":
		e = EaseIn
	case "inout":
		e = EaseInOut
	default:
		return nil, fmt.Errorf("unknown easing %q", easing)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear{}, nil
	case "quadratic", "quad":
		return Quad{Easing: e}, nil
	case "cubic":
		return Cubic{Easing: e}, nil
	case "sine":
		return Sine{Easing: e}, nil
	case "back":
		return Back{Easing: e}, nil
	case "circle":
		return Circle{Easing: e}, nil
	case "bounce":
		return Bounce{Easing: e}, nil
	case "elastic":
		return Elastic{Easing: e}, nil
	default:
		return nil, fmt.Errorf("unknown tween %q", name)
	}
}

func sin(v float32) float32  { return float32(math.Sin(float64(v))) }
func cos(v float32) float32  { return float32(math.Cos(float64(v))) }
func sqrt(v float32) float32 { return float32(math.Sqrt(float64(v))) }
func pow2(v float32) float32 { return float32(math.Pow(2, float64(v))) }
func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
