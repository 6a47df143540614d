/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package anim drives skin animations: fades, slides, rotations and zooms
// that run when a control becomes visible, gains focus, or a condition flips.
//
// An Animation is advanced once per frame with Animate and composed into the
// control transform with RenderAnimation. Nothing here blocks or locks; all
// calls come from the render loop.
package anim

import (
	"fmt"
	"strings"
)

// Type says what triggers an animation. Opposite triggers have opposite
// signs so that a reversed animation can negate its type.
type Type int

const (
	TypeUnfocus     Type = -3
	TypeHidden      Type = -2
	TypeWindowClose Type = -1
	TypeNone        Type = 0
	TypeWindowOpen  Type = 1
	TypeVisible     Type = 2
	TypeFocus       Type = 3
	TypeConditional Type = 4
)

var typeNames = map[Type]string{
	TypeUnfocus:     "unfocus",
	TypeHidden:      "hidden",
	TypeWindowClose: "windowclose",
	TypeNone:        "none",
	TypeWindowOpen:  "windowopen",
	TypeVisible:     "visible",
	TypeFocus:       "focus",
	TypeConditional: "conditional",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseType reads a skin animation type. "visiblechange" is not a type of
// its own; loaders expand it into a visible and a reversed hidden animation.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, n := range typeNames {
		if n == s && t != TypeNone {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown animation type %q", s)
}

// Effect is the property an animation changes.
type Effect int

const (
	EffectNone Effect = iota
	EffectFade
	EffectSlide
	EffectRotateX
	EffectRotateY
	EffectRotateZ
	EffectZoom
)

var effectNames = []string{"none", "fade", "slide", "rotatex", "rotatey", "rotate", "zoom"}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// ParseEffect reads a skin effect name; "rotate" and "rotatez" both rotate
// in the screen plane.
func ParseEffect(s string) (Effect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "rotatez" {
		return EffectRotateZ, nil
	}
	for i, n := range effectNames {
		if n == s && i != int(EffectNone) {
			return Effect(i), nil
		}
	}
	return EffectNone, fmt.Errorf("unknown animation effect %q", s)
}

// Process is the direction an animation is running in.
type Process int

const (
	ProcessNone Process = iota
	ProcessNormal
	ProcessReverse
)

func (p Process) String() string {
	switch p {
	case ProcessNormal:
		return "normal"
	case ProcessReverse:
		return "reverse"
	default:
		return "none"
	}
}

// State is the phase of the running process.
type State int

const (
	StateNone State = iota
	StateDelayed
	StateInProgress
	StateApplied
)

func (s State) String() string {
	switch s {
	case StateDelayed:
		return "delayed"
	case StateInProgress:
		return "inprogress"
	case StateApplied:
		return "applied"
	default:
		return "none"
	}
}

// Repeat makes a finished animation run again while its condition holds.
// Pulse runs back and forth, Loop restarts from the beginning.
type Repeat int

const (
	RepeatNone Repeat = iota
	RepeatPulse
	RepeatLoop
)

// Evaluator evaluates registered condition handles. Handle 0 means "no
// condition" and is never passed to the evaluator.
type Evaluator interface {
	Evaluate(handle, contextID int, item any) bool
}
