/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anim

import (
	"mediaskin/internal/tween"
	"mediaskin/internal/vector"
)

// Params populate an Animation. Start and End hold the effect values:
// alpha percent in X for fades, offsets for slides, degrees in X for
// rotations and scale percent per axis for zooms.
type Params struct {
	Type   Type
	Effect Effect
	Delay  uint32 // ms
	Length uint32 // ms

	Start, End vector.Pt

	// Center is the rotation or zoom center. Without it the center is
	// derived from StartPos/EndPos for zooms when HasPos is set, and taken
	// from the control otherwise.
	Center    vector.Pt
	CenterSet bool

	StartPos, EndPos vector.Pt
	HasPos           bool

	Repeat     Repeat
	Reversible bool
	Condition  int
	Tween      tween.Tweener
	PixelRatio float32
}

// Animation is the state machine of one skin animation.
type Animation struct {
	p          Params
	center     vector.Pt
	autoCenter bool

	queued  Process
	process Process
	state   State
	amount  float32
	start   uint32

	lastCondition bool
	matrix        vector.TransformMatrix
}

// New creates an idle animation. An animation without a condition behaves
// as if its condition were always true.
func New(p Params) *Animation {
	if p.PixelRatio == 0 {
		p.PixelRatio = 1
	}
	a := &Animation{p: p, lastCondition: p.Condition == 0}
	a.matrix.Reset()
	switch {
	case p.CenterSet:
		a.center = p.Center
	case p.Effect == EffectZoom && p.HasPos:
		a.center = ZoomCenter(p.Start, p.End, p.StartPos, p.EndPos)
	default:
		a.autoCenter = true
	}
	return a
}

// NewFader returns a fade from start to end alpha percent for code driven
// transitions.
func NewFader(start, end float32, delay, length uint32) *Animation {
	return New(Params{
		Effect: EffectFade,
		Delay:  delay,
		Length: length,
		Start:  vector.Pt{X: start},
		End:    vector.Pt{X: end},
	})
}

// ZoomCenter returns the point that stays fixed while zooming from startPos
// at startScale to endPos at endScale (scales in percent). An axis whose
// scale ratio is 1 (or undefined) keeps center 0.
func ZoomCenter(startScale, endScale, startPos, endPos vector.Pt) vector.Pt {
	var c vector.Pt
	if startScale.X != 0 {
		if s := endScale.X / startScale.X; s != 1 {
			c.X = (endPos.X - s*startPos.X) / (1 - s)
		}
	}
	if startScale.Y != 0 {
		if s := endScale.Y / startScale.Y; s != 1 {
			c.Y = (endPos.Y - s*startPos.Y) / (1 - s)
		}
	}
	return c
}

// Reverse returns the opposite animation: start and end swapped, type
// negated, idle.
func (a *Animation) Reverse() *Animation {
	p := a.p
	p.Type = -p.Type
	p.Start, p.End = p.End, p.Start
	p.StartPos, p.EndPos = p.EndPos, p.StartPos
	r := New(p)
	r.center, r.autoCenter = a.center, a.autoCenter
	return r
}

func (a *Animation) Type() Type                     { return a.p.Type }
func (a *Animation) Effect() Effect                 { return a.p.Effect }
func (a *Animation) Params() Params                 { return a.p }
func (a *Animation) Process() Process               { return a.process }
func (a *Animation) QueuedProcess() Process         { return a.queued }
func (a *Animation) State() State                   { return a.state }
func (a *Animation) Amount() float32                { return a.amount }
func (a *Animation) Matrix() vector.TransformMatrix { return a.matrix }
func (a *Animation) IsReversible() bool             { return a.p.Reversible }
func (a *Animation) Condition() int                 { return a.p.Condition }
func (a *Animation) Repeat() Repeat                 { return a.p.Repeat }
func (a *Animation) Delay() uint32                  { return a.p.Delay }
func (a *Animation) Length() uint32                 { return a.p.Length }

// QueueAnimation schedules a process to start on the next Animate.
func (a *Animation) QueueAnimation(p Process) { a.queued = p }

// ResetAnimation stops the animation and forgets its effect.
func (a *Animation) ResetAnimation() {
	a.queued = ProcessNone
	a.process = ProcessNone
	a.state = StateNone
}

// ApplyAnimation jumps to the end state without running: repeating
// animations start their cycle, others are marked applied.
func (a *Animation) ApplyAnimation() {
	a.queued = ProcessNone
	switch a.p.Repeat {
	case RepeatPulse:
		a.amount = 1
		a.process = ProcessReverse
		a.state = StateInProgress
		a.start = 0
	case RepeatLoop:
		a.amount = 0
		a.process = ProcessNormal
		a.state = StateInProgress
		a.start = 0
	default:
		a.amount = 1
		a.process = ProcessNormal
		a.state = StateApplied
	}
	a.calculate(vector.Pt{})
}

// Animate advances the animation to the frame time now (ms). A queued
// process is consumed when startAnim is set; until then a queued forward
// run keeps restarting so that it begins on the first rendered frame.
// Reversing mid-run keeps the current amount.
func (a *Animation) Animate(now uint32, startAnim bool) {
	switch a.queued {
	case ProcessNormal:
		if a.process == ProcessReverse {
			a.start = now - uint32(float32(a.p.Length)*a.amount)
		} else {
			a.start = now
		}
		a.process = ProcessNormal
	case ProcessReverse:
		if a.process == ProcessNormal {
			a.start = now - uint32(float32(a.p.Length)*(1-a.amount))
		} else if a.process == ProcessNone {
			a.start = now
		}
		a.process = ProcessReverse
	}
	if startAnim || a.queued == ProcessReverse {
		a.queued = ProcessNone
	}

	// unsigned wraparound keeps elapsed correct when start was moved back past 0
	elapsed := now - a.start
	switch a.process {
	case ProcessNormal:
		switch {
		case elapsed < a.p.Delay:
			a.amount = 0
			a.state = StateDelayed
		case elapsed < a.p.Delay+a.p.Length:
			a.amount = float32(elapsed-a.p.Delay) / float32(a.p.Length)
			a.state = StateInProgress
		default:
			a.amount = 1
			switch {
			case a.p.Repeat == RepeatPulse && a.lastCondition:
				a.process = ProcessReverse
				a.start = now
			case a.p.Repeat == RepeatLoop && a.lastCondition:
				a.amount = 0
				a.start = now
			default:
				a.state = StateApplied
			}
		}
	case ProcessReverse:
		if elapsed < a.p.Length {
			a.amount = 1 - float32(elapsed)/float32(a.p.Length)
			a.state = StateInProgress
		} else {
			a.amount = 0
			if a.p.Repeat == RepeatPulse && a.lastCondition {
				a.process = ProcessNormal
				a.start = now
			} else {
				a.state = StateApplied
			}
		}
	}
}

// RenderAnimation recalculates the effect of a running animation and
// composes it into m. center is the control center, used when the
// animation has none of its own. A finished animation drops its process so
// that a later trigger starts clean; one that never ran leaves m alone.
func (a *Animation) RenderAnimation(m *vector.TransformMatrix, center vector.Pt) {
	if a.process != ProcessNone {
		a.calculate(center)
	}
	if a.state == StateApplied {
		a.process = ProcessNone
		a.queued = ProcessNone
	}
	if a.state != StateNone {
		m.MultiplyAssign(a.matrix)
	}
}

// UpdateCondition queues a forward run when the condition becomes true and
// a reverse run (or a reset, if not reversible) when it becomes false.
func (a *Animation) UpdateCondition(eval Evaluator, contextID int, item any) {
	cond := a.evaluate(eval, contextID, item)
	if cond && !a.lastCondition {
		a.QueueAnimation(ProcessNormal)
	} else if !cond && a.lastCondition {
		if a.p.Reversible {
			a.QueueAnimation(ProcessReverse)
		} else {
			a.ResetAnimation()
		}
	}
	a.lastCondition = cond
}

// SetInitialCondition applies or resets the animation to match its
// condition without running it, used when a window opens.
func (a *Animation) SetInitialCondition(eval Evaluator, contextID int) {
	a.lastCondition = a.evaluate(eval, contextID, nil)
	if a.lastCondition {
		a.ApplyAnimation()
	} else {
		a.ResetAnimation()
	}
}

func (a *Animation) evaluate(eval Evaluator, contextID int, item any) bool {
	if a.p.Condition == 0 || eval == nil {
		return true
	}
	return eval.Evaluate(a.p.Condition, contextID, item)
}

func (a *Animation) calculate(center vector.Pt) {
	offset := a.amount
	if a.p.Tween != nil {
		offset = a.p.Tween.Tween(a.amount, 0, 1, 1)
	}
	lerp := func(s, e float32) float32 { return (e-s)*offset + s }
	c := a.center
	if a.autoCenter {
		c = center
	}
	x := lerp(a.p.Start.X, a.p.End.X)
	switch a.p.Effect {
	case EffectFade:
		a.matrix.SetFader(x * 0.01)
	case EffectSlide:
		a.matrix.SetTranslation(x, lerp(a.p.Start.Y, a.p.End.Y))
	case EffectRotateX:
		a.matrix.SetXRotation(x*vector.DegToRad, c.Y, 0)
	case EffectRotateY:
		a.matrix.SetYRotation(x*vector.DegToRad, c.X, 0)
	case EffectRotateZ:
		a.matrix.SetZRotation(x*vector.DegToRad, c.X, c.Y, a.p.PixelRatio)
	case EffectZoom:
		a.matrix.SetScaler(x*0.01, lerp(a.p.Start.Y, a.p.End.Y)*0.01, c.X, c.Y)
	default:
		a.matrix.Reset()
	}
}
