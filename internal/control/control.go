/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package control holds the on-screen controls of a skin window and the
// per-frame loop that animates and draws them.
package control

import (
	"mediaskin/internal/anim"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

// Renderable draws itself with the current transform of gfx.
type Renderable interface {
	Render(gfx textlayout.Graphics)
}

// AnimatedVisibility is a control whose visibility changes run its
// visible and hidden animations.
type AnimatedVisibility interface {
	SetVisible(v bool)
	IsVisible() bool
	Animate(now uint32, eval anim.Evaluator, contextID int)
}

// FocusNavigable is a control that can take focus.
type FocusNavigable interface {
	SetFocus(f bool)
	HasFocus() bool
}

// Control is what a Window holds.
type Control interface {
	ID() int
	Core() *Base
	Renderable
	AnimatedVisibility
}

type visibility int

const (
	hidden visibility = iota
	delayed
	visible
)

// Base carries the state shared by every control: geometry, animations,
// visibility and focus. Concrete controls embed it.
type Base struct {
	id      int
	rect    vector.Rect
	anims   []*anim.Animation
	cond    int
	want    bool
	vis     visibility
	focused bool

	// processed is set after the first Animate; until then queued
	// animations keep restarting so that they begin on the first drawn frame.
	processed bool
	transform vector.TransformMatrix
}

// NewBase creates a visible control occupying rect.
func NewBase(id int, rect vector.Rect) Base {
	return Base{id: id, rect: rect, want: true, vis: visible, transform: vector.NewIdentity()}
}

func (b *Base) ID() int                           { return b.id }
func (b *Base) Core() *Base                       { return b }
func (b *Base) Rect() vector.Rect                 { return b.rect }
func (b *Base) SetRect(r vector.Rect)             { b.rect = r }
func (b *Base) Animations() []*anim.Animation     { return b.anims }
func (b *Base) Transform() vector.TransformMatrix { return b.transform }
func (b *Base) HasFocus() bool                    { return b.focused }

// IsVisible reports whether the control is drawn. A control whose visible
// animation is still in its delay is not drawn yet.
func (b *Base) IsVisible() bool { return b.vis == visible }

// AddAnimation appends animations, ignoring nils.
func (b *Base) AddAnimation(as ...*anim.Animation) {
	for _, a := range as {
		if a != nil {
			b.anims = append(b.anims, a)
		}
	}
}

// SetVisibleCondition makes visibility follow a registered condition.
func (b *Base) SetVisibleCondition(handle int) { b.cond = handle }

// SetVisible queues the visible or hidden animation. Without one the
// change is immediate; a hidden animation keeps the control drawn until it
// has finished.
func (b *Base) SetVisible(v bool) {
	if v == b.want {
		return
	}
	b.want = v
	if v {
		b.QueueAnimation(anim.TypeVisible)
	} else {
		b.QueueAnimation(anim.TypeHidden)
	}
}

// SetFocus runs the focus or unfocus animation on a change.
func (b *Base) SetFocus(f bool) {
	if f == b.focused {
		return
	}
	b.focused = f
	if f {
		b.QueueAnimation(anim.TypeFocus)
	} else {
		b.QueueAnimation(anim.TypeUnfocus)
	}
}

// Animation returns the first animation of type t.
func (b *Base) Animation(t anim.Type) *anim.Animation {
	for _, a := range b.anims {
		if a.Type() == t {
			return a
		}
	}
	return nil
}

// QueueAnimation starts the animation of type t. A reversible opposite
// animation still running is reversed instead, so that showing a control
// halfway through its hide animation turns it around.
func (b *Base) QueueAnimation(t anim.Type) {
	forward := b.Animation(t)
	reverse := b.Animation(-t)
	switch {
	case reverse != nil && reverse.IsReversible() &&
		(reverse.State() == anim.StateInProgress || reverse.State() == anim.StateDelayed):
		reverse.QueueAnimation(anim.ProcessReverse)
		if forward != nil {
			forward.ResetAnimation()
		}
	case forward != nil:
		forward.QueueAnimation(anim.ProcessNormal)
		if reverse != nil {
			reverse.ResetAnimation()
		}
	default:
		if reverse != nil {
			reverse.ResetAnimation()
		}
		b.updateState(t, anim.ProcessNormal, anim.StateApplied)
	}
}

// SetInitialVisibility applies the visibility condition and every
// conditional animation without running them, as on window open.
func (b *Base) SetInitialVisibility(eval anim.Evaluator, contextID int) {
	if b.cond != 0 && eval != nil {
		b.want = eval.Evaluate(b.cond, contextID, nil)
		if b.want {
			b.vis = visible
		} else {
			b.vis = hidden
		}
	}
	for _, a := range b.anims {
		if a.Type() == anim.TypeConditional {
			a.SetInitialCondition(eval, contextID)
		}
	}
}

// UpdateVisibility re-evaluates the visibility condition.
func (b *Base) UpdateVisibility(eval anim.Evaluator, contextID int) {
	if b.cond != 0 && eval != nil {
		b.SetVisible(eval.Evaluate(b.cond, contextID, nil))
	}
}

// Animate advances every animation to now and recomposes the control
// transform. Conditional animations check their conditions first.
func (b *Base) Animate(now uint32, eval anim.Evaluator, contextID int) {
	m := vector.NewIdentity()
	center := b.rect.Center()
	for _, a := range b.anims {
		if a.Type() == anim.TypeConditional {
			a.UpdateCondition(eval, contextID, nil)
		}
		a.Animate(now, b.processed || b.vis == delayed)
		b.updateState(a.Type(), a.Process(), a.State())
		a.RenderAnimation(&m, center)
	}
	b.transform = m
	b.processed = true
}

// IsAnimating reports whether an animation of type t is queued or running.
// TypeNone matches any type.
func (b *Base) IsAnimating(t anim.Type) bool {
	for _, a := range b.anims {
		if t != anim.TypeNone && a.Type() != t {
			continue
		}
		if a.QueuedProcess() == anim.ProcessNormal {
			return true
		}
		if a.Process() == anim.ProcessReverse || (a.Process() == anim.ProcessNormal && a.State() != anim.StateApplied) {
			return true
		}
	}
	return false
}

func (b *Base) updateState(t anim.Type, p anim.Process, s anim.State) {
	switch t {
	case anim.TypeVisible:
		if p == anim.ProcessNormal {
			if s == anim.StateDelayed {
				b.vis = delayed
			} else {
				b.vis = visible
			}
		} else if p == anim.ProcessReverse && s == anim.StateApplied {
			b.vis = hidden
		}
	case anim.TypeHidden:
		if p == anim.ProcessNormal && s == anim.StateApplied {
			b.vis = hidden
		} else if p != anim.ProcessNone {
			b.vis = visible
		}
	}
}
