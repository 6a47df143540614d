/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package control

import (
	"mediaskin/internal/anim"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

// Window is an ordered set of controls drawn back to front, with its own
// window-open and window-close animations.
type Window struct {
	Base
	controls []Control
	eval     anim.Evaluator
	closing  bool
	focus    int // index into controls, -1 for none
}

// NewWindow creates a window covering rect. eval answers the conditions of
// its controls and animations; nil treats every condition as true.
func NewWindow(id int, rect vector.Rect, eval anim.Evaluator) *Window {
	return &Window{Base: NewBase(id, rect), eval: eval, focus: -1}
}

func (w *Window) Controls() []Control { return w.controls }
func (w *Window) Closing() bool       { return w.closing }

// Add appends controls in drawing order.
func (w *Window) Add(cs ...Control) { w.controls = append(w.controls, cs...) }

// Control returns the control with the given id, or nil.
func (w *Window) Control(id int) Control {
	for _, c := range w.controls {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// Open applies initial conditions and starts the window-open animations of
// the window and every control.
func (w *Window) Open() {
	w.closing = false
	w.SetInitialVisibility(w.eval, w.id)
	w.QueueAnimation(anim.TypeWindowOpen)
	for _, c := range w.controls {
		c.Core().SetInitialVisibility(w.eval, w.id)
		c.Core().QueueAnimation(anim.TypeWindowOpen)
	}
}

// Close starts the window-close animations. The window is closed once
// IsClosed reports true.
func (w *Window) Close() {
	w.closing = true
	w.QueueAnimation(anim.TypeWindowClose)
	for _, c := range w.controls {
		c.Core().QueueAnimation(anim.TypeWindowClose)
	}
}

// IsClosed reports whether a requested close has finished animating.
func (w *Window) IsClosed() bool {
	if !w.closing {
		return false
	}
	if w.IsAnimating(anim.TypeWindowClose) {
		return false
	}
	for _, c := range w.controls {
		if c.Core().IsAnimating(anim.TypeWindowClose) {
			return false
		}
	}
	return true
}

// Busy reports whether the window or any control has an animation
// in flight.
func (w *Window) Busy() bool {
	if w.IsAnimating(anim.TypeNone) {
		return true
	}
	for _, c := range w.controls {
		if c.Core().IsAnimating(anim.TypeNone) {
			return true
		}
	}
	return false
}

// Frame runs one frame at time now: visibility conditions, animations, and
// drawing under the window transform.
func (w *Window) Frame(gfx textlayout.Graphics, now uint32) {
	w.Animate(now, w.eval, w.id)
	for _, c := range w.controls {
		c.Core().UpdateVisibility(w.eval, w.id)
		c.Animate(now, w.eval, w.id)
	}
	if gfx == nil {
		return
	}
	gfx.PushTransform(w.transform)
	for _, c := range w.controls {
		c.Render(gfx)
	}
	gfx.PopTransform()
}

// Render draws the controls without advancing animations.
func (w *Window) Render(gfx textlayout.Graphics) {
	gfx.PushTransform(w.transform)
	for _, c := range w.controls {
		c.Render(gfx)
	}
	gfx.PopTransform()
}

// FocusNext moves focus to the next visible focusable control, wrapping
// around. It returns the focused control or nil when none can take focus.
func (w *Window) FocusNext() Control {
	n := len(w.controls)
	for i := 1; i <= n; i++ {
		idx := (w.focus + i) % n
		if idx < 0 {
			idx += n
		}
		c := w.controls[idx]
		if _, ok := c.(FocusNavigable); !ok || !c.IsVisible() {
			continue
		}
		if w.focus >= 0 && w.focus != idx {
			if f, ok := w.controls[w.focus].(FocusNavigable); ok {
				f.SetFocus(false)
			}
		}
		w.focus = idx
		c.(FocusNavigable).SetFocus(true)
		return c
	}
	return nil
}

// Focused returns the focused control, or nil.
func (w *Window) Focused() Control {
	if w.focus < 0 || w.focus >= len(w.controls) {
		return nil
	}
	return w.controls[w.focus]
}
