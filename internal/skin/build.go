/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package skin

import (
	"fmt"
	"strconv"
	"strings"

	"mediaskin/internal/anim"
	"mediaskin/internal/colors"
	"mediaskin/internal/condition"
	"mediaskin/internal/control"
	applog "mediaskin/internal/log"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/tween"
	"mediaskin/internal/vector"
)

// Env holds the services a scene is built against.
type Env struct {
	Fonts      *textlayout.FontManager
	Colors     *colors.Manager
	Conditions *condition.Registry
	PixelRatio float32

	// DefaultFont is used by labels that name no font.
	DefaultFont string

	// Marquee defaults for labels that do not set their own.
	ScrollSpeed  int
	ScrollWait   uint
	ScrollSuffix string
}

// Build creates the window for sc. Colors and fonts of the scene are
// merged into env first. Invalid animations, conditions and colors are
// reported and skipped; the window is always returned.
func Build(sc *Scene, env Env) (*control.Window, []Error) {
	lg := applog.WithComponent("skin").With("scene", sc.Name)
	var errs []Error
	bad := func(path, format string, args ...any) {
		errs = append(errs, Error{File: sc.Path, Path: path, Msg: fmt.Sprintf(format, args...)})
	}
	if env.Colors == nil {
		env.Colors = colors.New()
	}
	if env.Conditions == nil {
		env.Conditions = condition.NewRegistry(condition.NewFlags(sc.Flags))
	}
	if env.PixelRatio == 0 {
		env.PixelRatio = 1
	}

	if sc.ColorFile != "" {
		if err := env.Colors.Load(sc.Resolve(sc.ColorFile)); err != nil {
			bad("colorfile", "%v", err)
		}
	}
	for _, name := range env.Colors.Merge(colors.File{Colors: sc.Colors}) {
		bad("colors."+name, "invalid color %q", sc.Colors[name])
	}

	if env.Fonts != nil && len(sc.Fonts) > 0 {
		defs := make(map[string]textlayout.FontDef, len(sc.Fonts))
		for _, f := range sc.Fonts {
			defs[f.Name] = fontDef(sc, env.Colors, f)
		}
		env.Fonts.SetFontSet(env.Fonts.FontSet().WithWindow(defs))
	}

	w := control.NewWindow(0, vector.R(0, 0, float32(sc.Width), float32(sc.Height)), env.Conditions)
	for i, a := range sc.Animations {
		as, err := buildAnimation(a, env, vector.R(0, 0, float32(sc.Width), float32(sc.Height)))
		if err != nil {
			bad(fmt.Sprintf("animations[%d]", i), "%v", err)
			continue
		}
		w.AddAnimation(as...)
	}

	for i, ls := range sc.Labels {
		p := fmt.Sprintf("labels[%d]", i)
		rect := vector.R(ls.X, ls.Y, ls.Width, ls.Height)
		style := control.LabelStyle{
			TextColor:   colorOf(env.Colors, ls.TextColor),
			ShadowColor: colorOf(env.Colors, ls.ShadowColor),
			Align:       textlayout.ParseAlign(ls.Align, ls.AlignY),
			Angle:       ls.Angle,
			Wrap:        ls.Wrap,
			Scroll:      ls.Scroll,
		}
		if env.Fonts != nil {
			name := ls.Font
			if name == "" {
				name = env.DefaultFont
			}
			style.Font = env.Fonts.Font(name)
		}
		var scroll *textlayout.ScrollInfo
		if ls.Scroll {
			speed := ls.ScrollSpeed
			if speed == 0 {
				speed = env.ScrollSpeed
			}
			suffix := env.ScrollSuffix
			if ls.ScrollSuffix != nil {
				suffix = *ls.ScrollSuffix
			} else if suffix == "" {
				suffix = textlayout.DefaultScrollSuffix
			}
			wait := env.ScrollWait
			if wait == 0 {
				wait = 50
			}
			scroll = textlayout.NewScrollInfo(wait, 0, speed, suffix)
		}
		l := control.NewLabel(ls.ID, rect, style, env.Colors, scroll)
		l.SetText(ls.Text)

		if ls.Visible != "" {
			h, err := env.Conditions.Register(ls.Visible)
			if err != nil {
				bad(p+".visible", "%v", err)
			} else {
				l.SetVisibleCondition(h)
			}
		}
		for j, a := range ls.Animations {
			as, err := buildAnimation(a, env, rect)
			if err != nil {
				bad(fmt.Sprintf("%s.animations[%d]", p, j), "%v", err)
				continue
			}
			l.AddAnimation(as...)
		}
		w.Add(l)
	}

	for _, e := range errs {
		lg.Warn("scene problem", "path", e.Path, "msg", e.Msg)
	}
	lg.Debug("scene built", "labels", len(w.Controls()), "animations", len(w.Animations()))
	return w, errs
}

func fontDef(sc *Scene, cm *colors.Manager, f FontSpec) textlayout.FontDef {
	text := colorOf(cm, f.Color)
	if text.IsZero() {
		text = vector.White
	}
	return textlayout.FontDef{
		Name:        f.Name,
		Family:      f.Family,
		File:        sc.Resolve(f.File),
		Size:        f.Size,
		Style:       textlayout.ParseStyle(f.Style),
		Color:       text,
		Shadow:      colorOf(cm, f.Shadow),
		LineSpacing: f.LineSpacing,
		Aspect:      f.Aspect,
	}
}

func colorOf(cm *colors.Manager, s string) vector.Color {
	if s == "" {
		return vector.Color{}
	}
	return cm.ResolveColor(s)
}

// buildAnimation parses one animation element. "visiblechange" yields a
// visible animation and its reverse as the hidden one.
func buildAnimation(a AnimSpec, env Env, rect vector.Rect) ([]*anim.Animation, error) {
	typ := strings.ToLower(strings.TrimSpace(a.Type))
	both := false
	if typ == "visiblechange" {
		typ, both = "visible", true
	}
	t, err := anim.ParseType(typ)
	if err != nil {
		return nil, err
	}
	e, err := anim.ParseEffect(a.Effect)
	if err != nil {
		return nil, err
	}
	tw, err := tween.Parse(a.Tween, a.Easing)
	if err != nil {
		return nil, err
	}
	p := anim.Params{
		Type:       t,
		Effect:     e,
		Delay:      a.Delay,
		Length:     a.Time,
		Tween:      tw,
		PixelRatio: env.PixelRatio,
		Reversible: true,
	}
	if a.Reversible != nil {
		p.Reversible = *a.Reversible
	}
	switch {
	case a.Pulse:
		p.Repeat = anim.RepeatPulse
	case a.Loop:
		p.Repeat = anim.RepeatLoop
	}
	if a.Condition != "" {
		h, err := env.Conditions.Register(a.Condition)
		if err != nil {
			return nil, fmt.Errorf("condition: %w", err)
		}
		p.Condition = h
	}
	if err := effectValues(&p, a, rect); err != nil {
		return nil, err
	}
	first := anim.New(p)
	if !both {
		return []*anim.Animation{first}, nil
	}
	return []*anim.Animation{first, anim.New(p).Reverse()}, nil
}

// effectValues fills start, end and center for the effect. Missing values
// default to: fade 100, slide 0,0, rotate 0, zoom 100.
func effectValues(p *anim.Params, a AnimSpec, rect vector.Rect) error {
	switch p.Effect {
	case anim.EffectFade:
		s, err := scalar(a.Start, 100)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		e, err := scalar(a.End, 100)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		p.Start, p.End = vector.Pt{X: s}, vector.Pt{X: e}
		return nil
	case anim.EffectSlide:
		s, err := pair(a.Start)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		e, err := pair(a.End)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		p.Start, p.End = s, e
		return nil
	case anim.EffectRotateX, anim.EffectRotateY, anim.EffectRotateZ:
		s, err := scalar(a.Start, 0)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		e, err := scalar(a.End, 0)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		p.Start, p.End = vector.Pt{X: s}, vector.Pt{X: e}
	case anim.EffectZoom:
		var err error
		if p.Start, p.StartPos, p.HasPos, err = zoomValue(a.Start, rect, p.HasPos); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		var endPos bool
		if p.End, p.EndPos, endPos, err = zoomValue(a.End, rect, false); err != nil {
			return fmt.Errorf("end: %w", err)
		}
		switch {
		case p.HasPos && !endPos:
			p.EndPos = rect.Min()
		case !p.HasPos && endPos:
			p.StartPos, p.HasPos = rect.Min(), true
		}
	}
	c := strings.TrimSpace(strings.ToLower(a.Center))
	if c != "" && c != "auto" {
		pt, err := pair(c)
		if err != nil {
			return fmt.Errorf("center: %w", err)
		}
		p.Center, p.CenterSet = pt, true
	}
	return nil
}

// zoomValue reads "s", "sx,sy" or "x,y,w,h". The last form gives a
// position and a size that is turned into percent of rect.
func zoomValue(s string, rect vector.Rect, hadPos bool) (scale, pos vector.Pt, hasPos bool, err error) {
	vals, err := floats(s)
	if err != nil {
		return scale, pos, hadPos, err
	}
	switch len(vals) {
	case 0:
		return vector.Pt{X: 100, Y: 100}, pos, hadPos, nil
	case 1:
		return vector.Pt{X: vals[0], Y: vals[0]}, pos, hadPos, nil
	case 2:
		return vector.Pt{X: vals[0], Y: vals[1]}, pos, hadPos, nil
	case 4:
		if rect.W == 0 || rect.H == 0 {
			return scale, pos, hadPos, fmt.Errorf("zoom rectangle needs a sized control")
		}
		scale = vector.Pt{X: 100 * vals[2] / rect.W, Y: 100 * vals[3] / rect.H}
		return scale, vector.Pt{X: vals[0], Y: vals[1]}, true, nil
	}
	return scale, pos, hadPos, fmt.Errorf("expected 1, 2 or 4 values, got %d", len(vals))
}

func scalar(s string, def float32) (float32, error) {
	vals, err := floats(s)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return def, nil
	}
	return vals[0], nil
}

func pair(s string) (vector.Pt, error) {
	vals, err := floats(s)
	if err != nil {
		return vector.Pt{}, err
	}
	switch len(vals) {
	case 0:
		return vector.Pt{}, nil
	case 1:
		return vector.Pt{X: vals[0]}, nil
	}
	return vector.Pt{X: vals[0], Y: vals[1]}, nil
}

func floats(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", strings.TrimSpace(p))
		}
		out = append(out, float32(v))
	}
	return out, nil
}
