/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"sort"

	"mediaskin/internal/colors"
	"mediaskin/internal/condition"
	"mediaskin/internal/config"
	"mediaskin/internal/control"
	applog "mediaskin/internal/log"
	"mediaskin/internal/skin"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/vector"
)

// stage is a loaded scene before it is bound to a backend.
type stage struct {
	cfg    config.AppConfig
	scene  *skin.Scene
	colors *colors.Manager
	flags  *condition.Flags
}

func loadStage(cfg config.AppConfig, path string) (*stage, error) {
	l := applog.WithComponent("cli")
	sc, problems, err := skin.Load(path)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		l.Warn("scene problem", slog.String("file", p.File), slog.String("path", p.Path), slog.String("msg", p.Msg))
	}
	cm := colors.New()
	if cfg.Skin.ColorFile != "" {
		if err := cm.Load(cfg.Skin.ColorFile); err != nil {
			l.Warn("color file not loaded", slog.Any("err", err))
		}
	}
	flags := condition.NewFlags(cfg.Skin.Flags)
	for k, v := range sc.Flags {
		flags.Set(k, v)
	}
	return &stage{cfg: cfg, scene: sc, colors: cm, flags: flags}, nil
}

// size is the scene size in skin pixels.
func (s *stage) size() (int, int) { return s.scene.Width, s.scene.Height }

// background resolves the scene background, falling back to the config.
func (s *stage) background() vector.Color {
	name := s.scene.Background
	if name == "" {
		name = s.cfg.Render.Background
	}
	if c := s.colors.ResolveColor(name); !c.IsZero() {
		return c
	}
	return vector.Black
}

// flagNames lists every flag known to the scene or the config.
func (s *stage) flagNames() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range []map[string]bool{s.cfg.Skin.Flags, s.scene.Flags} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

// build binds the scene to a backend and returns its window.
func (s *stage) build(gfx textlayout.Graphics, faces textlayout.FaceFactory) (*control.Window, error) {
	fonts := textlayout.NewFontManager(gfx, faces, nil)
	w, errs := skin.Build(s.scene, skin.Env{
		Fonts:        fonts,
		Colors:       s.colors,
		Conditions:   condition.NewRegistry(s.flags),
		PixelRatio:   1,
		DefaultFont:  s.cfg.Render.DefaultFont,
		ScrollSpeed:  s.cfg.Scroll.Speed,
		ScrollWait:   s.cfg.Scroll.Wait,
		ScrollSuffix: s.cfg.Scroll.Suffix,
	})
	if len(w.Controls()) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("scene %s has no usable controls (%d problems)", s.scene.Name, len(errs))
	}
	return w, nil
}
