/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package skin loads YAML scene files, builds control windows from them
// and keeps a per-directory SQLite index of the scenes it finds.
package skin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Scene is one window of a skin as written in its YAML file.
type Scene struct {
	Name       string            `yaml:"name"`
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Background string            `yaml:"background"`
	ColorFile  string            `yaml:"colorfile"`
	Colors     map[string]string `yaml:"colors"`
	Fonts      []FontSpec        `yaml:"fonts"`
	Flags      map[string]bool   `yaml:"flags"`
	Animations []AnimSpec        `yaml:"animations"`
	Labels     []LabelSpec       `yaml:"labels"`

	// Path is the file the scene was loaded from.
	Path string `yaml:"-"`
}

// FontSpec declares a skin font.
type FontSpec struct {
	Name        string  `yaml:"name"`
	Family      string  `yaml:"family"`
	File        string  `yaml:"file"`
	Size        float32 `yaml:"size"`
	Style       string  `yaml:"style"`
	Color       string  `yaml:"color"`
	Shadow      string  `yaml:"shadow"`
	LineSpacing float32 `yaml:"linespacing"`
	Aspect      float32 `yaml:"aspect"`
}

// LabelSpec declares a label control. Attribute names follow the usual
// skin vocabulary (posx, aligny, wrapmultiline ...).
type LabelSpec struct {
	ID           int        `yaml:"id"`
	Name         string     `yaml:"name"`
	Text         string     `yaml:"label"`
	X            float32    `yaml:"posx"`
	Y            float32    `yaml:"posy"`
	Width        float32    `yaml:"width"`
	Height       float32    `yaml:"height"`
	Font         string     `yaml:"font"`
	TextColor    string     `yaml:"textcolor"`
	ShadowColor  string     `yaml:"shadowcolor"`
	Align        string     `yaml:"align"`
	AlignY       string     `yaml:"aligny"`
	Wrap         bool       `yaml:"wrapmultiline"`
	Scroll       bool       `yaml:"scroll"`
	ScrollSpeed  int        `yaml:"scrollspeed"`
	ScrollSuffix *string    `yaml:"scrollsuffix"`
	Angle        float32    `yaml:"angle"`
	Visible      string     `yaml:"visible"`
	Animations   []AnimSpec `yaml:"animations"`
}

// AnimSpec declares an animation. start, end and center are comma
// separated numbers; center may also be "auto".
type AnimSpec struct {
	Type       string `yaml:"type"`
	Effect     string `yaml:"effect"`
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
	Center     string `yaml:"center"`
	Time       uint32 `yaml:"time"`
	Delay      uint32 `yaml:"delay"`
	Tween      string `yaml:"tween"`
	Easing     string `yaml:"easing"`
	Condition  string `yaml:"condition"`
	Reversible *bool  `yaml:"reversible"`
	Pulse      bool   `yaml:"pulse"`
	Loop       bool   `yaml:"loop"`
}

// Error is a recoverable problem in a scene file. Path locates the
// offending element, e.g. "labels[2].animations[0]".
type Error struct {
	File string
	Path string
	Msg  string
}

func (e Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.File, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Path, e.Msg)
}

// Load reads a scene file. A file that cannot be read or decoded is an
// error; problems with single elements are returned as []Error and the
// element is fixed up or dropped.
func Load(path string) (*Scene, []Error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene: %w", err)
	}
	sc, errs, err := Parse(data, path)
	if err != nil {
		return nil, nil, err
	}
	return sc, errs, nil
}

// Parse decodes scene YAML. file is used for error messages and to
// resolve relative paths.
func Parse(data []byte, file string) (*Scene, []Error, error) {
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, nil, fmt.Errorf("parse scene %s: %w", file, err)
	}
	sc.Path = file
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	errs := Validate(data, file)
	errs = append(errs, sc.normalize()...)
	return &sc, errs, nil
}

// Dir is the directory relative paths in the scene are resolved against.
func (s *Scene) Dir() string { return filepath.Dir(s.Path) }

// Resolve returns p relative to the scene directory unless absolute.
func (s *Scene) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.Dir(), p)
}

func (s *Scene) normalize() []Error {
	var errs []Error
	bad := func(path, format string, args ...any) {
		errs = append(errs, Error{File: s.Path, Path: path, Msg: fmt.Sprintf(format, args...)})
	}
	if s.Width <= 0 || s.Height <= 0 {
		if s.Width != 0 || s.Height != 0 {
			bad("", "invalid size %dx%d, using %dx%d", s.Width, s.Height, DefaultWidth, DefaultHeight)
		}
		s.Width, s.Height = DefaultWidth, DefaultHeight
	}

	fonts := s.Fonts[:0]
	seenFont := map[string]bool{}
	for i, f := range s.Fonts {
		p := fmt.Sprintf("fonts[%d]", i)
		switch {
		case f.Name == "":
			bad(p, "font without name dropped")
			continue
		case seenFont[f.Name]:
			bad(p, "duplicate font %q dropped", f.Name)
			continue
		}
		if f.Size < 0 {
			bad(p, "negative size %v", f.Size)
			f.Size = 0
		}
		seenFont[f.Name] = true
		fonts = append(fonts, f)
	}
	s.Fonts = fonts

	labels := s.Labels[:0]
	ids := map[int]bool{}
	next := 1
	for _, l := range s.Labels {
		if l.ID > 0 {
			ids[l.ID] = true
		}
	}
	for i, l := range s.Labels {
		p := fmt.Sprintf("labels[%d]", i)
		if l.Width <= 0 || l.Height <= 0 {
			bad(p, "label %q has no area, dropped", l.Name)
			continue
		}
		if l.ID <= 0 {
			for ids[next] {
				next++
			}
			l.ID = next
			ids[next] = true
		}
		labels = append(labels, l)
	}
	s.Labels = labels
	return errs
}
