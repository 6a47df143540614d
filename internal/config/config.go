/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	applog "mediaskin/internal/log"
)

// AppConfig is the user configuration persisted as YAML in the user scope.
// Environment variables are read-only overrides applied at load time.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Logging       LoggingConfig `yaml:"logging"`
	Render        RenderConfig  `yaml:"render"`
	Scroll        ScrollConfig  `yaml:"scroll"`
	Skin          SkinConfig    `yaml:"skin"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// RenderConfig sets up the draw backends. Width and Height are used when a
// scene does not give its own size.
type RenderConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FPS         int     `yaml:"fps"`
	Background  string  `yaml:"background"`
	DefaultFont string  `yaml:"default_font"`
	FontDir     string  `yaml:"font_dir"`
	CellWidth   float32 `yaml:"cell_width"` // terminal cell size in skin pixels
	CellHeight  float32 `yaml:"cell_height"`
}

type ScrollConfig struct {
	Speed  int    `yaml:"speed"` // px per second
	Wait   uint   `yaml:"wait"`  // frames
	Suffix string `yaml:"suffix"`
}

type SkinConfig struct {
	Dir       string          `yaml:"dir"`
	ColorFile string          `yaml:"color_file"`
	CrashDir  string          `yaml:"crash_dir"`
	Flags     map[string]bool `yaml:"flags"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Render:        RenderConfig{Width: 1280, Height: 720, FPS: 30, Background: "FF000000", DefaultFont: "font13", CellWidth: 10, CellHeight: 20},
		Scroll:        ScrollConfig{Speed: 60, Wait: 50, Suffix: " | "},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath = "MSK_CONFIG"
	EnvLogLevel   = "MSK_LOG_LEVEL"
	EnvLogFormat  = "MSK_LOG_FORMAT"
	EnvLogSource  = "MSK_LOG_SOURCE"
	EnvLogFile    = "MSK_LOG_FILE"
	EnvFPS        = "MSK_RENDER_FPS"
	EnvFontDir    = "MSK_FONT_DIR"
	EnvScrollSpd  = "MSK_SCROLL_SPEED"
	EnvSkinDir    = "MSK_SKIN_DIR"
)

// envKeys maps dotted config keys to the variables overriding them.
var envKeys = map[string]string{
	"logging.level":   EnvLogLevel,
	"logging.format":  EnvLogFormat,
	"logging.source":  EnvLogSource,
	"logging.file":    EnvLogFile,
	"render.fps":      EnvFPS,
	"render.font_dir": EnvFontDir,
	"scroll.speed":    EnvScrollSpd,
	"skin.dir":        EnvSkinDir,
}

// ConfigPath returns the per-user config file path. MSK_CONFIG replaces it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "MediaSkin")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "MediaSkin")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "mediaskin")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file if present, applies defaults and merges
// environment overrides. A broken file is reported but the defaults are
// still returned.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	var perr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			perr = fmt.Errorf("parse config %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, perr
}

// Save writes the config YAML to ConfigPath.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LogOptions converts the logging section for log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	// render
	r := &src.Render
	if r.Width > 0 {
		dst.Render.Width = r.Width
	}
	if r.Height > 0 {
		dst.Render.Height = r.Height
	}
	if r.FPS > 0 {
		dst.Render.FPS = r.FPS
	}
	if s := strings.TrimSpace(r.Background); s != "" {
		dst.Render.Background = s
	}
	if s := strings.TrimSpace(r.DefaultFont); s != "" {
		dst.Render.DefaultFont = s
	}
	if s := strings.TrimSpace(r.FontDir); s != "" {
		dst.Render.FontDir = s
	}
	if r.CellWidth > 0 {
		dst.Render.CellWidth = r.CellWidth
	}
	if r.CellHeight > 0 {
		dst.Render.CellHeight = r.CellHeight
	}
	// scroll
	if src.Scroll.Speed != 0 {
		dst.Scroll.Speed = src.Scroll.Speed
	}
	if src.Scroll.Wait != 0 {
		dst.Scroll.Wait = src.Scroll.Wait
	}
	if src.Scroll.Suffix != "" {
		dst.Scroll.Suffix = src.Scroll.Suffix
	}
	// skin
	if s := strings.TrimSpace(src.Skin.Dir); s != "" {
		dst.Skin.Dir = s
	}
	if s := strings.TrimSpace(src.Skin.ColorFile); s != "" {
		dst.Skin.ColorFile = s
	}
	if s := strings.TrimSpace(src.Skin.CrashDir); s != "" {
		dst.Skin.CrashDir = s
	}
	if len(src.Skin.Flags) > 0 {
		dst.Skin.Flags = make(map[string]bool, len(src.Skin.Flags))
		for k, v := range src.Skin.Flags {
			dst.Skin.Flags[k] = v
		}
	}
}

func envBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFPS)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Render.FPS = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontDir)); v != "" {
		cfg.Render.FontDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScrollSpd)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scroll.Speed = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSkinDir)); v != "" {
		cfg.Skin.Dir = v
	}
}

// EnvOverrideFor returns the env var name if the dotted key is currently
// overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
