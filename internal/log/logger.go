/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log is the slog setup shared by every mediaskin command.
//
// Records go to the console, pretty one-liners by default or JSON on
// request, and optionally to a rotating JSON file. Packages log through
// WithComponent so output can be filtered by subsystem.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"mediaskin/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// Options controls Init. FromEnv reads the same fields from MSK_LOG_LEVEL,
// MSK_LOG_FORMAT, MSK_LOG_SOURCE and MSK_LOG_FILE.
type Options struct {
	Level     string // debug, info, warn or error
	Format    string // console or json
	AddSource bool
	File      string // rotated JSON log; empty disables

	// Console receives console records; nil means os.Stderr. Full-screen
	// front-ends pass io.Discard and rely on File.
	Console io.Writer
}

type state struct {
	mu     sync.RWMutex
	logger *slog.Logger
	file   *lj.Logger
}

var std state

// L returns the process logger, configuring it from the environment on first use.
func L() *slog.Logger {
	std.mu.RLock()
	l := std.logger
	std.mu.RUnlock()
	if l == nil {
		l = Init(FromEnv())
	}
	return l
}

// Init replaces the process logger (and slog's default) and closes the log
// file of a previous Init.
func Init(opts Options) *slog.Logger {
	h, file := buildHandler(opts)
	logger := slog.New(h).With(
		slog.String("app", "mediaskin"),
		slog.String("ver", version.Version),
		slog.Time("ts_init", time.Now()),
	)

	std.mu.Lock()
	prev := std.file
	std.logger, std.file = logger, file
	std.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	slog.SetDefault(logger)
	return logger
}

func buildHandler(opts Options) (slog.Handler, *lj.Logger) {
	ho := &slog.HandlerOptions{Level: parseLevel(opts.Level), AddSource: opts.AddSource}
	out := opts.Console
	if out == nil {
		out = os.Stderr
	}
	var console slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		console = slog.NewJSONHandler(out, ho)
	default:
		console = &prettyTextHandler{opts: prettyOpts{Level: ho.Level, AddSource: ho.AddSource}, w: out, mu: &sync.Mutex{}}
	}
	if strings.TrimSpace(opts.File) == "" {
		return withEnricher(console), nil
	}
	file := &lj.Logger{
		Filename:   opts.File,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	}
	return multiHandler(withEnricher(console), withEnricher(slog.NewJSONHandler(file, ho))), file
}

// Close closes the log file, if any. Console logging keeps working.
func Close() error {
	std.mu.Lock()
	file := std.file
	std.file = nil
	std.mu.Unlock()
	if file == nil {
		return nil
	}
	return file.Close()
}

// FromEnv builds Options from MSK_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("MSK_LOG_LEVEL", "info"),
		Format:    getenv("MSK_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("MSK_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("MSK_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// WithComponent tags records with the emitting subsystem.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

type ctxKey struct{}

// ContextWith stacks attrs onto ctx. Records logged with that context
// (l.InfoContext(ctx, ...)) carry them, e.g. the scene being processed.
func ContextWith(ctx context.Context, attrs ...slog.Attr) context.Context {
	prev := contextAttrs(ctx)
	return context.WithValue(ctx, ctxKey{}, append(prev[:len(prev):len(prev)], attrs...))
}

func contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(ctxKey{}).([]slog.Attr)
	return attrs
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "warning":
		return slog.LevelWarn
	case "":
		return slog.LevelInfo
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
