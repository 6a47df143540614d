/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mediaskin/internal/colors"
	"mediaskin/internal/config"
	"mediaskin/internal/crash"
	applog "mediaskin/internal/log"
	"mediaskin/internal/render/pdf"
	"mediaskin/internal/render/raster"
	"mediaskin/internal/render/term"
	"mediaskin/internal/skin"
	"mediaskin/internal/textlayout"
	"mediaskin/internal/ui"
	"mediaskin/internal/vector"
	"mediaskin/internal/version"
)

func usage() {
	fmt.Println("mediaskin - skin text and animation renderer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mediaskin version|-v|--version                     Show version")
	fmt.Println("  mediaskin wrap <width> <text> [size]                Wrap marked-up text and print the lines")
	fmt.Println("  mediaskin render <scene> <out.png|out.pdf> [frames] [stepMs]")
	fmt.Println("                                                      Render frames of a scene to PNG files or PDF pages")
	fmt.Println("  mediaskin check <scene>...                          Report structural and semantic problems in scene files")
	fmt.Println("  mediaskin marquee <scene>                           Play a scene in the terminal")
	fmt.Println("  mediaskin index <dir>                               Rebuild the scene index of a skin directory")
	fmt.Println("  mediaskin find <dir> <query>                        Search label names and text in the index")
	fmt.Println("  mediaskin anims <dir> [type]                        List indexed animations, optionally of one type")
	fmt.Println("  mediaskin ui <scene>                                Preview a scene in a window (build with -tags fyne)")
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func need(args []string, n int, what string) {
	if len(args) < n {
		fmt.Println(what)
		usage()
		os.Exit(2)
	}
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.LogOptions())
	defer func() { _ = applog.Close() }()
	defer crash.Recover(cfg.Skin.CrashDir)
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	ctx := context.Background()
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "wrap":
		need(args, 4, "wrap requires <width> and <text>")
		lines, err := wrapLines(args[2], args[3], optArg(args, 4))
		if err != nil {
			fail(l, "wrap failed", err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	case "render":
		need(args, 4, "render requires <scene> and <out.png|out.pdf>")
		frames, err := intArg(optArg(args, 4), 1)
		if err != nil {
			fail(l, "bad frames", err)
		}
		step, err := intArg(optArg(args, 5), 40)
		if err != nil {
			fail(l, "bad stepMs", err)
		}
		outs, err := render(cfg, args[2], args[3], frames, uint32(step))
		if err != nil {
			fail(l, "render failed", err)
		}
		for _, o := range outs {
			fmt.Println("Wrote", o)
		}
	case "check":
		need(args, 3, "check requires <scene>")
		n, err := check(os.Stdout, args[2:])
		if err != nil {
			fail(l, "check failed", err)
		}
		if n > 0 {
			os.Exit(1)
		}
	case "marquee":
		need(args, 3, "marquee requires <scene>")
		if err := marquee(cfg, args[2]); err != nil {
			fail(l, "marquee failed", err)
		}
	case "index":
		dir := cfg.Skin.Dir
		if len(args) >= 3 {
			dir = args[2]
		}
		if dir == "" {
			need(args, 3, "index requires <dir>")
		}
		if err := index(ctx, dir); err != nil {
			fail(l, "index failed", err)
		}
	case "find":
		need(args, 4, "find requires <dir> and <query>")
		if err := find(ctx, args[2], strings.Join(args[3:], " ")); err != nil {
			fail(l, "find failed", err)
		}
	case "anims":
		need(args, 3, "anims requires <dir>")
		if err := anims(ctx, args[2], optArg(args, 3)); err != nil {
			fail(l, "anims failed", err)
		}
	case "ui":
		need(args, 3, "ui requires <scene>")
		if err := preview(cfg, args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
	}
}

func optArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func intArg(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive number, got %q", s)
	}
	return n, nil
}

// wrapLines wraps text with the Go regular font at size (20 by default).
func wrapLines(width, text, size string) ([]string, error) {
	w, err := strconv.ParseFloat(width, 32)
	if err != nil || w <= 0 {
		return nil, fmt.Errorf("bad width %q", width)
	}
	px := 20.0
	if size != "" {
		if px, err = strconv.ParseFloat(size, 32); err != nil || px <= 0 {
			return nil, fmt.Errorf("bad size %q", size)
		}
	}
	m, err := raster.GoMetrics(float32(px))
	if err != nil {
		return nil, err
	}
	t, _ := textlayout.ParseMarkup(text, 0, vector.White, colors.New())
	var out []string
	for _, line := range textlayout.WrapText(m, t, float32(w), 0) {
		out = append(out, line.Text.String())
	}
	return out, nil
}

// render draws frames at 0, step, 2*step ... into PNG files or PDF pages.
// Several PNG frames get a -NNNN suffix.
func render(cfg config.AppConfig, scenePath, out string, frames int, step uint32) ([]string, error) {
	l := applog.WithOperation(applog.WithComponent("cli"), "render").With(slog.String("scene", scenePath))
	st, err := loadStage(cfg, scenePath)
	if err != nil {
		return nil, err
	}
	w, h := st.size()
	ext := strings.ToLower(filepath.Ext(out))
	switch ext {
	case ".pdf":
		doc := pdf.New(w, h, st.scene.Name)
		doc.SetBackground(st.background())
		win, err := st.build(doc.Context(), doc)
		if err != nil {
			return nil, err
		}
		win.Open()
		for i := 0; i < frames; i++ {
			now := uint32(i) * step
			doc.BeginFrame(now)
			win.Frame(doc.Context(), now)
		}
		if err := doc.Save(out); err != nil {
			return nil, err
		}
		l.Info("pdf written", slog.String("out", out), slog.Int("pages", doc.PageCount()))
		return []string{out}, nil
	case ".png":
		lib := textlayout.NewFontLibrary()
		if dir := cfg.Render.FontDir; dir != "" {
			if n, err := lib.LoadDir(dir); err != nil {
				l.Warn("font dir not loaded", slog.Any("err", err))
			} else {
				l.Debug("fonts loaded", slog.Int("count", n))
			}
		}
		c := raster.New(w, h, lib)
		c.SetBackground(st.background())
		win, err := st.build(c.Context(), c)
		if err != nil {
			return nil, err
		}
		win.Open()
		var outs []string
		base := strings.TrimSuffix(out, filepath.Ext(out))
		for i := 0; i < frames; i++ {
			now := uint32(i) * step
			c.BeginFrame(now)
			win.Frame(c.Context(), now)
			path := out
			if frames > 1 {
				path = fmt.Sprintf("%s-%04d%s", base, i, filepath.Ext(out))
			}
			if err := c.SavePNG(path); err != nil {
				return outs, err
			}
			outs = append(outs, path)
		}
		l.Info("png written", slog.Int("frames", len(outs)))
		return outs, nil
	}
	return nil, fmt.Errorf("unsupported output %q (want .png or .pdf)", out)
}

// check prints every problem found in the given scene files and returns
// how many there were. Unreadable or unparsable files are errors.
func check(w io.Writer, paths []string) (int, error) {
	n := 0
	for _, p := range paths {
		_, problems, err := skin.Load(p)
		if err != nil {
			return n, err
		}
		for _, pr := range problems {
			fmt.Fprintln(w, pr.Error())
		}
		n += len(problems)
	}
	return n, nil
}

func marquee(cfg config.AppConfig, scenePath string) error {
	st, err := loadStage(cfg, scenePath)
	if err != nil {
		return err
	}
	w, h := st.size()
	screen := term.ForViewport(w, h, cfg.Render.CellWidth, cfg.Render.CellHeight)
	win, err := st.build(screen.Context(), screen)
	if err != nil {
		return err
	}
	p := ui.NewPlayer(win, screen, st.flags, st.flagNames())
	// The marquee owns the terminal; only the log file keeps records.
	opts := cfg.LogOptions()
	opts.Console = io.Discard
	applog.Init(opts)
	return ui.RunMarquee(p, screen, ui.MarqueeOptions{FPS: cfg.Render.FPS, AltScreen: true})
}

func preview(cfg config.AppConfig, scenePath string) error {
	st, err := loadStage(cfg, scenePath)
	if err != nil {
		return err
	}
	w, h := st.size()
	lib := textlayout.NewFontLibrary()
	if dir := cfg.Render.FontDir; dir != "" {
		_, _ = lib.LoadDir(dir)
	}
	c := raster.New(w, h, lib)
	c.SetBackground(st.background())
	win, err := st.build(c.Context(), c)
	if err != nil {
		return err
	}
	return ui.Run(ui.Preview{
		Player:   ui.NewPlayer(win, c, st.flags, st.flagNames()),
		Canvas:   c,
		Title:    st.scene.Name,
		FPS:      cfg.Render.FPS,
		CrashDir: cfg.Skin.CrashDir,
	})
}

func index(ctx context.Context, dir string) error {
	x, rebuilt, err := skin.DetectAndRebuild(ctx, dir)
	if err != nil {
		return err
	}
	defer x.Close()
	if rebuilt {
		fmt.Println("Index was damaged; a backup was kept and the index rebuilt.")
	} else if _, err := x.Rebuild(ctx); err != nil {
		return err
	}
	scenes, err := x.Scenes(ctx)
	if err != nil {
		return err
	}
	for _, s := range scenes {
		fmt.Printf("%-24s %-32s %4dx%-4d labels=%d problems=%d\n", s.Name, s.Path, s.Width, s.Height, s.Labels, s.Problems)
	}
	fmt.Printf("Indexed %d scenes in %s\n", len(scenes), skin.IndexPath(dir))
	return nil
}

// openFresh opens the index of dir and rebuilds it first when scene files
// changed since the last rebuild.
func openFresh(ctx context.Context, dir string) (*skin.Index, error) {
	x, err := skin.OpenIndex(dir)
	if err != nil {
		return nil, err
	}
	stale, err := x.Stale(ctx)
	if err != nil {
		applog.WithComponent("cli").Warn("staleness check failed", slog.Any("err", err))
	}
	if stale {
		if _, err := x.Rebuild(ctx); err != nil {
			_ = x.Close()
			return nil, err
		}
	}
	return x, nil
}

func find(ctx context.Context, dir, query string) error {
	x, err := openFresh(ctx, dir)
	if err != nil {
		return err
	}
	defer x.Close()
	ms, err := x.Find(ctx, query, 50)
	if err != nil {
		return err
	}
	for _, m := range ms {
		fmt.Printf("%s#%d %s: %s\n", m.Path, m.LabelID, m.Name, m.Snippet)
	}
	if len(ms) == 0 {
		fmt.Println("No matches.")
	}
	return nil
}

func anims(ctx context.Context, dir, typ string) error {
	x, err := openFresh(ctx, dir)
	if err != nil {
		return err
	}
	defer x.Close()
	rows, err := x.AnimationsByType(ctx, typ)
	if err != nil {
		return err
	}
	for _, r := range rows {
		cond := ""
		if r.Condition != "" {
			cond = " if " + r.Condition
		}
		fmt.Printf("%s#%d %s %s %dms+%dms%s\n", r.Scene, r.LabelID, r.Type, r.Effect, r.Time, r.Delay, cond)
	}
	return nil
}
