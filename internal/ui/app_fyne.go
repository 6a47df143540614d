//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mediaskin/internal/crash"
	applog "mediaskin/internal/log"
)

// previewView holds the widgets of the preview window.
type previewView struct {
	pv     Preview
	img    *canvas.Image
	status *widget.Label
	root   fyne.CanvasObject
}

func newPreviewView(pv Preview) *previewView {
	v := &previewView{pv: pv, status: widget.NewLabel("Ready")}
	v.img = canvas.NewImageFromImage(pv.Canvas.Image())
	v.img.FillMode = canvas.ImageFillContain
	v.img.ScaleMode = canvas.ImageScaleFastest

	p := pv.Player
	tools := []fyne.CanvasObject{
		widget.NewButton("Open", func() { p.Start(time.Now()) }),
		widget.NewButton("Close", func() { p.Window.Close() }),
		widget.NewButton("Pause", func() { p.TogglePause(time.Now()) }),
		widget.NewButton("Focus next", func() { p.Window.FocusNext() }),
	}
	for _, name := range p.FlagNames() {
		name := name
		chk := widget.NewCheck(name, func(on bool) {
			if p.Flags != nil {
				p.Flags.Set(name, on)
			}
		})
		if p.Flags != nil {
			chk.SetChecked(p.Flags.Get(name))
		}
		tools = append(tools, chk)
	}
	v.root = container.NewBorder(container.NewHBox(tools...), v.status, nil, nil, v.img)
	return v
}

// frame advances the player and shows the new image. Runs on the UI thread.
func (v *previewView) frame(t time.Time) {
	v.pv.Player.Tick(t)
	v.img.Image = v.pv.Canvas.Image()
	v.img.Refresh()
	state := "running"
	if v.pv.Player.Paused() {
		state = "paused"
	} else if v.pv.Player.Window.IsClosed() {
		state = "closed"
	}
	v.status.SetText(fmt.Sprintf("%d ms  %s", v.pv.Player.Now(), state))
}

// Run shows the scene in a desktop window until it is closed.
func Run(pv Preview) error {
	defer crash.Recover(pv.CrashDir)
	l := applog.WithComponent("ui")
	l.Info("starting preview", "title", pv.Title)

	fps := pv.FPS
	if fps <= 0 {
		fps = 30
	}
	a := app.NewWithID("mediaskin")
	w := a.NewWindow("mediaskin - " + pv.Title)
	v := newPreviewView(pv)
	w.SetContent(v.root)
	vp := pv.Canvas.Context().Viewport()
	w.Resize(fyne.NewSize(vp.W, vp.H+80))

	stop := make(chan struct{})
	w.SetOnClosed(func() { close(stop) })
	pv.Player.Start(time.Now())
	go func() {
		t := time.NewTicker(time.Second / time.Duration(fps))
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-t.C:
				fyne.Do(func() { v.frame(now) })
			}
		}
	}()
	w.ShowAndRun()
	l.Info("preview closed", "frames", pv.Player.Frames())
	return nil
}
