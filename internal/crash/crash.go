/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in a front-end into a report file and a
// non-zero exit.
package crash

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	applog "mediaskin/internal/log"
	"mediaskin/internal/version"
)

// exitFn is swapped out by tests.
var exitFn = os.Exit

// ExitCode is what the process exits with after a recovered panic.
const ExitCode = 2

type report struct {
	when  time.Time
	value any
	stack []byte
}

func (r report) platform() string { return runtime.GOOS + "/" + runtime.GOARCH }

func (r report) writeTo(w io.Writer) error {
	var b strings.Builder
	b.WriteString("mediaskin crash report\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", r.when.Format(time.RFC3339))
	fmt.Fprintf(&b, "Version: %s\n", version.String())
	fmt.Fprintf(&b, "OS/Arch: %s\n", r.platform())
	fmt.Fprintf(&b, "Args: %q\n", os.Args)
	fmt.Fprintf(&b, "\nPanic: %v\n\nStack:\n%s\n", r.value, r.stack)
	_, err := io.WriteString(w, b.String())
	return err
}

// Recover is deferred at the top of a front-end goroutine:
//
//	defer crash.Recover(cfg.Skin.CrashDir)
//
// On panic it logs the value and stack, saves a report under reportDir (the
// temp dir when empty or not creatable), tells the user where it went and
// exits with ExitCode.
func Recover(reportDir string) {
	v := recover()
	if v == nil {
		return
	}
	rep := report{when: time.Now(), value: v, stack: debug.Stack()}
	l := applog.WithComponent("crash")
	l.Error("panic recovered", slog.Any("panic", v), slog.String("stack", string(rep.stack)))

	path, err := rep.save(reportDir)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "mediaskin crashed (%s, %s). Report: %s\n", version.String(), rep.platform(), path); err != nil {
		l.Error("write crash notice failed", slog.Any("err", err))
	}
	_ = applog.Close()
	exitFn(ExitCode)
}

func (r report) save(dir string) (string, error) {
	if dir == "" || os.MkdirAll(dir, 0o755) != nil {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "crash-"+r.when.Format("20060102-150405")+".log")
	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("write report: %w", err)
	}
	if err := r.writeTo(f); err != nil {
		_ = f.Close()
		return path, fmt.Errorf("write report: %w", err)
	}
	return path, f.Close()
}

// writeReport saves a report for panicVal stamped with the current time.
func writeReport(dir string, panicVal any, stack []byte) (string, error) {
	return report{when: time.Now(), value: panicVal, stack: stack}.save(dir)
}
