/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package condition

import (
	"strings"
	"sync"
)

// Registry hands out integer handles for parsed expressions so that
// animations and controls can hold a plain int. Handle 0 is reserved for
// "no condition" and always evaluates true.
type Registry struct {
	mu     sync.RWMutex
	src    Source
	exprs  []Expr
	byText map[string]int
}

// NewRegistry returns a registry evaluating flags against src.
func NewRegistry(src Source) *Registry {
	return &Registry{src: src, exprs: []Expr{nil}, byText: map[string]int{}}
}

// Register parses expr and returns its handle. Registering the same text
// twice returns the same handle. An empty expression yields handle 0.
func (r *Registry) Register(expr string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(expr))
	if key == "" {
		return 0, nil
	}
	r.mu.RLock()
	h, ok := r.byText[key]
	r.mu.RUnlock()
	if ok {
		return h, nil
	}
	e, err := Parse(key)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.byText[key]; ok {
		return h, nil
	}
	r.exprs = append(r.exprs, e)
	h = len(r.exprs) - 1
	r.byText[key] = h
	return h, nil
}

// Evaluate reports the current value of a registered expression. Unknown
// handles evaluate false.
func (r *Registry) Evaluate(handle, contextID int, item any) bool {
	if handle == 0 {
		return true
	}
	r.mu.RLock()
	var e Expr
	if handle > 0 && handle < len(r.exprs) {
		e = r.exprs[handle]
	}
	src := r.src
	r.mu.RUnlock()
	if e == nil {
		return false
	}
	return e.Eval(src, contextID, item)
}

// Expr returns the expression behind a handle, or nil.
func (r *Registry) Expr(handle int) Expr {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if handle <= 0 || handle >= len(r.exprs) {
		return nil
	}
	return r.exprs[handle]
}

// Len is the number of registered expressions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exprs) - 1
}

// Flags is a Source backed by a map of named booleans. It ignores the
// context and item. Safe for concurrent use.
type Flags struct {
	mu sync.RWMutex
	m  map[string]bool
}

func NewFlags(init map[string]bool) *Flags {
	f := &Flags{m: map[string]bool{}}
	for k, v := range init {
		f.m[strings.ToLower(k)] = v
	}
	return f
}

func (f *Flags) Set(name string, v bool) {
	f.mu.Lock()
	f.m[strings.ToLower(name)] = v
	f.mu.Unlock()
}

// Toggle flips a flag and returns its new value.
func (f *Flags) Toggle(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := strings.ToLower(name)
	f.m[k] = !f.m[k]
	return f.m[k]
}

func (f *Flags) Get(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.m[strings.ToLower(name)]
}

func (f *Flags) Flag(name string, _ int, _ any) bool { return f.Get(name) }
