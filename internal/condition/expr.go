/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package condition evaluates the boolean visibility expressions used by
// skins, such as "player.playing + !window.isactive(home) | [a | b]".
package condition

import (
	"fmt"
	"strings"
)

// Source answers the value of a single named flag. contextID identifies
// the window asking and item the list item in scope, if any.
type Source interface {
	Flag(name string, contextID int, item any) bool
}

// Expr is a parsed expression.
type Expr interface {
	Eval(src Source, contextID int, item any) bool
	String() string
}

// Error is a syntax error at a 1-based column of the expression.
type Error struct {
	Column  int
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("col %d: %s", e.Column, e.Message) }

type constExpr bool

func (c constExpr) Eval(Source, int, any) bool { return bool(c) }
func (c constExpr) String() string             { return fmt.Sprint(bool(c)) }

type flagExpr string

func (f flagExpr) Eval(src Source, contextID int, item any) bool {
	if src == nil {
		return false
	}
	return src.Flag(string(f), contextID, item)
}

func (f flagExpr) String() string { return string(f) }

type notExpr struct{ x Expr }

func (n notExpr) Eval(src Source, contextID int, item any) bool { return !n.x.Eval(src, contextID, item) }
func (n notExpr) String() string                                { return "!" + n.x.String() }

type binExpr struct {
	op   byte
	l, r Expr
}

func (b binExpr) Eval(src Source, contextID int, item any) bool {
	if b.op == '+' {
		return b.l.Eval(src, contextID, item) && b.r.Eval(src, contextID, item)
	}
	return b.l.Eval(src, contextID, item) || b.r.Eval(src, contextID, item)
}

func (b binExpr) String() string {
	return "[" + b.l.String() + " " + string(b.op) + " " + b.r.String() + "]"
}

// Parse parses an expression. '!' binds tightest, then '+' (and), then
// '|' (or); '[' and ']' group. Flag names are case-insensitive and may
// contain anything but operators, brackets and spaces, so "control.hasfocus(3)"
// is one flag. true, false, yes and no are constants.
func Parse(s string) (Expr, error) {
	p := &parser{src: s}
	p.skip()
	if p.pos >= len(p.src) {
		return nil, &Error{Column: 1, Message: "empty expression"}
	}
	e, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return e, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{Column: p.pos + 1, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) skip() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) accept(c byte) bool {
	p.skip()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		p.skip()
		return true
	}
	return false
}

func (p *parser) or() (Expr, error) {
	l, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept('|') {
		r, err := p.and()
		if err != nil {
			return nil, err
		}
		l = binExpr{op: '|', l: l, r: r}
	}
	return l, nil
}

func (p *parser) and() (Expr, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept('+') {
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = binExpr{op: '+', l: l, r: r}
	}
	return l, nil
}

func (p *parser) unary() (Expr, error) {
	if p.accept('!') {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notExpr{x}, nil
	}
	if p.accept('[') {
		x, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.accept(']') {
			return nil, p.errorf("missing ]")
		}
		return x, nil
	}
	return p.flag()
}

func (p *parser) flag() (Expr, error) {
	p.skip()
	start := p.pos
	depth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '(' {
			depth++
		} else if c == ')' && depth > 0 {
			depth--
		} else if depth == 0 && strings.IndexByte("!+|[] \t", c) >= 0 {
			break
		}
		p.pos++
	}
	name := strings.ToLower(p.src[start:p.pos])
	if name == "" {
		if p.pos >= len(p.src) {
			return nil, p.errorf("unexpected end of expression")
		}
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	if depth != 0 {
		return nil, p.errorf("unbalanced ( in %q", name)
	}
	switch name {
	case "true", "yes":
		return constExpr(true), nil
	case "false", "no":
		return constExpr(false), nil
	}
	p.skip()
	return flagExpr(name), nil
}
