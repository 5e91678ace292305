// Copyright 2024 Quarry Data, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package term

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// PrintOptions configures Print.
type PrintOptions struct {
	// Compact forces single-line rendering from the
	// root, overriding the per-node layout decision.
	Compact bool

	// Redact replaces string and numeric leaves with
	// deterministic stand-ins (see redact.go).
	Redact bool

	// Map, if non-nil, is applied to the rendering of
	// every child value before it is appended to its
	// parent's output. path holds the keys and indices
	// from the root down to the value and must not be
	// retained past the call. Map never changes
	// recursion order, depth, or layout decisions.
	Map func(text string, path []string) string
}

// printer is the render context threaded through a
// single Print call. Concurrent Print calls never
// share a printer, so independent renders are safe.
type printer struct {
	opts    PrintOptions
	depth   int
	compact bool
	path    []string
}

// ToString renders n with the default layout.
func ToString(n Node) string {
	return Print(n, PrintOptions{})
}

// ToCompact renders n on a single line.
func ToCompact(n Node) string {
	return Print(n, PrintOptions{Compact: true})
}

// ToRedacted renders n with constant leaves replaced
// by deterministic stand-in values.
func ToRedacted(n Node) string {
	return Print(n, PrintOptions{Redact: true})
}

// Print renders n to human-readable call syntax.
//
// Every input produces some string: nil nodes render
// as null, unknown operations resolve through the
// generic name rule, and malformed shapes render on a
// best-effort basis. The output is for humans (logs,
// REPL display, error messages); no parser for it
// exists. Print never mutates n.
func Print(n Node, opts PrintOptions) string {
	p := &printer{opts: opts, compact: opts.Compact}
	var dst strings.Builder
	p.node(&dst, n)
	return dst.String()
}

func (p *printer) node(dst *strings.Builder, n Node) {
	if n == nil {
		dst.WriteString("null")
		return
	}
	n.text(dst, p)
}

// child renders one child value with key appended to
// the path, applies the map hook, and restores the
// path before returning.
func (p *printer) child(key string, n Node) string {
	p.path = append(p.path, key)
	var sub strings.Builder
	p.node(&sub, n)
	out := sub.String()
	if p.opts.Map != nil {
		out = p.opts.Map(out, slices.Clone(p.path))
	}
	p.path = p.path[:len(p.path)-1]
	return out
}

func (s Seq) text(dst *strings.Builder, p *printer) {
	if len(s) == 0 {
		dst.WriteString("[]")
		return
	}
	prior := p.begin(s...)
	dst.WriteByte('[')
	p.eol(dst)
	p.enter()
	for i := range s {
		p.indent(dst)
		dst.WriteString(p.child(strconv.Itoa(i), s[i]))
		if i != len(s)-1 {
			dst.WriteByte(',')
		}
		p.eol(dst)
	}
	p.leave()
	p.indent(dst)
	dst.WriteByte(']')
	p.end(prior)
}

func (o *Object) text(dst *strings.Builder, p *printer) {
	if len(o.Fields) == 0 {
		dst.WriteString("{}")
		return
	}
	values := make([]Node, len(o.Fields))
	for i := range o.Fields {
		values[i] = o.Fields[i].Value
	}
	prior := p.begin(values...)
	dst.WriteByte('{')
	p.eol(dst)
	p.enter()
	for i := range o.Fields {
		p.indent(dst)
		dst.WriteString(o.Fields[i].Label)
		dst.WriteString(": ")
		dst.WriteString(p.child(o.Fields[i].Label, o.Fields[i].Value))
		if i != len(o.Fields)-1 {
			dst.WriteByte(',')
		}
		p.eol(dst)
	}
	p.leave()
	p.indent(dst)
	dst.WriteByte('}')
	p.end(prior)
}

// callArgs splices a call payload into its argument
// list: sequences contribute positional arguments,
// objects contribute named arguments in field order,
// and anything else is a single argument.
func callArgs(payload Node) []Field {
	switch pl := payload.(type) {
	case nil:
		return nil
	case Seq:
		args := make([]Field, len(pl))
		for i := range pl {
			args[i] = Field{Label: strconv.Itoa(i), Value: pl[i]}
		}
		return args
	case *Object:
		return pl.Fields
	default:
		return []Field{{Label: "0", Value: payload}}
	}
}

func (c *Call) text(dst *strings.Builder, p *printer) {
	name := DisplayName(c.Op)
	args := callArgs(c.Payload)
	if len(args) == 0 {
		dst.WriteString(name)
		dst.WriteString("()")
		return
	}
	// the layout decision looks at the payload itself,
	// not the spliced arguments: a composite payload
	// expands the call even when its elements are all
	// scalar
	prior := p.begin(c.Payload)
	p.path = append(p.path, c.Op)
	p.enter()
	rendered := make([]string, len(args))
	for i := range args {
		rendered[i] = p.child(args[i].Label, args[i].Value)
	}
	p.path = p.path[:len(p.path)-1]
	if reversedArgs[name] {
		slices.Reverse(rendered)
	}
	p.emitCall(dst, name, rendered)
	p.end(prior)
}

func (b *Binding) text(dst *strings.Builder, p *printer) {
	children := make([]Node, 0, 1+len(b.Rest))
	children = append(children, b.Bindings)
	for i := range b.Rest {
		children = append(children, b.Rest[i].Value)
	}
	prior := p.begin(children...)
	p.enter()
	rendered := make([]string, 0, len(children))
	// the binding payload is already an object (or
	// sequence-of-objects) literal, so ordinary
	// recursion lays it out as one; siblings are
	// ordinary arguments
	rendered = append(rendered, p.child(BindKeyword, b.Bindings))
	for i := range b.Rest {
		rendered = append(rendered, p.child(b.Rest[i].Label, b.Rest[i].Value))
	}
	p.emitCall(dst, DisplayName(BindKeyword), rendered)
	p.end(prior)
}

// emitCall writes name(...) around pre-rendered
// arguments. The caller has entered the argument
// depth; emitCall leaves it.
func (p *printer) emitCall(dst *strings.Builder, name string, args []string) {
	dst.WriteString(name)
	dst.WriteByte('(')
	p.eol(dst)
	for i := range args {
		p.indent(dst)
		dst.WriteString(args[i])
		if i != len(args)-1 {
			dst.WriteByte(',')
		}
		p.eol(dst)
	}
	p.leave()
	p.indent(dst)
	dst.WriteByte(')')
}
