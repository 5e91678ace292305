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
)

// Visitor is the interface passed to Walk.
//
// A Visitor's Visit method is invoked for each node
// encountered by Walk. If the result visitor w is not
// nil, Walk visits each of the children of the node
// with w, followed by a call of w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(Node) Visitor
}

// Walk traverses a tree in depth-first order: it starts
// by calling v.Visit(n); n must not be nil. If the visitor
// w returned by v.Visit(n) is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil
// children of n, followed by a call of w.Visit(nil).
func Walk(v Visitor, n Node) {
	w := v.Visit(n)
	if w != nil {
		n.walk(w)
		w.Visit(nil)
	}
}

// Node is a query expression tree node.
//
// The concrete node types are the scalar leaves
// (Null, Undefined, Bool, Int, Float, String, Ident,
// Opaque), the composites (Seq, *Object), and the
// operation forms (*Call, *Binding). Classification
// happens once, at construction; rendering and wire
// encoding dispatch on the concrete type.
type Node interface {
	// text writes the rendering of this node to dst
	// using the state carried by p.
	text(dst *strings.Builder, p *printer)

	// Equals reports whether this node is
	// syntactically equivalent to another node.
	Equals(Node) bool

	walk(Visitor)
}

// Equal reports whether a and b are equivalent.
// a or b may be nil.
func Equal(a, b Node) bool {
	if a == nil {
		return b == nil
	}
	return b != nil && a.Equals(b)
}

// Null is the literal null leaf.
type Null struct{}

func (Null) text(dst *strings.Builder, _ *printer) { dst.WriteString("null") }

func (Null) Equals(e Node) bool {
	_, ok := e.(Null)
	return ok
}

func (Null) walk(Visitor) {}

// Undefined is the literal undefined leaf.
// It is distinct from Null: both render, neither
// is ever omitted.
type Undefined struct{}

func (Undefined) text(dst *strings.Builder, _ *printer) { dst.WriteString("undefined") }

func (Undefined) Equals(e Node) bool {
	_, ok := e.(Undefined)
	return ok
}

func (Undefined) walk(Visitor) {}

// Bool is a literal boolean leaf.
type Bool bool

func (b Bool) text(dst *strings.Builder, _ *printer) {
	if b {
		dst.WriteString("true")
	} else {
		dst.WriteString("false")
	}
}

func (b Bool) Equals(e Node) bool {
	eb, ok := e.(Bool)
	return ok && b == eb
}

func (Bool) walk(Visitor) {}

// Int is a literal integer leaf.
type Int int64

func (i Int) text(dst *strings.Builder, p *printer) {
	var buf [32]byte
	v := int64(i)
	if p.opts.Redact {
		v = redactInt(v)
	}
	dst.Write(strconv.AppendInt(buf[:0], v, 10))
}

func (i Int) Equals(e Node) bool {
	switch e := e.(type) {
	case Int:
		return i == e
	case Float:
		trunc := int64(e)
		return float64(trunc) == float64(e) && trunc == int64(i)
	}
	return false
}

func (Int) walk(Visitor) {}

// Float is a literal floating-point leaf.
type Float float64

func (f Float) text(dst *strings.Builder, p *printer) {
	var buf [32]byte
	v := float64(f)
	if p.opts.Redact {
		v = redactFloat(v)
	}
	dst.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, 64))
}

func (f Float) Equals(e Node) bool {
	switch e := e.(type) {
	case Float:
		return f == e
	case Int:
		trunc := int64(f)
		return float64(trunc) == float64(f) && trunc == int64(e)
	}
	return false
}

func (Float) walk(Visitor) {}

// String is a literal string leaf. It renders as a
// quoted, escaped literal (see Quote).
type String string

func (s String) text(dst *strings.Builder, p *printer) {
	v := string(s)
	if p.opts.Redact {
		v = redactString(v)
	}
	quote(dst, v)
}

func (s String) Equals(e Node) bool {
	es, ok := e.(String)
	return ok && s == es
}

func (String) walk(Visitor) {}

// Ident is a symbol-like leaf (a variable or row
// reference). It renders as its bare text, unquoted.
type Ident string

func (i Ident) text(dst *strings.Builder, _ *printer) { dst.WriteString(string(i)) }

func (i Ident) Equals(e Node) bool {
	ei, ok := e.(Ident)
	return ok && i == ei
}

func (Ident) walk(Visitor) {}

// Opaque is a leaf that carries its own finished
// display text. The printer emits Text verbatim and
// performs no structural interpretation; use it for
// values (timestamps, binary handles) whose rendering
// is decided at construction time.
type Opaque struct {
	Text string
}

func (o Opaque) text(dst *strings.Builder, _ *printer) { dst.WriteString(o.Text) }

func (o Opaque) Equals(e Node) bool {
	eo, ok := e.(Opaque)
	return ok && o.Text == eo.Text
}

func (Opaque) walk(Visitor) {}

// Seq is an ordered sequence of nodes.
type Seq []Node

func (s Seq) Equals(e Node) bool {
	es, ok := e.(Seq)
	if !ok || len(s) != len(es) {
		return false
	}
	for i := range s {
		if !Equal(s[i], es[i]) {
			return false
		}
	}
	return true
}

func (s Seq) walk(v Visitor) {
	for i := range s {
		if s[i] != nil {
			Walk(v, s[i])
		}
	}
}

// Field is a labelled value in an Object or in a
// named argument record. Field order is significant
// everywhere fields appear.
type Field struct {
	Label string
	Value Node
}

// Object is a literal associative structure. It always
// renders as {label: value, ...}, never as a call, and
// its fields keep insertion order.
type Object struct {
	Fields []Field
}

func (o *Object) Equals(e Node) bool {
	eo, ok := e.(*Object)
	if !ok || len(o.Fields) != len(eo.Fields) {
		return false
	}
	for i := range o.Fields {
		if o.Fields[i].Label != eo.Fields[i].Label {
			return false
		}
		if !Equal(o.Fields[i].Value, eo.Fields[i].Value) {
			return false
		}
	}
	return true
}

func (o *Object) walk(v Visitor) {
	for i := range o.Fields {
		if o.Fields[i].Value != nil {
			Walk(v, o.Fields[i].Value)
		}
	}
}

// Call is an operation invocation. Op is the snake_case
// operation identifier; its display name comes from
// DisplayName. Payload carries the arguments:
//
//   - a Seq payload supplies positional arguments
//   - an *Object payload supplies named arguments,
//     in field order
//   - any other payload is a single argument
//
// A Call holds exactly one operation and one payload,
// so the single-significant-key shape of the wire form
// cannot be violated by construction.
type Call struct {
	Op      string
	Payload Node
}

func (c *Call) Equals(e Node) bool {
	ec, ok := e.(*Call)
	return ok && c.Op == ec.Op && Equal(c.Payload, ec.Payload)
}

func (c *Call) walk(v Visitor) {
	if c.Payload != nil {
		Walk(v, c.Payload)
	}
}

// BindKeyword is the binding-introduction keyword.
const BindKeyword = "let"

// Binding is the binding-introduction form. Bindings
// holds the introduced names: either a single *Object
// or a Seq of single-field *Object values. It is laid
// out as an object (or array-of-object) literal rather
// than as a nested call. Rest holds any sibling
// arguments, rendered as ordinary expressions after
// the bindings.
type Binding struct {
	Bindings Node
	Rest     []Field
}

func (b *Binding) Equals(e Node) bool {
	eb, ok := e.(*Binding)
	if !ok || len(b.Rest) != len(eb.Rest) {
		return false
	}
	if !Equal(b.Bindings, eb.Bindings) {
		return false
	}
	for i := range b.Rest {
		if b.Rest[i].Label != eb.Rest[i].Label {
			return false
		}
		if !Equal(b.Rest[i].Value, eb.Rest[i].Value) {
			return false
		}
	}
	return true
}

func (b *Binding) walk(v Visitor) {
	if b.Bindings != nil {
		Walk(v, b.Bindings)
	}
	for i := range b.Rest {
		if b.Rest[i].Value != nil {
			Walk(v, b.Rest[i].Value)
		}
	}
}

// simple reports whether n is a scalar leaf.
//
// Composites (Seq, *Object) and operation forms are
// never simple, and neither are nested plain objects:
// a record containing only scalars still forces its
// parent to expand. (Historical renderers disagreed on
// that case; this one is deliberately strict.)
func simple(n Node) bool {
	switch n.(type) {
	case nil, Null, Undefined, Bool, Int, Float, String, Ident, Opaque:
		return true
	}
	return false
}
