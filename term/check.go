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
	"fmt"
	"strings"
)

// ShapeError is the error type returned from Check
// when a tree node is ill-shaped.
type ShapeError struct {
	At  Node
	Msg string
}

// Error implements error
func (s *ShapeError) Error() string {
	return fmt.Sprintf("%q is ill-shaped: %s", ToCompact(s.At), s.Msg)
}

func errshape(at Node, msg string) *ShapeError {
	return &ShapeError{At: at, Msg: msg}
}

type checkwalk struct {
	errors []error
}

func (c *checkwalk) Visit(n Node) Visitor {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case *Call:
		if err := n.check(); err != nil {
			c.errors = append(c.errors, err)
		}
	case *Binding:
		if err := n.check(); err != nil {
			c.errors = append(c.errors, err)
		}
	case Seq:
		for i := range n {
			if n[i] == nil {
				c.errors = append(c.errors, errshape(n, "nil element"))
				break
			}
		}
	case *Object:
		for i := range n.Fields {
			if n.Fields[i].Value == nil {
				c.errors = append(c.errors, errshape(n, "nil field value"))
				break
			}
		}
	}
	return c
}

// Check validates the shape of a tree before it is
// shipped or logged: operation identifiers must be
// non-empty and space-free, binding payloads must be
// an object or a sequence of single-field objects,
// and composites must not contain nil nodes. Check
// does not validate query semantics; the printer
// renders even trees that fail Check.
func Check(n Node) error {
	if n == nil {
		return nil
	}
	c := &checkwalk{}
	Walk(c, n)
	if len(c.errors) > 0 {
		return c.errors[0]
	}
	return nil
}

func (c *Call) check() error {
	if c.Op == "" {
		return errshape(c, "empty operation identifier")
	}
	if strings.ContainsAny(c.Op, " \t\n") {
		return errshape(c, "operation identifier contains whitespace")
	}
	if c.Payload == nil {
		return errshape(c, "nil payload")
	}
	return nil
}

func (b *Binding) check() error {
	switch bs := b.Bindings.(type) {
	case *Object:
		// a single record of bindings
	case Seq:
		for i := range bs {
			entry, ok := bs[i].(*Object)
			if !ok {
				return errshape(b, "binding sequence element is not an object")
			}
			if len(entry.Fields) != 1 {
				return errshape(b, "binding entry must introduce exactly one name")
			}
		}
	default:
		return errshape(b, "bindings must be an object or a sequence of objects")
	}
	for i := range b.Rest {
		if b.Rest[i].Label == "" {
			return errshape(b, "empty sibling label")
		}
		if b.Rest[i].Value == nil {
			return errshape(b, "nil sibling value")
		}
	}
	return nil
}
