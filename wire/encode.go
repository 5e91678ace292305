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

// Package wire serializes term trees to the JSON form
// the Quarry service consumes.
//
// The wire shape is the dynamic single-key-record
// encoding: a call is {"op": payload}, an object
// literal is {"object": {...}}, a binding form is
// {"let": bindings, "label": sibling, ...}, an ident
// is {"ident": "name"}, and scalars are plain JSON
// values. Field order is preserved exactly as built.
// This encoding is a transport concern and is entirely
// independent of the human-readable rendering in the
// term package.
package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/quarrydb/quarry-go/term"
)

// ObjectKey is the marker key for object literals.
const ObjectKey = "object"

// IdentKey is the marker key for symbol references.
const IdentKey = "ident"

// Marshal encodes n to wire JSON. It fails only on
// nodes no wire form exists for: non-finite floats
// and trees that are not representable (which Check
// in the term package already rejects).
func Marshal(n term.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(dst *bytes.Buffer, n term.Node) error {
	switch n := n.(type) {
	case nil, term.Null:
		dst.WriteString("null")
	case term.Undefined:
		// JSON has no undefined; the service treats
		// null and undefined alike on the wire
		dst.WriteString("null")
	case term.Bool:
		dst.WriteString(strconv.FormatBool(bool(n)))
	case term.Int:
		dst.WriteString(strconv.FormatInt(int64(n), 10))
	case term.Float:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.Errorf("wire: cannot encode %v", f)
		}
		dst.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case term.String:
		return encodeString(dst, string(n))
	case term.Opaque:
		return encodeString(dst, n.Text)
	case term.Ident:
		dst.WriteByte('{')
		if err := encodeString(dst, IdentKey); err != nil {
			return err
		}
		dst.WriteByte(':')
		if err := encodeString(dst, string(n)); err != nil {
			return err
		}
		dst.WriteByte('}')
	case term.Seq:
		dst.WriteByte('[')
		for i := range n {
			if i != 0 {
				dst.WriteByte(',')
			}
			if err := encode(dst, n[i]); err != nil {
				return err
			}
		}
		dst.WriteByte(']')
	case *term.Object:
		dst.WriteByte('{')
		if err := encodeString(dst, ObjectKey); err != nil {
			return err
		}
		dst.WriteByte(':')
		if err := encodeFields(dst, n.Fields); err != nil {
			return err
		}
		dst.WriteByte('}')
	case *term.Call:
		dst.WriteByte('{')
		if err := encodeString(dst, n.Op); err != nil {
			return err
		}
		dst.WriteByte(':')
		if err := encodeCallPayload(dst, n.Payload); err != nil {
			return err
		}
		dst.WriteByte('}')
	case *term.Binding:
		dst.WriteByte('{')
		if err := encodeString(dst, term.BindKeyword); err != nil {
			return err
		}
		dst.WriteByte(':')
		if err := encodeBindings(dst, n.Bindings); err != nil {
			return err
		}
		for i := range n.Rest {
			dst.WriteByte(',')
			if err := encodeString(dst, n.Rest[i].Label); err != nil {
				return err
			}
			dst.WriteByte(':')
			if err := encode(dst, n.Rest[i].Value); err != nil {
				return err
			}
		}
		dst.WriteByte('}')
	default:
		return errors.Errorf("wire: no encoding for %T", n)
	}
	return nil
}

// encodeCallPayload writes a call payload. A named
// payload is written as a bare record (no object
// marker: the position under an operation key already
// identifies it as arguments, not data).
func encodeCallPayload(dst *bytes.Buffer, payload term.Node) error {
	if o, ok := payload.(*term.Object); ok {
		return encodeFields(dst, o.Fields)
	}
	return encode(dst, payload)
}

// encodeBindings writes a binding payload: records stay
// bare (they are name introductions, not data objects).
func encodeBindings(dst *bytes.Buffer, bindings term.Node) error {
	switch b := bindings.(type) {
	case *term.Object:
		return encodeFields(dst, b.Fields)
	case term.Seq:
		dst.WriteByte('[')
		for i := range b {
			if i != 0 {
				dst.WriteByte(',')
			}
			if entry, ok := b[i].(*term.Object); ok {
				if err := encodeFields(dst, entry.Fields); err != nil {
					return err
				}
				continue
			}
			if err := encode(dst, b[i]); err != nil {
				return err
			}
		}
		dst.WriteByte(']')
		return nil
	default:
		return encode(dst, bindings)
	}
}

func encodeFields(dst *bytes.Buffer, fields []term.Field) error {
	dst.WriteByte('{')
	for i := range fields {
		if i != 0 {
			dst.WriteByte(',')
		}
		if err := encodeString(dst, fields[i].Label); err != nil {
			return err
		}
		dst.WriteByte(':')
		if err := encode(dst, fields[i].Value); err != nil {
			return err
		}
	}
	dst.WriteByte('}')
	return nil
}

func encodeString(dst *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "wire: string encoding")
	}
	dst.Write(b)
	return nil
}
