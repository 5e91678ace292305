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
	"math"
	"time"
)

// Constructors for the expression tree. These are the
// only way call shapes are built, so the one-operation,
// one-payload invariant holds by construction; Check
// validates the residual shape rules (see check.go).

// Operation builds a generic call with positional
// arguments.
func Operation(op string, args ...Node) *Call {
	return &Call{Op: op, Payload: Seq(args)}
}

// OperationNamed builds a generic call with named
// arguments in the given field order.
func OperationNamed(op string, args ...Field) *Call {
	return &Call{Op: op, Payload: &Object{Fields: args}}
}

// F pairs a label with a value.
func F(label string, value Node) Field {
	return Field{Label: label, Value: value}
}

// Obj builds an object literal with the given fields,
// preserving their order.
func Obj(fields ...Field) *Object {
	return &Object{Fields: fields}
}

// Arr builds a sequence.
func Arr(items ...Node) Seq {
	return Seq(items)
}

// Timestamp wraps t as an opaque leaf carrying its
// RFC3339 rendering.
func Timestamp(t time.Time) Opaque {
	return Opaque{Text: t.UTC().Format(time.RFC3339Nano)}
}

func Add(args ...Node) *Call { return Operation("add", args...) }
func Sub(args ...Node) *Call { return Operation("sub", args...) }
func Mul(args ...Node) *Call { return Operation("mul", args...) }
func Div(args ...Node) *Call { return Operation("div", args...) }

func Eq(a, b Node) *Call  { return Operation("eq", a, b) }
func Ne(a, b Node) *Call  { return Operation("ne", a, b) }
func Lt(a, b Node) *Call  { return Operation("lt", a, b) }
func Lte(a, b Node) *Call { return Operation("lte", a, b) }
func Gt(a, b Node) *Call  { return Operation("gt", a, b) }
func Gte(a, b Node) *Call { return Operation("gte", a, b) }

// IsNonEmpty tests whether a sequence has elements.
func IsNonEmpty(seq Node) *Call { return Operation("is_nonempty", seq) }

// SelectAll selects every document of a collection.
func SelectAll(collection Node) *Call { return Operation("select_all", collection) }

// Between restricts collection to documents between
// lower and upper.
func Between(collection, lower, upper Node) *Call {
	return Operation("between", collection, lower, upper)
}

// The higher-order forms store the collection before
// the lambda; their display renders the lambda first
// (see reversedArgs in names.go).

func Filter(collection, lambda Node) *Call {
	return OperationNamed("filter", F("collection", collection), F("lambda", lambda))
}

func MapEach(collection, lambda Node) *Call {
	return OperationNamed("map", F("collection", collection), F("lambda", lambda))
}

func ConcatMap(collection, lambda Node) *Call {
	return OperationNamed("concat_map", F("collection", collection), F("lambda", lambda))
}

func ForEach(collection, lambda Node) *Call {
	return OperationNamed("for_each", F("collection", collection), F("lambda", lambda))
}

func Do(value, lambda Node) *Call {
	return OperationNamed("do", F("value", value), F("lambda", lambda))
}

// Let introduces bindings. bindings must be an object
// literal or a sequence of single-field object
// literals; rest carries the sibling arguments (for
// example the body the bindings scope over).
func Let(bindings Node, rest ...Field) *Binding {
	return &Binding{Bindings: bindings, Rest: rest}
}

// Bind is a convenience for a one-name binding entry.
func Bind(name string, value Node) *Object {
	return Obj(F(name, value))
}

// FromValue converts a Go value to a tree node.
// Supported inputs: nil, bool, string, all int and
// float types, time.Time, []byte (as a string),
// Node values (returned unchanged), []any, and
// map-free field lists ([]Field). Maps are rejected:
// their iteration order would make renders and wire
// encodings unstable; build ordered records with Obj.
func FromValue(v any) (Node, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case Node:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case []byte:
		return String(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return Int(v), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("term: %d overflows the integer range", v)
		}
		return Int(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	case time.Time:
		return Timestamp(v), nil
	case []Field:
		return Obj(v...), nil
	case []any:
		out := make(Seq, len(v))
		for i := range v {
			n, err := FromValue(v[i])
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("term: cannot convert %T to a tree node", v)
	}
}
