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

package wire

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry-go/term"
)

func TestMarshal(t *testing.T) {
	ts := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   term.Node
		want string
	}{
		{"null", term.Null{}, `null`},
		{"undefined", term.Undefined{}, `null`},
		{"bool", term.Bool(true), `true`},
		{"int", term.Int(-7), `-7`},
		{"float", term.Float(1.5), `1.5`},
		{"string", term.String("a\"b"), `"a\"b"`},
		{"ident", term.Ident("row"), `{"ident":"row"}`},
		{"opaque", term.Timestamp(ts), `"2024-05-17T10:30:00Z"`},
		{"seq", term.Arr(term.Int(1), term.Int(2)), `[1,2]`},
		{"empty-seq", term.Arr(), `[]`},
		{
			"object",
			term.Obj(term.F("x", term.Int(1)), term.F("y", term.String("z"))),
			`{"object":{"x":1,"y":"z"}}`,
		},
		{"empty-object", term.Obj(), `{"object":{}}`},
		{
			"positional-call",
			term.Add(term.Int(1), term.Int(2)),
			`{"add":[1,2]}`,
		},
		{
			"named-call",
			term.Filter(term.Ident("users"), term.Lt(term.Ident("row"), term.Int(5))),
			`{"filter":{"collection":{"ident":"users"},"lambda":{"lt":[{"ident":"row"},5]}}}`,
		},
		{
			"binding",
			term.Let(term.Arr(term.Bind("x", term.Int(1))), term.F("in", term.Ident("x"))),
			`{"let":[{"x":1}],"in":{"ident":"x"}}`,
		},
		{
			"binding-single-record",
			term.Let(term.Bind("x", term.Int(1))),
			`{"let":{"x":1}}`,
		},
		{
			"nested-object-data",
			term.Operation("insert", term.Obj(term.F("doc", term.Obj(term.F("n", term.Int(1)))))),
			`{"insert":[{"object":{"doc":{"object":{"n":1}}}}]}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
			assert.True(t, json.Valid(got), "output must be valid JSON")
		})
	}
}

func TestMarshalPreservesFieldOrder(t *testing.T) {
	obj := term.Obj(
		term.F("z", term.Int(1)),
		term.F("a", term.Int(2)),
		term.F("m", term.Int(3)),
	)
	got, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"object":{"z":1,"a":2,"m":3}}`, string(got))
}

func TestMarshalErrors(t *testing.T) {
	_, err := Marshal(term.Float(math.NaN()))
	require.Error(t, err)
	_, err = Marshal(term.Float(math.Inf(1)))
	require.Error(t, err)
	_, err = Marshal(term.Arr(term.Float(math.NaN())))
	require.Error(t, err, "errors must propagate out of composites")
}

func TestMarshalNilNode(t *testing.T) {
	got, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(got))
}
