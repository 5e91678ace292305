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
	"math"
	"testing"
)

func TestRedactFloatRange(t *testing.T) {
	inputs := []float64{
		0, 1, -1, 0.5, -0.5, 3.14159, -273.15,
		math.MaxFloat64, -math.MaxFloat64,
		math.SmallestNonzeroFloat64,
	}
	for _, f := range inputs {
		got := redactFloat(f)
		if got < 0 || got >= 1 {
			t.Errorf("redactFloat(%g) = %g, outside [0, 1)", f, got)
		}
		if got != redactFloat(f) {
			t.Errorf("redactFloat(%g) not deterministic", f)
		}
	}
	// non-finite inputs pass through unchanged
	if !math.IsNaN(redactFloat(math.NaN())) {
		t.Error("redactFloat(NaN) should stay NaN")
	}
	if redactFloat(math.Inf(1)) != math.Inf(1) {
		t.Error("redactFloat(+Inf) should stay +Inf")
	}
}

func TestRedactDeterministic(t *testing.T) {
	if redactString("secret") != redactString("secret") {
		t.Error("equal strings must redact equally")
	}
	if redactString("secret") == redactString("other") {
		t.Error("distinct strings should redact differently")
	}
	if redactInt(42) != redactInt(42) {
		t.Error("equal ints must redact equally")
	}
}
