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
	"encoding/json"
	"testing"
)

func TestQuote(t *testing.T) {
	testcases := []struct {
		in, want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{"ret\rhere", `"ret\rhere"`},
		{"bell\x07", `"bell\u0007"`},
		{"héllo wörld", `"héllo wörld"`},
		{"日本語", `"日本語"`},
	}
	for i := range testcases {
		got := Quote(testcases[i].in)
		if got != testcases[i].want {
			t.Errorf("Quote(%q) = %s, want %s", testcases[i].in, got, testcases[i].want)
		}
	}
}

// every quoted literal must decode back to the
// original string
func TestQuoteRoundTrip(t *testing.T) {
	inputs := []string{
		"", "simple", "with \"quotes\" and \\slashes\\",
		"control\x00\x1fchars", "mixed\ttabs\nand\runicode é 語 🙂",
	}
	for _, in := range inputs {
		quoted := Quote(in)
		var out string
		if err := json.Unmarshal([]byte(quoted), &out); err != nil {
			t.Errorf("Quote(%q) is not a valid literal: %v", in, err)
			continue
		}
		if out != in {
			t.Errorf("round trip of %q gave %q", in, out)
		}
	}
}
