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
	"strings"
	"unicode"
	"unicode/utf8"
)

// name2Display holds the operations whose display name
// is not derivable from the generic PascalCase rule.
var name2Display = map[string]string{
	"eq":          "EQ",
	"ne":          "NE",
	"lt":          "LT",
	"lte":         "LTE",
	"gt":          "GT",
	"gte":         "GTE",
	"is_nonempty": "IsNonEmpty",
}

// reversedArgs holds the display names of operations
// whose human call order differs from the stored
// payload order (predicate-then-collection forms).
// Keyed by display name, matching the dispatch in
// (*Call).text.
var reversedArgs = map[string]bool{
	"Filter":    true,
	"Map":       true,
	"ConcatMap": true,
	"ForEach":   true,
	"Do":        true,
}

// DisplayName maps an operation identifier to its
// human display name. Identifiers in the override
// table resolve to their fixed names; anything else
// is converted from snake_case to PascalCase, with
// the characters inside each segment preserved
// verbatim. Every string resolves to some name.
func DisplayName(op string) string {
	if d, ok := name2Display[op]; ok {
		return d
	}
	var out strings.Builder
	out.Grow(len(op))
	rest := op
	for len(rest) > 0 {
		var seg string
		seg, rest, _ = strings.Cut(rest, "_")
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		out.WriteRune(unicode.ToUpper(r))
		out.WriteString(seg[size:])
	}
	return out.String()
}
