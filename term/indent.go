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

import "strings"

// Indentation and compactness state. Depth and the
// compact flag live on the printer so that each render
// threads exactly one context through the whole tree.
// Every composite pairs begin/end around itself and
// enter/leave around its children, on every path out.

// indent writes the prefix for the current depth: an
// alternating marker-and-blank prefix of width 2*depth.
// Compact mode has no indentation at all.
func (p *printer) indent(dst *strings.Builder) {
	if p.compact {
		return
	}
	for i := 0; i < p.depth; i++ {
		dst.WriteString("| ")
	}
}

// eol terminates a line unless compact mode is active.
func (p *printer) eol(dst *strings.Builder) {
	if !p.compact {
		dst.WriteByte('\n')
	}
}

// enter and leave bracket the rendering of a
// composite's children.
func (p *printer) enter() { p.depth++ }
func (p *printer) leave() { p.depth-- }

// begin makes the compactness decision for a composite
// node from its immediate child values and returns the
// prior flag for end to restore. A compact ancestor
// forces compact; otherwise the node is compact exactly
// when every immediate child is a scalar leaf.
func (p *printer) begin(children ...Node) (prior bool) {
	prior = p.compact
	if !p.compact {
		compact := true
		for _, c := range children {
			if !simple(c) {
				compact = false
				break
			}
		}
		p.compact = compact
	}
	return prior
}

// end restores the flag saved by begin.
func (p *printer) end(prior bool) {
	p.compact = prior
}
