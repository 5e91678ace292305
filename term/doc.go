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

// Package term implements the tree representation
// of Quarry query expressions.
//
// Each of the tree node types satisfies the Node
// interface. Trees are built with the constructor
// helpers (Add, Filter, Let, Obj, and so on) or
// with FromValue, and are rendered to human-readable
// call syntax with ToString, ToCompact, ToRedacted,
// or Print.
//
// The critical entry points for this package are
// Print, Walk, and Check. The wire encoding of the
// same trees lives in the wire package and is
// entirely independent of the text rendering here.
package term
