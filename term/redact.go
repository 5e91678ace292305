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
	"encoding/base32"
	"encoding/binary"
	"math"

	"github.com/dchest/siphash"
)

// Redacted rendering replaces string and numeric leaves
// with stand-ins derived from a keyed hash of the value,
// so equal inputs redact to equal outputs and rendered
// queries stay diffable without leaking constants.
// The keys are fixed: redaction hides values, it is not
// cryptographic protection.

const redactK0, redactK1 = 0x7175617272792121, 0x646f63732d676f21

var redactEnc = base32.StdEncoding.WithPadding(base32.NoPadding)

func redactHash(buf []byte) uint64 {
	return siphash.Hash(redactK0, redactK1, buf)
}

func redactInt(i int64) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	return int64(redactHash(buf[:]))
}

func redactFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		// nothing secret about these
		return f
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	// map the top 53 bits of the unsigned hash onto [0, 1);
	// 53 bits convert to float64 without rounding, so 1.0 is
	// never reached
	return float64(redactHash(buf[:])>>11) / float64(1<<53)
}

func redactString(s string) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], redactHash([]byte(s)))
	return redactEnc.EncodeToString(buf[:])
}
