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

package client

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// ParseToken resolves a credential specification to a
// bearer token.
//
// It reads the named environment variable when an
// env:// prefix is detected, the first line of a file
// for file://, and otherwise the specification is the
// token itself. An empty specification yields an empty
// token (anonymous access, if the deployment allows it).
func ParseToken(spec string) (string, error) {
	switch {
	case spec == "":
		return "", nil
	case strings.HasPrefix(spec, "env://"):
		name := strings.TrimPrefix(spec, "env://")
		tok, ok := os.LookupEnv(name)
		if !ok {
			return "", errors.Errorf("token environment variable %q is not set", name)
		}
		return strings.TrimSpace(tok), nil
	case strings.HasPrefix(spec, "file://"):
		buf, err := os.ReadFile(strings.TrimPrefix(spec, "file://"))
		if err != nil {
			return "", errors.Wrap(err, "reading token file")
		}
		tok, _, _ := strings.Cut(string(buf), "\n")
		return strings.TrimSpace(tok), nil
	default:
		return spec, nil
	}
}

// fingerprint returns a short stable digest of a token
// for log correlation. The token itself never appears
// in logs.
func fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
