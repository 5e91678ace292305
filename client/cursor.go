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
	"encoding/json"
	"io"
	"net/http"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// Cursor streams the documents of one query response.
//
// The response body is NDJSON: one JSON document per
// line, decoded lazily. A Cursor is not safe for
// concurrent use; Close may be called at any time and
// is idempotent.
type Cursor struct {
	body io.ReadCloser
	gz   *gzip.Reader
	dec  *json.Decoder
	log  *zap.Logger

	err  error
	done bool
}

func newCursor(resp *http.Response, log *zap.Logger) *Cursor {
	c := &Cursor{body: resp.Body, log: log}
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.err = newParseError(err)
			c.done = true
			return c
		}
		c.gz = gz
		r = gz
	}
	c.dec = json.NewDecoder(r)
	return c
}

// Next decodes the next document into v and reports
// whether one was available. After Next returns false,
// Err distinguishes end-of-stream from failure.
func (c *Cursor) Next(v any) bool {
	if c.done {
		return false
	}
	if err := c.dec.Decode(v); err != nil {
		c.done = true
		if err != io.EOF {
			c.err = newParseError(err)
			c.log.Debug("cursor terminated", zap.Error(err))
		}
		_ = c.close()
		return false
	}
	return true
}

// All decodes every remaining document into fresh
// maps and returns them.
func (c *Cursor) All() ([]map[string]any, error) {
	var out []map[string]any
	for {
		var doc map[string]any
		if !c.Next(&doc) {
			break
		}
		out = append(out, doc)
	}
	return out, c.Err()
}

// Err returns the first error the cursor hit, if any.
// io.EOF is not an error.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the underlying response body. Pending
// documents are discarded.
func (c *Cursor) Close() error {
	c.done = true
	return c.close()
}

func (c *Cursor) close() error {
	if c.body == nil {
		return nil
	}
	if c.gz != nil {
		_ = c.gz.Close()
		c.gz = nil
	}
	err := c.body.Close()
	c.body = nil
	return err
}
