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
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/quarrydb/quarry-go/term"
	"github.com/quarrydb/quarry-go/wire"
)

const (
	queryIDHeader  = "X-Quarry-Query-ID"
	databaseHeader = "X-Quarry-Database"
)

// Run executes a query tree and returns a cursor over
// the resulting documents.
//
// The tree is shape-checked, wire-encoded, and posted
// to the /query endpoint. Temporary failures are
// retried with exponential backoff up to MaxRetries;
// the request body is rebuilt for every attempt.
// Failed queries are logged with their redacted
// rendering, never with their constants.
func (c *Client) Run(ctx context.Context, n term.Node) (*Cursor, error) {
	if err := term.Check(n); err != nil {
		return nil, errors.Wrap(err, "query shape")
	}
	body, err := wire.Marshal(n)
	if err != nil {
		return nil, errors.Wrap(err, "encoding query")
	}

	qid := uuid.New().String()
	log := c.log.With(
		zap.String("queryId", qid),
		zap.String("tokenFingerprint", c.tokenFP),
	)

	start := time.Now()
	attempts := 0
	resp, err := backoff.RetryWithData(
		func() (*http.Response, error) {
			attempts++
			return c.postQuery(ctx, qid, body)
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.opts.MaxRetries),
			ctx,
		),
	)
	if err != nil {
		log.Warn("query failed",
			zap.String("query", term.ToRedacted(n)),
			zap.Int("attempts", attempts),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	log.Debug("query accepted",
		zap.Int("attempts", attempts),
		zap.Duration("duration", time.Since(start)),
	)
	return newCursor(resp, log), nil
}

// RunValue is a convenience for FromValue+Run.
func (c *Client) RunValue(ctx context.Context, v any) (*Cursor, error) {
	n, err := term.FromValue(v)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, n)
}

// postQuery performs one attempt. Retryable outcomes
// come back as plain errors; anything final is wrapped
// in backoff.Permanent so the caller stops.
func (c *Client) postQuery(ctx context.Context, qid string, body []byte) (*http.Response, error) {
	u := c.base.JoinPath("query")
	payload, encoding, err := c.requestBody(body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), payload)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "building query request"))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")
	req.Header.Set(queryIDHeader, qid)
	if encoding != "" {
		req.Header.Set("Content-Encoding", encoding)
	}
	if !c.opts.DisableGzip {
		req.Header.Set("Accept-Encoding", "gzip")
	}
	if c.opts.Database != "" {
		req.Header.Set(databaseHeader, c.opts.Database)
	}
	c.authorize(req)

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, newRequestError(err, nil, "")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		rerr := newRequestError(
			errors.Errorf("query: unexpected status %d", resp.StatusCode),
			resp, string(msg),
		)
		if !rerr.Temporary() {
			return nil, backoff.Permanent(error(rerr))
		}
		return nil, rerr
	}
	return resp, nil
}

// requestBody compresses the wire bytes unless gzip is
// disabled or compression would not pay for itself.
func (c *Client) requestBody(body []byte) (io.Reader, string, error) {
	if c.opts.DisableGzip || len(body) < 1024 {
		return bytes.NewReader(body), "", nil
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return nil, "", errors.Wrap(err, "compressing query")
	}
	if err := zw.Close(); err != nil {
		return nil, "", errors.Wrap(err, "compressing query")
	}
	return &buf, "gzip", nil
}
