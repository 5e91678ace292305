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
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry-go/term"
)

func queryServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{
		Endpoint:   srv.URL,
		Token:      "tok",
		Database:   "app",
		MaxRetries: 2,
	})
	require.NoError(t, err)
	return c
}

func TestRun(t *testing.T) {
	var body []byte
	var header http.Header
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		header = r.Header.Clone()
		var err error
		body, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, "{\"id\":1,\"name\":\"a\"}\n{\"id\":2,\"name\":\"b\"}\n")
	})

	cur, err := c.Run(context.Background(), term.Filter(
		term.SelectAll(term.String("users")),
		term.Gt(term.Ident("row"), term.Int(5)),
	))
	require.NoError(t, err)
	defer cur.Close()

	assert.Equal(t, "Bearer tok", header.Get("Authorization"))
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "app", header.Get(databaseHeader))
	assert.NotEmpty(t, header.Get(queryIDHeader))
	assert.Equal(t,
		`{"filter":{"collection":{"select_all":["users"]},"lambda":{"gt":[{"ident":"row"},5]}}}`,
		string(body))

	docs, err := cur.All()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.EqualValues(t, 1, docs[0]["id"])
	assert.Equal(t, "b", docs[1]["name"])
}

func TestRunRejectsIllShapedTrees(t *testing.T) {
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("an ill-shaped tree must not reach the server")
	})
	_, err := c.Run(context.Background(), &term.Call{Op: "", Payload: term.Seq{}})
	require.Error(t, err)
}

func TestRunRetriesTemporaryFailures(t *testing.T) {
	var calls atomic.Int64
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "{\"ok\":true}\n")
	})

	cur, err := c.Run(context.Background(), term.Add(term.Int(1), term.Int(2)))
	require.NoError(t, err)
	defer cur.Close()
	assert.EqualValues(t, 2, calls.Load())
}

func TestRunDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad query", http.StatusBadRequest)
	})

	_, err := c.Run(context.Background(), term.Add(term.Int(1), term.Int(2)))
	require.Error(t, err)
	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadRequest, rerr.StatusCode)
	assert.False(t, rerr.Temporary())
	assert.EqualValues(t, 1, calls.Load(), "4xx responses are final")
}

func TestRunCompressesLargeQueries(t *testing.T) {
	var encoding string
	var decoded []byte
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		encoding = r.Header.Get("Content-Encoding")
		body := r.Body
		if encoding == "gzip" {
			zr, err := gzip.NewReader(r.Body)
			require.NoError(t, err)
			defer zr.Close()
			body = zr
		}
		var err error
		decoded, err = io.ReadAll(body)
		require.NoError(t, err)
		_, _ = io.WriteString(w, "{\"ok\":true}\n")
	})

	big := strings.Repeat("x", 4096)
	cur, err := c.Run(context.Background(), term.Operation("get", term.String(big)))
	require.NoError(t, err)
	defer cur.Close()

	assert.Equal(t, "gzip", encoding)
	assert.Contains(t, string(decoded), big)
}

func TestRunGzipResponse(t *testing.T) {
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_, _ = io.WriteString(zw, "{\"id\":7}\n")
		require.NoError(t, zw.Close())
	})

	cur, err := c.Run(context.Background(), term.Add(term.Int(1), term.Int(2)))
	require.NoError(t, err)
	defer cur.Close()

	var doc map[string]any
	require.True(t, cur.Next(&doc))
	assert.EqualValues(t, 7, doc["id"])
	assert.False(t, cur.Next(&doc))
	assert.NoError(t, cur.Err())
}

func TestRunContextCancel(t *testing.T) {
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		// the server only notices the disconnect once the
		// body has been consumed, so drain it before waiting
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Run(ctx, term.Add(term.Int(1), term.Int(2)))
	require.Error(t, err)
}

func TestRunValue(t *testing.T) {
	var body []byte
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		var err error
		body, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		_, _ = io.WriteString(w, "{}\n")
	})

	cur, err := c.RunValue(context.Background(), []any{1, "two"})
	require.NoError(t, err)
	defer cur.Close()
	assert.Equal(t, `[1,"two"]`, string(body))

	_, err = c.RunValue(context.Background(), struct{}{})
	require.Error(t, err)
}

func TestCursorParseError(t *testing.T) {
	c := queryServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "{\"ok\":true}\nnot-json\n")
	})
	cur, err := c.Run(context.Background(), term.Add(term.Int(1), term.Int(2)))
	require.NoError(t, err)
	defer cur.Close()

	var doc map[string]any
	require.True(t, cur.Next(&doc))
	require.False(t, cur.Next(&doc))
	var perr *ParseError
	assert.ErrorAs(t, cur.Err(), &perr)
}
