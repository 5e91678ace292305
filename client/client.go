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

// Package client is the HTTP transport for the Quarry
// document-query service.
//
// A Client serializes term trees with the wire package,
// posts them to the /query endpoint, and streams the
// resulting documents back through a Cursor. Rendering
// of the same trees for humans lives in the term
// package; the two paths never meet.
package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Doer is the part of http.Client the transport needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. The zero value of any
// field falls back to the default below.
type Options struct {
	// Endpoint is the base URL of the service.
	Endpoint string
	// Token is a credential specification understood
	// by ParseToken.
	Token string
	// Database is the default database queries run
	// against.
	Database string
	// Timeout bounds a single HTTP exchange. It is
	// only applied to the default HTTP client; a
	// caller-supplied HTTPClient keeps its own.
	Timeout time.Duration
	// HTTPClient overrides the underlying transport.
	HTTPClient Doer
	// Logger receives one entry per query. Defaults
	// to a no-op logger.
	Logger *zap.Logger
	// DisableGzip turns off request-body compression
	// and gzip response negotiation.
	DisableGzip bool
	// MaxRetries bounds retries of temporary failures
	// (network errors, 429, 5xx) per Run call.
	MaxRetries uint64
}

var defaultOptions = Options{
	Endpoint:   "https://api.quarrydb.io",
	Timeout:    30 * time.Second,
	MaxRetries: 3,
}

// Client talks to one Quarry deployment. It is safe
// for concurrent use.
type Client struct {
	opts    Options
	base    *url.URL
	token   string
	tokenFP string
	log     *zap.Logger
}

// NewClient creates a client. With no arguments the
// defaults are used; with one Options value, its
// non-zero fields override the defaults.
func NewClient(options ...Options) (*Client, error) {
	if len(options) > 1 {
		return nil, errors.New("too many options provided, expected none or one")
	}
	opts := defaultOptions
	if len(options) == 1 {
		o := options[0]
		if o.Endpoint != "" {
			opts.Endpoint = o.Endpoint
		}
		if o.Token != "" {
			opts.Token = o.Token
		}
		if o.Database != "" {
			opts.Database = o.Database
		}
		if o.Timeout != 0 {
			opts.Timeout = o.Timeout
		}
		if o.HTTPClient != nil {
			opts.HTTPClient = o.HTTPClient
		}
		if o.Logger != nil {
			opts.Logger = o.Logger
		}
		if o.MaxRetries != 0 {
			opts.MaxRetries = o.MaxRetries
		}
		opts.DisableGzip = o.DisableGzip
	}
	base, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "parsing endpoint")
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Errorf("endpoint %q: unsupported scheme %q", opts.Endpoint, base.Scheme)
	}
	token, err := ParseToken(opts.Token)
	if err != nil {
		return nil, err
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		opts:    opts,
		base:    base,
		token:   token,
		tokenFP: fingerprint(token),
		log:     opts.Logger,
	}, nil
}

// GetOptions returns the options the client resolved.
func (c *Client) GetOptions() Options {
	return c.opts
}

// Ping probes the service health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	u := c.base.JoinPath("ping")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "building ping request")
	}
	c.authorize(req)
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return newRequestError(err, nil, "")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return newRequestError(
			errors.Errorf("ping: unexpected status %d", resp.StatusCode),
			resp, string(body),
		)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
