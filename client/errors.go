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
	"net/http"

	"github.com/pkg/errors"
)

// RequestError is returned when the service rejects a
// request or the transport fails. Body holds whatever
// the server sent with a non-2xx status, StatusCode is
// zero when the request never got a response.
type RequestError struct {
	Err        error
	Body       string
	StatusCode int
}

func newRequestError(err error, resp *http.Response, body string) *RequestError {
	e := &RequestError{Err: err, Body: body}
	if resp != nil {
		e.StatusCode = resp.StatusCode
	}
	return e
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return errors.Wrap(e.Err, e.Body).Error()
	}
	return e.Err.Error()
}

// Temporary reports whether retrying the same request
// could succeed: transport failures, throttling, and
// server-side errors are temporary; everything else
// (auth failures, malformed queries) is not.
func (e *RequestError) Temporary() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ParseError is returned when a response arrives but
// its body cannot be decoded.
type ParseError struct {
	Err error
}

func newParseError(err error) *ParseError {
	return &ParseError{Err: err}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}
