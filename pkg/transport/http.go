/*
 *   Copyright 2024 Still Fourth <code@stillfourth.dev>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// AuthToken is the context key carrying the bearer credential. Callers
// attach the token with context.WithValue and every request picks it up in
// Do.
type AuthToken struct{}

// Post sends a JSON body, or an urlencoded form when send is url.Values
// since token grant endpoints only accept the latter. POSTs retry with backoff:
// the main POST in this client is the login call, which is expected to fail
// transiently while a session is still establishing.
func (c *client) Post(ctx context.Context, urlstr string, recv, send interface{}) error {
	var (
		reader      io.Reader
		contentType string = "application/json"
	)

	if values, ok := send.(url.Values); ok {
		reader = strings.NewReader(values.Encode())
		contentType = "application/x-www-form-urlencoded"
	} else {
		buffer := new(bytes.Buffer)
		if err := json.NewEncoder(buffer).Encode(send); err != nil {
			return err
		}
		reader = buffer
	}

	request, err := http.NewRequest("POST", urlstr, reader)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", contentType)
	return c.DoWithBackoff(ctx, request, recv)
}

// Get retrieves a JSON resource with backoff; GETs are idempotent.
func (c *client) Get(ctx context.Context, urlstr string, recv interface{}) error {
	req, err := http.NewRequest("GET", urlstr, nil)
	if err != nil {
		return err
	}
	return c.DoWithBackoff(ctx, req, recv)
}

// Put replaces a resource wholesale with a JSON body. No backoff: the store
// contract is read-modify-write and a failed write must surface to the
// caller, which re-reads before trying again.
func (c *client) Put(ctx context.Context, urlstr string, recv, send interface{}) error {
	buffer := new(bytes.Buffer)
	if err := json.NewEncoder(buffer).Encode(send); err != nil {
		return err
	}
	req, err := http.NewRequest("PUT", urlstr, buffer)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Do(ctx, req, recv)
}

func (c *client) DoWithBackoff(ctx context.Context, req *http.Request, recv interface{}) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 500 * time.Millisecond
	exp.RandomizationFactor = 0.1
	exp.Multiplier = 2.0
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = 2 * time.Minute
	exp.Reset()

	f := func() error {
		err := c.Do(ctx, req, recv)
		if err != nil && !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, d time.Duration) {
		fmt.Fprintf(os.Stderr, "Retrying in %s after error: %v\n", d, err)
	}

	return backoff.RetryNotifyWithTimer(f, backoff.WithContext(exp, ctx), notify, nil)
}

func (c *client) Do(ctx context.Context, req *http.Request, recv interface{}) error {
	if token, ok := ctx.Value(AuthToken{}).(string); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req = req.WithContext(ctx)

	var (
		response *http.Response
		err      error
		body     []byte
	)
	if response, err = c.Client.Do(req); err != nil {
		return err
	}

	defer response.Body.Close()
	if body, err = io.ReadAll(response.Body); err != nil {
		return err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return statusError(response.StatusCode, body)
	}

	if recv == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, recv)
}

// statusError maps a non-2xx response to its typed error so callers can
// switch on the class of failure rather than parse message strings.
func statusError(code int, body []byte) error {
	e := ErrBase{Code: code, Body: body}
	switch code {
	case http.StatusBadRequest:
		return &ErrBadRequest{ErrBase: e}
	case http.StatusUnauthorized:
		return &ErrUnauthorized{ErrBase: e}
	case http.StatusForbidden:
		return &ErrForbidden{ErrBase: e}
	case http.StatusNotFound:
		return &ErrNotFound{ErrBase: e}
	case http.StatusConflict:
		return &ErrConflict{ErrBase: e}
	case http.StatusTooManyRequests:
		return &ErrTooManyRequests{ErrBase: e}
	}
	if code >= 500 {
		return &ErrInternal{ErrBase: e}
	}
	return &ErrStatusCode{ErrBase: e}
}

// Retryable reports whether an error is worth retrying: rate limits,
// server-side failures and transport-level errors. Hard 4xx client errors
// are permanent.
func Retryable(err error) bool {
	switch err.(type) {
	case *ErrBadRequest, *ErrUnauthorized, *ErrForbidden, *ErrNotFound, *ErrConflict, *ErrStatusCode:
		return false
	}
	return true
}
