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
	"context"
	"encoding/json"
	"net/http"
)

type MockHttpResponse struct {
	Code int
	Body []byte
}

// MockHttpClient is a canned-response implementation of the HttpClient
// interface. Responses are consumed in order; it records the bodies it was
// sent so tests can assert on outgoing payloads.
type MockHttpClient struct {
	Responses []MockHttpResponse
	Sent      []interface{}
}

func (m *MockHttpClient) Get(ctx context.Context, urlstr string, recv interface{}) error {
	return m.Do(ctx, nil, recv)
}

func (m *MockHttpClient) Post(ctx context.Context, urlstr string, recv, send interface{}) error {
	m.Sent = append(m.Sent, send)
	return m.Do(ctx, nil, recv)
}

func (m *MockHttpClient) Put(ctx context.Context, urlstr string, recv, send interface{}) error {
	m.Sent = append(m.Sent, send)
	return m.Do(ctx, nil, recv)
}

func (m *MockHttpClient) DoWithBackoff(ctx context.Context, req *http.Request, recv interface{}) error {
	return m.Do(ctx, req, recv)
}

func (m *MockHttpClient) Do(ctx context.Context, req *http.Request, recv interface{}) error {
	if len(m.Responses) == 0 {
		return nil
	}
	response := m.Responses[0]
	m.Responses = m.Responses[1:]

	if response.Code < 200 || response.Code > 299 {
		return statusError(response.Code, response.Body)
	}
	if recv == nil || len(response.Body) == 0 {
		return nil
	}
	return json.Unmarshal(response.Body, recv)
}
