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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSetsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer srv.Close()

	ctx := context.WithValue(context.Background(), AuthToken{}, "token123")
	var recv map[string]string
	err := DefaultHttpClient.Get(ctx, srv.URL, &recv)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token123", gotAuth)
	assert.Equal(t, "true", recv["ok"])
}

func TestPutSendsWholeBodyOnce(t *testing.T) {
	var (
		calls  int
		method string
		body   map[string]int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		method = r.Method
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := DefaultHttpClient.Put(context.Background(), srv.URL, nil, map[string]int{"version": 2})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "PUT", method)
	assert.Equal(t, 2, body["version"])
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusBadRequest, &ErrBadRequest{}},
		{http.StatusUnauthorized, &ErrUnauthorized{}},
		{http.StatusForbidden, &ErrForbidden{}},
		{http.StatusNotFound, &ErrNotFound{}},
		{http.StatusConflict, &ErrConflict{}},
		{http.StatusTooManyRequests, &ErrTooManyRequests{}},
		{http.StatusBadGateway, &ErrInternal{}},
		{http.StatusTeapot, &ErrStatusCode{}},
	}

	for _, tt := range tests {
		err := statusError(tt.code, []byte("body"))
		assert.IsType(t, tt.want, err, "status %d", tt.code)
	}
}

func TestRetryableClassification(t *testing.T) {
	assert.False(t, Retryable(statusError(http.StatusNotFound, nil)))
	assert.False(t, Retryable(statusError(http.StatusConflict, nil)))
	assert.False(t, Retryable(statusError(http.StatusUnauthorized, nil)))
	assert.True(t, Retryable(statusError(http.StatusTooManyRequests, nil)))
	assert.True(t, Retryable(statusError(http.StatusInternalServerError, nil)))
}

func TestMockClientConsumesResponsesInOrder(t *testing.T) {
	mock := &MockHttpClient{Responses: []MockHttpResponse{
		{Code: 200, Body: []byte(`{"a":1}`)},
		{Code: 404, Body: []byte(`not here`)},
	}}

	var recv map[string]int
	require.NoError(t, mock.Get(context.Background(), "http://example", &recv))
	assert.Equal(t, 1, recv["a"])

	err := mock.Get(context.Background(), "http://example", &recv)
	assert.IsType(t, &ErrNotFound{}, err)
}
