// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAccept = r.Header.Get("accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"session_id":"abc-123","found_in_date":"2024-01-01","cache_data":{}}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Lookup(context.Background(), "  abc-123 ")
	require.NoError(t, err)

	assert.Equal(t, "/api/dashboard/cache/abc-123", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "abc-123", res.Response.SessionID)
	assert.Equal(t, "2024-01-01", res.Response.FoundInDate)
	assert.True(t, res.Response.CacheData.Empty())
	assert.Contains(t, string(res.Body), `"abc-123"`)
}

func TestLookup_EscapesSessionID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL + "/").Lookup(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/api/dashboard/cache/a%2Fb%20c", gotPath)
}

func TestLookup_EmptySessionID(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	for _, sid := range []string{"", "   ", "\t\n"} {
		_, err := New(srv.URL).Lookup(context.Background(), sid)
		assert.ErrorIs(t, err, ErrEmptySessionID)
		assert.Equal(t, "Please enter a session ID", err.Error())
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestLookup_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Lookup(context.Background(), "abc-123")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.Code)
	assert.Equal(t, "Error: 404 Not Found", err.Error())
}

func TestLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Lookup(context.Background(), "abc-123")
	assert.EqualError(t, err, "Error: 503 Service Unavailable")
}

func TestLookup_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Lookup(context.Background(), "abc-123")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Failed to fetch data", err.Error())
	assert.Error(t, fe.Unwrap())
}

func TestLookup_DriftedFieldTypes(t *testing.T) {
	body := `{"session_id":"abc-123","cache_data":{"orderdetails":{"value":[{"SalesOrderCode":"SO-1","TotalGrossAmount":12.5}]}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Lookup(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, body, string(res.Body))
	require.NotNil(t, res.Response.CacheData.OrderDetails)
	assert.Equal(t, "12.5", res.Response.CacheData.OrderDetails.Value[0].TotalGrossAmount)
}

func TestLookup_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Lookup(context.Background(), "abc-123")
	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c := New(" ")
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, "http://localhost:8081/api/dashboard/cache/x", c.URL("x"))
}
