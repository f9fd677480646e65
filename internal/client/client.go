// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/staranto/cachedash/internal/dashboard"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8081"

// LookupPath is the endpoint prefix; the session identifier is appended.
const LookupPath = "/api/dashboard/cache/"

// ErrEmptySessionID is returned when the identifier is empty or whitespace.
// No request is made.
var ErrEmptySessionID = errors.New("Please enter a session ID")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error: %d %s", e.Code, e.Text)
}

// FetchError covers transport and decode failures. The cause is kept for
// errors.Is/As and logging, the message shown to users is generic.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "Failed to fetch data"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Result is a decoded lookup together with the body it came from.
type Result struct {
	Response *dashboard.Response
	Body     []byte
}

// Client talks to the cache lookup endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for baseURL using a pooled cleanhttp client. An empty
// baseURL selects DefaultBaseURL.
func New(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: cleanhttp.DefaultPooledClient(),
	}
}

// NormalizeSessionID trims sid and reports ErrEmptySessionID if nothing is
// left.
func NormalizeSessionID(sid string) (string, error) {
	sid = strings.TrimSpace(sid)
	if sid == "" {
		return "", ErrEmptySessionID
	}
	return sid, nil
}

// URL returns the lookup URL for an already normalized identifier.
func (c *Client) URL(sid string) string {
	return c.BaseURL + LookupPath + url.PathEscape(sid)
}

// Lookup issues exactly one GET for sid and decodes the response.
func (c *Client) Lookup(ctx context.Context, sid string) (*Result, error) {
	sid, err := NormalizeSessionID(sid)
	if err != nil {
		return nil, err
	}

	u := c.URL(sid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("accept", "application/json")

	log.WithField("url", u).Debug("looking up session")

	hc := c.HTTPClient
	if hc == nil {
		hc = cleanhttp.DefaultPooledClient()
	}

	resp, err := hc.Do(req)
	if err != nil {
		log.Debugf("lookup transport error: %v", err)
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		se := &StatusError{Code: resp.StatusCode, Text: statusText(resp)}
		log.WithField("status", resp.StatusCode).Debug("lookup rejected")
		return nil, se
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debugf("lookup read error: %v", err)
		return nil, &FetchError{Err: err}
	}

	r, err := dashboard.Decode(body)
	if err != nil {
		log.Debugf("lookup decode error: %v", err)
		return nil, &FetchError{Err: err}
	}

	return &Result{Response: r, Body: body}, nil
}

// statusText returns the reason phrase the server sent, falling back to the
// standard text for the code.
func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode)
	if text, ok := strings.CutPrefix(resp.Status, prefix); ok {
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return http.StatusText(resp.StatusCode)
}
