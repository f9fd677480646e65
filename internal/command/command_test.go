// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cachedash/internal/client"
	"github.com/staranto/cachedash/internal/dashboard"
	"github.com/staranto/cachedash/internal/export"
)

const payload = `{
  "session_id": "%s",
  "found_in_date": "2024-01-01",
  "cache_data": {
    "refund_message": {
      "value": "Refund issued",
      "cached_at": "2024-01-01T00:00:00Z",
      "expires_at": "2024-01-08T00:00:00Z"
    },
    "orderdetails": {
      "value": [
        {"SalesOrderCode": "SO-1", "OrderStatus": "Delivered", "items": []},
        {"SalesOrderCode": "SO-2", "OrderStatus": "Invoiced", "items": []}
      ],
      "cached_at": "2024-01-01T00:00:00Z",
      "expires_at": "2024-01-08T00:00:00Z"
    }
  }
}`

// backend serves the payload for any session, except "missing" which is a
// 404. It counts requests.
func backend(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		sid := strings.TrimPrefix(r.URL.Path, client.LookupPath)
		if sid == "missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Replace(payload, "%s", sid, 1))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CACHEDASH_HISTORY", "0")

	argv := append([]string{"cachedash"}, args...)
	app, err := InitApp(context.Background(), argv)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = io.Discard
	err = app.Run(context.Background(), argv)
	return buf.String(), err
}

func TestLookup_Text(t *testing.T) {
	srv, _ := backend(t)

	out, err := run(t, "lookup", "--base-url", srv.URL, "--no-color", "--timezone", "UTC", "abc-123")
	require.NoError(t, err)
	assert.Contains(t, out, "Session ID: abc-123")
	assert.Contains(t, out, "Found in Date: 2024-01-01")
	assert.Contains(t, out, "Refund issued")
	assert.Contains(t, out, "SO-1")
	assert.Contains(t, out, "SO-2")
}

func TestLookup_Alias(t *testing.T) {
	srv, _ := backend(t)

	out, err := run(t, "get", "--base-url", srv.URL, "--output", "raw", "abc-123")
	require.NoError(t, err)
	assert.JSONEq(t, strings.Replace(payload, "%s", "abc-123", 1), out)
}

func TestLookup_Filter(t *testing.T) {
	srv, _ := backend(t)

	out, err := run(t, "lookup", "--base-url", srv.URL, "--no-color", "--filter", "OrderStatus~delivered", "abc-123")
	require.NoError(t, err)
	assert.Contains(t, out, "SO-1")
	assert.NotContains(t, out, "SO-2")
}

func TestLookup_PathJSON(t *testing.T) {
	srv, _ := backend(t)

	out, err := run(t, "lookup", "--base-url", srv.URL, "-o", "json", "--path", "cache_data.orderdetails.value[1]", "abc-123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"SalesOrderCode": "SO-2", "OrderStatus": "Invoiced", "items": []}`, out)
}

func TestLookup_Tree(t *testing.T) {
	srv, _ := backend(t)

	out, err := run(t, "lookup", "--base-url", srv.URL, "-o", "tree", "--no-color", "--collapse", "cache_data.orderdetails", "abc-123")
	require.NoError(t, err)
	assert.Contains(t, out, `▶ "orderdetails": {  (3 properties)`)
	assert.Contains(t, out, `"value": "Refund issued"`)
	assert.NotContains(t, out, "SO-1")
}

func TestLookup_Errors(t *testing.T) {
	srv, hits := backend(t)

	_, err := run(t, "lookup", "--base-url", srv.URL, "missing")
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Error: 404 Not Found", err.Error())

	before := hits.Load()
	_, err = run(t, "lookup", "--base-url", srv.URL, "  ")
	assert.ErrorIs(t, err, client.ErrEmptySessionID)
	assert.Equal(t, before, hits.Load())

	_, err = run(t, "lookup", "--base-url", srv.URL, "--path", "session_id", "abc-123")
	assert.ErrorContains(t, err, "--path")

	_, err = run(t, "lookup", "--base-url", srv.URL, "-o", "json", "--filter", "OrderStatus=x", "abc-123")
	assert.ErrorContains(t, err, "--filter")

	_, err = run(t, "lookup", "--base-url", srv.URL, "-o", "csv", "abc-123")
	assert.Error(t, err)

	_, err = run(t, "lookup", "--base-url", "not a url", "abc-123")
	assert.Error(t, err)

	_, err = run(t, "lookup", "--base-url", srv.URL)
	assert.ErrorContains(t, err, "expected 1 argument")

	_, err = run(t, "lookup", "--base-url", "http://127.0.0.1:1", "abc-123")
	var fe *client.FetchError
	assert.ErrorAs(t, err, &fe)
}

func TestExport_Dir(t *testing.T) {
	srv, _ := backend(t)
	dir := t.TempDir()

	out, err := run(t, "export", "--base-url", srv.URL, "--dir", dir, "abc-123")
	require.NoError(t, err)

	p := filepath.Join(dir, "cache-data-abc-123.json")
	assert.Equal(t, p+"\n", out)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.JSONEq(t, strings.Replace(payload, "%s", "abc-123", 1), string(b))
}

type fakePutter struct {
	key string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.key = *in.Bucket + "/" + *in.Key
	return &s3v2.PutObjectOutput{}, nil
}

func TestExport_S3(t *testing.T) {
	srv, _ := backend(t)

	fp := &fakePutter{}
	orig := newPutter
	newPutter = func(context.Context, *cli.Command) (export.Putter, error) { return fp, nil }
	defer func() { newPutter = orig }()

	out, err := run(t, "export", "--base-url", srv.URL, "--to", "s3://exports/daily", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/daily/cache-data-abc-123.json\n", out)
	assert.Equal(t, "exports/daily/cache-data-abc-123.json", fp.key)

	_, err = run(t, "export", "--base-url", srv.URL, "--to", "https://exports", "abc-123")
	assert.Error(t, err)

	_, err = run(t, "export", "--base-url", srv.URL, "--to", "s3://exports", "--clipboard", "abc-123")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestExport_Clipboard(t *testing.T) {
	srv, _ := backend(t)

	var copied string
	orig := export.Clipboard
	export.Clipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { export.Clipboard = orig }()

	out, err := run(t, "export", "--base-url", srv.URL, "--clipboard", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Copied to clipboard\n", out)
	assert.Contains(t, copied, `"session_id": "abc-123"`)
}

func TestDiff(t *testing.T) {
	srv, hits := backend(t)

	out, err := run(t, "diff", "--base-url", srv.URL, "--no-color", "abc-123", "def-456")
	require.NoError(t, err)
	assert.Contains(t, out, `"abc-123"`)
	assert.Contains(t, out, `"def-456"`)
	assert.Equal(t, int32(2), hits.Load())

	out, err = run(t, "diff", "--base-url", srv.URL, "abc-123", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "no differences\n", out)

	_, err = run(t, "diff", "--base-url", srv.URL, "abc-123", "missing")
	assert.ErrorContains(t, err, "missing: Error: 404 Not Found")

	_, err = run(t, "diff", "--base-url", srv.URL, "abc-123")
	assert.ErrorContains(t, err, "expected 2 argument")
}

func TestExamples(t *testing.T) {
	out, err := run(t, "lookup", "--examples")
	require.NoError(t, err)
	assert.Contains(t, out, "cachedash lookup abc-123")
	assert.Contains(t, out, "Command")
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _cachedash cachedash")

	out, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef cachedash")
}

func TestHistory_Disabled(t *testing.T) {
	_, err := run(t, "history")
	assert.ErrorContains(t, err, "history is disabled")
}

func TestHistory_RecordsLookups(t *testing.T) {
	srv, _ := backend(t)
	t.Setenv("CACHEDASH_HISTORY_DIR", t.TempDir())

	argv := []string{"cachedash", "lookup", "--base-url", srv.URL, "-o", "raw", "abc-123"}
	app, err := InitApp(context.Background(), argv)
	require.NoError(t, err)
	app.Writer = io.Discard
	t.Setenv("CACHEDASH_HISTORY", "1")
	require.NoError(t, app.Run(context.Background(), argv))

	argv = []string{"cachedash", "history", "--plain"}
	app, err = InitApp(context.Background(), argv)
	require.NoError(t, err)
	var buf bytes.Buffer
	app.Writer = &buf
	require.NoError(t, app.Run(context.Background(), argv))
	assert.Equal(t, "abc-123\n", buf.String())
}

func TestUI_RequiresTerminal(t *testing.T) {
	_, err := run(t, "ui")
	assert.ErrorContains(t, err, "requires a terminal")
}

func TestFilterOrders(t *testing.T) {
	raw := []byte(strings.Replace(payload, "%s", "abc-123", 1))
	resp, err := dashboard.Decode(raw)
	require.NoError(t, err)

	got := FilterOrders(resp, raw, "SalesOrderCode=SO-2")
	require.Len(t, got.CacheData.OrderDetails.Value, 1)
	assert.Equal(t, "SO-2", got.CacheData.OrderDetails.Value[0].SalesOrderCode)

	// The original response is untouched.
	assert.Len(t, resp.CacheData.OrderDetails.Value, 2)

	none := FilterOrders(resp, raw, "OrderStatus=Cancelled")
	assert.Empty(t, none.CacheData.OrderDetails.Value)
	assert.NotNil(t, none.CacheData.OrderDetails)

	empty := &dashboard.Response{SessionID: "x"}
	assert.Same(t, empty, FilterOrders(empty, []byte(`{}`), "a=b"))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OutputValidator("leaves"))
	assert.Error(t, OutputValidator("csv"))

	assert.NoError(t, URLValidator("http://localhost:8081"))
	assert.NoError(t, URLValidator("https://cache.example.com/base"))
	assert.Error(t, URLValidator("localhost:8081"))
	assert.Error(t, URLValidator("ftp://host"))

	assert.NoError(t, S3Validator(""))
	assert.NoError(t, S3Validator("s3://bucket/prefix"))
	assert.Error(t, S3Validator("s3://"))
	assert.Error(t, S3Validator("bucket/prefix"))

	assert.NoError(t, JammedFlagValidator("abc"))
	assert.Error(t, JammedFlagValidator("--output"))

	err := FlagValidators("x", JammedFlagValidator, func(any) error { return errors.New("boom") })
	assert.EqualError(t, err, "boom")
}

func TestGetMeta(t *testing.T) {
	assert.Empty(t, GetMeta(nil).Args)
	assert.Empty(t, GetMeta(&cli.Command{}).Args)

	app, err := InitApp(context.Background(), []string{"cachedash", "lookup"})
	require.NoError(t, err)
	for _, c := range app.Commands {
		assert.Equal(t, []string{"cachedash", "lookup"}, GetMeta(c).Args, c.Name)
	}
}

func TestInitApp_SortedFlags(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"cachedash"})
	require.NoError(t, err)

	for _, c := range app.Commands {
		for i := 1; i < len(c.Flags); i++ {
			assert.LessOrEqual(t, c.Flags[i-1].Names()[0], c.Flags[i].Names()[0], c.Name)
		}
	}
}
