// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cachedash/internal/aws"
	"github.com/staranto/cachedash/internal/jsontree"
)

const payload = `{"session_id":"abc-123","cache_data":{"orderdetails":{"value":[]}}}`

func parse(t *testing.T, doc string) jsontree.Value {
	t.Helper()
	v, err := jsontree.Parse([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "cache-data-abc-123.json", FileName(parse(t, payload)))
	assert.Equal(t, "cache-data-export.json", FileName(parse(t, `{"a":1}`)))
	assert.Equal(t, "cache-data-a_b.json", FileName(parse(t, `{"session_id":"a/b"}`)))
}

func TestDownload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	p, err := Download(dir, parse(t, payload))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache-data-abc-123.json"), p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(b))
	assert.Contains(t, string(b), "\n  \"session_id\": \"abc-123\",\n")

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCopy(t *testing.T) {
	orig := Clipboard
	defer func() { Clipboard = orig }()

	var got string
	Clipboard = func(s string) error {
		got = s
		return nil
	}
	require.NoError(t, Copy(parse(t, `{"a":[1,2]}`)))
	assert.JSONEq(t, `{"a":[1,2]}`, got)

	Clipboard = func(string) error { return errors.New("no clipboard") }
	err := Copy(parse(t, `{}`))
	assert.ErrorContains(t, err, "no clipboard")
}

type fakePutter struct {
	in   *s3v2.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3v2.PutObjectOutput{}, f.err
}

func TestUpload(t *testing.T) {
	p := &fakePutter{}
	loc := aws.Location{Bucket: "exports", Prefix: "daily"}

	url, err := Upload(context.Background(), p, loc, parse(t, payload))
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/daily/cache-data-abc-123.json", url)
	assert.Equal(t, "exports", *p.in.Bucket)
	assert.Equal(t, "daily/cache-data-abc-123.json", *p.in.Key)
	assert.Equal(t, ContentType, *p.in.ContentType)
	assert.JSONEq(t, payload, string(p.body))

	p.err = errors.New("access denied")
	_, err = Upload(context.Background(), p, loc, parse(t, payload))
	assert.ErrorContains(t, err, "access denied")
}
