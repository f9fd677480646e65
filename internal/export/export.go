// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/atotto/clipboard"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/staranto/cachedash/internal/aws"
	"github.com/staranto/cachedash/internal/jsontree"
)

// ContentType is set on uploaded objects.
const ContentType = "application/json"

// Clipboard is the clipboard writer. Tests swap it out.
var Clipboard = clipboard.WriteAll

// Putter is the part of the S3 client used for uploads.
type Putter interface {
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Copy puts the pretty-printed payload on the clipboard.
func Copy(v jsontree.Value) error {
	if err := Clipboard(string(jsontree.Marshal(v))); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	log.Debug("payload copied to clipboard")
	return nil
}

// FileName is the download name for v, e.g. cache-data-abc-123.json.
func FileName(v jsontree.Value) string {
	return jsontree.DownloadName(v)
}

// Download writes v to dir and returns the path written.
func Download(dir string, v jsontree.Value) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	p := filepath.Join(dir, FileName(v))
	if err := os.WriteFile(p, jsontree.Marshal(v), 0o600); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	log.WithField("path", p).Debug("payload downloaded")
	return p, nil
}

// Upload puts v into the bucket at loc and returns the s3:// URL written.
func Upload(ctx context.Context, p Putter, loc aws.Location, v jsontree.Value) (string, error) {
	key := loc.Key(FileName(v))
	_, err := p.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(loc.Bucket),
		Key:         awsv2.String(key),
		Body:        bytes.NewReader(jsontree.Marshal(v)),
		ContentType: awsv2.String(ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3://%s/%s: %w", loc.Bucket, key, err)
	}

	url := fmt.Sprintf("s3://%s/%s", loc.Bucket, key)
	log.WithField("url", url).Debug("payload uploaded")
	return url, nil
}
