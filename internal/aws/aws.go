// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile     string
	region      string
	maxAttempts int
}

// Option customizes how AWS config is loaded. With no options the shell's
// AWS setup is used (AWS_PROFILE, ~/.aws/config, env, IMDS).
type Option func(*options)

func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithMaxAttempts caps the standard retryer. Zero keeps the SDK default.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// LoadConfig loads AWS SDK v2 config with the given overrides applied.
func LoadConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.maxAttempts > 0 {
		n := o.maxAttempts
		loadOpts = append(loadOpts, config.WithRetryer(func() awsv2.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), n)
		}))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewS3 constructs an S3 client from cfg.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithEndpoint points the S3 client at a custom endpoint, e.g. a local
// MinIO or LocalStack, using path-style addressing.
func WithEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.BaseEndpoint = awsv2.String(endpoint)
		o.UsePathStyle = true
	}
}

// Location is a parsed s3://bucket/prefix destination.
type Location struct {
	Bucket string
	Prefix string
}

// ParseLocation parses an s3:// URL. The prefix may be empty.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid s3 location %q: %w", raw, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/prefix", raw)
	}
	return Location{
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}, nil
}

// Key returns the object key for name beneath the prefix.
func (l Location) Key(name string) string {
	if l.Prefix == "" {
		return name
	}
	return path.Join(l.Prefix, name)
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Prefix
}
