// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package aws loads AWS SDK v2 configuration and builds the S3 client used
// to export cache payloads to a bucket.
package aws
