// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package export performs the copy and download side effects for a payload:
// pretty JSON to the clipboard, to a local file, or to an S3 bucket.
package export
