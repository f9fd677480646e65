// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package differ compares two cache payloads and renders the differences as
// an annotated JSON listing.
package differ
