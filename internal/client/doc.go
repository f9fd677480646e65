// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package client performs the single cache lookup request and classifies its
// failures as validation, status or fetch errors.
package client
