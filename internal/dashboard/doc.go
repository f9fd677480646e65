// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dashboard defines the payload returned by the cache lookup
// endpoint: the session block, the cache envelopes and the budget pay, refund
// and order records they carry.
package dashboard
